package dto

import (
	"time"

	"medstory-be/internal/entity"
)

// SaveNoteRequest is accepted as JSON or as multipart form fields.
// In multipart requests the photo comes as the "image" file part instead of ImageBase64.
type SaveNoteRequest struct {
	Section     string  `json:"section" form:"section" validate:"required"`
	Title       string  `json:"title" form:"title" validate:"max=200"`
	Description *string `json:"description" form:"description"`
	ImageBase64 string  `json:"image_base64" form:"-"`
}

type NoteResponse struct {
	Id          string  `json:"id"`
	Date        string  `json:"date"`
	FullDate    string  `json:"full_date"`
	Section     string  `json:"section"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	ImageRef    *string `json:"image_ref"`
	ImageText   *string `json:"image_text"`
}

type ImageHandleResponse struct {
	Ref         string     `json:"ref"`
	URL         string     `json:"url,omitempty"`
	Placeholder bool       `json:"placeholder"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
}

func NewNoteResponse(n *entity.Note) *NoteResponse {
	return &NoteResponse{
		Id:          n.Id,
		Date:        n.Date,
		FullDate:    n.FullDate,
		Section:     n.Section,
		Title:       n.Title,
		Description: n.Description,
		ImageRef:    n.ImageRef,
		ImageText:   n.ImageText,
	}
}

func NewNoteResponses(notes []*entity.Note) []*NoteResponse {
	res := make([]*NoteResponse, 0, len(notes))
	for _, n := range notes {
		res = append(res, NewNoteResponse(n))
	}
	return res
}

func NewImageHandleResponse(h *entity.ImageHandle) *ImageHandleResponse {
	res := &ImageHandleResponse{Ref: h.Ref, URL: h.URL, Placeholder: h.Placeholder}
	if !h.ExpiresAt.IsZero() {
		expires := h.ExpiresAt
		res.ExpiresAt = &expires
	}
	return res
}

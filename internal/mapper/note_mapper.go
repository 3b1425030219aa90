package mapper

import (
	"fmt"

	"medstory-be/internal/entity"
	"medstory-be/internal/pkg/apperror"
	"medstory-be/internal/taxonomy"
)

// Remote document field names.
const (
	FieldUid         = "uid"
	FieldDate        = "date"
	FieldFullDate    = "fullDate"
	FieldSection     = "section"
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldImageRef    = "imageURL"
	FieldImageText   = "textImage"
)

// requiredFields are checked in this order so the reported field is stable.
var requiredFields = []string{
	FieldUid, FieldFullDate, FieldDate, FieldSection,
	FieldTitle, FieldDescription, FieldImageRef, FieldImageText,
}

type NoteMapper struct{}

func NewNoteMapper() *NoteMapper {
	return &NoteMapper{}
}

// ToDocument renders the full remote field set. Absent optional fields become "".
func (m *NoteMapper) ToDocument(uid string, n *entity.Note) map[string]interface{} {
	if n == nil {
		return nil
	}
	return map[string]interface{}{
		FieldUid:         uid,
		FieldDate:        n.Date,
		FieldFullDate:    n.FullDate,
		FieldSection:     n.Section,
		FieldTitle:       n.Title,
		FieldDescription: deref(n.Description),
		FieldImageRef:    deref(n.ImageRef),
		FieldImageText:   deref(n.ImageText),
	}
}

// ToEntity rebuilds a note from a remote document. It either returns a fully
// populated note or a *apperror.ValidationError; it never returns a partial note.
// A non-empty uid must match the document owner.
func (m *NoteMapper) ToEntity(uid string, doc map[string]interface{}) (*entity.Note, error) {
	values := make(map[string]string, len(requiredFields))
	for _, field := range requiredFields {
		raw, ok := doc[field]
		if !ok {
			return nil, &apperror.ValidationError{Field: field, Reason: "missing"}
		}
		s, ok := raw.(string)
		if !ok {
			return nil, &apperror.ValidationError{Field: field, Reason: fmt.Sprintf("expected string, got %T", raw)}
		}
		values[field] = s
	}

	if uid != "" && values[FieldUid] != uid {
		return nil, &apperror.ValidationError{Field: FieldUid, Reason: "owner mismatch"}
	}
	if values[FieldFullDate] == "" {
		return nil, &apperror.ValidationError{Field: FieldFullDate, Reason: "empty"}
	}
	if !taxonomy.IsLeaf(values[FieldSection]) {
		return nil, &apperror.ValidationError{Field: FieldSection, Reason: fmt.Sprintf("unknown section %q", values[FieldSection])}
	}
	imageRef := optional(values[FieldImageRef])
	if imageRef != nil && !entity.RefOwnedBy(*imageRef, values[FieldUid]) {
		return nil, &apperror.ValidationError{Field: FieldImageRef, Reason: "not scoped to owner"}
	}

	return &entity.Note{
		Id:          values[FieldFullDate],
		Date:        values[FieldDate],
		FullDate:    values[FieldFullDate],
		Section:     values[FieldSection],
		Title:       values[FieldTitle],
		Description: optional(values[FieldDescription]),
		ImageRef:    imageRef,
		ImageText:   optional(values[FieldImageText]),
	}, nil
}

// ToProfileDocument renders the user profile document.
func (m *NoteMapper) ToProfileDocument(p *entity.Profile) map[string]interface{} {
	return map[string]interface{}{
		FieldUid: p.Uid,
		"name":   p.Name,
	}
}

// ToProfile rebuilds a profile; both fields must be strings.
func (m *NoteMapper) ToProfile(doc map[string]interface{}) (*entity.Profile, error) {
	uid, ok := doc[FieldUid].(string)
	if !ok {
		return nil, &apperror.ValidationError{Field: FieldUid, Reason: "missing or not a string"}
	}
	name, ok := doc["name"].(string)
	if !ok {
		return nil, &apperror.ValidationError{Field: "name", Reason: "missing or not a string"}
	}
	return &entity.Profile{Uid: uid, Name: name}, nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

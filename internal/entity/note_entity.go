package entity

import (
	"strings"
	"time"

	"medstory-be/internal/pkg/apperror"
	"medstory-be/internal/taxonomy"

	"github.com/go-playground/validator/v10"
)

const (
	// FullDateLayout is the canonical, lexicographically sortable note timestamp.
	FullDateLayout = "2006-01-02 15:04:05.000000"
	// DateLayout is the display form of the same instant.
	DateLayout = "02.01.2006"
)

var validate = validator.New()

// Note is a single dated health record. FullDate is its identity and never changes
// after creation; Id always equals FullDate.
type Note struct {
	Id          string  `validate:"required"`
	Date        string  `validate:"required"`
	FullDate    string  `validate:"required"`
	Section     string  `validate:"required"`
	Title       string
	Description *string
	ImageRef    *string
	// ImageText is reserved for recognized text; nothing fills it yet.
	ImageText   *string
}

// NewNote mints a note at now. Id, FullDate and Date are derived from the same instant.
func NewNote(now time.Time, section, title string, description *string) *Note {
	now = now.UTC()
	fullDate := now.Format(FullDateLayout)
	return &Note{
		Id:          fullDate,
		Date:        now.Format(DateLayout),
		FullDate:    fullDate,
		Section:     section,
		Title:       title,
		Description: description,
	}
}

// Validate checks field presence and that the section is a known taxonomy leaf.
func (n *Note) Validate() error {
	if n == nil {
		return &apperror.ValidationError{Reason: "note is nil"}
	}
	if err := validate.Struct(n); err != nil {
		if fieldErrs, ok := err.(validator.ValidationErrors); ok && len(fieldErrs) > 0 {
			return &apperror.ValidationError{Field: fieldErrs[0].Field(), Reason: fieldErrs[0].Tag()}
		}
		return &apperror.ValidationError{Reason: err.Error()}
	}
	if n.Id != n.FullDate {
		return &apperror.ValidationError{Field: "Id", Reason: "must equal FullDate"}
	}
	if !taxonomy.IsLeaf(n.Section) {
		return &apperror.ResolutionError{Section: n.Section}
	}
	return nil
}

// HasImage reports whether a blob is attached.
func (n *Note) HasImage() bool {
	return n.ImageRef != nil && *n.ImageRef != ""
}

// OwnedBy reports whether the image reference, if any, is scoped under uid.
func (n *Note) OwnedBy(uid string) bool {
	if !n.HasImage() {
		return true
	}
	return RefOwnedBy(*n.ImageRef, uid)
}

// RefOwnedBy reports whether an image reference lives under uid.
func RefOwnedBy(ref, uid string) bool {
	return uid != "" && strings.HasPrefix(ref, uid+"/") && len(ref) > len(uid)+1
}

// Clone returns a deep copy so callers can mutate without touching the original.
func (n *Note) Clone() *Note {
	if n == nil {
		return nil
	}
	c := *n
	c.Description = cloneString(n.Description)
	c.ImageRef = cloneString(n.ImageRef)
	c.ImageText = cloneString(n.ImageText)
	return &c
}

func cloneString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}

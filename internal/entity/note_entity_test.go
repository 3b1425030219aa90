package entity

import (
	"testing"
	"time"

	"medstory-be/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestNewNote(t *testing.T) {
	at := time.Date(2021, 3, 14, 10, 22, 33, 123456000, time.FixedZone("MSK", 3*3600))
	note := NewNote(at, "blood", "CBC", strPtr("all normal"))

	assert.Equal(t, "2021-03-14 07:22:33.123456", note.FullDate)
	assert.Equal(t, note.FullDate, note.Id)
	assert.Equal(t, "14.03.2021", note.Date)
	assert.Equal(t, "blood", note.Section)
	assert.Nil(t, note.ImageRef)
	assert.NoError(t, note.Validate())
}

func TestNoteValidate(t *testing.T) {
	base := func() *Note { return NewNote(time.Now(), "mri", "knee", nil) }

	tests := []struct {
		name     string
		mutate   func(n *Note)
		wantKind func(error) bool
	}{
		{"missing full date", func(n *Note) { n.FullDate = "" }, apperror.IsValidation},
		{"missing date", func(n *Note) { n.Date = "" }, apperror.IsValidation},
		{"missing section", func(n *Note) { n.Section = "" }, apperror.IsValidation},
		{"id differs", func(n *Note) { n.Id = "other" }, apperror.IsValidation},
		{"unknown section", func(n *Note) { n.Section = "brain" }, apperror.IsResolution},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := base()
			tt.mutate(n)
			err := n.Validate()
			require.Error(t, err)
			assert.True(t, tt.wantKind(err), "unexpected error kind: %v", err)
		})
	}

	var nilNote *Note
	assert.True(t, apperror.IsValidation(nilNote.Validate()))
}

func TestNoteOwnership(t *testing.T) {
	n := NewNote(time.Now(), "blood", "", nil)
	assert.True(t, n.OwnedBy("u1"), "no image is always owned")

	n.ImageRef = strPtr("u1/20210314.1")
	assert.True(t, n.OwnedBy("u1"))
	assert.False(t, n.OwnedBy("u2"))
	assert.False(t, n.OwnedBy("u"))

	assert.False(t, RefOwnedBy("u1/", "u1"))
	assert.False(t, RefOwnedBy("u1/x", ""))
}

func TestNoteClone(t *testing.T) {
	n := NewNote(time.Now(), "blood", "t", strPtr("d"))
	n.ImageRef = strPtr("u1/1")

	c := n.Clone()
	*c.Description = "changed"
	*c.ImageRef = "u1/2"

	assert.Equal(t, "d", *n.Description)
	assert.Equal(t, "u1/1", *n.ImageRef)
	assert.Nil(t, c.ImageText)
}

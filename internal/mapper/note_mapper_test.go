package mapper

import (
	"testing"
	"time"

	"medstory-be/internal/entity"
	"medstory-be/internal/pkg/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func fullNote() *entity.Note {
	n := entity.NewNote(time.Date(2021, 3, 14, 10, 0, 0, 0, time.UTC), "cardiologist", "ECG follow-up", strPtr("sinus rhythm"))
	n.ImageRef = strPtr("u1/20210314100000.000000")
	n.ImageText = strPtr("HR 62")
	return n
}

func TestRoundTrip(t *testing.T) {
	m := NewNoteMapper()

	tests := []struct {
		name string
		note *entity.Note
	}{
		{"minimal", entity.NewNote(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), "procedures", "", nil)},
		{"fully populated", fullNote()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := m.ToDocument("u1", tt.note)
			got, err := m.ToEntity("u1", doc)
			require.NoError(t, err)
			assert.Equal(t, tt.note, got)
		})
	}
}

func TestToDocumentSchema(t *testing.T) {
	doc := NewNoteMapper().ToDocument("u1", entity.NewNote(time.Date(2021, 1, 1, 0, 0, 0, 0, time.UTC), "blood", "CBC", nil))

	assert.Equal(t, map[string]interface{}{
		"uid":         "u1",
		"date":        "01.01.2021",
		"fullDate":    "2021-01-01 00:00:00.000000",
		"section":     "blood",
		"title":       "CBC",
		"description": "",
		"imageURL":    "",
		"textImage":   "",
	}, doc)
}

func TestToEntityRejectsMalformed(t *testing.T) {
	m := NewNoteMapper()

	for _, field := range []string{"uid", "fullDate", "date", "section", "title", "description", "imageURL", "textImage"} {
		t.Run("missing "+field, func(t *testing.T) {
			doc := m.ToDocument("u1", fullNote())
			delete(doc, field)

			got, err := m.ToEntity("u1", doc)
			assert.Nil(t, got)
			var vErr *apperror.ValidationError
			require.ErrorAs(t, err, &vErr)
			assert.Equal(t, field, vErr.Field)
		})

		t.Run("mistyped "+field, func(t *testing.T) {
			doc := m.ToDocument("u1", fullNote())
			doc[field] = 42

			got, err := m.ToEntity("u1", doc)
			assert.Nil(t, got)
			assert.True(t, apperror.IsValidation(err))
		})
	}

	t.Run("unknown section", func(t *testing.T) {
		doc := m.ToDocument("u1", fullNote())
		doc["section"] = "astrologer"
		_, err := m.ToEntity("u1", doc)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("foreign owner", func(t *testing.T) {
		doc := m.ToDocument("u2", fullNote())
		_, err := m.ToEntity("u1", doc)
		assert.True(t, apperror.IsValidation(err))
	})

	t.Run("image ref outside owner scope", func(t *testing.T) {
		n := fullNote()
		n.ImageRef = strPtr("u2/1")
		_, err := m.ToEntity("u1", m.ToDocument("u1", n))
		assert.True(t, apperror.IsValidation(err))
	})
}

func TestProfileDocument(t *testing.T) {
	m := NewNoteMapper()
	p := &entity.Profile{Uid: "u1", Name: "Daria"}

	got, err := m.ToProfile(m.ToProfileDocument(p))
	require.NoError(t, err)
	assert.Equal(t, p, got)

	_, err = m.ToProfile(map[string]interface{}{"uid": "u1"})
	assert.True(t, apperror.IsValidation(err))
}

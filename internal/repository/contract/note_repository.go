package contract

import (
	"context"

	"medstory-be/internal/entity"
)

// DocumentRef locates a stored note document.
type DocumentRef struct {
	Path string
	Id   string
}

type NoteRepository interface {
	// Put creates or replaces the note at its resolved section path, keyed by FullDate.
	Put(ctx context.Context, uid string, note *entity.Note) (DocumentRef, error)
	// Query lists notes newest first. A nil section lists every section of the user.
	// Documents that fail to parse are skipped.
	Query(ctx context.Context, uid string, section *string) ([]*entity.Note, error)
	// Remove deletes the note document. Removing a missing note succeeds.
	Remove(ctx context.Context, uid string, note *entity.Note) error
}

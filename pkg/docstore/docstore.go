// Package docstore defines the raw hierarchical document store used for note metadata.
//
// Documents live at slash-separated paths that alternate collection and document ids,
// the way Firestore lays them out: users/{uid}/sections/{group}/subsections/{leaf}/notes/{id}.
// Drivers store loosely typed field maps and know nothing about notes; typing happens above.
package docstore

import (
	"context"
	"errors"
	"path"
	"strings"
)

// ErrNotFound is returned by Get when no document exists at the path.
var ErrNotFound = errors.New("document not found")

// Document is a stored field map and the path it lives at.
type Document struct {
	Path string
	Data map[string]interface{}
}

// Query selects documents from a single collection, or from every collection with the
// same id (a collection group) when Group is set instead of Collection.
type Query struct {
	Collection string
	Group      string

	// Optional equality filter.
	Field string
	Value string

	OrderBy    string
	Descending bool
}

// Driver is implemented by every document backend.
type Driver interface {
	// Set creates or fully replaces the document at path.
	Set(ctx context.Context, path string, data map[string]interface{}) error
	Get(ctx context.Context, path string) (map[string]interface{}, error)
	List(ctx context.Context, q Query) ([]Document, error)
	// Delete removes the document at path. A missing document is not an error.
	Delete(ctx context.Context, path string) error
	Name() string
	Close(ctx context.Context) error
}

// Parent returns the collection path of a document path.
func Parent(docPath string) string {
	return path.Dir(docPath)
}

// CollectionID returns the last segment of a collection path.
func CollectionID(collection string) string {
	return path.Base(collection)
}

// DocumentID returns the last segment of a document path.
func DocumentID(docPath string) string {
	return path.Base(docPath)
}

// ValidDocumentPath reports whether p has an even, non-zero number of non-empty segments.
func ValidDocumentPath(p string) bool {
	segs := strings.Split(p, "/")
	if len(segs) == 0 || len(segs)%2 != 0 {
		return false
	}
	for _, s := range segs {
		if s == "" {
			return false
		}
	}
	return true
}

// Less orders two documents by a string field, treating missing or non-string values
// as smaller than any string.
func Less(a, b Document, field string) bool {
	av, aok := a.Data[field].(string)
	bv, bok := b.Data[field].(string)
	switch {
	case !aok && !bok:
		return a.Path < b.Path
	case !aok:
		return true
	case !bok:
		return false
	}
	return av < bv
}

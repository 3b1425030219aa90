// Package memory is an in-process docstore.Driver for tests and local runs.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"medstory-be/pkg/docstore"
)

type Store struct {
	mu   sync.RWMutex
	docs map[string]map[string]interface{}
}

func New() *Store {
	return &Store{docs: make(map[string]map[string]interface{})}
}

func (s *Store) Name() string {
	return "memory"
}

func (s *Store) Set(ctx context.Context, path string, data map[string]interface{}) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !docstore.ValidDocumentPath(path) {
		return fmt.Errorf("invalid document path %q", path)
	}
	s.mu.Lock()
	s.docs[path] = copyMap(data)
	s.mu.Unlock()
	return nil
}

func (s *Store) Get(ctx context.Context, path string) (map[string]interface{}, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.docs[path]
	if !ok {
		return nil, docstore.ErrNotFound
	}
	return copyMap(data), nil
}

func (s *Store) List(ctx context.Context, q docstore.Query) ([]docstore.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	var out []docstore.Document
	for p, data := range s.docs {
		parent := docstore.Parent(p)
		if q.Collection != "" && parent != q.Collection {
			continue
		}
		if q.Group != "" && docstore.CollectionID(parent) != q.Group {
			continue
		}
		if q.Field != "" {
			if v, ok := data[q.Field].(string); !ok || v != q.Value {
				continue
			}
		}
		out = append(out, docstore.Document{Path: p, Data: copyMap(data)})
	}
	s.mu.RUnlock()

	if q.OrderBy != "" {
		sort.SliceStable(out, func(i, j int) bool {
			if q.Descending {
				return docstore.Less(out[j], out[i], q.OrderBy)
			}
			return docstore.Less(out[i], out[j], q.OrderBy)
		})
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.docs, path)
	s.mu.Unlock()
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return nil
}

// Len returns the number of stored documents.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.docs)
}

func copyMap(in map[string]interface{}) map[string]interface{} {
	out := make(map[string]interface{}, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

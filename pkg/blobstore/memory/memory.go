// Package memory is an in-process blobstore.Driver for tests and local runs.
package memory

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"medstory-be/pkg/blobstore"
)

type object struct {
	data        []byte
	contentType string
}

type Store struct {
	mu      sync.RWMutex
	objects map[string]object
	baseURL string
	now     func() time.Time
}

// New returns an empty store whose presigned URLs are rooted at baseURL.
func New(baseURL string) *Store {
	return &Store{
		objects: make(map[string]object),
		baseURL: baseURL,
		now:     time.Now,
	}
}

func (s *Store) Name() string {
	return "memory"
}

func (s *Store) Put(ctx context.Context, key string, data []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if key == "" {
		return fmt.Errorf("empty object key")
	}
	buf := make([]byte, len(data))
	copy(buf, data)

	s.mu.Lock()
	s.objects[key] = object{data: buf, contentType: contentType}
	s.mu.Unlock()
	return nil
}

func (s *Store) Stat(ctx context.Context, key string) (blobstore.Object, error) {
	if err := ctx.Err(); err != nil {
		return blobstore.Object{}, err
	}
	s.mu.RLock()
	obj, ok := s.objects[key]
	s.mu.RUnlock()
	if !ok {
		return blobstore.Object{}, blobstore.ErrNotFound
	}
	return blobstore.Object{Key: key, Size: int64(len(obj.data)), ContentType: obj.contentType}, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	delete(s.objects, key)
	s.mu.Unlock()
	return nil
}

func (s *Store) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	if _, err := s.Stat(ctx, key); err != nil {
		return "", err
	}
	q := url.Values{}
	q.Set("expires", s.now().Add(ttl).UTC().Format(time.RFC3339))
	return s.baseURL + "/" + key + "?" + q.Encode(), nil
}

// Bytes returns a copy of the stored object, if any.
func (s *Store) Bytes(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	obj, ok := s.objects[key]
	if !ok {
		return nil, false
	}
	buf := make([]byte, len(obj.data))
	copy(buf, obj.data)
	return buf, true
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.objects)
}

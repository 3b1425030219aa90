// Package blobstore defines the raw object store used for note photos.
package blobstore

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound is returned by Stat and PresignGet when no object exists at the key.
var ErrNotFound = errors.New("object not found")

// Object describes a stored blob.
type Object struct {
	Key         string
	Size        int64
	ContentType string
}

// Driver is implemented by every object backend.
type Driver interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Stat(ctx context.Context, key string) (Object, error)
	// Delete removes the object at key. A missing object is not an error.
	Delete(ctx context.Context, key string) error
	// PresignGet returns a URL that can fetch the object until ttl elapses.
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
	Name() string
}

package implementation

import (
	"context"
	"sync"
	"time"

	"medstory-be/pkg/blobstore"
	blobmemory "medstory-be/pkg/blobstore/memory"
	"medstory-be/pkg/docstore"
	docmemory "medstory-be/pkg/docstore/memory"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01")

// countingDocs wraps the memory driver, counting calls and optionally failing them.
type countingDocs struct {
	*docmemory.Store
	mu    sync.Mutex
	calls map[string]int
	fail  map[string]error
	delay time.Duration
}

func newCountingDocs() *countingDocs {
	return &countingDocs{Store: docmemory.New(), calls: map[string]int{}, fail: map[string]error{}}
}

func (d *countingDocs) hit(ctx context.Context, op string) error {
	d.mu.Lock()
	d.calls[op]++
	err := d.fail[op]
	delay := d.delay
	d.mu.Unlock()
	if delay > 0 {
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return err
}

func (d *countingDocs) Calls(op string) int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.calls[op]
}

func (d *countingDocs) Set(ctx context.Context, path string, data map[string]interface{}) error {
	if err := d.hit(ctx, "set"); err != nil {
		return err
	}
	return d.Store.Set(ctx, path, data)
}

func (d *countingDocs) Get(ctx context.Context, path string) (map[string]interface{}, error) {
	if err := d.hit(ctx, "get"); err != nil {
		return nil, err
	}
	return d.Store.Get(ctx, path)
}

func (d *countingDocs) List(ctx context.Context, q docstore.Query) ([]docstore.Document, error) {
	if err := d.hit(ctx, "list"); err != nil {
		return nil, err
	}
	return d.Store.List(ctx, q)
}

func (d *countingDocs) Delete(ctx context.Context, path string) error {
	if err := d.hit(ctx, "delete"); err != nil {
		return err
	}
	return d.Store.Delete(ctx, path)
}

// shortBlobs stores fewer bytes than it was given, so uploads never confirm.
type shortBlobs struct {
	*blobmemory.Store
}

func (s shortBlobs) Put(ctx context.Context, key string, data []byte, contentType string) error {
	return s.Store.Put(ctx, key, data[:len(data)-1], contentType)
}

// failingBlobs fails the named operations.
type failingBlobs struct {
	*blobmemory.Store
	fail  map[string]error
	calls map[string]int
}

func newFailingBlobs() *failingBlobs {
	return &failingBlobs{Store: blobmemory.New("http://blobs.local"), fail: map[string]error{}, calls: map[string]int{}}
}

func (f *failingBlobs) Put(ctx context.Context, key string, data []byte, contentType string) error {
	f.calls["put"]++
	if err := f.fail["put"]; err != nil {
		return err
	}
	return f.Store.Put(ctx, key, data, contentType)
}

func (f *failingBlobs) Delete(ctx context.Context, key string) error {
	f.calls["delete"]++
	if err := f.fail["delete"]; err != nil {
		return err
	}
	return f.Store.Delete(ctx, key)
}

func (f *failingBlobs) PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error) {
	f.calls["presign"]++
	return f.Store.PresignGet(ctx, key, ttl)
}

var _ blobstore.Driver = (*failingBlobs)(nil)
var _ docstore.Driver = (*countingDocs)(nil)

// Package firestore implements docstore.Driver on Cloud Firestore.
package firestore

import (
	"context"
	"fmt"
	"strings"

	"medstory-be/pkg/docstore"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type Config struct {
	ProjectID       string
	CredentialsFile string
}

type Store struct {
	client *firestore.Client
}

func New(ctx context.Context, cfg Config) (*Store, error) {
	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := firestore.NewClient(ctx, cfg.ProjectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}
	return &Store{client: client}, nil
}

func (s *Store) Name() string {
	return "firestore"
}

func (s *Store) doc(path string) (*firestore.DocumentRef, error) {
	ref := s.client.Doc(path)
	if ref == nil {
		return nil, fmt.Errorf("invalid document path %q", path)
	}
	return ref, nil
}

func (s *Store) Set(ctx context.Context, path string, data map[string]interface{}) error {
	ref, err := s.doc(path)
	if err != nil {
		return err
	}
	// Set without merge replaces the whole document.
	_, err = ref.Set(ctx, data)
	return err
}

func (s *Store) Get(ctx context.Context, path string) (map[string]interface{}, error) {
	ref, err := s.doc(path)
	if err != nil {
		return nil, err
	}
	snap, err := ref.Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, docstore.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return snap.Data(), nil
}

func (s *Store) List(ctx context.Context, q docstore.Query) ([]docstore.Document, error) {
	var query firestore.Query
	switch {
	case q.Collection != "":
		coll := s.client.Collection(q.Collection)
		if coll == nil {
			return nil, fmt.Errorf("invalid collection path %q", q.Collection)
		}
		query = coll.Query
	case q.Group != "":
		query = s.client.CollectionGroup(q.Group).Query
	default:
		return nil, fmt.Errorf("query needs a collection or a group")
	}

	if q.Field != "" {
		query = query.Where(q.Field, "==", q.Value)
	}
	if q.OrderBy != "" {
		dir := firestore.Asc
		if q.Descending {
			dir = firestore.Desc
		}
		query = query.OrderBy(q.OrderBy, dir)
	}

	snaps, err := query.Documents(ctx).GetAll()
	if err != nil {
		return nil, err
	}

	docs := make([]docstore.Document, 0, len(snaps))
	for _, snap := range snaps {
		docs = append(docs, docstore.Document{
			Path: relativePath(snap.Ref.Path),
			Data: snap.Data(),
		})
	}
	return docs, nil
}

func (s *Store) Delete(ctx context.Context, path string) error {
	ref, err := s.doc(path)
	if err != nil {
		return err
	}
	// Firestore treats deleting a missing document as success.
	_, err = ref.Delete(ctx)
	return err
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Close()
}

// relativePath strips "projects/P/databases/D/documents/" from a resource name.
func relativePath(resource string) string {
	const marker = "/documents/"
	if i := strings.Index(resource, marker); i >= 0 {
		return resource[i+len(marker):]
	}
	return resource
}

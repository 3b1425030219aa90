package firestore

import (
	"context"
	"os"
	"testing"
	"time"

	"medstory-be/pkg/docstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRelativePath(t *testing.T) {
	assert.Equal(t,
		"users/u1/sections/analyzes/subsections/blood/notes/1",
		relativePath("projects/p/databases/(default)/documents/users/u1/sections/analyzes/subsections/blood/notes/1"))
	assert.Equal(t, "users/u1", relativePath("users/u1"))
}

// Runs against the Firestore emulator when FIRESTORE_EMULATOR_HOST is set.
func TestFirestoreIntegration(t *testing.T) {
	if os.Getenv("FIRESTORE_EMULATOR_HOST") == "" {
		t.Skip("Skipping integration test: FIRESTORE_EMULATOR_HOST not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := New(ctx, Config{ProjectID: "medstory-test"})
	require.NoError(t, err)
	defer s.Close(ctx)

	uid := "it-" + time.Now().Format("150405.000000")
	coll := "users/" + uid + "/sections/analyzes/subsections/blood/notes"

	for _, d := range []string{"20210101", "20210315", "20210202"} {
		require.NoError(t, s.Set(ctx, coll+"/"+d, map[string]interface{}{"uid": uid, "fullDate": d}))
	}

	docs, err := s.List(ctx, docstore.Query{Collection: coll, OrderBy: "fullDate", Descending: true})
	require.NoError(t, err)
	require.Len(t, docs, 3)
	assert.Equal(t, coll+"/20210315", docs[0].Path)

	for _, d := range []string{"20210101", "20210315", "20210202"} {
		require.NoError(t, s.Delete(ctx, coll+"/"+d))
	}
	require.NoError(t, s.Delete(ctx, coll+"/20210101"))

	_, err = s.Get(ctx, coll+"/20210101")
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

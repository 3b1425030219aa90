package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"medstory-be/pkg/database"
	"medstory-be/pkg/docstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresIntegration(t *testing.T) {
	dsn := os.Getenv("TEST_DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: TEST_DB_CONNECTION_STRING not set")
	}

	db, err := database.NewGormDBFromDSN(dsn, false)
	require.NoError(t, err)

	s, err := New(db)
	require.NoError(t, err)
	defer s.Close(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	uid := "it-" + time.Now().Format("150405.000000")
	blood := "users/" + uid + "/sections/analyzes/subsections/blood/notes"
	eye := "users/" + uid + "/sections/specialists/subsections/ophthalmologist/notes"

	require.NoError(t, s.Set(ctx, blood+"/1", map[string]interface{}{"uid": uid, "fullDate": "20210101"}))
	require.NoError(t, s.Set(ctx, blood+"/2", map[string]interface{}{"uid": uid, "fullDate": "20210315"}))
	require.NoError(t, s.Set(ctx, eye+"/3", map[string]interface{}{"uid": uid, "fullDate": "20210202"}))
	require.NoError(t, s.Set(ctx, blood+"/1", map[string]interface{}{"uid": uid, "fullDate": "20210101", "title": "updated"}))

	got, err := s.Get(ctx, blood+"/1")
	require.NoError(t, err)
	assert.Equal(t, "updated", got["title"])

	inBlood, err := s.List(ctx, docstore.Query{Collection: blood, OrderBy: "fullDate", Descending: true})
	require.NoError(t, err)
	require.Len(t, inBlood, 2)
	assert.Equal(t, blood+"/2", inBlood[0].Path)

	all, err := s.List(ctx, docstore.Query{Group: "notes", Field: "uid", Value: uid, OrderBy: "fullDate", Descending: true})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, eye+"/3", all[1].Path)

	for _, p := range []string{blood + "/1", blood + "/2", eye + "/3", eye + "/3"} {
		require.NoError(t, s.Delete(ctx, p))
	}
	_, err = s.Get(ctx, blood+"/2")
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

package mongo

import (
	"context"
	"os"
	"testing"
	"time"

	"medstory-be/pkg/docstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMongoIntegration(t *testing.T) {
	uri := os.Getenv("MONGO_URI")
	if uri == "" {
		t.Skip("Skipping integration test: MONGO_URI not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := New(ctx, Config{URI: uri, Database: "medstory_test", Timeout: 10 * time.Second})
	require.NoError(t, err)
	defer s.Close(ctx)

	uid := "it-" + time.Now().Format("150405.000000")
	blood := "users/" + uid + "/sections/analyzes/subsections/blood/notes"
	surgeon := "users/" + uid + "/sections/specialists/subsections/surgeon/notes"

	require.NoError(t, s.Set(ctx, blood+"/a", map[string]interface{}{"uid": uid, "fullDate": "20210101"}))
	require.NoError(t, s.Set(ctx, blood+"/b", map[string]interface{}{"uid": uid, "fullDate": "20210315"}))
	require.NoError(t, s.Set(ctx, surgeon+"/c", map[string]interface{}{"uid": uid, "fullDate": "20210202"}))
	require.NoError(t, s.Set(ctx, blood+"/a", map[string]interface{}{"uid": uid, "fullDate": "20210101", "title": "x"}))

	got, err := s.Get(ctx, blood+"/a")
	require.NoError(t, err)
	assert.Equal(t, "x", got["title"])

	all, err := s.List(ctx, docstore.Query{Group: "notes", Field: "uid", Value: uid, OrderBy: "fullDate", Descending: true})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "20210315", all[0].Data["fullDate"])
	assert.Equal(t, "20210202", all[1].Data["fullDate"])
	assert.Equal(t, "20210101", all[2].Data["fullDate"])

	for _, p := range []string{blood + "/a", blood + "/b", surgeon + "/c", surgeon + "/c"} {
		require.NoError(t, s.Delete(ctx, p))
	}
	_, err = s.Get(ctx, blood+"/b")
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

package memory

import (
	"context"
	"testing"

	"medstory-be/pkg/docstore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetGetDelete(t *testing.T) {
	ctx := context.Background()
	s := New()

	path := "users/u1/sections/analyzes/subsections/blood/notes/a"
	require.NoError(t, s.Set(ctx, path, map[string]interface{}{"title": "one"}))
	require.NoError(t, s.Set(ctx, path, map[string]interface{}{"title": "two"}))
	assert.Equal(t, 1, s.Len(), "set is an upsert")

	got, err := s.Get(ctx, path)
	require.NoError(t, err)
	assert.Equal(t, "two", got["title"])

	require.NoError(t, s.Delete(ctx, path))
	require.NoError(t, s.Delete(ctx, path), "delete is idempotent")

	_, err = s.Get(ctx, path)
	assert.ErrorIs(t, err, docstore.ErrNotFound)
}

func TestSetRejectsCollectionPath(t *testing.T) {
	err := New().Set(context.Background(), "users/u1/sections", map[string]interface{}{})
	assert.Error(t, err)
}

func TestListCollectionAndGroup(t *testing.T) {
	ctx := context.Background()
	s := New()

	put := func(path, uid, fullDate string) {
		require.NoError(t, s.Set(ctx, path, map[string]interface{}{"uid": uid, "fullDate": fullDate}))
	}
	put("users/u1/sections/analyzes/subsections/blood/notes/1", "u1", "20210101")
	put("users/u1/sections/analyzes/subsections/blood/notes/2", "u1", "20210315")
	put("users/u1/sections/specialists/subsections/surgeon/notes/3", "u1", "20210202")
	put("users/u2/sections/analyzes/subsections/blood/notes/4", "u2", "20210401")
	put("users/u1/profile/x", "u1", "20990101")

	byCollection, err := s.List(ctx, docstore.Query{
		Collection: "users/u1/sections/analyzes/subsections/blood/notes",
		OrderBy:    "fullDate",
		Descending: true,
	})
	require.NoError(t, err)
	require.Len(t, byCollection, 2)
	assert.Equal(t, "20210315", byCollection[0].Data["fullDate"])
	assert.Equal(t, "20210101", byCollection[1].Data["fullDate"])

	byGroup, err := s.List(ctx, docstore.Query{
		Group:      "notes",
		Field:      "uid",
		Value:      "u1",
		OrderBy:    "fullDate",
		Descending: true,
	})
	require.NoError(t, err)
	var dates []interface{}
	for _, d := range byGroup {
		dates = append(dates, d.Data["fullDate"])
	}
	assert.Equal(t, []interface{}{"20210315", "20210202", "20210101"}, dates)
}

func TestCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := New()
	assert.ErrorIs(t, s.Set(ctx, "a/b", nil), context.Canceled)
	_, err := s.List(ctx, docstore.Query{Group: "b"})
	assert.ErrorIs(t, err, context.Canceled)
}

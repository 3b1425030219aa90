package implementation

import (
	"context"
	"testing"
	"time"

	"medstory-be/internal/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileRepository_RoundTrip(t *testing.T) {
	ctx := context.Background()
	docs := newCountingDocs()
	repo := NewProfileRepository(docs, nil, time.Second)

	missing, err := repo.FindByUid(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, repo.Save(ctx, &entity.Profile{Uid: "u1", Name: "Anna"}))
	require.NoError(t, repo.Save(ctx, &entity.Profile{Uid: "u1", Name: "Anna K."}))

	got, err := repo.FindByUid(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, &entity.Profile{Uid: "u1", Name: "Anna K."}, got)

	stored, err := docs.Store.Get(ctx, "users/u1")
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"uid": "u1", "name": "Anna K."}, stored)
}

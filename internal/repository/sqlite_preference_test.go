package repository_test

import (
	"context"
	"testing"

	"github.com/alexanderramin/execview/internal/repository"
	"github.com/alexanderramin/execview/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPreferenceRepo_SetGetOverwrite(t *testing.T) {
	repo := repository.NewSQLitePreferenceRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "execview_theme", "light"))
	require.NoError(t, repo.Set(ctx, "execview_theme", "dark"))

	v, err := repo.Get(ctx, "execview_theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", v)
}

func TestPreferenceRepo_GetMissing(t *testing.T) {
	repo := repository.NewSQLitePreferenceRepo(testutil.NewTestDB(t))

	_, err := repo.Get(context.Background(), "execview_auth_token")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestPreferenceRepo_DeleteAndClear(t *testing.T) {
	repo := repository.NewSQLitePreferenceRepo(testutil.NewTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "a", "1"))
	require.NoError(t, repo.Set(ctx, "b", "2"))

	require.NoError(t, repo.Delete(ctx, "a"))
	require.NoError(t, repo.Delete(ctx, "a"), "deleting twice is fine")
	_, err := repo.Get(ctx, "a")
	assert.ErrorIs(t, err, repository.ErrNotFound)

	require.NoError(t, repo.Clear(ctx))
	_, err = repo.Get(ctx, "b")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

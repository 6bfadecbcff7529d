package repository_test

import (
	"context"
	"testing"

	"github.com/alexanderramin/execview/internal/repository"
	"github.com/alexanderramin/execview/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecordRepo(t *testing.T, collections ...string) *repository.SQLiteRecordRepo {
	t.Helper()
	db := testutil.NewTestDB(t)
	require.NoError(t, repository.NewSQLiteCollectionRepo(db).Ensure(context.Background(), collections...))
	return repository.NewSQLiteRecordRepo(db)
}

func ids(recs []repository.StoredRecord) []string {
	out := make([]string, len(recs))
	for i, r := range recs {
		out[i] = r.ID
	}
	return out
}

func TestRecordRepo_UpsertAppendsInInsertionOrder(t *testing.T) {
	repo := newRecordRepo(t, "c")
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, "c", "z", []byte(`{"n":1}`)))
	require.NoError(t, repo.Upsert(ctx, "c", "a", []byte(`{"n":2}`)))
	require.NoError(t, repo.Upsert(ctx, "c", "m", []byte(`{"n":3}`)))

	got, err := repo.List(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, []string{"z", "a", "m"}, ids(got))
	assert.JSONEq(t, `{"n":2}`, string(got[1].Payload))
	assert.False(t, got[0].UpdatedAt.IsZero())
}

func TestRecordRepo_UpsertReplacesInPlace(t *testing.T) {
	repo := newRecordRepo(t, "c")
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, "c", "a", []byte(`{"v":1}`)))
	require.NoError(t, repo.Upsert(ctx, "c", "b", []byte(`{"v":1}`)))
	require.NoError(t, repo.Upsert(ctx, "c", "a", []byte(`{"v":2}`)))

	got, err := repo.List(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, ids(got), "replacing keeps the original position")

	rec, err := repo.Get(ctx, "c", "a")
	require.NoError(t, err)
	assert.JSONEq(t, `{"v":2}`, string(rec.Payload))
}

func TestRecordRepo_InsertAtExplicitOrder(t *testing.T) {
	repo := newRecordRepo(t, "c")
	ctx := context.Background()

	require.NoError(t, repo.InsertAt(ctx, "c", "second", 2, []byte(`{}`)))
	require.NoError(t, repo.InsertAt(ctx, "c", "first", 1, []byte(`{}`)))

	got, err := repo.List(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, ids(got))
}

func TestRecordRepo_GetMissing(t *testing.T) {
	repo := newRecordRepo(t, "c")

	_, err := repo.Get(context.Background(), "c", "nope")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestRecordRepo_CollectionsAreIsolated(t *testing.T) {
	repo := newRecordRepo(t, "a", "b")
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, "a", "x", []byte(`{"from":"a"}`)))
	require.NoError(t, repo.Upsert(ctx, "b", "x", []byte(`{"from":"b"}`)))

	n, err := repo.Count(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	rec, err := repo.Get(ctx, "b", "x")
	require.NoError(t, err)
	assert.JSONEq(t, `{"from":"b"}`, string(rec.Payload))
}

func TestRecordRepo_DeleteAndDeleteAll(t *testing.T) {
	repo := newRecordRepo(t, "c")
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, repo.Upsert(ctx, "c", id, []byte(`{}`)))
	}

	require.NoError(t, repo.Delete(ctx, "c", "b"))
	assert.ErrorIs(t, repo.Delete(ctx, "c", "b"), repository.ErrNotFound)

	n, err := repo.DeleteAll(ctx, "c")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	count, err := repo.Count(ctx, "c")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestRecordRepo_UnknownCollectionRejected(t *testing.T) {
	repo := newRecordRepo(t)

	err := repo.Upsert(context.Background(), "unregistered", "a", []byte(`{}`))
	assert.Error(t, err)
}

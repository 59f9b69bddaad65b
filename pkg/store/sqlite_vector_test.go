package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLiteStore(t *testing.T) *SQLiteVectorStore {
	t.Helper()
	s, err := NewSQLiteVectorStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteVectorStoreAddAndSearch(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	require.NoError(t, s.Add(ctx, "hello", "Hello", []float32{1, 0, 0}))
	require.NoError(t, s.Add(ctx, "world", "World", []float32{0, 1, 0}))
	require.NoError(t, s.Add(ctx, "other", "other", []float32{0, 0, 1}))

	results, err := s.Search(ctx, []float32{0, 1, 0}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "world", results[0].ID)
	assert.Equal(t, "World", results[0].Text)
	assert.InDelta(t, 1.0, results[0].Score, 0.0001)
}

func TestSQLiteVectorStoreUpsert(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	require.NoError(t, s.Add(ctx, "a", "first", []float32{1, 0}))
	require.NoError(t, s.Add(ctx, "a", "second", []float32{0, 1}))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	results, err := s.Search(ctx, []float32{0, 1}, 5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "second", results[0].Text)
	assert.InDelta(t, 1.0, results[0].Score, 0.0001)
}

func TestSQLiteVectorStoreSkipsOtherDimensions(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	require.NoError(t, s.Add(ctx, "small", "s", []float32{1, 0}))
	require.NoError(t, s.Add(ctx, "large", "l", []float32{1, 0, 0}))

	results, err := s.Search(ctx, []float32{1, 0, 0}, 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "large", results[0].ID)
}

func TestSQLiteVectorStoreRejectsEmpty(t *testing.T) {
	s := newTestSQLiteStore(t)
	assert.Error(t, s.Add(context.Background(), "a", "a", nil))

	results, err := s.Search(context.Background(), nil, 3)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestSQLiteVectorStoreDelete(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	id := uuid.NewString()
	require.NoError(t, s.Add(ctx, id, "text", []float32{1}))
	require.NoError(t, s.Delete(ctx, id))
	require.NoError(t, s.Delete(ctx, id))

	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestSQLiteVectorStoreDeletePrefix(t *testing.T) {
	ctx := context.Background()
	s := newTestSQLiteStore(t)

	require.NoError(t, s.Add(ctx, "doc_1.txt:a-0", "a", []float32{1}))
	require.NoError(t, s.Add(ctx, "doc_1.txt:b-1", "b", []float32{1}))
	require.NoError(t, s.Add(ctx, "docX1.txt:c-0", "c", []float32{1}))
	require.NoError(t, s.Add(ctx, "other.txt:d-0", "d", []float32{1}))

	n, err := s.DeletePrefix(ctx, "doc_1.txt:")
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	total, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, total)

	_, err = s.DeletePrefix(ctx, "")
	assert.Error(t, err)
}

func TestSQLiteVectorStorePersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "vectors.db")

	s, err := NewSQLiteVectorStore(path)
	require.NoError(t, err)
	require.NoError(t, s.Add(ctx, "a", "alpha", []float32{0.25, -0.5, 1}))
	require.NoError(t, s.Close())

	reopened, err := NewSQLiteVectorStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	results, err := reopened.Search(ctx, []float32{0.25, -0.5, 1}, 1)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "alpha", results[0].Text)
	assert.InDelta(t, 1.0, results[0].Score, 0.0001)
}

func TestEmbeddingSerializationRoundTrip(t *testing.T) {
	in := []float32{0, 1.5, -2.25, 3.4e38}
	assert.Equal(t, in, deserializeEmbedding(serializeEmbedding(in)))
	assert.Nil(t, deserializeEmbedding([]byte{1, 2, 3}))
	assert.Nil(t, deserializeEmbedding(nil))
}

func TestStoresImplementInterface(t *testing.T) {
	var _ VectorStore = (*MemoryVectorStore)(nil)
	var _ VectorStore = (*SQLiteVectorStore)(nil)
}

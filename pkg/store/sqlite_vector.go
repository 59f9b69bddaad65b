package store

import (
	"context"
	"database/sql"
	"encoding/binary"
	"fmt"
	"math"

	_ "modernc.org/sqlite" // SQLite driver
)

// SQLiteVectorStore implements VectorStore on SQLite.
// Embeddings are stored as little-endian float32 BLOBs and searched with a
// linear cosine scan.
type SQLiteVectorStore struct {
	db *sql.DB
}

// NewSQLiteVectorStore opens (or creates) the database at dbPath.
// dbPath can be a file path or ":memory:".
func NewSQLiteVectorStore(dbPath string) (*SQLiteVectorStore, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// A single connection keeps ":memory:" databases consistent across queries
	db.SetMaxOpenConns(1)

	s := &SQLiteVectorStore{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return s, nil
}

func (s *SQLiteVectorStore) initSchema() error {
	_, err := s.db.Exec(`
	CREATE TABLE IF NOT EXISTS embeddings (
		id TEXT PRIMARY KEY,
		text TEXT NOT NULL,
		dimensions INTEGER NOT NULL,
		embedding BLOB NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);
	`)
	return err
}

// Close closes the underlying database.
func (s *SQLiteVectorStore) Close() error {
	return s.db.Close()
}

// Add adds or updates the entry for the given ID.
func (s *SQLiteVectorStore) Add(ctx context.Context, id string, text string, embedding []float32) error {
	if len(embedding) == 0 {
		return fmt.Errorf("embedding cannot be empty")
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO embeddings (id, text, dimensions, embedding) VALUES (?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET text = excluded.text, dimensions = excluded.dimensions, embedding = excluded.embedding
	`, id, text, len(embedding), serializeEmbedding(embedding))
	if err != nil {
		return fmt.Errorf("failed to store embedding %s: %w", id, err)
	}

	return nil
}

// Search finds the most similar vectors to the query.
// Only entries with the query's dimensionality are considered.
func (s *SQLiteVectorStore) Search(ctx context.Context, query []float32, topK int) ([]SearchResult, error) {
	if len(query) == 0 {
		return []SearchResult{}, nil
	}

	rows, err := s.db.QueryContext(ctx, `SELECT id, text, embedding FROM embeddings WHERE dimensions = ?`, len(query))
	if err != nil {
		return nil, fmt.Errorf("failed to query embeddings: %w", err)
	}
	defer rows.Close()

	results := []SearchResult{}
	for rows.Next() {
		var (
			id, text string
			blob     []byte
		)
		if err := rows.Scan(&id, &text, &blob); err != nil {
			return nil, fmt.Errorf("failed to scan embedding: %w", err)
		}

		results = append(results, SearchResult{
			ID:    id,
			Text:  text,
			Score: CosineSimilarity(query, deserializeEmbedding(blob)),
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating embeddings: %w", err)
	}

	return rank(results, topK), nil
}

// Delete removes an entry. Deleting a missing ID is not an error.
func (s *SQLiteVectorStore) Delete(ctx context.Context, id string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM embeddings WHERE id = ?`, id); err != nil {
		return fmt.Errorf("failed to delete embedding %s: %w", id, err)
	}
	return nil
}

// DeletePrefix removes every entry whose ID starts with prefix and returns
// how many were removed.
func (s *SQLiteVectorStore) DeletePrefix(ctx context.Context, prefix string) (int, error) {
	if prefix == "" {
		return 0, fmt.Errorf("prefix cannot be empty")
	}

	res, err := s.db.ExecContext(ctx, `DELETE FROM embeddings WHERE substr(id, 1, length(?1)) = ?1`, prefix)
	if err != nil {
		return 0, fmt.Errorf("failed to delete embeddings with prefix %s: %w", prefix, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to count deleted embeddings: %w", err)
	}
	return int(n), nil
}

// Count returns the number of stored entries.
func (s *SQLiteVectorStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM embeddings`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count embeddings: %w", err)
	}
	return n, nil
}

// serializeEmbedding converts a float32 slice to a little-endian BLOB.
func serializeEmbedding(embedding []float32) []byte {
	blob := make([]byte, len(embedding)*4)
	for i, val := range embedding {
		binary.LittleEndian.PutUint32(blob[i*4:], math.Float32bits(val))
	}
	return blob
}

// deserializeEmbedding converts a BLOB back to a float32 slice.
// Returns nil if the data is malformed (not a multiple of 4 bytes).
func deserializeEmbedding(data []byte) []float32 {
	if len(data) == 0 || len(data)%4 != 0 {
		return nil
	}

	embedding := make([]float32, len(data)/4)
	for i := range embedding {
		embedding[i] = math.Float32frombits(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return embedding
}

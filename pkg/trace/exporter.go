//go:build tracing

package trace

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const (
	defaultMaxSizeBytes    = 10 * 1024 * 1024
	defaultMaxRotatedFiles = 5
)

// FileExporter writes trace records as JSON Lines and rotates the file by size.
// Rotated files are named <path>.1 (newest) through <path>.N (oldest).
type FileExporter struct {
	path       string
	maxSize    int64
	maxRotated int

	mu     sync.Mutex
	file   *os.File
	enc    *json.Encoder
	closed bool
}

// WithMaxSize sets the file size that triggers rotation (default: 10MB).
func WithMaxSize(bytes int64) FileExporterOption {
	return func(v interface{}) {
		if fe, ok := v.(*FileExporter); ok && bytes > 0 {
			fe.maxSize = bytes
		}
	}
}

// WithMaxRotatedFiles sets how many rotated files are kept (default: 5).
func WithMaxRotatedFiles(count int) FileExporterOption {
	return func(v interface{}) {
		if fe, ok := v.(*FileExporter); ok && count > 0 {
			fe.maxRotated = count
		}
	}
}

// NewFileExporter opens (or creates) filePath for appending trace records.
func NewFileExporter(filePath string, opts ...FileExporterOption) (Exporter, error) {
	fe := &FileExporter{
		path:       filePath,
		maxSize:    defaultMaxSizeBytes,
		maxRotated: defaultMaxRotatedFiles,
	}
	for _, opt := range opts {
		opt(fe)
	}

	if err := os.MkdirAll(filepath.Dir(filePath), 0755); err != nil {
		return nil, fmt.Errorf("create trace directory: %w", err)
	}
	if err := fe.open(); err != nil {
		return nil, err
	}

	return fe, nil
}

// Export appends record and rotates the file once it reaches the size limit.
func (fe *FileExporter) Export(ctx context.Context, record *TraceRecord) error {
	fe.mu.Lock()
	defer fe.mu.Unlock()

	if fe.closed {
		return fmt.Errorf("exporter closed")
	}

	if err := fe.enc.Encode(record); err != nil {
		return fmt.Errorf("encode trace record: %w", err)
	}

	info, err := fe.file.Stat()
	if err != nil {
		return fmt.Errorf("stat trace file: %w", err)
	}
	if info.Size() < fe.maxSize {
		return nil
	}

	if err := fe.rotate(); err != nil {
		return fmt.Errorf("rotate trace file: %w", err)
	}
	return nil
}

// Close syncs and closes the trace file. Safe to call more than once.
func (fe *FileExporter) Close() error {
	fe.mu.Lock()
	defer fe.mu.Unlock()

	if fe.closed {
		return nil
	}
	fe.closed = true

	if err := fe.file.Sync(); err != nil {
		fe.file.Close()
		return fmt.Errorf("sync trace file: %w", err)
	}
	return fe.file.Close()
}

func (fe *FileExporter) open() error {
	file, err := os.OpenFile(fe.path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open trace file: %w", err)
	}
	fe.file = file
	fe.enc = json.NewEncoder(file)
	return nil
}

// rotate shifts <path>.i to <path>.i+1, drops the oldest and reopens path.
// Must be called with lock held.
func (fe *FileExporter) rotate() error {
	if err := fe.file.Close(); err != nil {
		return err
	}

	rotated := func(i int) string { return fmt.Sprintf("%s.%d", fe.path, i) }

	if err := os.Remove(rotated(fe.maxRotated)); err != nil && !os.IsNotExist(err) {
		return err
	}
	for i := fe.maxRotated - 1; i >= 1; i-- {
		if err := os.Rename(rotated(i), rotated(i+1)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	if err := os.Rename(fe.path, rotated(1)); err != nil {
		return err
	}

	return fe.open()
}

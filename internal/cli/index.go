package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/dan-solli/ocigenai/pkg/chunker"
	"github.com/dan-solli/ocigenai/pkg/store"
)

func newIndexCmd(opts *rootOptions) *cobra.Command {
	var chunkWords, overlapWords int

	cmd := &cobra.Command{
		Use:   "index <file>",
		Short: "Embed a file into the SQLite store",
		Long: `Embed a file into the SQLite store used by 'query'.

By default every non-empty line is one text with a random ID. With
--chunk-words the file is treated as one document and split into
sentence-aligned chunks stored under the file name; indexing the file again
replaces every chunk previously stored for it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prefix, ids, texts, err := readIndexInput(args[0], chunkWords, overlapWords)
			if err != nil {
				return err
			}

			a, err := newApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			vectors, err := store.NewSQLiteVectorStore(a.cfg.StorePath)
			if err != nil {
				return err
			}
			defer vectors.Close()

			embeddings, err := a.embedder.Embed(cmd.Context(), texts)
			if err != nil {
				return err
			}
			if len(embeddings) != len(texts) {
				return fmt.Errorf("expected %d embeddings, got %d", len(texts), len(embeddings))
			}

			if prefix != "" {
				removed, err := vectors.DeletePrefix(cmd.Context(), prefix)
				if err != nil {
					return err
				}
				a.logger.Debug("removed previous chunks", "prefix", prefix, "removed", removed)
			}

			for i, text := range texts {
				if err := vectors.Add(cmd.Context(), ids[i], text, embeddings[i]); err != nil {
					return err
				}
			}

			total, err := vectors.Count(cmd.Context())
			if err != nil {
				return err
			}

			a.logger.Info("indexed texts", "added", len(texts), "total", total, "store", a.cfg.StorePath)
			fmt.Fprintf(cmd.OutOrStdout(), "indexed %d texts (%d total)\n", len(texts), total)
			return nil
		},
	}

	cmd.Flags().IntVar(&chunkWords, "chunk-words", 0, "split the file into chunks of at most this many words (0: one text per line)")
	cmd.Flags().IntVar(&overlapWords, "overlap-words", chunker.DefaultOverlapWords, "words shared between consecutive chunks")
	return cmd
}

// readIndexInput returns parallel ID and text slices for path. In chunk mode
// prefix is the ID prefix shared by all of the file's chunks, otherwise empty.
func readIndexInput(path string, chunkWords, overlapWords int) (prefix string, ids, texts []string, err error) {
	f, err := os.Open(path)
	if err != nil {
		return "", nil, nil, fmt.Errorf("open input: %w", err)
	}
	defer f.Close()

	if chunkWords <= 0 {
		lines, err := readLines(f)
		if err != nil {
			return "", nil, nil, err
		}
		ids := make([]string, len(lines))
		for i := range ids {
			ids[i] = uuid.NewString()
		}
		return "", ids, lines, nil
	}

	data, err := io.ReadAll(f)
	if err != nil {
		return "", nil, nil, fmt.Errorf("read input: %w", err)
	}

	c := &chunker.Chunker{MaxWords: chunkWords, OverlapWords: overlapWords}
	chunks := c.Chunk(string(data))

	prefix = filepath.Base(path) + ":"
	ids = make([]string, len(chunks))
	texts = make([]string, len(chunks))
	for i, ch := range chunks {
		ids[i] = prefix + ch.ID
		texts[i] = ch.Text
	}
	return prefix, ids, texts, nil
}

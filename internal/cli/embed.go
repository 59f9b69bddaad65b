package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newEmbedCmd(opts *rootOptions) *cobra.Command {
	var query bool

	cmd := &cobra.Command{
		Use:   "embed [text...]",
		Short: "Print embeddings for texts as JSON",
		Long: `Embed each argument, or each non-empty stdin line when no arguments
are given, and print a JSON array with one vector per input in input order.

Examples:
  ocigenai-embed embed "Hello" "World"
  cat docs.txt | ocigenai-embed embed
  ocigenai-embed embed --query "how do I rotate keys?"`,
		RunE: func(cmd *cobra.Command, args []string) error {
			texts := args
			if len(texts) == 0 {
				lines, err := readLines(cmd.InOrStdin())
				if err != nil {
					return err
				}
				texts = lines
			}
			if query && len(texts) != 1 {
				return fmt.Errorf("--query takes exactly one text, got %d", len(texts))
			}

			a, err := newApp(opts, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer a.Close()

			var out any
			if query {
				vec, err := a.embedder.EmbedQuery(cmd.Context(), texts[0])
				if err != nil {
					return err
				}
				out = [][]float32{vec}
			} else {
				vecs, err := a.embedder.Embed(cmd.Context(), texts)
				if err != nil {
					return err
				}
				out = vecs
			}

			return json.NewEncoder(cmd.OutOrStdout()).Encode(out)
		},
	}

	cmd.Flags().BoolVar(&query, "query", false, "embed a single search query instead of documents")
	return cmd
}

// readLines returns the trimmed non-empty lines of r.
func readLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		if line := strings.TrimSpace(scanner.Text()); line != "" {
			lines = append(lines, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read input: %w", err)
	}
	return lines, nil
}

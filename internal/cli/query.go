package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dan-solli/ocigenai/pkg/store"
)

func newQueryCmd(opts *rootOptions) *cobra.Command {
	var topK int

	cmd := &cobra.Command{
		Use:   "query <text>",
		Short: "Find the stored texts most similar to a query",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if topK <= 0 {
				return fmt.Errorf("--top-k must be positive")
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

			vec, err := a.embedder.EmbedQuery(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}

			results, err := vectors.Search(cmd.Context(), vec, topK)
			if err != nil {
				return err
			}

			for _, r := range results {
				fmt.Fprintf(cmd.OutOrStdout(), "%.4f\t%s\n", r.Score, r.Text)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&topK, "top-k", "k", 5, "number of results")
	return cmd
}

// Package cli defines the Cobra command tree for the ocigenai-embed CLI.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/dan-solli/ocigenai/internal/config"
	"github.com/dan-solli/ocigenai/pkg/embeddings"
)

var (
	// version, commit, date are set via -ldflags at build time.
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

// rootOptions carries state shared by all subcommands.
type rootOptions struct {
	v           *viper.Viper
	configPath  string
	metricsFile string

	// embedder replaces the OCI inference client when set (tests).
	embedder embeddings.TextEmbedder
}

// Execute runs the root command.
func Execute(v, c, d string) {
	version, commit, date = v, c, d
	if err := newRootCmd(nil).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd(embedder embeddings.TextEmbedder) *cobra.Command {
	opts := &rootOptions{v: config.New(), embedder: embedder}

	cmd := &cobra.Command{
		Use:   "ocigenai-embed",
		Short: "Embed text with OCI Generative AI",
		Long: `ocigenai-embed turns text into vectors with an OCI Generative AI embedding model.

Settings come from --config (YAML, JSON or TOML), OCIGENAI_* environment
variables and flags, in increasing order of precedence.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := cmd.PersistentFlags()
	flags.StringVar(&opts.configPath, "config", "", "config file")
	flags.StringVar(&opts.metricsFile, "metrics-file", "", "write Prometheus metrics to this file on exit")
	flags.String("model", "", "model ID or dedicated endpoint OCID")
	flags.String("endpoint", "", "inference service endpoint")
	flags.String("compartment", "", "compartment OCID")
	flags.String("auth-type", "", "API_KEY, SECURITY_TOKEN, INSTANCE_PRINCIPAL or RESOURCE_PRINCIPAL")
	flags.String("auth-profile", "", "profile in the OCI config file")
	flags.String("log-level", "", "debug, info, warn or error")
	flags.String("trace-path", "", "append JSONL call traces to this file (tracing builds only)")
	flags.String("store", "", "SQLite database used by index and query")

	if err := bindFlags(opts.v, flags, flagKeys); err != nil {
		panic(err)
	}

	cmd.AddCommand(
		newEmbedCmd(opts),
		newIndexCmd(opts),
		newQueryCmd(opts),
		newVersionCmd(),
	)

	return cmd
}

// flagKeys maps config keys to the persistent flags that override them.
var flagKeys = map[string]string{
	"model_name":       "model",
	"service_endpoint": "endpoint",
	"compartment_id":   "compartment",
	"auth.type":        "auth-type",
	"auth.profile":     "auth-profile",
	"log.level":        "log-level",
	"trace_path":       "trace-path",
	"store_path":       "store",
}

// bindFlags binds each config key to its flag in flags.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet, keys map[string]string) error {
	for key, name := range keys {
		flag := flags.Lookup(name)
		if flag == nil {
			return fmt.Errorf("bind %s: no flag named %q", key, name)
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind %s: %w", key, err)
		}
	}
	return nil
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "ocigenai-embed %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}

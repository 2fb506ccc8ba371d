// Command loganalyser drives the ReAct log-analysis engine from a
// terminal: point it at a CSV log export and an entity catalog, then ask
// natural-language questions about the data one-shot or in a REPL.
package main

import (
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/config"
)

var (
	csvPath      string
	entitiesPath string
)

func main() {
	config.LoadEnv()

	rootCmd := buildRootCmd()
	if err := rootCmd.Execute(); err != nil {
		color.New(color.FgRed).Fprintf(os.Stderr, "loganalyser: %v\n", err)
		os.Exit(1)
	}
}

func buildRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "loganalyser",
		Short: "Ask natural-language questions about CSV log data via an LLM tool-use loop",
		Long: `loganalyser drives a ReAct-style engine: the LLM reasons about your
question, calls deterministic tools (search, filter, extract entities,
normalize terms) against the loaded log rows, observes each result, and
repeats until it finalizes an answer or a safety limit fires.`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&csvPath, "csv", os.Getenv("LOGANALYSER_CSV"), "path to the CSV log export (required)")
	rootCmd.PersistentFlags().StringVar(&entitiesPath, "entities", envOrDefault("LOGANALYSER_ENTITIES", "config/entities.yaml"), "path to the entity catalog YAML")

	rootCmd.AddCommand(buildAnalyzeCmd(), buildReplCmd())
	return rootCmd
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

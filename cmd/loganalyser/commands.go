package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/entitycatalog"
	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/llm/openai"
	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/logstore"
	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/orchestrator"
	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/tool"
	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/tools"
	"github.com/ayushwanjari1996/test-log-analyser-sub001/internal/util"
)

// queryDeadline returns the overall per-query wall-clock bound, overridable
// via AGENT_QUERY_DEADLINE_SECONDS (spec.md §5's "overall query deadline").
func queryDeadline() time.Duration {
	const fallback = 60 * time.Second
	v := os.Getenv("AGENT_QUERY_DEADLINE_SECONDS")
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return time.Duration(n) * time.Second
}

// engine bundles everything one query needs: the loaded rows, the tool
// registry, the entity catalog, and the LLM client.
type engine struct {
	rows     logstore.RowSet
	registry *tool.Registry
	catalog  *entitycatalog.Catalog
	provider *openai.Client
	prompt   string
}

func buildEngine() (*engine, error) {
	if csvPath == "" {
		return nil, fmt.Errorf("--csv is required (or set LOGANALYSER_CSV)")
	}

	store, err := logstore.Load(csvPath)
	if err != nil {
		return nil, fmt.Errorf("load csv %s: %w", csvPath, err)
	}

	cat, err := entitycatalog.Load(entitiesPath)
	if err != nil {
		return nil, fmt.Errorf("load entity catalog %s: %w", entitiesPath, err)
	}

	reg := tool.NewRegistry()
	tools.RegisterAll(reg, cat)

	provider, err := openai.NewClientFromEnv()
	if err != nil {
		return nil, fmt.Errorf("init LLM client: %w", err)
	}

	return &engine{
		rows:     store.LoadAll(),
		registry: reg,
		catalog:  cat,
		provider: provider,
		prompt:   orchestrator.BuildSystemPrompt(reg, cat),
	}, nil
}

func (e *engine) run(ctx context.Context, query string) orchestrator.Result {
	return orchestrator.Analyze(ctx, query, e.rows, e.registry, e.prompt, e.provider, queryDeadline())
}

func buildAnalyzeCmd() *cobra.Command {
	var query string

	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Answer a single question about the loaded log data",
		RunE: func(cmd *cobra.Command, args []string) error {
			if query == "" && len(args) > 0 {
				query = strings.Join(args, " ")
			}
			if query == "" {
				return fmt.Errorf("--query (or a trailing positional argument) is required")
			}

			e, err := buildEngine()
			if err != nil {
				return err
			}

			fmt.Printf("Loaded %d rows from %s (%d entity types)\n", e.rows.Len(), csvPath, len(e.catalog.Names()))

			result := e.run(context.Background(), query)
			printResult(result)
			if !result.Success {
				os.Exit(1)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&query, "query", "q", "", "the question to ask")
	return cmd
}

func buildReplCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Interactively ask questions about the loaded log data",
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := buildEngine()
			if err != nil {
				return err
			}

			fmt.Printf("Loaded %d rows from %s (%d entity types). Type a question, or 'exit' to quit.\n", e.rows.Len(), csvPath, len(e.catalog.Names()))

			scanner := bufio.NewScanner(os.Stdin)
			for {
				fmt.Print("> ")
				if !scanner.Scan() {
					return nil
				}
				query := strings.TrimSpace(scanner.Text())
				if query == "" {
					continue
				}
				if query == "exit" || query == "quit" {
					return nil
				}

				result := e.run(context.Background(), query)
				printResult(result)
			}
		},
	}
}

func printResult(result orchestrator.Result) {
	bold := color.New(color.Bold)
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	dim := color.New(color.Faint)

	if result.Success {
		green.Println("Answer:")
	} else {
		red.Println("No answer:")
	}
	fmt.Println(result.Answer)

	bold.Printf("\n(query_id=%s iterations=%d logs_analyzed=%d", result.QueryID, result.Iterations, result.LogsAnalyzed)
	if result.ErrorKind != "" {
		fmt.Printf(" error_kind=%s", result.ErrorKind)
	}
	fmt.Println(")")

	dim.Println("\nTrace:")
	for _, step := range result.Trace {
		line := fmt.Sprintf("  [%d] %s", step.Iteration, util.TruncateRunes(step.Decision.Reasoning, 120))
		if step.Decision.Tool != "" {
			line += fmt.Sprintf(" -> %s", step.Decision.Tool)
		}
		if step.Error != "" {
			line += fmt.Sprintf(" (error: %s)", util.TruncateRunes(step.Error, 80))
		} else if step.Result != nil {
			line += fmt.Sprintf(" (%s)", util.TruncateRunes(step.Result.Message, 80))
		}
		dim.Println(line)
	}
}

// Package main provides the hanoibench CLI entry point.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/richinex/hanoibench/cli"
)

var (
	// Global flags
	configPath string
	provider   string
	model      string
	dbPath     string
	verbose    bool
)

func main() {
	// Load .env file if present (ignore "file not found" errors)
	if err := godotenv.Load(); err != nil {
		if !os.IsNotExist(err) {
			fmt.Fprintf(os.Stderr, "Warning: failed to load .env file: %v\n", err)
		}
	}

	rootCmd := &cobra.Command{
		Use:   "hanoibench",
		Short: "Multi-turn Tower of Hanoi evaluation for LLMs",
		Long: `Evaluate language models on the Tower of Hanoi puzzle through
multi-turn conversations. Models submit partial move lists and receive state
feedback each turn, so long solutions are not limited by a single completion.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(verbose)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML config file")
	rootCmd.PersistentFlags().StringVarP(&provider, "provider", "p", "", "LLM provider (openai, anthropic, gemini, openrouter)")
	rootCmd.PersistentFlags().StringVarP(&model, "model", "m", "", "Model id override")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "Path to results database")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Show debug output")

	rootCmd.AddCommand(runCmd())
	rootCmd.AddCommand(resultsCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func runCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run one evaluation session per configured puzzle size",
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := cli.Options{
				ConfigPath: configPath,
				Provider:   provider,
				Model:      model,
				DBPath:     dbPath,
				Verbose:    verbose,
			}
			return cli.Run(context.Background(), opts)
		},
	}
}

func resultsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "results",
		Short: "List results from previous runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			path := dbPath
			if path == "" {
				path = "hanoibench.db"
			}
			return cli.Results(context.Background(), path)
		},
	}
}

func setupLogging(verbose bool) {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	slog.SetDefault(slog.New(handler))
}

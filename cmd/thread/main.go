package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"threadsum/internal/config"
	"threadsum/internal/model"
	"threadsum/internal/service"
	"threadsum/internal/thread"
	"threadsum/pkg/llm"
	"threadsum/pkg/neynar"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "thread",
		Short:        "Inspect and summarize Farcaster threads",
		SilenceUsage: true,
	}
	root.AddCommand(newTranscriptCmd(), newSummarizeCmd())
	return root
}

func newTranscriptCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transcript <hash>",
		Short: "Print one conversation chain per cast, oldest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return runTranscript(cmd.Context(), neynar.NewClient(cfg.NeynarAPIKey), args[0], cmd.OutOrStdout())
		},
	}
}

func newSummarizeCmd() *cobra.Command {
	var length string

	cmd := &cobra.Command{
		Use:   "summarize <hash>",
		Short: "Summarize a thread without reading or writing the cache",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			completer, err := llm.NewCompleter(cmd.Context(), cfg.LLM.Provider, cfg.LLM.APIKey, cfg.LLM.Model)
			if err != nil {
				return err
			}
			return runSummarize(cmd.Context(), neynar.NewClient(cfg.NeynarAPIKey), completer, args[0], model.ParseSummaryLength(length), cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&length, "length", "l", string(model.LengthShort), "summary length: 0 short, 1 medium, 2 long")
	return cmd
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	slog.SetDefault(config.NewLogger(os.Stderr, cfg.LogLevel))
	return cfg, nil
}

func runTranscript(ctx context.Context, fetcher neynar.ThreadFetcher, hash string, out io.Writer) error {
	casts, err := fetcher.FetchThread(ctx, hash)
	if err != nil {
		return fmt.Errorf("fetch thread %s: %w", hash, err)
	}

	for _, chain := range thread.FormatThreads(casts) {
		fmt.Fprintln(out, chain)
	}
	return nil
}

func runSummarize(ctx context.Context, fetcher neynar.ThreadFetcher, completer llm.Completer, hash string, length model.SummaryLength, out io.Writer) error {
	casts, err := fetcher.FetchThread(ctx, hash)
	if err != nil {
		return fmt.Errorf("fetch thread %s: %w", hash, err)
	}

	chains := thread.FormatThreads(casts)
	slog.Info("summarizing thread", "thread_hash", hash, "length", length, "chains", len(chains), "model", completer.ModelName())

	summary, err := completer.Complete(ctx, llm.ThreadSummaryPrompt(chains, length))
	if err != nil {
		return fmt.Errorf("summarize thread %s: %w", hash, err)
	}
	if summary == "" {
		summary = service.NoSummaryPlaceholder
	}

	fmt.Fprintln(out, summary)
	return nil
}

package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/janekbaraniewski/ctxline/internal/config"
	"github.com/janekbaraniewski/ctxline/internal/core"
	"github.com/janekbaraniewski/ctxline/internal/transcript"
	"github.com/spf13/cobra"
)

func newWatchCommand() *cobra.Command {
	var (
		transcriptPath string
		modelID        string
		debounce       time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Re-render whenever the session transcript changes",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			status := &core.StatusData{TranscriptPath: transcriptPath}
			if modelID != "" {
				status.Model = &core.ModelInfo{ID: modelID}
			}
			return runWatch(ctx, cmd.OutOrStdout(), cfg, status, debounce)
		},
	}
	cmd.Flags().StringVar(&transcriptPath, "transcript", "", "path to the session transcript (JSONL)")
	cmd.Flags().StringVar(&modelID, "model", "", "model id used to size the context window")
	cmd.Flags().DurationVar(&debounce, "debounce", transcript.DefaultDebounce, "delay before re-rendering after a change")
	_ = cmd.MarkFlagRequired("transcript")
	return cmd
}

func runWatch(ctx context.Context, out io.Writer, cfg config.Config, status *core.StatusData, debounce time.Duration) error {
	w, err := transcript.NewWatcher(status.TranscriptPath, debounce)
	if err != nil {
		return err
	}
	defer w.Close()

	renderer := newRenderer(out)
	for update := range w.Run(ctx) {
		rctx := core.RenderContext{Data: status}
		if update.Err != nil {
			log.Printf("loading transcript: %v", update.Err)
		} else {
			metrics := update.Metrics
			rctx.TokenMetrics = &metrics
		}

		line, ok := renderer.Render(cfg.Item, rctx, cfg.Settings)
		if !ok {
			continue
		}
		if _, err := fmt.Fprintln(out, line); err != nil {
			return err
		}
	}
	return nil
}

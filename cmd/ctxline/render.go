package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/janekbaraniewski/ctxline/internal/config"
	"github.com/janekbaraniewski/ctxline/internal/core"
	"github.com/janekbaraniewski/ctxline/internal/statusline"
	"github.com/janekbaraniewski/ctxline/internal/transcript"
	"github.com/janekbaraniewski/ctxline/internal/widgets"
)

func newRenderer(out io.Writer) *statusline.Renderer {
	return statusline.New(widgets.DefaultRegistry(), out)
}

// readStatus decodes the agent's status payload. An interactive terminal or an
// empty stream yields an empty payload.
func readStatus(in io.Reader) (*core.StatusData, error) {
	if f, ok := in.(*os.File); ok {
		if info, err := f.Stat(); err == nil && info.Mode()&os.ModeCharDevice != 0 {
			return &core.StatusData{}, nil
		}
	}

	data, err := io.ReadAll(in)
	if err != nil {
		return nil, fmt.Errorf("reading status payload: %w", err)
	}
	status := &core.StatusData{}
	if len(data) == 0 {
		return status, nil
	}
	if err := json.Unmarshal(data, status); err != nil {
		return nil, fmt.Errorf("parsing status payload: %w", err)
	}
	return status, nil
}

// renderContext builds the context for one refresh. Transcript problems are
// logged and leave the metrics empty so the widget hides.
func renderContext(status *core.StatusData, preview bool) core.RenderContext {
	ctx := core.RenderContext{IsPreview: preview, Data: status}
	if preview || status == nil {
		return ctx
	}

	metrics, err := transcript.Load(status.TranscriptPath)
	if err != nil {
		if !errors.Is(err, transcript.ErrNoTranscript) {
			log.Printf("loading transcript: %v", err)
		}
		return ctx
	}
	ctx.TokenMetrics = &metrics
	return ctx
}

func runRender(in io.Reader, out io.Writer, cfg config.Config, preview bool) error {
	status, err := readStatus(in)
	if err != nil {
		return err
	}

	line, ok := newRenderer(out).Render(cfg.Item, renderContext(status, preview), cfg.Settings)
	if !ok {
		return nil
	}
	_, err = fmt.Fprintln(out, line)
	return err
}

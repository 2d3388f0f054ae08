package transcript

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/janekbaraniewski/ctxline/internal/core"
)

const DefaultDebounce = 150 * time.Millisecond

// Update is one reload of the watched transcript.
type Update struct {
	Metrics core.TokenMetrics
	Err     error
}

// Watcher reloads a transcript whenever the agent appends to it. The parent
// directory is watched so the file may be created after the watcher starts.
type Watcher struct {
	path     string
	debounce time.Duration
	fw       *fsnotify.Watcher
}

func NewWatcher(path string, debounce time.Duration) (*Watcher, error) {
	if path == "" {
		return nil, ErrNoTranscript
	}
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving transcript path: %w", err)
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := fw.Add(filepath.Dir(abs)); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	return &Watcher{path: abs, debounce: debounce, fw: fw}, nil
}

// Run emits the current metrics immediately and again after every debounced
// change. The channel is closed when ctx is cancelled or the watcher is
// closed.
func (w *Watcher) Run(ctx context.Context) <-chan Update {
	out := make(chan Update, 1)
	go w.loop(ctx, out)
	return out
}

func (w *Watcher) loop(ctx context.Context, out chan<- Update) {
	defer close(out)

	send := func() bool {
		m, err := Load(w.path)
		select {
		case out <- Update{Metrics: m, Err: err}:
			return true
		case <-ctx.Done():
			return false
		}
	}
	if !send() {
		return
	}

	pending := time.NewTimer(w.debounce)
	pending.Stop()
	defer pending.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case event, ok := <-w.fw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				pending.Reset(w.debounce)
			}

		case err, ok := <-w.fw.Errors:
			if !ok {
				return
			}
			log.Printf("transcript watcher: %v", err)

		case <-pending.C:
			if !send() {
				return
			}
		}
	}
}

func (w *Watcher) Close() error {
	return w.fw.Close()
}

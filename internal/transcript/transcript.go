// Package transcript derives session token metrics from a coding agent's
// JSONL conversation transcript.
package transcript

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/janekbaraniewski/ctxline/internal/core"
	"github.com/samber/lo"
)

// ErrNoTranscript is returned when the transcript path is empty or the file
// does not exist yet.
var ErrNoTranscript = errors.New("transcript not found")

type entry struct {
	Type              string   `json:"type"`
	Timestamp         string   `json:"timestamp"`
	IsSidechain       bool     `json:"isSidechain"`
	IsAPIErrorMessage bool     `json:"isApiErrorMessage"`
	Message           *message `json:"message,omitempty"`

	parsedAt time.Time
}

type message struct {
	Model string `json:"model"`
	Usage *usage `json:"usage,omitempty"`
}

type usage struct {
	InputTokens              int `json:"input_tokens"`
	OutputTokens             int `json:"output_tokens"`
	CacheCreationInputTokens int `json:"cache_creation_input_tokens"`
	CacheReadInputTokens     int `json:"cache_read_input_tokens"`
}

func (e entry) usage() *usage {
	if e.Message == nil {
		return nil
	}
	return e.Message.Usage
}

// Load reads the transcript at path and computes its token metrics.
func Load(path string) (core.TokenMetrics, error) {
	if path == "" {
		return core.TokenMetrics{}, ErrNoTranscript
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return core.TokenMetrics{}, fmt.Errorf("opening %s: %w", path, ErrNoTranscript)
		}
		return core.TokenMetrics{}, fmt.Errorf("opening transcript: %w", err)
	}
	defer f.Close()

	entries, err := parse(f)
	if err != nil {
		return core.TokenMetrics{}, fmt.Errorf("reading transcript %s: %w", path, err)
	}
	return metrics(entries), nil
}

func parse(r io.Reader) ([]entry, error) {
	var entries []entry
	scanner := bufio.NewScanner(r)
	buf := make([]byte, 0, 256*1024)
	scanner.Buffer(buf, 10*1024*1024) // 10MB max line size

	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}
		var e entry
		if err := json.Unmarshal(line, &e); err != nil {
			continue // skip malformed lines
		}
		if t, err := time.Parse(time.RFC3339Nano, e.Timestamp); err == nil {
			e.parsedAt = t
		}
		entries = append(entries, e)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

// metrics sums usage over all entries. ContextLength comes from the most
// recent main-chain entry that carries usage; sidechain (sub-agent) and API
// error entries never count towards it.
func metrics(entries []entry) core.TokenMetrics {
	var m core.TokenMetrics
	for _, e := range entries {
		u := e.usage()
		if u == nil {
			continue
		}
		m.InputTokens += u.InputTokens
		m.OutputTokens += u.OutputTokens
		m.CachedTokens += u.CacheReadInputTokens + u.CacheCreationInputTokens
	}
	m.TotalTokens = m.InputTokens + m.OutputTokens + m.CachedTokens

	mainChain := lo.Filter(entries, func(e entry, _ int) bool {
		return e.usage() != nil && !e.IsSidechain && !e.IsAPIErrorMessage
	})
	if len(mainChain) == 0 {
		return m
	}
	latest := lo.MaxBy(mainChain, func(a, b entry) bool {
		// Later timestamps win; ties keep file order, so the last line wins.
		return !a.parsedAt.Before(b.parsedAt)
	})
	u := latest.usage()
	m.ContextLength = u.InputTokens + u.CacheReadInputTokens + u.CacheCreationInputTokens
	return m
}

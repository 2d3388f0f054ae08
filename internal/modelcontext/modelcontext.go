// Package modelcontext resolves the context window size of a model from its
// identifier.
package modelcontext

import (
	"strings"

	"github.com/samber/lo"
)

const (
	DefaultMaxTokens = 200_000
	// ExtendedMaxTokens applies to models running with the 1M-token context
	// beta, signalled by a "[1m]" or "-1m" suffix on the model id.
	ExtendedMaxTokens = 1_000_000

	// UsableFraction is the share of the window available before the agent
	// auto-compacts the conversation.
	UsableFraction = 0.8
)

// Config describes the context window of one model. UsableTokens is always
// positive.
type Config struct {
	MaxTokens    int
	UsableTokens int
}

var knownVendors = []string{"anthropic", "bedrock", "vertex", "openai", "google"}

// Lookup returns the context configuration for modelID. Unknown or empty ids
// get the default window; Lookup never fails.
func Lookup(modelID string) Config {
	tokens := splitModelTokens(normalizeModelID(modelID))
	if lo.Contains(tokens, "1m") {
		return newConfig(ExtendedMaxTokens)
	}
	return newConfig(DefaultMaxTokens)
}

func newConfig(maxTokens int) Config {
	usable := int(float64(maxTokens) * UsableFraction)
	if usable <= 0 {
		usable = maxTokens
	}
	return Config{MaxTokens: maxTokens, UsableTokens: usable}
}

// normalizeModelID lowercases the id, strips "models/" and vendor prefixes,
// and collapses every run of non-alphanumeric runes (except '.') to a dash.
func normalizeModelID(raw string) string {
	model := strings.ToLower(strings.TrimSpace(raw))
	model = strings.TrimPrefix(model, "models/")
	model = strings.Trim(model, "/")
	if parts := strings.SplitN(model, "/", 2); len(parts) == 2 && lo.Contains(knownVendors, parts[0]) {
		model = parts[1]
	}

	var b strings.Builder
	b.Grow(len(model))
	lastDash := false
	for _, r := range model {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
			lastDash = false
		default:
			if !lastDash {
				b.WriteByte('-')
				lastDash = true
			}
		}
	}
	return strings.Trim(b.String(), "-")
}

func splitModelTokens(model string) []string {
	if model == "" {
		return nil
	}
	return lo.Compact(strings.Split(model, "-"))
}

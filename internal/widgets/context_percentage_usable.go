package widgets

import (
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/janekbaraniewski/ctxline/internal/core"
	"github.com/janekbaraniewski/ctxline/internal/modelcontext"
)

const (
	TypeContextPercentageUsable = "context-percentage-usable"

	ActionToggleInverse  = "toggle-inverse"
	ActionToggleProgress = "toggle-progress"

	// Sample values shown while the widget is being configured.
	previewUsedPercent      = 11.6
	previewRemainingPercent = 88.4
)

var contextPercentageUsableKeybinds = []core.CustomKeybind{
	{Key: "l", Label: "(l)eft/remaining", Action: ActionToggleInverse},
	{Key: "p", Label: "(p)rogress toggle", Action: ActionToggleProgress},
}

// ContextPercentageUsable shows how much of the usable context window (the
// part before auto-compact) is used, or with the inverse option how much is
// left.
type ContextPercentageUsable struct {
	// lookup resolves the window size for a model id.
	lookup func(modelID string) modelcontext.Config
}

var _ core.Widget = (*ContextPercentageUsable)(nil)

func NewContextPercentageUsable() *ContextPercentageUsable {
	return &ContextPercentageUsable{lookup: modelcontext.Lookup}
}

func (w *ContextPercentageUsable) DefaultColor() string { return "green" }

func (w *ContextPercentageUsable) Description() string {
	return "Shows percentage of usable context window used or remaining (80% of max before auto-compact)"
}

func (w *ContextPercentageUsable) DisplayName() string { return "Context % (usable)" }

func (w *ContextPercentageUsable) EditorDisplay(item core.WidgetItem) core.EditorDisplay {
	opts := OptionsFrom(item)

	var modifiers []string
	if opts.Inverse {
		modifiers = append(modifiers, "remaining")
	}
	switch opts.Display {
	case DisplayProgress:
		modifiers = append(modifiers, "progress bar")
	case DisplayProgressShort:
		modifiers = append(modifiers, "short bar")
	}

	out := core.EditorDisplay{DisplayText: w.DisplayName()}
	if len(modifiers) > 0 {
		out.ModifierText = "(" + strings.Join(modifiers, ", ") + ")"
	}
	return out
}

func (w *ContextPercentageUsable) HandleEditorAction(action string, item core.WidgetItem) (core.WidgetItem, bool) {
	switch action {
	case ActionToggleInverse:
		inverse := OptionsFrom(item).Inverse
		return item.WithMetadata(metaInverse, strconv.FormatBool(!inverse)), true
	case ActionToggleProgress:
		current, ok := item.Meta(metaDisplay)
		if !ok {
			current = string(DisplayText)
		}
		return item.WithMetadata(metaDisplay, string(nextDisplayMode(current))), true
	default:
		return core.WidgetItem{}, false
	}
}

func (w *ContextPercentageUsable) Render(item core.WidgetItem, ctx core.RenderContext, _ core.Settings) (string, bool) {
	opts := OptionsFrom(item)

	var percent float64
	switch {
	case ctx.IsPreview:
		percent = previewUsedPercent
		if opts.Inverse {
			percent = previewRemainingPercent
		}
	case ctx.TokenMetrics != nil:
		percent = w.displayPercent(ctx.TokenMetrics.ContextLength, ctx.Data.ModelID(), opts.Inverse)
	default:
		return "", false
	}

	return formatPercent(percent, opts.Display, item.RawValue), true
}

// displayPercent computes min(100, used/usable*100), inverted when asked.
// Negative token counts are treated as zero so the result stays in [0,100].
func (w *ContextPercentageUsable) displayPercent(contextLength int, modelID string, inverse bool) float64 {
	lookup := w.lookup
	if lookup == nil {
		lookup = modelcontext.Lookup
	}
	usable := lookup(modelID).UsableTokens
	if usable <= 0 {
		usable = modelcontext.Lookup("").UsableTokens
	}

	used := math.Min(100, float64(max(contextLength, 0))/float64(usable)*100)
	if inverse {
		return 100 - used
	}
	return used
}

// formatTenths renders p with one decimal. Exact ties round away from zero;
// every other value is formatted from the float's exact decimal expansion,
// which %.1f already does.
func formatTenths(p float64) string {
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return fmt.Sprintf("%.1f", p)
	}

	abs := math.Abs(p)
	scaled := new(big.Float).SetPrec(128).Mul(new(big.Float).SetFloat64(abs), big.NewFloat(10))
	whole, _ := scaled.Int(nil)
	frac := new(big.Float).SetPrec(128).Sub(scaled, new(big.Float).SetInt(whole))
	if frac.Cmp(big.NewFloat(0.5)) != 0 {
		return fmt.Sprintf("%.1f", p)
	}

	whole.Add(whole, big.NewInt(1))
	q, r := new(big.Int).QuoRem(whole, big.NewInt(10), new(big.Int))
	sign := ""
	if p < 0 {
		sign = "-"
	}
	return fmt.Sprintf("%s%s.%s", sign, q, r)
}

func formatPercent(percent float64, mode DisplayMode, raw bool) string {
	value := formatTenths(percent) + "%"

	width := 0
	switch mode {
	case DisplayProgress:
		width = progressBarWidth
	case DisplayProgressShort:
		width = progressShortBarWidth
	}

	if width == 0 {
		if raw {
			return value
		}
		return "Ctx(u): " + value
	}

	bar := "[" + renderProgressBar(percent, width) + "] " + value
	if raw {
		return bar
	}
	return "Ctx(u) " + bar
}

func (w *ContextPercentageUsable) CustomKeybinds() []core.CustomKeybind {
	out := make([]core.CustomKeybind, len(contextPercentageUsableKeybinds))
	copy(out, contextPercentageUsableKeybinds)
	return out
}

func (w *ContextPercentageUsable) SupportsRawValue() bool { return true }

func (w *ContextPercentageUsable) SupportsColors(core.WidgetItem) bool { return true }

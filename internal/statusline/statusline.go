// Package statusline renders a configured widget item into the single line
// printed back to the coding agent.
package statusline

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/janekbaraniewski/ctxline/internal/core"
	"github.com/janekbaraniewski/ctxline/internal/widgets"
	"github.com/muesli/termenv"
)

const ellipsis = "…"

type Renderer struct {
	registry *widgets.Registry
	lg       *lipgloss.Renderer
}

// New returns a renderer writing styles for out. Colour output is forced to
// 256 colours because the agent reads the line through a pipe.
func New(registry *widgets.Registry, out io.Writer) *Renderer {
	lg := lipgloss.NewRenderer(out)
	lg.SetColorProfile(termenv.ANSI256)
	return &Renderer{registry: registry, lg: lg}
}

// Widget returns the implementation for item, if its type is registered.
func (r *Renderer) Widget(item core.WidgetItem) (core.Widget, bool) {
	return r.registry.Get(item.Type)
}

// Render produces the final line for item. It reports false when the item
// type is unknown or the widget has nothing to show.
func (r *Renderer) Render(item core.WidgetItem, ctx core.RenderContext, settings core.Settings) (string, bool) {
	w, ok := r.Widget(item)
	if !ok {
		return "", false
	}
	text, ok := w.Render(item, ctx, settings)
	if !ok || text == "" {
		return "", false
	}

	if settings.MaxWidth > 0 && ansi.StringWidth(text) > settings.MaxWidth {
		text = ansi.Truncate(text, settings.MaxWidth, ellipsis)
	}

	if settings.Colors && w.SupportsColors(item) {
		text = r.style(item, w).Render(text)
	}
	return text, true
}

func (r *Renderer) style(item core.WidgetItem, w core.Widget) lipgloss.Style {
	style := r.lg.NewStyle().Bold(item.Bold)
	color, ok := resolveColor(item.Color)
	if !ok {
		color, ok = resolveColor(w.DefaultColor())
	}
	if ok {
		style = style.Foreground(color)
	}
	return style
}

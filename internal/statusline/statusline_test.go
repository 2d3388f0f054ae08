package statusline

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/janekbaraniewski/ctxline/internal/core"
	"github.com/janekbaraniewski/ctxline/internal/widgets"
)

func newTestRenderer() *Renderer {
	return New(widgets.DefaultRegistry(), &bytes.Buffer{})
}

func ctxItem(metadata map[string]string) core.WidgetItem {
	return core.WidgetItem{ID: "1", Type: widgets.TypeContextPercentageUsable, Metadata: metadata}
}

func liveContext(contextLength int) core.RenderContext {
	return core.RenderContext{TokenMetrics: &core.TokenMetrics{ContextLength: contextLength}}
}

func TestRender_Plain(t *testing.T) {
	r := newTestRenderer()
	got, ok := r.Render(ctxItem(nil), liveContext(16000), core.Settings{})
	if !ok {
		t.Fatal("expected output")
	}
	if got != "Ctx(u): 10.0%" {
		t.Fatalf("Render() = %q", got)
	}
}

func TestRender_Colored(t *testing.T) {
	r := newTestRenderer()
	item := ctxItem(nil)
	item.Bold = true

	got, ok := r.Render(item, liveContext(16000), core.Settings{Colors: true})
	if !ok {
		t.Fatal("expected output")
	}
	if !strings.Contains(got, "\x1b[") {
		t.Fatalf("expected ANSI styling, got %q", got)
	}
	if stripped := ansi.Strip(got); stripped != "Ctx(u): 10.0%" {
		t.Fatalf("stripped output = %q", stripped)
	}
}

func TestRender_Hidden(t *testing.T) {
	r := newTestRenderer()

	if got, ok := r.Render(ctxItem(nil), core.RenderContext{}, core.Settings{Colors: true}); ok || got != "" {
		t.Fatalf("no metrics: Render() = %q, %v", got, ok)
	}

	unknown := core.WidgetItem{Type: "git-branch"}
	if got, ok := r.Render(unknown, liveContext(1), core.Settings{}); ok || got != "" {
		t.Fatalf("unknown type: Render() = %q, %v", got, ok)
	}
}

func TestRender_Truncates(t *testing.T) {
	r := newTestRenderer()
	item := ctxItem(map[string]string{"display": "progress"})

	got, ok := r.Render(item, core.RenderContext{IsPreview: true}, core.Settings{MaxWidth: 20})
	if !ok {
		t.Fatal("expected output")
	}
	if w := ansi.StringWidth(got); w > 20 {
		t.Fatalf("width = %d, want <= 20 (%q)", w, got)
	}
	if !strings.HasSuffix(got, ellipsis) {
		t.Fatalf("expected ellipsis tail, got %q", got)
	}
	if !strings.HasPrefix(got, "Ctx(u) [") {
		t.Fatalf("expected label prefix, got %q", got)
	}
}

func TestRender_NoTruncationWhenFits(t *testing.T) {
	r := newTestRenderer()
	got, _ := r.Render(ctxItem(nil), core.RenderContext{IsPreview: true}, core.Settings{MaxWidth: 80})
	if got != "Ctx(u): 11.6%" {
		t.Fatalf("Render() = %q", got)
	}
}

func TestResolveColor(t *testing.T) {
	tests := []struct {
		name   string
		want   lipgloss.Color
		wantOK bool
	}{
		{"green", "2", true},
		{"Bright-Cyan", "14", true},
		{"bright_red", "9", true},
		{"#A6E3A1", "#A6E3A1", true},
		{"#123", "#123", true},
		{"#12", "", false},
		{"", "", false},
		{"chartreuse", "", false},
	}
	for _, tt := range tests {
		got, ok := resolveColor(tt.name)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("resolveColor(%q) = %q, %v; want %q, %v", tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
}

package tui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/janekbaraniewski/ctxline/internal/core"
	"github.com/janekbaraniewski/ctxline/internal/statusline"
	"github.com/janekbaraniewski/ctxline/internal/widgets"
)

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func newTestEditor(t *testing.T, item core.WidgetItem) Editor {
	t.Helper()
	r := statusline.New(widgets.DefaultRegistry(), &bytes.Buffer{})
	m, err := NewEditor(r, item, core.Settings{})
	if err != nil {
		t.Fatalf("NewEditor() error: %v", err)
	}
	return m
}

func press(t *testing.T, m Editor, msgs ...tea.KeyMsg) (Editor, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, msg := range msgs {
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Editor)
	}
	return m, cmd
}

func baseItem() core.WidgetItem {
	return core.WidgetItem{ID: "1", Type: widgets.TypeContextPercentageUsable}
}

func TestEditor_CustomKeybinds(t *testing.T) {
	m := newTestEditor(t, baseItem())

	m, _ = press(t, m, runes("l"), runes("p"))
	opts := widgets.OptionsFrom(m.Item())
	if !opts.Inverse || opts.Display != widgets.DisplayProgress {
		t.Fatalf("options after l,p = %+v", opts)
	}

	view := ansi.Strip(m.View())
	if !strings.Contains(view, "(remaining, progress bar)") {
		t.Errorf("view missing modifiers:\n%s", view)
	}
	if !strings.Contains(view, "88.4%") {
		t.Errorf("view missing inverted preview:\n%s", view)
	}
}

func TestEditor_UnknownKeyIgnored(t *testing.T) {
	m := newTestEditor(t, baseItem())
	m, cmd := press(t, m, runes("x"))
	if cmd != nil {
		t.Fatal("unexpected command for unbound key")
	}
	if len(m.history) != 1 {
		t.Fatalf("history length = %d, want 1", len(m.history))
	}
}

func TestEditor_UndoRedo(t *testing.T) {
	orig := baseItem()
	m := newTestEditor(t, orig)

	m, _ = press(t, m, runes("p"), runes("p"))
	if got := widgets.OptionsFrom(m.Item()).Display; got != widgets.DisplayProgressShort {
		t.Fatalf("display = %q", got)
	}

	m, _ = press(t, m, runes("u"))
	if got := widgets.OptionsFrom(m.Item()).Display; got != widgets.DisplayProgress {
		t.Fatalf("after undo display = %q", got)
	}

	m, _ = press(t, m, tea.KeyMsg{Type: tea.KeyCtrlR})
	if got := widgets.OptionsFrom(m.Item()).Display; got != widgets.DisplayProgressShort {
		t.Fatalf("after redo display = %q", got)
	}

	// A new edit after undo drops the redo tail.
	m, _ = press(t, m, runes("u"), runes("u"), runes("l"), tea.KeyMsg{Type: tea.KeyCtrlR})
	if len(m.history) != 2 {
		t.Fatalf("history length = %d, want 2", len(m.history))
	}
	if m.status != "nothing to redo" {
		t.Fatalf("status = %q", m.status)
	}
	if orig.Metadata != nil {
		t.Fatal("original item was mutated")
	}
}

func TestEditor_UndoAtStart(t *testing.T) {
	m := newTestEditor(t, baseItem())
	m, _ = press(t, m, runes("u"))
	if m.statusOK || m.status != "nothing to undo" {
		t.Fatalf("status = %q ok=%v", m.status, m.statusOK)
	}
}

func TestEditor_ToggleRaw(t *testing.T) {
	m := newTestEditor(t, baseItem())
	m, _ = press(t, m, runes("r"))
	if !m.Item().RawValue {
		t.Fatal("raw value not toggled")
	}
	view := ansi.Strip(m.View())
	if strings.Contains(view, "Ctx(u): 11.6%") || !strings.Contains(view, "11.6%") {
		t.Fatalf("raw preview should drop the label:\n%s", view)
	}
}

func TestEditor_SaveAndQuit(t *testing.T) {
	m := newTestEditor(t, baseItem())

	saved, cmd := press(t, m, runes("l"), tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil || !saved.Saved() {
		t.Fatal("enter should save and quit")
	}
	if saved.View() != "" {
		t.Fatal("view should be empty after quitting")
	}

	quit, cmd := press(t, m, runes("l"), runes("q"))
	if cmd == nil || quit.Saved() {
		t.Fatal("q should quit without saving")
	}
}

func TestEditor_HelpListsKeybinds(t *testing.T) {
	m := newTestEditor(t, baseItem())
	view := ansi.Strip(m.View())
	for _, want := range []string{"(l)eft/remaining", "(p)rogress toggle", "raw value", "undo", "redo"} {
		if !strings.Contains(view, want) {
			t.Errorf("help missing %q:\n%s", want, view)
		}
	}
}

func TestNewEditor_UnknownType(t *testing.T) {
	r := statusline.New(widgets.DefaultRegistry(), &bytes.Buffer{})
	_, err := NewEditor(r, core.WidgetItem{Type: "nope"}, core.Settings{})
	if !errors.Is(err, ErrUnknownWidget) {
		t.Fatalf("error = %v, want ErrUnknownWidget", err)
	}
}

package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/janekbaraniewski/ctxline/internal/core"
	"github.com/janekbaraniewski/ctxline/internal/statusline"
	"github.com/janekbaraniewski/ctxline/internal/widgets"
)

var ErrUnknownWidget = errors.New("unknown widget type")

// Editor is an interactive bubbletea model for one widget item. Every change
// pushes a new item onto the history, so undo and redo are index moves.
type Editor struct {
	renderer *statusline.Renderer
	widget   core.Widget
	settings core.Settings

	history []core.WidgetItem
	cursor  int

	status   string
	statusOK bool
	saved    bool
	quitting bool
}

func NewEditor(renderer *statusline.Renderer, item core.WidgetItem, settings core.Settings) (Editor, error) {
	w, ok := renderer.Widget(item)
	if !ok {
		return Editor{}, fmt.Errorf("%w: %q", ErrUnknownWidget, item.Type)
	}
	return Editor{
		renderer: renderer,
		widget:   w,
		settings: settings,
		history:  []core.WidgetItem{item},
	}, nil
}

// Item returns the item as currently edited.
func (m Editor) Item() core.WidgetItem { return m.history[m.cursor] }

// Saved reports whether the user confirmed the edit.
func (m Editor) Saved() bool { return m.saved }

func (m Editor) Init() tea.Cmd { return nil }

func (m Editor) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Editor) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	switch key {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "enter", "s":
		m.saved = true
		m.quitting = true
		return m, tea.Quit
	case "u":
		if m.cursor == 0 {
			m.setStatus("nothing to undo", false)
			return m, nil
		}
		m.cursor--
		m.setStatus("undone", true)
		return m, nil
	case "ctrl+r":
		if m.cursor == len(m.history)-1 {
			m.setStatus("nothing to redo", false)
			return m, nil
		}
		m.cursor++
		m.setStatus("redone", true)
		return m, nil
	case "r":
		if !m.widget.SupportsRawValue() {
			m.setStatus("raw value not supported", false)
			return m, nil
		}
		next := m.Item().Clone()
		next.RawValue = !next.RawValue
		m.push(next)
		m.setStatus(fmt.Sprintf("raw value %s", onOff(next.RawValue)), true)
		return m, nil
	}

	action, ok := widgets.ActionForKey(m.widget, key)
	if !ok {
		return m, nil
	}
	next, ok := m.widget.HandleEditorAction(action, m.Item())
	if !ok {
		m.setStatus(fmt.Sprintf("action %q not handled", action), false)
		return m, nil
	}
	m.push(next)
	m.setStatus(action, true)
	return m, nil
}

// push appends item after the cursor, dropping any redo tail.
func (m *Editor) push(item core.WidgetItem) {
	history := make([]core.WidgetItem, m.cursor+1, m.cursor+2)
	copy(history, m.history[:m.cursor+1])
	m.history = append(history, item)
	m.cursor = len(m.history) - 1
}

func (m *Editor) setStatus(msg string, ok bool) {
	m.status = msg
	m.statusOK = ok
}

func (m Editor) View() string {
	if m.quitting {
		return ""
	}

	item := m.Item()
	display := m.widget.EditorDisplay(item)

	var b strings.Builder
	b.WriteString(headerBrandStyle.Render("ctxline") + dimStyle.Render(" · ") + headerStyle.Render("widget editor"))
	b.WriteString("\n\n")

	b.WriteString(valueStyle.Render(display.DisplayText))
	if display.ModifierText != "" {
		b.WriteString(" " + modifierStyle.Render(display.ModifierText))
	}
	if item.RawValue {
		b.WriteString(" " + dimStyle.Render("[raw]"))
	}
	b.WriteString("\n")
	b.WriteString(labelStyle.Render(m.widget.Description()))
	b.WriteString("\n\n")

	preview, ok := m.renderer.Render(item, core.RenderContext{IsPreview: true}, m.settings)
	if !ok {
		preview = dimStyle.Render("(hidden)")
	}
	b.WriteString(previewBoxStyle.Render(preview))
	b.WriteString("\n\n")

	b.WriteString(m.helpLine())
	if m.status != "" {
		b.WriteString("\n")
		if m.statusOK {
			b.WriteString(statusOKStyle.Render(m.status))
		} else {
			b.WriteString(statusErrStyle.Render(m.status))
		}
	}
	b.WriteString("\n")
	return b.String()
}

func (m Editor) helpLine() string {
	var parts []string
	for _, kb := range m.widget.CustomKeybinds() {
		parts = append(parts, helpKeyStyle.Render(kb.Key)+" "+helpStyle.Render(kb.Label))
	}
	if m.widget.SupportsRawValue() {
		parts = append(parts, helpKeyStyle.Render("r")+" "+helpStyle.Render("raw value"))
	}
	parts = append(parts,
		helpKeyStyle.Render("u")+" "+helpStyle.Render("undo"),
		helpKeyStyle.Render("ctrl+r")+" "+helpStyle.Render("redo"),
		helpKeyStyle.Render("enter")+" "+helpStyle.Render("save"),
		helpKeyStyle.Render("q")+" "+helpStyle.Render("quit"),
	)
	return strings.Join(parts, helpStyle.Render("  ·  "))
}

func onOff(v bool) string {
	if v {
		return "on"
	}
	return "off"
}

// RunEditor runs the editor on the terminal and returns the resulting item and
// whether the user chose to save it.
func RunEditor(renderer *statusline.Renderer, item core.WidgetItem, settings core.Settings) (core.WidgetItem, bool, error) {
	m, err := NewEditor(renderer, item, settings)
	if err != nil {
		return item, false, err
	}
	final, err := tea.NewProgram(m).Run()
	if err != nil {
		return item, false, fmt.Errorf("running editor: %w", err)
	}
	ed, ok := final.(Editor)
	if !ok || !ed.Saved() {
		return item, false, nil
	}
	return ed.Item(), true, nil
}

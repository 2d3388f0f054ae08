package core

// WidgetItem is the persisted record of one widget on the status line. The
// host owns it; widgets only ever return modified copies.
type WidgetItem struct {
	ID       string            `json:"id"`
	Type     string            `json:"type"`
	Color    string            `json:"color,omitempty"`
	Bold     bool              `json:"bold,omitempty"`
	RawValue bool              `json:"rawValue,omitempty"`
	Metadata map[string]string `json:"metadata,omitempty"`
}

// Clone returns a copy of the item whose metadata map is not shared with the
// receiver.
func (i WidgetItem) Clone() WidgetItem {
	out := i
	if i.Metadata != nil {
		out.Metadata = make(map[string]string, len(i.Metadata))
		for k, v := range i.Metadata {
			out.Metadata[k] = v
		}
	}
	return out
}

// WithMetadata returns a copy of the item with key set to value. Other keys
// are carried over unchanged.
func (i WidgetItem) WithMetadata(key, value string) WidgetItem {
	out := i.Clone()
	if out.Metadata == nil {
		out.Metadata = make(map[string]string, 1)
	}
	out.Metadata[key] = value
	return out
}

// Meta reads a metadata key, treating a nil map as empty.
func (i WidgetItem) Meta(key string) (string, bool) {
	if i.Metadata == nil {
		return "", false
	}
	v, ok := i.Metadata[key]
	return v, ok
}

type EditorDisplay struct {
	DisplayText  string
	ModifierText string // empty when no modifiers apply
}

// CustomKeybind is a widget-specific key offered to the editor.
type CustomKeybind struct {
	Key    string
	Label  string
	Action string
}

// Widget is implemented by every status-line element the host can render.
type Widget interface {
	DefaultColor() string
	Description() string
	DisplayName() string
	EditorDisplay(item WidgetItem) EditorDisplay
	// HandleEditorAction returns the updated item, or false when the action
	// is not one the widget recognizes.
	HandleEditorAction(action string, item WidgetItem) (WidgetItem, bool)
	// Render returns the text to show, or false when the widget has nothing
	// to display right now.
	Render(item WidgetItem, ctx RenderContext, settings Settings) (string, bool)
	CustomKeybinds() []CustomKeybind
	SupportsRawValue() bool
	SupportsColors(item WidgetItem) bool
}

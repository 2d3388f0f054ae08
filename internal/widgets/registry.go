package widgets

import (
	"sort"

	"github.com/janekbaraniewski/ctxline/internal/core"
	"github.com/samber/lo"
)

// Registry maps persisted item types to widget implementations.
type Registry struct {
	widgets map[string]core.Widget
}

func NewRegistry() *Registry {
	return &Registry{widgets: make(map[string]core.Widget)}
}

// DefaultRegistry returns a registry with every built-in widget.
func DefaultRegistry() *Registry {
	r := NewRegistry()
	r.Register(TypeContextPercentageUsable, NewContextPercentageUsable())
	return r
}

func (r *Registry) Register(itemType string, w core.Widget) {
	r.widgets[itemType] = w
}

func (r *Registry) Get(itemType string) (core.Widget, bool) {
	w, ok := r.widgets[itemType]
	return w, ok
}

// Types lists registered item types in sorted order.
func (r *Registry) Types() []string {
	types := lo.Keys(r.widgets)
	sort.Strings(types)
	return types
}

// ActionForKey resolves a key press against the widget's custom keybinds.
func ActionForKey(w core.Widget, key string) (string, bool) {
	kb, ok := lo.Find(w.CustomKeybinds(), func(kb core.CustomKeybind) bool {
		return kb.Key == key
	})
	if !ok {
		return "", false
	}
	return kb.Action, true
}

package widgets

import (
	"strconv"

	"github.com/janekbaraniewski/ctxline/internal/core"
)

type DisplayMode string

const (
	DisplayText          DisplayMode = "text"
	DisplayProgress      DisplayMode = "progress"
	DisplayProgressShort DisplayMode = "progress-short"
)

const (
	metaInverse = "inverse"
	metaDisplay = "display"
)

func parseDisplayMode(raw string) DisplayMode {
	switch DisplayMode(raw) {
	case DisplayProgress, DisplayProgressShort:
		return DisplayMode(raw)
	default:
		return DisplayText
	}
}

// next cycles text -> progress -> progress-short -> text. Any stored value
// other than text or progress advances to text.
func nextDisplayMode(raw string) DisplayMode {
	switch DisplayMode(raw) {
	case DisplayText:
		return DisplayProgress
	case DisplayProgress:
		return DisplayProgressShort
	default:
		return DisplayText
	}
}

// Options is the typed view of a widget item's metadata.
type Options struct {
	Inverse bool
	Display DisplayMode
}

// OptionsFrom derives options from item metadata. Missing or unrecognized
// values fall back to inverse=false and display=text.
func OptionsFrom(item core.WidgetItem) Options {
	inverse, _ := item.Meta(metaInverse)
	display, _ := item.Meta(metaDisplay)
	return Options{
		Inverse: inverse == "true",
		Display: parseDisplayMode(display),
	}
}

// Apply writes the options back into a copy of item. Default values are
// stored as absent keys, so applying zero Options leaves no metadata behind.
func (o Options) Apply(item core.WidgetItem) core.WidgetItem {
	out := item.Clone()
	if out.Metadata == nil {
		out.Metadata = make(map[string]string, 2)
	}

	if o.Inverse {
		out.Metadata[metaInverse] = strconv.FormatBool(o.Inverse)
	} else {
		delete(out.Metadata, metaInverse)
	}
	if mode := parseDisplayMode(string(o.Display)); mode != DisplayText {
		out.Metadata[metaDisplay] = string(mode)
	} else {
		delete(out.Metadata, metaDisplay)
	}

	if len(out.Metadata) == 0 {
		out.Metadata = nil
	}
	return out
}

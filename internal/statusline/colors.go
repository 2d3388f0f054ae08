package statusline

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Named colours map onto the 16 basic ANSI slots so the terminal theme
// decides the actual shade.
var namedColors = map[string]lipgloss.Color{
	"black":         lipgloss.Color("0"),
	"red":           lipgloss.Color("1"),
	"green":         lipgloss.Color("2"),
	"yellow":        lipgloss.Color("3"),
	"blue":          lipgloss.Color("4"),
	"magenta":       lipgloss.Color("5"),
	"cyan":          lipgloss.Color("6"),
	"white":         lipgloss.Color("7"),
	"gray":          lipgloss.Color("8"),
	"brightblack":   lipgloss.Color("8"),
	"brightred":     lipgloss.Color("9"),
	"brightgreen":   lipgloss.Color("10"),
	"brightyellow":  lipgloss.Color("11"),
	"brightblue":    lipgloss.Color("12"),
	"brightmagenta": lipgloss.Color("13"),
	"brightcyan":    lipgloss.Color("14"),
	"brightwhite":   lipgloss.Color("15"),
}

// resolveColor accepts a colour name (case and separator insensitive) or a
// #rrggbb hex value.
func resolveColor(name string) (lipgloss.Color, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", false
	}
	if strings.HasPrefix(name, "#") && (len(name) == 7 || len(name) == 4) {
		return lipgloss.Color(name), true
	}
	key := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(name))
	c, ok := namedColors[key]
	return c, ok
}

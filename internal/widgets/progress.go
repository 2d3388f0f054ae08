package widgets

import (
	"math"
	"strings"
)

const (
	barFilled = "█"
	barEmpty  = "░"

	progressBarWidth      = 32
	progressShortBarWidth = 16
)

// renderProgressBar draws exactly width glyphs, floor(percent/100*width) of
// them filled. percent must be in [0,100].
func renderProgressBar(percent float64, width int) string {
	filled := int(math.Floor(percent / 100 * float64(width)))
	return strings.Repeat(barFilled, filled) + strings.Repeat(barEmpty, width-filled)
}

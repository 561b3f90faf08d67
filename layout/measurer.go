package layout

import "github.com/tsawler/epubcore/style"

// LineMetrics is what a TextMeasurer reports about one computed style's
// vertical metrics, independent of any particular run of text.
type LineMetrics struct {
	AscentPx  float64
	DescentPx float64
	LineGapPx float64
}

// TextMeasurer is the capability the layout engine delegates every width
// and line-metric question to (spec §4.7: "the engine never estimates
// widths directly"). An embedded backend wraps its font tables in one; a
// desktop build typically wraps golang.org/x/image/font.Face metrics —
// see the measure package's Builtin implementation.
type TextMeasurer interface {
	// Measure returns text's rendered width in pixels under style.
	Measure(text string, st *style.ComputedTextStyle) float64
	// LineMetrics returns style's vertical metrics.
	LineMetrics(st *style.ComputedTextStyle) LineMetrics
}

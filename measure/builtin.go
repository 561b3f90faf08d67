package measure

import (
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/tsawler/epubcore/layout"
	"github.com/tsawler/epubcore/style"
)

// nominalPx is basicfont.Face7x13's 13px line height (its nominal size),
// used to scale its fixed glyph metrics to a computed style's size_px.
const nominalPx = 13.0

// Builtin is the default measurer spec §4.7 calls for: "the default
// measurer uses a built-in monospace metric." It ignores font_id and
// family entirely — every style measures against the same bitmap face —
// which is the point: it lets the layout engine and its callers be
// exercised end-to-end without wiring a real font backend.
type Builtin struct {
	face font.Face
}

// NewBuiltin returns a Builtin measurer.
func NewBuiltin() *Builtin {
	return &Builtin{face: basicfont.Face7x13}
}

// Measure implements layout.TextMeasurer.
func (b *Builtin) Measure(text string, st *style.ComputedTextStyle) float64 {
	if text == "" {
		return 0
	}
	scale := scaleFor(st)
	return fixedToFloat(font.MeasureString(b.face, text)) * scale
}

// LineMetrics implements layout.TextMeasurer.
func (b *Builtin) LineMetrics(st *style.ComputedTextStyle) layout.LineMetrics {
	m := b.face.Metrics()
	scale := scaleFor(st)
	return layout.LineMetrics{
		AscentPx:  fixedToFloat(m.Ascent) * scale,
		DescentPx: fixedToFloat(m.Descent) * scale,
		LineGapPx: 0,
	}
}

func scaleFor(st *style.ComputedTextStyle) float64 {
	if st == nil || st.SizePx <= 0 {
		return 1
	}
	return st.SizePx / nominalPx
}

func fixedToFloat(v fixed.Int26_6) float64 { return float64(v) / 64 }

var _ layout.TextMeasurer = (*Builtin)(nil)

package style

import (
	"sort"

	"github.com/tsawler/epubcore/limits"
)

// defaultFamily is the root style's font-family when no rule sets one;
// style §4.6 never requires a particular default, so this picks the CSS
// generic that every backend TextMeasurer is expected to provide a
// fallback for.
const defaultFamily = "serif"

// Engine resolves cascaded, inherited computed styles for one book's
// element stream. It owns the font-id intern table and the computed-style
// identity pool, both scoped to a single book handle per spec §5.
type Engine struct {
	lim   limits.StyleLimits
	sheet *Sheet
	fonts *fontPool
	pool  map[ComputedTextStyle]*ComputedTextStyle
	root  *ComputedTextStyle
}

// New builds a cascade engine from a parsed stylesheet. rootSizePx is the
// base font-size text elements inherit from when no rule overrides it
// (typically the reading system's configured base size).
func New(sheet *Sheet, lim limits.StyleLimits, flim limits.FontLimits, rootSizePx float64) (*Engine, error) {
	e := &Engine{
		lim:   lim,
		sheet: sheet,
		fonts: newFontPool(flim),
		pool:  make(map[ComputedTextStyle]*ComputedTextStyle),
	}
	id, err := e.fonts.intern(fontKey{family: defaultFamily, weight: 400, italic: false})
	if err != nil {
		return nil, err
	}
	e.root = e.intern(ComputedTextStyle{
		FontID:       id,
		SizePx:       rootSizePx,
		Weight:       400,
		Align:        AlignLeft,
		LineHeightPx: rootSizePx * 1.2,
	})
	return e, nil
}

// Root returns the style the outermost element inherits from.
func (e *Engine) Root() *ComputedTextStyle { return e.root }

// FontFamily returns the normalized family string behind a font_id,
// needed once at the TextMeasurer/backend boundary; downstream layout and
// render code never calls this (spec §3: "the family string is never
// re-resolved downstream").
func (e *Engine) FontFamily(fontID int) string { return e.fonts.Family(fontID) }

type matchedRule struct {
	spec int
	seq  int
	decl []declaration
}

// Resolve computes tag/class/inlineStyle's style given its parent's
// already-computed style, applying spec §4.6's cascade: match rules in
// declaration order, stable-sort by specificity, apply inline last, then
// resolve em-relative sizes against the parent and intern the resulting
// font identity.
func (e *Engine) Resolve(parent *ComputedTextStyle, tag, class, inlineStyle string) (*ComputedTextStyle, error) {
	if parent == nil {
		parent = e.root
	}

	working := *parent
	working.MarginTopPx = 0
	working.MarginBotPx = 0

	var matches []matchedRule
	for i, r := range e.sheet.rules {
		if r.sel.matches(tag, class) {
			matches = append(matches, matchedRule{spec: r.sel.specificity(), seq: i, decl: r.decls})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].spec < matches[j].spec })

	family := e.fonts.Family(parent.FontID)
	italic := parent.Italic
	weight := parent.Weight

	apply := func(decls []declaration) {
		for _, d := range decls {
			switch d.prop {
			case propFontSize:
				working.SizePx = resolveLength(d, parent.SizePx)
			case propFontFamily:
				family = d.family
			case propFontWeight:
				weight = d.weight
			case propFontStyle:
				if d.hasItalic {
					italic = d.italic
				}
			case propTextAlign:
				working.Align = d.align
			case propLineHeight:
				if d.unit == unitNone {
					working.LineHeightPx = working.SizePx * d.num
				} else {
					working.LineHeightPx = resolveLength(d, parent.SizePx)
				}
			case propMarginTop:
				working.MarginTopPx = resolveLength(d, parent.SizePx)
			case propMarginBottom:
				working.MarginBotPx = resolveLength(d, parent.SizePx)
			case propMargin:
				v := resolveLength(d, parent.SizePx)
				working.MarginTopPx = v
				working.MarginBotPx = v
			case propLetterSpacing:
				working.TrackingPx = resolveLength(d, parent.SizePx)
			}
		}
	}

	for _, m := range matches {
		apply(m.decl)
	}
	apply(parseDeclarations(inlineStyle))

	fontID, err := e.fonts.intern(fontKey{family: family, weight: weight, italic: italic})
	if err != nil {
		return nil, err
	}
	working.FontID = fontID
	working.Weight = weight
	working.Italic = italic

	return e.intern(working), nil
}

func resolveLength(d declaration, parentSizePx float64) float64 {
	if d.unit == unitEm {
		return d.num * parentSizePx
	}
	return d.num
}

// intern returns the shared *ComputedTextStyle for a value, storing it the
// first time it's seen so later identical resolutions reuse the pointer.
func (e *Engine) intern(v ComputedTextStyle) *ComputedTextStyle {
	if p, ok := e.pool[v]; ok {
		return p
	}
	p := new(ComputedTextStyle)
	*p = v
	e.pool[v] = p
	return p
}

package style

// Align mirrors the teacher's model.TextAlignment enum (model/element.go),
// generalized to the four CSS text-align keywords this engine recognizes.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
	AlignRight
	AlignJustify
)

// ComputedTextStyle is the fully cascaded, inherited style carried on every
// emitted styled run. Instances are pooled: two elements resolving to an
// identical value share one *ComputedTextStyle, so callers may compare
// pointers instead of fields to detect a style change between runs.
type ComputedTextStyle struct {
	FontID       int
	SizePx       float64
	Weight       int // CSS numeric weight; >=700 is bold
	Italic       bool
	Align        Align
	LineHeightPx float64
	MarginTopPx  float64
	MarginBotPx  float64
	IndentPx     float64
	TrackingPx   float64
}

// Bold reports whether the computed weight renders as bold.
func (s *ComputedTextStyle) Bold() bool { return s.Weight >= 700 }

// selector is the parsed form of one of the three selector shapes this
// engine supports: bare tag, bare class, or tag.class.
type selector struct {
	tag   string // lowercased element name, "" if class-only
	class string // lowercased class name, "" if tag-only
}

// specificity implements spec §4.6's "(tag? + class_count)" rule: a
// tag-only selector scores 1, a class-only selector scores 1, and a
// combined tag.class selector scores 2.
func (s selector) specificity() int {
	n := 0
	if s.tag != "" {
		n++
	}
	if s.class != "" {
		n++
	}
	return n
}

func (s selector) matches(tag, class string) bool {
	if s.tag != "" && s.tag != tag {
		return false
	}
	if s.class != "" && s.class != class {
		return false
	}
	return true
}

// declaration is one property:value pair out of the supported subset.
// Values are stored pre-parsed into the union of shapes the nine supported
// properties need, rather than re-parsed on every cascade.
type declaration struct {
	prop propKind
	// numeric value for size/margin/line-height-ish properties.
	num float64
	// unit distinguishes px from em for font-size, and marks "set" for
	// unitless line-height multipliers.
	unit unitKind
	// family holds the normalized font-family value.
	family string
	// align holds the parsed text-align keyword.
	align Align
	// weight holds the parsed numeric font-weight.
	weight int
	// italic holds the parsed font-style-as-bool.
	italic   bool
	hasItalic bool
}

type propKind uint8

const (
	propFontSize propKind = iota
	propFontFamily
	propFontWeight
	propFontStyle
	propTextAlign
	propLineHeight
	propMarginTop
	propMarginBottom
	propLetterSpacing
	propMargin // shorthand, expands to top+bottom during cascade resolution
)

type unitKind uint8

const (
	unitPx unitKind = iota
	unitEm
	unitNone
)

// rule pairs a selector with its declarations in source (declaration)
// order, the unit the cascade needs to apply specificity-based
// stable-sort before inline style.
type rule struct {
	sel   selector
	decls []declaration
}

package style

import (
	"strconv"
	"strings"

	"github.com/tsawler/epubcore/limits"
)

// Sheet is a parsed stylesheet: a flat, selector-indexed rule table in
// source declaration order, as spec §4.6 requires ("match rules in
// declaration order, compute specificity, stable-sort").
type Sheet struct {
	rules []rule
}

// ParseStylesheet parses the supported CSS subset (spec §4.6) out of css,
// bounded by lim. Unknown properties and unsupported selector shapes are
// skipped rather than erroring, matching the tokenizer's and OPF parser's
// "unknown element/attribute: ignore" posture elsewhere in this module.
func ParseStylesheet(css []byte, lim limits.StyleLimits) (*Sheet, error) {
	if len(css) > lim.MaxCSSBytes {
		return nil, limits.Exceeded("css_bytes")
	}
	src := stripComments(string(css))

	sheet := &Sheet{}
	nesting := 0
	for {
		open := strings.IndexByte(src, '{')
		if open < 0 {
			break
		}
		nesting++
		if nesting > lim.MaxNesting {
			return nil, limits.Exceeded("css_nesting")
		}
		selectorPart := src[:open]
		rest := src[open+1:]
		close := strings.IndexByte(rest, '}')
		if close < 0 {
			break
		}
		body := rest[:close]
		src = rest[close+1:]
		nesting--

		decls := parseDeclarations(body)
		if len(decls) == 0 {
			continue
		}
		for _, selText := range strings.Split(selectorPart, ",") {
			sel, ok := parseSelector(strings.TrimSpace(selText))
			if !ok {
				continue
			}
			if len(sheet.rules) >= lim.MaxSelectors {
				return nil, limits.Exceeded("selectors")
			}
			sheet.rules = append(sheet.rules, rule{sel: sel, decls: decls})
		}
	}
	return sheet, nil
}

func stripComments(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for {
		start := strings.Index(s, "/*")
		if start < 0 {
			b.WriteString(s)
			break
		}
		b.WriteString(s[:start])
		end := strings.Index(s[start+2:], "*/")
		if end < 0 {
			break
		}
		s = s[start+2+end+2:]
	}
	return b.String()
}

// parseSelector recognizes the three shapes spec §4.6 names: bare tag,
// bare class (".name"), and "tag.class". Anything else is rejected so the
// caller can skip the rule.
func parseSelector(s string) (selector, bool) {
	if s == "" {
		return selector{}, false
	}
	if dot := strings.IndexByte(s, '.'); dot >= 0 {
		tag := strings.ToLower(strings.TrimSpace(s[:dot]))
		class := strings.ToLower(strings.TrimSpace(s[dot+1:]))
		if class == "" || strings.ContainsAny(class, " \t\n.#:") {
			return selector{}, false
		}
		return selector{tag: tag, class: class}, true
	}
	if strings.ContainsAny(s, " \t\n#:>") {
		return selector{}, false
	}
	return selector{tag: strings.ToLower(s)}, true
}

// parseDeclarations parses a ";"-separated "prop: value" list, the shared
// shape between stylesheet rule bodies and an inline style="" attribute.
func parseDeclarations(body string) []declaration {
	var out []declaration
	for _, stmt := range strings.Split(body, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" {
			continue
		}
		colon := strings.IndexByte(stmt, ':')
		if colon < 0 {
			continue
		}
		prop := strings.ToLower(strings.TrimSpace(stmt[:colon]))
		val := strings.TrimSpace(stmt[colon+1:])
		if val == "" {
			continue
		}
		if d, ok := parseDeclaration(prop, val); ok {
			out = append(out, d)
		}
	}
	return out
}

func parseDeclaration(prop, val string) (declaration, bool) {
	switch prop {
	case "font-size":
		n, unit, ok := parseLength(val)
		if !ok {
			return declaration{}, false
		}
		return declaration{prop: propFontSize, num: n, unit: unit}, true

	case "font-family":
		fam := normalizeFontFamily(val)
		if fam == "" {
			return declaration{}, false
		}
		return declaration{prop: propFontFamily, family: fam}, true

	case "font-weight":
		w, ok := parseWeight(val)
		if !ok {
			return declaration{}, false
		}
		return declaration{prop: propFontWeight, weight: w}, true

	case "font-style":
		italic, ok := parseFontStyle(val)
		if !ok {
			return declaration{}, false
		}
		return declaration{prop: propFontStyle, italic: italic, hasItalic: true}, true

	case "text-align":
		a, ok := parseAlign(val)
		if !ok {
			return declaration{}, false
		}
		return declaration{prop: propTextAlign, align: a}, true

	case "line-height":
		if n, unit, ok := parseLength(val); ok {
			return declaration{prop: propLineHeight, num: n, unit: unit}, true
		}
		if n, err := strconv.ParseFloat(val, 64); err == nil {
			return declaration{prop: propLineHeight, num: n, unit: unitNone}, true
		}
		return declaration{}, false

	case "margin-top":
		n, unit, ok := parseLength(val)
		if !ok {
			return declaration{}, false
		}
		return declaration{prop: propMarginTop, num: n, unit: unit}, true

	case "margin-bottom":
		n, unit, ok := parseLength(val)
		if !ok {
			return declaration{}, false
		}
		return declaration{prop: propMarginBottom, num: n, unit: unit}, true

	case "letter-spacing":
		n, unit, ok := parseLength(val)
		if !ok {
			return declaration{}, false
		}
		return declaration{prop: propLetterSpacing, num: n, unit: unit}, true

	case "margin":
		fields := strings.Fields(val)
		if len(fields) != 1 {
			return declaration{}, false
		}
		n, unit, ok := parseLength(fields[0])
		if !ok {
			return declaration{}, false
		}
		return declaration{prop: propMargin, num: n, unit: unit}, true
	}
	return declaration{}, false
}

func parseLength(val string) (float64, unitKind, bool) {
	val = strings.TrimSpace(val)
	switch {
	case strings.HasSuffix(val, "px"):
		n, err := strconv.ParseFloat(strings.TrimSuffix(val, "px"), 64)
		return n, unitPx, err == nil
	case strings.HasSuffix(val, "em"):
		n, err := strconv.ParseFloat(strings.TrimSuffix(val, "em"), 64)
		return n, unitEm, err == nil
	default:
		return 0, unitPx, false
	}
}

func parseWeight(val string) (int, bool) {
	switch strings.ToLower(val) {
	case "normal":
		return 400, true
	case "bold":
		return 700, true
	}
	n, err := strconv.Atoi(val)
	if err != nil || n < 100 || n > 900 {
		return 0, false
	}
	return n, true
}

func parseFontStyle(val string) (italic bool, ok bool) {
	switch strings.ToLower(val) {
	case "normal":
		return false, true
	case "italic", "oblique":
		return true, true
	}
	return false, false
}

func parseAlign(val string) (Align, bool) {
	switch strings.ToLower(val) {
	case "left":
		return AlignLeft, true
	case "center":
		return AlignCenter, true
	case "right":
		return AlignRight, true
	case "justify":
		return AlignJustify, true
	}
	return 0, false
}

// normalizeFontFamily implements spec §4.6's "trim, lowercase, drop
// quotes, first in the list" rule using golang.org/x/text/cases for the
// lowercasing step, so family-name comparisons are locale-stable rather
// than the stdlib's byte-wise strings.ToLower.
func normalizeFontFamily(val string) string {
	first := strings.Split(val, ",")[0]
	first = strings.TrimSpace(first)
	first = strings.Trim(first, `"'`)
	first = strings.TrimSpace(first)
	return foldFamily(first)
}

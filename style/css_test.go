package style

import (
	"testing"

	"github.com/tsawler/epubcore/limits"
)

func TestParseSelector(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want selector
		ok   bool
	}{
		{"tag", "p", selector{tag: "p"}, true},
		{"class", ".caption", selector{class: "caption"}, true},
		{"tag and class", "p.caption", selector{tag: "p", class: "caption"}, true},
		{"uppercase tag folds", "P", selector{tag: "p"}, true},
		{"descendant combinator rejected", "div p", selector{}, false},
		{"id selector rejected", "#main", selector{}, false},
		{"empty", "", selector{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := parseSelector(tt.in)
			if ok != tt.ok {
				t.Fatalf("parseSelector(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if ok && got != tt.want {
				t.Errorf("parseSelector(%q) = %+v, want %+v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSelectorSpecificity(t *testing.T) {
	tests := []struct {
		name string
		sel  selector
		want int
	}{
		{"tag only", selector{tag: "p"}, 1},
		{"class only", selector{class: "caption"}, 1},
		{"tag and class", selector{tag: "p", class: "caption"}, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.sel.specificity(); got != tt.want {
				t.Errorf("specificity() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestParseStylesheet(t *testing.T) {
	css := `
		p { font-size: 16px; text-align: justify; }
		.caption { font-style: italic; font-size: 0.8em; }
		h1 { font-weight: bold; margin-top: 12px; margin-bottom: 6px; }
	`
	sheet, err := ParseStylesheet([]byte(css), limits.StyleLimits{}.Embedded())
	if err != nil {
		t.Fatalf("ParseStylesheet: %v", err)
	}
	if len(sheet.rules) != 3 {
		t.Fatalf("got %d rules, want 3", len(sheet.rules))
	}
}

func TestParseStylesheetRejectsOversizedInput(t *testing.T) {
	lim := limits.StyleLimits{}.Embedded()
	lim.MaxCSSBytes = 4
	_, err := ParseStylesheet([]byte("p { color: red; }"), lim)
	if err == nil {
		t.Fatal("expected an error for oversized stylesheet")
	}
}

func TestParseDeclarationFontSize(t *testing.T) {
	tests := []struct {
		name string
		val  string
		ok   bool
		unit unitKind
	}{
		{"px", "16px", true, unitPx},
		{"em", "1.5em", true, unitEm},
		{"bare number rejected", "16", false, unitPx},
		{"garbage rejected", "large", false, unitPx},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, ok := parseDeclaration("font-size", tt.val)
			if ok != tt.ok {
				t.Fatalf("parseDeclaration ok = %v, want %v", ok, tt.ok)
			}
			if ok && d.unit != tt.unit {
				t.Errorf("unit = %v, want %v", d.unit, tt.unit)
			}
		})
	}
}

func TestParseDeclarationFontWeight(t *testing.T) {
	tests := []struct {
		val  string
		want int
		ok   bool
	}{
		{"normal", 400, true},
		{"bold", 700, true},
		{"600", 600, true},
		{"950", 0, false},
		{"heavy", 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.val, func(t *testing.T) {
			d, ok := parseDeclaration("font-weight", tt.val)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if ok && d.weight != tt.want {
				t.Errorf("weight = %d, want %d", d.weight, tt.want)
			}
		})
	}
}

func TestNormalizeFontFamily(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`"Georgia", serif`, "georgia"},
		{"Times New Roman", "times new roman"},
		{"  'Courier'  , monospace", "courier"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := normalizeFontFamily(tt.in); got != tt.want {
				t.Errorf("normalizeFontFamily(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestMarginShorthandExpandsToTopAndBottom(t *testing.T) {
	sheet, err := ParseStylesheet([]byte("p { margin: 10px; }"), limits.StyleLimits{}.Embedded())
	if err != nil {
		t.Fatalf("ParseStylesheet: %v", err)
	}
	eng, err := New(sheet, limits.StyleLimits{}.Embedded(), limits.FontLimits{}.Embedded(), 16)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	got, err := eng.Resolve(eng.Root(), "p", "", "")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if got.MarginTopPx != 10 || got.MarginBotPx != 10 {
		t.Errorf("margins = %v/%v, want 10/10", got.MarginTopPx, got.MarginBotPx)
	}
}

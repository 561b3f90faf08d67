package measure

import (
	"testing"

	"github.com/tsawler/epubcore/style"
)

func TestBuiltinMeasureScalesWithSize(t *testing.T) {
	b := NewBuiltin()
	small := &style.ComputedTextStyle{SizePx: 13}
	large := &style.ComputedTextStyle{SizePx: 26}

	wSmall := b.Measure("hello", small)
	wLarge := b.Measure("hello", large)

	if wSmall <= 0 {
		t.Fatalf("expected positive width, got %v", wSmall)
	}
	if wLarge <= wSmall {
		t.Errorf("doubling size_px should roughly double width: small=%v large=%v", wSmall, wLarge)
	}
}

func TestBuiltinMeasureEmptyString(t *testing.T) {
	b := NewBuiltin()
	if w := b.Measure("", &style.ComputedTextStyle{SizePx: 16}); w != 0 {
		t.Errorf("Measure(\"\") = %v, want 0", w)
	}
}

func TestBuiltinLineMetricsPositive(t *testing.T) {
	b := NewBuiltin()
	m := b.LineMetrics(&style.ComputedTextStyle{SizePx: 16})
	if m.AscentPx <= 0 || m.DescentPx <= 0 {
		t.Errorf("expected positive ascent/descent, got %+v", m)
	}
}

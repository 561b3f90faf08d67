package render

import (
	"testing"

	"github.com/tsawler/epubcore/limits"
)

func TestPageAppendAndSeal(t *testing.T) {
	p := NewPage(0, 0, limits.ImageRegistryLimits{}.Embedded())
	p.Append(DrawText{X: 1, Y: 2, Text: []byte("hi")})
	p.Append(DrawRule{X0: 0, Y0: 0, X1: 10, Y1: 0})

	if p.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", p.Len())
	}
	if p.Sealed() {
		t.Fatalf("page should not be sealed yet")
	}

	p.Seal()
	if !p.Sealed() {
		t.Fatalf("Seal() should mark the page sealed")
	}
}

func TestPageAppendAfterSealPanics(t *testing.T) {
	p := NewPage(0, 0, limits.ImageRegistryLimits{}.Embedded())
	p.Seal()

	defer func() {
		if recover() == nil {
			t.Fatalf("Append after Seal should panic")
		}
	}()
	p.Append(DrawRule{})
}

func TestPageReset(t *testing.T) {
	p := NewPage(0, 0, limits.ImageRegistryLimits{}.Embedded())
	p.Append(DrawText{Text: []byte("x")})
	p.Seal()

	p.Reset(1, 0)
	if p.Len() != 0 {
		t.Fatalf("Reset should clear commands, got len %d", p.Len())
	}
	if p.Sealed() {
		t.Fatalf("Reset should unseal the page")
	}
	if p.Meta.PageIndex != 1 {
		t.Fatalf("Meta.PageIndex = %d, want 1", p.Meta.PageIndex)
	}
}

func TestCommandKindString(t *testing.T) {
	tests := []struct {
		k    CommandKind
		want string
	}{
		{CommandDrawText, "DrawText"},
		{CommandDrawImageRef, "DrawImageRef"},
		{CommandDrawRule, "DrawRule"},
		{CommandPageHeader, "PageHeader"},
		{CommandPageFooter, "PageFooter"},
	}
	for _, tt := range tests {
		if got := tt.k.String(); got != tt.want {
			t.Errorf("%d.String() = %q, want %q", tt.k, got, tt.want)
		}
	}
}

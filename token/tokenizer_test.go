package token

import (
	"testing"

	"github.com/tsawler/epubcore/limits"
)

func tokenize(t *testing.T, html string) []Token {
	t.Helper()
	tz := New(limits.TokenizeLimits{}.Desktop())
	arena := NewArena(4096)
	var got []Token
	if err := tz.Tokenize([]byte(html), arena, func(tok Token) bool {
		got = append(got, tok)
		return true
	}); err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	return got
}

func kinds(toks []Token) []Kind {
	ks := make([]Kind, len(toks))
	for i, tk := range toks {
		ks[i] = tk.Kind
	}
	return ks
}

func eqKinds(t *testing.T, got []Token, want []Kind) {
	t.Helper()
	gk := kinds(got)
	if len(gk) != len(want) {
		t.Fatalf("got %d tokens %v, want %d %v", len(gk), gk, len(want), want)
	}
	for i := range want {
		if gk[i] != want[i] {
			t.Fatalf("token[%d] = %v, want %v (all: %v)", i, gk[i], want[i], gk)
		}
	}
}

func TestTokenizeSimpleParagraph(t *testing.T) {
	got := tokenize(t, `<p>Hello world</p>`)
	eqKinds(t, got, []Kind{Text, ParagraphBreak})
	if string(got[0].TextSlice) != "Hello world" {
		t.Errorf("text = %q", got[0].TextSlice)
	}
}

func TestTokenizeCollapsesWhitespaceAcrossRuns(t *testing.T) {
	got := tokenize(t, "<p>Hello  \n   world</p>")
	eqKinds(t, got, []Kind{Text, ParagraphBreak})
	if string(got[0].TextSlice) != "Hello world" {
		t.Errorf("text = %q, want collapsed single spaces", got[0].TextSlice)
	}
}

func TestTokenizeHeadingEmitsHeadingThenParagraphBreak(t *testing.T) {
	got := tokenize(t, `<h2>Title</h2><p>Body</p>`)
	eqKinds(t, got, []Kind{Heading, Text, ParagraphBreak, Text, ParagraphBreak})
	if got[0].Level != 2 {
		t.Errorf("heading level = %d, want 2", got[0].Level)
	}
}

func TestTokenizeEmphasisAndStrongToggle(t *testing.T) {
	// The single space between </em> and <strong> collapses to nothing
	// (it is whitespace abutting two element boundaries, not interior to
	// a text run), so it never surfaces as its own Text token.
	got := tokenize(t, `<p><em>a</em> <strong>b</strong></p>`)
	eqKinds(t, got, []Kind{Emphasis, Text, Emphasis, Strong, Text, Strong, ParagraphBreak})
	if !got[0].On {
		t.Error("expected opening Emphasis token with On=true")
	}
	if got[2].On {
		t.Error("expected closing Emphasis token with On=false")
	}
}

func TestTokenizeTrimsTrailingSpaceAtBlockBoundary(t *testing.T) {
	got := tokenize(t, "<p>Hello world </p>")
	eqKinds(t, got, []Kind{Text, ParagraphBreak})
	if string(got[0].TextSlice) != "Hello world" {
		t.Errorf("text = %q, want trailing space dropped before the block boundary", got[0].TextSlice)
	}
}

func TestTokenizePreservesSpaceBeforeInlineBoundary(t *testing.T) {
	got := tokenize(t, "<p>Hello <em>world</em></p>")
	eqKinds(t, got, []Kind{Text, Emphasis, Text, Emphasis, ParagraphBreak})
	if string(got[0].TextSlice) != "Hello " {
		t.Errorf("text = %q, want the space before <em> preserved", got[0].TextSlice)
	}
}

func TestTokenizeListStructure(t *testing.T) {
	got := tokenize(t, `<ul><li>one</li><li>two</li></ul>`)
	eqKinds(t, got, []Kind{
		ListStart,
		ListItemStart, Text, ListItemEnd,
		ListItemStart, Text, ListItemEnd,
		ListEnd,
	})
	if got[0].Ordered {
		t.Error("ul should produce Ordered=false")
	}
}

func TestTokenizeOrderedList(t *testing.T) {
	got := tokenize(t, `<ol><li>one</li></ol>`)
	if !got[0].Ordered {
		t.Error("ol should produce Ordered=true")
	}
}

func TestTokenizeImageWithIntrinsicDims(t *testing.T) {
	got := tokenize(t, `<p><img src="a.png" alt="A" width="10" height="20"/></p>`)
	eqKinds(t, got, []Kind{Image, ParagraphBreak})
	img := got[0]
	if img.Src != "a.png" || img.Alt != "A" {
		t.Errorf("src/alt = %q/%q", img.Src, img.Alt)
	}
	if !img.HasIntrinsic || img.IntrinsicW != 10 || img.IntrinsicH != 20 {
		t.Errorf("intrinsic dims = %v %dx%d", img.HasIntrinsic, img.IntrinsicW, img.IntrinsicH)
	}
}

func TestTokenizeImageWithoutSrcIsSkipped(t *testing.T) {
	got := tokenize(t, `<p><img alt="A"/>text</p>`)
	eqKinds(t, got, []Kind{Text, ParagraphBreak})
}

func TestTokenizeLinkCarriesHref(t *testing.T) {
	got := tokenize(t, `<p><a href="ch2.xhtml">next</a></p>`)
	eqKinds(t, got, []Kind{LinkStart, Text, LinkEnd, ParagraphBreak})
	if got[0].Href != "ch2.xhtml" {
		t.Errorf("href = %q", got[0].Href)
	}
}

func TestTokenizeLinkWithoutHrefCarriesNoMark(t *testing.T) {
	got := tokenize(t, `<p><a>plain</a></p>`)
	eqKinds(t, got, []Kind{Text, ParagraphBreak})
}

func TestTokenizeLineBreak(t *testing.T) {
	got := tokenize(t, `<p>one<br/>two</p>`)
	eqKinds(t, got, []Kind{Text, LineBreak, Text, ParagraphBreak})
}

func TestTokenizeSkipsScriptAndStyleSubtrees(t *testing.T) {
	got := tokenize(t, `<style>p{color:red}</style><p>real</p><script>var x=1</script>`)
	eqKinds(t, got, []Kind{Text, ParagraphBreak})
	if string(got[0].TextSlice) != "real" {
		t.Errorf("text = %q", got[0].TextSlice)
	}
}

func TestTokenizeConsecutiveParagraphBreaksCollapse(t *testing.T) {
	// An empty <div></div> between two <p> blocks must not emit a
	// second, empty ParagraphBreak once atBlockStart is already set.
	got := tokenize(t, `<p>a</p><div></div><p>b</p>`)
	eqKinds(t, got, []Kind{Text, ParagraphBreak, Text, ParagraphBreak})
}

func TestTokenizeRespectsMaxTokens(t *testing.T) {
	tz := New(limits.TokenizeLimits{MaxTokens: 2, MaxNestingDepth: 256, MaxTextBytes: 1024})
	arena := NewArena(4096)
	err := tz.Tokenize([]byte(`<p>a</p><p>b</p>`), arena, func(Token) bool { return true })
	if err == nil {
		t.Fatal("expected a limit-exceeded error")
	}
	if lerr, ok := err.(*limits.Error); !ok || lerr.Kind != limits.KindLimitExceeded {
		t.Errorf("err = %v, want KindLimitExceeded", err)
	}
}

func TestTokenizeSinkFalseCancels(t *testing.T) {
	tz := New(limits.TokenizeLimits{}.Desktop())
	arena := NewArena(4096)
	n := 0
	err := tz.Tokenize([]byte(`<p>a</p><p>b</p>`), arena, func(Token) bool {
		n++
		return n < 1
	})
	if err == nil {
		t.Fatal("expected Cancelled error")
	}
	if lerr, ok := err.(*limits.Error); !ok || lerr.Kind != limits.KindCancelled {
		t.Errorf("err = %v, want KindCancelled", err)
	}
}

func TestTokenizeNestedListItemsDoNotLeakListStack(t *testing.T) {
	got := tokenize(t, `<ul><li>a<ol><li>nested</li></ol></li></ul>`)
	eqKinds(t, got, []Kind{
		ListStart,
		ListItemStart, Text, ListStart, ListItemStart, Text, ListItemEnd, ListEnd, ListItemEnd,
		ListEnd,
	})
}

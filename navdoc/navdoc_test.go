package navdoc

import (
	"strings"
	"testing"

	"github.com/tsawler/epubcore/limits"
)

func TestParseXHTMLNavFlattensTOC(t *testing.T) {
	doc := `<?xml version="1.0"?>
<html xmlns="http://www.w3.org/1999/xhtml" xmlns:epub="http://www.idpf.org/2007/ops">
<body>
  <nav epub:type="toc">
    <ol>
      <li><a href="chapter1.xhtml">Chapter One</a>
        <ol>
          <li><a href="chapter1.xhtml#s2">Section Two</a></li>
        </ol>
      </li>
      <li><a href="chapter2.xhtml">Chapter Two</a></li>
    </ol>
  </nav>
</body>
</html>`
	entries, err := ParseXHTMLNav(strings.NewReader(doc), "OEBPS", limits.NavLimits{}.Desktop())
	if err != nil {
		t.Fatalf("ParseXHTMLNav: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3: %+v", len(entries), entries)
	}
	if entries[0].Title != "Chapter One" || entries[0].Href != "OEBPS/chapter1.xhtml" {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[1].Title != "Section Two" || entries[1].Fragment != "s2" {
		t.Errorf("entries[1] = %+v", entries[1])
	}
	if entries[1].Depth <= entries[0].Depth {
		t.Errorf("expected nested entry depth (%d) > parent depth (%d)", entries[1].Depth, entries[0].Depth)
	}
	for _, e := range entries {
		if e.Kind != Toc {
			t.Errorf("entry %+v: Kind = %v, want Toc", e, e.Kind)
		}
	}
}

func TestParseXHTMLNavIgnoresNonNavContent(t *testing.T) {
	doc := `<html><body>
  <p><a href="ignored.xhtml">Not in a nav</a></p>
  <nav epub:type="toc"><ol><li><a href="real.xhtml">Real</a></li></ol></nav>
</body></html>`
	entries, err := ParseXHTMLNav(strings.NewReader(doc), "", limits.NavLimits{}.Desktop())
	if err != nil {
		t.Fatalf("ParseXHTMLNav: %v", err)
	}
	if len(entries) != 1 || entries[0].Href != "real.xhtml" {
		t.Fatalf("entries = %+v, want exactly the real.xhtml entry", entries)
	}
}

func TestParseXHTMLNavRespectsDepthLimit(t *testing.T) {
	doc := `<nav epub:type="toc"><ol><li><a href="a">a</a><ol><li><a href="b">b</a></li></ol></li></ol></nav>`
	_, err := ParseXHTMLNav(strings.NewReader(doc), "", limits.NavLimits{MaxNavBytes: 4096, MaxNavDepth: 1, MaxNavEntries: 100})
	if err == nil {
		t.Fatal("expected a nav-depth limit error")
	}
	if lerr, ok := err.(*limits.Error); !ok || lerr.Kind != limits.KindLimitExceeded {
		t.Errorf("err = %v, want KindLimitExceeded", err)
	}
}

func TestParseXHTMLNavRespectsByteLimit(t *testing.T) {
	doc := `<nav epub:type="toc"><ol><li><a href="a">` + strings.Repeat("x", 4096) + `</a></li></ol></nav>`
	_, err := ParseXHTMLNav(strings.NewReader(doc), "", limits.NavLimits{MaxNavBytes: 64, MaxNavDepth: 16, MaxNavEntries: 100})
	if err == nil {
		t.Fatal("expected a nav-bytes limit error")
	}
}

const sampleNCX = `<?xml version="1.0"?>
<ncx xmlns="http://www.daisy.org/z3986/2005/ncx/" version="2005-1">
  <navMap>
    <navPoint id="np1">
      <navLabel><text>Chapter One</text></navLabel>
      <content src="chapter1.xhtml"/>
      <navPoint id="np1-1">
        <navLabel><text>Section Two</text></navLabel>
        <content src="chapter1.xhtml#s2"/>
      </navPoint>
    </navPoint>
    <navPoint id="np2">
      <navLabel><text>Chapter Two</text></navLabel>
      <content src="chapter2.xhtml"/>
    </navPoint>
  </navMap>
</ncx>`

func TestParseNCXFlattensNavMap(t *testing.T) {
	entries, err := ParseNCX(strings.NewReader(sampleNCX), "OEBPS", limits.NavLimits{}.Desktop())
	if err != nil {
		t.Fatalf("ParseNCX: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3: %+v", len(entries), entries)
	}
	if entries[0].Title != "Chapter One" || entries[0].Href != "OEBPS/chapter1.xhtml" {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[1].Title != "Section Two" || entries[1].Fragment != "s2" {
		t.Errorf("entries[1] = %+v", entries[1])
	}
	if entries[1].Depth <= entries[0].Depth {
		t.Errorf("expected nested entry depth (%d) > parent depth (%d)", entries[1].Depth, entries[0].Depth)
	}
	if entries[2].Title != "Chapter Two" {
		t.Errorf("entries[2] = %+v", entries[2])
	}
	for _, e := range entries {
		if e.Kind != Toc {
			t.Errorf("entry %+v: Kind = %v, want Toc", e, e.Kind)
		}
	}
}

func TestParseNCXRespectsDepthLimit(t *testing.T) {
	_, err := ParseNCX(strings.NewReader(sampleNCX), "OEBPS", limits.NavLimits{MaxNavBytes: 4096, MaxNavDepth: 1, MaxNavEntries: 100})
	if err == nil {
		t.Fatal("expected a nav-depth limit error")
	}
}

func TestGuideLandmarksConvertsRefs(t *testing.T) {
	refs := []GuideRef{
		{Type: "toc", Title: "Table of Contents", Href: "nav.xhtml"},
		{Type: "cover", Title: "Cover", Href: "cover.xhtml#top"},
	}
	entries := GuideLandmarks(refs)
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].Kind != Landmark || entries[0].Depth != 0 {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[1].Href != "cover.xhtml" || entries[1].Fragment != "top" {
		t.Errorf("entries[1] = %+v, want href split from fragment", entries[1])
	}
}

func TestKindString(t *testing.T) {
	cases := map[Kind]string{Toc: "toc", PageList: "page-list", Landmark: "landmark"}
	for k, want := range cases {
		if got := k.String(); got != want {
			t.Errorf("%v.String() = %q, want %q", k, got, want)
		}
	}
}

package navdoc

import (
	"encoding/xml"
	"io"
	"strings"

	"github.com/tsawler/epubcore/limits"
)

// ncxPending accumulates one navPoint/pageTarget's label and content src
// while its subtree is still being read. It is flushed into entries either
// when its first child navPoint starts (so a parent always precedes its
// children in the flattened, pre-order output) or, for a leaf, on its own
// end element.
type ncxPending struct {
	depth   int
	kind    Kind
	title   strings.Builder
	src     string
	haveSrc bool
	flushed bool
}

// ParseNCX streams an EPUB 2 toc.ncx document and returns its flattened
// entries from <navMap> (kind Toc) and <pageList> (kind PageList).
func ParseNCX(r io.Reader, ncxDir string, lim limits.NavLimits) ([]Entry, error) {
	limited := io.LimitReader(r, int64(lim.MaxNavBytes)+1)
	dec := xml.NewDecoder(limited)

	var (
		entries    []Entry
		depth      int
		kindStack  []Kind
		stack      []*ncxPending
		inLabelTxt bool
		bytesSeen  int
	)

	flush := func(p *ncxPending) {
		if p.flushed {
			return
		}
		p.flushed = true
		title := strings.TrimSpace(p.title.String())
		if !p.haveSrc && title == "" {
			return
		}
		hrefPath, frag := splitFragment(p.src)
		resolved := resolveNavHref(ncxDir, hrefPath)
		entries = append(entries, Entry{
			Depth:    uint8(clampDepth(p.depth - 1)),
			Title:    title,
			Href:     resolved,
			Fragment: frag,
			Kind:     p.kind,
		})
	}

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, limits.ParseAt("ncx", int(dec.InputOffset()), err)
		}
		bytesSeen = int(dec.InputOffset())
		if bytesSeen > lim.MaxNavBytes {
			return nil, limits.Exceeded("nav_bytes")
		}

		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "navMap":
				kindStack = append(kindStack, Toc)
			case "pageList":
				kindStack = append(kindStack, PageList)
			case "navPoint", "pageTarget":
				if n := len(stack); n > 0 {
					flush(stack[n-1])
				}
				depth++
				if depth > lim.MaxNavDepth {
					return nil, limits.Exceeded("nav_depth")
				}
				kind := Toc
				if len(kindStack) > 0 {
					kind = kindStack[len(kindStack)-1]
				}
				stack = append(stack, &ncxPending{depth: depth, kind: kind})
			case "text":
				inLabelTxt = true
			case "content":
				if len(stack) == 0 {
					continue
				}
				top := stack[len(stack)-1]
				for _, a := range t.Attr {
					if a.Name.Local == "src" {
						top.src = a.Value
						top.haveSrc = true
					}
				}
			}
		case xml.CharData:
			if inLabelTxt && len(stack) > 0 {
				stack[len(stack)-1].title.Write(t)
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "text":
				inLabelTxt = false
			case "navPoint", "pageTarget":
				if n := len(stack); n > 0 {
					flush(stack[n-1])
					stack = stack[:n-1]
				}
				depth--
			case "navMap", "pageList":
				if len(kindStack) > 0 {
					kindStack = kindStack[:len(kindStack)-1]
				}
			}
		}

		if len(entries) > lim.MaxNavEntries {
			return nil, limits.Exceeded("nav_entries")
		}
	}

	return entries, nil
}

// GuideRef mirrors opf.GuideRef to avoid an import-cycle-prone dependency
// on the opf package; callers (the book package) convert across.
type GuideRef struct {
	Type, Title, Href string
}

// GuideLandmarks converts EPUB 2 <guide> references (from the OPF) into
// flattened, depth-0 Landmark entries — used when no EPUB 3 landmarks nav
// or NCX equivalent exists.
func GuideLandmarks(refs []GuideRef) []Entry {
	entries := make([]Entry, 0, len(refs))
	for _, g := range refs {
		path, frag := splitFragment(g.Href)
		entries = append(entries, Entry{Depth: 0, Title: g.Title, Href: path, Fragment: frag, Kind: Landmark})
	}
	return entries
}

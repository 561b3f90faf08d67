package navdoc

import (
	"io"
	"path"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/epubcore/limits"
)

// ParseXHTMLNav streams an EPUB 3 nav document and returns its flattened
// entries, resolving hrefs relative to navDir (the archive directory
// containing the nav document).
func ParseXHTMLNav(r io.Reader, navDir string, lim limits.NavLimits) ([]Entry, error) {
	limited := io.LimitReader(r, int64(lim.MaxNavBytes)+1)
	data, err := io.ReadAll(limited)
	if err != nil {
		return nil, limits.IO(err)
	}
	if len(data) > lim.MaxNavBytes {
		return nil, limits.Exceeded("nav_bytes")
	}

	z := html.NewTokenizer(strings.NewReader(string(data)))

	var (
		entries  []Entry
		olDepth  int
		active   bool
		kind     Kind
		inAnchor bool
		curHref  string
		title    strings.Builder
	)

	flushAnchor := func() {
		if !inAnchor {
			return
		}
		inAnchor = false
		t := strings.TrimSpace(title.String())
		title.Reset()
		if curHref == "" && t == "" {
			return
		}
		hrefPath, frag := splitFragment(curHref)
		resolved := hrefPath
		if hrefPath != "" {
			resolved = resolveNavHref(navDir, hrefPath)
		}
		entries = append(entries, Entry{
			Depth:    uint8(clampDepth(olDepth)),
			Title:    t,
			Href:     resolved,
			Fragment: frag,
			Kind:     kind,
		})
		curHref = ""
	}

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if z.Err() == io.EOF {
				break
			}
			return nil, limits.ParseAt("nav", 0, z.Err())
		}

		tok := z.Token()
		switch tt {
		case html.StartTagToken, html.SelfClosingTagToken:
			switch tok.DataAtom {
			case atom.Nav:
				epubType := attrVal(tok, "epub:type")
				switch {
				case strings.Contains(epubType, "toc"):
					active, kind = true, Toc
				case strings.Contains(epubType, "page-list"):
					active, kind = true, PageList
				case strings.Contains(epubType, "landmarks"):
					active, kind = true, Landmark
				default:
					active = false
				}
			case atom.Ol:
				if active {
					olDepth++
					if olDepth > lim.MaxNavDepth {
						return nil, limits.Exceeded("nav_depth")
					}
				}
			case atom.A:
				if active {
					flushAnchor()
					inAnchor = true
					curHref = attrVal(tok, "href")
				}
			}
		case html.TextToken:
			if active && inAnchor {
				title.WriteString(tok.Data)
			}
		case html.EndTagToken:
			switch tok.DataAtom {
			case atom.A:
				if active {
					flushAnchor()
				}
			case atom.Ol:
				if active && olDepth > 0 {
					olDepth--
				}
			case atom.Nav:
				flushAnchor()
				active = false
			}
		}

		if len(entries) > lim.MaxNavEntries {
			return nil, limits.Exceeded("nav_entries")
		}
	}

	return entries, nil
}

func clampDepth(d int) int {
	if d < 0 {
		return 0
	}
	if d > 255 {
		return 255
	}
	return d
}

func splitFragment(href string) (path string, fragment string) {
	if idx := strings.IndexByte(href, '#'); idx >= 0 {
		return href[:idx], href[idx+1:]
	}
	return href, ""
}

func resolveNavHref(navDir, href string) string {
	if href == "" {
		return ""
	}
	if strings.HasPrefix(href, "/") {
		return strings.TrimPrefix(href, "/")
	}
	joined := href
	if navDir != "" {
		joined = path.Join(navDir, href)
	}
	return path.Clean(joined)
}

func attrVal(tok html.Token, key string) string {
	for _, a := range tok.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

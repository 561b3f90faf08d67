package token

import (
	"io"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/tsawler/epubcore/limits"
)

// skippedSubtree reports whether a's entire subtree is dropped per spec
// §4.5's element mapping table.
func skippedSubtree(a atom.Atom) bool {
	switch a {
	case atom.Script, atom.Style, atom.Head, atom.Nav, atom.Header, atom.Footer, atom.Aside, atom.Noscript:
		return true
	default:
		return false
	}
}

// Tokenizer converts one XHTML chapter into a bounded token stream.
type Tokenizer struct {
	lim limits.TokenizeLimits
}

// New returns a Tokenizer bounded by lim.
func New(lim limits.TokenizeLimits) *Tokenizer {
	return &Tokenizer{lim: lim}
}

// Sink receives each token as it is produced; returning false stops
// tokenizing early and Tokenize returns a Cancelled error.
type Sink func(Token) bool

// Tokenize drives the SAX state machine over chapter, emitting tokens to
// sink and using arena as the backing store for all Text token slices.
// arena is not cleared by Tokenize — callers reuse one arena across
// chapters and Clear() it themselves between calls.
func (tz *Tokenizer) Tokenize(chapter []byte, arena *Arena, sink Sink) error {
	z := html.NewTokenizer(&nopReader{r: chapter})

	var (
		elemStack      []atom.Atom
		skipUntilDepth = -1 // stack depth at which the active skip subtree started; -1 = not skipping
		listStack      []bool
		emphasisOn     bool
		strongOn       bool
		linkOpen       bool
		atBlockStart   = true // document start is itself a block boundary
		tokenCount     int
		runStart       = -1
		trailingSpace  bool
	)

	emit := func(t Token) error {
		tokenCount++
		if tokenCount > tz.lim.MaxTokens {
			return limits.Exceeded("tokens")
		}
		if !sink(t) {
			return limits.Cancelled()
		}
		return nil
	}

	// flushText emits the pending run, if any. trimBoundary trims one
	// trailing collapsed space byte first — used when the run ends right
	// before a block boundary, where trailing whitespace carries no
	// meaning; inline-boundary flushes (before <em>, <a>, <img>, ...) pass
	// false, since a trailing space there still separates it from the next
	// inline run's text.
	flushText := func(trimBoundary bool) error {
		if runStart < 0 {
			return nil
		}
		start := runStart
		runStart = -1
		trailingSpace = false
		if trimBoundary {
			arena.TrimTrailingSpace(start)
		}
		slice := arena.Slice(start)
		if len(slice) == 0 {
			return nil
		}
		return emit(Token{Kind: Text, TextSlice: slice})
	}

	emitParagraphBreak := func() error {
		if err := flushText(true); err != nil {
			return err
		}
		if atBlockStart {
			return nil
		}
		atBlockStart = true
		return emit(Token{Kind: ParagraphBreak})
	}

	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if z.Err() == io.EOF {
				break
			}
			return limits.ParseAt("chapter", 0, z.Err())
		}

		if skipUntilDepth >= 0 {
			switch tt {
			case html.StartTagToken, html.SelfClosingTagToken:
				if tt == html.StartTagToken {
					elemStack = append(elemStack, z.Token().DataAtom)
				}
			case html.EndTagToken:
				if len(elemStack) > 0 {
					elemStack = elemStack[:len(elemStack)-1]
				}
				if len(elemStack) == skipUntilDepth {
					skipUntilDepth = -1
				}
			}
			continue
		}

		switch tt {
		case html.TextToken:
			data := z.Text()
			if len(data) == 0 {
				continue
			}
			if runStart < 0 {
				runStart = arena.Mark()
				trailingSpace = true // drop leading whitespace at run start
				atBlockStart = false
			}
			if !arena.Append(data, &trailingSpace) {
				return limits.Exceeded("text_arena")
			}
			if arena.Mark()-runStart >= tz.lim.MaxTextBytes {
				if err := flushText(false); err != nil {
					return err
				}
			}

		case html.StartTagToken, html.SelfClosingTagToken:
			tok := z.Token()
			a := tok.DataAtom

			if len(elemStack) >= tz.lim.MaxNestingDepth {
				return limits.Exceeded("nesting_depth")
			}
			if tt == html.StartTagToken {
				elemStack = append(elemStack, a)
			}

			if skippedSubtree(a) {
				if tt == html.StartTagToken {
					skipUntilDepth = len(elemStack) - 1
				}
				continue
			}

			switch a {
			case atom.P, atom.Div:
				if err := emitParagraphBreak(); err != nil {
					return err
				}
			case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
				if err := flushText(true); err != nil {
					return err
				}
				atBlockStart = true
				if err := emit(Token{Kind: Heading, Level: headingLevel(a)}); err != nil {
					return err
				}
			case atom.Em, atom.I:
				if err := flushText(false); err != nil {
					return err
				}
				emphasisOn = true
				if err := emit(Token{Kind: Emphasis, On: true}); err != nil {
					return err
				}
			case atom.Strong, atom.B:
				if err := flushText(false); err != nil {
					return err
				}
				strongOn = true
				if err := emit(Token{Kind: Strong, On: true}); err != nil {
					return err
				}
			case atom.Br:
				if err := flushText(false); err != nil {
					return err
				}
				if err := emit(Token{Kind: LineBreak}); err != nil {
					return err
				}
			case atom.Ul, atom.Ol:
				if err := flushText(true); err != nil {
					return err
				}
				ordered := a == atom.Ol
				listStack = append(listStack, ordered)
				atBlockStart = true
				if err := emit(Token{Kind: ListStart, Ordered: ordered}); err != nil {
					return err
				}
			case atom.Li:
				if err := flushText(true); err != nil {
					return err
				}
				atBlockStart = true
				if err := emit(Token{Kind: ListItemStart}); err != nil {
					return err
				}
			case atom.A:
				href := attrVal(tok, "href")
				if href == "" {
					continue
				}
				if err := flushText(false); err != nil {
					return err
				}
				if err := emit(Token{Kind: LinkStart, Href: href}); err != nil {
					return err
				}
				linkOpen = true
			case atom.Img:
				src := attrVal(tok, "src")
				if src == "" {
					continue
				}
				if err := flushText(false); err != nil {
					return err
				}
				img := Token{Kind: Image, Src: src, Alt: attrVal(tok, "alt")}
				if w, h, ok := intrinsicDims(tok); ok {
					img.IntrinsicW, img.IntrinsicH, img.HasIntrinsic = w, h, true
				}
				if err := emit(img); err != nil {
					return err
				}
				atBlockStart = false // an image is block content; the enclosing block still needs its closing break
			}

		case html.EndTagToken:
			tok := z.Token()
			a := tok.DataAtom
			if len(elemStack) > 0 {
				elemStack = elemStack[:len(elemStack)-1]
			}

			switch a {
			case atom.P, atom.Div:
				if err := emitParagraphBreak(); err != nil {
					return err
				}
			case atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
				if err := flushText(true); err != nil {
					return err
				}
				atBlockStart = true
				if err := emit(Token{Kind: ParagraphBreak}); err != nil {
					return err
				}
			case atom.Em, atom.I:
				if err := flushText(false); err != nil {
					return err
				}
				if emphasisOn {
					emphasisOn = false
					if err := emit(Token{Kind: Emphasis, On: false}); err != nil {
						return err
					}
				}
			case atom.Strong, atom.B:
				if err := flushText(false); err != nil {
					return err
				}
				if strongOn {
					strongOn = false
					if err := emit(Token{Kind: Strong, On: false}); err != nil {
						return err
					}
				}
			case atom.Li:
				if err := flushText(true); err != nil {
					return err
				}
				atBlockStart = true
				if err := emit(Token{Kind: ListItemEnd}); err != nil {
					return err
				}
			case atom.Ul, atom.Ol:
				if err := flushText(true); err != nil {
					return err
				}
				if len(listStack) > 0 {
					listStack = listStack[:len(listStack)-1]
				}
				atBlockStart = true
				if err := emit(Token{Kind: ListEnd}); err != nil {
					return err
				}
			case atom.A:
				if err := flushText(false); err != nil {
					return err
				}
				if linkOpen {
					linkOpen = false
					if err := emit(Token{Kind: LinkEnd}); err != nil {
						return err
					}
				}
			}
		}
	}

	return flushText(true)
}

func headingLevel(a atom.Atom) int {
	switch a {
	case atom.H1:
		return 1
	case atom.H2:
		return 2
	case atom.H3:
		return 3
	case atom.H4:
		return 4
	case atom.H5:
		return 5
	case atom.H6:
		return 6
	default:
		return 1
	}
}

func attrVal(tok html.Token, key string) string {
	for _, a := range tok.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func intrinsicDims(tok html.Token) (w, h int, ok bool) {
	wAttr, hAttr := attrVal(tok, "width"), attrVal(tok, "height")
	if wAttr == "" || hAttr == "" {
		return 0, 0, false
	}
	wv, wok := atoiSimple(wAttr)
	hv, hok := atoiSimple(hAttr)
	if !wok || !hok {
		return 0, 0, false
	}
	return wv, hv, true
}

func atoiSimple(s string) (int, bool) {
	n := 0
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		n = n*10 + int(c-'0')
	}
	return n, true
}

// nopReader adapts a []byte to io.Reader without copying.
type nopReader struct {
	r []byte
	i int
}

func (n *nopReader) Read(p []byte) (int, error) {
	if n.i >= len(n.r) {
		return 0, io.EOF
	}
	c := copy(p, n.r[n.i:])
	n.i += c
	return c, nil
}

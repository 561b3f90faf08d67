package epubcore

import (
	"github.com/tsawler/epubcore/layout"
	"github.com/tsawler/epubcore/style"
	"github.com/tsawler/epubcore/token"
)

// translator converts one chapter's token stream into the layout engine's
// styled-run stream, resolving each block/inline boundary's computed
// style through the book's cascade engine as it goes. The token stream's
// semantic Kinds (Heading, ListItemStart, Emphasis, ...) stand in for the
// raw tag name the cascade matches against, since C5 Tokenizer discards
// the original tag/class/inline-style once it classifies an element —
// see DESIGN.md for why that's an acceptable simplification here.
//
// Ordinary body text carries no token of its own marking "this run is
// inside a <p>", so the translator pushes a synthetic "p" frame itself:
// once at construction, and again after every paragraph break that
// isn't closing a heading. Without this, a book's own p{...} cascade
// rules would never match anything, since the stack would otherwise sit
// on the root style (or whatever block last pushed) for all plain
// paragraph text.
type translator struct {
	engine *style.Engine
	eng    *layout.Engine

	stack     []*style.ComputedTextStyle
	offset    int
	inHeading bool
	emOn      bool
	strongOn  bool
}

func newTranslator(engine *style.Engine, eng *layout.Engine) *translator {
	t := &translator{engine: engine, eng: eng, stack: []*style.ComputedTextStyle{engine.Root()}}
	if err := t.push("p"); err != nil {
		// Root always resolves against "p" with no inline style; the
		// only failure modes are limit-exceeded ones already surfaced
		// by style.New during Book.Open, so this is unreachable in
		// practice. Fall back to the bare root style rather than panic.
		return t
	}
	return t
}

func (t *translator) current() *style.ComputedTextStyle { return t.stack[len(t.stack)-1] }

func (t *translator) push(tag string) error {
	st, err := t.engine.Resolve(t.current(), tag, "", "")
	if err != nil {
		return err
	}
	t.stack = append(t.stack, st)
	return nil
}

func (t *translator) pop() {
	if len(t.stack) > 1 {
		t.stack = t.stack[:len(t.stack)-1]
	}
}

// feed advances the translator by one token, emitting zero or one layout
// event. Inline marks (em/strong) and links carry no event of their own —
// they only push/pop the style stack text accumulated under them picks up
// on the next EventRun.
func (t *translator) feed(tok token.Token) error {
	t.offset++
	switch tok.Kind {
	case token.Text:
		return t.eng.Feed(layout.Event{Kind: layout.EventRun, Text: tok.TextSlice, Style: t.current(), TokenOffset: t.offset})

	case token.ParagraphBreak:
		if t.inHeading {
			t.inHeading = false
			t.pop()
			return t.eng.Feed(layout.Event{Kind: layout.EventHeadingEnd, TokenOffset: t.offset})
		}
		if err := t.eng.Feed(layout.Event{Kind: layout.EventParagraphBreak, TokenOffset: t.offset}); err != nil {
			return err
		}
		// Close the paragraph just ended and open the next one; a
		// following Heading/ListItemStart token pushes its own frame
		// on top before any more text arrives.
		t.pop()
		return t.push("p")

	case token.Heading:
		if err := t.push(headingTag(tok.Level)); err != nil {
			return err
		}
		t.inHeading = true
		return t.eng.Feed(layout.Event{Kind: layout.EventHeadingStart, Level: tok.Level, Style: t.current(), TokenOffset: t.offset})

	case token.ListStart:
		return t.eng.Feed(layout.Event{Kind: layout.EventListStart, Ordered: tok.Ordered, TokenOffset: t.offset})
	case token.ListEnd:
		return t.eng.Feed(layout.Event{Kind: layout.EventListEnd, TokenOffset: t.offset})

	case token.ListItemStart:
		t.pop() // drop the "p" frame opened for the list's own body text
		if err := t.push("li"); err != nil {
			return err
		}
		return t.eng.Feed(layout.Event{Kind: layout.EventListItemStart, TokenOffset: t.offset})
	case token.ListItemEnd:
		t.pop()
		if err := t.push("p"); err != nil {
			return err
		}
		return t.eng.Feed(layout.Event{Kind: layout.EventListItemEnd, TokenOffset: t.offset})

	case token.Emphasis:
		if tok.On {
			t.emOn = true
			return t.push("em")
		}
		if t.emOn {
			t.emOn = false
			t.pop()
		}
		return nil

	case token.Strong:
		if tok.On {
			t.strongOn = true
			return t.push("strong")
		}
		if t.strongOn {
			t.strongOn = false
			t.pop()
		}
		return nil

	case token.LinkStart, token.LinkEnd:
		return nil

	case token.LineBreak:
		return t.eng.Feed(layout.Event{Kind: layout.EventLineBreak, TokenOffset: t.offset})

	case token.Image:
		return t.eng.Feed(layout.Event{
			Kind: layout.EventImage, Src: tok.Src, Alt: tok.Alt,
			IntrinsicW: tok.IntrinsicW, IntrinsicH: tok.IntrinsicH, HasIntrinsic: tok.HasIntrinsic,
			TokenOffset: t.offset,
		})
	}
	return nil
}

func headingTag(level int) string {
	switch level {
	case 1:
		return "h1"
	case 2:
		return "h2"
	case 3:
		return "h3"
	case 4:
		return "h4"
	case 5:
		return "h5"
	case 6:
		return "h6"
	default:
		return "h1"
	}
}

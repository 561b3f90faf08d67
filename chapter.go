package epubcore

import (
	"github.com/tsawler/epubcore/layout"
	"github.com/tsawler/epubcore/limits"
	"github.com/tsawler/epubcore/token"
)

// Chapter is one spine item, resolved to its manifest href. It carries no
// parsed content itself — Tokenize and Paginate stream the chapter fresh
// on every call, matching the rest of this module's no-persistent-DOM
// discipline.
type Chapter struct {
	book  *Book
	Index int
	Href  string
}

// Chapter returns the i'th spine item's handle.
func (b *Book) Chapter(i int) (*Chapter, error) {
	if i < 0 || i >= len(b.pkg.Spine) {
		return nil, limits.Exceeded("chapter_index")
	}
	sp := b.pkg.Spine[i]
	item, ok := b.pkg.Item(sp.ItemID)
	if !ok {
		return nil, limits.MissingResource(sp.ItemID)
	}
	return &Chapter{book: b, Index: i, Href: item.Href}, nil
}

// Tokenize reads c's content into buf (bounded and UTF-8-safe truncated
// per resource.Reader) and drives a fresh Tokenizer over it, emitting
// tokens to sink. It is the direct C5 entry point for callers that only
// need the token stream — Paginate below is the full C5+C6+C7 pipeline.
func (c *Chapter) Tokenize(buf []byte, arena *token.Arena, sink token.Sink) (truncated bool, err error) {
	n, truncated, err := c.book.res.ReadInto(c.Href, buf, len(buf), true, c.book.scratch)
	if err != nil {
		return false, err
	}
	tz := token.New(c.book.cfg.Limits.Tokenize)
	return truncated, tz.Tokenize(buf[:n], arena, sink)
}

// Paginate streams c end to end: read -> tokenize -> cascade-resolve ->
// paginate, invoking sink once per sealed page. It makes two tokenizing
// passes over the same in-memory bytes: the first only counts tokens, to
// learn the progress denominator spec §4.7 requires be known "at first
// encounter" before any page's progress numerator can be computed; the
// second drives the real translation into styled-run events. Neither
// pass allocates per-token — the arena is cleared and reused between
// them.
func (c *Chapter) Paginate(buf []byte, arena *token.Arena, measurer layout.TextMeasurer, cfg layout.Config, sink layout.Sink) (truncated bool, err error) {
	n, truncated, err := c.book.res.ReadInto(c.Href, buf, len(buf), true, c.book.scratch)
	if err != nil {
		return false, err
	}

	tz := token.New(c.book.cfg.Limits.Tokenize)

	total := 0
	if err := tz.Tokenize(buf[:n], arena, func(token.Token) bool {
		total++
		return true
	}); err != nil {
		return truncated, err
	}
	arena.Clear()

	eng := layout.NewEngine(cfg, measurer, total, c.Index, c.book.cfg.Limits.ImageReg, sink)
	tr := newTranslator(c.book.styleEngine, eng)

	var feedErr error
	tokErr := tz.Tokenize(buf[:n], arena, func(tok token.Token) bool {
		if err := tr.feed(tok); err != nil {
			feedErr = err
			return false
		}
		return true
	})
	if feedErr != nil {
		return truncated, feedErr
	}
	if tokErr != nil {
		return truncated, tokErr
	}
	return truncated, eng.Finish()
}

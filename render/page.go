package render

import "github.com/tsawler/epubcore/limits"

// PageMeta carries the reading-progress bookkeeping spec §3 attaches to
// every sealed page.
type PageMeta struct {
	PageIndex       int
	ChapterIndex    int
	ProgressNum     int
	ProgressDen     int
	FirstTokenOffset int
	LastTokenOffset  int
}

// Page is one sealed, append-only command vector plus its metadata. There
// is exactly one command vector per page — nothing in this package
// mirrors it for a second pass — and once Seal is called, Append panics
// rather than silently accepting a command a backend may have already
// started consuming.
type Page struct {
	Meta     PageMeta
	commands []Command
	sealed   bool
}

// NewPage returns an empty, unsealed page for the given indices, with its
// command vector pre-sized off lim so building a page never reallocates
// on the common path.
func NewPage(pageIndex, chapterIndex int, lim limits.ImageRegistryLimits) *Page {
	return &Page{
		Meta:     PageMeta{PageIndex: pageIndex, ChapterIndex: chapterIndex},
		commands: make([]Command, 0, lim.MaxImages*2),
	}
}

// Append adds cmd to the page's command vector. It panics if the page is
// already sealed — a sealed page must never be mutated, per spec §3
// ("the page is sealed before emission").
func (p *Page) Append(cmd Command) {
	if p.sealed {
		panic("render: Append on a sealed Page")
	}
	p.commands = append(p.commands, cmd)
}

// Seal freezes the page's command vector. Calling Seal more than once is
// a no-op.
func (p *Page) Seal() { p.sealed = true }

// Sealed reports whether Seal has been called.
func (p *Page) Sealed() bool { return p.sealed }

// Commands returns the page's command vector. The caller must not retain
// it past the next pagination call if the producing LayoutEngine reuses
// the underlying page buffer (spec §4.7's streaming API contract).
func (p *Page) Commands() []Command { return p.commands }

// Len reports the number of commands currently on the page.
func (p *Page) Len() int { return len(p.commands) }

// Reset clears a page for reuse, retaining its command-vector capacity.
// Used by the pagination engine's internal buffer reuse, not by backends.
func (p *Page) Reset(pageIndex, chapterIndex int) {
	p.commands = p.commands[:0]
	p.sealed = false
	p.Meta = PageMeta{PageIndex: pageIndex, ChapterIndex: chapterIndex}
}

package layout

import "github.com/tsawler/epubcore/style"

// EventKind discriminates the styled-run stream LayoutEngine consumes —
// the Go encoding of spec §3's "styled event: either a structural event
// ... or a StyledRun", generalized to one flat enum covering every kind
// the token stream can produce once C6 has attached a computed style to
// each run.
type EventKind uint8

const (
	EventRun EventKind = iota
	EventParagraphBreak
	EventHeadingStart
	EventHeadingEnd
	EventListStart
	EventListItemStart
	EventListItemEnd
	EventListEnd
	EventLineBreak
	EventImage
)

// Event is one unit of the styled-run stream. Style is set on EventRun
// and EventHeadingStart; TokenOffset is the token stream's own token
// count seen so far, used to drive page_meta's progress numerator.
type Event struct {
	Kind  EventKind
	Text  []byte
	Style *style.ComputedTextStyle

	Level   int // EventHeadingStart
	Ordered bool // EventListStart

	Src, Alt     string // EventImage
	IntrinsicW   int
	IntrinsicH   int
	HasIntrinsic bool

	TokenOffset int
}

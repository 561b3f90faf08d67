package token

// Kind discriminates the Token sum type (spec §3).
type Kind uint8

const (
	Text Kind = iota
	ParagraphBreak
	Heading
	ListStart
	ListItemStart
	ListItemEnd
	ListEnd
	Emphasis
	Strong
	LinkStart
	LinkEnd
	Image
	LineBreak
)

// Token is one emitted unit of the chapter token stream. Only the fields
// relevant to Kind are meaningful; this flat-struct encoding is the
// idiomatic Go stand-in for the spec's tagged union (variant payloads don't
// justify an interface hierarchy here, since every consumer switches on
// Kind in one place: the root package's translator and the tokenizer's own
// tests).
type Token struct {
	Kind Kind

	// Text: the UTF-8 bytes of this run, sliced from the caller's Arena.
	TextSlice []byte

	// Heading: 1..=6.
	Level int

	// ListStart: true for <ol>, false for <ul>.
	Ordered bool

	// Emphasis/Strong: on (start) or off (end).
	On bool

	// LinkStart: the raw href attribute value.
	Href string

	// Image.
	Src, Alt        string
	IntrinsicW      int
	IntrinsicH      int
	HasIntrinsic    bool
}

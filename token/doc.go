// Package token implements C5 Tokenizer: a SAX-driven conversion of one
// XHTML chapter into a typed token stream (block/inline/text/image/link/
// list), bounded by [limits.TokenizeLimits].
//
// Tokenizing drives [golang.org/x/net/html]'s streaming Tokenizer — never
// html.Parse's DOM builder — over the caller's chapter byte buffer, pushing
// and popping a small element-kind stack exactly like the teacher's
// htmldoc.traverseNode dispatch, but state-machine-driven instead of
// recursing over *html.Node children.
//
// Text tokens slice into a caller-owned [Arena] rather than the raw chapter
// bytes, because whitespace collapsing can shorten a run and the Arena lets
// that happen without allocating: collapsed text is written once into the
// Arena's backing buffer and the emitted token borrows the written range.
// Both the chapter buffer and the Arena must outlive the returned token
// stream — this is a usage contract the Go compiler does not enforce.
package token

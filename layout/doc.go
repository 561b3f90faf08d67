// Package layout implements C7 LayoutEngine: greedy word-wrap line
// breaking and pagination over a styled-run stream, delegating every
// width and line-metric question to a caller-supplied [TextMeasurer]
// rather than estimating widths itself.
//
// Where the teacher's layout package analyzed already-positioned PDF
// glyph fragments to recover structure (lines, columns, reading order),
// this package runs the inverse problem: it has no pre-existing
// positions at all, only a linear stream of styled text and structural
// events, and its job is to synthesize x/y positions and page breaks
// from scratch. The two problems share vocabulary (Line, Paragraph,
// widow/orphan) but not an algorithmic core, so this package is a
// from-scratch greedy line breaker rather than an adaptation of the
// PDF-side detectors.
package layout

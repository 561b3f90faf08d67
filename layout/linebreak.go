package layout

import (
	"unicode/utf8"

	"github.com/tsawler/epubcore/style"
)

const softHyphen = '­'

// word is one whitespace-delimited unit accumulated from a paragraph's
// styled runs, with its measured width cached so a line can be broken
// without re-measuring.
type word struct {
	text       []byte
	st         *style.ComputedTextStyle
	width      float64
	spaceAfter bool // a literal space followed this word in the source
	hardBreak  bool // an explicit <br> follows this word
}

// splitWords breaks text into words on ASCII/Unicode whitespace,
// measuring each with measurer under st. Soft hyphens are left embedded
// in the word text; brokenLine decides whether to honor them.
func splitWords(text []byte, st *style.ComputedTextStyle, measurer TextMeasurer, out []word) []word {
	start := -1
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRune(text[i:])
		if isBreakingSpace(r) {
			if start >= 0 {
				w := text[start:i]
				out = append(out, word{text: w, st: st, width: measurer.Measure(string(w), st)})
				start = -1
			}
			if len(out) > 0 {
				out[len(out)-1].spaceAfter = true
			}
		} else if start < 0 {
			start = i
		}
		i += size
	}
	if start >= 0 {
		w := text[start:]
		out = append(out, word{text: w, st: st, width: measurer.Measure(string(w), st)})
	}
	return out
}

func isBreakingSpace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	default:
		return false
	}
}

// brokenLine is one committed line out of a paragraph's word list: the
// half-open [start,end) word range it spans. startOffset is the byte
// offset into words[start].text where this line's rendering begins
// (nonzero only when start is a word continuing from a previous
// hyphen-split line). splitAt, when nonzero, is the byte offset into
// words[end-1].text where this line actually ends, the remainder
// carrying to a later line as the same word index with a larger
// startOffset. Lines never mutate the words slice, so any earlier line
// can still be rendered correctly after later lines have been broken.
type brokenLine struct {
	start, end  int
	startOffset int
	splitAt     int // 0 if the line ends at the word's natural end
	width       float64
	spaceCount  int
}

// breakParagraph greedily word-wraps words into lines no wider than
// maxWidth, honoring soft-hyphen in-word breaks per policy only when a
// whole word does not fit on its own line (spec §4.7). words is read
// only; per-word consumed-byte offsets are tracked locally so a word
// split across several lines never has its stored text mutated.
func breakParagraph(words []word, maxWidth float64, measurer TextMeasurer, policy SoftHyphenPolicy) []brokenLine {
	offsets := make([]int, len(words))
	var lines []brokenLine
	i := 0
outer:
	for i < len(words) {
		lineStart := i
		lineStartOffset := offsets[i]
		var lineWidth float64
		spaces := 0

		for i < len(words) {
			w := words[i]
			remaining := w.text[offsets[i]:]
			wWidth := w.width
			if offsets[i] != 0 {
				wWidth = measurer.Measure(string(remaining), w.st)
			}
			sep := 0.0
			if i > lineStart {
				sep = spaceWidthFor(w.st, measurer)
			}
			if lineWidth+sep+wWidth <= maxWidth {
				lineWidth += sep + wWidth
				if sep > 0 {
					spaces++
				}
				i++
				if w.hardBreak {
					break
				}
				continue
			}
			if i > lineStart {
				// at least one word already placed on this line: end it
				// here and let the word that didn't fit start the next.
				break
			}
			// i == lineStart: a single (possibly already-partial) word
			// doesn't fit on an empty line. Try a soft-hyphen split
			// inside its remaining text before giving up.
			if policy == SoftHyphenRespect {
				if cut, cutWidth, ok := hyphenFit(remaining, maxWidth, w.st, measurer); ok {
					abs := offsets[i] + cut
					lines = append(lines, brokenLine{start: i, end: i + 1, startOffset: lineStartOffset, splitAt: abs, width: cutWidth})
					offsets[i] = abs
					continue outer
				}
			}
			// can't split further; place the oversized remainder alone.
			lineWidth = wWidth
			i++
			break
		}
		lines = append(lines, brokenLine{start: lineStart, end: i, startOffset: lineStartOffset, width: lineWidth, spaceCount: spaces})
	}
	return lines
}

func spaceWidthFor(st *style.ComputedTextStyle, measurer TextMeasurer) float64 {
	return measurer.Measure(" ", st)
}

// hyphenFit looks for the last soft-hyphen in remaining whose prefix
// (plus a rendered hyphen glyph) fits within maxWidth. Returns the byte
// offset within remaining to resume from and the fitted prefix's width.
func hyphenFit(remaining []byte, maxWidth float64, st *style.ComputedTextStyle, measurer TextMeasurer) (cut int, width float64, ok bool) {
	text := string(remaining)
	bestCut := -1
	var bestWidth float64
	for idx, r := range text {
		if r != softHyphen {
			continue
		}
		prefix := text[:idx] + "-"
		pw := measurer.Measure(prefix, st)
		if pw <= maxWidth {
			bestCut = idx + utf8.RuneLen(softHyphen)
			bestWidth = pw
		}
	}
	if bestCut < 0 {
		return 0, 0, false
	}
	return bestCut, bestWidth, true
}

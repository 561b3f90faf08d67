package layout

import (
	"github.com/tsawler/epubcore/limits"
	"github.com/tsawler/epubcore/render"
	"github.com/tsawler/epubcore/style"
)

// placeLines commits a block's broken lines to the page, sealing and
// starting new pages as needed and applying the widow/orphan clamp: a
// block no longer than 2*clamp lines never splits across a page boundary
// at all; a longer block may split, but never leaves fewer than clamp
// lines stranded on either side of the break (spec §4.7).
func (e *Engine) placeLines(words []word, lines []brokenLine, lineHeight, marginTop, marginBot, indent, firstLineIndent float64, st *style.ComputedTextStyle, clamp int) error {
	remaining := lines
	firstChunk := true

	for len(remaining) > 0 {
		topGap := 0.0
		if firstChunk {
			topGap = marginTop
		}
		avail := e.remainingHeight() - topGap
		fit := 0
		if avail > 0 {
			fit = int(avail / lineHeight)
		}
		total := len(remaining)

		switch {
		case fit >= total:
			// whole remainder fits; fall through to placement below.
			fit = total
		case fit == 0:
			if e.page.Len() == 0 {
				// an empty page that still can't fit one line: place it
				// anyway rather than looping forever.
				fit = 1
				break
			}
			if err := e.sealCurrent(); err != nil {
				return err
			}
			continue
		default:
			if total <= 2*clamp {
				if e.page.Len() == 0 {
					fit = total
					break
				}
				if err := e.sealCurrent(); err != nil {
					return err
				}
				continue
			}
			if fit < clamp {
				fit = 0
			} else if total-fit < clamp {
				fit = total - clamp
			}
			if fit == 0 {
				if e.page.Len() == 0 {
					fit = 1
					break
				}
				if err := e.sealCurrent(); err != nil {
					return err
				}
				continue
			}
		}

		e.y += topGap
		e.emitLines(words, remaining[:fit], lineHeight, indent, firstLineIndent, st, firstChunk)
		remaining = remaining[fit:]
		firstChunk = false
		if len(remaining) > 0 {
			if err := e.sealCurrent(); err != nil {
				return err
			}
		}
	}

	e.y += marginBot
	return nil
}

// emitLines lays out and appends DrawText commands for lines[*], applying
// this block's text-align (and, for AlignJustify, inter-word stretch
// bounded by cfg.JustifyMaxSpaceStretch) to each line independently.
func (e *Engine) emitLines(words []word, lines []brokenLine, lineHeight, indent, firstLineIndent float64, st *style.ComputedTextStyle, blockFirstChunk bool) {
	for li, ln := range lines {
		top := e.y
		e.y += lineHeight

		x0 := e.cfg.Margins.L + indent
		if blockFirstChunk && li == 0 {
			x0 += firstLineIndent
		}
		avail := e.cfg.contentWidth() - indent
		if blockFirstChunk && li == 0 {
			avail -= firstLineIndent
		}

		isLast := li == len(lines)-1
		align := st.Align
		extraTracking := 0.0
		wordGap := 0.0
		slack := avail - ln.width

		switch {
		case align == style.AlignJustify && e.cfg.JustifyMode != JustifyNone && !isLast && ln.spaceCount > 0 && slack > 0:
			stretchPerSpace := slack / float64(ln.spaceCount)
			baseSpace := e.measurer.Measure(" ", st)
			ratio := stretchPerSpace / maxf(baseSpace, 1)
			if ratio <= e.cfg.JustifyMaxSpaceStretch {
				wordGap = stretchPerSpace
			} else if e.cfg.JustifyMode == JustifyAdaptiveInterWord {
				wordGap = e.cfg.JustifyMaxSpaceStretch * baseSpace
				used := wordGap * float64(ln.spaceCount)
				remaining := slack - used
				if nGlyphs := lineGlyphCount(words, ln); nGlyphs > 0 {
					extraTracking = remaining / float64(nGlyphs)
				}
			}
			// else: badness too high even for the adaptive mode; fall
			// back to left alignment (wordGap, extraTracking stay 0).
		case align == style.AlignCenter:
			x0 += slack / 2
		case align == style.AlignRight:
			x0 += slack
		}

		metrics := e.measurer.LineMetrics(st)
		baseline := top + metrics.AscentPx

		x := x0
		for wi := ln.start; wi < ln.end; wi++ {
			w := words[wi]
			lo := 0
			if wi == ln.start {
				lo = ln.startOffset
			}
			hi := len(w.text)
			split := ln.splitAt > 0 && wi == ln.end-1
			if split {
				hi = ln.splitAt
			}
			text := w.text[lo:hi]
			width := w.width
			if lo != 0 || hi != len(w.text) {
				width = e.measurer.Measure(string(text), w.st)
			}
			if split {
				text = append(append([]byte(nil), text...), '-')
				width = e.measurer.Measure(string(text), w.st)
			}
			cmd := render.DrawText{
				X: x, Y: top, Baseline: baseline,
				Text: text, FontID: w.st.FontID, SizePx: w.st.SizePx,
				Weight: w.st.Weight, Italic: w.st.Italic,
				Tracking: w.st.TrackingPx + extraTracking,
			}
			e.page.Append(cmd)
			x += width
			if wi < ln.end-1 {
				x += e.measurer.Measure(" ", w.st) + wordGap
			}
		}
	}
}

func lineGlyphCount(words []word, ln brokenLine) int {
	n := 0
	for wi := ln.start; wi < ln.end; wi++ {
		lo := 0
		if wi == ln.start {
			lo = ln.startOffset
		}
		hi := len(words[wi].text)
		if ln.splitAt > 0 && wi == ln.end-1 {
			hi = ln.splitAt
		}
		n += len([]rune(string(words[wi].text[lo:hi])))
	}
	return n
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}

// placeImage places an intrinsic-or-default-sized image as its own
// block, scaling it down to the content width if it would otherwise
// overflow, and bounded chapter-wide by imgLim.MaxImages.
func (e *Engine) placeImage(ev Event) error {
	if e.imagesSeen >= e.imgLim.MaxImages {
		return limits.Exceeded("images_per_chapter")
	}
	e.imagesSeen++

	if len(e.words) > 0 {
		if err := e.flushBlock(); err != nil {
			return err
		}
	}

	w, h := float64(ev.IntrinsicW), float64(ev.IntrinsicH)
	if !ev.HasIntrinsic || w <= 0 || h <= 0 {
		w, h = e.cfg.contentWidth(), e.cfg.contentWidth()*0.6
	}
	maxW := e.cfg.contentWidth()
	if w > maxW {
		h = h * maxW / w
		w = maxW
	}

	if h > e.remainingHeight() && e.page.Len() > 0 {
		if err := e.sealCurrent(); err != nil {
			return err
		}
	}

	e.page.Append(render.DrawImageRef{
		X: e.cfg.Margins.L, Y: e.y, W: w, H: h,
		Src: ev.Src, Alt: ev.Alt,
	})
	e.y += h + e.cfg.ParagraphGap
	return nil
}

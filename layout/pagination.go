package layout

import (
	"github.com/tsawler/epubcore/limits"
	"github.com/tsawler/epubcore/render"
	"github.com/tsawler/epubcore/style"
)

// Sink receives each sealed page as pagination produces it. Returning
// false stops pagination early; the Feed or Finish call that sealed the
// page then returns a Cancelled error, the same cooperative cancellation
// contract token.Sink uses.
type Sink func(*render.Page) bool

type blockKind uint8

const (
	blockParagraph blockKind = iota
	blockHeading
	blockListItem
)

// listFrame tracks one level of list nesting for marker generation.
type listFrame struct {
	ordered bool
	next    int
}

// Engine is the Go encoding of spec §4.7's "paginate(stream, measurer,
// sink)": a push-based pagination state machine. Callers drive it by
// calling Feed once per styled-run-stream event instead of handing it a
// pull iterator, matching this module's existing cooperative,
// callback-driven streaming style (token.Tokenize's Sink, zipstream's
// read loop) rather than introducing a different concurrency idiom just
// for this component.
type Engine struct {
	cfg      Config
	measurer TextMeasurer
	sink     Sink
	imgLim   limits.ImageRegistryLimits

	chapterIndex int
	totalTokens  int
	imagesSeen   int

	page                   *render.Page
	pageIndex              int
	y                      float64
	firstTokenOffsetOnPage int
	lastTokenOffset        int

	words        []word
	blockKind    blockKind
	blockStyle   *style.ComputedTextStyle
	headingLevel int
	listStack    []listFrame
	pendingMark  *word // list marker word, placed before the item's first line
}

// NewEngine returns a pagination engine for one chapter. totalTokens is
// the chapter's total token count, known up front by the caller (spec
// §4.7: "progress denominator is the chapter's total token count at first
// encounter") since this engine makes only one streaming pass and cannot
// discover the total by itself.
func NewEngine(cfg Config, measurer TextMeasurer, totalTokens, chapterIndex int, imgLim limits.ImageRegistryLimits, sink Sink) *Engine {
	return &Engine{
		cfg:          cfg,
		measurer:     measurer,
		sink:         sink,
		imgLim:       imgLim,
		chapterIndex: chapterIndex,
		totalTokens:  totalTokens,
		page:         render.NewPage(0, chapterIndex, imgLim),
	}
}

// Feed advances the state machine by one styled-run-stream event.
func (e *Engine) Feed(ev Event) error {
	e.lastTokenOffset = ev.TokenOffset

	switch ev.Kind {
	case EventRun:
		if len(ev.Text) == 0 {
			return nil
		}
		if e.blockStyle == nil {
			e.blockStyle = ev.Style
		}
		e.words = splitWords(ev.Text, ev.Style, e.measurer, e.words)

	case EventParagraphBreak:
		if len(e.words) == 0 {
			e.blockKind = blockParagraph
			e.blockStyle = nil
			return nil
		}
		if err := e.flushBlock(); err != nil {
			return err
		}

	case EventHeadingStart:
		if len(e.words) > 0 {
			if err := e.flushBlock(); err != nil {
				return err
			}
		}
		e.blockKind = blockHeading
		e.blockStyle = ev.Style
		e.headingLevel = ev.Level

	case EventHeadingEnd:
		if err := e.flushBlock(); err != nil {
			return err
		}
		e.blockKind = blockParagraph

	case EventListStart:
		e.listStack = append(e.listStack, listFrame{ordered: ev.Ordered, next: 1})

	case EventListEnd:
		if len(e.listStack) > 0 {
			e.listStack = e.listStack[:len(e.listStack)-1]
		}

	case EventListItemStart:
		if len(e.words) > 0 {
			if err := e.flushBlock(); err != nil {
				return err
			}
		}
		e.blockKind = blockListItem
		if len(e.listStack) > 0 {
			top := &e.listStack[len(e.listStack)-1]
			marker := listMarker(top.ordered, top.next)
			top.next++
			e.pendingMark = &word{text: []byte(marker)}
		}

	case EventListItemEnd:
		if err := e.flushBlock(); err != nil {
			return err
		}
		e.blockKind = blockParagraph

	case EventLineBreak:
		if len(e.words) > 0 {
			e.words[len(e.words)-1].hardBreak = true
		}

	case EventImage:
		if err := e.placeImage(ev); err != nil {
			return err
		}
	}
	return nil
}

// Finish flushes any trailing block and seals the final page. Callers
// must call it once after the last Feed for a chapter.
func (e *Engine) Finish() error {
	if len(e.words) > 0 {
		if err := e.flushBlock(); err != nil {
			return err
		}
	}
	if e.page.Len() > 0 {
		return e.sealCurrent()
	}
	return nil
}

func listMarker(ordered bool, n int) string {
	if !ordered {
		return "• "
	}
	return itoa(n) + ". "
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	neg := n < 0
	if neg {
		n = -n
	}
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

func (e *Engine) remainingHeight() float64 {
	return e.cfg.contentHeight() - e.y
}

func (e *Engine) sealCurrent() error {
	e.page.Seal()
	e.page.Meta.ProgressDen = e.totalTokens
	e.page.Meta.ProgressNum = e.lastTokenOffset
	e.page.Meta.FirstTokenOffset = e.firstTokenOffsetOnPage
	e.page.Meta.LastTokenOffset = e.lastTokenOffset

	cont := e.sink(e.page)
	e.pageIndex++
	e.y = 0
	e.firstTokenOffsetOnPage = e.lastTokenOffset
	e.page.Reset(e.pageIndex, e.chapterIndex)
	if !cont {
		return limits.Cancelled()
	}
	return nil
}

func (e *Engine) flushBlock() error {
	defer func() {
		e.words = e.words[:0]
		e.blockStyle = nil
		e.pendingMark = nil
	}()

	if e.blockStyle == nil {
		return nil
	}
	st := e.blockStyle
	indent := 0.0
	if e.blockKind == blockListItem {
		indent = e.cfg.ListIndent * float64(maxInt(len(e.listStack), 1))
	}
	firstLineIndent := 0.0
	if e.blockKind == blockParagraph {
		firstLineIndent = e.cfg.FirstLineIndent
	}

	words := e.words
	if e.pendingMark != nil {
		e.pendingMark.st = st
		e.pendingMark.width = e.measurer.Measure(string(e.pendingMark.text), st)
		words = append([]word{*e.pendingMark}, words...)
	}

	maxWidth := e.cfg.contentWidth() - indent
	lines := breakParagraph(words, maxWidth, e.measurer, e.cfg.SoftHyphenPolicy)
	if len(lines) == 0 {
		return nil
	}

	lineHeight := st.LineHeightPx
	if lineHeight <= 0 {
		m := e.measurer.LineMetrics(st)
		lineHeight = m.AscentPx + m.DescentPx + m.LineGapPx
	}

	marginTop := st.MarginTopPx
	switch e.blockKind {
	case blockHeading:
		marginTop += e.cfg.HeadingGapBefore
	case blockParagraph:
		marginTop += e.cfg.ParagraphGap
	}
	marginBot := st.MarginBotPx
	if e.blockKind == blockHeading {
		marginBot += e.cfg.HeadingGapAfter
	}

	clamp := e.cfg.WidowOrphanClamp
	if e.blockKind == blockHeading {
		// A heading never emits as the last element on a page: require
		// room for the whole heading plus one reserved body line before
		// placing any of it on the current page.
		reserve := float64(len(lines))*lineHeight + marginTop + marginBot + lineHeight
		if reserve > e.remainingHeight() && e.page.Len() > 0 {
			if err := e.sealCurrent(); err != nil {
				return err
			}
		}
		clamp = len(lines) // never split a heading across pages
	}

	return e.placeLines(words, lines, lineHeight, marginTop, marginBot, indent, firstLineIndent, st, clamp)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

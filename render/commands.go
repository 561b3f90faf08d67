package render

import "github.com/tsawler/epubcore/style"

// CommandKind discriminates the Command vocabulary, grounded on the
// teacher's model.ElementType pattern (model/element.go): a small closed
// enum plus one concrete struct per kind, each satisfying the Command
// interface, rather than a single flat struct — RenderIR is consumed by
// more than one backend, so a type switch over a real interface reads
// better here than it would for the single-consumer token stream.
type CommandKind int

const (
	CommandDrawText CommandKind = iota
	CommandDrawImageRef
	CommandDrawRule
	CommandPageHeader
	CommandPageFooter
)

func (k CommandKind) String() string {
	switch k {
	case CommandDrawText:
		return "DrawText"
	case CommandDrawImageRef:
		return "DrawImageRef"
	case CommandDrawRule:
		return "DrawRule"
	case CommandPageHeader:
		return "PageHeader"
	case CommandPageFooter:
		return "PageFooter"
	default:
		return "Unknown"
	}
}

// Command is the interface every draw command satisfies. Backends type-
// switch on Kind() to dispatch; text commands additionally carry a
// baseline so a backend can tell which commands share one line without
// re-deriving it from Y coordinates.
type Command interface {
	Kind() CommandKind
}

// DrawText draws one styled run. Text is borrowed from the chapter buffer
// backing the page's source chapter — it stays valid only as long as that
// buffer does (spec §3); FontID is the style engine's interned identity,
// never re-resolved to a family string at this layer.
type DrawText struct {
	X, Y     float64
	Baseline float64
	Text     []byte
	FontID   int
	SizePx   float64
	Weight   int
	Italic   bool
	Tracking float64
}

func (DrawText) Kind() CommandKind { return CommandDrawText }

// DrawImageRef draws a placed image by reference; no pixel data crosses
// this boundary; a backend resolves Src through its own resource reader.
type DrawImageRef struct {
	X, Y, W, H float64
	Src        string
	Alt        string
}

func (DrawImageRef) Kind() CommandKind { return CommandDrawImageRef }

// DrawRule draws a straight line segment, such as a horizontal rule or a
// page-chrome separator. The layout engine in this module does not emit it.
type DrawRule struct {
	X0, Y0, X1, Y1 float64
	ThicknessPx    float64
}

func (DrawRule) Kind() CommandKind { return CommandDrawRule }

// PageHeader draws a page-chrome header line. The layout engine in this
// module does not emit it, whatever layout.Config.Chrome holds.
type PageHeader struct {
	Text  string
	Align style.Align
}

func (PageHeader) Kind() CommandKind { return CommandPageHeader }

// PageFooter draws a page-chrome footer line and, when HasProgress is set,
// the reading-progress fraction. The layout engine in this module does not
// emit it, whatever layout.Config.Chrome holds.
type PageFooter struct {
	Text        string
	Align       style.Align
	HasProgress bool
	ProgressNum int
	ProgressDen int
}

func (PageFooter) Kind() CommandKind { return CommandPageFooter }

package layout

// JustifyMode selects the per-line justification policy spec §4.7 names.
type JustifyMode int

const (
	JustifyNone JustifyMode = iota
	JustifyInterWord
	JustifyAdaptiveInterWord
)

// SoftHyphenPolicy controls whether U+00AD soft hyphens are eligible
// in-word break points.
type SoftHyphenPolicy int

const (
	SoftHyphenRespect SoftHyphenPolicy = iota
	SoftHyphenIgnore
)

// Viewport is the page content box, after margins are applied.
type Viewport struct {
	W, H float64
}

// Margins are inner page margins in pixels.
type Margins struct {
	L, R, T, B float64
}

// PageChrome holds the header/footer settings spec §4.7 calls page_chrome.
// The pagination Engine does not read them: it emits no PageHeader or
// PageFooter commands and reserves no page space for chrome.
type PageChrome struct {
	Header          bool
	Footer          bool
	ProgressEnabled bool
	HeaderText      string
	FooterText      string
}

// Config bundles every tunable spec §4.7's option table names.
type Config struct {
	Viewport Viewport
	Margins  Margins

	ParagraphGap      float64
	HeadingGapBefore  float64
	HeadingGapAfter   float64
	ListIndent        float64
	FirstLineIndent   float64

	JustifyMode             JustifyMode
	JustifyMaxSpaceStretch  float64
	WidowOrphanClamp        int
	SoftHyphenPolicy        SoftHyphenPolicy
	Chrome                  PageChrome
}

// DefaultConfig returns a reasonable desktop-reader starting point: no
// justification, a two-line widow/orphan clamp, soft hyphens respected,
// and page chrome off.
func DefaultConfig() Config {
	return Config{
		Viewport:               Viewport{W: 480, H: 720},
		Margins:                Margins{L: 24, R: 24, T: 24, B: 24},
		ParagraphGap:           8,
		HeadingGapBefore:       16,
		HeadingGapAfter:        8,
		ListIndent:             20,
		FirstLineIndent:        0,
		JustifyMode:            JustifyNone,
		JustifyMaxSpaceStretch: 0.5,
		WidowOrphanClamp:       2,
		SoftHyphenPolicy:       SoftHyphenRespect,
	}
}

// contentWidth is the usable line width inside margins.
func (c Config) contentWidth() float64 { return c.Viewport.W - c.Margins.L - c.Margins.R }

// contentHeight is the usable column height inside margins.
func (c Config) contentHeight() float64 { return c.Viewport.H - c.Margins.T - c.Margins.B }

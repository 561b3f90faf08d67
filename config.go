package epubcore

import (
	"github.com/tsawler/epubcore/layout"
	"github.com/tsawler/epubcore/limits"
)

// OpenConfig is spec §6's "OpenConfig { limits, lazy_navigation }". Limits
// reuses limits.MemoryBudget, the module's own full-preset bundle
// (limits.Embedded()/limits.Desktop()), rather than redeclaring a second
// aggregate type here.
type OpenConfig struct {
	Limits limits.MemoryBudget
	// LazyNavigation defers parsing the navigation document until
	// Book.Navigation is first called, instead of eagerly during Open.
	LazyNavigation bool
	// RootSizePx is the em-relative cascade's base font size. Defaults to
	// 16 (the conventional CSS initial value) when zero.
	RootSizePx float64
	// Layout is a default layout configuration carried for callers.
	// Chapter.Paginate does not read it; it uses only its own cfg argument.
	Layout layout.Config
}

// DefaultOpenConfig returns desktop-preset limits, eager navigation, and a
// default layout configuration.
func DefaultOpenConfig() OpenConfig {
	return OpenConfig{
		Limits:     limits.Desktop(),
		RootSizePx: 16,
		Layout:     layout.DefaultConfig(),
	}
}

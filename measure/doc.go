// Package measure provides TextMeasurer implementations for the layout
// package. Builtin is the desktop default: a fixed-width bitmap font from
// golang.org/x/image/font/basicfont, scaled to each computed style's
// size_px. Embedded targets are expected to supply their own measurer
// backed by their font tables; this package exists so LayoutEngine has a
// working default without one.
package measure

package epubcore

// defaultAgentCSS supplies the handful of tag-level rules a browser's
// user-agent stylesheet would otherwise contribute — em/i italicizing,
// strong/b bolding, and a conventional heading size scale — so that
// inline emphasis and headings look right even for a chapter whose own
// stylesheet never mentions them. It is prepended to every book's
// aggregated CSS; same-specificity book rules declared later still win,
// since the cascade's sort is stable (style/cascade.go) and ties resolve
// in declaration order.
const defaultAgentCSS = `
em { font-style: italic; }
i { font-style: italic; }
strong { font-weight: bold; }
b { font-weight: bold; }
h1 { font-size: 2em; }
h2 { font-size: 1.5em; }
h3 { font-size: 1.17em; }
h4 { font-size: 1em; }
h5 { font-size: .83em; }
h6 { font-size: .67em; }
`

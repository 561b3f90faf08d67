// Package navdoc implements C3 NavigationParser: a lazily-invoked parser
// producing a flat, depth-tagged table of contents from either an EPUB 3
// XHTML nav document (epub:type="toc"/"page-list"/"landmarks") or an EPUB 2
// NCX fallback.
//
// Both paths flatten the source's natural recursive nesting into a
// pre-order []Entry carrying a Depth field, per spec §3's "Depth-tagged
// encoding replaces the natural recursive nesting; the recursive form is
// never materialized." The XHTML path drives [golang.org/x/net/html]'s
// streaming Tokenizer — the same package the teacher imports for its
// DOM-building html.Parse, used here through its SAX-compatible half.
package navdoc

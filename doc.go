// Package epubcore is a streaming EPUB reader core: it opens an archive,
// parses its package document and navigation, and turns chapter markup
// into paginated render commands without ever materializing a whole book
// in memory. Book is the facade, mirroring the shape of the EPUB readers
// this module grew out of (epubdoc.Reader, htmldoc.Reader) but replacing
// their parse-then-hold-a-DOM approach with a pull/push streaming
// pipeline suited to constrained embedded targets as well as desktop use.
//
// The pipeline a Book wires together, component by component:
//
//	zipstream.Archive   -- central directory, bounded entry enumeration
//	opf.ParseContainer/ParsePackage -- container.xml + OPF -> Package
//	navdoc              -- XHTML nav / NCX -> flat TOC, eager unless LazyNavigation
//	resource.Reader     -- bounded, UTF-8-safe resource reads
//	token.Tokenizer     -- XHTML chapter -> token stream
//	style.Engine        -- CSS cascade -> computed styles, interned fonts
//	layout.Engine       -- styled runs -> paginated render.Page stream
//
// Callers drive Chapter.Paginate with a TextMeasurer and a sink; nothing
// in this package retains more than one chapter's working state at a
// time, matching the rest of the module's caller-owns-the-buffers
// discipline.
package epubcore

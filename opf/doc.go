// Package opf implements C2 PackageParser: reading container.xml, resolving
// the rootfile, and SAX-parsing the OPF package document into an immutable
// [Package] view (metadata, manifest, spine, cover).
//
// Parsing is pull-style over [encoding/xml.Decoder.Token], the same no-DOM
// SAX primitive the pack's other EPUB readers use for one-shot Unmarshal —
// this package never builds a node tree, and holds at most
// [limits.PackageLimits.MaxElementStack] element names on its parse stack at
// any time.
package opf

package epubcore

import (
	"bytes"
	"path"
	"sort"
	"strings"

	"github.com/tsawler/epubcore/limits"
	"github.com/tsawler/epubcore/navdoc"
	"github.com/tsawler/epubcore/opf"
	"github.com/tsawler/epubcore/resource"
	"github.com/tsawler/epubcore/style"
	"github.com/tsawler/epubcore/zipstream"
)

// Book is the open handle on an EPUB archive: its package view, resource
// reader, and (once resolved) navigation and computed-style cascade. It
// holds no per-chapter working state; that lives on the short-lived
// Chapter handles Book.Chapter hands out.
type Book struct {
	archive *zipstream.Archive
	res     *resource.Reader
	scratch *zipstream.Scratch
	cfg     OpenConfig
	pkg     *opf.Package

	nav       []navdoc.Entry
	navLoaded bool

	styleEngine *style.Engine
}

// Open parses src as an EPUB archive: locates and reads container.xml,
// resolves and SAX-parses the OPF package document, builds the cascade
// engine from every manifest CSS resource, and — unless cfg.LazyNavigation
// is set — parses navigation immediately.
func Open(src zipstream.ByteSource, cfg OpenConfig) (*Book, error) {
	if cfg.RootSizePx <= 0 {
		cfg.RootSizePx = 16
	}

	archive, err := zipstream.Open(src, cfg.Limits.Zip)
	if err != nil {
		return nil, err
	}
	scratch := zipstream.NewScratch(cfg.Limits.Chunk.ReadChunk)
	res := resource.New(archive)

	var containerBuf bytes.Buffer
	if err := archive.ReadEntryInto(opf.ContainerPathName, &containerBuf, -1, scratch); err != nil {
		return nil, err
	}
	opfPath, err := opf.ParseContainer(bytes.NewReader(containerBuf.Bytes()))
	if err != nil {
		return nil, err
	}

	var opfBuf bytes.Buffer
	if err := archive.ReadEntryInto(opfPath, &opfBuf, -1, scratch); err != nil {
		return nil, err
	}
	pkg, err := opf.ParsePackage(bytes.NewReader(opfBuf.Bytes()), opfPath, cfg.Limits.Package)
	if err != nil {
		return nil, err
	}

	b := &Book{archive: archive, res: res, scratch: scratch, cfg: cfg, pkg: pkg}

	sheet, err := b.buildStylesheet()
	if err != nil {
		return nil, err
	}
	engine, err := style.New(sheet, cfg.Limits.Style, cfg.Limits.Font, cfg.RootSizePx)
	if err != nil {
		return nil, err
	}
	b.styleEngine = engine

	if !cfg.LazyNavigation {
		if _, err := b.Navigation(); err != nil {
			return nil, err
		}
	}
	return b, nil
}

// Metadata returns the book's Dublin Core metadata.
func (b *Book) Metadata() opf.Metadata { return b.pkg.Metadata }

// ChapterCount returns the number of spine items.
func (b *Book) ChapterCount() int { return len(b.pkg.Spine) }

// buildStylesheet concatenates the agent defaults with every manifest CSS
// resource's bytes, in manifest id order, then parses the result once. A
// book with no CSS resources still gets the agent defaults. Manifest is a
// map, so ids are sorted first — otherwise multi-stylesheet declaration
// order (which the cascade's same-specificity tie-break depends on) would
// vary from run to run.
func (b *Book) buildStylesheet() (*style.Sheet, error) {
	var buf bytes.Buffer
	buf.WriteString(defaultAgentCSS)

	ids := make([]string, 0, len(b.pkg.Manifest))
	for id := range b.pkg.Manifest {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		item := b.pkg.Manifest[id]
		if !strings.EqualFold(item.MediaType, "text/css") {
			continue
		}
		if err := b.archive.ReadEntryInto(item.Href, &buf, -1, b.scratch); err != nil {
			if _, ok := err.(*limits.Error); ok {
				continue // a missing/oversized stylesheet degrades gracefully to agent defaults
			}
			return nil, err
		}
		buf.WriteByte('\n')
	}
	return style.ParseStylesheet(buf.Bytes(), b.cfg.Limits.Style)
}

// Navigation returns the book's flattened table of contents, parsing it
// on first call if it was not already loaded eagerly by Open.
func (b *Book) Navigation() ([]navdoc.Entry, error) {
	if b.navLoaded {
		return b.nav, nil
	}
	entries, err := b.loadNavigation()
	if err != nil {
		return nil, err
	}
	b.nav = entries
	b.navLoaded = true
	return entries, nil
}

// loadNavigation prefers the EPUB 3 XHTML navigation document (the
// manifest item carrying properties="nav"), falling back to the EPUB 2
// NCX (by media-type) plus OPF <guide> landmarks when no nav doc exists.
func (b *Book) loadNavigation() ([]navdoc.Entry, error) {
	ids := make([]string, 0, len(b.pkg.Manifest))
	for id := range b.pkg.Manifest {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	for _, id := range ids {
		item := b.pkg.Manifest[id]
		if !item.Properties.Has(opf.PropNav) {
			continue
		}
		var buf bytes.Buffer
		if err := b.archive.ReadEntryInto(item.Href, &buf, int64(b.cfg.Limits.Nav.MaxNavBytes), b.scratch); err != nil {
			return nil, err
		}
		return navdoc.ParseXHTMLNav(bytes.NewReader(buf.Bytes()), path.Dir(item.Href), b.cfg.Limits.Nav)
	}

	for _, id := range ids {
		item := b.pkg.Manifest[id]
		if item.MediaType != "application/x-dtbncx+xml" {
			continue
		}
		var buf bytes.Buffer
		if err := b.archive.ReadEntryInto(item.Href, &buf, int64(b.cfg.Limits.Nav.MaxNavBytes), b.scratch); err != nil {
			return nil, err
		}
		entries, err := navdoc.ParseNCX(bytes.NewReader(buf.Bytes()), path.Dir(item.Href), b.cfg.Limits.Nav)
		if err != nil {
			return nil, err
		}
		entries = append(entries, navdoc.GuideLandmarks(convertGuide(b.pkg.Guide))...)
		return entries, nil
	}

	if len(b.pkg.Guide) > 0 {
		return navdoc.GuideLandmarks(convertGuide(b.pkg.Guide)), nil
	}
	return nil, limits.Unsupported("navigation")
}

func convertGuide(refs []opf.GuideRef) []navdoc.GuideRef {
	out := make([]navdoc.GuideRef, len(refs))
	for i, r := range refs {
		out[i] = navdoc.GuideRef{Type: r.Type, Title: r.Title, Href: r.Href}
	}
	return out
}

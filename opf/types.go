package opf

// Metadata carries the Dublin Core fields extracted from the OPF
// <metadata> block. All fields are optional per spec §3.
type Metadata struct {
	Title       string
	Creators    []string // dc:creator, in document order
	Language    string
	Identifier  string
	Date        string
	Publisher   string
	Rights      string
	Description string
	Subjects    []string
}

// Property is a manifest-item or spine-itemref property flag, encoded as a
// single bit so a whole property set fits in one uint64 (spec §3: "capped
// at 64 property-bits per item").
type Property uint8

// Known EPUB 3 manifest/spine properties. Unrecognized property tokens seen
// in a properties="" attribute are silently dropped rather than failing the
// parse — they carry no semantics this core acts on.
const (
	PropCoverImage Property = iota
	PropNav
	PropScripted
	PropMathML
	PropSVG
	PropRemoteResources
	PropSwitch
	PropDataNav
	PropRendition
	maxKnownProperties
)

var propertyNames = map[string]Property{
	"cover-image":      PropCoverImage,
	"nav":              PropNav,
	"scripted":         PropScripted,
	"mathml":           PropMathML,
	"svg":              PropSVG,
	"remote-resources": PropRemoteResources,
	"switch":           PropSwitch,
	"data-nav":         PropDataNav,
	"rendition":        PropRendition,
}

// PropertySet is a bounded bitset of Property flags (capacity: 64 bits).
type PropertySet uint64

// Has reports whether p is set.
func (s PropertySet) Has(p Property) bool { return s&(1<<p) != 0 }

func parseProperties(attr string) PropertySet {
	var set PropertySet
	start := 0
	for i := 0; i <= len(attr); i++ {
		if i == len(attr) || attr[i] == ' ' {
			if i > start {
				if p, ok := propertyNames[attr[start:i]]; ok {
					set |= 1 << p
				}
			}
			start = i + 1
		}
	}
	return set
}

// ManifestItem is one <manifest><item> entry, href resolved relative to the
// OPF directory at parse time (spec §3 invariant).
type ManifestItem struct {
	ID         string
	Href       string
	MediaType  string
	Properties PropertySet
}

// SpineItem is one <spine><itemref> entry in input order.
type SpineItem struct {
	ItemID     string
	Linear     bool
	Properties PropertySet
}

// GuideRef is one EPUB 2 <guide><reference> landmark entry, retained as a
// fallback for readers that never shipped an EPUB 3 landmarks nav.
type GuideRef struct {
	Type  string
	Title string
	Href  string
}

// Package is the immutable-after-parse package view (spec §3).
type Package struct {
	Metadata Metadata
	Manifest map[string]ManifestItem
	Spine    []SpineItem
	CoverRef string // manifest item_id, empty if unresolved
	OPFDir   string // archive-relative directory containing the OPF
	Guide    []GuideRef
}

// Item looks up a manifest entry by id.
func (p *Package) Item(id string) (ManifestItem, bool) {
	it, ok := p.Manifest[id]
	return it, ok
}

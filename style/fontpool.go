package style

import "github.com/tsawler/epubcore/limits"

// fontKey is the (family, weight, italic) triple spec §4.6 interns. Weight
// is stored at its 100-step CSS value so "bold" (700) and numeric 700
// collapse to the same key.
type fontKey struct {
	family string
	weight int
	italic bool
}

// fontPool assigns stable small integer font_ids to fontKey triples,
// bounded by limits.FontLimits.MaxInternedFonts. It is owned per book
// handle, matching spec §5's "the style engine's font-id intern table is
// owned per handle."
type fontPool struct {
	lim   limits.FontLimits
	keys  []fontKey
	index map[fontKey]int
}

func newFontPool(lim limits.FontLimits) *fontPool {
	return &fontPool{lim: lim, index: make(map[fontKey]int)}
}

// intern returns key's font_id, assigning a new one the first time key is
// seen. Returns limits.Exceeded("interned_fonts") once the pool is full
// and key is not already present.
func (p *fontPool) intern(key fontKey) (int, error) {
	if id, ok := p.index[key]; ok {
		return id, nil
	}
	if len(p.keys) >= p.lim.MaxInternedFonts {
		return 0, limits.Exceeded("interned_fonts")
	}
	id := len(p.keys)
	p.keys = append(p.keys, key)
	p.index[key] = id
	return id, nil
}

// Family returns the normalized family name behind id, or "" if id is out
// of range. Layout and rendering never re-resolve the family string
// downstream of the style engine (spec §3); this accessor exists only for
// the TextMeasurer/backend boundary, which does need the name once.
func (p *fontPool) Family(id int) string {
	if id < 0 || id >= len(p.keys) {
		return ""
	}
	return p.keys[id].family
}

// Reset clears the pool for reuse across books, retaining capacity.
func (p *fontPool) Reset() {
	p.keys = p.keys[:0]
	for k := range p.index {
		delete(p.index, k)
	}
}

package style

import (
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// familyCaser normalizes font-family names with golang.org/x/text/cases
// under the language-neutral root locale (language.Und), rather than
// strings.ToLower: family names come from the book's CSS and may contain
// non-ASCII text (accented family names, CJK face names) where a Unicode
// case fold is the correct interning key. CSS keyword values (weights,
// align, font-style) are fixed ASCII literals out of this engine's own
// grammar and stay on strings.ToLower — see css.go.
var familyCaser = cases.Lower(language.Und)

func foldFamily(s string) string {
	return familyCaser.String(s)
}

// genericFamily reports whether name is one of the CSS generic family
// keywords rather than an actual font name; the font pool still interns
// these as distinct families (spec §4.6 does not special-case generics),
// but callers that need to tell real fonts from fallbacks can use this.
func genericFamily(name string) bool {
	switch name {
	case "serif", "sans-serif", "monospace", "cursive", "fantasy":
		return true
	default:
		return false
	}
}

// Package style implements C6 StyleEngine: parsing the supported CSS
// subset into a selector-indexed rule table, then cascading it (plus
// inline style="" and inheritance) into a [ComputedTextStyle] per element,
// bounded by [limits.StyleLimits] and [limits.FontLimits].
//
// Font identity is interned separately from the cascade itself: repeated
// (family, weight, italic) triples collapse to the same small integer
// font_id, and two elements that resolve to identical computed styles
// share the same *ComputedTextStyle pointer, so downstream layout code can
// use pointer equality as a style-change test instead of a field-by-field
// comparison.
package style

// Package render implements C8 RenderIR: the stable, append-only draw
// command vocabulary that C7 LayoutEngine emits one sealed [Page] at a
// time, and that any rendering backend consumes in order.
//
// A Page's command vector is sealed before it is handed to a sink —
// callers may read it freely, but nothing in this package lets a sealed
// page be mutated further. There is exactly one command vector per page;
// nothing here mirrors or duplicates it for a second pass.
package render

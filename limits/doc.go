// Package limits collects the bounded-resource contracts shared by every
// component of the core: compile-time capacity caps, scratch-buffer sizing
// presets, and the single error type every fallible operation returns
// through.
//
// Every limit struct ships two presets, [Embedded] and [Desktop], following
// the teacher's Default*Config idiom (see layout.DefaultLineConfig): the
// embedded preset targets a device with roughly 230 KiB of free heap and no
// virtual memory, the desktop preset relaxes chunk sizes and caps for
// interactive use. Both presets are just different field values on the same
// struct — no behavioral branch anywhere in the pipeline should test "am I
// embedded?"; it should only ever consult the limit fields it was configured
// with.
package limits

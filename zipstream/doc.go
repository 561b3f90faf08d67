// Package zipstream implements C1 ZipReader: a bounded-buffer ZIP reader
// that streams Stored or DEFLATE entry content into a caller-supplied writer
// without materializing a whole entry in memory.
//
// Archive locates the End-Of-Central-Directory record by scanning at most
// [limits.ZipLimits.MaxEOCDScan] bytes from the end of the source, rejects
// ZIP64 archives outright, and reads the central directory once into a
// fixed-capacity slice capped at [limits.ZipLimits.MaxEntries]. Entry names
// are slices of a single backing arena owned by the Archive; no entry gets
// its own independently-allocated name string at enumeration time.
//
// ReadEntryInto streams one entry's content through a [Scratch] value the
// caller owns and reuses across entries: the DEFLATE inflate state machine
// lives on Scratch and is reset (not reallocated) between calls, and the
// copy loop never grows a buffer — it writes pieces no larger than the
// Scratch chunk buffer to the destination writer until the entry is
// exhausted or more than maxBytes would be written.
package zipstream

package resource

import (
	"strings"
	"unicode/utf8"

	"github.com/tsawler/epubcore/limits"
	"github.com/tsawler/epubcore/zipstream"
)

// Reader resolves archive-relative hrefs and streams their bytes through
// zipstream, applying the caller's byte cap and (for text resources)
// UTF-8-safe truncation.
type Reader struct {
	archive *zipstream.Archive
}

// New wraps archive for bounded resource reads.
func New(archive *zipstream.Archive) *Reader {
	return &Reader{archive: archive}
}

// IsTextMediaType reports whether a manifest media-type denotes text
// content subject to UTF-8-safe truncation (XHTML, CSS, plain text) as
// opposed to binary content truncated at the exact byte cap.
func IsTextMediaType(mediaType string) bool {
	mt := strings.ToLower(mediaType)
	return strings.HasPrefix(mt, "text/") ||
		mt == "application/xhtml+xml" ||
		mt == "application/x-dtbncx+xml" ||
		mt == "application/oebps-package+xml"
}

// boundedBuf writes the first len(dst) bytes of a stream into dst and
// silently discards the remainder, tracking how many bytes the stream
// actually carried so the caller can tell whether truncation occurred.
type boundedBuf struct {
	dst      []byte
	n        int
	overflow bool
}

func (b *boundedBuf) Write(p []byte) (int, error) {
	remaining := len(b.dst) - b.n
	if remaining > 0 {
		take := len(p)
		if take > remaining {
			take = remaining
		}
		copy(b.dst[b.n:], p[:take])
		b.n += take
	}
	if len(p) > remaining {
		b.overflow = true
	}
	return len(p), nil
}

// ReadInto streams href's content into buf, writing at most maxBytes bytes
// (maxBytes must be <= cap(buf), else BufferTooSmall). isText enables
// UTF-8-safe boundary truncation; otherwise the cap is exact.
//
// Returns the number of bytes written into buf and whether the underlying
// resource was larger than maxBytes (truncated=true is not itself an
// error — it is reported so the caller's scratch can flag it, per spec §7
// "text body truncation is not an error").
func (r *Reader) ReadInto(href string, buf []byte, maxBytes int, isText bool, scratch *zipstream.Scratch) (n int, truncated bool, err error) {
	if maxBytes > cap(buf) {
		return 0, false, limits.BufferTooSmall()
	}
	dst := buf[:maxBytes]
	bb := &boundedBuf{dst: dst}

	if err := r.archive.ReadEntryInto(href, bb, -1, scratch); err != nil {
		return 0, false, err
	}

	n = bb.n
	truncated = bb.overflow
	if isText && truncated {
		n = truncateUTF8Boundary(dst[:n])
	}
	return n, truncated, nil
}

// truncateUTF8Boundary trims n back to the last complete rune boundary so a
// truncated buffer never ends mid-codepoint: it walks back over UTF-8
// continuation bytes (10xxxxxx) to the lead byte they belong to, and drops
// that lead byte and its continuations only if its multi-byte sequence was
// cut short.
func truncateUTF8Boundary(b []byte) int {
	n := len(b)
	for n > 0 && isContinuationByte(b[n-1]) {
		n--
	}
	if n > 0 && !utf8.FullRune(b[n-1:]) {
		return n - 1
	}
	return len(b)
}

func isContinuationByte(b byte) bool { return b&0xC0 == 0x80 }

package zipstream

import (
	"io"

	"github.com/klauspost/compress/flate"
)

// Scratch is the caller-owned reusable working memory for ReadEntryInto: the
// chunk buffer driving the copy loop, the fixed-size local-file-header
// buffer, and the DEFLATE inflate state machine. Call Clear between entries
// if you want a clean state (Reset on the inflate reader already makes this
// unnecessary for correctness — Clear exists so callers can satisfy the
// "scratch reuse is behaviorally invisible" property in their own tests).
type Scratch struct {
	chunk   []byte
	hdr     [localHeaderFixedLen]byte
	inflate io.ReadCloser
	reset   flate.Resetter
}

// NewScratch allocates a Scratch with a chunk buffer of chunkSize bytes.
// The inflate reader is allocated on the first DEFLATE entry and reset, not
// reallocated, for later ones.
func NewScratch(chunkSize int) *Scratch {
	return &Scratch{chunk: make([]byte, chunkSize)}
}

// Clear is a no-op retained for symmetry with the other caller-owned
// buffers in this core (chapter buffers, token vectors); Scratch carries no
// state that must be zeroed between entries.
func (s *Scratch) Clear() {}

func (s *Scratch) inflateReader(src io.Reader) (io.Reader, error) {
	if s.inflate == nil {
		r := flate.NewReader(src)
		s.inflate = r
		if resetter, ok := r.(flate.Resetter); ok {
			s.reset = resetter
		}
		return r, nil
	}
	if s.reset != nil {
		if err := s.reset.Reset(src, nil); err != nil {
			return nil, err
		}
		return s.inflate, nil
	}
	// Resetter unavailable (shouldn't happen with klauspost/compress, but
	// fall back to a fresh reader rather than panic).
	s.inflate.Close()
	r := flate.NewReader(src)
	s.inflate = r
	return r, nil
}

// limitedSectionReader adapts ByteSource.ReadAt to a bounded io.Reader for
// the compressed byte range of one entry, without copying the range.
type limitedSectionReader struct {
	src    ByteSource
	off    int64
	remain int64
}

func newSectionReader(src ByteSource, off int64, size int64) *limitedSectionReader {
	return &limitedSectionReader{src: src, off: off, remain: size}
}

func (r *limitedSectionReader) Read(p []byte) (int, error) {
	if r.remain <= 0 {
		return 0, io.EOF
	}
	if int64(len(p)) > r.remain {
		p = p[:r.remain]
	}
	n, err := r.src.ReadAt(p, r.off)
	r.off += int64(n)
	r.remain -= int64(n)
	if err != nil && n == len(p) && r.remain == 0 {
		// io.ReaderAt allows a trailing error (such as io.EOF) alongside a
		// full read at the end of the source; ignore it once the section is
		// fully consumed.
		return n, nil
	}
	return n, err
}

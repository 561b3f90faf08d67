package zipstream

import (
	"encoding/binary"
	"hash/crc32"
	"io"

	"github.com/tsawler/epubcore/limits"
)

const localHeaderFixedLen = 30

// ReadEntryInto streams the named entry's decompressed content into w,
// using scratch for both the copy-chunk buffer and (for DEFLATE entries)
// the reused inflate state machine, plus its fixed local-header buffer. The
// CRC hasher and the section and tee reader wrappers are still allocated on
// each call.
//
// If the entry's decompressed size would exceed maxBytes, streaming stops
// and FileTooLarge is returned; w may already have received a prefix of the
// entry's bytes (no partial-output contract — see spec §7).
func (a *Archive) ReadEntryInto(name string, w io.Writer, maxBytes int64, scratch *Scratch) error {
	e, ok := a.find(name)
	if !ok {
		return limits.MissingResource(name)
	}
	return a.readEntryInto(e, w, maxBytes, scratch)
}

func (a *Archive) readEntryInto(e entry, w io.Writer, maxBytes int64, scratch *Scratch) error {
	hdr := scratch.hdr[:]
	if _, err := a.src.ReadAt(hdr, e.localHeaderOff); err != nil {
		return limits.IO(err)
	}
	if binary.LittleEndian.Uint32(hdr[0:4]) != sigLocalFile {
		return limits.ZipFormat(zipFormatErr("bad local file header signature"))
	}
	method := Method(binary.LittleEndian.Uint16(hdr[8:10]))
	nameLen := int(binary.LittleEndian.Uint16(hdr[26:28]))
	extraLen := int(binary.LittleEndian.Uint16(hdr[28:30]))
	if method != e.method {
		return limits.ZipFormat(zipFormatErr("local/central header method mismatch"))
	}

	dataOff := e.localHeaderOff + localHeaderFixedLen + int64(nameLen) + int64(extraLen)
	section := newSectionReader(a.src, dataOff, int64(e.compressedSize))

	var src io.Reader
	switch method {
	case Stored:
		src = section
	case Deflate:
		r, err := scratch.inflateReader(section)
		if err != nil {
			return limits.IO(err)
		}
		src = r
	default:
		return limits.Unsupported("zip_compression_method")
	}

	crc := crc32.NewIEEE()
	tee := io.TeeReader(src, crc)

	var written int64
	buf := scratch.chunk
	for {
		toRead := buf
		if maxBytes >= 0 {
			remaining := maxBytes - written
			if remaining <= 0 {
				// The entry may end exactly at maxBytes: probe for one more
				// byte before reporting it as too large.
				n, rerr := tee.Read(buf[:1])
				if n > 0 {
					return limits.FileTooLarge(a.name(e))
				}
				if rerr == io.EOF {
					break
				}
				if rerr != nil {
					return limits.IO(rerr)
				}
				continue
			}
			if int64(len(toRead)) > remaining {
				toRead = toRead[:remaining]
			}
		}
		n, rerr := tee.Read(toRead)
		if n > 0 {
			if _, werr := w.Write(toRead[:n]); werr != nil {
				return limits.IO(werr)
			}
			written += int64(n)
		}
		if rerr == io.EOF {
			break
		}
		if rerr != nil {
			return limits.IO(rerr)
		}
	}

	if crc.Sum32() != e.crc32 {
		return limits.CrcMismatch(a.name(e))
	}
	return nil
}

package zipstream

import (
	"encoding/binary"
	"errors"
)

var errShortRead = errors.New("zipstream: short read from byte source")

const (
	sigEOCD        = 0x06054b50
	sigEOCD64Locator = 0x07064b50
	sigCentralDir  = 0x02014b50
	sigLocalFile   = 0x04034b50

	eocdFixedLen = 22
)

// eocdRecord is the parsed End-Of-Central-Directory record.
type eocdRecord struct {
	totalEntries   uint16
	centralDirSize uint32
	centralDirOff  uint32
}

// findEOCD scans at most maxScan bytes from the end of src for the EOCD
// signature and returns the parsed record. It also rejects the archive if a
// ZIP64 EOCD locator signature immediately precedes the EOCD record, or if
// any EOCD size/count field is the ZIP64 sentinel 0xFFFF/0xFFFFFFFF.
func findEOCD(src ByteSource, maxScan int) (eocdRecord, error) {
	size := src.Size()
	if size < eocdFixedLen {
		return eocdRecord{}, zipFormatErr("archive shorter than a minimal EOCD record")
	}

	window := int64(maxScan)
	if window > size {
		window = size
	}
	start := size - window
	buf := make([]byte, window)
	if _, err := src.ReadAt(buf, start); err != nil {
		return eocdRecord{}, zipFormatErr("reading EOCD scan window: " + err.Error())
	}

	// Search backward so the *last* plausible signature (closest to EOF)
	// wins, matching how archive comments can spuriously contain the bytes
	// of an earlier false match.
	eocdPos := -1
	for i := len(buf) - eocdFixedLen; i >= 0; i-- {
		if binary.LittleEndian.Uint32(buf[i:i+4]) == sigEOCD {
			commentLen := int(binary.LittleEndian.Uint16(buf[i+20 : i+22]))
			if i+eocdFixedLen+commentLen == len(buf) || i+eocdFixedLen+commentLen <= len(buf) {
				eocdPos = i
				break
			}
		}
	}
	if eocdPos < 0 {
		return eocdRecord{}, zipFormatErr("EOCD signature not found within scan window")
	}

	// A ZIP64 EOCD locator sits immediately before the EOCD record when
	// present.
	if eocdPos >= 20 && binary.LittleEndian.Uint32(buf[eocdPos-20:eocdPos-16]) == sigEOCD64Locator {
		return eocdRecord{}, errZip64
	}

	rec := eocdRecord{
		totalEntries:   binary.LittleEndian.Uint16(buf[eocdPos+10 : eocdPos+12]),
		centralDirSize: binary.LittleEndian.Uint32(buf[eocdPos+12 : eocdPos+16]),
		centralDirOff:  binary.LittleEndian.Uint32(buf[eocdPos+16 : eocdPos+20]),
	}
	if rec.totalEntries == 0xFFFF || rec.centralDirSize == 0xFFFFFFFF || rec.centralDirOff == 0xFFFFFFFF {
		return eocdRecord{}, errZip64
	}
	return rec, nil
}

var errZip64 = errors.New("zipstream: zip64 archive detected")

func zipFormatErr(msg string) error { return errors.New("zipstream: " + msg) }

package zipstream

import (
	"encoding/binary"

	"github.com/tsawler/epubcore/limits"
)

// Method identifies an entry's compression method.
type Method uint16

const (
	Stored  Method = 0
	Deflate Method = 8
)

// entry is the archive-entry tuple from spec §3: name is a borrowed slice of
// Archive.nameArena, never an independently-heap-allocated string.
type entry struct {
	nameOff          int
	nameLen          int
	localHeaderOff   int64
	compressedSize   uint32
	uncompressedSize uint32
	method           Method
	crc32            uint32
}

// Entry is the read-only, caller-facing view of one archive entry.
type Entry struct {
	Name             string
	CompressedSize   uint32
	UncompressedSize uint32
	Method           Method
	CRC32            uint32
}

// Archive holds a parsed central directory. Open it once per ZIP source and
// reuse it for every ReadEntryInto call.
type Archive struct {
	src       ByteSource
	nameArena []byte
	entries   []entry
	lim       limits.ZipLimits
}

// Open locates the EOCD, rejects ZIP64, and reads the central directory
// into a fixed-capacity slice bounded by lim.MaxEntries.
func Open(src ByteSource, lim limits.ZipLimits) (*Archive, error) {
	eocd, err := findEOCD(src, lim.MaxEOCDScan)
	if err != nil {
		if err == errZip64 {
			return nil, limits.Zip64Unsupported()
		}
		return nil, limits.ZipFormat(err)
	}
	if int(eocd.totalEntries) > lim.MaxEntries {
		return nil, limits.Exceeded("zip_entries")
	}

	cd := make([]byte, eocd.centralDirSize)
	if _, err := src.ReadAt(cd, int64(eocd.centralDirOff)); err != nil {
		return nil, limits.ZipFormat(zipFormatErr("reading central directory: " + err.Error()))
	}

	a := &Archive{
		src:     src,
		entries: make([]entry, 0, eocd.totalEntries),
		lim:     lim,
	}

	pos := 0
	for i := 0; i < int(eocd.totalEntries); i++ {
		if pos+46 > len(cd) {
			return nil, limits.ZipFormat(zipFormatErr("truncated central directory entry"))
		}
		if binary.LittleEndian.Uint32(cd[pos:pos+4]) != sigCentralDir {
			return nil, limits.ZipFormat(zipFormatErr("bad central directory signature"))
		}
		method := Method(binary.LittleEndian.Uint16(cd[pos+10 : pos+12]))
		crc := binary.LittleEndian.Uint32(cd[pos+16 : pos+20])
		compSize := binary.LittleEndian.Uint32(cd[pos+20 : pos+24])
		uncompSize := binary.LittleEndian.Uint32(cd[pos+24 : pos+28])
		nameLen := int(binary.LittleEndian.Uint16(cd[pos+28 : pos+30]))
		extraLen := int(binary.LittleEndian.Uint16(cd[pos+30 : pos+32]))
		commentLen := int(binary.LittleEndian.Uint16(cd[pos+32 : pos+34]))
		localOff := binary.LittleEndian.Uint32(cd[pos+42 : pos+46])

		if compSize == 0xFFFFFFFF || uncompSize == 0xFFFFFFFF || localOff == 0xFFFFFFFF {
			return nil, limits.Zip64Unsupported()
		}
		if method != Stored && method != Deflate {
			return nil, limits.Unsupported("zip_compression_method")
		}

		nameStart := pos + 46
		if nameStart+nameLen > len(cd) {
			return nil, limits.ZipFormat(zipFormatErr("truncated central directory file name"))
		}
		nameOff := len(a.nameArena)
		a.nameArena = append(a.nameArena, cd[nameStart:nameStart+nameLen]...)

		a.entries = append(a.entries, entry{
			nameOff:          nameOff,
			nameLen:          nameLen,
			localHeaderOff:   int64(localOff),
			compressedSize:   compSize,
			uncompressedSize: uncompSize,
			method:           method,
			crc32:            crc,
		})

		pos = nameStart + nameLen + extraLen + commentLen
	}

	return a, nil
}

// Len returns the number of entries in the central directory.
func (a *Archive) Len() int { return len(a.entries) }

// EntryAt returns the entry at index i.
func (a *Archive) EntryAt(i int) Entry { return a.entryView(a.entries[i]) }

// Find returns the entry named name and true, or the zero Entry and false.
func (a *Archive) Find(name string) (Entry, bool) {
	for _, e := range a.entries {
		if a.name(e) == name {
			return a.entryView(e), true
		}
	}
	return Entry{}, false
}

// Each invokes fn for every entry in central-directory order. fn returns
// false to stop early.
func (a *Archive) Each(fn func(Entry) bool) {
	for _, e := range a.entries {
		if !fn(a.entryView(e)) {
			return
		}
	}
}

func (a *Archive) name(e entry) string {
	return string(a.nameArena[e.nameOff : e.nameOff+e.nameLen])
}

func (a *Archive) entryView(e entry) Entry {
	return Entry{
		Name:             a.name(e),
		CompressedSize:   e.compressedSize,
		UncompressedSize: e.uncompressedSize,
		Method:           e.method,
		CRC32:            e.crc32,
	}
}

func (a *Archive) find(name string) (entry, bool) {
	for _, e := range a.entries {
		if a.name(e) == name {
			return e, true
		}
	}
	return entry{}, false
}

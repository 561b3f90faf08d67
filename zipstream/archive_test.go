package zipstream

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/tsawler/epubcore/limits"
)

func buildZip(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, data := range files {
		fw, err := w.Create(name)
		if err != nil {
			t.Fatal(err)
		}
		if _, err := fw.Write([]byte(data)); err != nil {
			t.Fatal(err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestOpenReadsCentralDirectory(t *testing.T) {
	data := buildZip(t, map[string]string{
		"mimetype":        "application/epub+zip",
		"OEBPS/ch1.xhtml": "<p>hello</p>",
	})
	a, err := Open(NewSliceSource(data), limits.ZipLimits{}.Desktop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if a.Len() != 2 {
		t.Fatalf("Len = %d, want 2", a.Len())
	}
	e, ok := a.Find("OEBPS/ch1.xhtml")
	if !ok {
		t.Fatal("expected to find OEBPS/ch1.xhtml")
	}
	if e.UncompressedSize != uint32(len("<p>hello</p>")) {
		t.Errorf("UncompressedSize = %d", e.UncompressedSize)
	}
}

func TestFindMissingEntry(t *testing.T) {
	data := buildZip(t, map[string]string{"a.txt": "x"})
	a, err := Open(NewSliceSource(data), limits.ZipLimits{}.Desktop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if _, ok := a.Find("nope.txt"); ok {
		t.Fatal("expected Find to report missing entry as not-found")
	}
}

func TestReadEntryIntoRoundTripsContent(t *testing.T) {
	const body = "The quick brown fox jumps over the lazy dog, repeated to exercise deflate. " +
		"The quick brown fox jumps over the lazy dog, repeated to exercise deflate."
	data := buildZip(t, map[string]string{"book/text.txt": body})
	a, err := Open(NewSliceSource(data), limits.ZipLimits{}.Desktop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	scratch := NewScratch(64)
	var out bytes.Buffer
	if err := a.ReadEntryInto("book/text.txt", &out, -1, scratch); err != nil {
		t.Fatalf("ReadEntryInto: %v", err)
	}
	if out.String() != body {
		t.Errorf("got %q, want %q", out.String(), body)
	}
}

func TestReadEntryIntoMissingEntry(t *testing.T) {
	data := buildZip(t, map[string]string{"a.txt": "x"})
	a, err := Open(NewSliceSource(data), limits.ZipLimits{}.Desktop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	var out bytes.Buffer
	err = a.ReadEntryInto("missing.txt", &out, -1, NewScratch(64))
	if err == nil {
		t.Fatal("expected a missing-resource error")
	}
	if lerr, ok := err.(*limits.Error); !ok || lerr.Kind != limits.KindMissingResource {
		t.Errorf("err = %v, want KindMissingResource", err)
	}
}

func TestReadEntryIntoRespectsMaxBytes(t *testing.T) {
	data := buildZip(t, map[string]string{"big.txt": "0123456789"})
	a, err := Open(NewSliceSource(data), limits.ZipLimits{}.Desktop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	var out bytes.Buffer
	err = a.ReadEntryInto("big.txt", &out, 4, NewScratch(64))
	if err == nil {
		t.Fatal("expected a file-too-large error")
	}
	if lerr, ok := err.(*limits.Error); !ok || lerr.Kind != limits.KindFileTooLarge {
		t.Errorf("err = %v, want KindFileTooLarge", err)
	}
}

func TestOpenRejectsTooManyEntries(t *testing.T) {
	files := map[string]string{}
	for i := 0; i < 5; i++ {
		files[string(rune('a'+i))+".txt"] = "x"
	}
	data := buildZip(t, files)
	_, err := Open(NewSliceSource(data), limits.ZipLimits{MaxEOCDScan: 64 * 1024, MaxEntries: 2, ChunkSize: 4096})
	if err == nil {
		t.Fatal("expected a limit-exceeded error")
	}
	if lerr, ok := err.(*limits.Error); !ok || lerr.Kind != limits.KindLimitExceeded {
		t.Errorf("err = %v, want KindLimitExceeded", err)
	}
}

func TestEachStopsEarly(t *testing.T) {
	data := buildZip(t, map[string]string{"a.txt": "x", "b.txt": "y", "c.txt": "z"})
	a, err := Open(NewSliceSource(data), limits.ZipLimits{}.Desktop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	n := 0
	a.Each(func(Entry) bool {
		n++
		return n < 2
	})
	if n != 2 {
		t.Errorf("Each visited %d entries, want 2", n)
	}
}

func TestScratchReuseAcrossEntries(t *testing.T) {
	data := buildZip(t, map[string]string{
		"one.txt": "first entry content, repeated repeated repeated repeated.",
		"two.txt": "second entry content, repeated repeated repeated repeated.",
	})
	a, err := Open(NewSliceSource(data), limits.ZipLimits{}.Desktop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	scratch := NewScratch(16)
	var out1, out2 bytes.Buffer
	if err := a.ReadEntryInto("one.txt", &out1, -1, scratch); err != nil {
		t.Fatalf("ReadEntryInto(one): %v", err)
	}
	if err := a.ReadEntryInto("two.txt", &out2, -1, scratch); err != nil {
		t.Fatalf("ReadEntryInto(two): %v", err)
	}
	if out1.String() != "first entry content, repeated repeated repeated repeated." {
		t.Errorf("one.txt = %q", out1.String())
	}
	if out2.String() != "second entry content, repeated repeated repeated repeated." {
		t.Errorf("two.txt = %q", out2.String())
	}
}

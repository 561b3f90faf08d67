package resource

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/tsawler/epubcore/limits"
	"github.com/tsawler/epubcore/zipstream"
)

func buildArchive(t *testing.T, files map[string]string) *zipstream.Archive {
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
	a, err := zipstream.Open(zipstream.NewSliceSource(buf.Bytes()), limits.ZipLimits{}.Desktop())
	if err != nil {
		t.Fatalf("zipstream.Open: %v", err)
	}
	return a
}

func TestReadIntoReturnsFullContentWhenItFits(t *testing.T) {
	r := New(buildArchive(t, map[string]string{"a.txt": "hello world"}))
	buf := make([]byte, 64)
	n, truncated, err := r.ReadInto("a.txt", buf, len(buf), true, zipstream.NewScratch(32))
	if err != nil {
		t.Fatalf("ReadInto: %v", err)
	}
	if truncated {
		t.Error("did not expect truncation")
	}
	if string(buf[:n]) != "hello world" {
		t.Errorf("got %q", buf[:n])
	}
}

func TestReadIntoTruncatesAtExactCapForBinary(t *testing.T) {
	r := New(buildArchive(t, map[string]string{"a.bin": "0123456789"}))
	buf := make([]byte, 4)
	n, truncated, err := r.ReadInto("a.bin", buf, len(buf), false, zipstream.NewScratch(32))
	if err != nil {
		t.Fatalf("ReadInto: %v", err)
	}
	if !truncated {
		t.Error("expected truncation to be reported")
	}
	if n != 4 || string(buf[:n]) != "0123" {
		t.Errorf("n=%d buf=%q", n, buf[:n])
	}
}

func TestReadIntoTruncatesAtRuneBoundaryForText(t *testing.T) {
	// "café" is c,a,f,é where é is a 2-byte UTF-8 sequence (0xC3 0xA9).
	// Capping at 4 bytes keeps é's lead byte but cuts its second byte off.
	r := New(buildArchive(t, map[string]string{"a.txt": "café!"}))
	buf := make([]byte, 4)
	n, truncated, err := r.ReadInto("a.txt", buf, len(buf), true, zipstream.NewScratch(32))
	if err != nil {
		t.Fatalf("ReadInto: %v", err)
	}
	if !truncated {
		t.Error("expected truncation to be reported")
	}
	if string(buf[:n]) != "caf" {
		t.Errorf("got %q, want %q (é dropped rather than split)", buf[:n], "caf")
	}
}

func TestReadIntoMaxBytesExceedsBufferCap(t *testing.T) {
	r := New(buildArchive(t, map[string]string{"a.txt": "x"}))
	buf := make([]byte, 4)
	_, _, err := r.ReadInto("a.txt", buf, 10, true, zipstream.NewScratch(32))
	if err == nil {
		t.Fatal("expected a buffer-too-small error")
	}
	if lerr, ok := err.(*limits.Error); !ok || lerr.Kind != limits.KindBufferTooSmall {
		t.Errorf("err = %v, want KindBufferTooSmall", err)
	}
}

func TestReadIntoMissingResource(t *testing.T) {
	r := New(buildArchive(t, map[string]string{"a.txt": "x"}))
	buf := make([]byte, 16)
	_, _, err := r.ReadInto("missing.txt", buf, len(buf), true, zipstream.NewScratch(32))
	if err == nil {
		t.Fatal("expected a missing-resource error")
	}
}

func TestIsTextMediaType(t *testing.T) {
	cases := map[string]bool{
		"application/xhtml+xml":        true,
		"text/css":                     true,
		"application/x-dtbncx+xml":     true,
		"application/oebps-package+xml": true,
		"image/jpeg":                   false,
		"image/png":                    false,
		"font/woff2":                   false,
	}
	for mt, want := range cases {
		if got := IsTextMediaType(mt); got != want {
			t.Errorf("IsTextMediaType(%q) = %v, want %v", mt, got, want)
		}
	}
}

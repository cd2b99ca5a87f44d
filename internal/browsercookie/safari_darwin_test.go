//go:build darwin && !ios

package browsercookie

import (
	"context"
	"encoding/binary"
	"math"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSafariRead_BinaryCookies(t *testing.T) {
	dir := t.TempDir()
	cookieFile := filepath.Join(dir, "Cookies.binarycookies")
	writeSafariBinaryCookies(t, cookieFile)

	r := ReaderFor(BrowserSafari)
	cookies, warnings, err := r.Read(context.Background(), "myfitnesspal.com", Options{Profile: cookieFile})
	if err != nil {
		t.Fatal(err)
	}
	if len(cookies) != 1 {
		t.Fatalf("want 1 cookie got %d (warnings=%v)", len(cookies), warnings)
	}
	c := cookies[0]
	if c.Name != "_mfp_session" || c.Value != "abc" {
		t.Fatalf("unexpected cookie: %#v", c)
	}
	if !c.Secure {
		t.Fatalf("flags bit 0 should map to Secure")
	}
	if c.Domain != "myfitnesspal.com" {
		t.Fatalf("domain not normalized: %q", c.Domain)
	}
	if c.Browser != BrowserSafari || c.StorePath != cookieFile {
		t.Fatalf("provenance not recorded: %#v", c)
	}
}

func TestSafariRead_MissingStore(t *testing.T) {
	r := ReaderFor(BrowserSafari)
	cookies, warnings, err := r.Read(context.Background(), "myfitnesspal.com", Options{
		Profile: filepath.Join(t.TempDir(), "nope.binarycookies"),
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(cookies) != 0 {
		t.Fatalf("want no cookies, got %#v", cookies)
	}
	if len(warnings) == 0 {
		t.Fatalf("missing store should produce a warning")
	}
}

func writeSafariBinaryCookies(t *testing.T, path string) {
	t.Helper()

	expires := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)
	creation := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	record := buildSafariCookieRecord(t, ".myfitnesspal.com", "_mfp_session", "/", "abc", expires, creation)

	const cookieOffset = 12 // 8-byte page header + 4-byte offset list (1 cookie)
	page := make([]byte, 0, cookieOffset+len(record))
	page = append(page, 0x00, 0x00, 0x01, 0x00)
	page = binary.LittleEndian.AppendUint32(page, 1) // NumCookies
	page = binary.LittleEndian.AppendUint32(page, cookieOffset)
	page = append(page, record...)

	file := make([]byte, 0, 16+len(page)+8)
	file = append(file, []byte("cook")...)
	file = binary.BigEndian.AppendUint32(file, 1)                 // NumPages
	file = binary.BigEndian.AppendUint32(file, uint32(len(page))) // page size
	file = append(file, page...)
	file = append(file, 0, 0, 0, 0, 0, 0, 0, 0) // checksum

	if err := os.WriteFile(path, file, 0o644); err != nil {
		t.Fatal(err)
	}
}

func buildSafariCookieRecord(t *testing.T, domain, name, path, value string, expires, creation time.Time) []byte {
	t.Helper()

	domainB := append([]byte(domain), 0)
	nameB := append([]byte(name), 0)
	pathB := append([]byte(path), 0)
	valueB := append([]byte(value), 0)

	const headerLen = 56
	domainOff := int32(headerLen)
	nameOff := domainOff + int32(len(domainB))
	pathOff := nameOff + int32(len(nameB))
	valueOff := pathOff + int32(len(pathB))
	size := valueOff + int32(len(valueB))

	const macEpoch = int64(978307200)
	toSafariSeconds := func(ts time.Time) float64 { return float64(ts.Unix() - macEpoch) }

	buf := make([]byte, 0, size)
	buf = binary.LittleEndian.AppendUint32(buf, uint32(size))
	buf = binary.LittleEndian.AppendUint32(buf, 0) // Unknown1
	buf = binary.LittleEndian.AppendUint32(buf, 1) // Flags: Secure
	buf = binary.LittleEndian.AppendUint32(buf, 0) // Unknown2
	buf = binary.LittleEndian.AppendUint32(buf, uint32(domainOff))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(nameOff))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(pathOff))
	buf = binary.LittleEndian.AppendUint32(buf, uint32(valueOff))
	buf = append(buf, 0, 0, 0, 0, 0, 0, 0, 0) // End

	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(toSafariSeconds(expires)))
	buf = binary.LittleEndian.AppendUint64(buf, math.Float64bits(toSafariSeconds(creation)))

	buf = append(buf, domainB...)
	buf = append(buf, nameB...)
	buf = append(buf, pathB...)
	buf = append(buf, valueB...)

	if int32(len(buf)) != size {
		t.Fatalf("record size mismatch: want %d got %d", size, len(buf))
	}
	return buf
}

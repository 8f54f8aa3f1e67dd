// Package output writes the shareable artifacts of a run: the assignments
// CSV and, when enabled, one QR code PNG per giver. Both sinks receive only
// (giver, url) rows; recipients never appear in filenames or console output
// so pairings stay private until a link is opened.
package output

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	qrcode "github.com/skip2/go-qrcode"
)

// ErrQRGeneration is returned when the QR library fails to encode a URL.
var ErrQRGeneration = errors.New("failed to generate QR code")

// DefaultQRSize is the PNG edge length in pixels when none is configured.
const DefaultQRSize = 256

// Row is one CSV line: a giver and their reveal link.
type Row struct {
	Giver string
	URL   string
}

// WriteCSV writes rows to path as UTF-8 CSV with a "giver,url" header.
func WriteCSV(path string, rows []Row) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"giver", "url"}); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, row := range rows {
		if err := w.Write([]string{row.Giver, row.URL}); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", row.Giver, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return f.Close()
}

// WriteQRCodes writes one PNG per row into dir, named after the giver.
// Each code encodes the giver's reveal URL, so scanning it opens the link
// directly.
func WriteQRCodes(dir string, rows []Row, size int) error {
	if size <= 0 {
		size = DefaultQRSize
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create qr directory: %w", err)
	}

	for _, row := range rows {
		png, err := qrcode.Encode(row.URL, qrcode.Medium, size)
		if err != nil {
			return fmt.Errorf("%w for %s: %v", ErrQRGeneration, row.Giver, err)
		}
		path := filepath.Join(dir, safeFilename(row.Giver)+".png")
		if err := os.WriteFile(path, png, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
	}
	return nil
}

// safeFilename strips everything but alphanumerics, '-' and '_' from a name
// so arbitrary participant names produce portable filenames.
func safeFilename(name string) string {
	var b strings.Builder
	for _, ch := range name {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9', ch == '-', ch == '_':
			b.WriteRune(ch)
		}
	}
	if b.Len() == 0 {
		return "unknown"
	}
	return b.String()
}

package output

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
)

func TestWriteCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "assignments.csv")
	rows := []Row{
		{Giver: "Alice", URL: "https://example.com/reveal?data=abc"},
		{Giver: "Bob", URL: "https://example.com/reveal?data=def"},
		{Giver: "Carol", URL: "https://example.com/reveal?data=ghi"},
		{Giver: "Dave", URL: "https://example.com/reveal?data=jkl"},
	}

	if err := WriteCSV(path, rows); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("open output: %v", err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("read output: %v", err)
	}

	if len(records) != 5 {
		t.Fatalf("got %d records, want header + 4 rows", len(records))
	}
	if records[0][0] != "giver" || records[0][1] != "url" {
		t.Fatalf("header = %v, want [giver url]", records[0])
	}
	seen := make(map[string]string)
	for _, rec := range records[1:] {
		seen[rec[0]] = rec[1]
	}
	for _, row := range rows {
		if seen[row.Giver] != row.URL {
			t.Errorf("row for %s = %q, want %q", row.Giver, seen[row.Giver], row.URL)
		}
	}
}

func TestWriteCSV_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "out.csv")

	if err := WriteCSV(path, []Row{{Giver: "A", URL: "u"}}); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("output missing: %v", err)
	}
}

func TestWriteQRCodes(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "qr")
	rows := []Row{
		{Giver: "Alice", URL: "https://example.com/reveal?data=abc"},
		{Giver: "Bob Jr.", URL: "https://example.com/reveal?data=def"},
	}

	if err := WriteQRCodes(dir, rows, 0); err != nil {
		t.Fatalf("WriteQRCodes failed: %v", err)
	}

	pngMagic := []byte{0x89, 'P', 'N', 'G'}
	for _, name := range []string{"Alice.png", "BobJr.png"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("missing %s: %v", name, err)
		}
		if !bytes.HasPrefix(data, pngMagic) {
			t.Errorf("%s is not a PNG", name)
		}
	}
}

func TestSafeFilename(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "Alice", want: "Alice"},
		{in: "Bob Jr.", want: "BobJr"},
		{in: "mary-grace_2", want: "mary-grace_2"},
		{in: "!!!", want: "unknown"},
		{in: "", want: "unknown"},
	}

	for _, tc := range cases {
		if got := safeFilename(tc.in); got != tc.want {
			t.Errorf("safeFilename(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

package fs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, path string, data []byte) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}
}

func TestWalker_IncludeExclude(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.txt"), []byte("a"))
	writeFile(t, filepath.Join(root, "docs", "b.md"), []byte("b"))
	writeFile(t, filepath.Join(root, "docs", "c.go"), []byte("c"))
	writeFile(t, filepath.Join(root, ".git", "d.txt"), []byte("d"))

	w := NewWalker([]string{"**/*.txt", "**/*.md"}, []string{"**/.git/**"})
	files, err := w.Walk(root)
	if err != nil {
		t.Fatal(err)
	}

	if len(files) != 2 {
		t.Fatalf("expected 2 files, got %d: %v", len(files), files)
	}
	if filepath.Base(files[0].Path) != "a.txt" || filepath.Base(files[1].Path) != "b.md" {
		t.Errorf("unexpected files: %v", files)
	}
	if files[0].Size != 1 {
		t.Errorf("expected size 1, got %d", files[0].Size)
	}
}

func TestWalker_DefaultIncludesEverything(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "x", "y", "z.bin"), []byte("z"))

	files, err := NewWalker(nil, nil).Walk(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(files) != 1 {
		t.Errorf("expected 1 file, got %v", files)
	}
}

func TestReader_Encodings(t *testing.T) {
	tests := []struct {
		encoding string
		input    []byte
		expected string
	}{
		{"", []byte("caf\xc3\xa9"), "café"},
		{"utf-8", []byte("plain"), "plain"},
		{"latin1", []byte("caf\xe9"), "café"},
		{"windows-1252", []byte("\x93hi\x94"), "“hi”"},
	}

	for _, tt := range tests {
		t.Run(tt.encoding, func(t *testing.T) {
			r, err := NewReader(tt.encoding)
			if err != nil {
				t.Fatal(err)
			}
			got, err := r.Decode(tt.input)
			if err != nil {
				t.Fatal(err)
			}
			if got != tt.expected {
				t.Errorf("Decode(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestReader_ReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "latin.txt")
	writeFile(t, path, []byte("na\xefve"))

	r, err := NewReader("ISO-8859-1")
	if err != nil {
		t.Fatal(err)
	}
	got, err := r.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != "naïve" {
		t.Errorf("expected naïve, got %q", got)
	}
	if r.Encoding() != "latin1" {
		t.Errorf("expected latin1, got %s", r.Encoding())
	}
}

func TestReader_UnknownEncoding(t *testing.T) {
	_, err := NewReader("ebcdic")
	if !errors.Is(err, ErrUnknownEncoding) {
		t.Errorf("expected ErrUnknownEncoding, got %v", err)
	}
}

package fs

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
)

// ErrUnknownEncoding is returned for an encoding name the reader cannot decode.
var ErrUnknownEncoding = errors.New("unknown encoding")

// Reader reads text files and decodes them to UTF-8.
type Reader struct {
	name string
	enc  encoding.Encoding // nil for UTF-8
}

// NewReader returns a reader for the named encoding. An empty name means UTF-8.
func NewReader(name string) (*Reader, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return &Reader{name: "utf-8"}, nil
	case "latin1", "latin-1", "iso-8859-1":
		return &Reader{name: "latin1", enc: charmap.ISO8859_1}, nil
	case "windows-1252", "cp1252":
		return &Reader{name: "windows-1252", enc: charmap.Windows1252}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownEncoding, name)
	}
}

// Encoding returns the canonical name of the decoded encoding.
func (r *Reader) Encoding() string {
	return r.name
}

// ReadFile returns the file content as UTF-8 text.
func (r *Reader) ReadFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return r.Decode(data)
}

// Decode converts raw bytes in the reader's encoding to UTF-8.
func (r *Reader) Decode(data []byte) (string, error) {
	if r.enc == nil {
		return string(data), nil
	}
	// Decoders carry state, so each call gets a fresh one.
	out, err := r.enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", r.name, err)
	}
	return string(out), nil
}

package batch

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Format is the encoding of a batch document.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the document format from a file extension.
// Unknown extensions are treated as JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// FormatFromContentType picks the document format from an HTTP Content-Type.
func FormatFromContentType(contentType string) Format {
	mediaType, _, _ := strings.Cut(strings.ToLower(contentType), ";")
	switch strings.TrimSpace(mediaType) {
	case "application/yaml", "application/x-yaml", "text/yaml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode reads a batch document.
func Decode(r io.Reader, format Format) (*Request, error) {
	var req Request
	switch format {
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&req); err != nil {
			return nil, fmt.Errorf("%w: yaml: %w", ErrDecode, err)
		}
	case FormatJSON, "":
		dec := json.NewDecoder(r)
		dec.DisallowUnknownFields()
		if err := dec.Decode(&req); err != nil {
			return nil, fmt.Errorf("%w: json: %w", ErrDecode, err)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported format %q", ErrDecode, format)
	}
	return &req, nil
}

// Load reads a batch document from a file.
func Load(path string) (*Request, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open batch file: %w", err)
	}
	defer f.Close()

	return Decode(f, FormatFromPath(path))
}

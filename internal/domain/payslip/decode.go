package payslip

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

const (
	FormatJSON = "json"
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// FormatFromPath picks a request format from a file extension. Unknown
// extensions fall back to JSON.
func FormatFromPath(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	default:
		return FormatJSON
	}
}

// DecodeRequest reads one payslip request in the given format.
func DecodeRequest(r io.Reader, format string) (Request, error) {
	var req Request
	if err := Decode(r, format, &req); err != nil {
		return Request{}, err
	}
	return req, nil
}

// Decode reads a single JSON, YAML or TOML document into dst.
func Decode(r io.Reader, format string, dst any) error {
	switch format {
	case FormatJSON, "":
		if err := json.NewDecoder(r).Decode(dst); err != nil {
			return fmt.Errorf("decode json: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(dst); err != nil {
			return fmt.Errorf("decode yaml: %w", err)
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(dst); err != nil {
			return fmt.Errorf("decode toml: %w", err)
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return nil
}

package symbols

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileFormat represents the on-disk symbol table formats
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatYAML               // Hand-edited YAML
	FormatTOML               // Hand-edited TOML
	FormatBinary             // Packed msgpack
)

// ErrUnknownFormat is returned when a file extension maps to no format.
var ErrUnknownFormat = errors.New("unknown symbol file format")

// FormatInfo contains metadata about a symbol file format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
	MinSize     int64 // Minimum expected file size in bytes
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatYAML: {
		Format:      FormatYAML,
		Description: "YAML Symbol Table",
		Extensions:  []string{".yaml", ".yml"},
		MinSize:     1,
	},
	FormatTOML: {
		Format:      FormatTOML,
		Description: "TOML Symbol Table",
		Extensions:  []string{".toml"},
		MinSize:     1,
	},
	FormatBinary: {
		Format:      FormatBinary,
		Description: "Packed Symbol Table",
		Extensions:  []string{".bin"},
		MinSize:     2, // fixmap header plus version
	},
}

func (f FileFormat) String() string {
	if info, ok := supportedFormats[f]; ok {
		return info.Description
	}
	return "unknown"
}

// DetectFormat maps a file name to its format by extension.
func DetectFormat(filename string) (FileFormat, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	for _, format := range []FileFormat{FormatYAML, FormatTOML, FormatBinary} {
		for _, e := range supportedFormats[format].Extensions {
			if e == ext {
				return format, nil
			}
		}
	}
	return FormatUnknown, fmt.Errorf("%w: %s", ErrUnknownFormat, filename)
}

// ValidateFile checks that filename exists and is large enough for its format.
func ValidateFile(filename string) (FileFormat, error) {
	format, err := DetectFormat(filename)
	if err != nil {
		return FormatUnknown, err
	}
	fileInfo, err := os.Stat(filename)
	if err != nil {
		return FormatUnknown, fmt.Errorf("failed to stat file %s: %w", filename, err)
	}
	if info := supportedFormats[format]; fileInfo.Size() < info.MinSize {
		return FormatUnknown, fmt.Errorf("file %s is too small (%d bytes) for format %s (minimum: %d bytes)",
			filename, fileInfo.Size(), info.Description, info.MinSize)
	}
	return format, nil
}

package symbols

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"unicode"

	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"
)

// binaryVersion is bumped whenever the packed layout changes.
const binaryVersion = 1

// document is the shared layout of every symbol file.
type document struct {
	Version int     `yaml:"version,omitempty" toml:"version,omitempty" msgpack:"v"`
	Symbols []Entry `yaml:"symbols" toml:"symbols" msgpack:"symbols"`
}

// LoadFile reads a symbol table from a YAML, TOML or packed file.
// The delimiter is used to reject codes that could never be typed as a trigger.
func LoadFile(filename string, delim rune) (*Table, error) {
	format, err := ValidateFile(filename)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read symbol file %s: %w", filename, err)
	}

	entries, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filename, err)
	}
	if err := Validate(entries, delim); err != nil {
		return nil, fmt.Errorf("invalid symbol file %s: %w", filename, err)
	}

	log.Debugf("Loaded %d symbols from %s (%s)", len(entries), filename, format)
	return NewTable(entries), nil
}

// Decode parses raw file contents in the given format.
func Decode(data []byte, format FileFormat) ([]Entry, error) {
	var doc document
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
	case FormatTOML:
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return nil, err
		}
	case FormatBinary:
		if err := msgpack.Unmarshal(data, &doc); err != nil {
			return nil, err
		}
		if doc.Version != binaryVersion {
			return nil, fmt.Errorf("unsupported packed version %d", doc.Version)
		}
	default:
		return nil, ErrUnknownFormat
	}
	return doc.Symbols, nil
}

// Validate rejects entries that would break the lookup index.
func Validate(entries []Entry, delim rune) error {
	for i, e := range entries {
		if e.Glyph == "" {
			return fmt.Errorf("entry %d: empty glyph", i)
		}
		if len(e.Codes) == 0 {
			return fmt.Errorf("entry %d (%s): no codes", i, e.Glyph)
		}
		for _, code := range e.Codes {
			if code == "" {
				return fmt.Errorf("entry %d (%s): empty code", i, e.Glyph)
			}
			if strings.ContainsRune(code, delim) || strings.IndexFunc(code, unicode.IsSpace) >= 0 {
				return fmt.Errorf("entry %d (%s): code %q contains whitespace or %q", i, e.Glyph, code, delim)
			}
		}
	}
	return nil
}

// EncodeBinary packs a table in the .bin format.
func EncodeBinary(t *Table) ([]byte, error) {
	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	if err := enc.Encode(document{Version: binaryVersion, Symbols: t.Entries()}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// SaveBinary writes the packed form of t to filename.
func SaveBinary(t *Table, filename string) error {
	data, err := EncodeBinary(t)
	if err != nil {
		return fmt.Errorf("failed to encode symbol table: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}
	return nil
}

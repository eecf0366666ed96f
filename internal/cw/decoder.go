package cw

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownPattern indicates a pattern with no entry in the mapping table.
var ErrUnknownPattern = errors.New("unknown pattern")

// morseTable is the default international Morse mapping.
var morseTable = map[string]string{
	".-": "A", "-...": "B", "-.-.": "C", "-..": "D", ".": "E",
	"..-.": "F", "--.": "G", "....": "H", "..": "I", ".---": "J",
	"-.-": "K", ".-..": "L", "--": "M", "-.": "N", "---": "O",
	".--.": "P", "--.-": "Q", ".-.": "R", "...": "S", "-": "T",
	"..-": "U", "...-": "V", ".--": "W", "-..-": "X", "-.--": "Y",
	"--..": "Z",
	".----": "1", "..---": "2", "...--": "3", "....-": "4", ".....": "5",
	"-....": "6", "--...": "7", "---..": "8", "----.": "9", "-----": "0",
}

// Decoder substitutes whitespace-delimited patterns with their mapped text.
// The mapping is fixed once the decoder is constructed.
type Decoder struct {
	mappings map[string]string
}

// NewDecoder returns a decoder preloaded with the Morse table.
func NewDecoder() *Decoder {
	m := make(map[string]string, len(morseTable))
	for k, v := range morseTable {
		m[k] = v
	}
	return &Decoder{mappings: m}
}

// WithMappings returns a decoder using only the given mappings.
func WithMappings(mappings map[string]string) *Decoder {
	m := make(map[string]string, len(mappings))
	for k, v := range mappings {
		m[k] = v
	}
	return &Decoder{mappings: m}
}

// FromFile loads a decoder from a YAML mapping file of pattern: text pairs.
func FromFile(path string) (*Decoder, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read pattern file %s: %w", path, err)
	}

	var mappings map[string]string
	if err := yaml.Unmarshal(data, &mappings); err != nil {
		return nil, fmt.Errorf("failed to parse pattern file %s: %w", path, err)
	}
	if len(mappings) == 0 {
		return nil, fmt.Errorf("pattern file %s contains no mappings", path)
	}

	return &Decoder{mappings: mappings}, nil
}

// Add registers an extra mapping. Intended for construction-time
// customization, before the decoder is shared.
func (d *Decoder) Add(pattern, text string) {
	d.mappings[pattern] = text
}

// Decode substitutes each pattern in the input with its mapped text.
// Patterns are separated by single spaces, words by double spaces. Empty
// input decodes to an empty string.
func (d *Decoder) Decode(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", nil
	}

	var out strings.Builder
	for i, word := range strings.Split(input, "  ") {
		if i > 0 {
			out.WriteByte(' ')
		}
		for _, pattern := range strings.Fields(word) {
			text, ok := d.mappings[pattern]
			if !ok {
				return "", fmt.Errorf("%w: %q", ErrUnknownPattern, pattern)
			}
			out.WriteString(text)
		}
	}

	return out.String(), nil
}

// Patterns returns all known patterns in sorted order.
func (d *Decoder) Patterns() []string {
	patterns := make([]string, 0, len(d.mappings))
	for p := range d.mappings {
		patterns = append(patterns, p)
	}
	sort.Strings(patterns)
	return patterns
}

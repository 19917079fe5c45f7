package speech

import (
	_ "embed"
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrEmptyDataset is returned when a dataset has no topic with at least one line
var ErrEmptyDataset = errors.New("speech: dataset has no lines")

//go:embed default.yaml
var defaultYAML []byte

// Provider supplies ambient speech lines
type Provider interface {
	// Topics returns topic key -> lines
	Topics() map[string][]string
	// Personality returns the lines for a skin, ok is false when the skin has none
	Personality(skin string) ([]string, bool)
}

// Dataset is the on-disk speech file shape
type Dataset struct {
	Lines         map[string][]string `yaml:"topics"`
	Personalities map[string][]string `yaml:"personalities,omitempty"`
}

// Topics implements Provider
func (d *Dataset) Topics() map[string][]string {
	return d.Lines
}

// Personality implements Provider
func (d *Dataset) Personality(skin string) ([]string, bool) {
	lines, ok := d.Personalities[skin]
	if !ok || len(lines) == 0 {
		return nil, false
	}
	return lines, true
}

// TopicKeys returns non-empty topic keys in sorted order
func (d *Dataset) TopicKeys() []string {
	keys := make([]string, 0, len(d.Lines))
	for _, k := range slices.Sorted(maps.Keys(d.Lines)) {
		if len(d.Lines[k]) > 0 {
			keys = append(keys, k)
		}
	}
	return keys
}

// Validate drops blank lines and fails if nothing remains
func (d *Dataset) Validate() error {
	d.Lines = compact(d.Lines)
	d.Personalities = compact(d.Personalities)
	if len(d.Lines) == 0 {
		return ErrEmptyDataset
	}
	return nil
}

func compact(in map[string][]string) map[string][]string {
	out := make(map[string][]string, len(in))
	for k, lines := range in {
		kept := make([]string, 0, len(lines))
		for _, l := range lines {
			if l = strings.TrimSpace(l); l != "" {
				kept = append(kept, l)
			}
		}
		if len(kept) > 0 {
			out[k] = kept
		}
	}
	return out
}

// Parse decodes and validates a YAML dataset
func Parse(data []byte) (*Dataset, error) {
	var d Dataset
	if err := yaml.Unmarshal(data, &d); err != nil {
		return nil, fmt.Errorf("parse speech dataset: %w", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}

// Load reads a YAML dataset from path
func Load(path string) (*Dataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read speech dataset: %w", err)
	}
	d, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return d, nil
}

// Default returns the bundled dataset
func Default() *Dataset {
	d, err := Parse(defaultYAML)
	if err != nil {
		return Builtin()
	}
	return d
}

// Builtin is the minimal fallback used when a dataset fails to load
func Builtin() *Dataset {
	return &Dataset{
		Lines: map[string][]string{
			"fallback": {
				"Quack.",
				"Explain your bug to me, line by line.",
			},
		},
	}
}

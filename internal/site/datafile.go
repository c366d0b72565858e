package site

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// dataFile is the on-disk shape of a site description:
//
//	title: Network Notes
//	categories:
//	  bgp: [intro-to-bgp, evpn-basics]
//	  linux: [netns]
type dataFile struct {
	Title      string         `yaml:"title" toml:"title" json:"title"`
	Categories map[string]any `yaml:"categories" toml:"categories" json:"categories"`
}

// LoadDataFile reads a site description from a YAML, TOML or JSON file,
// chosen by extension. Category values are kept as decoded; values that are
// not collections are reported by the filters at render time.
func LoadDataFile(path string) (*Site, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}

	var df dataFile
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &df)
	case ".toml":
		err = toml.Unmarshal(data, &df)
	case ".json":
		err = json.Unmarshal(data, &df)
	default:
		return nil, fmt.Errorf("unsupported data file format %q (use .yaml, .toml or .json)", ext)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filepath.Base(path), err)
	}

	if df.Categories == nil {
		df.Categories = make(map[string]any)
	}

	return &Site{
		Title:      df.Title,
		Categories: df.Categories,
	}, nil
}

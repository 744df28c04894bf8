package cmd

import (
	"os"

	"gopkg.in/yaml.v2"

	"github.com/laxjson/laxjson"
)

// fileConfig is the .laxjsonrc.yaml shape; zero value of every field maps
// onto laxjson.DefaultConfig()'s choices.
type fileConfig struct {
	IndentWidth       *int  `yaml:"indent_width"`
	EnsureASCII       bool  `yaml:"ensure_ascii"`
	WrapMultipleRoots *bool `yaml:"wrap_multiple_roots"`
}

// loadConfig reads path if it exists and merges it onto laxjson's
// defaults; a missing file is not an error, mirroring the teacher CLI's
// tolerant config loading.
func loadConfig(path string) (laxjson.Config, error) {
	cfg := laxjson.DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, err
	}

	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return cfg, err
	}

	if fc.IndentWidth != nil {
		if *fc.IndentWidth <= 0 {
			cfg.Indent = laxjson.NoIndent()
		} else {
			cfg.Indent = laxjson.SpacesIndent(*fc.IndentWidth)
		}
	}
	cfg.EnsureASCII = fc.EnsureASCII
	if fc.WrapMultipleRoots != nil {
		cfg.WrapMultipleRoots = *fc.WrapMultipleRoots
	}
	return cfg, nil
}

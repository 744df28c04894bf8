package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/laxjson/laxjson"
)

func TestLoadConfigMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	require.NoError(t, err)
	assert.Equal(t, laxjson.DefaultConfig(), cfg)
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".laxjsonrc.yaml")
	yaml := "indent_width: 4\nensure_ascii: true\nwrap_multiple_roots: false\n"
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, laxjson.SpacesIndent(4), cfg.Indent)
	assert.True(t, cfg.EnsureASCII)
	assert.False(t, cfg.WrapMultipleRoots)
}

func TestLoadConfigZeroIndentWidthMeansMinified(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".laxjsonrc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("indent_width: 0\n"), 0o644))

	cfg, err := loadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, laxjson.NoIndent(), cfg.Indent)
}

func TestLoadConfigMalformedYAMLReturnsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".laxjsonrc.yaml")
	require.NoError(t, os.WriteFile(path, []byte("indent_width: [not, a, number\n"), 0o644))

	_, err := loadConfig(path)
	assert.Error(t, err)
}

func TestReadInputFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "input.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"a":1}`), 0o644))

	got, err := readInput([]string{path})
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(got))
}

func TestReadInputRejectsMultipleArgs(t *testing.T) {
	_, err := readInput([]string{"a.json", "b.json"})
	assert.Error(t, err)
}

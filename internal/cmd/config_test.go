package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	toml "github.com/pelletier/go-toml"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	yaml "gopkg.in/yaml.v3"
)

func TestConfigKey(t *testing.T) {
	tests := map[string]string{
		"Device":          "device",
		"WriteDevice":     "write_device",
		"PollInterval":    "poll_interval",
		"ShutdownTimeout": "shutdown_timeout",
		"LeftGrip":        "left_grip",
		"RawFile":         "raw_file",
		"HIDDevice":       "hid_device",
	}
	for in, want := range tests {
		assert.Equal(t, want, configKey(in), in)
	}
}

func TestConfigInitServe(t *testing.T) {
	dir := t.TempDir()

	for _, format := range []string{"json", "yaml", "toml"} {
		t.Run(format, func(t *testing.T) {
			dest := filepath.Join(dir, "nested", "serve."+format)
			c := &ConfigInit{Command: "serve", Format: format, Output: dest}
			require.NoError(t, c.Run())

			data, err := os.ReadFile(dest)
			require.NoError(t, err)

			got := map[string]any{}
			switch format {
			case "json":
				require.NoError(t, json.Unmarshal(data, &got))
			case "yaml":
				require.NoError(t, yaml.Unmarshal(data, &got))
			case "toml":
				tree, err := toml.LoadBytes(data)
				require.NoError(t, err)
				got = tree.ToMap()
			}

			assert.Equal(t, "/dev/hidg0", got["device"])
			assert.Equal(t, "100ms", got["poll_interval"])
			assert.Equal(t, "2s", got["shutdown_timeout"])
			assert.Contains(t, got, "address_seed")
			colors, ok := got["color"].(map[string]any)
			require.True(t, ok, "color section missing: %v", got)
			assert.Equal(t, "323232", colors["body"])
			assert.Equal(t, "", colors["left_grip"])
		})
	}
}

func TestConfigInitFake(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "fake.yaml")
	require.NoError(t, (&ConfigInit{Command: "fake", Format: "yml", Output: dest}).Run())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "base: procon\n", string(data))
}

func TestConfigInitRefusesOverwrite(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "serve.json")
	require.NoError(t, os.WriteFile(dest, []byte("{}"), 0o644))

	err := (&ConfigInit{Command: "serve", Format: "json", Output: dest}).Run()
	assert.ErrorContains(t, err, "--force")

	require.NoError(t, (&ConfigInit{Command: "serve", Format: "json", Output: dest, Force: true}).Run())
	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "poll_interval")
}

func TestConfigInitErrors(t *testing.T) {
	dir := t.TempDir()
	assert.Error(t, (&ConfigInit{Command: "serve", Format: "ini", Output: filepath.Join(dir, "a")}).Run())
	assert.Error(t, (&ConfigInit{Command: "proxy", Format: "json", Output: filepath.Join(dir, "b")}).Run())
}

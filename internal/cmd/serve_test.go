package cmd_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alecthomas/kong"
	"github.com/sanjay900/procon-gadget/device/procon"
	"github.com/sanjay900/procon-gadget/internal/cmd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeOptions(t *testing.T) {
	s := &cmd.Serve{
		Device:          "/dev/hidg1",
		Address:         "98-b6-e9-12-34-56",
		Colors:          cmd.Colors{Body: "#ff0000", Buttons: "00ff00", LeftGrip: "0000ff"},
		PollInterval:    50 * time.Millisecond,
		ShutdownTimeout: time.Second,
	}
	o, err := s.Options()
	require.NoError(t, err)

	assert.Equal(t, "/dev/hidg1", o.Device)
	assert.Empty(t, o.WriteDevice)
	require.NotNil(t, o.Address)
	assert.Equal(t, [6]byte{0x98, 0xb6, 0xe9, 0x12, 0x34, 0x56}, *o.Address)
	assert.Equal(t, &procon.Color{0xff, 0x00, 0x00}, o.BodyColor)
	assert.Equal(t, &procon.Color{0x00, 0xff, 0x00}, o.ButtonColor)
	assert.Equal(t, &procon.Color{0x00, 0x00, 0xff}, o.LeftGripColor)
	assert.Nil(t, o.RightGripColor)
	assert.Equal(t, 50*time.Millisecond, o.PollInterval)
	assert.Equal(t, time.Second, o.ShutdownTimeout)
}

func TestServeOptionsSeededAddress(t *testing.T) {
	a, err := (&cmd.Serve{AddressSeed: "living-room"}).Options()
	require.NoError(t, err)
	b, err := (&cmd.Serve{AddressSeed: "living-room"}).Options()
	require.NoError(t, err)
	require.NotNil(t, a.Address)
	assert.Equal(t, *a.Address, *b.Address)

	none, err := (&cmd.Serve{}).Options()
	require.NoError(t, err)
	assert.Nil(t, none.Address)
}

func TestServeOptionsErrors(t *testing.T) {
	tests := []struct {
		name  string
		serve cmd.Serve
	}{
		{"address and seed", cmd.Serve{Address: "98:b6:e9:12:34:56", AddressSeed: "x"}},
		{"short address", cmd.Serve{Address: "98:b6:e9"}},
		{"bad body color", cmd.Serve{Colors: cmd.Colors{Body: "zzzzzz"}}},
		{"bad grip color", cmd.Serve{Colors: cmd.Colors{RightGrip: "1234"}}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.serve.Options()
			assert.Error(t, err)
		})
	}
}

func TestServeLoadsGeneratedConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "serve.json")
	require.NoError(t, (&cmd.ConfigInit{Command: "serve", Format: "json", Output: path}).Run())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var cfg map[string]any
	require.NoError(t, json.Unmarshal(data, &cfg))
	cfg["device"] = "/dev/hidg3"
	cfg["poll_interval"] = "25ms"
	cfg["color"].(map[string]any)["right_grip"] = "0a0b0c"
	data, err = json.Marshal(cfg)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	var cli struct {
		Serve cmd.Serve `cmd:""`
	}
	parser, err := kong.New(&cli, kong.Configuration(kong.JSON, path))
	require.NoError(t, err)
	_, err = parser.Parse([]string{"serve", "--color.body", "111111"})
	require.NoError(t, err)

	assert.Equal(t, "/dev/hidg3", cli.Serve.Device)
	assert.Equal(t, 25*time.Millisecond, cli.Serve.PollInterval)
	assert.Equal(t, 2*time.Second, cli.Serve.ShutdownTimeout)
	assert.Equal(t, "111111", cli.Serve.Colors.Body)
	assert.Equal(t, "0a0b0c", cli.Serve.Colors.RightGrip)
}

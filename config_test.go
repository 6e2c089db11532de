package tilemap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func writeConfig(t *testing.T, data string) string {
	fname := filepath.Join(t.TempDir(), "tilemap.yaml")
	require.NoError(t, os.WriteFile(fname, []byte(data), 0644))
	return fname
}

func TestLoadConfig(t *testing.T) {
	fname := writeConfig(t, `
map_width: 20
tile_width: 8
logging:
  level: debug
  format: json
`)

	cfg, err := LoadConfig(fname)
	require.NoError(t, err)

	assert.Equal(t, uint(20), cfg.MapWidth)
	assert.Equal(t, uint(100), cfg.MapHeight)
	assert.Equal(t, uint(8), cfg.TileWidth)
	assert.Equal(t, uint(32), cfg.TileHeight)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)

	m := NewBlank(cfg)
	assert.Equal(t, 20, m.Width)
	assert.Equal(t, 160, m.WidthInPixels)
	assert.Equal(t, 3200, m.HeightInPixels)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "tile_height: 0\n"))
	assert.ErrorIs(t, err, ErrInvalidTileSize)

	_, err = LoadConfig(writeConfig(t, "map_width: [1, 2\n"))
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	cases := []struct {
		Name  string
		Cfg   LoggingConfig
		Debug bool
	}{
		{"console debug", LoggingConfig{Level: "debug", Format: "console"}, true},
		{"json warn", LoggingConfig{Level: "warn", Format: "json"}, false},
		{"unknown level", LoggingConfig{Level: "loud"}, false},
	}

	for _, tt := range cases {
		t.Run(tt.Name, func(t *testing.T) {
			logger, err := NewLogger(tt.Cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.Debug, logger.Core().Enabled(zapcore.DebugLevel))
			assert.True(t, logger.Core().Enabled(zapcore.ErrorLevel))
		})
	}
}

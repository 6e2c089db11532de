package tilemap

import (
	"fmt"
	"os"

	"github.com/mitchellh/go-homedir"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config includes settings for a Tilemap
type Config struct {
	// in tiles
	MapHeight uint `yaml:"map_height"`
	MapWidth  uint `yaml:"map_width"`

	// in pixels
	TileWidth  uint `yaml:"tile_width"`
	TileHeight uint `yaml:"tile_height"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig selects the level and encoding of the logger built by NewLogger.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "json" or "console"
}

// DefaultConfig returns a map config with default settings.
func DefaultConfig() *Config {
	return &Config{
		TileWidth:  32,
		TileHeight: 32,
		MapWidth:   100,
		MapHeight:  100,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// LoadConfig reads a yaml config file on top of DefaultConfig.
// A leading ~ in path is expanded to the user's home directory.
func LoadConfig(path string) (*Config, error) {
	fpath, err := homedir.Expand(path)
	if err != nil {
		return nil, fmt.Errorf("expand config path %s: %w", path, err)
	}

	data, err := os.ReadFile(fpath)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", fpath, err)
	}

	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", fpath, err)
	}
	if cfg.TileWidth == 0 || cfg.TileHeight == 0 {
		return nil, fmt.Errorf("config %s: %w", fpath, ErrInvalidTileSize)
	}

	return cfg, nil
}

// NewLogger builds a zap logger from the logging config.
// Unknown levels fall back to info.
func NewLogger(cfg LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}

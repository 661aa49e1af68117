package config

import (
	"encoding/json"
	"log/slog"
	"os"
)

const defaultFile = "/etc/camview/config.json"

type Config struct {
	Source string  `json:"source"`
	Width  int     `json:"width"`
	Height int     `json:"height"`
	FPS    float64 `json:"fps"`
	FourCC string  `json:"fourcc"`

	WindowTitle  string `json:"window_title"`
	WindowWidth  int    `json:"window_width"`
	WindowHeight int    `json:"window_height"`
	SnapshotDir  string `json:"snapshot_dir"`
}

// Load reads the system config file and fills in defaults for anything
// missing. A missing or broken file is not fatal; the defaults alone are
// a working configuration.
func Load() *Config {
	return LoadFile(defaultFile)
}

func LoadFile(path string) *Config {
	conf, err := loadFromFile(path)
	if err != nil {
		slog.Warn("Failed to load config file", "path", path, "error", err)
	}
	if conf == nil {
		conf = &Config{}
	}
	if conf.Source == "" {
		conf.Source = "0"
	}
	if conf.Width == 0 {
		conf.Width = 1920
	}
	if conf.Height == 0 {
		conf.Height = 1080
	}
	if conf.FPS == 0 {
		conf.FPS = 30
	}
	if conf.FourCC == "" {
		conf.FourCC = "MJPG"
	}
	if conf.WindowTitle == "" {
		conf.WindowTitle = "Webcam Feed"
	}
	if conf.WindowWidth == 0 {
		conf.WindowWidth = 1280
	}
	if conf.WindowHeight == 0 {
		conf.WindowHeight = 720
	}
	if conf.SnapshotDir == "" {
		conf.SnapshotDir = "."
	}

	return conf
}

func loadFromFile(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	config := &Config{}
	err = json.NewDecoder(file).Decode(config)
	if err != nil {
		return nil, err
	}

	return config, nil
}

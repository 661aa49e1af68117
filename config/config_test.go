package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFileMissingUsesDefaults(t *testing.T) {
	conf := LoadFile(filepath.Join(t.TempDir(), "missing.json"))

	if conf.Source != "0" {
		t.Errorf("Source = %q, want %q", conf.Source, "0")
	}
	if conf.Width != 1920 || conf.Height != 1080 {
		t.Errorf("resolution = %dx%d, want 1920x1080", conf.Width, conf.Height)
	}
	if conf.FPS != 30 {
		t.Errorf("FPS = %v, want 30", conf.FPS)
	}
	if conf.FourCC != "MJPG" {
		t.Errorf("FourCC = %q, want %q", conf.FourCC, "MJPG")
	}
	if conf.WindowWidth != 1280 || conf.WindowHeight != 720 {
		t.Errorf("window = %dx%d, want 1280x720", conf.WindowWidth, conf.WindowHeight)
	}
	if conf.WindowTitle != "Webcam Feed" {
		t.Errorf("WindowTitle = %q", conf.WindowTitle)
	}
	if conf.SnapshotDir != "." {
		t.Errorf("SnapshotDir = %q, want %q", conf.SnapshotDir, ".")
	}
}

func TestLoadFilePartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	content := `{"source": "/dev/video2", "width": 640, "height": 480}`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	conf := LoadFile(path)

	if conf.Source != "/dev/video2" {
		t.Errorf("Source = %q, want %q", conf.Source, "/dev/video2")
	}
	if conf.Width != 640 || conf.Height != 480 {
		t.Errorf("resolution = %dx%d, want 640x480", conf.Width, conf.Height)
	}
	// untouched fields still get defaults
	if conf.FPS != 30 || conf.FourCC != "MJPG" {
		t.Errorf("FPS/FourCC = %v/%q, want 30/MJPG", conf.FPS, conf.FourCC)
	}
}

func TestLoadFileBrokenJSONFallsBackToDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}

	conf := LoadFile(path)

	if conf.Source != "0" || conf.Width != 1920 {
		t.Errorf("broken file must yield defaults, got %+v", conf)
	}
}

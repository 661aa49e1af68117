package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/abihf/camview"
	"github.com/abihf/camview/capture"
	"github.com/abihf/camview/config"
)

var conf = config.Load()

func main() {
	source := flag.String("camera-source", conf.Source,
		"Camera source index (e.g. 0) or video path/URL.")
	flag.Parse()

	if err := run(*source); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(source string) error {
	req := capture.Request{
		Source: capture.ParseSource(source),
		Settings: capture.Settings{
			Width:  conf.Width,
			Height: conf.Height,
			FPS:    conf.FPS,
			FourCC: conf.FourCC,
		},
	}

	cam, err := capture.Open(req)
	if err != nil {
		return err
	}
	defer cam.Close()

	active := cam.Active()
	slog.Info("camera ready",
		"source", req.Source.String(),
		"mode", cam.Mode().String(),
		"width", active.Width,
		"height", active.Height,
		"fps", active.FPS,
	)

	return camview.View(cam, &camview.Options{
		Title:       conf.WindowTitle,
		Width:       conf.WindowWidth,
		Height:      conf.WindowHeight,
		SnapshotDir: conf.SnapshotDir,
	})
}

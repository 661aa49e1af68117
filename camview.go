// Package camview renders a verified capture handle in a window until the
// user quits.
package camview

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	"gocv.io/x/gocv"

	"github.com/abihf/camview/capture"
)

const (
	quitKey     = 'q'
	snapshotKey = 's'
)

// Options control the display window. Zero values fall back to sane
// defaults so View(cam, &Options{}) is valid.
type Options struct {
	Title       string
	Width       int
	Height      int
	SnapshotDir string
}

func (o *Options) withDefaults() Options {
	opt := *o
	if opt.Title == "" {
		opt.Title = "Webcam Feed"
	}
	if opt.Width <= 0 {
		opt.Width = 1280
	}
	if opt.Height <= 0 {
		opt.Height = 720
	}
	if opt.SnapshotDir == "" {
		opt.SnapshotDir = "."
	}
	return opt
}

// View shows frames from cam until the quit key is pressed or a read
// fails. It starts with the frame cam already verified during
// initialization, so the window never opens blank. The caller keeps
// ownership of cam and must close it.
func View(cam *capture.Webcam, opts *Options) error {
	opt := opts.withDefaults()

	window := gocv.NewWindow(opt.Title)
	defer window.Close()
	window.ResizeWindow(opt.Width, opt.Height)

	img := cam.First()
	for {
		if !img.Empty() {
			window.IMShow(*img)
		}

		switch window.WaitKey(1) {
		case quitKey:
			return nil
		case snapshotKey:
			if path, err := saveSnapshot(img, opt.SnapshotDir); err != nil {
				slog.Warn("snapshot failed", "error", err)
			} else {
				slog.Info("snapshot saved", "path", path)
			}
		}

		if !cam.Read(img) {
			return errors.New("failed to read frame from camera source")
		}
	}
}

// saveSnapshot writes the current frame as a timestamped PNG and returns
// its path.
func saveSnapshot(img *gocv.Mat, dir string) (string, error) {
	if img.Empty() {
		return "", errors.New("no frame to save")
	}
	frame, err := img.ToImage()
	if err != nil {
		return "", errors.Wrap(err, "convert frame")
	}
	path := filepath.Join(dir, snapshotName(time.Now()))
	if err := imaging.Save(frame, path); err != nil {
		return "", errors.Wrap(err, "write snapshot")
	}
	return path, nil
}

func snapshotName(now time.Time) string {
	return fmt.Sprintf("camview-%s.png", now.Format("20060102-150405"))
}

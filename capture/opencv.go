package capture

import (
	"log/slog"
	"math"

	"github.com/pkg/errors"
	"gocv.io/x/gocv"
)

// Webcam is a verified capture handle: at least one frame has been read
// under the configuration it is currently in. It is singly owned; the
// caller must Close it on every exit path.
type Webcam struct {
	dev  *cvDevice
	mode Mode
}

// Open produces a verified handle for the request. The requested settings
// are preferred; when they yield no frame the device is reopened once
// under driver defaults. On failure the error wraps ErrDeviceUnavailable
// or ErrCaptureUnusable and no device stays open.
func Open(req Request) (*Webcam, error) {
	dev, mode, err := initialize(openCV, req)
	if err != nil {
		return nil, err
	}
	return &Webcam{dev: dev.(*cvDevice), mode: mode}, nil
}

// Mode reports whether the handle runs under the requested settings or
// fell back to driver defaults.
func (w *Webcam) Mode() Mode { return w.mode }

// Active reports the driver's current settings, which may differ from the
// request even without a fallback.
func (w *Webcam) Active() Settings { return w.dev.Active() }

// First returns the frame read during verification, so the consumer can
// show something before its own first read.
func (w *Webcam) First() *gocv.Mat { return &w.dev.frame }

// Read grabs the next frame into dst.
func (w *Webcam) Read(dst *gocv.Mat) bool { return w.dev.cap.Read(dst) }

func (w *Webcam) Close() error { return w.dev.Close() }

// cvDevice adapts gocv.VideoCapture to the Device interface.
type cvDevice struct {
	cap   *gocv.VideoCapture
	frame gocv.Mat
}

func openCV(candidate any) (Device, error) {
	vc, err := gocv.OpenVideoCapture(candidate)
	if err != nil {
		return nil, err
	}
	if !vc.IsOpened() {
		_ = vc.Close()
		return nil, errors.Errorf("source %v reports closed after open", candidate)
	}
	return &cvDevice{cap: vc, frame: gocv.NewMat()}, nil
}

func (d *cvDevice) Apply(s Settings) {
	if s.Width > 0 {
		d.set(gocv.VideoCaptureFrameWidth, float64(s.Width), "width")
	}
	if s.Height > 0 {
		d.set(gocv.VideoCaptureFrameHeight, float64(s.Height), "height")
	}
	if s.FPS > 0 {
		d.set(gocv.VideoCaptureFPS, s.FPS, "fps")
	}
	if s.FourCC != "" {
		d.set(gocv.VideoCaptureFOURCC, d.cap.ToCodec(s.FourCC), "fourcc")
	}
}

// set applies one property and warns when the driver reports a different
// value back. The driver is still free to lie; the authoritative check is
// whether a frame arrives afterwards.
func (d *cvDevice) set(prop gocv.VideoCaptureProperties, want float64, name string) {
	d.cap.Set(prop, want)
	got := d.cap.Get(prop)
	if math.Abs(got-want) > 0.5 {
		slog.Warn("driver ignored capture setting",
			"setting", name, "requested", want, "actual", got)
	}
}

func (d *cvDevice) Active() Settings {
	return Settings{
		Width:  int(d.cap.Get(gocv.VideoCaptureFrameWidth)),
		Height: int(d.cap.Get(gocv.VideoCaptureFrameHeight)),
		FPS:    d.cap.Get(gocv.VideoCaptureFPS),
		FourCC: d.cap.CodecString(),
	}
}

func (d *cvDevice) Grab() error {
	if !d.cap.Read(&d.frame) {
		return errors.New("frame read failed")
	}
	if d.frame.Empty() {
		return errors.New("frame is empty")
	}
	return nil
}

func (d *cvDevice) Close() error {
	_ = d.frame.Close()
	return d.cap.Close()
}

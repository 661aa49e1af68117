// Package capture opens a video device and hands back a handle that is
// proven to deliver frames. Opening a webcam is not enough: some devices
// accept any configuration and then never produce a frame, so the first
// frame is read during initialization and the requested settings are
// dropped in favor of driver defaults when it does not arrive.
package capture

import (
	"log/slog"
	"time"

	"github.com/pkg/errors"
)

// Terminal initialization failures. Both mean the program cannot continue;
// the single driver-defaults fallback is already built into Open.
var (
	// ErrDeviceUnavailable means the device could not be opened at all.
	ErrDeviceUnavailable = errors.New("camera device unavailable")
	// ErrCaptureUnusable means the device opened but produced no valid
	// frame under either the requested or the driver-default settings.
	ErrCaptureUnusable = errors.New("camera capture unusable")
)

// Settings are the capture parameters requested from the driver. The zero
// value means "whatever the driver picks".
type Settings struct {
	Width  int
	Height int
	FPS    float64
	FourCC string
}

// Request describes one initialization attempt: which device, and which
// settings to ask for before falling back.
type Request struct {
	Source   Source
	Settings Settings
}

// Mode reports which configuration a verified handle ended up in.
type Mode int

const (
	// ModeRequested: the first frame arrived under the requested settings.
	ModeRequested Mode = iota
	// ModeFallback: the requested settings yielded no frame and the handle
	// is running under driver defaults.
	ModeFallback
)

func (m Mode) String() string {
	if m == ModeFallback {
		return "driver-default"
	}
	return "requested"
}

// Device is the minimal driver surface the initializer needs. The real
// implementation wraps an OpenCV capture; tests provide fakes.
type Device interface {
	// Apply pushes settings to the driver. Best effort: drivers may
	// silently ignore or clamp any of them, which only shows up as a
	// failed Grab.
	Apply(s Settings)

	// Active reports the settings the driver says it is using.
	Active() Settings

	// Grab reads and validates one frame, retaining it for the consumer.
	Grab() error

	Close() error
}

// opener opens a single device candidate (an int index or string path).
type opener func(candidate any) (Device, error)

// The driver may need a moment after configuration before frames start
// flowing, so the first read is retried briefly before the configuration
// is declared rejected.
const (
	startupReadAttempts = 10
	startupReadDelay    = 20 * time.Millisecond
)

// initialize runs the two-attempt sequence: requested settings first, then
// one reopen with driver defaults. No state is revisited beyond that.
func initialize(open opener, req Request) (Device, Mode, error) {
	dev, err := openSource(open, req.Source)
	if err != nil {
		return nil, 0, err
	}

	dev.Apply(req.Settings)
	if err := grabFirst(dev); err == nil {
		return dev, ModeRequested, nil
	}
	slog.Warn("requested capture settings yielded no frame, retrying with driver defaults",
		"source", req.Source.String())

	// The rejected handle is closed before reopening: V4L2 capture is
	// exclusive-access and a second open would otherwise report busy.
	if err := dev.Close(); err != nil {
		slog.Warn("closing rejected capture handle failed", "error", err)
	}

	dev, err = openSource(open, req.Source)
	if err != nil {
		return nil, 0, err
	}
	if err := grabFirst(dev); err == nil {
		return dev, ModeFallback, nil
	}
	if err := dev.Close(); err != nil {
		slog.Warn("closing unusable capture handle failed", "error", err)
	}
	return nil, 0, errors.WithMessagef(ErrCaptureUnusable,
		"source %s produced no frame under requested or driver-default settings", req.Source)
}

// openSource tries each open candidate of the source in order and keeps
// the first device that opens.
func openSource(open opener, src Source) (Device, error) {
	var lastErr error
	for _, candidate := range src.candidates() {
		dev, err := open(candidate)
		if err != nil {
			lastErr = err
			continue
		}
		return dev, nil
	}
	msg := "cannot open camera source " + src.String()
	if hint := openHint(src); hint != "" {
		msg += ": " + hint
	}
	return nil, errors.WithMessagef(ErrDeviceUnavailable, "%s (%v)", msg, lastErr)
}

func grabFirst(dev Device) error {
	var err error
	for attempt := 0; attempt < startupReadAttempts; attempt++ {
		if err = dev.Grab(); err == nil {
			return nil
		}
		if attempt < startupReadAttempts-1 {
			time.Sleep(startupReadDelay)
		}
	}
	return errors.WithMessagef(err, "no frame after %d read attempts", startupReadAttempts)
}

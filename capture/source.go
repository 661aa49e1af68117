package capture

import (
	"fmt"
	"strconv"
	"strings"
)

// Source identifies a capture device either by numeric index or by
// path/URL. The two forms are kept as an explicit variant instead of an
// untyped string so callers never have to guess which one they hold.
type Source struct {
	index   int
	path    string
	indexed bool
}

func IndexSource(index int) Source {
	return Source{index: index, indexed: true}
}

func PathSource(path string) Source {
	return Source{path: path}
}

// ParseSource normalizes user input into a Source. Bare digits and
// /dev/videoN paths become index sources, everything else (file paths,
// URLs) stays a path source.
func ParseSource(raw string) Source {
	trimmed := strings.TrimSpace(raw)
	if suffix, ok := strings.CutPrefix(trimmed, "/dev/video"); ok {
		if n, err := strconv.Atoi(suffix); err == nil && n >= 0 {
			return IndexSource(n)
		}
	}
	if n, err := strconv.Atoi(trimmed); err == nil && n >= 0 {
		return IndexSource(n)
	}
	return PathSource(trimmed)
}

func (s Source) String() string {
	if s.indexed {
		return strconv.Itoa(s.index)
	}
	return s.path
}

// devicePath returns the V4L2 device node this source maps to, or "" when
// the source is not device-backed (a file or URL).
func (s Source) devicePath() string {
	if s.indexed {
		return fmt.Sprintf("/dev/video%d", s.index)
	}
	if strings.HasPrefix(s.path, "/dev/video") {
		return s.path
	}
	return ""
}

// candidates lists the open attempts for this source, in order. An index
// source additionally tries its device node, since some OpenCV builds
// resolve indexes against a different backend than the V4L2 one.
func (s Source) candidates() []any {
	if s.indexed {
		return []any{s.index, s.devicePath()}
	}
	return []any{s.path}
}

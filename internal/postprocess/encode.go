package postprocess

import (
	"errors"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/HugoSmits86/nativewebp"
)

// Format names an output image encoding.
type Format string

const (
	FormatWebP Format = "webp"
	FormatPNG  Format = "png"
)

// ErrFormat is returned for an unsupported output format.
var ErrFormat = errors.New("postprocess: unsupported format")

// ParseFormat accepts "webp" or "png", case-insensitively, with or
// without a leading dot.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimPrefix(s, "."))); f {
	case FormatWebP, FormatPNG:
		return f, nil
	}
	return "", fmt.Errorf("%w: %q", ErrFormat, s)
}

// Ext returns the file extension for f, including the dot.
func (f Format) Ext() string {
	return "." + string(f)
}

// Encode writes img to w in format f. WebP output is lossless.
func Encode(w io.Writer, img image.Image, f Format) error {
	switch f {
	case FormatWebP:
		if err := nativewebp.Encode(w, img, nil); err != nil {
			return fmt.Errorf("postprocess: webp encode: %w", err)
		}
		return nil
	case FormatPNG:
		if err := png.Encode(w, img); err != nil {
			return fmt.Errorf("postprocess: png encode: %w", err)
		}
		return nil
	}
	return fmt.Errorf("%w: %q", ErrFormat, f)
}

// WriteFile encodes img into path, picking the format from the
// extension. Parent directories are created as needed.
func WriteFile(path string, img image.Image) error {
	f, err := ParseFormat(filepath.Ext(path))
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("postprocess: %w", err)
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("postprocess: %w", err)
	}
	if err := Encode(out, img, f); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return fmt.Errorf("postprocess: %w", err)
	}
	return nil
}

// ScreenshotName returns screenshot_M-D_H-M-S with the extension of f.
// Fields are not zero padded.
func ScreenshotName(t time.Time, f Format) string {
	return fmt.Sprintf("screenshot_%d-%d_%d-%d-%d%s",
		int(t.Month()), t.Day(), t.Hour(), t.Minute(), t.Second(), f.Ext())
}

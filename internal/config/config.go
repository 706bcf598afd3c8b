package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"softraster/internal/postprocess"
	"softraster/internal/raster"
	"softraster/internal/texture"
)

// ErrInvalid wraps every Validate failure.
var ErrInvalid = errors.New("config: invalid")

// Config holds render settings and paths. Files may be JSON or TOML; the
// extension decides.
type Config struct {
	// Paths. Relative entries resolve against BaseDir, which defaults to
	// the directory of the config file.
	BaseDir    string `json:"base_dir" toml:"base_dir"`
	Texture    string `json:"texture" toml:"texture"`
	TextureDir string `json:"texture_dir" toml:"texture_dir"`
	OutputDir  string `json:"output_dir" toml:"output_dir"`

	// Frame
	Width         int    `json:"width" toml:"width"`
	Height        int    `json:"height" toml:"height"`
	SampleRate    int    `json:"sample_rate" toml:"sample_rate"`
	PixelSampling string `json:"pixel_sampling" toml:"pixel_sampling"`
	LevelSampling string `json:"level_sampling" toml:"level_sampling"`
	View          *View  `json:"view,omitempty" toml:"view,omitempty"`

	// Output
	Format string `json:"format" toml:"format"`
	Zoom   *Zoom  `json:"zoom,omitempty" toml:"zoom,omitempty"`
	Sheet  int    `json:"sheet" toml:"sheet"`

	// Batch
	Rates   []int `json:"rates" toml:"rates"`
	Workers int   `json:"workers" toml:"workers"`
}

// View centers the camera on (X, Y) in document units with a half-extent
// of Span. A zero Span keeps the default framing.
type View struct {
	X    float64 `json:"x" toml:"x"`
	Y    float64 `json:"y" toml:"y"`
	Span float64 `json:"span" toml:"span"`
}

// Zoom places a magnified inset around the screen pixel (X, Y).
type Zoom struct {
	X int `json:"x" toml:"x"`
	Y int `json:"y" toml:"y"`
}

// Load reads a JSON or TOML config file. Fields not set in the file keep
// their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, &cfg)
	default:
		err = json.Unmarshal(data, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	if cfg.BaseDir == "" {
		cfg.BaseDir = filepath.Dir(path)
	}
	return cfg, nil
}

// Flags holds CLI flag values that override config file settings. Zero
// values leave the file setting alone.
type Flags struct {
	Width         int
	Height        int
	SampleRate    int
	PixelSampling string
	LevelSampling string
	Texture       string
	TextureDir    string
	OutputDir     string
	Format        string
	Workers       int
}

// Resolve applies flag overrides, then fills empty fields with defaults
// and resolves relative paths.
func (c *Config) Resolve(flags Flags) {
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.SampleRate > 0 {
		c.SampleRate = flags.SampleRate
	}
	if flags.PixelSampling != "" {
		c.PixelSampling = flags.PixelSampling
	}
	if flags.LevelSampling != "" {
		c.LevelSampling = flags.LevelSampling
	}
	// flag paths are relative to the working directory, not BaseDir
	if flags.Texture != "" {
		c.Texture = absPath(flags.Texture)
	}
	if flags.TextureDir != "" {
		c.TextureDir = absPath(flags.TextureDir)
	}
	if flags.OutputDir != "" {
		c.OutputDir = absPath(flags.OutputDir)
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.Width <= 0 {
		c.Width = 512
	}
	if c.Height <= 0 {
		c.Height = 512
	}
	if c.SampleRate <= 0 {
		c.SampleRate = 1
	}
	if c.PixelSampling == "" {
		c.PixelSampling = texture.PixelNearest.Name()
	}
	if c.LevelSampling == "" {
		c.LevelSampling = texture.LevelZero.Name()
	}
	if c.Format == "" {
		c.Format = string(postprocess.FormatWebP)
	}
	if c.OutputDir == "" {
		c.OutputDir = "renders"
	}
	if len(c.Rates) == 0 {
		c.Rates = []int{1, 4, 9, 16}
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}

	if c.BaseDir != "" {
		c.OutputDir = c.join(c.OutputDir)
		if c.TextureDir != "" {
			c.TextureDir = c.join(c.TextureDir)
		}
		// a bare name is looked up in TextureDir instead
		if filepath.Ext(c.Texture) != "" {
			c.Texture = c.join(c.Texture)
		}
	}
}

func (c *Config) join(p string) string {
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(c.BaseDir, p)
}

func absPath(p string) string {
	if abs, err := filepath.Abs(p); err == nil {
		return abs
	}
	return p
}

// Validate reports every invalid setting at once. Each error wraps
// ErrInvalid.
func (c *Config) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.Width <= 0 || c.Height <= 0 {
		bad("size %dx%d", c.Width, c.Height)
	}
	if !validRate(c.SampleRate) {
		bad("sample_rate %d", c.SampleRate)
	}
	for _, r := range c.Rates {
		if !validRate(r) {
			bad("rates: %d", r)
		}
	}
	if _, err := texture.ParsePixelSampleMethod(c.PixelSampling); err != nil {
		bad("pixel_sampling %q", c.PixelSampling)
	}
	if _, err := texture.ParseLevelSampleMethod(c.LevelSampling); err != nil {
		bad("level_sampling %q", c.LevelSampling)
	}
	if _, err := postprocess.ParseFormat(c.Format); err != nil {
		bad("format %q", c.Format)
	}
	if c.View != nil && c.View.Span < 0 {
		bad("view span %g", c.View.Span)
	}
	if c.Sheet < 0 {
		bad("sheet %d", c.Sheet)
	}
	if c.Workers <= 0 {
		bad("workers %d", c.Workers)
	}
	return errors.Join(errs...)
}

func validRate(rate int) bool {
	k := raster.SampleFactor(rate)
	return rate >= 1 && rate <= 16 && k*k == rate
}

// Methods parses the configured sampling methods.
func (c *Config) Methods() (texture.PixelSampleMethod, texture.LevelSampleMethod, error) {
	psm, err := texture.ParsePixelSampleMethod(c.PixelSampling)
	if err != nil {
		return 0, 0, fmt.Errorf("config: %w", err)
	}
	lsm, err := texture.ParseLevelSampleMethod(c.LevelSampling)
	if err != nil {
		return 0, 0, fmt.Errorf("config: %w", err)
	}
	return psm, lsm, nil
}

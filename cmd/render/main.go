package main

import (
	"flag"
	"fmt"
	"image"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"softraster/internal/batch"
	"softraster/internal/config"
	"softraster/internal/postprocess"
	"softraster/internal/render"
	"softraster/internal/scene"
	"softraster/internal/texture"
)

func main() {
	// CLI flags
	configFile := flag.String("config", "", "Path to a .json or .toml config file")
	width := flag.Int("width", 0, "Frame width in pixels (default: 512)")
	height := flag.Int("height", 0, "Frame height in pixels (default: 512)")
	rate := flag.Int("rate", 0, "Samples per pixel: 1, 4, 9 or 16 (default: 1)")
	psm := flag.String("pixel", "", "Pixel sampling: nearest or bilinear")
	lsm := flag.String("level", "", "Level sampling: zero, nearest or trilinear")
	tex := flag.String("texture", "", "Texture file, or a name looked up in -texdir")
	texDir := flag.String("texdir", "", "Directory to index textures from")
	outputDir := flag.String("output", "", "Output directory (default: renders)")
	format := flag.String("format", "", "Output format: webp or png (default: webp)")
	workers := flag.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	matrix := flag.Bool("matrix", false, "Render every rate and sampling method combination")
	zoom := flag.String("zoom", "", "Add a magnified inset around pixel X,Y")
	sheet := flag.Int("sheet", 0, "With -matrix, also write a contact sheet with cells of this size")
	verbose := flag.Bool("v", false, "Log debug diagnostics to stderr")

	flag.Parse()

	if *verbose {
		render.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		Width:         *width,
		Height:        *height,
		SampleRate:    *rate,
		PixelSampling: *psm,
		LevelSampling: *lsm,
		Texture:       *tex,
		TextureDir:    *texDir,
		OutputDir:     *outputDir,
		Format:        *format,
		Workers:       *workers,
	})
	if *zoom != "" {
		p, err := parsePoint(*zoom)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: -zoom: %v\n", err)
			os.Exit(1)
		}
		cfg.Zoom = &config.Zoom{X: p.X, Y: p.Y}
	}
	if *sheet > 0 {
		cfg.Sheet = *sheet
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	outFormat, _ := postprocess.ParseFormat(cfg.Format)

	// Texture
	var t *texture.Texture
	if cfg.Texture != "" {
		texIndex := texture.BuildIndex(cfg.TextureDir)
		if cfg.TextureDir != "" {
			fmt.Printf("Textures: %d indexed\n", texIndex.Len())
		}
		var err error
		t, err = texture.NewCache(texIndex).Load(cfg.Texture)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading texture: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("Texture: %dx%d, %d mip levels\n", t.Width, t.Height, t.NumLevels())
	}

	doc := scene.TestPattern(t)
	view := scene.NewView(doc.Width, doc.Height)
	if cfg.View != nil && cfg.View.Span > 0 {
		view.Set(cfg.View.X, cfg.View.Y, cfg.View.Span)
	}

	if *matrix {
		os.Exit(runMatrix(cfg, doc, view, outFormat))
	}
	if err := renderOne(cfg, doc, view, outFormat); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func renderOne(cfg config.Config, doc *scene.Document, view *scene.View, f postprocess.Format) error {
	s := render.NewSession(cfg.Width, cfg.Height)
	if err := s.SetSampleRate(cfg.SampleRate); err != nil {
		return err
	}
	psm, lsm, err := cfg.Methods()
	if err != nil {
		return err
	}
	s.SetPixelSampleMethod(psm)
	s.SetLevelSampleMethod(lsm)

	start := time.Now()
	s.Redraw(doc, view)
	fmt.Println(s.Info())

	img := s.Image()
	if cfg.Zoom != nil {
		img = postprocess.ZoomInset(img, cfg.Zoom.X, cfg.Zoom.Y)
	}

	outPath := filepath.Join(cfg.OutputDir, postprocess.ScreenshotName(time.Now(), f))
	fmt.Printf("Writing file %s...\n", outPath)
	if err := postprocess.WriteFile(outPath, img); err != nil {
		return err
	}
	fmt.Printf("Done in %.1fms\n", float64(time.Since(start).Microseconds())/1000)
	return nil
}

func runMatrix(cfg config.Config, doc *scene.Document, view *scene.View, f postprocess.Format) int {
	jobs := batch.Jobs(cfg.Rates)

	fmt.Printf("Software rasterizer → %s\n", strings.ToUpper(string(f)))
	fmt.Printf("Frame: %dx%d, Jobs: %d, Workers: %d\n", cfg.Width, cfg.Height, len(jobs), cfg.Workers)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()

	batchCfg := batch.Config{
		Doc:        doc,
		View:       view,
		Width:      cfg.Width,
		Height:     cfg.Height,
		OutputDir:  cfg.OutputDir,
		Format:     f,
		KeepFrames: cfg.Sheet > 0,
		Workers:    cfg.Workers,
	}
	if cfg.Zoom != nil {
		batchCfg.Zoom = &image.Point{X: cfg.Zoom.X, Y: cfg.Zoom.Y}
	}

	results := batch.Run(batchCfg, jobs)

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", time.Since(start).Seconds())

	// Count results
	success, failed := 0, 0
	var frames []*image.NRGBA
	for _, r := range results {
		if r.Success {
			success++
			if r.Frame != nil {
				frames = append(frames, r.Frame)
			}
		} else {
			failed++
			fmt.Printf("  %s: %s\n", r.Job.Name(), r.Error)
		}
	}
	fmt.Printf("Rendered: %d/%d\n", success, len(jobs))

	if len(frames) > 0 {
		sheetPath := filepath.Join(cfg.OutputDir, "sheet"+f.Ext())
		if err := postprocess.WriteFile(sheetPath, postprocess.ContactSheet(frames, cfg.Sheet, 4)); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: contact sheet write failed: %v\n", err)
		} else {
			fmt.Printf("Sheet: %s\n", sheetPath)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	os.MkdirAll(cfg.OutputDir, 0755)
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if failed > 0 {
		return 1
	}
	return 0
}

// parsePoint parses "X,Y".
func parsePoint(s string) (image.Point, error) {
	xs, ys, ok := strings.Cut(s, ",")
	if !ok {
		return image.Point{}, fmt.Errorf("want X,Y, got %q", s)
	}
	x, err := strconv.Atoi(strings.TrimSpace(xs))
	if err != nil {
		return image.Point{}, err
	}
	y, err := strconv.Atoi(strings.TrimSpace(ys))
	if err != nil {
		return image.Point{}, err
	}
	return image.Point{X: x, Y: y}, nil
}

package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"softraster/internal/postprocess"
	"softraster/internal/texture"
)

func dumpLevel(dir, stem string, i int, lvl texture.MipLevel, f postprocess.Format) error {
	img := &image.NRGBA{
		Pix:    lvl.Texels,
		Stride: 4 * lvl.Width,
		Rect:   image.Rect(0, 0, lvl.Width, lvl.Height),
	}
	name := fmt.Sprintf("%s_mip%02d%s", stem, i, f.Ext())
	if err := postprocess.WriteFile(filepath.Join(dir, name), img); err != nil {
		return fmt.Errorf("level %d: %w", i, err)
	}
	fmt.Printf("OK  level %2d  %4dx%-4d -> %s\n", i, lvl.Width, lvl.Height, name)
	return nil
}

func main() {
	outputDir := flag.String("output", ".", "Output directory")
	format := flag.String("format", "png", "Output format: webp or png")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: mipdump [-output dir] [-format png|webp] texture...")
		os.Exit(2)
	}
	f, err := postprocess.ParseFormat(*format)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	errors := 0
	for _, path := range flag.Args() {
		tex, err := texture.LoadTexture(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "ERR %v\n", err)
			errors++
			continue
		}
		stem := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		for i, lvl := range tex.Levels {
			if err := dumpLevel(*outputDir, stem, i, lvl, f); err != nil {
				fmt.Fprintf(os.Stderr, "ERR %s: %v\n", path, err)
				errors++
			}
		}
	}
	if errors > 0 {
		fmt.Printf("\nDone with %d error(s).\n", errors)
		os.Exit(1)
	}
	fmt.Println("\nDone. All levels written.")
}

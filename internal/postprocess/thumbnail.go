package postprocess

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
)

// Thumbnail scales img down so its longer side is at most maxSize,
// keeping the aspect ratio. Filtering happens on premultiplied alpha so
// transparent edges do not darken. Images that already fit are returned
// unchanged.
func Thumbnail(img *image.NRGBA, maxSize int) *image.NRGBA {
	b := img.Bounds()
	if maxSize <= 0 || (b.Dx() <= maxSize && b.Dy() <= maxSize) {
		return img
	}
	w, h := maxSize, maxSize
	if b.Dx() > b.Dy() {
		h = max(1, b.Dy()*maxSize/b.Dx())
	} else {
		w = max(1, b.Dx()*maxSize/b.Dy())
	}

	// image.RGBA is premultiplied, so the conversion does the work
	premul := image.NewRGBA(b)
	draw.Draw(premul, b, img, b.Min, draw.Src)

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), premul, b, draw.Src, nil)

	result := image.NewNRGBA(dst.Bounds())
	draw.Draw(result, result.Bounds(), dst, image.Point{}, draw.Src)
	return result
}

// ContactSheet lays frames out left to right on a white strip, each
// scaled to fit a thumb x thumb cell, separated by gap pixels.
func ContactSheet(frames []*image.NRGBA, thumb, gap int) *image.NRGBA {
	n := len(frames)
	if n == 0 || thumb <= 0 {
		return image.NewNRGBA(image.Rect(0, 0, 0, 0))
	}
	gap = max(gap, 0)
	sheet := image.NewNRGBA(image.Rect(0, 0, n*thumb+(n+1)*gap, thumb+2*gap))
	draw.Draw(sheet, sheet.Bounds(), image.NewUniform(color.White), image.Point{}, draw.Src)

	for i, f := range frames {
		t := Thumbnail(f, thumb)
		tb := t.Bounds()
		x := gap + i*(thumb+gap) + (thumb-tb.Dx())/2
		y := gap + (thumb-tb.Dy())/2
		draw.Draw(sheet, image.Rect(x, y, x+tb.Dx(), y+tb.Dy()), t, tb.Min, draw.Over)
	}
	return sheet
}

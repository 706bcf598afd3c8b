package postprocess

import (
	"image"

	"github.com/anthonynsimon/bild/transform"
	"golang.org/x/image/draw"
)

const (
	// ZoomRegion is the side of the magnified square, in pixels.
	ZoomRegion = 32
	// ZoomFactor is the default magnification.
	ZoomFactor = 16

	// share of the smaller image dimension the inset may cover
	zoomMaxCover = 0.4
	// brightening applied to the first row and column of each block
	zoomEdge = 0.3
)

// ZoomInset returns a copy of img with a magnified view of the
// ZoomRegion square around (cx, cy) pasted into the top-right corner.
// Every source pixel becomes a block whose top row and left column are
// brightened, so pixel boundaries stay visible. The magnification drops
// below ZoomFactor so the inset never covers more than 40% of the smaller
// dimension. Images too small for a region, or for a 1x inset, are
// returned as a plain copy.
func ZoomInset(img *image.NRGBA, cx, cy int) *image.NRGBA {
	b := img.Bounds()
	out := image.NewNRGBA(b)
	draw.Draw(out, b, img, b.Min, draw.Src)

	w, h := b.Dx(), b.Dy()
	factor := ZoomFactor
	if limit := float64(min(w, h)) * zoomMaxCover; float64(ZoomRegion*factor) > limit {
		factor = int(limit) / ZoomRegion
	}
	if factor < 1 || w < ZoomRegion || h < ZoomRegion {
		return out
	}
	size := ZoomRegion * factor

	// keep the region inside the image
	half := ZoomRegion / 2
	cx = max(half, min(w-half-1, cx))
	cy = max(half, min(h-half-1, cy))
	region := image.Rect(cx-half, cy-half, cx+half, cy+half).Add(b.Min)

	zoomed := transform.Resize(transform.Crop(img, region), size, size, transform.NearestNeighbor)
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if x%factor != 0 && y%factor != 0 {
				continue
			}
			i := zoomed.PixOffset(x, y)
			for c := 0; c < 3; c++ {
				zoomed.Pix[i+c] = uint8((1-2*zoomEdge)*float64(zoomed.Pix[i+c]) + zoomEdge*255)
			}
		}
	}

	dst := image.Rect(b.Max.X-size, b.Min.Y, b.Max.X, b.Min.Y+size)
	draw.Draw(out, dst, zoomed, image.Point{}, draw.Src)
	return out
}

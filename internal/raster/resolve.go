package raster

import "softraster/internal/pixel"

// SampleFactor returns k = floor(sqrt(rate)), the number of samples per
// pixel along each axis.
func SampleFactor(rate int) int {
	k := 0
	for (k+1)*(k+1) <= rate {
		k++
	}
	return k
}

// Resolve box-filters super, which holds k×k samples per pixel of out,
// into out. Channels are summed as integers and divided by rate with
// truncation. rate must be a perfect square; a non-square rate or
// mismatched buffer sizes leave out untouched.
func Resolve(super, out *pixel.Buffer, rate int) {
	k := SampleFactor(rate)
	if k < 1 || k*k != rate || super.Width != out.Width*k || super.Height != out.Height*k {
		return
	}
	superPitch := super.Width * 4

	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			var sum [4]int
			base := (y*k)*superPitch + (x*k)*4
			for sy := 0; sy < k; sy++ {
				row := super.Pix[base+sy*superPitch:]
				for sx := 0; sx < k; sx++ {
					p := row[4*sx : 4*sx+4 : 4*sx+4]
					sum[0] += int(p[0])
					sum[1] += int(p[1])
					sum[2] += int(p[2])
					sum[3] += int(p[3])
				}
			}
			i := (y*out.Width + x) * 4
			out.Pix[i] = uint8(sum[0] / rate)
			out.Pix[i+1] = uint8(sum[1] / rate)
			out.Pix[i+2] = uint8(sum[2] / rate)
			out.Pix[i+3] = uint8(sum[3] / rate)
		}
	}
}

package jpegenc

import (
	"image"
)

// FromImage converts a decoded stdlib image into the pipeline's
// interleaved buffer: grayscale images become single-channel, anything
// else 3-channel RGB.
func FromImage(m image.Image) (*Image, error) {
	if m == nil {
		return nil, invalidArgf("nil source image")
	}

	b := m.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= 0 || h <= 0 {
		return nil, invalidArgf("source image has empty bounds %v", b)
	}

	if g, ok := m.(*image.Gray); ok {
		out := &Image{
			Width:    w,
			Height:   h,
			Channels: 1,
			Space:    ColorSpaceGray,
			Pix:      make([]byte, w*h),
		}
		for y := 0; y < h; y++ {
			src := g.Pix[g.PixOffset(b.Min.X, b.Min.Y+y):]
			copy(out.Pix[y*w:(y+1)*w], src[:w])
		}

		return out, nil
	}

	out := &Image{
		Width:    w,
		Height:   h,
		Channels: 3,
		Space:    ColorSpaceRGB,
		Pix:      make([]byte, w*h*3),
	}

	i := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := m.At(x, y).RGBA()
			// RGBA returns 16-bit values in [0, 65535].
			out.Pix[i] = byte(r >> 8)
			out.Pix[i+1] = byte(g >> 8)
			out.Pix[i+2] = byte(bl >> 8)
			i += 3
		}
	}

	return out, nil
}

package jpegenc

// Downsample420 halves a chroma plane in both axes by averaging each
// 2x2 pixel group with rounding, (sum+2)/4. The plane must be
// single-channel with dimensions that are multiples of 16, which the
// color path guarantees by padding first.
func Downsample420(plane *Image) (*Image, error) {
	if err := plane.validate(); err != nil {
		return nil, err
	}
	if plane.Channels != 1 {
		return nil, invalidArgf("Downsample420: expected single-channel plane, got %d channels", plane.Channels)
	}
	if plane.Width%16 != 0 || plane.Height%16 != 0 {
		return nil, invalidArgf("Downsample420: plane dimensions %dx%d are not multiples of 16",
			plane.Width, plane.Height)
	}

	out := &Image{
		Width:    plane.Width / 2,
		Height:   plane.Height / 2,
		Channels: 1,
		Space:    ColorSpaceGray,
		Pix:      make([]byte, plane.Width/2*plane.Height/2),
	}

	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			sx, sy := 2*x, 2*y
			sum := int(plane.At(sx, sy, 0)) +
				int(plane.At(sx+1, sy, 0)) +
				int(plane.At(sx, sy+1, 0)) +
				int(plane.At(sx+1, sy+1, 0))
			out.Set(x, y, 0, byte((sum+2)/4))
		}
	}

	return out, nil
}

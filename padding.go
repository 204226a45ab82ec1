package jpegenc

// PaddedDimensions rounds width and height up to the next multiple of
// blockSize.
func PaddedDimensions(width, height, blockSize int) (int, int) {
	roundUp := func(v int) int {
		return (v + blockSize - 1) / blockSize * blockSize
	}

	return roundUp(width), roundUp(height)
}

// PadToMultiple extends the image so that both dimensions are multiples
// of blockSize, replicating the nearest edge pixel into the new columns
// and rows. Corner fill replicates the original corner pixel. If the
// dimensions already match, an equivalent copy is returned.
func PadToMultiple(im *Image, blockSize int) (*Image, error) {
	if err := im.validate(); err != nil {
		return nil, err
	}
	if blockSize <= 0 {
		return nil, invalidArgf("block size must be positive, got %d", blockSize)
	}

	if im.Width%blockSize == 0 && im.Height%blockSize == 0 {
		return im.Clone(), nil
	}

	pw, ph := PaddedDimensions(im.Width, im.Height, blockSize)

	out := &Image{
		Width:    pw,
		Height:   ph,
		Channels: im.Channels,
		Space:    im.Space,
		Pix:      make([]byte, pw*ph*im.Channels),
	}

	for y := 0; y < ph; y++ {
		srcY := y
		if srcY >= im.Height {
			srcY = im.Height - 1
		}
		for x := 0; x < pw; x++ {
			srcX := x
			if srcX >= im.Width {
				srcX = im.Width - 1
			}
			for c := 0; c < im.Channels; c++ {
				out.Set(x, y, c, im.At(srcX, srcY, c))
			}
		}
	}

	return out, nil
}

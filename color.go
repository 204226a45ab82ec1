package jpegenc

// clampToByte rounds v to the nearest integer and clamps it to [0,255].
func clampToByte(v float64) byte {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}

	return byte(v + 0.5)
}

// RGBToYCbCr converts a 3-channel RGB image to YCbCr using the JFIF
// full-range coefficients. Cb and Cr are offset by 128.
func RGBToYCbCr(rgb *Image) (*Image, error) {
	if err := rgb.validate(); err != nil {
		return nil, err
	}
	if rgb.Space != ColorSpaceRGB || rgb.Channels != 3 {
		return nil, invalidArgf("RGBToYCbCr: expected 3-channel RGB image, got %d-channel %s", rgb.Channels, rgb.Space)
	}

	out := &Image{
		Width:    rgb.Width,
		Height:   rgb.Height,
		Channels: 3,
		Space:    ColorSpaceYCbCr,
		Pix:      make([]byte, len(rgb.Pix)),
	}

	for i := 0; i < len(rgb.Pix); i += 3 {
		r := float64(rgb.Pix[i])
		g := float64(rgb.Pix[i+1])
		b := float64(rgb.Pix[i+2])

		out.Pix[i] = clampToByte(0.299*r + 0.587*g + 0.114*b)
		out.Pix[i+1] = clampToByte(-0.168736*r - 0.331264*g + 0.5*b + 128)
		out.Pix[i+2] = clampToByte(0.5*r - 0.418688*g - 0.081312*b + 128)
	}

	return out, nil
}

// YCbCrToRGB is the inverse of RGBToYCbCr. The forward encoding path does
// not use it; it exists for round-trip verification.
func YCbCrToRGB(ycc *Image) (*Image, error) {
	if err := ycc.validate(); err != nil {
		return nil, err
	}
	if ycc.Space != ColorSpaceYCbCr || ycc.Channels != 3 {
		return nil, invalidArgf("YCbCrToRGB: expected 3-channel YCbCr image, got %d-channel %s", ycc.Channels, ycc.Space)
	}

	out := &Image{
		Width:    ycc.Width,
		Height:   ycc.Height,
		Channels: 3,
		Space:    ColorSpaceRGB,
		Pix:      make([]byte, len(ycc.Pix)),
	}

	for i := 0; i < len(ycc.Pix); i += 3 {
		y := float64(ycc.Pix[i])
		cb := float64(ycc.Pix[i+1]) - 128
		cr := float64(ycc.Pix[i+2]) - 128

		out.Pix[i] = clampToByte(y + 1.402*cr)
		out.Pix[i+1] = clampToByte(y - 0.344136*cb - 0.714136*cr)
		out.Pix[i+2] = clampToByte(y + 1.772*cb)
	}

	return out, nil
}

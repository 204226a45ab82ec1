package jpegenc

import "testing"

func singlePixelRGB(r, g, b byte) *Image {
	im, _ := NewImage(1, 1, 3, ColorSpaceRGB)
	im.Pix[0], im.Pix[1], im.Pix[2] = r, g, b

	return im
}

func TestRGBToYCbCrKnownValues(t *testing.T) {
	tests := []struct {
		name    string
		r, g, b byte
		y       byte
		cb, cr  byte
	}{
		{"black", 0, 0, 0, 0, 128, 128},
		{"white", 255, 255, 255, 255, 128, 128},
		{"mid gray", 128, 128, 128, 128, 128, 128},
		{"pure red", 255, 0, 0, 76, 85, 255},
		{"pure green", 0, 255, 0, 150, 44, 21},
		{"pure blue", 0, 0, 255, 29, 255, 107},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			out, err := RGBToYCbCr(singlePixelRGB(tc.r, tc.g, tc.b))
			if err != nil {
				t.Fatal(err)
			}

			if out.Pix[0] != tc.y || out.Pix[1] != tc.cb || out.Pix[2] != tc.cr {
				t.Errorf("got Y=%d Cb=%d Cr=%d, want Y=%d Cb=%d Cr=%d",
					out.Pix[0], out.Pix[1], out.Pix[2], tc.y, tc.cb, tc.cr)
			}
			if out.Space != ColorSpaceYCbCr {
				t.Errorf("Space = %s, want ycbcr", out.Space)
			}
		})
	}
}

func TestColorRoundTrip(t *testing.T) {
	im, err := NewImage(16, 16, 3, ColorSpaceRGB)
	if err != nil {
		t.Fatal(err)
	}
	for i := range im.Pix {
		im.Pix[i] = byte(i*7 + 31)
	}

	ycc, err := RGBToYCbCr(im)
	if err != nil {
		t.Fatal(err)
	}
	back, err := YCbCrToRGB(ycc)
	if err != nil {
		t.Fatal(err)
	}

	// Each direction rounds to a byte, so allow small drift.
	for i := range im.Pix {
		d := int(back.Pix[i]) - int(im.Pix[i])
		if d < -3 || d > 3 {
			t.Fatalf("channel %d: round trip %d -> %d", i, im.Pix[i], back.Pix[i])
		}
	}
}

func TestRGBToYCbCrRejectsGray(t *testing.T) {
	gray, err := NewImage(4, 4, 1, ColorSpaceGray)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := RGBToYCbCr(gray); err == nil {
		t.Fatal("expected error for single-channel input")
	}
}

func TestClampToByte(t *testing.T) {
	tests := []struct {
		in   float64
		want byte
	}{
		{-10, 0},
		{-0.1, 0},
		{0, 0},
		{127.4, 127},
		{127.5, 128},
		{255, 255},
		{255.6, 255},
		{300, 255},
	}

	for _, tc := range tests {
		if got := clampToByte(tc.in); got != tc.want {
			t.Errorf("clampToByte(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

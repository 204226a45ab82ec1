package jpegenc

import "testing"

func TestDownsample420Averaging(t *testing.T) {
	im, err := NewImage(16, 16, 1, ColorSpaceGray)
	if err != nil {
		t.Fatal(err)
	}
	// First 2x2 group: 10, 20, 30, 40 -> (100+2)/4 = 25.
	im.Set(0, 0, 0, 10)
	im.Set(1, 0, 0, 20)
	im.Set(0, 1, 0, 30)
	im.Set(1, 1, 0, 40)
	// Second group exercises the rounding term: 1+1+1+0 = 3 -> (3+2)/4 = 1.
	im.Set(2, 0, 0, 1)
	im.Set(3, 0, 0, 1)
	im.Set(2, 1, 0, 1)

	out, err := Downsample420(im)
	if err != nil {
		t.Fatal(err)
	}

	if out.Width != 8 || out.Height != 8 {
		t.Fatalf("output is %dx%d, want 8x8", out.Width, out.Height)
	}
	if got := out.At(0, 0, 0); got != 25 {
		t.Errorf("(0,0) = %d, want 25", got)
	}
	if got := out.At(1, 0, 0); got != 1 {
		t.Errorf("(1,0) = %d, want 1", got)
	}
}

func TestDownsample420Uniform(t *testing.T) {
	im, err := NewImage(32, 16, 1, ColorSpaceGray)
	if err != nil {
		t.Fatal(err)
	}
	for i := range im.Pix {
		im.Pix[i] = 200
	}

	out, err := Downsample420(im)
	if err != nil {
		t.Fatal(err)
	}

	for i, v := range out.Pix {
		if v != 200 {
			t.Fatalf("pixel %d = %d, want 200", i, v)
		}
	}
}

func TestDownsample420RejectsUnaligned(t *testing.T) {
	im, err := NewImage(8, 8, 1, ColorSpaceGray)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := Downsample420(im); err == nil {
		t.Fatal("expected error for dimensions not aligned to 16")
	}
}

package jpegenc

import (
	"errors"
	"testing"
)

func TestNewImageValidation(t *testing.T) {
	tests := []struct {
		name     string
		w, h, ch int
	}{
		{"zero width", 0, 4, 1},
		{"negative height", 4, -1, 1},
		{"zero channels", 4, 4, 0},
		{"too many channels", 4, 4, 5},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := NewImage(tc.w, tc.h, tc.ch, ColorSpaceGray)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Fatalf("got %v, want %v", err, ErrInvalidArgument)
			}
		})
	}
}

func TestImageBufferInvariant(t *testing.T) {
	im := &Image{Width: 4, Height: 4, Channels: 3, Pix: make([]byte, 10)}

	if err := im.validate(); !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("got %v, want %v", err, ErrInvalidArgument)
	}
}

func TestImagePlane(t *testing.T) {
	im, err := NewImage(2, 2, 3, ColorSpaceYCbCr)
	if err != nil {
		t.Fatal(err)
	}
	im.Set(0, 0, 1, 50)
	im.Set(1, 1, 1, 60)

	plane, err := im.Plane(1)
	if err != nil {
		t.Fatal(err)
	}

	if plane.Channels != 1 {
		t.Fatalf("plane has %d channels, want 1", plane.Channels)
	}
	if plane.At(0, 0, 0) != 50 || plane.At(1, 1, 0) != 60 {
		t.Errorf("plane samples %d, %d, want 50, 60", plane.At(0, 0, 0), plane.At(1, 1, 0))
	}

	if _, err := im.Plane(3); err == nil {
		t.Error("expected error for out-of-range channel")
	}
}

func TestImageClone(t *testing.T) {
	im, err := NewImage(3, 3, 1, ColorSpaceGray)
	if err != nil {
		t.Fatal(err)
	}
	im.Pix[4] = 9

	cp := im.Clone()
	cp.Pix[4] = 42

	if im.Pix[4] != 9 {
		t.Error("Clone shares the pixel buffer")
	}
}

func TestColorSpaceString(t *testing.T) {
	for cs, want := range map[ColorSpace]string{
		ColorSpaceGray:  "gray",
		ColorSpaceRGB:   "rgb",
		ColorSpaceYCbCr: "ycbcr",
		ColorSpace(99):  "unknown",
	} {
		if got := cs.String(); got != want {
			t.Errorf("ColorSpace(%d).String() = %q, want %q", int(cs), got, want)
		}
	}
}

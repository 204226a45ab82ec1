package jpegenc

// ColorSpace identifies the interpretation of an Image's channels.
type ColorSpace int

const (
	ColorSpaceGray ColorSpace = iota
	ColorSpaceRGB
	ColorSpaceYCbCr
)

func (c ColorSpace) String() string {
	switch c {
	case ColorSpaceGray:
		return "gray"
	case ColorSpaceRGB:
		return "rgb"
	case ColorSpaceYCbCr:
		return "ycbcr"
	default:
		return "unknown"
	}
}

// Image is an interleaved 8-bit pixel buffer. Pix holds
// Width*Height*Channels bytes, rows top to bottom, channels
// interleaved per pixel. The pipeline treats it as read-only.
type Image struct {
	Width    int
	Height   int
	Channels int
	Space    ColorSpace
	Pix      []byte
}

// NewImage allocates a zeroed image of the given geometry.
func NewImage(width, height, channels int, space ColorSpace) (*Image, error) {
	if width <= 0 || height <= 0 {
		return nil, invalidArgf("image dimensions must be positive, got %dx%d", width, height)
	}
	if channels < 1 || channels > 4 {
		return nil, invalidArgf("channel count %d out of range", channels)
	}

	return &Image{
		Width:    width,
		Height:   height,
		Channels: channels,
		Space:    space,
		Pix:      make([]byte, width*height*channels),
	}, nil
}

// validate checks the buffer-length invariant.
func (im *Image) validate() error {
	if im == nil {
		return invalidArgf("nil image")
	}
	if im.Width <= 0 || im.Height <= 0 {
		return invalidArgf("image dimensions must be positive, got %dx%d", im.Width, im.Height)
	}
	if want := im.Width * im.Height * im.Channels; len(im.Pix) != want {
		return invalidArgf("pixel buffer has %d bytes, want %d", len(im.Pix), want)
	}

	return nil
}

// At returns the sample of channel c at (x, y). Bounds are not checked.
func (im *Image) At(x, y, c int) byte {
	return im.Pix[(y*im.Width+x)*im.Channels+c]
}

// Set stores the sample of channel c at (x, y). Bounds are not checked.
func (im *Image) Set(x, y, c int, v byte) {
	im.Pix[(y*im.Width+x)*im.Channels+c] = v
}

// Plane extracts channel c into a new single-channel grayscale image.
func (im *Image) Plane(c int) (*Image, error) {
	if err := im.validate(); err != nil {
		return nil, err
	}
	if c < 0 || c >= im.Channels {
		return nil, invalidArgf("channel %d out of range [0,%d)", c, im.Channels)
	}

	out := &Image{
		Width:    im.Width,
		Height:   im.Height,
		Channels: 1,
		Space:    ColorSpaceGray,
		Pix:      make([]byte, im.Width*im.Height),
	}
	for i := range out.Pix {
		out.Pix[i] = im.Pix[i*im.Channels+c]
	}

	return out, nil
}

// Clone returns a deep copy.
func (im *Image) Clone() *Image {
	out := *im
	out.Pix = append([]byte(nil), im.Pix...)

	return &out
}

package jpegenc

import "github.com/vearutop/jpegenc/internal/jpegx"

// BlockElem restricts the element types a Block can hold: float32 while
// coefficients are in the transform domain, int16 after quantization.
type BlockElem interface {
	~float32 | ~int16
}

// Block is a fixed 8x8 grid of transform coefficients or samples, stored
// in natural (row-major) order.
type Block[T BlockElem] [jpegx.BlockSize]T

// At returns the element at column x, row y.
func (b *Block[T]) At(x, y int) T {
	return b[y*jpegx.BlockDim+x]
}

// SetAt stores v at column x, row y.
func (b *Block[T]) SetAt(x, y int, v T) {
	b[y*jpegx.BlockDim+x] = v
}

// levelShift is subtracted from every sample before the transform so
// that mid-gray 128 maps to zero.
const levelShift = 128

// ExtractBlocks tiles a single-channel plane into 8x8 blocks in
// row-major block-grid order, converting samples to float with the
// level shift applied. The plane dimensions must be exact multiples
// of 8 (use PadToMultiple first).
func ExtractBlocks(plane *Image) ([]Block[float32], error) {
	if err := plane.validate(); err != nil {
		return nil, err
	}
	if plane.Channels != 1 {
		return nil, invalidArgf("ExtractBlocks: expected single-channel plane, got %d channels", plane.Channels)
	}
	if plane.Width%jpegx.BlockDim != 0 || plane.Height%jpegx.BlockDim != 0 {
		return nil, invalidArgf("ExtractBlocks: plane dimensions %dx%d are not multiples of %d",
			plane.Width, plane.Height, jpegx.BlockDim)
	}

	bw := plane.Width / jpegx.BlockDim
	bh := plane.Height / jpegx.BlockDim
	blocks := make([]Block[float32], bw*bh)

	for by := 0; by < bh; by++ {
		for bx := 0; bx < bw; bx++ {
			b := &blocks[by*bw+bx]
			for y := 0; y < jpegx.BlockDim; y++ {
				row := (by*jpegx.BlockDim + y) * plane.Width
				for x := 0; x < jpegx.BlockDim; x++ {
					px := plane.Pix[row+bx*jpegx.BlockDim+x]
					b[y*jpegx.BlockDim+x] = float32(int(px) - levelShift)
				}
			}
		}
	}

	return blocks, nil
}

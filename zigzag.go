package jpegenc

import "github.com/vearutop/jpegenc/internal/jpegx"

// ToZigZag reorders a quantized block from natural (row-major) order to
// zig-zag scan order. Scan position 0 is the DC coefficient, position 63
// the bottom-right corner.
func ToZigZag(b *Block[int16]) [jpegx.BlockSize]int16 {
	var zz [jpegx.BlockSize]int16
	for i := range zz {
		zz[i] = b[jpegx.Unzig[i]]
	}

	return zz
}

// FromZigZag is the exact inverse of ToZigZag.
func FromZigZag(zz *[jpegx.BlockSize]int16) Block[int16] {
	var b Block[int16]
	for i, v := range zz {
		b[jpegx.Unzig[i]] = v
	}

	return b
}

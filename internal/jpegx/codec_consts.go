// Package jpegx holds the fixed tables and constants of the baseline
// JPEG codec shared between the encoding pipeline and the stream scanner.
package jpegx

// Marker identifiers, without the leading 0xFF.
const (
	MarkerStart = 0xFF
	MarkerSOI   = 0xD8 // Start Of Image.
	MarkerEOI   = 0xD9 // End Of Image.
	MarkerSOS   = 0xDA // Start Of Scan.
	MarkerAPP0  = 0xE0 // JFIF application segment.
	MarkerSOF0  = 0xC0 // Start Of Frame (Baseline Sequential).
	MarkerDHT   = 0xC4 // Define Huffman Table.
	MarkerDQT   = 0xDB // Define Quantization Table.
)

// BlockDim is the side of a DCT block, BlockSize its element count.
const (
	BlockDim  = 8
	BlockSize = 64
)

// Unzig maps from the zig-zag ordering to the natural ordering.
var Unzig = [BlockSize]int{
	0, 1, 8, 16, 9, 2, 3, 10,
	17, 24, 32, 25, 18, 11, 4, 5,
	12, 19, 26, 33, 40, 48, 41, 34,
	27, 20, 13, 6, 7, 14, 21, 28,
	35, 42, 49, 56, 57, 50, 43, 36,
	29, 22, 15, 23, 30, 37, 44, 51,
	58, 59, 52, 45, 38, 31, 39, 46,
	53, 60, 61, 54, 47, 55, 62, 63,
}

// Zigzag maps from the natural ordering to the zig-zag ordering.
// It is the inverse permutation of Unzig.
var Zigzag = func() [BlockSize]int {
	var z [BlockSize]int
	for i, n := range Unzig {
		z[n] = i
	}

	return z
}()

// SamplingFactor is a per-component horizontal/vertical sampling pair.
type SamplingFactor struct {
	H, V byte
}

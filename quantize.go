package jpegenc

import (
	"math"

	"github.com/vearutop/jpegenc/internal/jpegx"
)

// QuantTable is a scalar quantization table in natural (row-major)
// order. DQT segments serialize it in zig-zag order.
type QuantTable [jpegx.BlockSize]uint8

// DefaultQuality is the quality used when the caller does not set one.
const DefaultQuality = 75

// clampQuality brings a quality rating into [1,100].
func clampQuality(quality int) int {
	if quality < 1 {
		return 1
	}
	if quality > 100 {
		return 100
	}

	return quality
}

// qualityScale converts a quality rating to the libjpeg percentage
// scaling factor.
func qualityScale(quality int) int {
	quality = clampQuality(quality)
	if quality < 50 {
		return 5000 / quality
	}

	return 200 - 2*quality
}

func scaleQuantTable(base *[jpegx.BlockSize]byte, quality int) QuantTable {
	scale := qualityScale(quality)

	var t QuantTable
	for i, v := range base {
		x := (int(v)*scale + 50) / 100
		if x < 1 {
			x = 1
		} else if x > 255 {
			x = 255
		}
		t[i] = uint8(x)
	}

	return t
}

// LumaQuantTable returns the Annex K.1 luminance table scaled for the
// given quality. Quality outside [1,100] is clamped into range.
func LumaQuantTable(quality int) QuantTable {
	return scaleQuantTable(&jpegx.BaseQuantLuma, quality)
}

// ChromaQuantTable returns the Annex K.1 chrominance table scaled for
// the given quality. Quality outside [1,100] is clamped into range.
func ChromaQuantTable(quality int) QuantTable {
	return scaleQuantTable(&jpegx.BaseQuantChroma, quality)
}

// Quantize divides each transform coefficient by the matching table
// entry, rounding to the nearest integer with floor(x+0.5).
func Quantize(b *Block[float32], t *QuantTable) Block[int16] {
	var out Block[int16]
	for i := range b {
		out[i] = int16(math.Floor(float64(b[i])/float64(t[i]) + 0.5))
	}

	return out
}

// Dequantize is the elementwise inverse multiplication. Used only for
// round-trip verification in this scope.
func Dequantize(b *Block[int16], t *QuantTable) Block[float32] {
	var out Block[float32]
	for i := range b {
		out[i] = float32(int(b[i]) * int(t[i]))
	}

	return out
}

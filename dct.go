package jpegenc

import (
	"math"

	"github.com/vearutop/jpegenc/internal/jpegx"
)

// Orthonormal 2D DCT-II over 8x8 blocks:
//
//	C(u,v) = 1/4 * α(u) α(v) Σx Σy f(x,y) cos((2x+1)uπ/16) cos((2y+1)vπ/16)
//
// with α(0)=1/√2, α(k)=1 otherwise. Under this scaling a constant block
// of value c transforms to DC = 8c with all AC coefficients zero, which
// is the convention the standard Annex K quantization tables assume.

const dctScale = 0.25

var (
	// dctCos[x][u] = cos((2x+1)uπ/16).
	dctCos = func() [jpegx.BlockDim][jpegx.BlockDim]float64 {
		var t [jpegx.BlockDim][jpegx.BlockDim]float64
		for x := 0; x < jpegx.BlockDim; x++ {
			for u := 0; u < jpegx.BlockDim; u++ {
				t[x][u] = math.Cos((2*float64(x) + 1) * float64(u) * math.Pi / 16)
			}
		}

		return t
	}()

	dctAlpha = func() [jpegx.BlockDim]float64 {
		var a [jpegx.BlockDim]float64
		a[0] = 1 / math.Sqrt2
		for u := 1; u < jpegx.BlockDim; u++ {
			a[u] = 1
		}

		return a
	}()
)

// ForwardDCT applies the forward 8x8 DCT-II to a level-shifted sample
// block, returning frequency coefficients in natural order.
func ForwardDCT(in *Block[float32]) Block[float32] {
	// Separable: 1D transform over rows, then over columns.
	// Accumulation in float64 keeps the round-trip error well under
	// the 1e-3 tolerance.
	var tmp [jpegx.BlockDim][jpegx.BlockDim]float64

	for y := 0; y < jpegx.BlockDim; y++ {
		for u := 0; u < jpegx.BlockDim; u++ {
			sum := 0.0
			for x := 0; x < jpegx.BlockDim; x++ {
				sum += float64(in.At(x, y)) * dctCos[x][u]
			}
			tmp[y][u] = sum
		}
	}

	var res Block[float32]
	for v := 0; v < jpegx.BlockDim; v++ {
		for u := 0; u < jpegx.BlockDim; u++ {
			sum := 0.0
			for y := 0; y < jpegx.BlockDim; y++ {
				sum += tmp[y][u] * dctCos[y][v]
			}
			res.SetAt(u, v, float32(dctScale*dctAlpha[u]*dctAlpha[v]*sum))
		}
	}

	return res
}

// InverseDCT reconstructs a sample block from frequency coefficients.
// The forward encoding path does not need it; it exists for round-trip
// verification of the transform and quantizer.
func InverseDCT(in *Block[float32]) Block[float32] {
	var res Block[float32]

	for y := 0; y < jpegx.BlockDim; y++ {
		for x := 0; x < jpegx.BlockDim; x++ {
			sum := 0.0
			for v := 0; v < jpegx.BlockDim; v++ {
				for u := 0; u < jpegx.BlockDim; u++ {
					sum += dctAlpha[u] * dctAlpha[v] * float64(in.At(u, v)) *
						dctCos[x][u] * dctCos[y][v]
				}
			}
			res.SetAt(x, y, float32(dctScale*sum))
		}
	}

	return res
}

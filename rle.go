package jpegenc

import "github.com/vearutop/jpegenc/internal/jpegx"

// RLESymbol is a run-length symbol for AC coefficients: Run zero
// coefficients followed by Value. Two sentinels exist: EOB terminates a
// block whose remaining coefficients are all zero, ZRL stands for a run
// of 16 zeros.
type RLESymbol struct {
	Run   uint8
	Value int16
}

var (
	// EOB is the end-of-block sentinel, composite symbol 0x00.
	EOB = RLESymbol{Run: 0, Value: 0}
	// ZRL is the 16-zero-run sentinel, composite symbol 0xF0.
	ZRL = RLESymbol{Run: 15, Value: 0}
)

// IsEOB reports whether s is the end-of-block sentinel.
func (s RLESymbol) IsEOB() bool { return s.Run == 0 && s.Value == 0 }

// IsZRL reports whether s is the zero-run-length sentinel.
func (s RLESymbol) IsZRL() bool { return s.Run == 15 && s.Value == 0 }

// EncodeACRuns run-length encodes the AC coefficients (zig-zag positions
// 1..63) of a block. A block with no nonzero AC coefficient yields
// exactly one EOB. A trailing EOB is appended when zeros follow the last
// nonzero coefficient; a block whose position 63 is nonzero gets none.
func EncodeACRuns(zz *[jpegx.BlockSize]int16) []RLESymbol {
	last := 0
	for i := jpegx.BlockSize - 1; i >= 1; i-- {
		if zz[i] != 0 {
			last = i

			break
		}
	}

	if last == 0 {
		return []RLESymbol{EOB}
	}

	out := make([]RLESymbol, 0, 32)
	run := uint8(0)

	for i := 1; i <= last; i++ {
		if zz[i] == 0 {
			run++
			if run == 16 {
				out = append(out, ZRL)
				run = 0
			}

			continue
		}

		out = append(out, RLESymbol{Run: run, Value: zz[i]})
		run = 0
	}

	if last < jpegx.BlockSize-1 {
		out = append(out, EOB)
	}

	return out
}

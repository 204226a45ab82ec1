package jpegenc

import (
	"testing"

	"github.com/vearutop/jpegenc/internal/jpegx"
)

func TestQuantizeRoundTripIdentityTable(t *testing.T) {
	var ones QuantTable
	for i := range ones {
		ones[i] = 1
	}

	var in Block[float32]
	for i := range in {
		in[i] = float32(i - 32) // integer-valued coefficients
	}

	q := Quantize(&in, &ones)
	back := Dequantize(&q, &ones)

	for i := range in {
		if back[i] != in[i] {
			t.Fatalf("identity round trip at %d: %v -> %v", i, in[i], back[i])
		}
	}
}

func TestQuantizeZeroBlock(t *testing.T) {
	var zero Block[float32]

	for _, quality := range []int{1, 25, 50, 75, 100} {
		table := LumaQuantTable(quality)
		q := Quantize(&zero, &table)
		back := Dequantize(&q, &table)

		for i := range q {
			if q[i] != 0 || back[i] != 0 {
				t.Fatalf("quality %d: zero block produced %d / %v at %d", quality, q[i], back[i], i)
			}
		}
	}
}

func TestQuantizeRounding(t *testing.T) {
	table := QuantTable{}
	for i := range table {
		table[i] = 10
	}

	cases := []struct {
		in   float32
		want int16
	}{
		{0, 0},
		{4, 0},
		{5, 1},  // 0.5 rounds up
		{14, 1},
		{15, 2},
		{-4, 0},
		{-5, 0},  // floor(-0.5+0.5) = 0
		{-6, -1}, // floor(-0.6+0.5) = -1
		{-15, -1},
		{-16, -2},
	}

	for _, tc := range cases {
		var b Block[float32]
		b[0] = tc.in
		if got := Quantize(&b, &table)[0]; got != tc.want {
			t.Errorf("quantize %v / 10 = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestQuantTableScaling(t *testing.T) {
	t.Run("quality 50 is the base table", func(t *testing.T) {
		table := LumaQuantTable(50)
		for i, base := range jpegx.BaseQuantLuma {
			if table[i] != base {
				t.Fatalf("entry %d = %d, want base %d", i, table[i], base)
			}
		}
	})

	t.Run("quality 100 clamps to all ones", func(t *testing.T) {
		for _, table := range []QuantTable{LumaQuantTable(100), ChromaQuantTable(100)} {
			for i, v := range table {
				if v != 1 {
					t.Fatalf("entry %d = %d, want 1", i, v)
				}
			}
		}
	})

	t.Run("entries stay in [1,255]", func(t *testing.T) {
		for quality := 1; quality <= 100; quality++ {
			for _, table := range []QuantTable{LumaQuantTable(quality), ChromaQuantTable(quality)} {
				for i, v := range table {
					if v < 1 {
						t.Fatalf("quality %d entry %d = %d", quality, i, v)
					}
				}
			}
		}
	})

	t.Run("out-of-range quality is clamped", func(t *testing.T) {
		if LumaQuantTable(-5) != LumaQuantTable(1) {
			t.Error("quality below range should clamp to 1")
		}
		if LumaQuantTable(1000) != LumaQuantTable(100) {
			t.Error("quality above range should clamp to 100")
		}
	})

	t.Run("lower quality divides harder", func(t *testing.T) {
		lo, hi := LumaQuantTable(10), LumaQuantTable(90)
		for i := range lo {
			if lo[i] < hi[i] {
				t.Fatalf("entry %d: quality 10 table %d < quality 90 table %d", i, lo[i], hi[i])
			}
		}
	})
}

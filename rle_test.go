package jpegenc

import "testing"

func TestEncodeACRuns(t *testing.T) {
	type placed struct {
		pos int
		val int16
	}

	tests := []struct {
		name   string
		coeffs []placed
		want   []RLESymbol
	}{
		{
			name:   "all zero",
			coeffs: nil,
			want:   []RLESymbol{EOB},
		},
		{
			name:   "two values with gap",
			coeffs: []placed{{1, 5}, {5, 3}},
			want:   []RLESymbol{{0, 5}, {3, 3}, EOB},
		},
		{
			name:   "sixteen zeros before value",
			coeffs: []placed{{17, 9}},
			want:   []RLESymbol{ZRL, {0, 9}, EOB},
		},
		{
			name:   "thirty-two zeros before value",
			coeffs: []placed{{33, -2}},
			want:   []RLESymbol{ZRL, ZRL, {0, -2}, EOB},
		},
		{
			name:   "value at final position omits EOB",
			coeffs: []placed{{1, 1}, {63, 4}},
			want:   []RLESymbol{{0, 1}, ZRL, ZRL, ZRL, {13, 4}},
		},
		{
			name:   "dense leading coefficients",
			coeffs: []placed{{1, -1}, {2, 2}, {3, -3}},
			want:   []RLESymbol{{0, -1}, {0, 2}, {0, -3}, EOB},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			var zz [64]int16
			for _, p := range tc.coeffs {
				zz[p.pos] = p.val
			}

			got := EncodeACRuns(&zz)
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Fatalf("symbol %d: got %v, want %v", i, got, tc.want)
				}
			}
		})
	}
}

func TestEncodeACRunsIgnoresDC(t *testing.T) {
	var zz [64]int16
	zz[0] = 1000 // DC is encoded separately and must not leak into the runs

	got := EncodeACRuns(&zz)
	if len(got) != 1 || !got[0].IsEOB() {
		t.Fatalf("got %v, want single EOB", got)
	}
}

func TestRLESymbolPredicates(t *testing.T) {
	if !EOB.IsEOB() || EOB.IsZRL() {
		t.Error("EOB misclassified")
	}
	if !ZRL.IsZRL() || ZRL.IsEOB() {
		t.Error("ZRL misclassified")
	}
	if (RLESymbol{Run: 0, Value: 3}).IsEOB() {
		t.Error("nonzero value classified as EOB")
	}
}

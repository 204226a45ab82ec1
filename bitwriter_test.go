package jpegenc

import (
	"bytes"
	"testing"
)

func TestBitWriterWholeByte(t *testing.T) {
	bw := NewBitWriter()
	bw.WriteBits(0xAA, 8)
	bw.FlushToByte()

	if got := bw.Buffer(); !bytes.Equal(got, []byte{0xAA}) {
		t.Fatalf("got % X, want AA", got)
	}
	if bw.BitCount() != 8 {
		t.Errorf("BitCount = %d, want 8", bw.BitCount())
	}
}

func TestBitWriterCrossBytePacking(t *testing.T) {
	bw := NewBitWriter()
	bw.WriteBits(0b11010, 5)
	bw.WriteBits(0b0101010, 7)
	bw.FlushToByte()

	// 11010 010 | 1010 then four padding 1-bits.
	if got := bw.Buffer(); !bytes.Equal(got, []byte{0xD2, 0xAF}) {
		t.Fatalf("got % X, want D2 AF", got)
	}
	if bw.BitCount() != 12 {
		t.Errorf("BitCount = %d, want 12", bw.BitCount())
	}
}

func TestBitWriterByteStuffing(t *testing.T) {
	bw := NewBitWriter()
	bw.WriteBits(0xFF, 8)
	bw.FlushToByte()

	if got := bw.Buffer(); !bytes.Equal(got, []byte{0xFF, 0x00}) {
		t.Fatalf("got % X, want FF 00", got)
	}
}

func TestBitWriterStuffingFromPadding(t *testing.T) {
	// Seven 1-bits plus flush padding completes 0xFF, which must be stuffed.
	bw := NewBitWriter()
	bw.WriteBits(0x7F, 7)
	bw.FlushToByte()

	if got := bw.Buffer(); !bytes.Equal(got, []byte{0xFF, 0x00}) {
		t.Fatalf("got % X, want FF 00", got)
	}
}

func TestBitWriterFlushIdempotent(t *testing.T) {
	bw := NewBitWriter()
	bw.WriteBits(0x5, 3)
	bw.FlushToByte()
	bw.FlushToByte()

	if got := bw.Buffer(); len(got) != 1 {
		t.Fatalf("got % X, want a single byte", got)
	}
}

func TestBitWriterWriteAfterFlushPanics(t *testing.T) {
	bw := NewBitWriter()
	bw.WriteBits(1, 1)
	bw.FlushToByte()

	defer func() {
		if recover() == nil {
			t.Fatal("WriteBits after FlushToByte did not panic")
		}
	}()
	bw.WriteBits(1, 1)
}

func TestBitWriterRejectsOversizedWrite(t *testing.T) {
	bw := NewBitWriter()

	defer func() {
		if recover() == nil {
			t.Fatal("WriteBits with length > 16 did not panic")
		}
	}()
	bw.WriteBits(0, 17)
}

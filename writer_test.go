package jpegenc

import (
	"bytes"
	"testing"

	"github.com/vearutop/jpegenc/internal/jpegx"
)

func grayFrameParams() frameParams {
	return frameParams{
		width:     16,
		height:    16,
		grayscale: true,
		quant:     []QuantTable{LumaQuantTable(DefaultQuality)},
		huffman: []jpegx.HuffmanSpec{
			jpegx.StdHuffmanSpecs[jpegx.HuffLumaDC],
			jpegx.StdHuffmanSpecs[jpegx.HuffLumaAC],
		},
	}
}

func TestBitstreamWriterStateMachine(t *testing.T) {
	w := newBitstreamWriter()

	if err := w.writeScanData([]byte{0x12}); err == nil {
		t.Error("scan data accepted before header")
	}
	if _, err := w.terminate(); err == nil {
		t.Error("terminate accepted before header")
	}

	if err := w.writeHeader(grayFrameParams()); err != nil {
		t.Fatal(err)
	}
	if err := w.writeHeader(grayFrameParams()); err == nil {
		t.Error("second header accepted")
	}

	if err := w.writeScanData([]byte{0x12, 0x34}); err != nil {
		t.Fatal(err)
	}

	data, err := w.terminate()
	if err != nil {
		t.Fatal(err)
	}
	if _, err := w.terminate(); err == nil {
		t.Error("second terminate accepted")
	}
	if err := w.writeScanData([]byte{0x56}); err == nil {
		t.Error("scan data accepted after terminate")
	}

	if !bytes.HasSuffix(data, []byte{0x12, 0x34, 0xFF, 0xD9}) {
		t.Errorf("stream tail % X, want scan data then EOI", data[len(data)-4:])
	}
}

func TestBitstreamWriterValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*frameParams)
	}{
		{"zero width", func(p *frameParams) { p.width = 0 }},
		{"oversized height", func(p *frameParams) { p.height = 1 << 16 }},
		{"missing huffman tables", func(p *frameParams) { p.huffman = p.huffman[:1] }},
		{"color table count on gray frame", func(p *frameParams) {
			p.quant = append(p.quant, ChromaQuantTable(DefaultQuality))
		}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := grayFrameParams()
			tc.mutate(&p)

			if err := newBitstreamWriter().writeHeader(p); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestBitstreamWriterAPP0(t *testing.T) {
	w := newBitstreamWriter()
	if err := w.writeHeader(grayFrameParams()); err != nil {
		t.Fatal(err)
	}

	header := w.buf.Bytes()

	// APP0 directly follows SOI and carries the JFIF identifier.
	if header[2] != 0xFF || header[3] != 0xE0 {
		t.Fatalf("bytes after SOI are % X, want APP0 marker", header[2:4])
	}
	if !bytes.Equal(header[6:11], []byte("JFIF\x00")) {
		t.Errorf("APP0 identifier % X, want JFIF", header[6:11])
	}
}

func TestBitstreamWriterDQTZigZagOrder(t *testing.T) {
	w := newBitstreamWriter()
	p := grayFrameParams()
	if err := w.writeHeader(p); err != nil {
		t.Fatal(err)
	}

	sum, err := ScanStream(append(w.buf.Bytes(), 0xFF, 0xD9))
	if err != nil {
		t.Fatal(err)
	}

	// The summary un-zigzags, so a match proves the payload was
	// serialized in zig-zag order.
	for i, v := range p.quant[0] {
		if sum.Quant[0][i] != v {
			t.Fatalf("quant entry %d = %d, want %d", i, sum.Quant[0][i], v)
		}
	}
}

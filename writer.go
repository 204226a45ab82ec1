package jpegenc

import (
	"bytes"

	"github.com/vearutop/jpegenc/internal/jpegx"
)

// bitstreamWriter assembles the marker-delimited JFIF container. It is a
// one-shot state machine: header segments, then entropy-coded scan data,
// then the end marker. A failed or terminated writer never exposes a
// partial buffer.
type bitstreamWriter struct {
	buf   bytes.Buffer
	state writerState
}

type writerState int

const (
	stateHeader writerState = iota
	stateScan
	stateTerminated
)

// frameParams describes the single frame of a baseline stream.
type frameParams struct {
	width     int
	height    int
	grayscale bool
	quant     []QuantTable       // luma, then chroma for color
	huffman   []jpegx.HuffmanSpec // DHT emission order
}

func newBitstreamWriter() *bitstreamWriter {
	return &bitstreamWriter{}
}

// writeHeader emits SOI, the JFIF APP0 segment, one DQT segment per
// quantization table (values in zig-zag order), SOF0, one DHT segment
// per Huffman table and the SOS header, then transitions to the scan
// state.
func (w *bitstreamWriter) writeHeader(p frameParams) error {
	if w.state != stateHeader {
		return invalidArgf("bitstream writer: header already written")
	}
	if p.width <= 0 || p.height <= 0 || p.width >= 1<<16 || p.height >= 1<<16 {
		return invalidArgf("bitstream writer: frame dimensions %dx%d out of range", p.width, p.height)
	}

	wantQuant, wantHuff := 2, 4
	if p.grayscale {
		wantQuant, wantHuff = 1, 2
	}
	if len(p.quant) != wantQuant || len(p.huffman) != wantHuff {
		return invalidArgf("bitstream writer: got %d quant and %d Huffman tables, want %d and %d",
			len(p.quant), len(p.huffman), wantQuant, wantHuff)
	}

	w.buf.Write([]byte{jpegx.MarkerStart, jpegx.MarkerSOI})

	w.writeAPP0()

	for i := range p.quant {
		w.writeDQT(byte(i), &p.quant[i])
	}

	w.writeSOF0(p)
	w.writeDHT(p.huffman)
	w.writeSOS(p.grayscale)

	w.state = stateScan

	return nil
}

// writeScanData appends entropy-coded, byte-stuffed scan bytes.
func (w *bitstreamWriter) writeScanData(data []byte) error {
	if w.state != stateScan {
		return invalidArgf("bitstream writer: scan data outside scan state")
	}
	w.buf.Write(data)

	return nil
}

// terminate appends EOI and returns the finished stream. The writer
// cannot be reused afterwards.
func (w *bitstreamWriter) terminate() ([]byte, error) {
	if w.state != stateScan {
		return nil, invalidArgf("bitstream writer: terminate outside scan state")
	}
	w.buf.Write([]byte{jpegx.MarkerStart, jpegx.MarkerEOI})
	w.state = stateTerminated

	return w.buf.Bytes(), nil
}

func (w *bitstreamWriter) writeSegment(marker byte, payload []byte) {
	length := len(payload) + 2
	w.buf.Write([]byte{jpegx.MarkerStart, marker, byte(length >> 8), byte(length)})
	w.buf.Write(payload)
}

// writeAPP0 emits the JFIF identification segment: version 1.1, aspect
// ratio density 1:1, no thumbnail.
func (w *bitstreamWriter) writeAPP0() {
	w.writeSegment(jpegx.MarkerAPP0, []byte{
		'J', 'F', 'I', 'F', 0x00,
		0x01, 0x01, // version
		0x00,       // density units: aspect ratio only
		0x00, 0x01, // X density
		0x00, 0x01, // Y density
		0x00, 0x00, // no thumbnail
	})
}

func (w *bitstreamWriter) writeDQT(id byte, t *QuantTable) {
	payload := make([]byte, 1+jpegx.BlockSize)
	payload[0] = id // 8-bit precision, table id in low nibble
	for i := 0; i < jpegx.BlockSize; i++ {
		payload[1+i] = t[jpegx.Unzig[i]]
	}
	w.writeSegment(jpegx.MarkerDQT, payload)
}

func (w *bitstreamWriter) writeSOF0(p frameParams) {
	n := 3
	if p.grayscale {
		n = 1
	}

	payload := make([]byte, 0, 6+3*n)
	payload = append(payload,
		8, // sample precision
		byte(p.height>>8), byte(p.height),
		byte(p.width>>8), byte(p.width),
		byte(n),
	)
	if p.grayscale {
		payload = append(payload, 1, 0x11, 0x00)
	} else {
		// Y sampled 2x2 against 1x1 chroma: 4:2:0.
		payload = append(payload,
			1, 0x22, 0x00,
			2, 0x11, 0x01,
			3, 0x11, 0x01,
		)
	}
	w.writeSegment(jpegx.MarkerSOF0, payload)
}

// dhtClassID holds the Tc/Th byte per table in emission order:
// DC luma, AC luma, DC chroma, AC chroma.
var dhtClassID = [jpegx.NHuffTables]byte{0x00, 0x10, 0x01, 0x11}

func (w *bitstreamWriter) writeDHT(specs []jpegx.HuffmanSpec) {
	for i, s := range specs {
		payload := make([]byte, 0, 17+len(s.Value))
		payload = append(payload, dhtClassID[i])
		payload = append(payload, s.Count[:]...)
		payload = append(payload, s.Value...)
		w.writeSegment(jpegx.MarkerDHT, payload)
	}
}

func (w *bitstreamWriter) writeSOS(grayscale bool) {
	var payload []byte
	if grayscale {
		payload = []byte{1, 1, 0x00, 0x00, 0x3F, 0x00}
	} else {
		payload = []byte{3, 1, 0x00, 2, 0x11, 3, 0x11, 0x00, 0x3F, 0x00}
	}
	w.writeSegment(jpegx.MarkerSOS, payload)
}

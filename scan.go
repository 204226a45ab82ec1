package jpegenc

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/vearutop/jpegenc/internal/jpegx"
)

// StreamSummary is the segment inventory of a baseline JPEG stream,
// produced by walking the marker structure. The analyzer uses it for
// marker-overhead statistics and conformance tests use it to check the
// assembled container.
type StreamSummary struct {
	Width      int
	Height     int
	Components int

	DQTSegments int
	DHTSegments int
	SOFSegments int
	SOSSegments int

	// MarkerBytes counts everything outside the entropy-coded data:
	// SOI, all header segments and EOI.
	MarkerBytes int
	// ScanBytes counts the entropy-coded data between SOS and EOI.
	ScanBytes int

	HasEOI bool

	Quant    [2][jpegx.BlockSize]byte // in natural order, as parsed back from zig-zag
	Huffman  []jpegx.HuffmanSpec
	Sampling [3]jpegx.SamplingFactor
}

// ScanStream walks the marker structure of a baseline JPEG bitstream.
// Entropy-coded data is skipped using the stuffing convention; the scan
// stops at EOI.
func ScanStream(data []byte) (*StreamSummary, error) {
	if len(data) < 4 || data[0] != jpegx.MarkerStart || data[1] != jpegx.MarkerSOI {
		return nil, errors.New("not a JPEG stream: missing SOI")
	}

	s := &StreamSummary{MarkerBytes: 2}
	pos := 2

	for pos+1 < len(data) {
		if data[pos] != jpegx.MarkerStart {
			return nil, fmt.Errorf("expected marker at offset %d", pos)
		}
		for pos < len(data) && data[pos] == jpegx.MarkerStart {
			pos++
		}
		if pos >= len(data) {
			break
		}

		marker := data[pos]
		pos++

		switch marker {
		case jpegx.MarkerEOI:
			s.HasEOI = true
			s.MarkerBytes += 2

			return s, nil
		case jpegx.MarkerSOS:
			segLen, err := segmentLength(data, pos)
			if err != nil {
				return nil, err
			}
			s.SOSSegments++
			s.MarkerBytes += 2 + segLen
			pos += segLen

			n, err := skipEntropyData(data, pos)
			if err != nil {
				return nil, err
			}
			s.ScanBytes += n
			pos += n

			continue
		}

		segLen, err := segmentLength(data, pos)
		if err != nil {
			return nil, err
		}
		seg := data[pos+2 : pos+segLen]

		switch marker {
		case jpegx.MarkerDQT:
			s.DQTSegments++
			if err := s.parseDQT(seg); err != nil {
				return nil, err
			}
		case jpegx.MarkerDHT:
			s.DHTSegments++
			if err := s.parseDHT(seg); err != nil {
				return nil, err
			}
		case jpegx.MarkerSOF0:
			s.SOFSegments++
			if err := s.parseSOF0(seg); err != nil {
				return nil, err
			}
		}

		s.MarkerBytes += 2 + segLen
		pos += segLen
	}

	return nil, errors.New("no EOI found")
}

func segmentLength(data []byte, pos int) (int, error) {
	if pos+1 >= len(data) {
		return 0, errors.New("truncated marker segment")
	}
	segLen := int(binary.BigEndian.Uint16(data[pos:]))
	if segLen < 2 || pos+segLen > len(data) {
		return 0, errors.New("invalid segment length")
	}

	return segLen, nil
}

// skipEntropyData advances over byte-stuffed scan data up to the next
// real marker, returning the number of bytes consumed.
func skipEntropyData(data []byte, pos int) (int, error) {
	start := pos
	for pos+1 < len(data) {
		if data[pos] != jpegx.MarkerStart {
			pos++

			continue
		}
		next := data[pos+1]
		if next == 0x00 { // stuffed 0xFF
			pos += 2

			continue
		}

		return pos - start, nil
	}

	return 0, errors.New("truncated scan data")
}

func (s *StreamSummary) parseDQT(seg []byte) error {
	pos := 0
	for pos < len(seg) {
		pq := seg[pos] >> 4
		tq := seg[pos] & 0x0F
		pos++
		if pq != 0 {
			return errors.New("unsupported 16-bit quant table")
		}
		if pos+jpegx.BlockSize > len(seg) {
			return errors.New("truncated DQT table")
		}
		if tq <= 1 {
			for i := 0; i < jpegx.BlockSize; i++ {
				s.Quant[tq][jpegx.Unzig[i]] = seg[pos+i]
			}
		}
		pos += jpegx.BlockSize
	}

	return nil
}

func (s *StreamSummary) parseDHT(seg []byte) error {
	pos := 0
	for pos < len(seg) {
		if pos+17 > len(seg) {
			return errors.New("truncated DHT")
		}
		pos++ // Tc/Th handled by emission order

		var count [16]byte
		copy(count[:], seg[pos:pos+16])
		pos += 16

		total := 0
		for _, c := range count {
			total += int(c)
		}
		if pos+total > len(seg) {
			return errors.New("truncated DHT values")
		}

		s.Huffman = append(s.Huffman, jpegx.HuffmanSpec{
			Count: count,
			Value: append([]byte(nil), seg[pos:pos+total]...),
		})
		pos += total
	}

	return nil
}

func (s *StreamSummary) parseSOF0(seg []byte) error {
	if len(seg) < 6 {
		return errors.New("truncated SOF0")
	}
	if seg[0] != 8 {
		return fmt.Errorf("unsupported sample precision %d", seg[0])
	}

	s.Height = int(binary.BigEndian.Uint16(seg[1:]))
	s.Width = int(binary.BigEndian.Uint16(seg[3:]))
	s.Components = int(seg[5])

	pos := 6
	for i := 0; i < s.Components && i < 3; i++ {
		if pos+3 > len(seg) {
			return errors.New("truncated SOF0 components")
		}
		samp := seg[pos+1]
		s.Sampling[i] = jpegx.SamplingFactor{H: samp >> 4, V: samp & 0x0F}
		pos += 3
	}

	return nil
}

package jpegenc

import (
	"fmt"

	"github.com/vearutop/jpegenc/internal/jpegx"
)

// huffmanCode is a canonical code assignment: Length bits of Code,
// emitted MSB first. Length 0 marks an undefined symbol.
type huffmanCode struct {
	code   uint16
	length uint8
}

// HuffmanTable maps 8-bit symbols to canonical variable-length codes
// built from a DHT-style bit-length histogram and symbol list. Tables
// are immutable once built and safe for concurrent use.
type HuffmanTable struct {
	codes [256]huffmanCode
}

// NewHuffmanTable assigns canonical codes: the first code of length 1 is
// zero, the first code of each longer length is the previous first code
// plus the previous count, shifted left by one; symbols of equal length
// get consecutive codes in list order.
func NewHuffmanTable(spec jpegx.HuffmanSpec) *HuffmanTable {
	t := &HuffmanTable{}

	code := uint16(0)
	k := 0
	for i := 0; i < len(spec.Count); i++ {
		length := uint8(i + 1)
		for j := byte(0); j < spec.Count[i]; j++ {
			t.codes[spec.Value[k]] = huffmanCode{code: code, length: length}
			code++
			k++
		}
		code <<= 1
	}

	return t
}

// CodeFor returns the code and bit length assigned to symbol. Asking
// for a symbol absent from the table is a usage error.
func (t *HuffmanTable) CodeFor(symbol byte) (uint16, uint8, error) {
	c := t.codes[symbol]
	if c.length == 0 {
		return 0, 0, invalidArgf("no Huffman code for symbol 0x%02X", symbol)
	}

	return c.code, c.length, nil
}

// bitCategory returns the number of bits needed to represent |v|,
// 0 for v == 0. This is the JPEG DC category / AC size.
func bitCategory(v int16) uint8 {
	m := v
	if m < 0 {
		m = -m
	}

	var cat uint8
	for m > 0 {
		m >>= 1
		cat++
	}

	return cat
}

// valueBits returns the cat low bits encoding v: the raw bits for
// positive v, v + 2^cat - 1 for negative v (one's-complement style).
func valueBits(v int16, cat uint8) uint32 {
	if v < 0 {
		v += int16(1)<<cat - 1
	}

	return uint32(uint16(v)) & (1<<cat - 1)
}

// entropyEncoder Huffman-codes one component class (luma or chroma)
// against its DC and AC tables.
type entropyEncoder struct {
	dc, ac *HuffmanTable
}

// encodeDC emits the code for the DC difference category followed by
// the category's value bits.
func (e entropyEncoder) encodeDC(diff int16, bw *BitWriter) error {
	cat := bitCategory(diff)

	code, length, err := e.dc.CodeFor(cat)
	if err != nil {
		return fmt.Errorf("DC category %d: %w", cat, err)
	}
	bw.WriteBits(uint32(code), length)

	if cat > 0 {
		bw.WriteBits(valueBits(diff, cat), cat)
	}

	return nil
}

// encodeAC emits the composite (run<<4|size) code for every RLE symbol,
// followed by the size value bits for non-sentinel symbols.
func (e entropyEncoder) encodeAC(syms []RLESymbol, bw *BitWriter) error {
	for _, s := range syms {
		var composite byte

		switch {
		case s.IsEOB():
			composite = 0x00
		case s.IsZRL():
			composite = 0xF0
		default:
			composite = s.Run<<4 | bitCategory(s.Value)
		}

		code, length, err := e.ac.CodeFor(composite)
		if err != nil {
			return fmt.Errorf("AC symbol (%d,%d): %w", s.Run, s.Value, err)
		}
		bw.WriteBits(uint32(code), length)

		if size := composite & 0x0F; size > 0 {
			bw.WriteBits(valueBits(s.Value, size), size)
		}
	}

	return nil
}

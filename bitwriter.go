package jpegenc

// BitWriter packs bits MSB-first into bytes, applying JPEG byte
// stuffing: every literal 0xFF in the output is followed by 0x00 so a
// decoder can tell entropy data from marker bytes. One instance writes
// one scan; after FlushToByte it must not be written again.
type BitWriter struct {
	buf     []byte
	acc     uint32
	n       uint8
	bits    int64
	flushed bool
}

// NewBitWriter returns a writer with some capacity reserved.
func NewBitWriter() *BitWriter {
	return &BitWriter{buf: make([]byte, 0, 1024)}
}

// WriteBits appends the length least significant bits of bits, most
// significant first. length must be at most 16 and the writer must not
// be flushed.
func (w *BitWriter) WriteBits(bits uint32, length uint8) {
	if w.flushed {
		panic("jpegenc: BitWriter used after FlushToByte")
	}
	if length > 16 {
		panic("jpegenc: BitWriter length exceeds 16 bits")
	}

	w.acc = w.acc<<length | (bits & (1<<length - 1))
	w.n += length
	w.bits += int64(length)

	for w.n >= 8 {
		w.n -= 8
		w.emitByte(byte(w.acc >> w.n))
	}
	w.acc &= 1<<w.n - 1
}

// FlushToByte pads any partial byte with 1-bits up to the next byte
// boundary. The writer is one-shot: no writes are permitted afterwards.
func (w *BitWriter) FlushToByte() {
	if w.flushed {
		return
	}
	if w.n > 0 {
		pad := 8 - w.n
		w.emitByte(byte(w.acc<<pad) | (1<<pad - 1))
		w.acc, w.n = 0, 0
	}
	w.flushed = true
}

// Buffer exposes the accumulated bytes.
func (w *BitWriter) Buffer() []byte {
	return w.buf
}

// BitCount reports the number of payload bits written, excluding
// stuffing and padding.
func (w *BitWriter) BitCount() int64 {
	return w.bits
}

func (w *BitWriter) emitByte(b byte) {
	w.buf = append(w.buf, b)
	if b == 0xFF {
		w.buf = append(w.buf, 0x00)
	}
}

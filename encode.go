package jpegenc

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/vearutop/jpegenc/internal/jpegx"
)

// Format selects the encoding path.
type Format int

const (
	// FormatAuto picks grayscale for single-channel input and 4:2:0
	// color for 3-channel RGB input.
	FormatAuto Format = iota
	FormatGrayscale
	FormatColor420
)

func (f Format) String() string {
	switch f {
	case FormatAuto:
		return "auto"
	case FormatGrayscale:
		return "grayscale"
	case FormatColor420:
		return "color_420"
	default:
		return "unknown"
	}
}

// ParseFormat resolves the CLI format names.
func ParseFormat(s string) (Format, error) {
	switch s {
	case "grayscale":
		return FormatGrayscale, nil
	case "color_420":
		return FormatColor420, nil
	case "", "auto":
		return FormatAuto, nil
	default:
		return FormatAuto, invalidArgf("unknown format %q, use grayscale or color_420", s)
	}
}

// Options are the encoding parameters. The zero value encodes with
// DefaultQuality and automatic format selection.
type Options struct {
	// Quality ranges from 1 to 100 inclusive, higher is better.
	// Zero means DefaultQuality; any other out-of-range value is an
	// error rather than being clamped silently.
	Quality int

	Format Format

	// Observers are notified synchronously at pipeline checkpoints for
	// the duration of this encode call.
	Observers []PipelineObserver

	// CollectAnalysis attaches a full statistics report to the result.
	CollectAnalysis bool
}

// EncodeResult bundles the finished bitstream with encode statistics.
type EncodeResult struct {
	Data []byte

	OriginalWidth  int
	OriginalHeight int
	PaddedWidth    int
	PaddedHeight   int

	Format  Format
	Quality int

	OriginalBytes    int
	CompressedBytes  int
	CompressionRatio float64

	// Analysis is populated when Options.CollectAnalysis is set.
	Analysis *EncodingAnalysis
}

func (r *EncodeResult) String() string {
	return fmt.Sprintf(
		"JPEG encoding result:\n"+
			"  Original dimensions: %dx%d\n"+
			"  Padded dimensions:   %dx%d\n"+
			"  Original size:       %d bytes\n"+
			"  Compressed size:     %d bytes\n"+
			"  Compression ratio:   %.2fx\n",
		r.OriginalWidth, r.OriginalHeight,
		r.PaddedWidth, r.PaddedHeight,
		r.OriginalBytes, r.CompressedBytes, r.CompressionRatio)
}

// encoder holds the per-call state of one encode: tables, observers and
// running statistics. Nothing survives the call; quantization and
// Huffman tables are built fresh and the DC predictors live on the
// stack of the scan loop.
type encoder struct {
	quality   int
	observers []PipelineObserver

	quantLuma   QuantTable
	quantChroma QuantTable
	luma        entropyEncoder
	chroma      entropyEncoder

	stats encodeStats
}

type encodeStats struct {
	yBlocks, cbBlocks, crBlocks int
	zeroCoeffs, totalCoeffs     int
	rleSymbols, eobCount        int
	zrlCount                    int

	dctTime, quantizeTime, entropyTime time.Duration
}

// Encode compresses img into a baseline JFIF bitstream. It either
// completes and returns the full buffer or fails with no output.
func Encode(img *Image, opts *Options) (*EncodeResult, error) {
	start := time.Now()

	var o Options
	if opts != nil {
		o = *opts
	}

	if err := img.validate(); err != nil {
		return nil, err
	}

	quality := o.Quality
	if quality == 0 {
		quality = DefaultQuality
	}
	if quality < 1 || quality > 100 {
		return nil, invalidArgf("quality %d outside [1,100]", quality)
	}

	format, err := resolveFormat(img, o.Format)
	if err != nil {
		return nil, err
	}

	e := &encoder{
		quality:     quality,
		observers:   o.Observers,
		quantLuma:   LumaQuantTable(quality),
		quantChroma: ChromaQuantTable(quality),
		luma: entropyEncoder{
			dc: NewHuffmanTable(jpegx.StdHuffmanSpecs[jpegx.HuffLumaDC]),
			ac: NewHuffmanTable(jpegx.StdHuffmanSpecs[jpegx.HuffLumaAC]),
		},
		chroma: entropyEncoder{
			dc: NewHuffmanTable(jpegx.StdHuffmanSpecs[jpegx.HuffChromaDC]),
			ac: NewHuffmanTable(jpegx.StdHuffmanSpecs[jpegx.HuffChromaAC]),
		},
	}

	var (
		data     []byte
		pw, ph   int
		bitCount int64
	)

	switch format {
	case FormatGrayscale:
		data, pw, ph, bitCount, err = e.encodeGrayscale(img)
	case FormatColor420:
		data, pw, ph, bitCount, err = e.encodeColor420(img)
	default:
		err = unsupportedf("format %s", format)
	}
	if err != nil {
		return nil, err
	}

	res := &EncodeResult{
		Data:            data,
		OriginalWidth:   img.Width,
		OriginalHeight:  img.Height,
		PaddedWidth:     pw,
		PaddedHeight:    ph,
		Format:          format,
		Quality:         quality,
		OriginalBytes:   len(img.Pix),
		CompressedBytes: len(data),
	}
	res.CompressionRatio = float64(res.OriginalBytes) / float64(res.CompressedBytes)

	if len(e.observers) > 0 || o.CollectAnalysis {
		inH := shannonEntropy(img.Pix)
		outH := shannonEntropy(data)
		e.notifyEntropyStage("input", inH)
		e.notifyEntropyStage("scan", outH)

		if o.CollectAnalysis {
			res.Analysis = e.buildAnalysis(res, img.Pix, inH, outH, bitCount, time.Since(start))
		}
	}

	return res, nil
}

// EncodeFile encodes img and writes the bitstream to path atomically: a
// failed encode or write leaves no partial file behind.
func EncodeFile(img *Image, path string, opts *Options) (*EncodeResult, error) {
	res, err := Encode(img, opts)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".jpegenc-*")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	if _, err := tmp.Write(res.Data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())

		return nil, fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())

		return nil, fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())

		return nil, fmt.Errorf("rename to %s: %w", path, err)
	}

	return res, nil
}

// resolveFormat applies auto-detection and validates the input against
// the requested path.
func resolveFormat(img *Image, f Format) (Format, error) {
	gray := img.Channels == 1 && img.Space == ColorSpaceGray
	rgb := img.Channels == 3 && img.Space == ColorSpaceRGB

	switch f {
	case FormatAuto:
		if gray {
			return FormatGrayscale, nil
		}
		if rgb {
			return FormatColor420, nil
		}

		return f, unsupportedf("%d-channel %s input, want single-channel gray or 3-channel RGB",
			img.Channels, img.Space)
	case FormatGrayscale:
		if gray || rgb {
			return f, nil
		}

		return f, unsupportedf("grayscale path cannot consume %d-channel %s input", img.Channels, img.Space)
	case FormatColor420:
		if !rgb {
			if img.Channels == 1 && img.Space == ColorSpaceGray {
				return f, invalidArgf("color path requires 3-channel RGB input, got grayscale")
			}

			return f, unsupportedf("color path cannot consume %d-channel %s input", img.Channels, img.Space)
		}

		return f, nil
	default:
		return f, invalidArgf("unknown format %d", int(f))
	}
}

// toGray reduces an RGB image to its luminance channel. Single-channel
// input passes through.
func toGray(img *Image) (*Image, error) {
	if img.Channels == 1 {
		return img, nil
	}

	out := &Image{
		Width:    img.Width,
		Height:   img.Height,
		Channels: 1,
		Space:    ColorSpaceGray,
		Pix:      make([]byte, img.Width*img.Height),
	}
	for i := range out.Pix {
		r := float64(img.Pix[3*i])
		g := float64(img.Pix[3*i+1])
		b := float64(img.Pix[3*i+2])
		out.Pix[i] = clampToByte(0.299*r + 0.587*g + 0.114*b)
	}

	return out, nil
}

// encodeGrayscale runs the single-component path: pad to 8, tile,
// transform, quantize and entropy-code every block in row-major order
// against one running DC predictor.
func (e *encoder) encodeGrayscale(img *Image) (data []byte, pw, ph int, bits int64, err error) {
	gray, err := toGray(img)
	if err != nil {
		return nil, 0, 0, 0, err
	}

	padded, err := PadToMultiple(gray, jpegx.BlockDim)
	if err != nil {
		return nil, 0, 0, 0, err
	}

	blocks, err := ExtractBlocks(padded)
	if err != nil {
		return nil, 0, 0, 0, err
	}

	bw := NewBitWriter()
	gridW := padded.Width / jpegx.BlockDim
	gridH := padded.Height / jpegx.BlockDim
	predY := int16(0)

	for by := 0; by < gridH; by++ {
		for bx := 0; bx < gridW; bx++ {
			if err := e.encodeBlock(&blocks[by*gridW+bx], ComponentY, bx, by, &predY, bw); err != nil {
				return nil, 0, 0, 0, err
			}
		}
	}
	bw.FlushToByte()

	sw := newBitstreamWriter()
	err = sw.writeHeader(frameParams{
		width:     img.Width,
		height:    img.Height,
		grayscale: true,
		quant:     []QuantTable{e.quantLuma},
		huffman: []jpegx.HuffmanSpec{
			jpegx.StdHuffmanSpecs[jpegx.HuffLumaDC],
			jpegx.StdHuffmanSpecs[jpegx.HuffLumaAC],
		},
	})
	if err != nil {
		return nil, 0, 0, 0, err
	}
	if err := sw.writeScanData(bw.Buffer()); err != nil {
		return nil, 0, 0, 0, err
	}
	data, err = sw.terminate()
	if err != nil {
		return nil, 0, 0, 0, err
	}

	return data, padded.Width, padded.Height, bw.BitCount(), nil
}

// encodeColor420 runs the three-component path: pad to 16, convert to
// YCbCr, box-downsample chroma, then visit 16x16 MCUs in row-major
// order, four Y blocks then Cb then Cr, each against its own DC
// predictor.
func (e *encoder) encodeColor420(img *Image) (data []byte, pw, ph int, bits int64, err error) {
	padded, err := PadToMultiple(img, 2*jpegx.BlockDim)
	if err != nil {
		return nil, 0, 0, 0, err
	}

	ycc, err := RGBToYCbCr(padded)
	if err != nil {
		return nil, 0, 0, 0, err
	}

	yPlane, err := ycc.Plane(0)
	if err != nil {
		return nil, 0, 0, 0, err
	}
	cbPlane, err := ycc.Plane(1)
	if err != nil {
		return nil, 0, 0, 0, err
	}
	crPlane, err := ycc.Plane(2)
	if err != nil {
		return nil, 0, 0, 0, err
	}

	cbSub, err := Downsample420(cbPlane)
	if err != nil {
		return nil, 0, 0, 0, err
	}
	crSub, err := Downsample420(crPlane)
	if err != nil {
		return nil, 0, 0, 0, err
	}

	yBlocks, err := ExtractBlocks(yPlane)
	if err != nil {
		return nil, 0, 0, 0, err
	}
	cbBlocks, err := ExtractBlocks(cbSub)
	if err != nil {
		return nil, 0, 0, 0, err
	}
	crBlocks, err := ExtractBlocks(crSub)
	if err != nil {
		return nil, 0, 0, 0, err
	}

	bw := NewBitWriter()

	mcuW := padded.Width / (2 * jpegx.BlockDim)
	mcuH := padded.Height / (2 * jpegx.BlockDim)
	yGridW := padded.Width / jpegx.BlockDim
	cGridW := cbSub.Width / jpegx.BlockDim

	var predY, predCb, predCr int16

	for my := 0; my < mcuH; my++ {
		for mx := 0; mx < mcuW; mx++ {
			for dy := 0; dy < 2; dy++ {
				for dx := 0; dx < 2; dx++ {
					bx, by := 2*mx+dx, 2*my+dy
					if err := e.encodeBlock(&yBlocks[by*yGridW+bx], ComponentY, bx, by, &predY, bw); err != nil {
						return nil, 0, 0, 0, err
					}
				}
			}
			if err := e.encodeBlock(&cbBlocks[my*cGridW+mx], ComponentCb, mx, my, &predCb, bw); err != nil {
				return nil, 0, 0, 0, err
			}
			if err := e.encodeBlock(&crBlocks[my*cGridW+mx], ComponentCr, mx, my, &predCr, bw); err != nil {
				return nil, 0, 0, 0, err
			}
		}
	}
	bw.FlushToByte()

	sw := newBitstreamWriter()
	err = sw.writeHeader(frameParams{
		width:     img.Width,
		height:    img.Height,
		grayscale: false,
		quant:     []QuantTable{e.quantLuma, e.quantChroma},
		huffman: []jpegx.HuffmanSpec{
			jpegx.StdHuffmanSpecs[jpegx.HuffLumaDC],
			jpegx.StdHuffmanSpecs[jpegx.HuffLumaAC],
			jpegx.StdHuffmanSpecs[jpegx.HuffChromaDC],
			jpegx.StdHuffmanSpecs[jpegx.HuffChromaAC],
		},
	})
	if err != nil {
		return nil, 0, 0, 0, err
	}
	if err := sw.writeScanData(bw.Buffer()); err != nil {
		return nil, 0, 0, 0, err
	}
	data, err = sw.terminate()
	if err != nil {
		return nil, 0, 0, 0, err
	}

	return data, padded.Width, padded.Height, bw.BitCount(), nil
}

// encodeBlock pushes one block through transform, quantization, zig-zag
// reorder, run-length and Huffman coding, updating the component's DC
// predictor to the raw (pre-difference) DC value.
func (e *encoder) encodeBlock(b *Block[float32], comp Component, bx, by int, pred *int16, bw *BitWriter) error {
	t := time.Now()
	coeffs := ForwardDCT(b)
	e.stats.dctTime += time.Since(t)

	e.notifyBlockDCT(comp, bx, by, &coeffs)

	quant := &e.quantLuma
	ent := e.luma
	if comp != ComponentY {
		quant = &e.quantChroma
		ent = e.chroma
	}

	t = time.Now()
	q := Quantize(&coeffs, quant)
	e.stats.quantizeTime += time.Since(t)

	for _, v := range q {
		if v == 0 {
			e.stats.zeroCoeffs++
		}
	}
	e.stats.totalCoeffs += jpegx.BlockSize

	switch comp {
	case ComponentY:
		e.stats.yBlocks++
	case ComponentCb:
		e.stats.cbBlocks++
	case ComponentCr:
		e.stats.crBlocks++
	}

	t = time.Now()

	zz := ToZigZag(&q)
	dc := zz[0]

	if err := ent.encodeDC(dc-*pred, bw); err != nil {
		return err
	}

	syms := EncodeACRuns(&zz)
	e.stats.rleSymbols += len(syms)
	for _, s := range syms {
		switch {
		case s.IsEOB():
			e.stats.eobCount++
		case s.IsZRL():
			e.stats.zrlCount++
		}
	}

	if err := ent.encodeAC(syms, bw); err != nil {
		return err
	}
	e.stats.entropyTime += time.Since(t)

	*pred = dc

	return nil
}

package jpegenc

import (
	"encoding/json"
	"math"
	"time"

	"github.com/klauspost/compress/zstd"
)

// EncodingAnalysis is the per-encode statistics report consumed by the
// CLI's JSON output and by external tooling. It never influences the
// produced bitstream.
type EncodingAnalysis struct {
	Image struct {
		OriginalWidth     int    `json:"original_width"`
		OriginalHeight    int    `json:"original_height"`
		PaddedWidth       int    `json:"padded_width"`
		PaddedHeight      int    `json:"padded_height"`
		Format            string `json:"format"`
		ChromaSubsampling string `json:"chroma_subsampling"`
	} `json:"image"`

	Compression struct {
		OriginalBytes     int     `json:"original_bytes"`
		CompressedBytes   int     `json:"compressed_bytes"`
		CompressionRatio  float64 `json:"compression_ratio"`
		Quality           int     `json:"quality"`
		MarkerOverhead    int     `json:"marker_overhead_bytes"`
		ZstdBaselineBytes int     `json:"zstd_baseline_bytes"`
	} `json:"compression"`

	Entropy struct {
		Input  float64 `json:"input_bits_per_byte"`
		Output float64 `json:"output_bits_per_byte"`
	} `json:"entropy"`

	Blocks struct {
		Total int `json:"total"`
		Y     int `json:"y_luma"`
		Cb    int `json:"cb_chroma"`
		Cr    int `json:"cr_chroma"`
	} `json:"blocks"`

	Quantization struct {
		ZeroCoefficients  int     `json:"zero_coefficients"`
		TotalCoefficients int     `json:"total_coefficients"`
		SparsityPercent   float64 `json:"sparsity_percent"`
	} `json:"quantization"`

	RLE struct {
		TotalSymbols int `json:"total_symbols"`
		EOBCount     int `json:"eob_count"`
		ZRLCount     int `json:"zrl_count"`
	} `json:"rle_statistics"`

	Huffman struct {
		TotalBits int64 `json:"total_bits"`
	} `json:"huffman_coding"`

	TimingMs struct {
		Total   float64 `json:"total_encoding"`
		DCT     float64 `json:"dct_transform"`
		Quant   float64 `json:"quantization"`
		Entropy float64 `json:"entropy_encoding"`
	} `json:"timing_ms"`
}

// JSON renders the report with indentation.
func (a *EncodingAnalysis) JSON() ([]byte, error) {
	return json.MarshalIndent(a, "", "  ")
}

func (e *encoder) buildAnalysis(res *EncodeResult, pix []byte, inEntropy, outEntropy float64, bits int64, total time.Duration) *EncodingAnalysis {
	a := &EncodingAnalysis{}

	a.Image.OriginalWidth = res.OriginalWidth
	a.Image.OriginalHeight = res.OriginalHeight
	a.Image.PaddedWidth = res.PaddedWidth
	a.Image.PaddedHeight = res.PaddedHeight
	a.Image.Format = res.Format.String()
	if res.Format == FormatColor420 {
		a.Image.ChromaSubsampling = "4:2:0"
	} else {
		a.Image.ChromaSubsampling = "none"
	}

	a.Compression.OriginalBytes = res.OriginalBytes
	a.Compression.CompressedBytes = res.CompressedBytes
	a.Compression.CompressionRatio = res.CompressionRatio
	a.Compression.Quality = res.Quality

	if sum, err := ScanStream(res.Data); err == nil {
		a.Compression.MarkerOverhead = sum.MarkerBytes
	}

	// Lossless reference point: how far a generic compressor gets on
	// the raw pixels.
	a.Compression.ZstdBaselineBytes = zstdCompressedSize(pix)

	a.Entropy.Input = inEntropy
	a.Entropy.Output = outEntropy

	a.Blocks.Y = e.stats.yBlocks
	a.Blocks.Cb = e.stats.cbBlocks
	a.Blocks.Cr = e.stats.crBlocks
	a.Blocks.Total = e.stats.yBlocks + e.stats.cbBlocks + e.stats.crBlocks

	a.Quantization.ZeroCoefficients = e.stats.zeroCoeffs
	a.Quantization.TotalCoefficients = e.stats.totalCoeffs
	if e.stats.totalCoeffs > 0 {
		a.Quantization.SparsityPercent = 100 * float64(e.stats.zeroCoeffs) / float64(e.stats.totalCoeffs)
	}

	a.RLE.TotalSymbols = e.stats.rleSymbols
	a.RLE.EOBCount = e.stats.eobCount
	a.RLE.ZRLCount = e.stats.zrlCount

	a.Huffman.TotalBits = bits

	a.TimingMs.Total = float64(total.Microseconds()) / 1000
	a.TimingMs.DCT = float64(e.stats.dctTime.Microseconds()) / 1000
	a.TimingMs.Quant = float64(e.stats.quantizeTime.Microseconds()) / 1000
	a.TimingMs.Entropy = float64(e.stats.entropyTime.Microseconds()) / 1000

	return a
}

// shannonEntropy returns the byte-level Shannon entropy of data in bits
// per byte.
func shannonEntropy(data []byte) float64 {
	if len(data) == 0 {
		return 0
	}

	var hist [256]int
	for _, b := range data {
		hist[b]++
	}

	h := 0.0
	n := float64(len(data))
	for _, c := range hist {
		if c == 0 {
			continue
		}
		p := float64(c) / n
		h -= p * math.Log2(p)
	}

	return h
}

// zstdCompressedSize reports the zstd-compressed size of data, or 0 if
// compression is unavailable.
func zstdCompressedSize(data []byte) int {
	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return 0
	}
	defer enc.Close()

	return len(enc.EncodeAll(data, nil))
}

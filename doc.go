// Package jpegenc provides a pure-Go baseline sequential JPEG/JFIF encoder.
//
// It is a pragmatic implementation focused on correctness and portability
// rather than performance. The pipeline converts interleaved 8-bit pixel
// buffers into standards-compliant baseline bitstreams (grayscale or
// YCbCr 4:2:0) and can additionally produce per-encode statistics for
// analysis tooling.
package jpegenc

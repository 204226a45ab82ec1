package jpegenc

import (
	"errors"
	"fmt"
)

// Sentinel errors for the failure kinds the pipeline can report.
// Wrapped errors carry the stage-specific detail; match with errors.Is.
var (
	// ErrInvalidArgument reports input that violates a stage contract:
	// wrong channel count or color space for the requested path, zero
	// dimensions, out-of-range quality, mismatched plane dimensions.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrUnsupportedFormat reports an input image that is neither
	// single-channel grayscale nor 3-channel RGB.
	ErrUnsupportedFormat = errors.New("unsupported format")
)

func invalidArgf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}

func unsupportedf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedFormat, fmt.Sprintf(format, args...))
}

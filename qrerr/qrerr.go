// Package qrerr defines the error values returned by package qrcodegen.
//
// Every fallible entry point in qrcodegen wraps one of these sentinels, so
// callers can branch with errors.Is instead of parsing message strings.
package qrerr

import (
	"errors"
	"fmt"
)

// Sentinel errors, one per kind named in the encoder's error model.
var (
	// ErrInvalidArgument marks an out-of-range version/mask/ECI value, a
	// character-set violation, or a mismatched codeword length.
	ErrInvalidArgument = errors.New("qrcodegen: invalid argument")

	// ErrNullInput marks a required slice or pointer argument that was nil.
	ErrNullInput = errors.New("qrcodegen: nil input")

	// ErrOverflow marks a BitStream or segment length that would exceed the
	// signed 31-bit length budget.
	ErrOverflow = errors.New("qrcodegen: length overflow")

	// ErrDataTooLong marks a payload that cannot fit any version in the
	// requested [minVersion, maxVersion] range at the requested ECC level.
	ErrDataTooLong = errors.New("qrcodegen: data too long")

	// ErrIndexOutOfRange marks an out-of-bounds BitStream bit access.
	ErrIndexOutOfRange = errors.New("qrcodegen: index out of range")
)

// DataTooLongError carries the measured bit count and the capacity of the
// version that was finally tried, for callers that want the numbers instead
// of just the fact that encoding failed. UsedBits is -1 when a segment's
// character count does not fit its count field at that version.
type DataTooLongError struct {
	UsedBits     int
	CapacityBits int
}

func (e *DataTooLongError) Error() string {
	if e.UsedBits < 0 {
		return "qrcodegen: segment data does not fit its count field"
	}
	return fmt.Sprintf("qrcodegen: data length = %d bits, max capacity = %d bits", e.UsedBits, e.CapacityBits)
}

func (e *DataTooLongError) Unwrap() error {
	return ErrDataTooLong
}

// Null wraps ErrNullInput with additional context.
func Null(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrNullInput)
}

// Invalid wraps ErrInvalidArgument with additional context.
func Invalid(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrInvalidArgument)
}

// Overflow wraps ErrOverflow with additional context.
func Overflow(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrOverflow)
}

// OutOfRange wraps ErrIndexOutOfRange with additional context.
func OutOfRange(format string, args ...any) error {
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), ErrIndexOutOfRange)
}

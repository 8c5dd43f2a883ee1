package qrcodegen

import "github.com/brennofsouza/qrencode/qrerr"

// Version is a QR code version number in the range [MinVersion, MaxVersion].
// It determines the module grid size (4*version + 17).
type Version int

// Mask is the index, in [0, 7], of one of the eight XOR masking patterns.
// A Mask of -1 requests automatic mask selection.
type Mask int

// Version and Mask bounds.
const (
	MinVersion = Version(1)
	MaxVersion = Version(40)

	MinMask = Mask(0)
	MaxMask = Mask(7)

	// autoMask requests the encoder pick whichever mask scores lowest.
	autoMask = Mask(-1)
)

// newVersion validates v and returns it, or an error wrapping
// qrerr.ErrInvalidArgument if v is outside [MinVersion, MaxVersion].
func newVersion(v int) (Version, error) {
	if v < int(MinVersion) || v > int(MaxVersion) {
		return 0, qrerr.Invalid("version %d out of range [%d, %d]", v, MinVersion, MaxVersion)
	}
	return Version(v), nil
}

// size returns the module grid width/height for this version.
func (v Version) size() int {
	return int(v)*4 + 17
}

// groupIndex returns the count-field group (0, 1, or 2) this version falls
// into, per the "g = (ver+7)/17" rule.
func (v Version) groupIndex() int {
	return (int(v) + 7) / 17
}

// validMask reports whether m is a concrete mask index in [0, 7].
func validMask(m Mask) bool {
	return m >= MinMask && m <= MaxMask
}

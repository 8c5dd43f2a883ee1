/*
 * Copyright © 2020, G.Ralph Kuntz, MD.
 *
 * Licensed under the Apache License, Version 2.0(the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIC
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package qrcodegen

import "github.com/brennofsouza/qrencode/qrerr"

// encodeOptions holds the optional knobs EncodeSegments accepts: boost the
// ECC level when the chosen version has spare capacity, scan every version,
// and pick the best mask automatically.
type encodeOptions struct {
	minVersion Version
	maxVersion Version
	mask       Mask
	boostECL   bool
}

// EncodeOption configures a single EncodeSegments call.
type EncodeOption func(*encodeOptions)

// WithMinVersion sets the smallest version EncodeSegments is allowed to
// choose.
func WithMinVersion(version Version) EncodeOption {
	return func(o *encodeOptions) { o.minVersion = version }
}

// WithMaxVersion sets the largest version EncodeSegments is allowed to
// choose.
func WithMaxVersion(version Version) EncodeOption {
	return func(o *encodeOptions) { o.maxVersion = version }
}

// WithMask fixes the mask pattern, bypassing automatic mask selection and
// its penalty-scoring pass entirely.
func WithMask(mask Mask) EncodeOption {
	return func(o *encodeOptions) { o.mask = mask }
}

// WithAutoMask requests automatic, penalty-scored mask selection. This is
// the default; the option exists to let callers reverse an earlier
// WithMask in the same option list.
func WithAutoMask() EncodeOption {
	return func(o *encodeOptions) { o.mask = autoMask }
}

// WithBoostECL controls whether EncodeSegments promotes the requested ECC
// level when the chosen version has room to spare. Defaults to true.
func WithBoostECL(boost bool) EncodeOption {
	return func(o *encodeOptions) { o.boostECL = boost }
}

// EncodeText chooses segments for text automatically (see MakeSegments)
// and encodes them at the given ECC level.
func EncodeText(text string, ecl ECL, opts ...EncodeOption) (*QRCode, error) {
	return EncodeSegments(MakeSegments(text), ecl, opts...)
}

// EncodeBinary encodes data as a single Byte-mode segment at the given ECC
// level.
func EncodeBinary(data []byte, ecl ECL, opts ...EncodeOption) (*QRCode, error) {
	return EncodeSegments([]*Segment{MakeBytes(data)}, ecl, opts...)
}

// EncodeSegments is the encoder driver: it picks the smallest version in
// [minVersion, maxVersion] that fits segs, optionally boosts ecl, packs segs
// plus terminator/padding into codewords, and builds the resulting QRCode.
func EncodeSegments(segs []*Segment, ecl ECL, opts ...EncodeOption) (*QRCode, error) {
	o := encodeOptions{
		minVersion: MinVersion,
		maxVersion: MaxVersion,
		mask:       autoMask,
		boostECL:   true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	if o.minVersion < MinVersion || o.maxVersion > MaxVersion || o.maxVersion < o.minVersion {
		return nil, qrerr.Invalid("invalid version range [%d, %d]", o.minVersion, o.maxVersion)
	}
	if o.mask != autoMask && !validMask(o.mask) {
		return nil, qrerr.Invalid("mask %d out of range [%d, %d]", o.mask, MinMask, MaxMask)
	}
	for i, seg := range segs {
		if seg == nil {
			return nil, qrerr.Null("segment %d is nil", i)
		}
		if seg.Data == nil {
			return nil, qrerr.Null("segment %d has nil Data", i)
		}
	}

	version, usedBits, err := chooseVersion(segs, ecl, o.minVersion, o.maxVersion)
	if err != nil {
		return nil, err
	}

	ecl = boostECL(ecl, version, usedBits, o.boostECL)

	data, err := packCodewords(segs, ecl, version, usedBits)
	if err != nil {
		return nil, err
	}

	return NewQRCode(version, ecl, data, o.mask)
}

// chooseVersion finds the smallest version in [minVersion, maxVersion] at
// which segs fit under ecl, returning that version and the bit count segs
// occupies there. It fails with a *qrerr.DataTooLongError wrapping
// qrerr.ErrDataTooLong when no version in range fits.
func chooseVersion(segs []*Segment, ecl ECL, minVersion, maxVersion Version) (Version, int, error) {
	for v := minVersion; v <= maxVersion; v++ {
		capacityBits := numDataCodewordsFor(v, ecl) * 8
		usedBits := totalBits(segs, v)
		if usedBits >= 0 && usedBits <= capacityBits {
			return v, usedBits, nil
		}
		if v == maxVersion {
			return 0, 0, &qrerr.DataTooLongError{UsedBits: usedBits, CapacityBits: capacityBits}
		}
	}
	panic("chooseVersion: unreachable, minVersion > maxVersion should have been rejected already")
}

// boostECL raises ecl to the highest level (Low -> Medium -> Quartile ->
// High) that still accommodates usedBits at version, when boost is true.
func boostECL(ecl ECL, version Version, usedBits int, boost bool) ECL {
	if !boost {
		return ecl
	}
	for candidate := Medium; candidate <= High; candidate++ {
		if usedBits <= numDataCodewordsFor(version, candidate)*8 {
			ecl = candidate
		}
	}
	return ecl
}

// packCodewords concatenates every segment's mode indicator, count field
// and data bits, appends the terminator and byte-alignment padding, then
// pads with alternating 0xEC/0x11 bytes until the version's full data
// capacity is used, and finally packs the result into bytes.
func packCodewords(segs []*Segment, ecl ECL, version Version, usedBits int) ([]byte, error) {
	bs := NewBitStream()
	for _, seg := range segs {
		if err := bs.AppendBits(uint32(seg.Mode.indicator), 4); err != nil {
			return nil, err
		}
		if err := bs.AppendBits(uint32(seg.NumChars), seg.Mode.numCharCountBits(version)); err != nil {
			return nil, err
		}
		if err := bs.AppendData(seg.Data); err != nil {
			return nil, err
		}
	}
	if bs.Len() != usedBits {
		panic("packCodewords: incorrect data size calculation")
	}

	capacityBits := numDataCodewordsFor(version, ecl) * 8
	if bs.Len() > capacityBits {
		panic("packCodewords: incorrect data size calculation")
	}

	if err := bs.AppendBits(0, min(4, capacityBits-bs.Len())); err != nil {
		return nil, err
	}
	if err := bs.AppendBits(0, (8-bs.Len()%8)%8); err != nil {
		return nil, err
	}
	if bs.Len()%8 != 0 {
		panic("packCodewords: not aligned to a byte boundary")
	}

	for padByte := uint32(0xec); bs.Len() < capacityBits; padByte ^= 0xec ^ 0x11 {
		if err := bs.AppendBits(padByte, 8); err != nil {
			return nil, err
		}
	}

	return bs.packBytes(), nil
}

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

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/brennofsouza/qrencode/qrerr"
)

// Segment is one run of input characters, already packed to bits under a
// single Mode. NumChars is the character count (not the bit count); Data
// holds exactly the mode's data bits for those characters: no mode prefix,
// no count-field prefix.
type Segment struct {
	Mode     Mode
	NumChars int
	Data     *BitStream
}

const alphanumericCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"

var (
	// The character class is spelled out explicitly (rather than as the
	// ISO/IEC 18004 shorthand "[A-Z0-9 $%*+./:-]") so that '-' at the end of
	// the class is unambiguously a literal, not a range operator.
	alphanumericRegexp = regexp.MustCompile(`^[A-Z0-9 $%*+\-./:]*$`)
	numericRegexp      = regexp.MustCompile(`^[0-9]*$`)
)

// totalBits returns the number of bits segs would occupy at the given
// version: 4 (mode indicator) + count-field width + data bits, per segment.
// It returns -1 if any segment's NumChars does not fit its count field, or
// if the sum would overflow a signed 31-bit integer.
func totalBits(segs []*Segment, version Version) int {
	result := int64(0)
	for _, seg := range segs {
		ccBits := seg.Mode.numCharCountBits(version)
		if seg.NumChars >= 1<<uint(ccBits) {
			return -1
		}
		result += int64(4 + ccBits + seg.Data.Len())
		if result > maxBitLength {
			return -1
		}
	}
	return int(result)
}

// MakeBytes builds a Byte-mode segment from raw data: each byte packed as 8
// bits, most significant bit first.
func MakeBytes(data []byte) *Segment {
	bs := NewBitStream()
	for _, b := range data {
		_ = bs.AppendBits(uint32(b), 8)
	}
	return &Segment{Mode: Byte, NumChars: len(data), Data: bs}
}

// MakeNumeric builds a Numeric-mode segment from a string of decimal
// digits, packing them three at a time into 10 bits (with a final group of
// one or two digits packed into 4 or 7 bits). It fails with
// qrerr.ErrInvalidArgument if digits contains anything but '0'-'9'.
func MakeNumeric(digits string) (*Segment, error) {
	if !numericRegexp.MatchString(digits) {
		return nil, qrerr.Invalid("%q is not a numeric string", digits)
	}

	bs := NewBitStream()
	for i := 0; i < len(digits); {
		n := min(len(digits)-i, 3)
		d, err := strconv.Atoi(digits[i : i+n])
		if err != nil {
			return nil, qrerr.Invalid("%q is not a numeric string", digits)
		}
		if err := bs.AppendBits(uint32(d), n*3+1); err != nil {
			return nil, err
		}
		i += n
	}

	return &Segment{Mode: Numeric, NumChars: len(digits), Data: bs}, nil
}

// MakeAlphanumeric builds an Alphanumeric-mode segment, packing characters
// two at a time into 11 bits (with a trailing single character packed into
// 6 bits). It fails with qrerr.ErrInvalidArgument if text contains anything
// outside "0-9A-Z $%*+-./:".
func MakeAlphanumeric(text string) (*Segment, error) {
	if !alphanumericRegexp.MatchString(text) {
		return nil, qrerr.Invalid("%q contains characters outside the alphanumeric set", text)
	}

	bs := NewBitStream()
	i := 0
	for ; i <= len(text)-2; i += 2 {
		v := strings.IndexByte(alphanumericCharset, text[i])*45 + strings.IndexByte(alphanumericCharset, text[i+1])
		if err := bs.AppendBits(uint32(v), 11); err != nil {
			return nil, err
		}
	}
	if i < len(text) {
		v := strings.IndexByte(alphanumericCharset, text[i])
		if err := bs.AppendBits(uint32(v), 6); err != nil {
			return nil, err
		}
	}

	return &Segment{Mode: Alphanumeric, NumChars: len(text), Data: bs}, nil
}

// MakeECI builds an ECI designator segment for the given assignment value.
// It fails with qrerr.ErrInvalidArgument if value is outside [0, 999999].
func MakeECI(value int) (*Segment, error) {
	if value < 0 || value > 999999 {
		return nil, qrerr.Invalid("ECI assignment value %d out of range [0, 999999]", value)
	}

	bs := NewBitStream()
	var err error
	switch {
	case value < 1<<7:
		err = bs.AppendBits(uint32(value), 8)
	case value < 1<<14:
		if err = bs.AppendBits(0b10, 2); err == nil {
			err = bs.AppendBits(uint32(value), 14)
		}
	default:
		if err = bs.AppendBits(0b110, 3); err == nil {
			err = bs.AppendBits(uint32(value), 21)
		}
	}
	if err != nil {
		return nil, err
	}

	return &Segment{Mode: ECI, NumChars: 0, Data: bs}, nil
}

// MakeSegments chooses the most compact single-segment encoding of text:
// Numeric if every character is a digit, Alphanumeric if every character is
// in the alphanumeric set, otherwise Byte mode over the UTF-8 encoding. An
// empty string yields an empty segment list.
func MakeSegments(text string) []*Segment {
	if len(text) == 0 {
		return nil
	}
	if numericRegexp.MatchString(text) {
		seg, _ := MakeNumeric(text) // text already validated above.
		return []*Segment{seg}
	}
	if alphanumericRegexp.MatchString(text) {
		seg, _ := MakeAlphanumeric(text) // text already validated above.
		return []*Segment{seg}
	}
	return []*Segment{MakeBytes([]byte(text))}
}

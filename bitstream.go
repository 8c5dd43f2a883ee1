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

// maxBitLength is the largest length, in bits, a BitStream may grow to. It is
// math.MaxInt32, so that bit counts never overflow a signed 31-bit
// accumulator.
const maxBitLength = 1<<31 - 1

// BitStream is an append-only, MSB-first sequence of bits. The zero value is
// an empty, ready to use stream.
//
// BitStream stores one bit per byte, favoring simplicity over packing
// density, since a full symbol's bit stream is at most a few tens of
// thousands of bits.
type BitStream struct {
	bits []byte
}

// NewBitStream returns an empty BitStream.
func NewBitStream() *BitStream {
	return &BitStream{}
}

// Len returns the number of bits appended so far.
func (b *BitStream) Len() int {
	return len(b.bits)
}

// GetBit returns the bit at index i (0 or 1). It returns a non-nil error
// wrapping qrerr.ErrIndexOutOfRange when i is outside [0, Len()).
func (b *BitStream) GetBit(i int) (int, error) {
	if i < 0 || i >= len(b.bits) {
		return 0, qrerr.OutOfRange("bit index %d out of range [0, %d)", i, len(b.bits))
	}
	return int(b.bits[i]), nil
}

// AppendBits appends the low n bits of value, most significant bit first. It
// fails with qrerr.ErrInvalidArgument when n is negative or at least 32, or
// when value has any bit set above bit n-1; it fails with qrerr.ErrOverflow
// when the resulting length would exceed the 2^31-1 bit budget.
func (b *BitStream) AppendBits(value uint32, n int) error {
	if n < 0 || n >= 32 || (n < 32 && value>>uint(n) != 0) {
		return qrerr.Invalid("value %d does not fit in %d bits", value, n)
	}
	if maxBitLength-len(b.bits) < n {
		return qrerr.Overflow("appending %d bits would exceed the maximum bit stream length", n)
	}
	for i := n - 1; i >= 0; i-- {
		b.bits = append(b.bits, byte(value>>uint(i)&1))
	}
	return nil
}

// AppendData appends a copy of other's bits to b. It fails with
// qrerr.ErrOverflow if the combined length would exceed the 2^31-1 bit
// budget.
func (b *BitStream) AppendData(other *BitStream) error {
	if maxBitLength-len(b.bits) < len(other.bits) {
		return qrerr.Overflow("appending %d bits would exceed the maximum bit stream length", len(other.bits))
	}
	b.bits = append(b.bits, other.bits...)
	return nil
}

// Clone returns an independent copy of b: mutating the clone never perturbs
// b, and vice versa.
func (b *BitStream) Clone() *BitStream {
	clone := &BitStream{bits: make([]byte, len(b.bits))}
	copy(clone.bits, b.bits)
	return clone
}

// packBytes packs the bit stream, which must have a length that is a
// multiple of 8, into big-endian bytes.
func (b *BitStream) packBytes() []byte {
	out := make([]byte, len(b.bits)/8)
	for i, bit := range b.bits {
		out[i>>3] |= bit << uint(7-i&7)
	}
	return out
}

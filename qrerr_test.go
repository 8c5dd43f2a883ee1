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
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/brennofsouza/qrencode/qrerr"
)

func TestBitStreamErrorsWrapSentinels(t *testing.T) {
	bs := NewBitStream()
	_, err := bs.GetBit(0)
	assert.ErrorIs(t, err, qrerr.ErrIndexOutOfRange)

	err = bs.AppendBits(0, -1)
	assert.ErrorIs(t, err, qrerr.ErrInvalidArgument)

	err = bs.AppendBits(1<<5, 4)
	assert.ErrorIs(t, err, qrerr.ErrInvalidArgument)
}

// TestBitStreamAppendOverflowsNearMaxLength exercises the one fallible path
// to qrerr.ErrOverflow, which only triggers within a handful of bits of the
// 2^31-1 length budget; it skips in -short mode since it needs a
// multi-gigabyte buffer to get there.
func TestBitStreamAppendOverflowsNearMaxLength(t *testing.T) {
	if testing.Short() {
		t.Skip("allocates a buffer near the 2^31-1 bit length budget")
	}

	full := &BitStream{bits: make([]byte, maxBitLength)}
	err := full.AppendBits(0, 1)
	assert.ErrorIs(t, err, qrerr.ErrOverflow)

	one := NewBitStream()
	_ = one.AppendBits(0, 1)
	err = full.AppendData(one)
	assert.ErrorIs(t, err, qrerr.ErrOverflow)
}

func TestSegmentConstructorErrorsWrapInvalidArgument(t *testing.T) {
	_, err := MakeNumeric("123A")
	assert.ErrorIs(t, err, qrerr.ErrInvalidArgument)

	_, err = MakeAlphanumeric("a")
	assert.ErrorIs(t, err, qrerr.ErrInvalidArgument)

	_, err = MakeECI(1_000_000)
	assert.ErrorIs(t, err, qrerr.ErrInvalidArgument)
}

func TestEncodeSegmentsVersionAndMaskErrorsWrapInvalidArgument(t *testing.T) {
	_, err := EncodeSegments(nil, Low, WithMinVersion(10), WithMaxVersion(1))
	assert.ErrorIs(t, err, qrerr.ErrInvalidArgument)

	_, err = EncodeSegments(nil, Low, WithMask(8))
	assert.ErrorIs(t, err, qrerr.ErrInvalidArgument)
}

func TestEncodeSegmentsNilSegmentErrorsWrapNullInput(t *testing.T) {
	_, err := EncodeSegments([]*Segment{nil}, Low)
	assert.ErrorIs(t, err, qrerr.ErrNullInput)
}

func TestNewQRCodeVersionAndCodewordErrorsWrapInvalidArgument(t *testing.T) {
	_, err := NewQRCode(0, Low, nil, 0)
	assert.ErrorIs(t, err, qrerr.ErrInvalidArgument)

	_, err = NewQRCode(1, Low, make([]byte, 1), 0)
	assert.ErrorIs(t, err, qrerr.ErrInvalidArgument)

	_, err = NewQRCode(1, Low, make([]byte, numDataCodewordsFor(1, Low)), 8)
	assert.ErrorIs(t, err, qrerr.ErrInvalidArgument)
}

func TestDataTooLongErrorWrapsSentinelAndReportsBits(t *testing.T) {
	huge := make([]byte, 1<<20)
	_, err := EncodeBinary(huge, Low, WithMaxVersion(1))
	assert.ErrorIs(t, err, qrerr.ErrDataTooLong)

	// 2^20 bytes overflow version 1's 8-bit Byte-mode count field, so
	// totalBits reports -1 rather than a bit count.
	var dataTooLong *qrerr.DataTooLongError
	assert.True(t, errors.As(err, &dataTooLong))
	assert.Equal(t, -1, dataTooLong.UsedBits)
	assert.NotEmpty(t, dataTooLong.Error())
}

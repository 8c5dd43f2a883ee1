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
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bitsOf(t *testing.T, bs *BitStream) []byte {
	t.Helper()
	out := make([]byte, bs.Len())
	for i := range out {
		b, err := bs.GetBit(i)
		require.NoError(t, err)
		out[i] = byte(b)
	}
	return out
}

func TestIsAlphanumeric(t *testing.T) {
	cases := []struct {
		answer bool
		text   string
	}{
		{true, ""},
		{true, "0"},
		{true, "A"},
		{false, "a"},
		{true, " "},
		{true, "."},
		{true, "*"},
		{false, ","},
		{false, "|"},
		{false, "@"},
		{true, "XYZ"},
		{false, "XYZ!"},
		{true, "79068"},
		{true, "+123 ABC$"},
		{false, "\x01"},
		{false, "\x7F"},
		{false, "\x80"},
		{false, "\xC0"},
		{false, "\xFF"},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%v", tc), func(t *testing.T) {
			assert.Equal(t, tc.answer, alphanumericRegexp.MatchString(tc.text))
		})
	}
}

func TestIsNumeric(t *testing.T) {
	cases := []struct {
		answer bool
		text   string
	}{
		{true, ""},
		{true, "0"},
		{false, "A"},
		{false, "a"},
		{false, " "},
		{false, "."},
		{false, "*"},
		{false, ","},
		{false, "|"},
		{false, "@"},
		{false, "XYZ"},
		{false, "XYZ!"},
		{true, "79068"},
		{false, "+123 ABC$"},
		{false, "\x01"},
		{false, "\x7F"},
		{false, "\x80"},
		{false, "\xC0"},
		{false, "\xFF"},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%v", tc), func(t *testing.T) {
			assert.Equal(t, tc.answer, numericRegexp.MatchString(tc.text))
		})
	}
}

func TestMakeBytes(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		seg := MakeBytes([]byte{})
		assert.Equal(t, Byte, seg.Mode)
		assert.Equal(t, 0, seg.NumChars)
		assert.Equal(t, 0, seg.Data.Len())
	})

	t.Run("single zero byte", func(t *testing.T) {
		seg := MakeBytes([]byte{0x00})
		assert.Equal(t, Byte, seg.Mode)
		assert.Equal(t, 1, seg.NumChars)
		assert.Equal(t, 8, seg.Data.Len())
		assert.Equal(t, []byte{0, 0, 0, 0, 0, 0, 0, 0}, bitsOf(t, seg.Data))
	})

	t.Run("utf-8 bom", func(t *testing.T) {
		seg := MakeBytes([]byte{0xEF, 0xBB, 0xBF})
		assert.Equal(t, Byte, seg.Mode)
		assert.Equal(t, 3, seg.NumChars)
		assert.Equal(t, 24, seg.Data.Len())
		assert.Equal(t,
			[]byte{1, 1, 1, 0, 1, 1, 1, 1, 1, 0, 1, 1, 1, 0, 1, 1, 1, 0, 1, 1, 1, 1, 1, 1},
			bitsOf(t, seg.Data))
	})
}

func TestMakeNumeric(t *testing.T) {
	cases := []struct {
		text      string
		length    int
		bitLength int
		bytes     []byte
	}{
		{"", 0, 0, []byte{}},
		{"9", 1, 4, []byte{1, 0, 0, 1}},
		{"81", 2, 7, []byte{1, 0, 1, 0, 0, 0, 1}},
		{"673", 3, 10, []byte{1, 0, 1, 0, 1, 0, 0, 0, 0, 1}},
		{"3141592653", 10, 34, []byte{0, 1, 0, 0, 1, 1, 1, 0, 1, 0, 0, 0, 1, 0, 0, 1, 1, 1,
			1, 1, 0, 1, 0, 0, 0, 0, 1, 0, 0, 1, 0, 0, 1, 1}},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%v", tc), func(t *testing.T) {
			seg, err := MakeNumeric(tc.text)
			require.NoError(t, err)
			assert.Equal(t, Numeric, seg.Mode)
			assert.Equal(t, tc.length, seg.NumChars)
			assert.Equal(t, tc.bitLength, seg.Data.Len())
			assert.Equal(t, tc.bytes, bitsOf(t, seg.Data))
		})
	}

	t.Run("rejects non-digits", func(t *testing.T) {
		_, err := MakeNumeric("12a")
		assert.Error(t, err)
	})
}

func TestMakeAlphanumeric(t *testing.T) {
	cases := []struct {
		text      string
		length    int
		bitLength int
		bytes     []byte
	}{
		{"", 0, 0, []byte{}},
		{"A", 1, 6, []byte{0, 0, 1, 0, 1, 0}},
		{"%:", 2, 11, []byte{1, 1, 0, 1, 1, 0, 1, 1, 0, 1, 0}},
		{"Q R", 3, 17, []byte{1, 0, 0, 1, 0, 1, 1, 0, 1, 1, 0, 0, 1, 1, 0, 1, 1}},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%v", tc), func(t *testing.T) {
			seg, err := MakeAlphanumeric(tc.text)
			require.NoError(t, err)
			assert.Equal(t, Alphanumeric, seg.Mode)
			assert.Equal(t, tc.length, seg.NumChars)
			assert.Equal(t, tc.bitLength, seg.Data.Len())
			assert.Equal(t, tc.bytes, bitsOf(t, seg.Data))
		})
	}

	t.Run("rejects characters outside the set", func(t *testing.T) {
		_, err := MakeAlphanumeric("abc")
		assert.Error(t, err)
	})
}

func TestMakeECI(t *testing.T) {
	cases := []struct {
		input     int
		bitLength int
		bytes     []byte
	}{
		{127, 8, []byte{0, 1, 1, 1, 1, 1, 1, 1}},
		{10345, 16, []byte{1, 0, 1, 0, 1, 0, 0, 0, 0, 1, 1, 0, 1, 0, 0, 1}},
		{999999, 24, []byte{1, 1, 0, 0, 1, 1, 1, 1, 0, 1, 0, 0, 0, 0, 1, 0, 0, 0, 1, 1, 1, 1, 1, 1}},
	}

	for _, tc := range cases {
		t.Run(fmt.Sprintf("%v", tc), func(t *testing.T) {
			seg, err := MakeECI(tc.input)
			require.NoError(t, err)
			assert.Equal(t, ECI, seg.Mode)
			assert.Equal(t, 0, seg.NumChars)
			assert.Equal(t, tc.bitLength, seg.Data.Len())
			assert.Equal(t, tc.bytes, bitsOf(t, seg.Data))
		})
	}

	t.Run("rejects out-of-range values", func(t *testing.T) {
		_, err := MakeECI(-1)
		assert.Error(t, err)
		_, err = MakeECI(1000000)
		assert.Error(t, err)
	})
}

func TestMakeSegments(t *testing.T) {
	assert.Nil(t, MakeSegments(""))

	segs := MakeSegments("12345")
	require.Len(t, segs, 1)
	assert.Equal(t, Numeric, segs[0].Mode)

	segs = MakeSegments("HELLO WORLD")
	require.Len(t, segs, 1)
	assert.Equal(t, Alphanumeric, segs[0].Mode)

	segs = MakeSegments("hello, world!")
	require.Len(t, segs, 1)
	assert.Equal(t, Byte, segs[0].Mode)
}

func TestTotalBits(t *testing.T) {
	t.Run("no segments", func(t *testing.T) {
		assert.Equal(t, 0, totalBits(nil, 1))
		assert.Equal(t, 0, totalBits(nil, 40))
	})

	t.Run("single byte segment", func(t *testing.T) {
		segs := []*Segment{{Mode: Byte, NumChars: 3, Data: &BitStream{bits: make([]byte, 24)}}}
		assert.Equal(t, 36, totalBits(segs, 2))
		assert.Equal(t, 44, totalBits(segs, 10))
		assert.Equal(t, 44, totalBits(segs, 30))
	})

	t.Run("mixed modes", func(t *testing.T) {
		segs := []*Segment{
			{Mode: ECI, NumChars: 0, Data: &BitStream{bits: make([]byte, 8)}},
			{Mode: Numeric, NumChars: 7, Data: &BitStream{bits: make([]byte, 24)}},
			{Mode: Alphanumeric, NumChars: 1, Data: &BitStream{bits: make([]byte, 6)}},
			{Mode: kanji, NumChars: 4, Data: &BitStream{bits: make([]byte, 52)}},
		}
		assert.Equal(t, 133, totalBits(segs, 9))
		assert.Equal(t, 139, totalBits(segs, 21))
		assert.Equal(t, 145, totalBits(segs, 27))
	})

	t.Run("count field overflow returns -1", func(t *testing.T) {
		segs := []*Segment{{Mode: Byte, NumChars: 4093, Data: &BitStream{bits: make([]byte, 32744)}}}
		assert.Equal(t, -1, totalBits(segs, 1))
		assert.Equal(t, 32764, totalBits(segs, 10))
		assert.Equal(t, 32764, totalBits(segs, 27))
	})

	t.Run("2^16 chars overflow even the 16-bit count field", func(t *testing.T) {
		segs := []*Segment{{Mode: Byte, NumChars: 1 << 16, Data: NewBitStream()}}
		assert.Equal(t, -1, totalBits(segs, 10))
		assert.Equal(t, -1, totalBits(segs, 40))
	})
}

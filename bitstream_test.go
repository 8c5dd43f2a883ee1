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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBitStreamAppendBits(t *testing.T) {
	bs := NewBitStream()

	require.NoError(t, bs.AppendBits(0, 0))
	assert.Equal(t, 0, bs.Len())

	require.NoError(t, bs.AppendBits(1, 1))
	assert.Equal(t, 1, bs.Len())
	b, err := bs.GetBit(0)
	require.NoError(t, err)
	assert.Equal(t, 1, b)

	require.NoError(t, bs.AppendBits(0, 1))
	assert.Equal(t, 2, bs.Len())

	require.NoError(t, bs.AppendBits(5, 3))
	assert.Equal(t, 5, bs.Len())
	for i, want := range []int{1, 0, 1, 0, 1} {
		b, err := bs.GetBit(i)
		require.NoError(t, err)
		assert.Equal(t, want, b)
	}

	require.NoError(t, bs.AppendBits(6, 3))
	assert.Equal(t, 8, bs.Len())
	for i, want := range []int{1, 0, 1, 0, 1, 1, 1, 0} {
		b, err := bs.GetBit(i)
		require.NoError(t, err)
		assert.Equal(t, want, b)
	}
}

func TestBitStreamAppendBitsRejectsOutOfRangeValue(t *testing.T) {
	bs := NewBitStream()
	assert.Error(t, bs.AppendBits(4, 2)) // 4 doesn't fit in 2 bits.
	assert.Error(t, bs.AppendBits(1, 32))
	assert.Error(t, bs.AppendBits(1, -1))
}

func TestBitStreamGetBitOutOfRange(t *testing.T) {
	bs := NewBitStream()
	require.NoError(t, bs.AppendBits(1, 1))
	_, err := bs.GetBit(-1)
	assert.Error(t, err)
	_, err = bs.GetBit(1)
	assert.Error(t, err)
}

func TestBitStreamAppendData(t *testing.T) {
	a := NewBitStream()
	require.NoError(t, a.AppendBits(0b101, 3))
	b := NewBitStream()
	require.NoError(t, b.AppendBits(0b11, 2))

	require.NoError(t, a.AppendData(b))
	assert.Equal(t, 5, a.Len())
	for i, want := range []int{1, 0, 1, 1, 1} {
		got, err := a.GetBit(i)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestBitStreamCloneIsIndependent(t *testing.T) {
	a := NewBitStream()
	require.NoError(t, a.AppendBits(0b1010, 4))

	clone := a.Clone()
	require.NoError(t, clone.AppendBits(0b1, 1))

	assert.Equal(t, 4, a.Len())
	assert.Equal(t, 5, clone.Len())
}

func TestBitStreamPackBytes(t *testing.T) {
	bs := NewBitStream()
	require.NoError(t, bs.AppendBits(0xA5, 8))
	require.NoError(t, bs.AppendBits(0x3C, 8))
	assert.Equal(t, []byte{0xA5, 0x3C}, bs.packBytes())
}

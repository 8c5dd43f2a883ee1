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
	"strings"

	"github.com/brennofsouza/qrencode/qrerr"
)

// Penalty weights used by getPenaltyScore.
const (
	penaltyN1 = 3
	penaltyN2 = 3
	penaltyN3 = 40
	penaltyN4 = 10
)

// QRCode is an immutable QR code symbol: a square grid of dark/light
// modules, plus the version, ECC level and mask that produced it.
type QRCode struct {
	version    Version
	size       int
	ecc        ECL
	mask       Mask
	modules    [][]bool
	isFunction [][]bool // discarded once construction completes
}

// NewQRCode is the low-level QR code constructor: it builds a symbol
// directly from pre-chosen data codewords, without any version-fitting or
// segment bookkeeping. dataCodewords must have exactly
// numDataCodewordsFor(version, ecc) bytes. mask must be a concrete mask
// index in [0, 7], or -1 to have the best-scoring mask picked automatically.
func NewQRCode(version Version, ecc ECL, dataCodewords []byte, mask Mask) (*QRCode, error) {
	version, err := newVersion(int(version))
	if err != nil {
		return nil, err
	}
	if mask != autoMask && !validMask(mask) {
		return nil, qrerr.Invalid("mask %d out of range [%d, %d]", mask, MinMask, MaxMask)
	}
	want := numDataCodewordsFor(version, ecc)
	if len(dataCodewords) != want {
		return nil, qrerr.Invalid("got %d data codewords, version %d level %s needs %d", len(dataCodewords), version, ecc, want)
	}

	size := version.size()
	q := &QRCode{
		version:    version,
		size:       size,
		ecc:        ecc,
		modules:    make([][]bool, size),
		isFunction: make([][]bool, size),
	}
	for i := range q.modules {
		q.modules[i] = make([]bool, size)
		q.isFunction[i] = make([]bool, size)
	}

	q.drawFunctionPatterns()
	allCodewords := q.addECCAndInterleave(dataCodewords)
	q.drawCodewords(allCodewords)
	q.mask = q.chooseMask(mask)
	q.isFunction = nil

	return q, nil
}

// Version returns the symbol's version, in [1, 40].
func (q *QRCode) Version() Version { return q.version }

// Size returns the width and height of the symbol, in modules.
func (q *QRCode) Size() int { return q.size }

// ErrorCorrectionLevel returns the ECC level actually used (which may be
// higher than requested, if boosting was applied).
func (q *QRCode) ErrorCorrectionLevel() ECL { return q.ecc }

// Mask returns the mask pattern index, in [0, 7], actually used.
func (q *QRCode) Mask() Mask { return q.mask }

// At reports whether the module at column x, row y is dark. It returns
// false for any coordinate outside [0, Size())x[0, Size()) instead of
// failing.
func (q *QRCode) At(x, y int) bool {
	if x < 0 || x >= q.size || y < 0 || y >= q.size {
		return false
	}
	return q.modules[y][x]
}

// String renders the symbol as a block of full-width glyphs, one line per
// row, for quick visual inspection in logs and tests.
func (q *QRCode) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "QRCode(version=%d, ecc=%s, mask=%d, size=%d)\n", q.version, q.ecc, q.mask, q.size)
	for y := 0; y < q.size; y++ {
		for x := 0; x < q.size; x++ {
			if q.modules[y][x] {
				sb.WriteString("██")
			} else {
				sb.WriteString("  ")
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

func (q *QRCode) setFunctionModule(x, y int, dark bool) {
	q.modules[y][x] = dark
	q.isFunction[y][x] = true
}

// drawFunctionPatterns draws every module that carries metadata rather than
// payload: timing patterns, the three finder patterns, alignment patterns,
// the format-info placeholder, and (for v >= 7) the version-info blocks.
func (q *QRCode) drawFunctionPatterns() {
	for i := 0; i < q.size; i++ {
		q.setFunctionModule(6, i, i%2 == 0)
		q.setFunctionModule(i, 6, i%2 == 0)
	}

	q.drawFinderPattern(3, 3)
	q.drawFinderPattern(q.size-4, 3)
	q.drawFinderPattern(3, q.size-4)

	positions := alignmentPatternPositions[q.version]
	n := len(positions)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			if i == 0 && j == 0 || i == 0 && j == n-1 || i == n-1 && j == 0 {
				continue // Collides with a finder pattern.
			}
			q.drawAlignmentPattern(positions[i], positions[j])
		}
	}

	q.drawFormatBits(0)
	q.drawVersion()
}

// drawFinderPattern draws the 9x9 finder stamp (including its one-module
// light separator) centered at (x, y), clipped to the grid.
func (q *QRCode) drawFinderPattern(x, y int) {
	for dy := -4; dy <= 4; dy++ {
		for dx := -4; dx <= 4; dx++ {
			xx, yy := x+dx, y+dy
			if xx < 0 || xx >= q.size || yy < 0 || yy >= q.size {
				continue
			}
			dist := max(abs(dx), abs(dy))
			q.setFunctionModule(xx, yy, dist != 2 && dist != 4)
		}
	}
}

// drawAlignmentPattern draws the 5x5 alignment stamp centered at (x, y).
func (q *QRCode) drawAlignmentPattern(x, y int) {
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			q.setFunctionModule(x+dx, y+dy, max(abs(dx), abs(dy)) != 1)
		}
	}
}

// drawFormatBits computes and draws the 15-bit format information (ECC
// level + mask, BCH(15,5)-protected) in both of its fixed locations.
func (q *QRCode) drawFormatBits(mask Mask) {
	data := uint32(q.ecc.formatBits()<<3 | int(mask))
	rem := data
	for i := 0; i < 10; i++ {
		rem = rem<<1 ^ (rem>>9)*0x537
	}
	bits := data<<10 | rem ^ 0x5412
	if bits>>15 != 0 {
		panic("drawFormatBits: computed value does not fit in 15 bits")
	}

	for i := 0; i <= 5; i++ {
		q.setFunctionModule(8, i, bitAtBool(int(bits), i))
	}
	q.setFunctionModule(8, 7, bitAtBool(int(bits), 6))
	q.setFunctionModule(8, 8, bitAtBool(int(bits), 7))
	q.setFunctionModule(7, 8, bitAtBool(int(bits), 8))
	for i := 9; i < 15; i++ {
		q.setFunctionModule(14-i, 8, bitAtBool(int(bits), i))
	}

	for i := 0; i < 8; i++ {
		q.setFunctionModule(q.size-1-i, 8, bitAtBool(int(bits), i))
	}
	for i := 8; i < 15; i++ {
		q.setFunctionModule(8, q.size-15+i, bitAtBool(int(bits), i))
	}
	q.setFunctionModule(8, q.size-8, true) // The always-dark module.
}

// drawVersion computes and draws the 18-bit version information
// (BCH(18,6)-protected) in its two mirrored locations, for versions 7 and
// above; it is a no-op below version 7.
func (q *QRCode) drawVersion() {
	if q.version < 7 {
		return
	}

	rem := uint32(q.version)
	for i := 0; i < 12; i++ {
		rem = rem<<1 ^ (rem>>11)*0x1F25
	}
	bits := uint32(q.version)<<12 | rem
	if bits>>18 != 0 {
		panic("drawVersion: computed value does not fit in 18 bits")
	}

	for i := 0; i < 18; i++ {
		bit := bitAtBool(int(bits), i)
		a := q.size - 11 + i%3
		b := i / 3
		q.setFunctionModule(a, b, bit)
		q.setFunctionModule(b, a, bit)
	}
}

// addECCAndInterleave splits data into the version's blocks, appends each
// block's Reed-Solomon remainder, and interleaves the results column-major
// as ISO/IEC 18004 requires.
func (q *QRCode) addECCAndInterleave(data []byte) []byte {
	if len(data) != numDataCodewordsFor(q.version, q.ecc) {
		panic("addECCAndInterleave: data is not the expected length")
	}

	e := int(q.ecc)
	numBlocks := numErrorCorrectionBlocks[e][q.version]
	eccLen := eccCodewordsPerBlock[e][q.version]
	rawCodewords := numRawDataModules[q.version] / 8
	shortBlockLen := rawCodewords / numBlocks
	numShortBlocks := numBlocks - rawCodewords%numBlocks

	generator := rsGeneratorFor(eccLen)
	blocks := make([][]byte, numBlocks)
	for i, k := 0, 0; i < numBlocks; i++ {
		n := shortBlockLen - eccLen
		if i >= numShortBlocks {
			n++
		}
		chunk := data[k : k+n]
		k += n

		block := make([]byte, shortBlockLen+1)
		copy(block, chunk)
		ecc := rsRemainder(chunk, generator)
		copy(block[len(block)-len(ecc):], ecc)
		blocks[i] = block
	}

	result := make([]byte, rawCodewords)
	k := 0
	for i := 0; i < len(blocks[0]); i++ {
		for j := 0; j < len(blocks); j++ {
			if i == shortBlockLen-eccLen && j < numShortBlocks {
				continue // The short blocks have no byte at this column.
			}
			result[k] = blocks[j][i]
			k++
		}
	}
	return result
}

// drawCodewords writes the data+ECC codewords into every non-function
// module using the zig-zag scan: two columns at a time, right to left,
// alternating scan direction, skipping the vertical timing column.
func (q *QRCode) drawCodewords(data []byte) {
	if len(data) != numRawDataModules[q.version]/8 {
		panic("drawCodewords: data is not the expected length")
	}

	i := 0
	for right := q.size - 1; right >= 1; right -= 2 {
		if right == 6 {
			right = 5
		}
		for vert := 0; vert < q.size; vert++ {
			for j := 0; j < 2; j++ {
				x := right - j
				upward := (right+1)&2 == 0

				y := vert
				if upward {
					y = q.size - 1 - vert
				}

				if !q.isFunction[y][x] && i < len(data)*8 {
					q.modules[y][x] = bitAtBool(int(data[i>>3]), 7-(i&7))
					i++
				}
			}
		}
	}

	if i != len(data)*8 {
		panic("drawCodewords: did not consume every data bit")
	}
}

// applyMask XORs every non-function module with mask's predicate. Calling
// this twice with the same mask is the identity (XOR is its own inverse).
func (q *QRCode) applyMask(mask Mask) {
	for y := 0; y < q.size; y++ {
		for x := 0; x < q.size; x++ {
			if q.isFunction[y][x] {
				continue
			}
			if maskPredicate(mask, x, y) {
				q.modules[y][x] = !q.modules[y][x]
			}
		}
	}
}

// maskPredicate evaluates mask m's invert predicate at (x, y).
func maskPredicate(m Mask, x, y int) bool {
	switch m {
	case 0:
		return (x+y)%2 == 0
	case 1:
		return y%2 == 0
	case 2:
		return x%3 == 0
	case 3:
		return (x+y)%3 == 0
	case 4:
		return (x/3+y/2)%2 == 0
	case 5:
		return x*y%2+x*y%3 == 0
	case 6:
		return (x*y%2+x*y%3)%2 == 0
	case 7:
		return ((x+y)%2+x*y%3)%2 == 0
	default:
		panic("maskPredicate: illegal mask value")
	}
}

// chooseMask applies and returns mask, or (if mask is -1) tries all eight
// masks, keeping whichever scores lowest (ties go to the lowest index), and
// applies that one. Either way the chosen mask's format bits are the last
// thing written.
func (q *QRCode) chooseMask(mask Mask) Mask {
	if mask == autoMask {
		best := Mask(0)
		bestScore := -1
		for m := Mask(0); m <= MaxMask; m++ {
			q.applyMask(m)
			q.drawFormatBits(m)
			score := q.penaltyScore()
			if bestScore == -1 || score < bestScore {
				best = m
				bestScore = score
			}
			q.applyMask(m) // Undo: XOR is its own inverse.
		}
		mask = best
	}

	q.applyMask(mask)
	q.drawFormatBits(mask)
	return mask
}

// penaltyScore sums the four ISO/IEC 18004 mask-evaluation rules (N1-N4)
// over the symbol's current module state.
func (q *QRCode) penaltyScore() int {
	result := 0

	for y := 0; y < q.size; y++ {
		runColor := false
		runLen := 0
		var history [7]int
		for x := 0; x < q.size; x++ {
			if q.modules[y][x] == runColor {
				runLen++
				if runLen == 5 {
					result += penaltyN1
				} else if runLen > 5 {
					result++
				}
			} else {
				q.finderPenaltyAddHistory(runLen, &history)
				if !runColor {
					result += q.finderPenaltyCountPatterns(&history) * penaltyN3
				}
				runColor = q.modules[y][x]
				runLen = 1
			}
		}
		result += q.finderPenaltyTerminateAndCount(runColor, runLen, &history) * penaltyN3
	}

	for x := 0; x < q.size; x++ {
		runColor := false
		runLen := 0
		var history [7]int
		for y := 0; y < q.size; y++ {
			if q.modules[y][x] == runColor {
				runLen++
				if runLen == 5 {
					result += penaltyN1
				} else if runLen > 5 {
					result++
				}
			} else {
				q.finderPenaltyAddHistory(runLen, &history)
				if !runColor {
					result += q.finderPenaltyCountPatterns(&history) * penaltyN3
				}
				runColor = q.modules[y][x]
				runLen = 1
			}
		}
		result += q.finderPenaltyTerminateAndCount(runColor, runLen, &history) * penaltyN3
	}

	for y := 0; y < q.size-1; y++ {
		for x := 0; x < q.size-1; x++ {
			c := q.modules[y][x]
			if c == q.modules[y][x+1] && c == q.modules[y+1][x] && c == q.modules[y+1][x+1] {
				result += penaltyN2
			}
		}
	}

	dark := 0
	for _, row := range q.modules {
		for _, c := range row {
			if c {
				dark++
			}
		}
	}
	total := q.size * q.size
	k := (abs(dark*20-total*10)+total-1)/total - 1
	result += k * penaltyN4

	return result
}

// finderPenaltyAddHistory pushes currentRunLength to the front of the
// 7-entry sliding run-length history, dropping the oldest entry. The very
// first run recorded is padded with an implicit light quiet-zone border of
// length Size.
func (q *QRCode) finderPenaltyAddHistory(runLength int, history *[7]int) {
	if history[0] == 0 {
		runLength += q.size
	}
	copy(history[1:], history[:6])
	history[0] = runLength
}

// finderPenaltyCountPatterns checks the current history for the 1:1:3:1:1
// finder-like ratio and returns how many of the two (leading, trailing)
// light-run conditions it satisfies (0, 1, or 2).
func (q *QRCode) finderPenaltyCountPatterns(history *[7]int) int {
	n := history[1]
	if n > q.size*3 {
		panic("finderPenaltyCountPatterns: run history out of range")
	}
	core := n > 0 && history[2] == n && history[3] == n*3 && history[4] == n && history[5] == n
	return boolToInt(core && history[0] >= n*4 && history[6] >= n) +
		boolToInt(core && history[6] >= n*4 && history[0] >= n)
}

// finderPenaltyTerminateAndCount closes out the final run of a row or
// column (padding it with the implicit light border) and scores it.
func (q *QRCode) finderPenaltyTerminateAndCount(runColor bool, runLength int, history *[7]int) int {
	if runColor {
		q.finderPenaltyAddHistory(runLength, history)
		runLength = 0
	}
	runLength += q.size
	q.finderPenaltyAddHistory(runLength, history)
	return q.finderPenaltyCountPatterns(history)
}

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

// Ratified ISO/IEC 18004 tables, indexed [int(ecl)][version], i.e. by the
// ECL constants' own declaration order (Low, Medium, Quartile, High), which
// is NOT the same order as ecl.formatBits() (see ecl.go). Column 0 of each
// row is a sentinel never read (versions start at 1).
var (
	eccCodewordsPerBlock = [4][41]int{
		//     0,  1,  2,  3,  4,  5,  6,  7,  8,  9, 10, 11, 12, 13, 14, 15, 16, 17, 18, 19, 20, 21, 22, 23, 24, 25, 26, 27, 28, 29, 30, 31, 32, 33, 34, 35, 36, 37, 38, 39, 40
		{-1, 7, 10, 15, 20, 26, 18, 20, 24, 30, 18, 20, 24, 26, 30, 22, 24, 28, 30, 28, 28, 28, 28, 30, 30, 26, 28, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30},  // Low
		{-1, 10, 16, 26, 18, 24, 16, 18, 22, 22, 26, 30, 22, 22, 24, 24, 28, 28, 26, 26, 26, 26, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28}, // Medium
		{-1, 13, 22, 18, 26, 18, 24, 18, 22, 20, 24, 28, 26, 24, 20, 30, 24, 28, 28, 26, 30, 28, 30, 30, 30, 30, 28, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30}, // Quartile
		{-1, 17, 28, 22, 16, 22, 28, 26, 26, 24, 28, 24, 28, 22, 24, 24, 30, 28, 28, 26, 28, 30, 24, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30}, // High
	}

	numErrorCorrectionBlocks = [4][41]int{
		{-1, 1, 1, 1, 1, 1, 2, 2, 2, 2, 4, 4, 4, 4, 4, 6, 6, 6, 6, 7, 8, 8, 9, 9, 10, 12, 12, 12, 13, 14, 15, 16, 17, 18, 19, 19, 20, 21, 22, 24, 25},              // Low
		{-1, 1, 1, 1, 2, 2, 4, 4, 4, 5, 5, 5, 8, 9, 9, 10, 10, 11, 13, 14, 16, 17, 17, 18, 20, 21, 23, 25, 26, 28, 29, 31, 33, 35, 37, 38, 40, 43, 45, 47, 49},     // Medium
		{-1, 1, 1, 2, 2, 4, 4, 6, 6, 8, 8, 8, 10, 12, 16, 12, 17, 16, 18, 21, 20, 23, 23, 25, 27, 29, 34, 34, 35, 38, 40, 43, 45, 48, 51, 53, 56, 59, 62, 65, 68},  // Quartile
		{-1, 1, 1, 2, 4, 4, 4, 5, 6, 8, 8, 11, 11, 16, 16, 18, 16, 19, 21, 25, 25, 25, 34, 30, 32, 35, 37, 40, 42, 45, 48, 51, 54, 57, 60, 63, 66, 70, 74, 77, 81}, // High
	}

	// numDataCodewords[e][v] is numRawDataModules(v)/8 minus the ECC
	// codewords spent on every block, filled in by init.
	numDataCodewords [4][41]int

	// numRawDataModules[v] is rawDataModules(v), filled in by init.
	numRawDataModules [41]int

	// alignmentPatternPositions[v] caches alignmentPositions(v).
	alignmentPatternPositions [41][]int

	// rsGeneratorCache holds one precomputed Reed-Solomon generator
	// polynomial per distinct block ECC length appearing in
	// eccCodewordsPerBlock, filled in by init. Read-only after init, so it
	// is safe to share across concurrent encodings without locking.
	rsGeneratorCache = make(map[int][]byte)
)

func init() {
	for v := 1; v <= MaxVersion.int(); v++ {
		numRawDataModules[v] = rawDataModules(Version(v))
	}

	for e := 0; e < 4; e++ {
		for v := 1; v <= MaxVersion.int(); v++ {
			numDataCodewords[e][v] = numRawDataModules[v]/8 - eccCodewordsPerBlock[e][v]*numErrorCorrectionBlocks[e][v]
		}
	}

	for v := 1; v <= MaxVersion.int(); v++ {
		alignmentPatternPositions[v] = alignmentPositions(Version(v))
	}

	for e := 0; e < 4; e++ {
		for v := 1; v <= MaxVersion.int(); v++ {
			degree := eccCodewordsPerBlock[e][v]
			if _, ok := rsGeneratorCache[degree]; ok {
				continue
			}
			rsGeneratorCache[degree] = rsGenerator(degree)
		}
	}
}

// rsGeneratorFor returns the precomputed Reed-Solomon generator polynomial
// for the given block ECC length, computed once in init rather than on
// every call to addECCAndInterleave.
func rsGeneratorFor(degree int) []byte {
	return rsGeneratorCache[degree]
}

func (v Version) int() int {
	return int(v)
}

// rawDataModules computes the number of bits available for data + ECC at
// this version, after subtracting every function pattern: three finder
// blocks with separators (192 modules), the timing patterns and the one
// always-dark format module (31 + 2*(size-16)), alignment patterns for
// v >= 2, and the two version-information blocks for v >= 7. The result is
// always in [208, 29648].
func rawDataModules(v Version) int {
	size := v.size()
	result := size*size - 192 - 31 - 2*(size-16)
	if v >= 2 {
		a := v.int()/7 + 2
		result -= 25*(a-1)*(a-1) + 40*(a-2)
	}
	if v >= 7 {
		result -= 36
	}
	if result < 208 || result > 29648 {
		panic("rawDataModules: computed value out of the documented range")
	}
	return result
}

// numDataCodewordsFor returns the number of 8-bit data codewords (ECC
// excluded, remainder bits discarded) a symbol of this version and ECC
// level can carry.
func numDataCodewordsFor(v Version, e ECL) int {
	return numDataCodewords[int(e)][v]
}

// alignmentPositions returns the ascending list of row/column coordinates
// at which alignment-pattern centers sit for this version (empty for
// version 1).
func alignmentPositions(v Version) []int {
	if v == 1 {
		return nil
	}

	numAlign := v.int()/7 + 2
	var step int
	if v == 32 { // The one version the formula doesn't fit cleanly.
		step = 26
	} else {
		step = ((v.int()*4 + numAlign*2 + 1) / (numAlign*2 - 2)) * 2
	}

	result := make([]int, numAlign)
	result[0] = 6
	pos := v.size() - 7
	for i := len(result) - 1; i >= 1; i-- {
		result[i] = pos
		pos -= step
	}
	return result
}

func abs(a int) int {
	if a >= 0 {
		return a
	}
	return -a
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func bitAtBool(x, i int) bool {
	return x>>uint(i)&1 == 1
}

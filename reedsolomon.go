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

// GF(2^8) arithmetic and Reed-Solomon generator/remainder computation, with
// reducing polynomial 0x11D and generator root alpha = 2. This is the
// subsystem that produces the error-correction codewords appended to every
// data block.

// gf256Multiply returns x*y in GF(2^8), reduced modulo 0x11D.
func gf256Multiply(x, y byte) byte {
	z := 0
	for i := 7; i >= 0; i-- {
		z = z<<1 ^ (z>>7)*0x11D
		z ^= int(y>>uint(i)&1) * int(x)
	}
	return byte(z)
}

// rsGenerator returns the coefficients, highest-degree first with the
// leading 1 omitted, of the Reed-Solomon generator polynomial of the given
// degree: the product (x - 2^0)(x - 2^1)...(x - 2^(degree-1)) over GF(256).
// tables.go's init precomputes one of these per distinct block ECC length
// into rsGeneratorCache; callers encoding a symbol use rsGeneratorFor
// instead of calling this directly.
func rsGenerator(degree int) []byte {
	if degree < 1 || degree > 255 {
		panic("rsGenerator: degree out of range")
	}

	result := make([]byte, degree)
	result[degree-1] = 1

	root := byte(1)
	for i := 0; i < degree; i++ {
		for j := 0; j < len(result); j++ {
			result[j] = gf256Multiply(result[j], root)
			if j+1 < len(result) {
				result[j] ^= result[j+1]
			}
		}
		root = gf256Multiply(root, 0x02)
	}

	return result
}

// rsRemainder returns the Reed-Solomon remainder of data modulo divisor: the
// error-correction codewords for one data block, with len(divisor) bytes of
// output.
func rsRemainder(data, divisor []byte) []byte {
	result := make([]byte, len(divisor))
	for _, b := range data {
		factor := b ^ result[0]
		copy(result, result[1:])
		result[len(result)-1] = 0
		for i, d := range divisor {
			result[i] ^= gf256Multiply(d, factor)
		}
	}
	return result
}

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

// Mode names the encoding used for one segment of a QR code's data: how
// characters are packed into bits, and how wide the character-count field is
// for each of the three version groups (1-9, 10-26, 27-40).
type Mode struct {
	indicator int8
	countBits [3]int8
}

// The modes this encoder knows about. Kanji-mode encoding is not
// implemented; its indicator and count-field widths are recorded anyway
// since they are part of the fixed ISO/IEC 18004 table and cost nothing to
// keep alongside the others.
var (
	Numeric      = Mode{0x1, [3]int8{10, 12, 14}}
	Alphanumeric = Mode{0x2, [3]int8{9, 11, 13}}
	Byte         = Mode{0x4, [3]int8{8, 16, 16}}
	kanji        = Mode{0x8, [3]int8{8, 10, 12}}
	ECI          = Mode{0x7, [3]int8{0, 0, 0}}
)

// numCharCountBits returns the width, in bits, of the character-count field
// for this mode at the given version.
func (m Mode) numCharCountBits(version Version) int {
	return int(m.countBits[version.groupIndex()])
}

/*
 * rv32g - Convert values to hex strings for register and memory dumps.
 *
 * Copyright 2025, rv32g Authors
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

// Package hexfmt renders register and memory values the way the debug shell
// and counter exporter print them.
package hexfmt

import "strings"

var hexMap = "0123456789abcdef"

// FormatWord32 appends an 8 hex-digit, space-terminated rendering of each
// word to str.
func FormatWord32(str *strings.Builder, words []uint32) {
	for _, full := range words {
		shift := 28
		for range 8 {
			str.WriteByte(hexMap[(full>>shift)&0xf])
			shift -= 4
		}
		str.WriteByte(' ')
	}
}

// FormatBytes appends the hex rendering of data, optionally space-separated.
func FormatBytes(str *strings.Builder, space bool, data []byte) {
	for _, b := range data {
		str.WriteByte(hexMap[(b>>4)&0xf])
		str.WriteByte(hexMap[b&0xf])
		if space {
			str.WriteByte(' ')
		}
	}
}

// Word32 renders a single 32-bit value as an 8 digit hex string with a
// leading "0x".
func Word32(v uint32) string {
	var b strings.Builder
	b.WriteString("0x")
	FormatWord32(&b, []uint32{v})
	return strings.TrimSpace(b.String())
}

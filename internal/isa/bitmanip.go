/*
 * rv32g - Zba/Zbb/Zbc/Zbs bit-manipulation semantics (spec.md 4.5).
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

package isa

import "math/bits"

// ShAdd implements Zba sh1add/sh2add/sh3add: rs2 + (rs1 << shift).
func ShAdd(rs1, rs2, shift uint32) uint32 {
	return rs2 + (rs1 << shift)
}

// Andn, Orn and Xnor implement the Zbb logic-with-complement trio.
func Andn(rs1, rs2 uint32) uint32 { return rs1 &^ rs2 }
func Orn(rs1, rs2 uint32) uint32  { return rs1 | ^rs2 }
func Xnor(rs1, rs2 uint32) uint32 { return ^(rs1 ^ rs2) }

// Clz, Ctz and Cpop are the Zbb bit-counting trio over 32 bits.
func Clz(x uint32) uint32  { return uint32(bits.LeadingZeros32(x)) }
func Ctz(x uint32) uint32  { return uint32(bits.TrailingZeros32(x)) }
func Cpop(x uint32) uint32 { return uint32(bits.OnesCount32(x)) }

// Max, Min, Maxu and Minu are the Zbb signed/unsigned min/max pair.
func Max(a, b int32) int32 {
	if a > b {
		return a
	}
	return b
}

func Min(a, b int32) int32 {
	if a < b {
		return a
	}
	return b
}

func Maxu(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

func Minu(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

// SextB, SextH and ZextH narrow then widen, with or without sign extension.
func SextB(x uint32) uint32 { return uint32(int32(int8(x))) }
func SextH(x uint32) uint32 { return uint32(int32(int16(x))) }
func ZextH(x uint32) uint32 { return x & 0xffff }

// Rol and Ror implement Zbb rotate-left/right. The shift amount is masked
// to the low 5 bits; the zero-shift case is special-cased because
// `x >> (32 - 0)` is `x >> 32`, which (per spec.md 9) must not be reached
// by the naive rotate formula.
func Rol(x, shamt uint32) uint32 {
	shamt &= 31
	if shamt == 0 {
		return x
	}
	return (x << shamt) | (x >> (32 - shamt))
}

func Ror(x, shamt uint32) uint32 {
	shamt &= 31
	if shamt == 0 {
		return x
	}
	return (x >> shamt) | (x << (32 - shamt))
}

// OrcB implements Zbb orc.b: each output byte is 0xFF if the corresponding
// input byte is non-zero, else 0x00.
func OrcB(x uint32) uint32 {
	var out uint32
	for i := 0; i < 4; i++ {
		shift := uint(i * 8)
		b := byte(x >> shift)
		if b != 0 {
			out |= 0xff << shift
		}
	}
	return out
}

// Rev8 reverses the byte order of a 32-bit word.
func Rev8(x uint32) uint32 {
	return bits.ReverseBytes32(x)
}

// Clmul, Clmulh and Clmulr are the Zbc carry-less multiply family. Clmul
// returns the low 32 bits of the 63-bit carry-less product, Clmulh the
// high 32 bits, and Clmulr bits [62:31] (spec.md 4.5, 9).
func Clmul(rs1, rs2 uint32) uint32 {
	var result uint32
	for i := uint32(0); i < 32; i++ {
		if (rs2>>i)&1 != 0 {
			result ^= rs1 << i
		}
	}
	return result
}

func Clmulh(rs1, rs2 uint32) uint32 {
	var result uint32
	for i := uint32(1); i < 32; i++ {
		if (rs2>>i)&1 != 0 {
			result ^= rs1 >> (32 - i)
		}
	}
	return result
}

func Clmulr(rs1, rs2 uint32) uint32 {
	var result uint32
	for i := uint32(0); i < 32; i++ {
		if (rs2>>i)&1 != 0 {
			result ^= rs1 >> (31 - i)
		}
	}
	return result
}

// Bclr, Bset, Binv and Bext are the Zbs single-bit family; the bit index
// is rs2 mod 32.
func Bclr(rs1, rs2 uint32) uint32 { return rs1 &^ (1 << (rs2 & 31)) }
func Bset(rs1, rs2 uint32) uint32 { return rs1 | (1 << (rs2 & 31)) }
func Binv(rs1, rs2 uint32) uint32 { return rs1 ^ (1 << (rs2 & 31)) }
func Bext(rs1, rs2 uint32) uint32 { return (rs1 >> (rs2 & 31)) & 1 }

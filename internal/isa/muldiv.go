/*
 * rv32g - M-extension multiply/divide semantics. Division by zero and
 * signed overflow follow the RV32M-defined results rather than trapping
 * (spec.md 4.1).
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

import (
	"github.com/rv32g/rv32g/internal/decoder"
	"github.com/rv32g/rv32g/internal/state"
)

func ExecMul(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, rs1v(s, inst)*rs2v(s, inst))
}

// ExecMulh returns the high 32 bits of the signed*signed 64-bit product.
func ExecMulh(s *state.State, inst *decoder.Instruction) {
	p := int64(int32(rs1v(s, inst))) * int64(int32(rs2v(s, inst)))
	writeRd(s, inst, uint32(p>>32))
}

// ExecMulhu returns the high 32 bits of the unsigned*unsigned 64-bit product.
func ExecMulhu(s *state.State, inst *decoder.Instruction) {
	p := uint64(rs1v(s, inst)) * uint64(rs2v(s, inst))
	writeRd(s, inst, uint32(p>>32))
}

// ExecMulhsu returns the high 32 bits of the signed(rs1)*unsigned(rs2) product.
func ExecMulhsu(s *state.State, inst *decoder.Instruction) {
	p := int64(int32(rs1v(s, inst))) * int64(rs2v(s, inst))
	writeRd(s, inst, uint32(p>>32))
}

// ExecDiv performs signed division. Division by zero yields -1; the
// overflow case MinInt32/-1 yields MinInt32 unchanged, both per the
// RV32M spec rather than trapping.
func ExecDiv(s *state.State, inst *decoder.Instruction) {
	a, b := int32(rs1v(s, inst)), int32(rs2v(s, inst))
	switch {
	case b == 0:
		writeRd(s, inst, 0xffffffff)
	case a == -0x80000000 && b == -1:
		writeRd(s, inst, uint32(a))
	default:
		writeRd(s, inst, uint32(a/b))
	}
}

// ExecDivu performs unsigned division; division by zero yields 0xffffffff.
func ExecDivu(s *state.State, inst *decoder.Instruction) {
	a, b := rs1v(s, inst), rs2v(s, inst)
	if b == 0 {
		writeRd(s, inst, 0xffffffff)
		return
	}
	writeRd(s, inst, a/b)
}

// ExecRem performs signed remainder; division by zero yields rs1 unchanged,
// and MinInt32 % -1 yields 0.
func ExecRem(s *state.State, inst *decoder.Instruction) {
	a, b := int32(rs1v(s, inst)), int32(rs2v(s, inst))
	switch {
	case b == 0:
		writeRd(s, inst, uint32(a))
	case a == -0x80000000 && b == -1:
		writeRd(s, inst, 0)
	default:
		writeRd(s, inst, uint32(a%b))
	}
}

// ExecRemu performs unsigned remainder; division by zero yields rs1 unchanged.
func ExecRemu(s *state.State, inst *decoder.Instruction) {
	a, b := rs1v(s, inst), rs2v(s, inst)
	if b == 0 {
		writeRd(s, inst, a)
		return
	}
	writeRd(s, inst, a%b)
}

/*
 * rv32g - Shift semantics: sll/srl/sra, register and immediate forms
 * (spec.md 4.1, RV32I).
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

// ExecSll, ExecSrl and ExecSra shift by the low 5 bits of rs2.
func ExecSll(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, rs1v(s, inst)<<(rs2v(s, inst)&31))
}

func ExecSrl(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, rs1v(s, inst)>>(rs2v(s, inst)&31))
}

func ExecSra(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, uint32(int32(rs1v(s, inst))>>(rs2v(s, inst)&31)))
}

// ExecSlli, ExecSrli and ExecSrai shift by the immediate-encoded shamt.
func ExecSlli(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, rs1v(s, inst)<<(inst.Shamt&31))
}

func ExecSrli(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, rs1v(s, inst)>>(inst.Shamt&31))
}

func ExecSrai(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, uint32(int32(rs1v(s, inst))>>(inst.Shamt&31)))
}

/*
 * rv32g - Exec wrappers binding the pure bitmanip.go functions to the
 * decoder.Semantic signature (spec.md 4.5).
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

// Register-register Zbb/Zbc/Zba forms.
func ExecAndn(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, Andn(rs1v(s, inst), rs2v(s, inst)))
}

func ExecOrn(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, Orn(rs1v(s, inst), rs2v(s, inst)))
}

func ExecXnor(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, Xnor(rs1v(s, inst), rs2v(s, inst)))
}

func ExecRolReg(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, Rol(rs1v(s, inst), rs2v(s, inst)))
}

func ExecRorReg(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, Ror(rs1v(s, inst), rs2v(s, inst)))
}

func ExecMaxReg(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, uint32(Max(int32(rs1v(s, inst)), int32(rs2v(s, inst)))))
}

func ExecMinReg(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, uint32(Min(int32(rs1v(s, inst)), int32(rs2v(s, inst)))))
}

func ExecMaxuReg(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, Maxu(rs1v(s, inst), rs2v(s, inst)))
}

func ExecMinuReg(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, Minu(rs1v(s, inst), rs2v(s, inst)))
}

func ExecClmul(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, Clmul(rs1v(s, inst), rs2v(s, inst)))
}

func ExecClmulh(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, Clmulh(rs1v(s, inst), rs2v(s, inst)))
}

func ExecClmulr(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, Clmulr(rs1v(s, inst), rs2v(s, inst)))
}

func ExecBclr(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, Bclr(rs1v(s, inst), rs2v(s, inst)))
}

func ExecBset(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, Bset(rs1v(s, inst), rs2v(s, inst)))
}

func ExecBinv(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, Binv(rs1v(s, inst), rs2v(s, inst)))
}

func ExecBext(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, Bext(rs1v(s, inst), rs2v(s, inst)))
}

// ExecShAdd implements sh1add/sh2add/sh3add, the shift amount having been
// bound into inst.Shamt at decode time.
func ExecShAdd(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, ShAdd(rs1v(s, inst), rs2v(s, inst), inst.Shamt))
}

// Immediate/unary Zbb forms sharing OP-IMM's funct3==1/5 encoding space.
func ExecClzOp(s *state.State, inst *decoder.Instruction)   { writeRd(s, inst, Clz(rs1v(s, inst))) }
func ExecCtzOp(s *state.State, inst *decoder.Instruction)   { writeRd(s, inst, Ctz(rs1v(s, inst))) }
func ExecCpopOp(s *state.State, inst *decoder.Instruction)  { writeRd(s, inst, Cpop(rs1v(s, inst))) }
func ExecSextBOp(s *state.State, inst *decoder.Instruction) { writeRd(s, inst, SextB(rs1v(s, inst))) }
func ExecSextHOp(s *state.State, inst *decoder.Instruction) { writeRd(s, inst, SextH(rs1v(s, inst))) }
func ExecOrcBOp(s *state.State, inst *decoder.Instruction)  { writeRd(s, inst, OrcB(rs1v(s, inst))) }
func ExecRev8Op(s *state.State, inst *decoder.Instruction)  { writeRd(s, inst, Rev8(rs1v(s, inst))) }

// ExecRori implements the Zbb immediate-shift rotate-right, the shift
// amount bound into inst.Shamt the same way slli/srli/srai bind theirs.
func ExecRori(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, Ror(rs1v(s, inst), inst.Shamt))
}

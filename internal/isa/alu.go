/*
 * rv32g - Integer ALU semantics: register-register and register-immediate
 * arithmetic/logic (spec.md 4.1, RV32I).
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

func rs1v(s *state.State, inst *decoder.Instruction) uint32 { return s.ReadInt(inst.Rs1) }
func rs2v(s *state.State, inst *decoder.Instruction) uint32 { return s.ReadInt(inst.Rs2) }

func writeRd(s *state.State, inst *decoder.Instruction, v uint32) {
	if inst.Rd != "" {
		s.WriteInt(inst.Rd, v)
	}
}

// ExecAdd, ExecSub, ExecAnd, ExecOr, ExecXor implement the register-register
// ALU family; ExecAddi and friends implement the register-immediate forms
// sharing the same math against inst.Imm.
func ExecAdd(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, rs1v(s, inst)+rs2v(s, inst))
}

func ExecSub(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, rs1v(s, inst)-rs2v(s, inst))
}

func ExecAnd(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, rs1v(s, inst)&rs2v(s, inst))
}

func ExecOr(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, rs1v(s, inst)|rs2v(s, inst))
}

func ExecXor(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, rs1v(s, inst)^rs2v(s, inst))
}

func ExecSlt(s *state.State, inst *decoder.Instruction) {
	v := uint32(0)
	if int32(rs1v(s, inst)) < int32(rs2v(s, inst)) {
		v = 1
	}
	writeRd(s, inst, v)
}

func ExecSltu(s *state.State, inst *decoder.Instruction) {
	v := uint32(0)
	if rs1v(s, inst) < rs2v(s, inst) {
		v = 1
	}
	writeRd(s, inst, v)
}

func ExecAddi(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, rs1v(s, inst)+uint32(inst.Imm))
}

func ExecAndi(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, rs1v(s, inst)&uint32(inst.Imm))
}

func ExecOri(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, rs1v(s, inst)|uint32(inst.Imm))
}

func ExecXori(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, rs1v(s, inst)^uint32(inst.Imm))
}

func ExecSlti(s *state.State, inst *decoder.Instruction) {
	v := uint32(0)
	if int32(rs1v(s, inst)) < inst.Imm {
		v = 1
	}
	writeRd(s, inst, v)
}

func ExecSltiu(s *state.State, inst *decoder.Instruction) {
	v := uint32(0)
	if rs1v(s, inst) < uint32(inst.Imm) {
		v = 1
	}
	writeRd(s, inst, v)
}

// ExecLui and ExecAuipc implement the two upper-immediate formers.
func ExecLui(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, uint32(inst.Imm))
}

func ExecAuipc(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, inst.PC+uint32(inst.Imm))
}

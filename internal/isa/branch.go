/*
 * rv32g - Conditional branch semantics (spec.md 4.1, RV32I).
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

// branch takes the branch when cond holds, updating PC itself and setting
// inst.PCUpdated so the core does not also advance by inst.Width.
func branch(s *state.State, inst *decoder.Instruction, cond bool) {
	if cond {
		s.SetPC(inst.PC + uint32(inst.Imm))
		inst.PCUpdated = true
	}
}

func ExecBeq(s *state.State, inst *decoder.Instruction) {
	branch(s, inst, rs1v(s, inst) == rs2v(s, inst))
}

func ExecBne(s *state.State, inst *decoder.Instruction) {
	branch(s, inst, rs1v(s, inst) != rs2v(s, inst))
}

func ExecBlt(s *state.State, inst *decoder.Instruction) {
	branch(s, inst, int32(rs1v(s, inst)) < int32(rs2v(s, inst)))
}

func ExecBge(s *state.State, inst *decoder.Instruction) {
	branch(s, inst, int32(rs1v(s, inst)) >= int32(rs2v(s, inst)))
}

func ExecBltu(s *state.State, inst *decoder.Instruction) {
	branch(s, inst, rs1v(s, inst) < rs2v(s, inst))
}

func ExecBgeu(s *state.State, inst *decoder.Instruction) {
	branch(s, inst, rs1v(s, inst) >= rs2v(s, inst))
}

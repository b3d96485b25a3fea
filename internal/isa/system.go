/*
 * rv32g - System/Zicsr semantics: ecall, ebreak, fence(.i), the csrrw/csrrs/
 * csrrc family and their immediate forms, plus the privileged no-ops mret
 * and wfi this single-hart, machine-mode-only simulator accepts without
 * effect (spec.md 4.3, Non-goals).
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
	"github.com/rv32g/rv32g/internal/register"
	"github.com/rv32g/rv32g/internal/state"
)

// EcallCause and EbreakCause are the mcause values raised for an
// environment call or breakpoint that no registered handler consumed.
const (
	EcallCause  = 11 // environment call from M-mode
	EbreakCause = 3  // breakpoint
)

// ExecEcall offers the ecall to every registered handler (HTIF, ARM
// semihosting); one unclaimed, it raises the standard synchronous trap.
func ExecEcall(s *state.State, inst *decoder.Instruction) {
	if s.Ecall() {
		return
	}
	s.RaiseTrap(EcallCause, inst.PC, 0)
}

// ExecEbreak offers the ebreak to every registered handler; one unclaimed,
// it raises a breakpoint trap.
func ExecEbreak(s *state.State, inst *decoder.Instruction) {
	if s.Ebreak(inst.PC) {
		return
	}
	s.RaiseTrap(EbreakCause, inst.PC, 0)
}

// ExecFence and ExecFenceI are no-ops: this simulator executes one
// instruction at a time with memory and instruction-cache effects visible
// immediately, so there is nothing left to order or flush (spec.md 4.4,
// Non-goals).
func ExecFence(s *state.State, inst *decoder.Instruction)  {}
func ExecFenceI(s *state.State, inst *decoder.Instruction) {}

// ExecMret and ExecWfi are accepted but have no effect: this simulator
// models machine mode only, with a single privilege level, so there is no
// lower mode to return to and no interrupt to wait for (spec.md Non-goals).
func ExecMret(s *state.State, inst *decoder.Instruction) {}
func ExecWfi(s *state.State, inst *decoder.Instruction)  {}

func csrName(inst *decoder.Instruction) string {
	return register.CSRName(inst.CSR)
}

// ExecCsrrw reads the old CSR value into rd (unless rd is x0) then writes
// rs1's value unconditionally.
func ExecCsrrw(s *state.State, inst *decoder.Instruction) {
	name := csrName(inst)
	old, _ := s.Regs.Read(name)
	if inst.Rd != "" {
		writeRd(s, inst, uint32(old))
	}
	s.Regs.Write(name, uint64(rs1v(s, inst)))
}

// ExecCsrrs reads the old CSR value into rd, then sets the bits named by
// rs1; a zero rs1 makes this a pure read with no write.
func ExecCsrrs(s *state.State, inst *decoder.Instruction) {
	name := csrName(inst)
	old, _ := s.Regs.Read(name)
	writeRd(s, inst, uint32(old))
	if mask := rs1v(s, inst); mask != 0 {
		s.Regs.Write(name, old|uint64(mask))
	}
}

// ExecCsrrc reads the old CSR value into rd, then clears the bits named by
// rs1; a zero rs1 makes this a pure read with no write.
func ExecCsrrc(s *state.State, inst *decoder.Instruction) {
	name := csrName(inst)
	old, _ := s.Regs.Read(name)
	writeRd(s, inst, uint32(old))
	if mask := rs1v(s, inst); mask != 0 {
		s.Regs.Write(name, old&^uint64(mask))
	}
}

// ExecCsrrwi, ExecCsrrsi and ExecCsrrci mirror the register forms above
// using the 5-bit immediate (carried in inst.Imm) in place of rs1.
func ExecCsrrwi(s *state.State, inst *decoder.Instruction) {
	name := csrName(inst)
	old, _ := s.Regs.Read(name)
	if inst.Rd != "" {
		writeRd(s, inst, uint32(old))
	}
	s.Regs.Write(name, uint64(uint32(inst.Imm)))
}

func ExecCsrrsi(s *state.State, inst *decoder.Instruction) {
	name := csrName(inst)
	old, _ := s.Regs.Read(name)
	writeRd(s, inst, uint32(old))
	if mask := uint32(inst.Imm); mask != 0 {
		s.Regs.Write(name, old|uint64(mask))
	}
}

func ExecCsrrci(s *state.State, inst *decoder.Instruction) {
	name := csrName(inst)
	old, _ := s.Regs.Read(name)
	writeRd(s, inst, uint32(old))
	if mask := uint32(inst.Imm); mask != 0 {
		s.Regs.Write(name, old&^uint64(mask))
	}
}

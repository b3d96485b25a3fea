/*
 * rv32g - A-extension semantics: lr.w/sc.w reservations and the amo*.w
 * read-modify-write family, wired onto the memory package's reservation
 * tracking (spec.md 4.1, 4.2).
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
	"github.com/rv32g/rv32g/internal/memory"
	"github.com/rv32g/rv32g/internal/state"
)

// atomicMem is the subset of *memory.Memory / *memory.Watcher the A
// extension needs; state.MemIO stays narrow so non-atomic callers (the
// debug shell's raw peek/poke, for instance) don't have to provide it.
type atomicMem interface {
	Reserve(addr uint32)
	CancelReservation()
	CheckAndClear(addr uint32) bool
	Amo(op memory.AmoOp, addr, operand uint32) uint32
}

func asAtomic(s *state.State) (atomicMem, bool) {
	m, ok := s.Mem.(atomicMem)
	return m, ok
}

// ExecLrW establishes a reservation on the naturally aligned word containing
// the address and loads it.
func ExecLrW(s *state.State, inst *decoder.Instruction) {
	addr := rs1v(s, inst)
	if m, ok := asAtomic(s); ok {
		m.Reserve(addr)
	}
	writeRd(s, inst, s.Mem.LoadWord(addr))
}

// ExecScW stores rs2 to the reserved word only if the reservation is still
// live, writing 0 (success) or 1 (failure) to rd per RV32A.
func ExecScW(s *state.State, inst *decoder.Instruction) {
	addr := rs1v(s, inst)
	m, ok := asAtomic(s)
	if !ok {
		writeRd(s, inst, 1)
		return
	}
	if !m.CheckAndClear(addr) {
		writeRd(s, inst, 1)
		return
	}
	s.Mem.StoreWord(addr, rs2v(s, inst))
	writeRd(s, inst, 0)
}

func execAmo(s *state.State, inst *decoder.Instruction, op memory.AmoOp) {
	addr := rs1v(s, inst)
	m, ok := asAtomic(s)
	if !ok {
		writeRd(s, inst, s.Mem.LoadWord(addr))
		return
	}
	writeRd(s, inst, m.Amo(op, addr, rs2v(s, inst)))
}

func ExecAmoswapW(s *state.State, inst *decoder.Instruction) { execAmo(s, inst, memory.AmoSwap) }
func ExecAmoaddW(s *state.State, inst *decoder.Instruction)  { execAmo(s, inst, memory.AmoAdd) }
func ExecAmoandW(s *state.State, inst *decoder.Instruction)  { execAmo(s, inst, memory.AmoAnd) }
func ExecAmoorW(s *state.State, inst *decoder.Instruction)   { execAmo(s, inst, memory.AmoOr) }
func ExecAmoxorW(s *state.State, inst *decoder.Instruction)  { execAmo(s, inst, memory.AmoXor) }
func ExecAmominW(s *state.State, inst *decoder.Instruction)  { execAmo(s, inst, memory.AmoMin) }
func ExecAmomaxW(s *state.State, inst *decoder.Instruction)  { execAmo(s, inst, memory.AmoMax) }
func ExecAmominuW(s *state.State, inst *decoder.Instruction) { execAmo(s, inst, memory.AmoMinu) }
func ExecAmomaxuW(s *state.State, inst *decoder.Instruction) { execAmo(s, inst, memory.AmoMaxu) }

/*
 * rv32g - Architectural state: registers, FP/vector configuration, memory,
 * and the ecall/ebreak/trap hooks the run loop and semantics layer share.
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

// Package state implements the architectural-state component of spec.md
// 4.3: the register file, FP and vector configuration, memory access (with
// an optional watcher in front), and the ecall/ebreak handler chain.
package state

import (
	"github.com/rv32g/rv32g/internal/register"
)

// MemIO is the narrow memory capability State needs; both *memory.Memory
// and *memory.Watcher satisfy it.
type MemIO interface {
	Load(addr uint32, dst []byte)
	Store(addr uint32, src []byte)
	LoadWord(addr uint32) uint32
	StoreWord(addr uint32, v uint32)
}

// EcallHandler is offered every ecall the core encounters, in registration
// order. The first to return handled=true stops propagation (spec.md 4.3).
type EcallHandler func(s *State) (handled bool)

// EbreakHandler is offered every ebreak the same way; pc is the address of
// the ebreak instruction.
type EbreakHandler func(s *State, pc uint32) (handled bool)

// Trap records a fatal condition recognized by the semantics layer. Cause
// follows the RISC-V mcause encoding (synchronous exception codes).
type Trap struct {
	Cause uint32
	PC    uint32
	Tval  uint32
}

// State owns every piece of per-hart architectural state.
type State struct {
	Regs *register.File
	FP   FPState
	V    VectorState

	// VRegs holds the 32 vector registers as raw little-endian byte
	// slices, VLEN/8 bytes each; vector semantics index directly into
	// these rather than through the scalar register.File.
	VRegs [32][]byte

	Mem MemIO

	pc uint32

	ecallHandlers  []EcallHandler
	ebreakHandlers []EbreakHandler

	pendingTrap *Trap
}

// New builds a State with x0-x31, f0-f31 (plus ABI aliases), the CSRs this
// simulator models, and 32 zeroed vector registers.
func New(mem MemIO) *State {
	s := &State{Regs: register.NewFile(), Mem: mem}

	for i := 0; i < 32; i++ {
		s.Regs.Add(intRegName(i), 32)
	}
	for name, alias := range intABINames {
		s.Regs.Alias(name, alias)
	}

	for i := 0; i < 32; i++ {
		s.Regs.Add(fpRegName(i), 64)
	}
	for name, alias := range fpABINames {
		s.Regs.Alias(name, alias)
	}

	s.Regs.AddCSR(register.CSRFflags, func(old, new uint64) { s.FP.Flags = uint32(new) & 0x1f })
	s.Regs.AddCSR(register.CSRFrm, func(old, new uint64) { s.FP.RM = uint32(new) & 0x7 })
	s.Regs.AddCSR(register.CSRFcsr, func(old, new uint64) {
		s.FP.Flags = uint32(new) & 0x1f
		s.FP.RM = uint32(new>>5) & 0x7
	})
	s.Regs.AddCSR(register.CSRVstart, func(old, new uint64) { s.V.Vstart = uint32(new) })
	s.Regs.AddCSR(register.CSRVxsat, nil)
	s.Regs.AddCSR(register.CSRVxrm, nil)
	s.Regs.AddCSR(register.CSRVcsr, nil)
	s.Regs.AddCSR(register.CSRVl, nil)
	s.Regs.AddCSR(register.CSRVtype, nil)
	s.Regs.AddCSR(register.CSRVlenb, nil)
	s.Regs.AddCSR(register.CSRMstatus, nil)
	s.Regs.AddCSR(register.CSRMisa, nil)
	s.Regs.AddCSR(register.CSRMtvec, nil)
	s.Regs.AddCSR(register.CSRMepc, nil)
	s.Regs.AddCSR(register.CSRMcause, nil)
	s.Regs.AddCSR(register.CSRMtval, nil)
	s.Regs.AddCSR(register.CSRMhartid, nil)

	for i := range s.VRegs {
		s.VRegs[i] = make([]byte, VLEN/8)
	}

	return s
}

func intRegName(i int) string { return "x" + itoa(i) }
func fpRegName(i int) string  { return "f" + itoa(i) }

func itoa(i int) string {
	if i == 0 {
		return "0"
	}
	digits := [3]byte{}
	n := 0
	for i > 0 {
		digits[n] = byte('0' + i%10)
		i /= 10
		n++
	}
	b := make([]byte, n)
	for j := 0; j < n; j++ {
		b[j] = digits[n-1-j]
	}
	return string(b)
}

// intABINames maps each canonical x-name to its RV32 integer ABI mnemonic.
var intABINames = map[string]string{
	"x0": "zero", "x1": "ra", "x2": "sp", "x3": "gp", "x4": "tp",
	"x5": "t0", "x6": "t1", "x7": "t2",
	"x8": "s0", "x9": "s1",
	"x10": "a0", "x11": "a1", "x12": "a2", "x13": "a3", "x14": "a4", "x15": "a5", "x16": "a6", "x17": "a7",
	"x18": "s2", "x19": "s3", "x20": "s4", "x21": "s5", "x22": "s6", "x23": "s7", "x24": "s8", "x25": "s9", "x26": "s10", "x27": "s11",
	"x28": "t3", "x29": "t4", "x30": "t5", "x31": "t6",
}

// fpABINames maps each canonical f-name to its RV32 FP ABI mnemonic.
var fpABINames = map[string]string{
	"f0": "ft0", "f1": "ft1", "f2": "ft2", "f3": "ft3", "f4": "ft4", "f5": "ft5", "f6": "ft6", "f7": "ft7",
	"f8": "fs0", "f9": "fs1",
	"f10": "fa0", "f11": "fa1", "f12": "fa2", "f13": "fa3", "f14": "fa4", "f15": "fa5", "f16": "fa6", "f17": "fa7",
	"f18": "fs2", "f19": "fs3", "f20": "fs4", "f21": "fs5", "f22": "fs6", "f23": "fs7", "f24": "fs8", "f25": "fs9", "f26": "fs10", "f27": "fs11",
	"f28": "ft8", "f29": "ft9", "f30": "ft10", "f31": "ft11",
}

// PC returns the program counter.
func (s *State) PC() uint32 { return s.pc }

// SetPC sets the program counter.
func (s *State) SetPC(pc uint32) { s.pc = pc }

// ReadInt reads an integer register by its ABI or canonical name.
func (s *State) ReadInt(name string) uint32 {
	v, _ := s.Regs.Read(name)
	return uint32(v)
}

// WriteInt writes an integer register by its ABI or canonical name.
func (s *State) WriteInt(name string, v uint32) {
	s.Regs.Write(name, uint64(v))
}

// OnEcall registers a handler offered to every ecall, in registration order.
func (s *State) OnEcall(h EcallHandler) {
	s.ecallHandlers = append(s.ecallHandlers, h)
}

// AddEbreakHandler registers a handler offered to every ebreak.
func (s *State) AddEbreakHandler(h EbreakHandler) {
	s.ebreakHandlers = append(s.ebreakHandlers, h)
}

// Ecall offers an ecall encountered at the current PC to every registered
// handler in order; it returns true once one reports it handled.
func (s *State) Ecall() (handled bool) {
	for _, h := range s.ecallHandlers {
		if h(s) {
			return true
		}
	}
	return false
}

// Ebreak offers an ebreak at pc to every registered handler in order.
func (s *State) Ebreak(pc uint32) (handled bool) {
	for _, h := range s.ebreakHandlers {
		if h(s, pc) {
			return true
		}
	}
	return false
}

// RaiseTrap records a fatal trap for the core to observe at its next
// instruction boundary (spec.md 4.3, 4.7). Only the first unconsumed trap
// in a boundary is kept.
func (s *State) RaiseTrap(cause, pc, tval uint32) {
	if s.pendingTrap != nil {
		return
	}
	s.pendingTrap = &Trap{Cause: cause, PC: pc, Tval: tval}
	s.Regs.Write("mcause", uint64(cause))
	s.Regs.Write("mepc", uint64(pc))
	s.Regs.Write("mtval", uint64(tval))
}

// TakeTrap returns and clears any pending trap.
func (s *State) TakeTrap() *Trap {
	t := s.pendingTrap
	s.pendingTrap = nil
	return t
}

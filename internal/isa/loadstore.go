/*
 * rv32g - Load/store semantics: byte/half/word, signed and zero extended,
 * unaligned access permitted (spec.md 4.2, 4.6).
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

func effAddr(s *state.State, inst *decoder.Instruction) uint32 {
	return rs1v(s, inst) + uint32(inst.Imm)
}

// ExecLb, ExecLh and ExecLw load a sign-extended byte, halfword or word.
// The underlying memory layer accepts unaligned and cross-page addresses
// (spec.md 4.2), so no alignment check happens here.
func ExecLb(s *state.State, inst *decoder.Instruction) {
	var buf [1]byte
	s.Mem.Load(effAddr(s, inst), buf[:])
	writeRd(s, inst, SextB(uint32(buf[0])))
}

func ExecLbu(s *state.State, inst *decoder.Instruction) {
	var buf [1]byte
	s.Mem.Load(effAddr(s, inst), buf[:])
	writeRd(s, inst, uint32(buf[0]))
}

func ExecLh(s *state.State, inst *decoder.Instruction) {
	var buf [2]byte
	s.Mem.Load(effAddr(s, inst), buf[:])
	v := uint32(buf[0]) | uint32(buf[1])<<8
	writeRd(s, inst, SextH(v))
}

func ExecLhu(s *state.State, inst *decoder.Instruction) {
	var buf [2]byte
	s.Mem.Load(effAddr(s, inst), buf[:])
	writeRd(s, inst, uint32(buf[0])|uint32(buf[1])<<8)
}

func ExecLw(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, s.Mem.LoadWord(effAddr(s, inst)))
}

// ExecSb, ExecSh and ExecSw store the low byte, halfword or full word of rs2.
func ExecSb(s *state.State, inst *decoder.Instruction) {
	v := rs2v(s, inst)
	s.Mem.Store(effAddr(s, inst), []byte{byte(v)})
}

func ExecSh(s *state.State, inst *decoder.Instruction) {
	v := rs2v(s, inst)
	s.Mem.Store(effAddr(s, inst), []byte{byte(v), byte(v >> 8)})
}

func ExecSw(s *state.State, inst *decoder.Instruction) {
	s.Mem.StoreWord(effAddr(s, inst), rs2v(s, inst))
}

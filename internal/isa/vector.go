/*
 * rv32g - V extension semantics: a representative, exercised subset
 * (configuration, unit-stride load/store, vector-vector and
 * vector-scalar arithmetic) rather than the full encoding space, matching
 * the latitude spec.md 9 takes for the bit-manip family.
 *
 * Vector registers are carried as raw little-endian byte slices in
 * state.State.VRegs rather than through the scalar register.File, since
 * their element width varies with vtype; Instruction.Rd/Rs1/Rs2 name them
 * as "v0".."v31" the same way scalar operands are named "x0".."x31". The
 * vtype immediate a vset*vli carries is bound into Instruction.CSR (the
 * field the system-instruction family uses for its own 12-bit immediate)
 * since both are "decode-time immediate bundle, execute-time opaque to
 * everything but one instruction family" in the same shape.
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
	"encoding/binary"

	"github.com/rv32g/rv32g/internal/decoder"
	"github.com/rv32g/rv32g/internal/state"
)

func vregIdx(name string) int {
	n := 0
	for i := 1; i < len(name); i++ {
		n = n*10 + int(name[i]-'0')
	}
	return n
}

func vreg(s *state.State, name string) []byte { return s.VRegs[vregIdx(name)] }

// elemCount returns how many SEW-wide elements fit in one vector register.
func elemCount(s *state.State) int { return (state.VLEN / s.V.SEW) }

// ExecVsetvli sets vtype from inst.CSR and vl from rs1 (or keeps/maxes vl
// per the x0,x0 / x0,rd special cases the V spec defines), writing the
// resulting vl to rd.
func ExecVsetvli(s *state.State, inst *decoder.Instruction) {
	s.V.SetVtype(inst.CSR)
	vlmax := s.V.VLMAX()

	var avl uint32
	switch {
	case inst.Rs1 == "x0" && inst.Rd == "x0":
		avl = s.V.VL // keep current vl
	case inst.Rs1 == "x0":
		avl = vlmax
	default:
		avl = s.ReadInt(inst.Rs1)
	}
	if avl > vlmax {
		avl = vlmax
	}
	s.V.VL = avl
	s.V.Vstart = 0
	writeRd(s, inst, avl)
}

// ExecVsetivli mirrors ExecVsetvli but takes the AVL from a 5-bit immediate
// (inst.Imm) rather than rs1.
func ExecVsetivli(s *state.State, inst *decoder.Instruction) {
	s.V.SetVtype(inst.CSR)
	vlmax := s.V.VLMAX()
	avl := uint32(inst.Imm)
	if avl > vlmax {
		avl = vlmax
	}
	s.V.VL = avl
	s.V.Vstart = 0
	writeRd(s, inst, avl)
}

// ExecVle32V loads vl 32-bit elements from a unit stride starting at rs1
// into vd's low vl*4 bytes; elements past vl are left at their prior value
// under the tail-agnostic policy vtype records.
func ExecVle32V(s *state.State, inst *decoder.Instruction) {
	base := s.ReadInt(inst.Rs1)
	dst := vreg(s, inst.Rd)
	for i := uint32(0); i < s.V.VL; i++ {
		v := s.Mem.LoadWord(base + i*4)
		binary.LittleEndian.PutUint32(dst[i*4:], v)
	}
}

// ExecVse32V stores vl 32-bit elements from vs3 to a unit stride at rs1.
func ExecVse32V(s *state.State, inst *decoder.Instruction) {
	base := s.ReadInt(inst.Rs1)
	src := vreg(s, inst.Rd) // vs3 is bound into Rd for stores; see decode.
	for i := uint32(0); i < s.V.VL; i++ {
		v := binary.LittleEndian.Uint32(src[i*4:])
		s.Mem.StoreWord(base+i*4, v)
	}
}

func vecBinOp(s *state.State, inst *decoder.Instruction, op func(a, b uint32) uint32) {
	vd, vs2, vs1 := vreg(s, inst.Rd), vreg(s, inst.Rs2), vreg(s, inst.Rs1)
	for i := uint32(0); i < s.V.VL; i++ {
		a := binary.LittleEndian.Uint32(vs1[i*4:])
		b := binary.LittleEndian.Uint32(vs2[i*4:])
		binary.LittleEndian.PutUint32(vd[i*4:], op(a, b))
	}
}

func vecScalarOp(s *state.State, inst *decoder.Instruction, op func(a, b uint32) uint32) {
	vd, vs2 := vreg(s, inst.Rd), vreg(s, inst.Rs2)
	scalar := s.ReadInt(inst.Rs1)
	for i := uint32(0); i < s.V.VL; i++ {
		b := binary.LittleEndian.Uint32(vs2[i*4:])
		binary.LittleEndian.PutUint32(vd[i*4:], op(scalar, b))
	}
}

// ExecVaddVV, ExecVsubVV, ExecVandVV, ExecVorVV, ExecVxorVV, and ExecVmulVV
// are the vector-vector arithmetic forms, each applying element-wise over
// [0, vl) 32-bit elements.
func ExecVaddVV(s *state.State, inst *decoder.Instruction) {
	vecBinOp(s, inst, func(a, b uint32) uint32 { return a + b })
}

func ExecVsubVV(s *state.State, inst *decoder.Instruction) {
	vecBinOp(s, inst, func(a, b uint32) uint32 { return b - a })
}

func ExecVandVV(s *state.State, inst *decoder.Instruction) {
	vecBinOp(s, inst, func(a, b uint32) uint32 { return a & b })
}

func ExecVorVV(s *state.State, inst *decoder.Instruction) {
	vecBinOp(s, inst, func(a, b uint32) uint32 { return a | b })
}

func ExecVxorVV(s *state.State, inst *decoder.Instruction) {
	vecBinOp(s, inst, func(a, b uint32) uint32 { return a ^ b })
}

func ExecVmulVV(s *state.State, inst *decoder.Instruction) {
	vecBinOp(s, inst, func(a, b uint32) uint32 { return a * b })
}

// ExecVaddVX, ExecVsubVX, ExecVandVX, ExecVorVX, ExecVxorVX and ExecVmulVX
// are the vector-scalar forms, broadcasting rs1 across every active element.
func ExecVaddVX(s *state.State, inst *decoder.Instruction) {
	vecScalarOp(s, inst, func(scalar, b uint32) uint32 { return scalar + b })
}

func ExecVsubVX(s *state.State, inst *decoder.Instruction) {
	vecScalarOp(s, inst, func(scalar, b uint32) uint32 { return b - scalar })
}

func ExecVandVX(s *state.State, inst *decoder.Instruction) {
	vecScalarOp(s, inst, func(scalar, b uint32) uint32 { return scalar & b })
}

func ExecVorVX(s *state.State, inst *decoder.Instruction) {
	vecScalarOp(s, inst, func(scalar, b uint32) uint32 { return scalar | b })
}

func ExecVxorVX(s *state.State, inst *decoder.Instruction) {
	vecScalarOp(s, inst, func(scalar, b uint32) uint32 { return scalar ^ b })
}

func ExecVmulVX(s *state.State, inst *decoder.Instruction) {
	vecScalarOp(s, inst, func(scalar, b uint32) uint32 { return scalar * b })
}

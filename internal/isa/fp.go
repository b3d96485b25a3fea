/*
 * rv32g - F/D floating-point semantics: a representative, exercised subset
 * (load/store, arithmetic, compare, conversion, sign-injection, move) rather
 * than the full encoding space (spec.md 9: the bit-manip family is explicitly
 * "representative"; the same latitude is taken here).
 *
 * Every f register is carried as a 64-bit cell. A single-precision value
 * occupies the low 32 bits with the upper 32 bits NaN-boxed to all ones, per
 * the RISC-V convention for FLEN=64 harts holding a narrower value; reads of
 * an un-boxed single value are treated as canonical NaN, matching the
 * reference pseudocode.
 *
 * Rounding mode: arithmetic always rounds to nearest, ties-to-even (RNE),
 * because Go's float32/float64 arithmetic only ever rounds that way and
 * there is no portable way to ask the runtime for another IEEE rounding
 * mode. RTZ/RDN/RUP/RMM are therefore accepted (decoded, and read back from
 * frm/the instruction's rm field without complaint) but behave identically
 * to RNE. The float-to-integer conversions fcvt.w.s and fcvt.wu.s truncate
 * toward zero instead.
 *
 * fflags: only two exception flags are ever raised: DZ by fdiv with a zero
 * divisor and NV by fsqrt of a negative operand. OF, UF and NX are never
 * set.
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
	"math"

	"github.com/rv32g/rv32g/internal/decoder"
	"github.com/rv32g/rv32g/internal/state"
)

const nanBoxUpper = 0xffffffff00000000

func readF64(s *state.State, name string) uint64 {
	v, _ := s.Regs.Read(name)
	return v
}

func writeF64(s *state.State, name string, bits uint64) {
	s.Regs.Write(name, bits)
}

// readF32 unboxes a single-precision value. A raw value whose upper 32 bits
// are not all ones is not validly boxed and reads back as the canonical
// quiet NaN, per the RISC-V F/D spec.
func readF32(s *state.State, name string) uint32 {
	v := readF64(s, name)
	if v&nanBoxUpper != nanBoxUpper {
		return 0x7fc00000
	}
	return uint32(v)
}

func writeF32(s *state.State, name string, bits uint32) {
	writeF64(s, name, nanBoxUpper|uint64(bits))
}

func fs1(s *state.State, inst *decoder.Instruction) float32 {
	return math.Float32frombits(readF32(s, inst.Rs1))
}

func fs2(s *state.State, inst *decoder.Instruction) float32 {
	return math.Float32frombits(readF32(s, inst.Rs2))
}

func fd1(s *state.State, inst *decoder.Instruction) float64 {
	return math.Float64frombits(readF64(s, inst.Rs1))
}

func fd2(s *state.State, inst *decoder.Instruction) float64 {
	return math.Float64frombits(readF64(s, inst.Rs2))
}

func writeFrdS(s *state.State, inst *decoder.Instruction, v float32) {
	writeF32(s, inst.Rd, math.Float32bits(v))
}

func writeFrdD(s *state.State, inst *decoder.Instruction, v float64) {
	writeF64(s, inst.Rd, math.Float64bits(v))
}

// ExecFlw and ExecFld load a word/doubleword from rs1+imm (rs1 is an
// integer base register here; decode binds it into inst.Rs1 for these two
// opcodes specifically).
func ExecFlw(s *state.State, inst *decoder.Instruction) {
	writeF32(s, inst.Rd, s.Mem.LoadWord(s.ReadInt(inst.Rs1)+uint32(inst.Imm)))
}

func ExecFld(s *state.State, inst *decoder.Instruction) {
	addr := s.ReadInt(inst.Rs1) + uint32(inst.Imm)
	lo := s.Mem.LoadWord(addr)
	hi := s.Mem.LoadWord(addr + 4)
	writeF64(s, inst.Rd, uint64(lo)|uint64(hi)<<32)
}

// ExecFsw and ExecFsd store a word/doubleword to rs1+imm (rs1 integer base,
// rs2 the f register holding the value; decode binds accordingly).
func ExecFsw(s *state.State, inst *decoder.Instruction) {
	s.Mem.StoreWord(s.ReadInt(inst.Rs1)+uint32(inst.Imm), readF32(s, inst.Rs2))
}

func ExecFsd(s *state.State, inst *decoder.Instruction) {
	addr := s.ReadInt(inst.Rs1) + uint32(inst.Imm)
	v := readF64(s, inst.Rs2)
	s.Mem.StoreWord(addr, uint32(v))
	s.Mem.StoreWord(addr+4, uint32(v>>32))
}

func ExecFaddS(s *state.State, inst *decoder.Instruction) { writeFrdS(s, inst, fs1(s, inst)+fs2(s, inst)) }
func ExecFsubS(s *state.State, inst *decoder.Instruction) { writeFrdS(s, inst, fs1(s, inst)-fs2(s, inst)) }
func ExecFmulS(s *state.State, inst *decoder.Instruction) { writeFrdS(s, inst, fs1(s, inst)*fs2(s, inst)) }
func ExecFdivS(s *state.State, inst *decoder.Instruction) {
	a, b := fs1(s, inst), fs2(s, inst)
	if b == 0 {
		s.FP.SetFlags(state.FlagDZ)
	}
	writeFrdS(s, inst, a/b)
}
func ExecFsqrtS(s *state.State, inst *decoder.Instruction) {
	a := fs1(s, inst)
	if a < 0 {
		s.FP.SetFlags(state.FlagNV)
	}
	writeFrdS(s, inst, float32(math.Sqrt(float64(a))))
}

func ExecFaddD(s *state.State, inst *decoder.Instruction) { writeFrdD(s, inst, fd1(s, inst)+fd2(s, inst)) }
func ExecFsubD(s *state.State, inst *decoder.Instruction) { writeFrdD(s, inst, fd1(s, inst)-fd2(s, inst)) }
func ExecFmulD(s *state.State, inst *decoder.Instruction) { writeFrdD(s, inst, fd1(s, inst)*fd2(s, inst)) }
func ExecFdivD(s *state.State, inst *decoder.Instruction) {
	a, b := fd1(s, inst), fd2(s, inst)
	if b == 0 {
		s.FP.SetFlags(state.FlagDZ)
	}
	writeFrdD(s, inst, a/b)
}
func ExecFsqrtD(s *state.State, inst *decoder.Instruction) {
	a := fd1(s, inst)
	if a < 0 {
		s.FP.SetFlags(state.FlagNV)
	}
	writeFrdD(s, inst, math.Sqrt(a))
}

func ExecFeqS(s *state.State, inst *decoder.Instruction) { writeRd(s, inst, boolBit(fs1(s, inst) == fs2(s, inst))) }
func ExecFltS(s *state.State, inst *decoder.Instruction) { writeRd(s, inst, boolBit(fs1(s, inst) < fs2(s, inst))) }
func ExecFleS(s *state.State, inst *decoder.Instruction) { writeRd(s, inst, boolBit(fs1(s, inst) <= fs2(s, inst))) }

func ExecFeqD(s *state.State, inst *decoder.Instruction) { writeRd(s, inst, boolBit(fd1(s, inst) == fd2(s, inst))) }
func ExecFltD(s *state.State, inst *decoder.Instruction) { writeRd(s, inst, boolBit(fd1(s, inst) < fd2(s, inst))) }
func ExecFleD(s *state.State, inst *decoder.Instruction) { writeRd(s, inst, boolBit(fd1(s, inst) <= fd2(s, inst))) }

func boolBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}

// ExecFcvtWS converts a single to a signed 32-bit integer, truncating
// toward zero; neither the instruction's rm field nor frm is consulted.
func ExecFcvtWS(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, uint32(int32(fs1(s, inst))))
}

func ExecFcvtWuS(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, uint32(fs1(s, inst)))
}

func ExecFcvtSW(s *state.State, inst *decoder.Instruction) {
	writeFrdS(s, inst, float32(int32(s.ReadInt(inst.Rs1))))
}

func ExecFcvtSWu(s *state.State, inst *decoder.Instruction) {
	writeFrdS(s, inst, float32(s.ReadInt(inst.Rs1)))
}

func ExecFcvtDS(s *state.State, inst *decoder.Instruction) {
	writeFrdD(s, inst, float64(fs1(s, inst)))
}

func ExecFcvtSD(s *state.State, inst *decoder.Instruction) {
	writeFrdS(s, inst, float32(fd1(s, inst)))
}

// ExecFsgnjS, ExecFsgnjnS and ExecFsgnjxS rebuild rs1's magnitude with a
// sign bit taken from, inverted from, or XORed with rs2's sign.
func ExecFsgnjS(s *state.State, inst *decoder.Instruction) {
	writeF32(s, inst.Rd, (readF32(s, inst.Rs1)&0x7fffffff)|(readF32(s, inst.Rs2)&0x80000000))
}

func ExecFsgnjnS(s *state.State, inst *decoder.Instruction) {
	writeF32(s, inst.Rd, (readF32(s, inst.Rs1)&0x7fffffff)|(^readF32(s, inst.Rs2)&0x80000000))
}

func ExecFsgnjxS(s *state.State, inst *decoder.Instruction) {
	writeF32(s, inst.Rd, readF32(s, inst.Rs1)^(readF32(s, inst.Rs2)&0x80000000))
}

func ExecFsgnjD(s *state.State, inst *decoder.Instruction) {
	writeF64(s, inst.Rd, (readF64(s, inst.Rs1)&0x7fffffffffffffff)|(readF64(s, inst.Rs2)&0x8000000000000000))
}

func ExecFsgnjnD(s *state.State, inst *decoder.Instruction) {
	writeF64(s, inst.Rd, (readF64(s, inst.Rs1)&0x7fffffffffffffff)|(^readF64(s, inst.Rs2)&0x8000000000000000))
}

func ExecFsgnjxD(s *state.State, inst *decoder.Instruction) {
	writeF64(s, inst.Rd, readF64(s, inst.Rs1)^(readF64(s, inst.Rs2)&0x8000000000000000))
}

// ExecFmvXW and ExecFmvWX move bit patterns between the integer and single
// f register files with no conversion.
func ExecFmvXW(s *state.State, inst *decoder.Instruction) {
	writeRd(s, inst, readF32(s, inst.Rs1))
}

func ExecFmvWX(s *state.State, inst *decoder.Instruction) {
	writeF32(s, inst.Rd, s.ReadInt(inst.Rs1))
}

/*
 * rv32g - Instruction decode: the opcode-indexed dispatch table binding
 * raw 32-bit words (and, after RVC expansion, 16-bit compressed words) to
 * a decoder.Instruction with its operands and Exec function filled in
 * (spec.md 4.4). Table-driven by primary opcode the same way the teacher's
 * cpuState.createTable dispatches on its 8-bit opcode byte.
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

// Package isa implements the instruction semantics and decode table of
// spec.md 4.4/4.5: a table-driven decoder that produces decoder.Instruction
// values bound to Exec functions, covering RV32IMAFD, the Zba/Zbb/Zbc/Zbs
// bit-manipulation extensions, a representative V subset, and a
// representative RVC expansion.
package isa

import (
	"github.com/rv32g/rv32g/internal/decoder"
)

// Fetcher reads one little-endian halfword from memory; Decode uses it to
// pull one or two halfwords depending on whether the instruction at pc
// turns out to be compressed.
type Fetcher func(pc uint32) uint16

func regName(n uint32) string  { return "x" + digits(n) }
func fregName(n uint32) string { return "f" + digits(n) }
func vregName(n uint32) string { return "v" + digits(n) }

func digits(n uint32) string {
	if n == 0 {
		return "0"
	}
	var b [10]byte
	i := len(b)
	for n > 0 {
		i--
		b[i] = byte('0' + n%10)
		n /= 10
	}
	return string(b[i:])
}

func rdOf(word uint32) uint32     { return (word >> 7) & 0x1f }
func rs1Of(word uint32) uint32    { return (word >> 15) & 0x1f }
func rs2Of(word uint32) uint32    { return (word >> 20) & 0x1f }
func funct3Of(word uint32) uint32 { return (word >> 12) & 0x7 }
func funct7Of(word uint32) uint32 { return (word >> 25) & 0x7f }
func opcodeOf(word uint32) uint32 { return word & 0x7f }

func immI(word uint32) int32 { return signExtend(word>>20, 12) }

func immS(word uint32) int32 {
	u := ((word >> 25) << 5) | ((word >> 7) & 0x1f)
	return signExtend(u, 12)
}

func immB(word uint32) int32 {
	u := ((word >> 31) << 12) | (((word >> 7) & 1) << 11) |
		(((word >> 25) & 0x3f) << 5) | (((word >> 8) & 0xf) << 1)
	return signExtend(u, 13)
}

func immU(word uint32) int32 { return int32(word &^ 0xfff) }

func immJ(word uint32) int32 {
	u := ((word >> 31) << 20) | (((word >> 12) & 0xff) << 12) |
		(((word >> 20) & 1) << 11) | (((word >> 21) & 0x3ff) << 1)
	return signExtend(u, 21)
}

// Decode reads the instruction at pc, expanding it from its compressed form
// first if its low two bits mark it as RVC, and returns the bound
// Instruction ready for execution. ok is false for anything outside the
// encodings this simulator recognizes; the caller raises an illegal-
// instruction trap.
func Decode(pc uint32, fetch Fetcher) (inst *decoder.Instruction, ok bool) {
	lo := fetch(pc)
	if lo&0x3 != 3 {
		word, expOK := ExpandC(lo)
		if !expOK {
			return nil, false
		}
		inst = decodeWord(pc, word)
		if inst == nil {
			return nil, false
		}
		inst.Raw = uint32(lo)
		inst.Width = 2
		return inst, true
	}
	hi := fetch(pc + 2)
	word := uint32(lo) | uint32(hi)<<16
	inst = decodeWord(pc, word)
	if inst == nil {
		return nil, false
	}
	inst.Raw = word
	inst.Width = 4
	return inst, true
}

func decodeWord(pc, word uint32) *decoder.Instruction {
	op := opcodeOf(word)
	fn := decodeTable[op>>2]
	if fn == nil {
		return nil
	}
	inst := fn(word)
	if inst == nil {
		return nil
	}
	inst.PC = pc
	return inst
}

// base fills in the fields common to every instruction: its mnemonic and
// Exec function. PC and Width are filled in by Decode once the word's
// total length (2 or 4 bytes) is known.
func base(name string, exec decoder.Semantic) *decoder.Instruction {
	return &decoder.Instruction{Name: name, Exec: exec}
}

// decodeTable is indexed by the 5-bit opcode (bits [6:2]; bits [1:0] are
// always 11 for a standard instruction and are checked by Decode before
// this table is consulted).
var decodeTable = [32]func(word uint32) *decoder.Instruction{
	0x03 >> 2: decodeLoad,   // LOAD
	0x07 >> 2: decodeLoadFP, // LOAD-FP
	0x0f >> 2: decodeMiscMem,
	0x13 >> 2: decodeOpImm,
	0x17 >> 2: decodeAuipc,
	0x23 >> 2: decodeStore,
	0x27 >> 2: decodeStoreFP,
	0x2f >> 2: decodeAmo,
	0x33 >> 2: decodeOp,
	0x37 >> 2: decodeLui,
	0x53 >> 2: decodeOpFP,
	0x57 >> 2: decodeOpV,
	0x63 >> 2: decodeBranch,
	0x67 >> 2: decodeJalr,
	0x6f >> 2: decodeJal,
	0x73 >> 2: decodeSystem,
}

func decodeLoad(word uint32) *decoder.Instruction {
	rd, rs1, f3 := rdOf(word), rs1Of(word), funct3Of(word)
	var inst *decoder.Instruction
	switch f3 {
	case 0:
		inst = base("lb", ExecLb)
	case 1:
		inst = base("lh", ExecLh)
	case 2:
		inst = base("lw", ExecLw)
	case 4:
		inst = base("lbu", ExecLbu)
	case 5:
		inst = base("lhu", ExecLhu)
	default:
		return nil
	}
	inst.Rd, inst.Rs1, inst.Imm = regName(rd), regName(rs1), immI(word)
	return inst
}

func decodeStore(word uint32) *decoder.Instruction {
	rs1, rs2, f3 := rs1Of(word), rs2Of(word), funct3Of(word)
	var inst *decoder.Instruction
	switch f3 {
	case 0:
		inst = base("sb", ExecSb)
	case 1:
		inst = base("sh", ExecSh)
	case 2:
		inst = base("sw", ExecSw)
	default:
		return nil
	}
	inst.Rs1, inst.Rs2, inst.Imm = regName(rs1), regName(rs2), immS(word)
	return inst
}

// decodeOpImm handles OP-IMM. funct3==1 and funct3==5 are shared between
// slli/srli/srai and the Zbb unary/rotate family, distinguished by funct7.
func decodeOpImm(word uint32) *decoder.Instruction {
	rd, rs1, f3 := rdOf(word), rs1Of(word), funct3Of(word)
	shamt := rs2Of(word)
	f7 := funct7Of(word)

	switch f3 {
	case 0:
		inst := base("addi", ExecAddi)
		inst.Rd, inst.Rs1, inst.Imm = regName(rd), regName(rs1), immI(word)
		return inst
	case 1:
		if f7 == 0x30 {
			return decodeZbbUnary(shamt, rd, rs1)
		}
		inst := base("slli", ExecSlli)
		inst.Rd, inst.Rs1, inst.Shamt = regName(rd), regName(rs1), shamt
		return inst
	case 2:
		inst := base("slti", ExecSlti)
		inst.Rd, inst.Rs1, inst.Imm = regName(rd), regName(rs1), immI(word)
		return inst
	case 3:
		inst := base("sltiu", ExecSltiu)
		inst.Rd, inst.Rs1, inst.Imm = regName(rd), regName(rs1), immI(word)
		return inst
	case 4:
		inst := base("xori", ExecXori)
		inst.Rd, inst.Rs1, inst.Imm = regName(rd), regName(rs1), immI(word)
		return inst
	case 5:
		switch f7 {
		case 0x20:
			inst := base("srai", ExecSrai)
			inst.Rd, inst.Rs1, inst.Shamt = regName(rd), regName(rs1), shamt
			return inst
		case 0x30:
			inst := base("rori", ExecRori)
			inst.Rd, inst.Rs1, inst.Shamt = regName(rd), regName(rs1), shamt
			return inst
		case 0x14:
			if shamt != 0x07 {
				return nil
			}
			inst := base("orc.b", ExecOrcBOp)
			inst.Rd, inst.Rs1 = regName(rd), regName(rs1)
			return inst
		case 0x34:
			if shamt != 0x18 {
				return nil
			}
			inst := base("rev8", ExecRev8Op)
			inst.Rd, inst.Rs1 = regName(rd), regName(rs1)
			return inst
		default:
			inst := base("srli", ExecSrli)
			inst.Rd, inst.Rs1, inst.Shamt = regName(rd), regName(rs1), shamt
			return inst
		}
	case 6:
		inst := base("ori", ExecOri)
		inst.Rd, inst.Rs1, inst.Imm = regName(rd), regName(rs1), immI(word)
		return inst
	case 7:
		inst := base("andi", ExecAndi)
		inst.Rd, inst.Rs1, inst.Imm = regName(rd), regName(rs1), immI(word)
		return inst
	}
	return nil
}

func decodeZbbUnary(rs2, rd, rs1 uint32) *decoder.Instruction {
	var inst *decoder.Instruction
	switch rs2 {
	case 0x00:
		inst = base("clz", ExecClzOp)
	case 0x01:
		inst = base("ctz", ExecCtzOp)
	case 0x02:
		inst = base("cpop", ExecCpopOp)
	case 0x04:
		inst = base("sext.b", ExecSextBOp)
	case 0x05:
		inst = base("sext.h", ExecSextHOp)
	default:
		return nil
	}
	inst.Rd, inst.Rs1 = regName(rd), regName(rs1)
	return inst
}

func decodeAuipc(word uint32) *decoder.Instruction {
	inst := base("auipc", ExecAuipc)
	inst.Rd, inst.Imm = regName(rdOf(word)), immU(word)
	return inst
}

func decodeLui(word uint32) *decoder.Instruction {
	inst := base("lui", ExecLui)
	inst.Rd, inst.Imm = regName(rdOf(word)), immU(word)
	return inst
}

func decodeBranch(word uint32) *decoder.Instruction {
	rs1, rs2, f3 := rs1Of(word), rs2Of(word), funct3Of(word)
	var inst *decoder.Instruction
	switch f3 {
	case 0:
		inst = base("beq", ExecBeq)
	case 1:
		inst = base("bne", ExecBne)
	case 4:
		inst = base("blt", ExecBlt)
	case 5:
		inst = base("bge", ExecBge)
	case 6:
		inst = base("bltu", ExecBltu)
	case 7:
		inst = base("bgeu", ExecBgeu)
	default:
		return nil
	}
	inst.Rs1, inst.Rs2, inst.Imm = regName(rs1), regName(rs2), immB(word)
	return inst
}

func decodeJal(word uint32) *decoder.Instruction {
	inst := base("jal", ExecJal)
	inst.Rd, inst.Imm = regName(rdOf(word)), immJ(word)
	return inst
}

func decodeJalr(word uint32) *decoder.Instruction {
	if funct3Of(word) != 0 {
		return nil
	}
	inst := base("jalr", ExecJalr)
	inst.Rd, inst.Rs1, inst.Imm = regName(rdOf(word)), regName(rs1Of(word)), immI(word)
	return inst
}

func decodeMiscMem(word uint32) *decoder.Instruction {
	switch funct3Of(word) {
	case 0:
		return base("fence", ExecFence)
	case 1:
		return base("fence.i", ExecFenceI)
	}
	return nil
}

func decodeSystem(word uint32) *decoder.Instruction {
	f3 := funct3Of(word)
	rd, rs1 := rdOf(word), rs1Of(word)
	csr := word >> 20

	if f3 == 0 {
		switch csr {
		case 0:
			return base("ecall", ExecEcall)
		case 1:
			return base("ebreak", ExecEbreak)
		case 0x302:
			return base("mret", ExecMret)
		case 0x105:
			return base("wfi", ExecWfi)
		}
		return nil
	}

	var inst *decoder.Instruction
	switch f3 {
	case 1:
		inst = base("csrrw", ExecCsrrw)
		inst.Rs1 = regName(rs1)
	case 2:
		inst = base("csrrs", ExecCsrrs)
		inst.Rs1 = regName(rs1)
	case 3:
		inst = base("csrrc", ExecCsrrc)
		inst.Rs1 = regName(rs1)
	case 5:
		inst = base("csrrwi", ExecCsrrwi)
		inst.Imm = int32(rs1)
	case 6:
		inst = base("csrrsi", ExecCsrrsi)
		inst.Imm = int32(rs1)
	case 7:
		inst = base("csrrci", ExecCsrrci)
		inst.Imm = int32(rs1)
	default:
		return nil
	}
	inst.Rd, inst.CSR = regName(rd), csr
	return inst
}

func decodeOp(word uint32) *decoder.Instruction {
	rd, rs1, rs2, f3, f7 := rdOf(word), rs1Of(word), rs2Of(word), funct3Of(word), funct7Of(word)
	var inst *decoder.Instruction
	switch {
	case f7 == 0x01:
		inst = decodeMulDiv(f3)
	case f7 == 0x00 && f3 == 0:
		inst = base("add", ExecAdd)
	case f7 == 0x20 && f3 == 0:
		inst = base("sub", ExecSub)
	case f7 == 0x00 && f3 == 1:
		inst = base("sll", ExecSll)
	case f7 == 0x30 && f3 == 1:
		inst = base("rol", ExecRolReg)
	case f7 == 0x00 && f3 == 2:
		inst = base("slt", ExecSlt)
	case f7 == 0x00 && f3 == 3:
		inst = base("sltu", ExecSltu)
	case f7 == 0x00 && f3 == 4:
		inst = base("xor", ExecXor)
	case f7 == 0x05 && f3 == 4:
		inst = base("min", ExecMinReg)
	case f7 == 0x05 && f3 == 5:
		inst = base("minu", ExecMinuReg)
	case f7 == 0x05 && f3 == 6:
		inst = base("max", ExecMaxReg)
	case f7 == 0x05 && f3 == 7:
		inst = base("maxu", ExecMaxuReg)
	case f7 == 0x20 && f3 == 4:
		inst = base("xnor", ExecXnor)
	case f7 == 0x00 && f3 == 5:
		inst = base("srl", ExecSrl)
	case f7 == 0x20 && f3 == 5:
		inst = base("sra", ExecSra)
	case f7 == 0x30 && f3 == 5:
		inst = base("ror", ExecRorReg)
	case f7 == 0x00 && f3 == 6:
		inst = base("or", ExecOr)
	case f7 == 0x20 && f3 == 6:
		inst = base("orn", ExecOrn)
	case f7 == 0x00 && f3 == 7:
		inst = base("and", ExecAnd)
	case f7 == 0x20 && f3 == 7:
		inst = base("andn", ExecAndn)
	case f7 == 0x10 && f3 == 2:
		inst = shAddInst("sh1add", 1)
	case f7 == 0x10 && f3 == 4:
		inst = shAddInst("sh2add", 2)
	case f7 == 0x10 && f3 == 6:
		inst = shAddInst("sh3add", 3)
	case f7 == 0x05 && f3 == 1:
		inst = base("clmul", ExecClmul)
	case f7 == 0x05 && f3 == 2:
		inst = base("clmulr", ExecClmulr)
	case f7 == 0x05 && f3 == 3:
		inst = base("clmulh", ExecClmulh)
	case f7 == 0x14 && f3 == 1:
		inst = base("bset", ExecBset)
	case f7 == 0x24 && f3 == 1:
		inst = base("bclr", ExecBclr)
	case f7 == 0x24 && f3 == 5:
		inst = base("bext", ExecBext)
	case f7 == 0x34 && f3 == 1:
		inst = base("binv", ExecBinv)
	default:
		return nil
	}
	if inst == nil {
		return nil
	}
	inst.Rd, inst.Rs1, inst.Rs2 = regName(rd), regName(rs1), regName(rs2)
	return inst
}

func shAddInst(name string, shift uint32) *decoder.Instruction {
	inst := base(name, ExecShAdd)
	inst.Shamt = shift
	return inst
}

func decodeMulDiv(f3 uint32) *decoder.Instruction {
	switch f3 {
	case 0:
		return base("mul", ExecMul)
	case 1:
		return base("mulh", ExecMulh)
	case 2:
		return base("mulhsu", ExecMulhsu)
	case 3:
		return base("mulhu", ExecMulhu)
	case 4:
		return base("div", ExecDiv)
	case 5:
		return base("divu", ExecDivu)
	case 6:
		return base("rem", ExecRem)
	case 7:
		return base("remu", ExecRemu)
	}
	return nil
}

func decodeAmo(word uint32) *decoder.Instruction {
	if funct3Of(word) != 2 {
		return nil
	}
	rd, rs1, rs2 := rdOf(word), rs1Of(word), rs2Of(word)
	f5 := funct7Of(word) >> 2
	aq, rl := (word>>26)&1 != 0, (word>>25)&1 != 0

	if f5 == 0x02 {
		if rs2 != 0 {
			return nil
		}
		inst := base("lr.w", ExecLrW)
		inst.Rs1, inst.Rd = regName(rs1), regName(rd)
		inst.Aq, inst.Rl = aq, rl
		return inst
	}

	var inst *decoder.Instruction
	switch f5 {
	case 0x03:
		inst = base("sc.w", ExecScW)
	case 0x01:
		inst = base("amoswap.w", ExecAmoswapW)
	case 0x00:
		inst = base("amoadd.w", ExecAmoaddW)
	case 0x0c:
		inst = base("amoand.w", ExecAmoandW)
	case 0x08:
		inst = base("amoor.w", ExecAmoorW)
	case 0x04:
		inst = base("amoxor.w", ExecAmoxorW)
	case 0x10:
		inst = base("amomin.w", ExecAmominW)
	case 0x14:
		inst = base("amomax.w", ExecAmomaxW)
	case 0x18:
		inst = base("amominu.w", ExecAmominuW)
	case 0x1c:
		inst = base("amomaxu.w", ExecAmomaxuW)
	default:
		return nil
	}
	inst.Rd, inst.Rs1, inst.Rs2 = regName(rd), regName(rs1), regName(rs2)
	inst.Aq, inst.Rl = aq, rl
	return inst
}

// decodeLoadFP shares opcode 0x07 between F/D loads (funct3 2/3) and the
// unit-stride vector load vle32.v (funct3 6, width=32 bits), the same way
// real RVV overlays vector memory ops onto the LOAD-FP/STORE-FP opcodes.
func decodeLoadFP(word uint32) *decoder.Instruction {
	rd, rs1, f3 := rdOf(word), rs1Of(word), funct3Of(word)
	switch f3 {
	case 2:
		inst := base("flw", ExecFlw)
		inst.Rd, inst.Rs1, inst.Imm = fregName(rd), regName(rs1), immI(word)
		return inst
	case 3:
		inst := base("fld", ExecFld)
		inst.Rd, inst.Rs1, inst.Imm = fregName(rd), regName(rs1), immI(word)
		return inst
	case 6:
		inst := base("vle32.v", ExecVle32V)
		inst.Rd, inst.Rs1 = vregName(rd), regName(rs1)
		return inst
	default:
		return nil
	}
}

func decodeStoreFP(word uint32) *decoder.Instruction {
	rs1, rs2, f3 := rs1Of(word), rs2Of(word), funct3Of(word)
	switch f3 {
	case 2:
		inst := base("fsw", ExecFsw)
		inst.Rs1, inst.Rs2, inst.Imm = regName(rs1), fregName(rs2), immS(word)
		return inst
	case 3:
		inst := base("fsd", ExecFsd)
		inst.Rs1, inst.Rs2, inst.Imm = regName(rs1), fregName(rs2), immS(word)
		return inst
	case 6:
		inst := base("vse32.v", ExecVse32V)
		inst.Rd, inst.Rs1 = vregName(rs2), regName(rs1)
		return inst
	default:
		return nil
	}
}

func decodeOpFP(word uint32) *decoder.Instruction {
	rd, rs1, rs2, f3, f7 := rdOf(word), rs1Of(word), rs2Of(word), funct3Of(word), funct7Of(word)
	rm := f3
	isDouble := f7&1 != 0
	group := f7 >> 1

	var inst *decoder.Instruction
	switch group {
	case 0x00:
		inst = fpOr(isDouble, "fadd.d", ExecFaddD, "fadd.s", ExecFaddS)
	case 0x02:
		inst = fpOr(isDouble, "fsub.d", ExecFsubD, "fsub.s", ExecFsubS)
	case 0x04:
		inst = fpOr(isDouble, "fmul.d", ExecFmulD, "fmul.s", ExecFmulS)
	case 0x06:
		inst = fpOr(isDouble, "fdiv.d", ExecFdivD, "fdiv.s", ExecFdivS)
	case 0x16:
		inst = fpOr(isDouble, "fsqrt.d", ExecFsqrtD, "fsqrt.s", ExecFsqrtS)
	case 0x28:
		inst = decodeFPCompare(f3, isDouble)
	case 0x08:
		inst = decodeFPSgnj(f3, isDouble)
	case 0x10:
		inst = fpOr(isDouble, "fcvt.d.s", ExecFcvtDS, "fcvt.s.d", ExecFcvtSD)
	case 0x30:
		if isDouble {
			return nil
		}
		if rs2 == 0 {
			inst = base("fcvt.w.s", ExecFcvtWS)
		} else {
			inst = base("fcvt.wu.s", ExecFcvtWuS)
		}
	case 0x34:
		if isDouble {
			return nil
		}
		if rs2 == 0 {
			inst = base("fcvt.s.w", ExecFcvtSW)
		} else {
			inst = base("fcvt.s.wu", ExecFcvtSWu)
		}
	case 0x38:
		inst = base("fmv.x.w", ExecFmvXW)
	case 0x3c:
		inst = base("fmv.w.x", ExecFmvWX)
	default:
		return nil
	}
	if inst == nil {
		return nil
	}

	switch group {
	case 0x30, 0x38:
		inst.Rd, inst.Rs1 = regName(rd), fregName(rs1)
	case 0x34, 0x3c:
		inst.Rd, inst.Rs1 = fregName(rd), regName(rs1)
	case 0x28:
		inst.Rd, inst.Rs1, inst.Rs2 = regName(rd), fregName(rs1), fregName(rs2)
	default:
		inst.Rd, inst.Rs1, inst.Rs2 = fregName(rd), fregName(rs1), fregName(rs2)
	}
	inst.RM = rm
	return inst
}

func fpOr(isDouble bool, dname string, dexec decoder.Semantic, sname string, sexec decoder.Semantic) *decoder.Instruction {
	if isDouble {
		return base(dname, dexec)
	}
	return base(sname, sexec)
}

func decodeFPCompare(f3 uint32, isDouble bool) *decoder.Instruction {
	switch {
	case f3 == 2 && !isDouble:
		return base("feq.s", ExecFeqS)
	case f3 == 1 && !isDouble:
		return base("flt.s", ExecFltS)
	case f3 == 0 && !isDouble:
		return base("fle.s", ExecFleS)
	case f3 == 2 && isDouble:
		return base("feq.d", ExecFeqD)
	case f3 == 1 && isDouble:
		return base("flt.d", ExecFltD)
	case f3 == 0 && isDouble:
		return base("fle.d", ExecFleD)
	}
	return nil
}

func decodeFPSgnj(f3 uint32, isDouble bool) *decoder.Instruction {
	switch {
	case f3 == 0 && !isDouble:
		return base("fsgnj.s", ExecFsgnjS)
	case f3 == 1 && !isDouble:
		return base("fsgnjn.s", ExecFsgnjnS)
	case f3 == 2 && !isDouble:
		return base("fsgnjx.s", ExecFsgnjxS)
	case f3 == 0 && isDouble:
		return base("fsgnj.d", ExecFsgnjD)
	case f3 == 1 && isDouble:
		return base("fsgnjn.d", ExecFsgnjnD)
	case f3 == 2 && isDouble:
		return base("fsgnjx.d", ExecFsgnjxD)
	}
	return nil
}

// decodeOpV handles the representative V subset: vsetvli/vsetivli
// (funct3==7, distinguished by the top immediate bits) and the OPIVV/OPIVX
// arithmetic forms (funct3 0 and 4).
func decodeOpV(word uint32) *decoder.Instruction {
	f3 := funct3Of(word)
	if f3 == 7 {
		return decodeVset(word)
	}
	if f3 != 0 && f3 != 4 {
		return nil
	}
	rd, rs1, rs2, f6 := rdOf(word), rs1Of(word), rs2Of(word), (word>>26)&0x3f
	vv := f3 == 0

	var inst *decoder.Instruction
	switch f6 {
	case 0x00:
		inst = vOr(vv, "vadd.vv", ExecVaddVV, "vadd.vx", ExecVaddVX)
	case 0x02:
		inst = vOr(vv, "vsub.vv", ExecVsubVV, "vsub.vx", ExecVsubVX)
	case 0x09:
		inst = vOr(vv, "vand.vv", ExecVandVV, "vand.vx", ExecVandVX)
	case 0x0a:
		inst = vOr(vv, "vor.vv", ExecVorVV, "vor.vx", ExecVorVX)
	case 0x0b:
		inst = vOr(vv, "vxor.vv", ExecVxorVV, "vxor.vx", ExecVxorVX)
	case 0x25:
		inst = vOr(vv, "vmul.vv", ExecVmulVV, "vmul.vx", ExecVmulVX)
	default:
		return nil
	}
	inst.Rd, inst.Rs2 = vregName(rd), vregName(rs2)
	if vv {
		inst.Rs1 = vregName(rs1)
	} else {
		inst.Rs1 = regName(rs1)
	}
	return inst
}

func vOr(vv bool, vvName string, vvExec decoder.Semantic, vxName string, vxExec decoder.Semantic) *decoder.Instruction {
	if vv {
		return base(vvName, vvExec)
	}
	return base(vxName, vxExec)
}

func decodeVset(word uint32) *decoder.Instruction {
	rd, rs1 := rdOf(word), rs1Of(word)
	if word>>31 == 0 {
		inst := base("vsetvli", ExecVsetvli)
		inst.Rd, inst.Rs1, inst.CSR = regName(rd), regName(rs1), (word>>20)&0x7ff
		return inst
	}
	if word>>30 == 0x3 {
		inst := base("vsetivli", ExecVsetivli)
		inst.Rd, inst.Imm, inst.CSR = regName(rd), int32(rs1), (word>>20)&0x3ff
		return inst
	}
	return nil
}

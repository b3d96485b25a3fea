/*
 * rv32g - RVC (compressed, C extension) expansion: a representative subset
 * of the 16-bit encodings is rewritten into its equivalent 32-bit RV32I
 * word before going through the same decode table as standard instructions,
 * so the semantics layer never has to know an instruction was compressed
 * (spec.md 4.4; Width on the resulting Instruction still records 2).
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

// cReg expands a compressed 3-bit register field (x8-x15) to its full
// 5-bit number.
func cReg(bits uint16) uint32 { return uint32(bits&0x7) + 8 }

// signExtend sign-extends the low `bits` bits of v.
func signExtend(v uint32, bits uint) int32 {
	shift := 32 - bits
	return int32(v<<shift) >> shift
}

func rType(funct7, rs2, rs1, funct3, rd, opcode uint32) uint32 {
	return funct7<<25 | rs2<<20 | rs1<<15 | funct3<<12 | rd<<7 | opcode
}

func iType(imm int32, rs1, funct3, rd, opcode uint32) uint32 {
	return uint32(imm)<<20 | rs1<<15 | funct3<<12 | rd<<7 | opcode
}

func sType(imm int32, rs2, rs1, funct3, opcode uint32) uint32 {
	u := uint32(imm)
	return (u>>5)<<25 | rs2<<20 | rs1<<15 | funct3<<12 | (u&0x1f)<<7 | opcode
}

func bType(imm int32, rs2, rs1, funct3, opcode uint32) uint32 {
	u := uint32(imm)
	b12 := (u >> 12) & 1
	b11 := (u >> 11) & 1
	b10_5 := (u >> 5) & 0x3f
	b4_1 := (u >> 1) & 0xf
	return b12<<31 | b10_5<<25 | rs2<<20 | rs1<<15 | funct3<<12 | b4_1<<8 | b11<<7 | opcode
}

func uType(imm uint32, rd, opcode uint32) uint32 {
	return (imm &^ 0xfff) | rd<<7 | opcode
}

func jType(imm int32, rd, opcode uint32) uint32 {
	u := uint32(imm)
	b20 := (u >> 20) & 1
	b19_12 := (u >> 12) & 0xff
	b11 := (u >> 11) & 1
	b10_1 := (u >> 1) & 0x3ff
	return b20<<31 | b10_1<<21 | b11<<20 | b19_12<<12 | rd<<7 | opcode
}

// ExpandC rewrites a 16-bit compressed instruction into its equivalent
// 32-bit encoding. ok is false for quadrant/funct3 combinations outside the
// representative subset this simulator implements; the caller treats that
// as an illegal instruction.
func ExpandC(raw uint16) (word uint32, ok bool) {
	quadrant := raw & 0x3
	funct3 := (raw >> 13) & 0x7

	switch quadrant {
	case 0:
		switch funct3 {
		case 0: // c.addi4spn -> addi rd', x2, nzuimm
			if raw == 0 {
				return 0, false
			}
			rd := cReg(raw >> 2)
			u := uint32(0)
			u |= uint32((raw>>11)&0x3) << 4 // bits[5:4]
			u |= uint32((raw>>7)&0xf) << 6  // bits[9:6]
			u |= uint32((raw>>6)&0x1) << 2  // bit 2
			u |= uint32((raw>>5)&0x1) << 3  // bit 3
			return iType(int32(u), 2, 0, rd, 0x13), true
		case 2: // c.lw -> lw rd', offset(rs1')
			rd := cReg(raw >> 2)
			rs1 := cReg(raw >> 7)
			off := clwOffset(raw)
			return iType(off, rs1, 2, rd, 0x03), true
		case 6: // c.sw -> sw rs2', offset(rs1')
			rs2 := cReg(raw >> 2)
			rs1 := cReg(raw >> 7)
			off := clwOffset(raw)
			return sType(off, rs2, rs1, 2, 0x23), true
		}
	case 1:
		switch funct3 {
		case 0: // c.addi / c.nop -> addi rd, rd, nzimm
			rd := uint32((raw >> 7) & 0x1f)
			imm := c1Imm6(raw)
			return iType(imm, rd, 0, rd, 0x13), true
		case 1: // c.jal -> jal x1, offset (RV32 only)
			off := cjOffset(raw)
			return jType(off, 1, 0x6f), true
		case 2: // c.li -> addi rd, x0, imm
			rd := uint32((raw >> 7) & 0x1f)
			imm := c1Imm6(raw)
			return iType(imm, 0, 0, rd, 0x13), true
		case 3: // c.lui / c.addi16sp
			rd := uint32((raw >> 7) & 0x1f)
			if rd == 2 {
				imm := c16spImm(raw)
				return iType(imm, 2, 0, 2, 0x13), true
			}
			imm := c1Imm6(raw) << 12
			return uType(uint32(imm), rd, 0x37), true
		case 4: // c.srli/c.srai/c.andi/c.sub/c.xor/c.or/c.and
			return cAluExpand(raw)
		case 5: // c.j -> jal x0, offset
			off := cjOffset(raw)
			return jType(off, 0, 0x6f), true
		case 6: // c.beqz -> beq rs1', x0, offset
			rs1 := cReg(raw >> 7)
			off := cbOffset(raw)
			return bType(off, 0, rs1, 0, 0x63), true
		case 7: // c.bnez -> bne rs1', x0, offset
			rs1 := cReg(raw >> 7)
			off := cbOffset(raw)
			return bType(off, 0, rs1, 1, 0x63), true
		}
	case 2:
		switch funct3 {
		case 0: // c.slli -> slli rd, rd, shamt
			rd := uint32((raw >> 7) & 0x1f)
			shamt := uint32((raw>>2)&0x1f) | uint32((raw>>12)&1)<<5
			return iType(int32(shamt&0x1f), rd, 1, rd, 0x13), true
		case 2: // c.lwsp -> lw rd, offset(x2)
			rd := uint32((raw >> 7) & 0x1f)
			if rd == 0 {
				return 0, false
			}
			off := clwspOffset(raw)
			return iType(off, 2, 2, rd, 0x03), true
		case 4:
			rd := uint32((raw >> 7) & 0x1f)
			rs2 := uint32((raw >> 2) & 0x1f)
			bit12 := (raw >> 12) & 1
			switch {
			case bit12 == 0 && rs2 == 0: // c.jr -> jalr x0, 0(rs1)
				if rd == 0 {
					return 0, false
				}
				return iType(0, rd, 0, 0, 0x67), true
			case bit12 == 0: // c.mv -> add rd, x0, rs2
				return rType(0, rs2, 0, 0, rd, 0x33), true
			case bit12 == 1 && rd == 0 && rs2 == 0: // c.ebreak
				return 0x00100073, true
			case bit12 == 1 && rs2 == 0: // c.jalr -> jalr x1, 0(rs1)
				return iType(0, rd, 0, 1, 0x67), true
			default: // c.add -> add rd, rd, rs2
				return rType(0, rs2, rd, 0, rd, 0x33), true
			}
		case 6: // c.swsp -> sw rs2, offset(x2)
			rs2 := uint32((raw >> 2) & 0x1f)
			off := cswspOffset(raw)
			return sType(off, rs2, 2, 2, 0x23), true
		}
	}
	return 0, false
}

func clwOffset(raw uint16) int32 {
	u := uint32(0)
	u |= uint32((raw>>6)&1) << 2
	u |= uint32((raw>>10)&0x7) << 3
	u |= uint32((raw>>5)&1) << 6
	return int32(u)
}

func c1Imm6(raw uint16) int32 {
	u := uint32((raw>>2)&0x1f) | uint32((raw>>12)&1)<<5
	return signExtend(u, 6)
}

func c16spImm(raw uint16) int32 {
	u := uint32(0)
	u |= uint32((raw>>6)&1) << 4
	u |= uint32((raw>>2)&1) << 5
	u |= uint32((raw>>5)&1) << 6
	u |= uint32((raw>>3)&0x3) << 7
	u |= uint32((raw>>12)&1) << 9
	return signExtend(u, 10)
}

func cjOffset(raw uint16) int32 {
	u := uint32(0)
	u |= uint32((raw>>3)&0x7) << 1
	u |= uint32((raw>>11)&1) << 4
	u |= uint32((raw>>2)&1) << 5
	u |= uint32((raw>>7)&1) << 6
	u |= uint32((raw>>6)&1) << 7
	u |= uint32((raw>>9)&0x3) << 8
	u |= uint32((raw>>8)&1) << 10
	u |= uint32((raw>>12)&1) << 11
	return signExtend(u, 12)
}

func cbOffset(raw uint16) int32 {
	u := uint32(0)
	u |= uint32((raw>>3)&0x3) << 1
	u |= uint32((raw>>10)&0x3) << 3
	u |= uint32((raw>>2)&1) << 5
	u |= uint32((raw>>5)&0x3) << 6
	u |= uint32((raw>>12)&1) << 8
	return signExtend(u, 9)
}

func clwspOffset(raw uint16) int32 {
	u := uint32(0)
	u |= uint32((raw>>4)&0x7) << 2
	u |= uint32((raw>>12)&1) << 5
	u |= uint32((raw>>2)&0x3) << 6
	return int32(u)
}

func cswspOffset(raw uint16) int32 {
	u := uint32(0)
	u |= uint32((raw>>9)&0xf) << 2
	u |= uint32((raw>>7)&0x3) << 6
	return int32(u)
}

// cAluExpand handles quadrant-1 funct3==4: the c.srli/c.srai/c.andi/c.sub/
// c.xor/c.or/c.and family, all of which operate on rd'==rs1'.
func cAluExpand(raw uint16) (uint32, bool) {
	rd := cReg(raw >> 7)
	funct2 := (raw >> 10) & 0x3
	switch funct2 {
	case 0: // c.srli
		shamt := uint32((raw>>2)&0x1f) | uint32((raw>>12)&1)<<5
		return iType(int32(shamt&0x1f), rd, 5, rd, 0x13), true
	case 1: // c.srai
		shamt := uint32((raw>>2)&0x1f) | uint32((raw>>12)&1)<<5
		word := iType(int32(shamt&0x1f), rd, 5, rd, 0x13)
		return word | (0x20 << 25), true
	case 2: // c.andi
		imm := c1Imm6(raw)
		return iType(imm, rd, 7, rd, 0x13), true
	case 3:
		rs2 := cReg(raw >> 2)
		funct6bit := (raw >> 12) & 1
		subop := (raw >> 5) & 0x3
		if funct6bit == 0 {
			switch subop {
			case 0: // c.sub
				return rType(0x20, rs2, rd, 0, rd, 0x33), true
			case 1: // c.xor
				return rType(0, rs2, rd, 4, rd, 0x33), true
			case 2: // c.or
				return rType(0, rs2, rd, 6, rd, 0x33), true
			case 3: // c.and
				return rType(0, rs2, rd, 7, rd, 0x33), true
			}
		}
	}
	return 0, false
}

/*
 * rv32g - Decoded instruction representation: operand bindings and the
 * semantic function chosen for them (spec.md 3, 4.4, 9).
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

// Package decoder turns fetched instruction bytes into a decoded
// Instruction bound to a semantic function, table-driven and cached by PC
// (spec.md 4.4).
package decoder

import "github.com/rv32g/rv32g/internal/state"

// OperandKind discriminates the small sum type spec.md 9 calls for:
// {RegRef(id), Imm(i64), MemRef(addr, width)}.
type OperandKind int

const (
	OperandReg OperandKind = iota
	OperandImm
	OperandMem
)

// Operand is a read-only view of one bound operand, built on demand from
// an Instruction's typed fields (see Instruction.Operands). Semantic
// functions use the typed fields directly for speed; Operand exists for
// disassembly, tracing and the debug shell.
type Operand struct {
	Kind OperandKind
	Reg  string
	Imm  int64
	Base string
	Disp int32
}

// Semantic is the executable unit a decoded Instruction is bound to. It
// reads operands from inst, computes, and writes the destination, mutating
// s. If it changes control flow itself (branch/jump taken) it must call
// s.SetPC and set inst.PCUpdated; otherwise the core advances PC by
// inst.Width.
type Semantic func(s *state.State, inst *Instruction)

// Instruction is one decoded instruction: its opcode identity, the
// operands the decoder bound for it, and the semantic that executes it.
// Width records whether the original encoding was compressed (2 bytes) or
// standard (4 bytes) so PC can advance correctly after RVC expansion
// (spec.md 4.4).
type Instruction struct {
	PC    uint32
	Raw   uint32
	Width int // 2 (RVC) or 4
	Name  string

	Rd, Rs1, Rs2, Rs3 string // register names, "" when unused
	Imm               int32  // sign-extended immediate, when used
	Shamt             uint32
	CSR               uint32
	Pred, Succ        uint32 // fence bits
	AMOOp             int
	Aq, Rl            bool
	RM                uint32 // rounding mode field for FP ops

	Exec Semantic

	PCUpdated bool // set by Exec when it changed PC itself

	// Child holds a linked child instruction for compound encodings
	// (spec.md 3); unused by the families implemented here but kept so
	// the decoder's shape does not need to change to add one.
	Child *Instruction
}

// Operands reconstructs the generic sum-typed operand list from the typed
// fields, for disassembly/tracing.
func (i *Instruction) Operands() []Operand {
	var ops []Operand
	if i.Rs1 != "" {
		ops = append(ops, Operand{Kind: OperandReg, Reg: i.Rs1})
	}
	if i.Rs2 != "" {
		ops = append(ops, Operand{Kind: OperandReg, Reg: i.Rs2})
	}
	if i.Rs3 != "" {
		ops = append(ops, Operand{Kind: OperandReg, Reg: i.Rs3})
	}
	ops = append(ops, Operand{Kind: OperandImm, Imm: int64(i.Imm)})
	return ops
}

/*
 * rv32g - Executable loader contract and stack initialization (spec.md 6).
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

// Package loader defines the executable loader contract spec.md 6 calls
// for (entry point, segment layout, symbol lookup, stack size hint) and a
// minimal stand-in implementation; general-purpose ELF parsing is out of
// scope (spec.md 9), so the bundled loader only understands the subset of
// ELF32 needed to run a statically linked RV32 binary.
package loader

// Segment is one loadable chunk of the program image: Data goes to
// physical address Addr in the simulator's flat memory.
type Segment struct {
	Addr uint32
	Data []byte
}

// Loader is the contract the simulator's driver needs from any executable
// format: an entry point, the segments to copy into memory, symbol lookup,
// and an optional stack-size hint (spec.md 6).
type Loader interface {
	Entry() uint32
	Segments() []Segment
	GetSymbol(name string) (addr, size uint32, ok bool)
	GetStackSize() (size uint32, ok bool)
}

// defaultStackSize is used when none of the flag, symbol, or GNU_STACK
// segment sources of spec.md 6 supply one.
const defaultStackSize = 32 * 1024

// InitStack resolves the initial stack pointer per spec.md 6: the stack
// base comes from flagStackBase if set, else the __stack_end symbol; the
// stack size comes from flagStackSize if set, else a non-zero __stack_size,
// else GetStackSize(), else defaultStackSize. The two resolutions are
// independent lookups — a base found one way is never paired implicitly
// with a size meant for the other (spec.md 9, Open Question 3).
func InitStack(l Loader, flagStackBase, flagStackSize uint32, haveBase, haveSize bool) (sp uint32, ok bool) {
	base, baseOK := flagStackBase, haveBase
	if !baseOK {
		base, _, baseOK = l.GetSymbol("__stack_end")
	}
	if !baseOK {
		return 0, false
	}

	size, sizeOK := flagStackSize, haveSize
	if !sizeOK {
		size, _, sizeOK = l.GetSymbol("__stack_size")
		if sizeOK && size == 0 {
			sizeOK = false
		}
	}
	if !sizeOK {
		size, sizeOK = l.GetStackSize()
	}
	if !sizeOK {
		size = defaultStackSize
	}

	return base + size, true
}

/*
 * rv32g - Minimal ELF32 loader: just enough of the format to run a
 * statically linked RV32 binary (spec.md 6, 9). PT_LOAD segments, the
 * symbol table, and the entry point only; no relocation, no dynamic
 * linking, no compression, no other architecture's e_machine accepted.
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

package loader

import (
	"encoding/binary"
	"fmt"
)

const (
	elfMagic    = "\x7fELF"
	elfClass32  = 1
	elfData2LSB = 1
	etExec      = 2
	etDyn       = 3
	emRISCV     = 243
	ptLoad      = 1
	ptGNUStack  = 0x6474e551
)

type symbol struct {
	addr, size uint32
}

// ELF32 is a minimal statically-linked ELF32/RISC-V image: an entry point,
// the PT_LOAD segments to copy into memory, the symbol table, and a
// GNU_STACK segment size if the binary carries one.
type ELF32 struct {
	entry     uint32
	segments  []Segment
	symbols   map[string]symbol
	stackSize uint32
	haveStack bool
}

// LoadELF32 parses a statically linked, little-endian ELF32 RISC-V
// executable. It does not resolve relocations or dynamic symbols; the
// binaries this simulator runs are expected to be fully linked.
func LoadELF32(data []byte) (*ELF32, error) {
	if len(data) < 52 || string(data[:4]) != elfMagic {
		return nil, fmt.Errorf("loader: not an ELF file")
	}
	if data[4] != elfClass32 {
		return nil, fmt.Errorf("loader: only 32-bit ELF is supported")
	}
	if data[5] != elfData2LSB {
		return nil, fmt.Errorf("loader: only little-endian ELF is supported")
	}

	etype := binary.LittleEndian.Uint16(data[16:18])
	if etype != etExec && etype != etDyn {
		return nil, fmt.Errorf("loader: not an executable ELF (e_type %#x)", etype)
	}
	machine := binary.LittleEndian.Uint16(data[18:20])
	if machine != emRISCV {
		return nil, fmt.Errorf("loader: not a RISC-V ELF (e_machine %#x)", machine)
	}

	e := &ELF32{
		entry:   binary.LittleEndian.Uint32(data[24:28]),
		symbols: make(map[string]symbol),
	}

	phoff := binary.LittleEndian.Uint32(data[28:32])
	phentsize := binary.LittleEndian.Uint16(data[42:44])
	phnum := binary.LittleEndian.Uint16(data[44:46])

	for i := uint16(0); i < phnum; i++ {
		base := phoff + uint32(i)*uint32(phentsize)
		if int(base)+32 > len(data) {
			return nil, fmt.Errorf("loader: program header %d out of range", i)
		}
		ph := data[base : base+32]
		segType := binary.LittleEndian.Uint32(ph[0:4])
		offset := binary.LittleEndian.Uint32(ph[4:8])
		vaddr := binary.LittleEndian.Uint32(ph[8:12])
		filesz := binary.LittleEndian.Uint32(ph[16:20])
		memsz := binary.LittleEndian.Uint32(ph[20:24])

		switch segType {
		case ptLoad:
			if int(offset)+int(filesz) > len(data) {
				return nil, fmt.Errorf("loader: PT_LOAD segment %d out of range", i)
			}
			buf := make([]byte, memsz)
			copy(buf, data[offset:offset+filesz])
			e.segments = append(e.segments, Segment{Addr: vaddr, Data: buf})
		case ptGNUStack:
			e.stackSize = memsz
			e.haveStack = memsz > 0
		}
	}

	if err := e.loadSymbols(data); err != nil {
		return nil, err
	}

	return e, nil
}

// loadSymbols walks the section header table looking for a SHT_SYMTAB
// (type 2) and its paired string table, the only sections this minimal
// loader reads beyond program headers.
func (e *ELF32) loadSymbols(data []byte) error {
	shoff := binary.LittleEndian.Uint32(data[32:36])
	shentsize := binary.LittleEndian.Uint16(data[46:48])
	shnum := binary.LittleEndian.Uint16(data[48:50])

	var symtabOff, symtabSize uint32
	var strtabIdx uint32
	found := false

	for i := uint16(0); i < shnum; i++ {
		base := shoff + uint32(i)*uint32(shentsize)
		if int(base)+40 > len(data) {
			return fmt.Errorf("loader: section header %d out of range", i)
		}
		sh := data[base : base+40]
		shType := binary.LittleEndian.Uint32(sh[4:8])
		if shType == 2 { // SHT_SYMTAB
			symtabOff = binary.LittleEndian.Uint32(sh[16:20])
			symtabSize = binary.LittleEndian.Uint32(sh[20:24])
			strtabIdx = binary.LittleEndian.Uint32(sh[24:28])
			found = true
			break
		}
	}
	if !found {
		return nil // no symbol table: GetSymbol will simply never find anything
	}

	strBase := shoff + strtabIdx*uint32(shentsize)
	if int(strBase)+40 > len(data) {
		return fmt.Errorf("loader: string table section out of range")
	}
	strSh := data[strBase : strBase+40]
	strOff := binary.LittleEndian.Uint32(strSh[16:20])

	const symEntSize = 16
	for off := symtabOff; off+symEntSize <= symtabOff+symtabSize; off += symEntSize {
		if int(off)+symEntSize > len(data) {
			break
		}
		ent := data[off : off+symEntSize]
		nameOff := binary.LittleEndian.Uint32(ent[0:4])
		value := binary.LittleEndian.Uint32(ent[4:8])
		size := binary.LittleEndian.Uint32(ent[8:12])
		name := cString(data, strOff+nameOff)
		if name != "" {
			e.symbols[name] = symbol{addr: value, size: size}
		}
	}
	return nil
}

func cString(data []byte, off uint32) string {
	if int(off) >= len(data) {
		return ""
	}
	end := off
	for int(end) < len(data) && data[end] != 0 {
		end++
	}
	return string(data[off:end])
}

func (e *ELF32) Entry() uint32       { return e.entry }
func (e *ELF32) Segments() []Segment { return e.segments }

func (e *ELF32) GetSymbol(name string) (addr, size uint32, ok bool) {
	s, found := e.symbols[name]
	if !found {
		return 0, 0, false
	}
	return s.addr, s.size, true
}

func (e *ELF32) GetStackSize() (uint32, bool) {
	return e.stackSize, e.haveStack
}

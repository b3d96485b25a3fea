/*
 * rv32g - Tests for the minimal ELF32 loader.
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
	"testing"
)

// fakeELF assembles a minimal, syntactically valid ELF32/RISC-V executable
// with one PT_LOAD segment, one PT_GNU_STACK segment, and a symbol table
// naming __stack_end and __stack_size, computing every offset as it builds
// rather than hardcoding them.
func fakeELF(t *testing.T, entry, loadAddr uint32, payload []byte, stackEnd, stackSize uint32, gnuStackSize uint32) []byte {
	t.Helper()

	const ehsize = 52
	const phentsize = 32
	const shentsize = 40

	phoff := uint32(ehsize)
	numPH := 2
	dataOff := phoff + uint32(numPH)*phentsize

	// String table: index 0 is the empty string by convention.
	strtab := []byte{0}
	nameOff := func(name string) uint32 {
		off := uint32(len(strtab))
		strtab = append(strtab, append([]byte(name), 0)...)
		return off
	}
	stackEndNameOff := nameOff("__stack_end")
	stackSizeNameOff := nameOff("__stack_size")

	strtabOff := dataOff + uint32(len(payload))
	symtabOff := strtabOff + uint32(len(strtab))

	sym := func(nameOff, value, size uint32) []byte {
		b := make([]byte, 16)
		binary.LittleEndian.PutUint32(b[0:4], nameOff)
		binary.LittleEndian.PutUint32(b[4:8], value)
		binary.LittleEndian.PutUint32(b[8:12], size)
		return b
	}
	var symtab []byte
	symtab = append(symtab, sym(stackEndNameOff, stackEnd, 0)...)
	symtab = append(symtab, sym(stackSizeNameOff, stackSize, 0)...)

	shoff := symtabOff + uint32(len(symtab))

	buf := make([]byte, ehsize)
	copy(buf[0:4], elfMagic)
	buf[4] = elfClass32
	buf[5] = elfData2LSB
	binary.LittleEndian.PutUint16(buf[16:18], etExec)
	binary.LittleEndian.PutUint16(buf[18:20], emRISCV)
	binary.LittleEndian.PutUint32(buf[24:28], entry)
	binary.LittleEndian.PutUint32(buf[28:32], phoff)
	binary.LittleEndian.PutUint32(buf[32:36], shoff)
	binary.LittleEndian.PutUint16(buf[42:44], phentsize)
	binary.LittleEndian.PutUint16(buf[44:46], uint16(numPH))
	binary.LittleEndian.PutUint16(buf[46:48], shentsize)
	binary.LittleEndian.PutUint16(buf[48:50], 2)

	ph := make([]byte, phentsize)
	binary.LittleEndian.PutUint32(ph[0:4], ptLoad)
	binary.LittleEndian.PutUint32(ph[4:8], dataOff)
	binary.LittleEndian.PutUint32(ph[8:12], loadAddr)
	binary.LittleEndian.PutUint32(ph[16:20], uint32(len(payload)))
	binary.LittleEndian.PutUint32(ph[20:24], uint32(len(payload)))
	buf = append(buf, ph...)

	ph2 := make([]byte, phentsize)
	binary.LittleEndian.PutUint32(ph2[0:4], ptGNUStack)
	binary.LittleEndian.PutUint32(ph2[20:24], gnuStackSize)
	buf = append(buf, ph2...)

	buf = append(buf, payload...)
	buf = append(buf, strtab...)
	buf = append(buf, symtab...)

	strtabSection := make([]byte, shentsize)
	binary.LittleEndian.PutUint32(strtabSection[4:8], 3) // SHT_STRTAB
	binary.LittleEndian.PutUint32(strtabSection[16:20], strtabOff)
	binary.LittleEndian.PutUint32(strtabSection[20:24], uint32(len(strtab)))

	symtabSection := make([]byte, shentsize)
	binary.LittleEndian.PutUint32(symtabSection[4:8], 2) // SHT_SYMTAB
	binary.LittleEndian.PutUint32(symtabSection[16:20], symtabOff)
	binary.LittleEndian.PutUint32(symtabSection[20:24], uint32(len(symtab)))
	binary.LittleEndian.PutUint32(symtabSection[24:28], 0) // sh_link -> section 0 (strtab)

	buf = append(buf, strtabSection...)
	buf = append(buf, symtabSection...)

	return buf
}

func TestLoadELF32EntrySegmentsAndSymbols(t *testing.T) {
	payload := []byte{0x13, 0x00, 0x00, 0x00} // addi x0,x0,0 (nop)
	data := fakeELF(t, 0x1000, 0x1000, payload, 0x200000, 0x8000, 0)

	img, err := LoadELF32(data)
	if err != nil {
		t.Fatalf("LoadELF32: %v", err)
	}
	if img.Entry() != 0x1000 {
		t.Errorf("Entry() = %#x, want %#x", img.Entry(), 0x1000)
	}
	segs := img.Segments()
	if len(segs) != 1 || segs[0].Addr != 0x1000 {
		t.Fatalf("Segments() = %+v, want one segment at 0x1000", segs)
	}
	if string(segs[0].Data) != string(payload) {
		t.Errorf("segment data = %v, want %v", segs[0].Data, payload)
	}

	addr, _, ok := img.GetSymbol("__stack_end")
	if !ok || addr != 0x200000 {
		t.Errorf("GetSymbol(__stack_end) = %#x,%v, want 0x200000,true", addr, ok)
	}
	addr, _, ok = img.GetSymbol("__stack_size")
	if !ok || addr != 0x8000 {
		t.Errorf("GetSymbol(__stack_size) = %#x,%v, want 0x8000,true", addr, ok)
	}
	if _, _, ok := img.GetSymbol("nonexistent"); ok {
		t.Errorf("GetSymbol(nonexistent) unexpectedly found")
	}
}

func TestLoadELF32RejectsNonRISCV(t *testing.T) {
	data := fakeELF(t, 0, 0, nil, 0, 0, 0)
	binary.LittleEndian.PutUint16(data[18:20], 0xf3) // leave RISC-V intact, sanity baseline
	if _, err := LoadELF32(data); err != nil {
		t.Fatalf("expected valid RISC-V ELF to load, got: %v", err)
	}

	binary.LittleEndian.PutUint16(data[18:20], 3) // EM_SPARC
	if _, err := LoadELF32(data); err == nil {
		t.Errorf("expected rejection of non-RISC-V e_machine")
	}
}

func TestInitStackPrecedence(t *testing.T) {
	data := fakeELF(t, 0x1000, 0x1000, []byte{0, 0, 0, 0}, 0x200000, 0x8000, 0)
	img, err := LoadELF32(data)
	if err != nil {
		t.Fatalf("LoadELF32: %v", err)
	}

	sp, ok := InitStack(img, 0, 0, false, false)
	if !ok || sp != 0x200000+0x8000 {
		t.Errorf("InitStack from symbols = %#x,%v, want %#x,true", sp, ok, 0x200000+0x8000)
	}

	sp, ok = InitStack(img, 0x900000, 0x1000, true, true)
	if !ok || sp != 0x900000+0x1000 {
		t.Errorf("InitStack with flags = %#x,%v, want %#x,true", sp, ok, 0x900000+0x1000)
	}
}

func TestInitStackDefaultSize(t *testing.T) {
	data := fakeELF(t, 0x1000, 0x1000, []byte{0, 0, 0, 0}, 0, 0, 0)
	img, err := LoadELF32(data)
	if err != nil {
		t.Fatalf("LoadELF32: %v", err)
	}
	sp, ok := InitStack(img, 0, 0, false, false)
	if !ok {
		t.Fatalf("InitStack: want ok=true")
	}
	if want := uint32(0) + uint32(0x8000); sp != want {
		t.Errorf("InitStack = %#x, want %#x (zero __stack_size falls back to default)", sp, want)
	}
}

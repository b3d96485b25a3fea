/*
 * rv32g - Flat, demand-paged byte-addressable memory.
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

// Package memory implements the simulator's flat 32-bit address space: a
// sparse, demand-allocated byte store plus the atomic-extension wrapper that
// serializes LR/SC reservations and AMO read-modify-writes.
package memory

const (
	// PageSize is the granularity at which pages are allocated on first
	// touch. It does not correspond to any RISC-V paging concept; there
	// is no virtual memory translation in this simulator (spec Non-goal).
	PageSize = 4096

	pageMask = PageSize - 1
	pageBits = 12
)

// Memory is a flat byte-addressable 32-bit address space, built with New:
// reads of never-written pages return zero.
type Memory struct {
	pages map[uint32][]byte

	reserved    bool
	reservation uint32 // word address (addr &^ 3) held by the current reservation

	// onWrite, when set, is invoked after every Store/StoreAtomic/Amo
	// touches memory, with the affected half-open byte range. The
	// decoder's instruction cache subscribes here to invalidate itself
	// (spec.md 4.4).
	onWrite func(addr uint32, size int)
}

// New returns an empty demand-paged memory.
func New() *Memory {
	return &Memory{pages: make(map[uint32][]byte)}
}

// OnWrite installs the callback invoked after every store. Only one
// subscriber is supported; callers that need more should chain themselves.
func (m *Memory) OnWrite(fn func(addr uint32, size int)) {
	m.onWrite = fn
}

func (m *Memory) page(pageAddr uint32, create bool) []byte {
	p, ok := m.pages[pageAddr]
	if !ok {
		if !create {
			return nil
		}
		p = make([]byte, PageSize)
		m.pages[pageAddr] = p
	}
	return p
}

// Load fills dst with len(dst) consecutive bytes starting at addr. Crossing
// a page boundary is transparent. Never-written pages read as zero.
func (m *Memory) Load(addr uint32, dst []byte) {
	for i := 0; i < len(dst); {
		pageAddr := (addr + uint32(i)) &^ pageMask
		off := (addr + uint32(i)) & pageMask
		n := copy(dst[i:], zeroPage[off:])
		if p := m.page(pageAddr, false); p != nil {
			copy(dst[i:i+n], p[off:])
		}
		i += n
	}
}

var zeroPage = make([]byte, PageSize)

// Store writes src to addr, splitting across pages as needed.
func (m *Memory) Store(addr uint32, src []byte) {
	for i := 0; i < len(src); {
		pageAddr := (addr + uint32(i)) &^ pageMask
		off := (addr + uint32(i)) & pageMask
		p := m.page(pageAddr, true)
		n := copy(p[off:], src[i:])
		i += n
	}
	if m.onWrite != nil {
		m.onWrite(addr, len(src))
	}
	m.clearReservationOnWrite(addr, uint32(len(src)))
}

// LoadWord reads a little-endian 32-bit word (used by fetch and LR/SC/AMO).
func (m *Memory) LoadWord(addr uint32) uint32 {
	var b [4]byte
	m.Load(addr, b[:])
	return le32(b[:])
}

// StoreWord writes a little-endian 32-bit word.
func (m *Memory) StoreWord(addr uint32, v uint32) {
	var b [4]byte
	putLE32(b[:], v)
	m.Store(addr, b[:])
}

func le32(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func putLE32(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

/*
 * rv32g - Memory watcher: HTIF-style callback interposer over Memory.
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

package memory

import "fmt"

// OnRead is invoked instead of the underlying load when an access falls
// inside the watched range. It must fill dst itself.
type OnRead func(addr uint32, dst []byte)

// OnWriteRange is invoked instead of the underlying store when an access falls
// inside the watched range.
type OnWriteRange func(addr uint32, src []byte)

type watchRange struct {
	lo, hi uint32 // half-open [lo, hi)
	read   OnRead
	write  OnWriteRange
}

// Watcher wraps a Memory and routes accesses to declared address ranges
// through callbacks instead of the underlying store (spec.md 4.2). Used by
// HTIF semihosting to rendezvous on the tohost/fromhost mailbox words.
type Watcher struct {
	mem    *Memory
	ranges []watchRange
}

// NewWatcher wraps mem. mem is still usable directly; accesses made through
// the Watcher are the ones that honor registered ranges.
func NewWatcher(mem *Memory) *Watcher {
	return &Watcher{mem: mem}
}

// Watch registers a callback pair for [lo, hi). Overlap with any existing
// range is rejected.
func (w *Watcher) Watch(lo, hi uint32, read OnRead, write OnWriteRange) error {
	for _, r := range w.ranges {
		if lo < r.hi && hi > r.lo {
			return fmt.Errorf("memory: watch range [%#x,%#x) overlaps existing [%#x,%#x)", lo, hi, r.lo, r.hi)
		}
	}
	w.ranges = append(w.ranges, watchRange{lo: lo, hi: hi, read: read, write: write})
	return nil
}

func (w *Watcher) find(addr uint32, size int) *watchRange {
	hi := addr + uint32(size)
	for i := range w.ranges {
		r := &w.ranges[i]
		if addr < r.hi && hi > r.lo {
			return r
		}
	}
	return nil
}

// Load routes to a watched range's read callback when the access
// intersects one, else passes through to the wrapped Memory.
func (w *Watcher) Load(addr uint32, dst []byte) {
	if r := w.find(addr, len(dst)); r != nil && r.read != nil {
		r.read(addr, dst)
		return
	}
	w.mem.Load(addr, dst)
}

// Store routes to a watched range's write callback when the access
// intersects one, else passes through to the wrapped Memory.
func (w *Watcher) Store(addr uint32, src []byte) {
	if r := w.find(addr, len(src)); r != nil && r.write != nil {
		r.write(addr, src)
		return
	}
	w.mem.Store(addr, src)
}

// LoadWord and StoreWord mirror Memory's word accessors through the watcher.
func (w *Watcher) LoadWord(addr uint32) uint32 {
	var b [4]byte
	w.Load(addr, b[:])
	return le32(b[:])
}

func (w *Watcher) StoreWord(addr uint32, v uint32) {
	var b [4]byte
	putLE32(b[:], v)
	w.Store(addr, b[:])
}

// Reserve, CancelReservation, CheckAndClear and Amo pass the LR/SC/AMO
// family straight through to the wrapped Memory; reservations are tracked
// against the physical store regardless of which watched ranges an
// instruction stream happens to touch.
func (w *Watcher) Reserve(addr uint32) { w.mem.Reserve(addr) }

func (w *Watcher) CancelReservation() { w.mem.CancelReservation() }

func (w *Watcher) CheckAndClear(addr uint32) bool { return w.mem.CheckAndClear(addr) }

func (w *Watcher) Amo(op AmoOp, addr, operand uint32) uint32 { return w.mem.Amo(op, addr, operand) }

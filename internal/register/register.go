/*
 * rv32g - Register file: canonical-named register cells with aliasing.
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

// Package register implements the simulator's named register cells: x0-x31,
// f0-f31, ABI aliases and CSRs, all addressed by a
// canonical name string and reachable through any of their aliases to the
// same underlying storage cell (spec.md 3).
package register

import "fmt"

// Cell is a single fixed-width storage slot. Width is informational (32 or
// 64 bits); the value itself is always carried in a uint64.
type Cell struct {
	Name    string
	Width   int
	value   uint64
	zero    bool // true for x0: writes are discarded, reads are 0
	onWrite func(old, new uint64)
}

// Read returns the cell's current value.
func (c *Cell) Read() uint64 {
	if c.zero {
		return 0
	}
	return c.value
}

// Write stores v, invoking any write hook, unless the cell is hard-wired
// to zero (x0).
func (c *Cell) Write(v uint64) {
	if c.zero {
		return
	}
	old := c.value
	c.value = v
	if c.onWrite != nil {
		c.onWrite(old, v)
	}
}

// File is the canonical-name-to-cell map for one hart's registers. Aliases
// share the same *Cell as the register they name, so a write through any
// alias is visible through every other (spec.md invariant in 8).
type File struct {
	cells map[string]*Cell
}

// NewFile returns an empty register file.
func NewFile() *File {
	return &File{cells: make(map[string]*Cell)}
}

// Add creates a new register cell named name with the given width. It
// panics if name is already bound — two storage cells for one register
// name is exactly the internal invariant violation spec.md 7/8 calls
// unrecoverable.
func (f *File) Add(name string, width int) *Cell {
	if _, ok := f.cells[name]; ok {
		panic(fmt.Sprintf("register: %q already has a storage cell", name))
	}
	c := &Cell{Name: name, Width: width, zero: name == "x0"}
	f.cells[name] = c
	return c
}

// Alias binds alias to the same cell as existing. existing must already be
// registered.
func (f *File) Alias(existing, alias string) {
	c, ok := f.cells[existing]
	if !ok {
		panic(fmt.Sprintf("register: cannot alias unknown register %q", existing))
	}
	if other, ok := f.cells[alias]; ok && other != c {
		panic(fmt.Sprintf("register: alias %q already names a distinct cell", alias))
	}
	f.cells[alias] = c
}

// Lookup returns the cell named name, or nil if none is registered.
func (f *File) Lookup(name string) *Cell {
	return f.cells[name]
}

// Read reads the register named name. ok is false if name is unbound.
func (f *File) Read(name string) (value uint64, ok bool) {
	c := f.cells[name]
	if c == nil {
		return 0, false
	}
	return c.Read(), true
}

// Write writes value to the register named name. ok is false if name is
// unbound; writes to x0 are silently accepted and discarded (spec.md 3).
func (f *File) Write(name string, value uint64) (ok bool) {
	c := f.cells[name]
	if c == nil {
		return false
	}
	c.Write(value)
	return true
}

// OnWrite installs a write observer on an existing cell.
func (f *File) OnWrite(name string, fn func(old, new uint64)) {
	if c := f.cells[name]; c != nil {
		c.onWrite = fn
	}
}

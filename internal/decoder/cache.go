/*
 * rv32g - Per-PC decoded instruction cache with write-invalidation.
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

package decoder

// Cache memoizes decoded instructions by PC. Any store touching
// [addr, addr+size) invalidates every cached entry whose byte range
// intersects it (spec.md 4.4, tested as an invariant in spec.md 8).
type Cache struct {
	entries map[uint32]*Instruction
}

// NewCache returns an empty decode cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[uint32]*Instruction)}
}

// Get returns the cached instruction at pc, if any.
func (c *Cache) Get(pc uint32) (*Instruction, bool) {
	inst, ok := c.entries[pc]
	return inst, ok
}

// Put memoizes inst at its PC.
func (c *Cache) Put(inst *Instruction) {
	c.entries[inst.PC] = inst
}

// Invalidate drops every cached entry whose [PC, PC+Width) range
// intersects [addr, addr+size).
func (c *Cache) Invalidate(addr uint32, size int) {
	hi := addr + uint32(size)
	for pc, inst := range c.entries {
		instHi := pc + uint32(inst.Width)
		if addr < instHi && hi > pc {
			delete(c.entries, pc)
		}
	}
}

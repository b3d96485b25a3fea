/*
 * rv32g - Debug Interface: synchronous register/memory access and software
 * breakpoints, consumed by the shell (spec.md 4.6).
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

package core

import (
	"encoding/binary"
	"fmt"
)

// ebreakWord is the standard 4-byte ebreak encoding; ebreakHalf is the
// compressed c.ebreak encoding used when the instruction being replaced was
// itself 2 bytes wide, so surrounding instructions do not shift.
const (
	ebreakWord = 0x00100073
	ebreakHalf = 0x9002
)

var errNotHalted = fmt.Errorf("core: operation requires the core to be halted")

// ReadRegister reads a register by its canonical or ABI name. Legal only
// when the core is not Running (Idle or Halted).
func (c *Core) ReadRegister(name string) (uint64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Halted && c.state != Idle {
		return 0, errNotHalted
	}
	v, ok := c.S.Regs.Read(name)
	if !ok {
		return 0, fmt.Errorf("core: no such register %q", name)
	}
	return v, nil
}

// WriteRegister writes a register by its canonical or ABI name. Legal only
// when the core is not Running (Idle or Halted).
func (c *Core) WriteRegister(name string, value uint64) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Halted && c.state != Idle {
		return errNotHalted
	}
	if !c.S.Regs.Write(name, value) {
		return fmt.Errorf("core: no such register %q", name)
	}
	return nil
}

// ReadMemory reads size bytes starting at address. Active breakpoints are
// transparent: the original bytes are returned, never the ebreak stub
// (spec.md 8). Requires Idle or Halted.
func (c *Core) ReadMemory(address uint32, size int) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Halted && c.state != Idle {
		return nil, errNotHalted
	}
	buf := make([]byte, size)
	c.S.Mem.Load(address, buf)
	for addr, bp := range c.breakpoints {
		lo, hi := addr, addr+uint32(bp.width)
		reqHi := address + uint32(size)
		if address < hi && reqHi > lo {
			overlapLo := max32(address, lo)
			overlapHi := min32(reqHi, hi)
			copy(buf[overlapLo-address:], bp.original[overlapLo-lo:overlapHi-lo])
		}
	}
	return buf, nil
}

// WriteMemory writes bytes starting at address. Requires Idle or Halted.
func (c *Core) WriteMemory(address uint32, bytes []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Halted && c.state != Idle {
		return errNotHalted
	}
	c.S.Mem.Store(address, bytes)
	return nil
}

// SetBreakpoint rewrites the instruction at address with the ebreak
// encoding, saving the original bytes so ReadMemory and ClearBreakpoint can
// restore them. Requires Idle or Halted.
func (c *Core) SetBreakpoint(address uint32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Halted && c.state != Idle {
		return errNotHalted
	}
	if _, exists := c.breakpoints[address]; exists {
		return nil
	}

	inst, ok := c.decode(address)
	width := 4
	if ok {
		width = inst.Width
	}

	var save breakpointSave
	save.width = width
	c.S.Mem.Load(address, save.original[:width])
	c.breakpoints[address] = save
	c.Cache.Invalidate(address, width)

	if width == 2 {
		var b [2]byte
		binary.LittleEndian.PutUint16(b[:], ebreakHalf)
		c.S.Mem.Store(address, b[:])
	} else {
		var b [4]byte
		binary.LittleEndian.PutUint32(b[:], ebreakWord)
		c.S.Mem.Store(address, b[:])
	}
	c.Cache.Invalidate(address, width)
	return nil
}

// ClearBreakpoint restores the original bytes at address, if a breakpoint
// is installed there. Requires Idle or Halted.
func (c *Core) ClearBreakpoint(address uint32) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state != Halted && c.state != Idle {
		return errNotHalted
	}
	save, ok := c.breakpoints[address]
	if !ok {
		return nil
	}
	c.S.Mem.Store(address, save.original[:save.width])
	c.Cache.Invalidate(address, save.width)
	delete(c.breakpoints, address)
	return nil
}

// ClearAllBreakpoints restores every installed breakpoint. Requires Halted.
func (c *Core) ClearAllBreakpoints() error {
	c.mu.Lock()
	addrs := make([]uint32, 0, len(c.breakpoints))
	for addr := range c.breakpoints {
		addrs = append(addrs, addr)
	}
	c.mu.Unlock()

	for _, addr := range addrs {
		if err := c.ClearBreakpoint(addr); err != nil {
			return err
		}
	}
	return nil
}

func max32(a, b uint32) uint32 {
	if a > b {
		return a
	}
	return b
}

func min32(a, b uint32) uint32 {
	if a < b {
		return a
	}
	return b
}

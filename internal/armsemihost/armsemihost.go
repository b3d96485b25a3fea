/*
 * rv32g - ARM semihosting: an ebreak preceded and followed by a sentinel
 * instruction pair signals a semihosting call, with the call number in a0
 * and the argument block in a1 (spec.md 6).
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

// Package armsemihost implements the ARM semihosting backend of spec.md 6.
// A call is an ebreak wrapped in the standard RISC-V semihosting sentinel
// (slli zero,zero,0x1f ; ebreak ; srai zero,zero,0x7); this package never
// claims a bare ebreak that lacks the sentinel, leaving it to a breakpoint
// or a fatal trap.
package armsemihost

import (
	"io"

	"github.com/rv32g/rv32g/internal/state"
)

// Sentinel encodings bracketing the semihosting ebreak.
const (
	sentinelBefore = 0x01f01013 // slli zero,zero,0x1f
	sentinelAfter  = 0x40705013 // srai zero,zero,0x7
)

// Call numbers this backend understands; unrecognized numbers return -1.
const (
	sysWritec = 0x03
	sysWrite0 = 0x04
	sysWrite  = 0x05
	sysExit   = 0x18
)

type exitHalter interface {
	SignalSemihostExit()
}

// memReader is the narrow read access this package needs from the
// simulator's memory.
type memReader interface {
	Load(addr uint32, dst []byte)
}

// Device answers semihosting calls made through the sentinel-wrapped ebreak
// convention, writing console output to out.
type Device struct {
	mem  memReader
	core exitHalter
	out  io.Writer
}

// Install registers Device's ebreak handler on s.
func Install(s *state.State, mem memReader, c exitHalter, out io.Writer) *Device {
	d := &Device{mem: mem, core: c, out: out}
	s.AddEbreakHandler(d.handleEbreak)
	return d
}

func (d *Device) word(addr uint32) uint32 {
	var b [4]byte
	d.mem.Load(addr, b[:])
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func (d *Device) handleEbreak(s *state.State, pc uint32) bool {
	if d.word(pc-4) != sentinelBefore || d.word(pc+4) != sentinelAfter {
		return false
	}

	call := s.ReadInt("a0")
	argBlock := s.ReadInt("a1")

	switch call {
	case sysWritec:
		var c [1]byte
		d.mem.Load(argBlock, c[:])
		d.write(c[:])
		s.WriteInt("a0", 0)
	case sysWrite0:
		d.write([]byte(d.cString(argBlock)))
		s.WriteInt("a0", 0)
	case sysWrite:
		fd := d.word(argBlock)
		bufAddr := d.word(argBlock + 4)
		length := d.word(argBlock + 8)
		_ = fd
		buf := make([]byte, length)
		d.mem.Load(bufAddr, buf)
		d.write(buf)
		s.WriteInt("a0", 0) // all bytes written
	case sysExit:
		d.core.SignalSemihostExit()
	default:
		s.WriteInt("a0", 0xffffffff)
	}

	return true
}

func (d *Device) write(b []byte) {
	if d.out != nil {
		d.out.Write(b)
	}
}

func (d *Device) cString(addr uint32) string {
	var buf []byte
	for {
		var b [1]byte
		d.mem.Load(addr, b[:])
		if b[0] == 0 {
			break
		}
		buf = append(buf, b[0])
		addr++
	}
	return string(buf)
}

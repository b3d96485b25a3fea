/*
 * rv32g - HTIF semihosting: a host-target rendezvous over four magic words
 * (tohost, tohost_ready, fromhost, fromhost_ready), built on the Memory
 * Watcher (spec.md 6).
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

// Package htif implements the HTIF semihosting backend of spec.md 6: a
// four-word rendezvous the target uses to request console output and program
// exit from the host. The symbol table gives the addresses of the four
// words; the simulator never assumes a fixed memory layout for them.
package htif

import (
	"io"

	"github.com/rv32g/rv32g/internal/loader"
	"github.com/rv32g/rv32g/internal/memory"
)

// exitHalter is the narrow slice of *core.Core this package needs; kept as
// an interface so htif does not import core (core already owns the decode
// loop that calls into htif's watch callbacks indirectly through memory).
type exitHalter interface {
	SignalSemihostExit()
}

// Device is the host side of the HTIF rendezvous: it watches the four magic
// words and answers every request the target posts to tohost synchronously,
// since fetch-decode-execute-retire is itself synchronous in this simulator.
type Device struct {
	core exitHalter
	out  io.Writer

	fromHostValue uint32
	fromHostReady uint32
}

// tohost encodes a request the same way the riscv-tests HTIF convention
// does: bit 0 set means "exit", with the exit code in the remaining bits;
// bit 0 clear means "write the low byte as a character to the console".
const exitBit = 1

// Install locates the tohost/fromhost/tohost_ready/fromhost_ready symbols in
// l and, if all four are present, registers watch callbacks on w that
// implement the rendezvous. ok is false when the binary carries no HTIF
// symbols, meaning this backend does not apply to it.
func Install(w *memory.Watcher, l loader.Loader, c exitHalter, out io.Writer) (*Device, bool, error) {
	toHostAddr, _, ok1 := l.GetSymbol("tohost")
	fromHostAddr, _, ok2 := l.GetSymbol("fromhost")
	toHostReadyAddr, _, ok3 := l.GetSymbol("tohost_ready")
	fromHostReadyAddr, _, ok4 := l.GetSymbol("fromhost_ready")
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return nil, false, nil
	}

	d := &Device{core: c, out: out}

	if err := w.Watch(toHostAddr, toHostAddr+4, nil, d.writeToHost); err != nil {
		return nil, false, err
	}
	if err := w.Watch(toHostReadyAddr, toHostReadyAddr+4, d.readAlwaysReady, nil); err != nil {
		return nil, false, err
	}
	if err := w.Watch(fromHostAddr, fromHostAddr+4, d.readFromHost, nil); err != nil {
		return nil, false, err
	}
	if err := w.Watch(fromHostReadyAddr, fromHostReadyAddr+4, d.readFromHostReady, nil); err != nil {
		return nil, false, err
	}

	return d, true, nil
}

// readAlwaysReady answers tohost_ready: this host never queues requests, so
// it is always ready for the next one.
func (d *Device) readAlwaysReady(addr uint32, dst []byte) {
	putWord(dst, 1)
}

func (d *Device) readFromHost(addr uint32, dst []byte) {
	putWord(dst, d.fromHostValue)
}

func (d *Device) readFromHostReady(addr uint32, dst []byte) {
	putWord(dst, d.fromHostReady)
}

// writeToHost processes one request the instant the target posts it: this
// simulator has no separate host thread, so "the host reads tohost when
// tohost_ready is observed" (spec.md 6) collapses into handling the write
// synchronously and leaving the response in fromhost/fromhost_ready for the
// target's next poll.
func (d *Device) writeToHost(addr uint32, src []byte) {
	word := getWord(src)

	if word&exitBit != 0 {
		d.core.SignalSemihostExit()
		d.fromHostValue = word
		d.fromHostReady = 1
		return
	}

	if d.out != nil {
		d.out.Write([]byte{byte(word)})
	}
	d.fromHostValue = 1
	d.fromHostReady = 1
}

func getWord(b []byte) uint32 {
	return uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
}

func putWord(b []byte, v uint32) {
	b[0] = byte(v)
	b[1] = byte(v >> 8)
	b[2] = byte(v >> 16)
	b[3] = byte(v >> 24)
}

/*
 * rv32g - Tests for ARM semihosting.
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

package armsemihost

import (
	"bytes"
	"testing"

	"github.com/rv32g/rv32g/internal/memory"
	"github.com/rv32g/rv32g/internal/state"
)

type fakeCore struct{ exited bool }

func (f *fakeCore) SignalSemihostExit() { f.exited = true }

func putWord(mem *memory.Memory, addr, v uint32) {
	var b [4]byte
	b[0], b[1], b[2], b[3] = byte(v), byte(v>>8), byte(v>>16), byte(v>>24)
	mem.Store(addr, b[:])
}

func newSetup(t *testing.T) (*state.State, *memory.Memory, *fakeCore, *bytes.Buffer) {
	t.Helper()
	mem := memory.New()
	s := state.New(mem)
	c := &fakeCore{}
	var out bytes.Buffer
	Install(s, mem, c, &out)
	return s, mem, c, &out
}

func writeSentinel(mem *memory.Memory, pc uint32) {
	putWord(mem, pc-4, sentinelBefore)
	putWord(mem, pc+4, sentinelAfter)
}

func TestWritecCallsOut(t *testing.T) {
	s, mem, _, out := newSetup(t)
	pc := uint32(0x2000)
	writeSentinel(mem, pc)

	argAddr := uint32(0x3000)
	mem.Store(argAddr, []byte{'Q'})
	s.WriteInt("a0", sysWritec)
	s.WriteInt("a1", argAddr)

	if !s.Ebreak(pc) {
		t.Fatalf("Ebreak(pc) = false, want true")
	}
	if out.String() != "Q" {
		t.Errorf("output = %q, want %q", out.String(), "Q")
	}
}

func TestWrite0NullTerminated(t *testing.T) {
	s, mem, _, out := newSetup(t)
	pc := uint32(0x2000)
	writeSentinel(mem, pc)

	strAddr := uint32(0x4000)
	mem.Store(strAddr, append([]byte("hello"), 0))
	s.WriteInt("a0", sysWrite0)
	s.WriteInt("a1", strAddr)

	if !s.Ebreak(pc) {
		t.Fatalf("Ebreak(pc) = false, want true")
	}
	if out.String() != "hello" {
		t.Errorf("output = %q, want %q", out.String(), "hello")
	}
}

func TestExitSignalsCore(t *testing.T) {
	s, mem, c, _ := newSetup(t)
	pc := uint32(0x2000)
	writeSentinel(mem, pc)
	s.WriteInt("a0", sysExit)

	if !s.Ebreak(pc) {
		t.Fatalf("Ebreak(pc) = false, want true")
	}
	if !c.exited {
		t.Errorf("exited = false, want true")
	}
}

func TestUnmatchedSentinelNotClaimed(t *testing.T) {
	s, _, _, _ := newSetup(t)
	if s.Ebreak(0x5000) {
		t.Errorf("Ebreak claimed without sentinel, want unclaimed")
	}
}

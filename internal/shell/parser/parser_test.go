/*
 * rv32g - Tests for the debug shell command parser.
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

package parser

import (
	"testing"

	"github.com/rv32g/rv32g/internal/core"
	memstore "github.com/rv32g/rv32g/internal/memory"
	"github.com/rv32g/rv32g/internal/state"
)

func newTestCore(t *testing.T) *core.Core {
	t.Helper()
	mem := memstore.New()
	s := state.New(mem)
	return core.New(s)
}

func TestProcessCommandUnknown(t *testing.T) {
	c := newTestCore(t)
	if _, err := ProcessCommand("bogus", c); err == nil {
		t.Errorf("ProcessCommand(bogus): want error")
	}
}

func TestProcessCommandBelowMinimumMatchLength(t *testing.T) {
	c := newTestCore(t)
	// "me" is a prefix of "memory" but shorter than its minimum match (3).
	if _, err := ProcessCommand("me", c); err == nil {
		t.Errorf("ProcessCommand(me): want error (below minimum match length)")
	}
}

func TestRegisterReadWrite(t *testing.T) {
	c := newTestCore(t)
	if _, err := ProcessCommand("register a0 1234", c); err != nil {
		t.Fatalf("register write: %v", err)
	}
	v, err := c.ReadRegister("a0")
	if err != nil {
		t.Fatalf("ReadRegister: %v", err)
	}
	if v != 0x1234 {
		t.Errorf("a0 = %#x, want 0x1234", v)
	}
}

func TestPCRegisterSpecialCased(t *testing.T) {
	c := newTestCore(t)
	if _, err := ProcessCommand("register pc 8000", c); err != nil {
		t.Fatalf("register pc write: %v", err)
	}
	if c.S.PC() != 0x8000 {
		t.Errorf("PC() = %#x, want 0x8000", c.S.PC())
	}
}

func TestDepositAndExamine(t *testing.T) {
	c := newTestCore(t)
	if _, err := ProcessCommand("deposit 1000 deadbeef", c); err != nil {
		t.Fatalf("deposit: %v", err)
	}
	got, err := c.ReadMemory(0x1000, 4)
	if err != nil {
		t.Fatalf("ReadMemory: %v", err)
	}
	want := []byte{0xde, 0xad, 0xbe, 0xef}
	if string(got) != string(want) {
		t.Errorf("ReadMemory = %x, want %x", got, want)
	}
}

func TestQuit(t *testing.T) {
	c := newTestCore(t)
	quit, err := ProcessCommand("quit", c)
	if err != nil {
		t.Fatalf("quit: %v", err)
	}
	if !quit {
		t.Errorf("quit: want true")
	}
}

func TestBreakAndClear(t *testing.T) {
	c := newTestCore(t)
	if _, err := ProcessCommand("break 1000", c); err != nil {
		t.Fatalf("break: %v", err)
	}
	if _, err := ProcessCommand("clear 1000", c); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if _, err := ProcessCommand("clear all", c); err != nil {
		t.Fatalf("clear all: %v", err)
	}
}

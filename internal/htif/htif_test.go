/*
 * rv32g - Tests for the HTIF semihosting rendezvous.
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

package htif

import (
	"bytes"
	"testing"

	"github.com/rv32g/rv32g/internal/loader"
	"github.com/rv32g/rv32g/internal/memory"
)

type fakeLoader struct {
	symbols map[string]uint32
}

func (f *fakeLoader) Entry() uint32            { return 0 }
func (f *fakeLoader) Segments() []loader.Segment { return nil }
func (f *fakeLoader) GetSymbol(name string) (addr, size uint32, ok bool) {
	a, ok := f.symbols[name]
	return a, 4, ok
}
func (f *fakeLoader) GetStackSize() (uint32, bool) { return 0, false }

type fakeCore struct {
	exited bool
}

func (f *fakeCore) SignalSemihostExit() { f.exited = true }

func newTestSetup(t *testing.T, symbols map[string]uint32) (*memory.Watcher, *fakeCore, *bytes.Buffer) {
	t.Helper()
	mem := memory.New()
	w := memory.NewWatcher(mem)
	c := &fakeCore{}
	var out bytes.Buffer
	_, ok, err := Install(w, &fakeLoader{symbols: symbols}, c, &out)
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	if !ok {
		t.Fatalf("Install: ok=false, want true")
	}
	return w, c, &out
}

func TestInstallMissingSymbolsIsNotOK(t *testing.T) {
	mem := memory.New()
	w := memory.NewWatcher(mem)
	_, ok, err := Install(w, &fakeLoader{symbols: map[string]uint32{"tohost": 0x1000}}, &fakeCore{}, nil)
	if err != nil {
		t.Fatalf("Install: %v", err)
	}
	if ok {
		t.Errorf("Install: ok=true with incomplete symbol set, want false")
	}
}

func TestCharacterWrite(t *testing.T) {
	w, c, out := newTestSetup(t, map[string]uint32{
		"tohost": 0x1000, "fromhost": 0x1004, "tohost_ready": 0x1008, "fromhost_ready": 0x100c,
	})

	var req [4]byte
	req[0] = 'A'
	w.Store(0x1000, req[:])

	if out.String() != "A" {
		t.Errorf("console output = %q, want %q", out.String(), "A")
	}
	if c.exited {
		t.Errorf("exited = true on a character write, want false")
	}

	var ready [4]byte
	w.Load(0x100c, ready[:])
	if getWord(ready[:]) != 1 {
		t.Errorf("fromhost_ready = %d, want 1", getWord(ready[:]))
	}
}

func TestExitRequest(t *testing.T) {
	w, c, _ := newTestSetup(t, map[string]uint32{
		"tohost": 0x1000, "fromhost": 0x1004, "tohost_ready": 0x1008, "fromhost_ready": 0x100c,
	})

	var req [4]byte
	putWord(req[:], (42<<1)|exitBit)
	w.Store(0x1000, req[:])

	if !c.exited {
		t.Errorf("exited = false on an exit request, want true")
	}
}

func TestToHostReadyAlwaysOne(t *testing.T) {
	w, _, _ := newTestSetup(t, map[string]uint32{
		"tohost": 0x1000, "fromhost": 0x1004, "tohost_ready": 0x1008, "fromhost_ready": 0x100c,
	})
	var b [4]byte
	w.Load(0x1008, b[:])
	if getWord(b[:]) != 1 {
		t.Errorf("tohost_ready = %d, want 1", getWord(b[:]))
	}
}

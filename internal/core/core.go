/*
 * rv32g - Core top: the fetch-decode-execute-retire run loop and its
 * Idle/Running/Halted state machine (spec.md 4.7, 5). Grounded on the
 * teacher's emu/core.core: a small struct owning a run/not-run flag driven
 * from a single goroutine, with control-thread operations crossing in
 * through synchronized accessors rather than shared mutable state.
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

// Package core implements the simulator's run/step/halt state machine and
// the Debug Interface the shell drives it through (spec.md 4.6, 4.7).
package core

import (
	"sync"
	"sync/atomic"

	"github.com/rv32g/rv32g/internal/decoder"
	"github.com/rv32g/rv32g/internal/isa"
	"github.com/rv32g/rv32g/internal/state"
)

// RunState is the core's top-level state (spec.md 4: "Core State Machine").
type RunState int32

const (
	Idle RunState = iota
	Running
	Halted
)

func (s RunState) String() string {
	switch s {
	case Idle:
		return "idle"
	case Running:
		return "running"
	case Halted:
		return "halted"
	default:
		return "unknown"
	}
}

// illegalInstructionCause is the RISC-V mcause code for an illegal
// instruction exception.
const illegalInstructionCause = 2

// Sink is offered every retired instruction (spec.md 4.7 step 5); installed
// by counter exporters and trace tooling.
type Sink func(s *state.State, inst *decoder.Instruction)

type breakpointSave struct {
	original [4]byte
	width    int
}

// Core drives one hart: architectural state, the decode cache, breakpoints,
// and the state machine described in spec.md 4.7 and 5.
type Core struct {
	S     *state.State
	Cache *decoder.Cache

	mu     sync.Mutex
	cond   *sync.Cond
	state  RunState
	reason HaltReason

	haltReq atomic.Bool

	breakpoints map[uint32]breakpointSave

	instrCount uint64
	sinks      []Sink

	// breakHit, programDone and semihostDone are set synchronously by
	// handlers invoked from inside Exec during stepOnce, so (like breakHit)
	// they need no lock: only the run-loop goroutine ever touches them,
	// and only while it itself is the one calling Exec.
	breakHit     bool
	programDone  bool
	semihostDone bool
}

// New builds a Core in the Idle state around an already-constructed State.
// Callers that want decode-cache invalidation on write must arrange for the
// underlying memory's OnWrite hook to call Cache.Invalidate themselves; Core
// does not assume a concrete memory type.
func New(s *state.State) *Core {
	c := &Core{
		S:           s,
		Cache:       decoder.NewCache(),
		state:       Idle,
		breakpoints: make(map[uint32]breakpointSave),
	}
	c.cond = sync.NewCond(&c.mu)
	s.AddEbreakHandler(c.handleBreakpointEbreak)
	return c
}

// handleBreakpointEbreak recognizes an ebreak at an address this Core
// rewrote as a breakpoint stub (spec.md 4.6) and claims it instead of
// letting it fall through to a fatal trap.
func (c *Core) handleBreakpointEbreak(s *state.State, pc uint32) bool {
	c.mu.Lock()
	_, isBreakpoint := c.breakpoints[pc]
	c.mu.Unlock()
	if !isBreakpoint {
		return false
	}
	c.breakHit = true
	return true
}

// State returns the core's current run state.
func (c *Core) State() RunState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// InstrCount returns the number of instructions retired so far.
func (c *Core) InstrCount() uint64 {
	return atomic.LoadUint64(&c.instrCount)
}

// AddSink installs a retire-time observer (spec.md 4.7 step 5).
func (c *Core) AddSink(sink Sink) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sinks = append(c.sinks, sink)
}

// EnableExitOnEcall installs an ecall handler that halts with ProgramDone
// whenever an ecall reaches it unclaimed by any handler registered earlier
// (spec.md 6 exit-on-ecall flag). Install any HTIF/ARM semihosting handlers
// on the State first so they get the chance to claim an ecall before this
// catch-all does.
func (c *Core) EnableExitOnEcall() {
	c.S.OnEcall(func(s *state.State) bool {
		c.programDone = true
		return true
	})
}

// SignalSemihostExit marks the instruction currently executing as the one
// that ends the run with SemihostHalt; called by the HTIF and ARM
// semihosting packages from inside an ecall/ebreak handler when the target
// requests an exit.
func (c *Core) SignalSemihostExit() {
	c.semihostDone = true
}

func (c *Core) fetchHalf(pc uint32) uint16 {
	var b [2]byte
	c.S.Mem.Load(pc, b[:])
	return uint16(b[0]) | uint16(b[1])<<8
}

func (c *Core) decode(pc uint32) (*decoder.Instruction, bool) {
	if inst, ok := c.Cache.Get(pc); ok {
		return inst, true
	}
	inst, ok := isa.Decode(pc, c.fetchHalf)
	if !ok {
		return nil, false
	}
	c.Cache.Put(inst)
	return inst, true
}

// stepOnce executes exactly one instruction: fetch, decode, execute, retire. It
// returns a non-nil reason when the instruction boundary just crossed
// should halt the core.
func (c *Core) stepOnce() *HaltReason {
	pc := c.S.PC()

	inst, ok := c.decode(pc)
	if !ok {
		c.S.RaiseTrap(illegalInstructionCause, pc, 0)
	} else {
		// inst may be a cached pointer reused across many visits to the
		// same PC with different register contents (e.g. a loop branch);
		// PCUpdated must not carry over a stale "taken" from a previous
		// visit, so clear it before every execution.
		inst.PCUpdated = false
		inst.Exec(c.S, inst)
	}

	if trap := c.S.TakeTrap(); trap != nil {
		return &HaltReason{Kind: HaltFatalTrap, Cause: trap.Cause, Address: trap.PC}
	}

	if !ok {
		return &HaltReason{Kind: HaltFatalTrap, Cause: illegalInstructionCause, Address: pc}
	}

	atomic.AddUint64(&c.instrCount, 1)
	c.mu.Lock()
	sinks := c.sinks
	c.mu.Unlock()
	for _, sink := range sinks {
		sink(c.S, inst)
	}

	// A breakpoint stub's ebreak was just retired; halt with PC left at
	// the breakpoint address rather than advancing past it.
	if c.breakHit {
		c.breakHit = false
		return &HaltReason{Kind: HaltBreakpoint, Address: pc}
	}

	if !inst.PCUpdated {
		c.S.SetPC(pc + uint32(inst.Width))
	}

	if c.programDone {
		c.programDone = false
		return &HaltReason{Kind: HaltProgramDone}
	}

	if c.semihostDone {
		c.semihostDone = false
		return &HaltReason{Kind: HaltSemihost}
	}

	if c.haltReq.Swap(false) {
		return &HaltReason{Kind: HaltUser}
	}

	return nil
}

// runLoop is the goroutine body for Run and Step. budget < 0 means
// unbounded (Run); budget >= 0 is the remaining instruction count (Step).
func (c *Core) runLoop(budget int64) {
	stepping := budget >= 0
	reason := HaltReason{Kind: HaltUser}

	for {
		if stepping && budget <= 0 {
			reason = HaltReason{Kind: HaltStepComplete}
			break
		}
		if r := c.stepOnce(); r != nil {
			reason = *r
			break
		}
		if stepping {
			budget--
		}
	}

	c.mu.Lock()
	c.state = Halted
	c.reason = reason
	c.mu.Unlock()
	c.cond.Broadcast()
}

// Run transitions Idle/Halted to Running and returns immediately; the run
// loop continues until a halt condition (spec.md 4.6).
func (c *Core) Run() {
	c.mu.Lock()
	if c.state == Running {
		c.mu.Unlock()
		return
	}
	c.state = Running
	c.mu.Unlock()

	go c.runLoop(-1)
}

// Step advances exactly n retired instructions, then halts (spec.md 4.6).
func (c *Core) Step(n int) {
	c.mu.Lock()
	if c.state == Running {
		c.mu.Unlock()
		return
	}
	c.state = Running
	c.mu.Unlock()

	go c.runLoop(int64(n))
}

// Halt requests a transition to Halted at the next instruction boundary.
// Safe to call from any thread, including a signal handler; idempotent.
func (c *Core) Halt() {
	c.haltReq.Store(true)
}

// Wait blocks until the core reaches Halted and returns the reason.
func (c *Core) Wait() HaltReason {
	c.mu.Lock()
	defer c.mu.Unlock()
	for c.state != Halted {
		c.cond.Wait()
	}
	return c.reason
}

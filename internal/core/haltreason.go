/*
 * rv32g - Halt reason tagged variant (spec.md 4, 4.7).
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

import "fmt"

// HaltKind discriminates why the core stopped running.
type HaltKind int

const (
	HaltNone HaltKind = iota
	HaltUser
	HaltBreakpoint
	HaltProgramDone
	HaltSemihost
	HaltFatalTrap
	HaltStepComplete
)

func (k HaltKind) String() string {
	switch k {
	case HaltNone:
		return "none"
	case HaltUser:
		return "user"
	case HaltBreakpoint:
		return "breakpoint"
	case HaltProgramDone:
		return "program-done"
	case HaltSemihost:
		return "semihost"
	case HaltFatalTrap:
		return "fatal-trap"
	case HaltStepComplete:
		return "step-complete"
	default:
		return "unknown"
	}
}

// HaltReason records why the run loop transitioned to Halted: the kind, plus
// whichever of Address (Breakpoint) or Cause (FatalTrap) applies.
type HaltReason struct {
	Kind    HaltKind
	Address uint32
	Cause   uint32
}

func (r HaltReason) String() string {
	switch r.Kind {
	case HaltBreakpoint:
		return fmt.Sprintf("breakpoint at %#08x", r.Address)
	case HaltFatalTrap:
		return fmt.Sprintf("fatal trap, cause %#x", r.Cause)
	default:
		return r.Kind.String()
	}
}

/*
 * rv32g - Floating-point dynamic rounding mode and sticky exception flags.
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

package state

// Rounding modes, as encoded in frm/the rm instruction field.
const (
	RmRNE = 0 // round to nearest, ties to even
	RmRTZ = 1 // round toward zero
	RmRDN = 2 // round down (toward -inf)
	RmRUP = 3 // round up (toward +inf)
	RmRMM = 4 // round to nearest, ties to max magnitude
	RmDyn = 7 // use frm
)

// Sticky exception flag bits, fflags layout (NV DZ OF UF NX from bit 4 down to 0).
const (
	FlagNX = 1 << 0
	FlagUF = 1 << 1
	FlagOF = 1 << 2
	FlagDZ = 1 << 3
	FlagNV = 1 << 4
)

// FPState holds the dynamic rounding mode and accumulated sticky flags
// shared by every F/D instruction (spec.md 3).
type FPState struct {
	RM    uint32 // frm
	Flags uint32 // fflags
}

// EffectiveRM resolves an instruction's rm field against the dynamic mode.
func (s *FPState) EffectiveRM(instRM uint32) uint32 {
	if instRM == RmDyn {
		return s.RM
	}
	return instRM
}

// SetFlags ORs additional sticky bits into fflags.
func (s *FPState) SetFlags(bits uint32) {
	s.Flags |= bits
}

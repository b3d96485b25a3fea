/*
 * rv32g - Atomic extension: LR/SC reservations and AMO read-modify-write.
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

package memory

// AmoOp identifies one of the RV32A read-modify-write operations.
type AmoOp int

const (
	AmoSwap AmoOp = iota
	AmoAdd
	AmoAnd
	AmoOr
	AmoXor
	AmoMin
	AmoMax
	AmoMinu
	AmoMaxu
)

// reservationGranule is the size, in bytes, of the word an LR/SC pair
// reserves. RV32A reserves one naturally aligned word.
const reservationGranule = 4

// Reserve records a load-reserved at addr. The reservation granule is the
// containing naturally aligned word.
func (m *Memory) Reserve(addr uint32) {
	m.reserved = true
	m.reservation = addr &^ (reservationGranule - 1)
}

// CancelReservation drops any outstanding reservation without checking it.
func (m *Memory) CancelReservation() {
	m.reserved = false
}

// CheckAndClear implements store-conditional: if addr names the currently
// reserved word, the reservation is consumed and true (success) is
// returned; otherwise it returns false and leaves any unrelated
// reservation untouched.
func (m *Memory) CheckAndClear(addr uint32) bool {
	word := addr &^ (reservationGranule - 1)
	if !m.reserved || word != m.reservation {
		return false
	}
	m.reserved = false
	return true
}

// clearReservationOnWrite invalidates an outstanding reservation if a store
// (from any observer, including a successful SC itself) touches the
// reserved word.
func (m *Memory) clearReservationOnWrite(addr, size uint32) {
	if !m.reserved {
		return
	}
	lo := m.reservation
	hi := m.reservation + reservationGranule
	wlo, whi := addr, addr+size
	if wlo < hi && whi > lo {
		m.reserved = false
	}
}

// LoadAtomic is a plain word load; it neither establishes nor changes a
// reservation. Pair with Reserve for lr.w.
func (m *Memory) LoadAtomic(addr uint32) uint32 {
	return m.LoadWord(addr)
}

// StoreAtomic performs an unconditional word store.
func (m *Memory) StoreAtomic(addr uint32, v uint32) {
	m.StoreWord(addr, v)
}

// Amo performs the indivisible read-modify-write at addr and returns the
// value that was loaded (the destination register value for amo*.w).
func (m *Memory) Amo(op AmoOp, addr uint32, operand uint32) uint32 {
	old := m.LoadWord(addr)
	var result uint32
	switch op {
	case AmoSwap:
		result = operand
	case AmoAdd:
		result = old + operand
	case AmoAnd:
		result = old & operand
	case AmoOr:
		result = old | operand
	case AmoXor:
		result = old ^ operand
	case AmoMin:
		if int32(old) < int32(operand) {
			result = old
		} else {
			result = operand
		}
	case AmoMax:
		if int32(old) > int32(operand) {
			result = old
		} else {
			result = operand
		}
	case AmoMinu:
		if old < operand {
			result = old
		} else {
			result = operand
		}
	case AmoMaxu:
		if old > operand {
			result = old
		} else {
			result = operand
		}
	}
	m.StoreWord(addr, result)
	return old
}

/*
 * rv32g - Vector-extension configuration state (vtype/vl/vstart/VLEN).
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

// VLEN is the width in bits of each vector register. 256 bits is a common,
// modest choice for a functional (non-cycle-accurate) simulator.
const VLEN = 256

// VectorState is the configured vtype plus the active-length and
// resume-index registers (spec.md 3).
type VectorState struct {
	SEW           int  // selected element width, bits: 8/16/32/64
	LMUL          int8 // length multiplier numerator; negative encodes a fractional LMUL (-1 => 1/2, -2 => 1/4, -3 => 1/8)
	TailAgnostic  bool
	MaskAgnostic  bool
	VL            uint32
	Vstart        uint32
	VtypeIllegal  bool
	rawVtype      uint32
}

// VLMAX derives the maximum active-element count from the configured SEW
// and LMUL (spec.md 3): VLEN * LMUL / SEW, with fractional LMUL dividing.
func (v *VectorState) VLMAX() uint32 {
	if v.SEW == 0 {
		return 0
	}
	num := VLEN
	if v.LMUL > 0 {
		num *= int(v.LMUL)
	}
	den := v.SEW
	if v.LMUL < 0 {
		den *= 1 << uint(-v.LMUL)
	}
	return uint32(num / den)
}

// SetVtype decodes a vtype value into SEW/LMUL/policy bits and stores it.
func (v *VectorState) SetVtype(vtype uint32) {
	v.rawVtype = vtype
	vlmul := vtype & 0x7
	vsew := (vtype >> 3) & 0x7
	v.TailAgnostic = (vtype>>6)&1 != 0
	v.MaskAgnostic = (vtype>>7)&1 != 0
	v.VtypeIllegal = (vtype>>31)&1 != 0

	switch vsew {
	case 0:
		v.SEW = 8
	case 1:
		v.SEW = 16
	case 2:
		v.SEW = 32
	case 3:
		v.SEW = 64
	default:
		v.VtypeIllegal = true
	}

	switch vlmul {
	case 0:
		v.LMUL = 1
	case 1:
		v.LMUL = 2
	case 2:
		v.LMUL = 4
	case 3:
		v.LMUL = 8
	case 5:
		v.LMUL = -1
	case 6:
		v.LMUL = -2
	case 7:
		v.LMUL = -3
	default:
		v.VtypeIllegal = true
	}
}

// Vtype returns the raw vtype CSR value as last set by SetVtype.
func (v *VectorState) Vtype() uint32 {
	return v.rawVtype
}

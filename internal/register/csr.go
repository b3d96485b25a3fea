/*
 * rv32g - Control/status register definitions and the csrrw/csrrs/csrrc family helpers.
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

package register

// CSR numbers used by this simulator (machine-mode only; spec.md Non-goal:
// privilege transitions beyond machine mode).
const (
	CSRFflags  = 0x001
	CSRFrm     = 0x002
	CSRFcsr    = 0x003
	CSRVstart  = 0x008
	CSRVxsat   = 0x009
	CSRVxrm    = 0x00A
	CSRVcsr    = 0x00F
	CSRVl      = 0xC20
	CSRVtype   = 0xC21
	CSRVlenb   = 0xC22
	CSRMstatus = 0x300
	CSRMisa    = 0x301
	CSRMtvec   = 0x305
	CSRMepc    = 0x341
	CSRMcause  = 0x342
	CSRMtval   = 0x343
	CSRMhartid = 0xF14
)

// CSRName returns the canonical register-file name for a 12-bit CSR index.
func CSRName(num uint32) string {
	if name, ok := csrNames[num]; ok {
		return name
	}
	return ""
}

var csrNames = map[uint32]string{
	CSRFflags:  "fflags",
	CSRFrm:     "frm",
	CSRFcsr:    "fcsr",
	CSRVstart:  "vstart",
	CSRVxsat:   "vxsat",
	CSRVxrm:    "vxrm",
	CSRVcsr:    "vcsr",
	CSRVl:      "vl",
	CSRVtype:   "vtype",
	CSRVlenb:   "vlenb",
	CSRMstatus: "mstatus",
	CSRMisa:    "misa",
	CSRMtvec:   "mtvec",
	CSRMepc:    "mepc",
	CSRMcause:  "mcause",
	CSRMtval:   "mtval",
	CSRMhartid: "mhartid",
}

// AddCSR registers a CSR as a plain 32-bit register cell with an optional
// write hook (spec.md 3: "a side-effect hook invoked on write, e.g.
// updating rounding mode on frm").
func (f *File) AddCSR(num uint32, onWrite func(old, new uint64)) *Cell {
	name := CSRName(num)
	if name == "" {
		panic("register: unknown CSR number")
	}
	c := f.Add(name, 32)
	c.onWrite = onWrite
	return c
}

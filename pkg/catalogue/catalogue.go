// Copyright 2025 racehook project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package catalogue holds the static tables of known external symbols the
// instrumentation core matches call sites against, plus the two explicit
// probe functions (one per family) that replace the template-heavy,
// payload-generic probing of the pass this core was ported from. A single
// probe function taking an operand-layout descriptor was the other option
// DESIGN NOTES considered; two small, concrete functions read closer to how
// the rest of this core already dispatches on ir.Opcode than a descriptor
// table would.
package catalogue

import "github.com/fuzzcore/racehook/pkg/ir"

// Candidate is one concrete symbol name a catalogue entry accepts, together
// with a per-candidate flag that becomes the hook's flag payload. The
// catalogues carry no flag of their own, so nothing is OR'd into it.
type Candidate struct {
	Name string
	Flag uint64
}

// ProbeHit binds a matched call site to the catalogue entry and specific
// candidate symbol that matched it.
type ProbeHit struct {
	InstName  string
	Semantic  string
	Candidate string
	Flag      uint64
}

// MemsetCandidates is the memset family: the libc symbol plus the two
// memset intrinsics parameterized by the size-operand width. Operand layout
// is (addr=0, size=2), ported 1:1 from MEMSET_APIS_AVAILS in the original
// pass's Probe.cpp, renamed from the legacy "p0i8" byte-pointer mangling to
// the modern opaque-pointer "p0" mangling (see DESIGN.md).
var MemsetCandidates = []Candidate{
	{Name: "memset"},
	{Name: "llvm.memset.p0.i32"},
	{Name: "llvm.memset.p0.i64"},
}

// MemsetAddrIdx and MemsetSizeIdx are the fixed argument positions of the
// address and byte-count operands for every MemsetCandidates entry.
const (
	MemsetAddrIdx = 0
	MemsetSizeIdx = 2
)

// MemcpyCandidates is the memcpy/memmove family: both intrinsics for both
// size-operand widths. Operand layout is (src=1, dst=0, size=2), ported from
// MEMCPY_APIS_AVAILS, with the same p0i8-to-p0 mangling update.
var MemcpyCandidates = []Candidate{
	{Name: "llvm.memcpy.p0.p0.i32"},
	{Name: "llvm.memcpy.p0.p0.i64"},
	{Name: "llvm.memmove.p0.p0.i32"},
	{Name: "llvm.memmove.p0.p0.i64"},
}

const (
	MemcpySrcIdx  = 1
	MemcpyDstIdx  = 0
	MemcpySizeIdx = 2
)

func matchCandidate(callee string, candidates []Candidate) (Candidate, bool) {
	for _, c := range candidates {
		if c.Name == callee {
			return c, true
		}
	}
	return Candidate{}, false
}

// ProbeMemset matches inst against the memset catalogue. It returns a
// ProbeHit and true if inst is a resolvable call to one of MemsetCandidates.
func ProbeMemset(inst ir.Instruction) (ProbeHit, bool) {
	if inst.Op != ir.OpCall || !inst.Resolvable {
		return ProbeHit{}, false
	}
	c, ok := matchCandidate(inst.Callee, MemsetCandidates)
	if !ok {
		return ProbeHit{}, false
	}
	return ProbeHit{InstName: inst.Name, Semantic: "memset", Candidate: c.Name, Flag: c.Flag}, true
}

// ProbeMemcpy matches inst against the memcpy/memmove catalogue. It returns
// a ProbeHit and true if inst is a resolvable call to one of
// MemcpyCandidates.
func ProbeMemcpy(inst ir.Instruction) (ProbeHit, bool) {
	if inst.Op != ir.OpCall || !inst.Resolvable {
		return ProbeHit{}, false
	}
	c, ok := matchCandidate(inst.Callee, MemcpyCandidates)
	if !ok {
		return ProbeHit{}, false
	}
	return ProbeHit{InstName: inst.Name, Semantic: "memcpy", Candidate: c.Name, Flag: c.Flag}, true
}

// MemsetArgs extracts the (addr, size) operands of a call already confirmed
// to match the memset catalogue by ProbeMemset.
func MemsetArgs(inst ir.Instruction) (addr, size ir.Operand) {
	return inst.Args[MemsetAddrIdx], inst.Args[MemsetSizeIdx]
}

// MemcpyArgs extracts the (src, dst, size) operands of a call already
// confirmed to match the memcpy catalogue by ProbeMemcpy.
func MemcpyArgs(inst ir.Instruction) (src, dst, size ir.Operand) {
	return inst.Args[MemcpySrcIdx], inst.Args[MemcpyDstIdx], inst.Args[MemcpySizeIdx]
}

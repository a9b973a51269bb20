// Copyright 2025 racehook project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package ir

// The constructors below build individual instructions for hand-written test
// fixtures, the same role small node-constructor functions play in
// pkg/compiler's own AST-fixture tests: a table-driven test builds a
// Module/Function/Block by literal assembly instead of parsing source text.

// Load returns an original scalar load instruction.
func Load(name, ptr string, bytes int) Instruction {
	return Instruction{
		Op:          OpLoad,
		Name:        name,
		Original:    true,
		Pointer:     Operand{Name: ptr, Kind: OperandPointer},
		AccessBytes: bytes,
	}
}

// Store returns an original scalar store instruction.
func Store(name, ptr string, bytes int) Instruction {
	return Instruction{
		Op:          OpStore,
		Name:        name,
		Original:    true,
		Pointer:     Operand{Name: ptr, Kind: OperandPointer},
		AccessBytes: bytes,
	}
}

// Alloca returns an original stack-allocation instruction of the given size
// in bytes (already the product of element size and array count, if any).
func Alloca(name string, bytes int) Instruction {
	return Instruction{
		Op:         OpAlloca,
		Name:       name,
		Original:   true,
		AllocBytes: bytes,
	}
}

// Call returns an original call instruction to the given callee with the
// given arguments. Resolvable indicates whether the callee symbol name is
// known (false models an indirect call through a function pointer, which
// pkg/catalogue can never match).
func Call(name, callee string, resolvable bool, args ...Operand) Instruction {
	return Instruction{
		Op:         OpCall,
		Name:       name,
		Original:   true,
		Callee:     callee,
		Resolvable: resolvable,
		Args:       args,
	}
}

// IntArg returns an integer-typed call argument operand.
func IntArg(name string, bits int) Operand {
	return Operand{Name: name, Kind: OperandInt, Bits: bits}
}

// PtrArg returns a pointer-typed call argument operand.
func PtrArg(name string) Operand {
	return Operand{Name: name, Kind: OperandPointer}
}

// ConstArg returns a literal 64-bit constant operand, used for a hook's
// flag and hash payload words.
func ConstArg(v uint64) Operand {
	return Operand{Kind: OperandInt, Bits: 64, Const: v, Literal: true}
}

// Return returns an original value-returning terminator instruction.
func Return(name string) Instruction {
	return Instruction{Op: OpReturn, Name: name, Original: true}
}

// Branch returns an original non-return terminator of the given kind
// (TermBranch, TermSwitch, TermInvoke, TermResume or TermUnreachable).
func Branch(name string, kind TerminatorKind) Instruction {
	return Instruction{Op: OpTerminator, Name: name, Original: true, Term: kind}
}

// HookMark returns the sentinel hook-mark instruction. It is never marked
// Original since no ordinary compilation can produce it.
func HookMark() Instruction {
	return Instruction{Op: OpHookMark, Name: MarkSentinelName}
}

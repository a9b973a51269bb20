// Copyright 2025 racehook project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package instrument

import "github.com/fuzzcore/racehook/pkg/ir"

// Hook names, exactly the runtime ABI surface spec.md §4.4 and §6 describe.
const (
	HookExecPause    = "exec_pause"
	HookExecResume   = "exec_resume"
	HookExecFuncEnter = "exec_func_enter"
	HookExecFuncExit  = "exec_func_exit"
	HookCovCfg        = "cov_cfg"
	HookMemStackPush  = "mem_stack_push"
	HookMemStackPop   = "mem_stack_pop"
	HookMemRead       = "mem_read"
	HookMemWrite      = "mem_write"
)

// widen applies the payload widening rule every hook shares: pointers pass
// through as-is (already u64 at the ABI boundary), integers narrower than
// 64 bits are zero-extended to 64.
func widen(op ir.Operand) ir.Operand {
	if op.Kind == ir.OperandPointer {
		return op
	}
	if op.Bits < 64 {
		op.Bits = 64
	}
	return op
}

// emitHook builds a call instruction to the named runtime hook using the
// shared (flag, hash, payload...) calling convention every row of spec.md
// §4.4's hook table follows. The returned instruction is never Original: it
// is always something the pass itself inserted.
func emitHook(name string, flag, hashVal uint64, payload ...ir.Operand) ir.Instruction {
	args := make([]ir.Operand, 0, 2+len(payload))
	args = append(args, ir.ConstArg(flag), ir.ConstArg(hashVal))
	for _, p := range payload {
		args = append(args, widen(p))
	}
	return ir.Instruction{
		Op:         ir.OpCall,
		Name:       name + ".call",
		Callee:     name,
		Resolvable: true,
		Args:       args,
	}
}

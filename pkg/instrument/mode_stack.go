// Copyright 2025 racehook project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package instrument

import (
	"fmt"
	"io"

	"github.com/fuzzcore/racehook/pkg/ir"
)

// stackVar is one alloca the stack-lifetime pass found, together with the
// identity its enclosing instruction carries from enumeration.
type stackVar struct {
	hash  uint64
	name  string
	bytes int
}

// InstrumentMemStack inserts mem_stack_push hooks immediately after the
// last alloca of every block that has one, and mem_stack_pop hooks for
// every alloca gathered across the whole function at each of the
// function's exit points. trace, if non-nil, receives a warning whenever a
// block's allocas are not contiguous in program order — still correct
// (every alloca in the block is still pushed), but a sign the block mixes
// declarations and other work in a way later modes may hook awkwardly.
func InstrumentMemStack(m *ir.Module, enum Enumeration, trace io.Writer) {
	for _, fr := range enum.Funcs {
		f := &m.Functions[fr.Index]
		var funcVars []stackVar

		for _, br := range fr.Blocks {
			b := &f.Blocks[br.Index]

			var blockVars []stackVar
			firstAlloca, lastAlloca := -1, -1
			for i, inst := range b.Insts {
				if !inst.Original || inst.Op != ir.OpAlloca {
					continue
				}
				if firstAlloca < 0 {
					firstAlloca = i
				}
				lastAlloca = i
				blockVars = append(blockVars, stackVar{hash: inst.Hash, name: inst.Name, bytes: inst.AllocBytes})
			}
			if lastAlloca < 0 {
				continue
			}

			if trace != nil {
				for cursor := firstAlloca; cursor < lastAlloca; cursor++ {
					if b.Insts[cursor].Op != ir.OpAlloca {
						fmt.Fprintf(trace, "non-contiguous alloca in function %s: %s\n", f.Name, b.Insts[cursor].Name)
					}
				}
			}

			pushIdx := lastAlloca + 1
			for _, v := range blockVars {
				b.InsertAt(pushIdx, emitHook(HookMemStackPush, 0, v.hash, ir.PtrArg(v.name), ir.ConstArg(uint64(v.bytes))))
				pushIdx++
			}
			funcVars = append(funcVars, blockVars...)
		}

		if funcVars == nil {
			continue
		}
		for _, exit := range FunctionExitPoints(f) {
			for _, v := range funcVars {
				exit.Block.InsertAt(exit.Index, emitHook(HookMemStackPop, 0, v.hash, ir.PtrArg(v.name), ir.ConstArg(uint64(v.bytes))))
				exit.Index++
			}
		}
	}
}

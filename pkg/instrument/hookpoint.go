// Copyright 2025 racehook project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package instrument

import "github.com/fuzzcore/racehook/pkg/ir"

// BlockHookPoint returns the index of b's hook mark, creating one at the
// block's first non-phi position if none exists yet. Every mode that wants
// to anchor a hook "at the block's hook point" (coverage, entry) inserts at
// this index: since the index always refers to the mark's current position,
// repeated inserts land immediately before the mark and are pushed later by
// each subsequent insert there, preserving call order (FIFO).
func BlockHookPoint(b *ir.Block) int {
	if idx := b.HookMarkIndex(); idx >= 0 {
		return idx
	}
	idx := b.FirstNonPhiIndex()
	b.InsertAt(idx, ir.HookMark())
	return idx
}

// FunctionEntryPoint returns the insertion index, within f's entry block, at
// which entry-side hooks are placed: the entry block's hook point.
func FunctionEntryPoint(f *ir.Function) int {
	return BlockHookPoint(f.Entry())
}

// ExitPoint is one function-exit insertion site.
type ExitPoint struct {
	Block *ir.Block
	Index int
}

// FunctionExitPoints returns one ExitPoint per block of f terminating in an
// OpReturn instruction. Each index is found by walking backward from the
// terminator past every already-inserted (non-original, non-mark)
// instruction until reaching either an original instruction or the block's
// hook mark — "the last point before any previously inserted exit hooks and
// after all original computation."
//
// Because the scan always undercuts whatever a prior mode already inserted
// there, a mode that runs later ends up positioned closer to the original
// code (executing earlier among the exit hooks) than a mode that ran
// earlier. This is the LIFO exit ordering spec.md §4.3 describes: the
// function-exec mode runs first and its exec_func_exit hook ends up the
// outermost, last-executing exit hook, with every later mode's exit hooks
// (mem_stack_pop) landing between the original code and it — "stack-pop
// hooks fire after enter-hooks but before exit-hooks."
//
// A block whose only original instruction is the terminator itself (the
// exit-point walker's degenerate case, spec.md §9) has nothing to skip past
// and yields the position immediately after its hook mark.
func FunctionExitPoints(f *ir.Function) []ExitPoint {
	var points []ExitPoint
	for i := range f.Blocks {
		b := &f.Blocks[i]
		term := b.Terminator()
		if term == nil || term.Op != ir.OpReturn {
			continue
		}
		idx := len(b.Insts) - 1
		for idx > 0 {
			prev := b.Insts[idx-1]
			if prev.Original || prev.Op == ir.OpHookMark {
				break
			}
			idx--
		}
		points = append(points, ExitPoint{Block: b, Index: idx})
	}
	return points
}

// Copyright 2025 racehook project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package instrument

import (
	"github.com/fuzzcore/racehook/pkg/catalogue"
	"github.com/fuzzcore/racehook/pkg/ir"
)

// InstrumentMemAccess inserts mem_read/mem_write hooks immediately before
// every scalar load/store, and before every call matching the memset or
// memcpy catalogue. A memcpy-matched call gets both a mem_read (the source
// range) and a mem_write (the destination range), in that order, since the
// copy observably reads before it writes. The block is walked back to front
// so each insertion index, captured just before its own insert, still
// refers to the original instruction it targets regardless of how many
// hooks get spliced in after it during this same pass.
func InstrumentMemAccess(m *ir.Module, enum Enumeration) {
	for _, fr := range enum.Funcs {
		f := &m.Functions[fr.Index]
		for _, br := range fr.Blocks {
			b := &f.Blocks[br.Index]

			for i := len(b.Insts) - 1; i >= 0; i-- {
				inst := b.Insts[i]
				if !inst.Original || !inst.Hashed {
					continue
				}

				switch {
				case inst.Op == ir.OpLoad:
					b.InsertAt(i, emitHook(HookMemRead, 0, inst.Hash, inst.Pointer, ir.ConstArg(uint64(inst.AccessBytes))))

				case inst.Op == ir.OpStore:
					b.InsertAt(i, emitHook(HookMemWrite, 0, inst.Hash, inst.Pointer, ir.ConstArg(uint64(inst.AccessBytes))))

				default:
					if hit, ok := catalogue.ProbeMemset(inst); ok {
						addr, size := catalogue.MemsetArgs(inst)
						b.InsertAt(i, emitHook(HookMemWrite, hit.Flag, inst.Hash, addr, size))
						continue
					}
					if hit, ok := catalogue.ProbeMemcpy(inst); ok {
						src, dst, size := catalogue.MemcpyArgs(inst)
						b.InsertAt(i, emitHook(HookMemWrite, hit.Flag, inst.Hash, dst, size))
						b.InsertAt(i, emitHook(HookMemRead, hit.Flag, inst.Hash, src, size))
					}
				}
			}
		}
	}
}

// Copyright 2025 racehook project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package instrument

import (
	"github.com/fuzzcore/racehook/pkg/compiledb"
	"github.com/fuzzcore/racehook/pkg/ir"
)

// BlockRecord is one enumerated basic block.
type BlockRecord struct {
	Index int // index into Function.Blocks
	Hash  uint64
}

// FuncRecord is one enumerated function.
type FuncRecord struct {
	Index  int // index into Module.Functions
	Hash   uint64
	Blocks []BlockRecord
}

// Enumeration is the result of one enumeration sweep: the module's seed and
// every eligible function/block, each carrying its stable 64-bit hash. Every
// original instruction's hash is written directly onto the instruction
// itself (ir.Instruction.Hash), not tracked here, so it survives whatever
// position shifts later hook insertions cause within its block.
type Enumeration struct {
	Seed  uint64
	Funcs []FuncRecord
}

// Enumerate walks m in its natural order — functions in module order,
// blocks in function order, instructions in block order — skipping
// intrinsics, external declarations and functions the database opts out,
// and assigns every eligible function/block/original-instruction its stable
// hash. block_ordinal and inst_ordinal are module-wide monotonic counters,
// not per-function, so enumeration order alone determines every hash.
func Enumerate(m *ir.Module, db *compiledb.DB) Enumeration {
	seed := ModuleSeed(m.Name)
	var blockOrdinal, instOrdinal int
	enum := Enumeration{Seed: seed}

	for fi := range m.Functions {
		f := &m.Functions[fi]
		if f.Declaration || f.Intrinsic || db.Ignored(f.Name) {
			continue
		}
		fh := FuncHash(seed, f.Name)
		fr := FuncRecord{Index: fi, Hash: fh}

		for bi := range f.Blocks {
			b := &f.Blocks[bi]
			bh := BlockHash(fh, blockOrdinal)
			blockOrdinal++
			fr.Blocks = append(fr.Blocks, BlockRecord{Index: bi, Hash: bh})

			for ii := range b.Insts {
				if !b.Insts[ii].Original {
					continue
				}
				b.Insts[ii].Hash = InstHash(bh, instOrdinal)
				b.Insts[ii].Hashed = true
				instOrdinal++
			}
		}
		enum.Funcs = append(enum.Funcs, fr)
	}
	return enum
}

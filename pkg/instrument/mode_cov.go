// Copyright 2025 racehook project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package instrument

import "github.com/fuzzcore/racehook/pkg/ir"

// InstrumentCovCfg inserts one cov_cfg hook per eligible block, anchored at
// the block's hook point (the mark itself, already placed by
// establishHookMarks before any mode runs). Because cov_cfg runs after exec_func_enter has already claimed the
// entry block's hook point, its call lands immediately before the mark,
// executing after exec_func_enter on entry.
func InstrumentCovCfg(m *ir.Module, enum Enumeration) {
	for _, fr := range enum.Funcs {
		f := &m.Functions[fr.Index]
		for _, br := range fr.Blocks {
			b := &f.Blocks[br.Index]
			idx := BlockHookPoint(b)
			b.InsertAt(idx, emitHook(HookCovCfg, 0, br.Hash))
		}
	}
}

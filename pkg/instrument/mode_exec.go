// Copyright 2025 racehook project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package instrument

import "github.com/fuzzcore/racehook/pkg/ir"

// InstrumentExecIgnore wraps every eligible function in exec_pause /
// exec_resume, the only hooks a module opted fully out of tracing still
// needs so the runtime can bracket it out of whatever else is in flight.
func InstrumentExecIgnore(m *ir.Module, enum Enumeration) {
	for _, fr := range enum.Funcs {
		f := &m.Functions[fr.Index]

		entry := FunctionEntryPoint(f)
		f.Entry().InsertAt(entry, emitHook(HookExecPause, 0, fr.Hash))

		for _, exit := range FunctionExitPoints(f) {
			exit.Block.InsertAt(exit.Index, emitHook(HookExecResume, 0, fr.Hash))
		}
	}
}

// InstrumentExecFunc wraps every eligible function in exec_func_enter /
// exec_func_exit, the call-depth tracking hooks normal mode always inserts
// first, before coverage or memory hooks exist to anchor against.
func InstrumentExecFunc(m *ir.Module, enum Enumeration) {
	for _, fr := range enum.Funcs {
		f := &m.Functions[fr.Index]

		fnPtr := ir.PtrArg(f.Name)

		entry := FunctionEntryPoint(f)
		f.Entry().InsertAt(entry, emitHook(HookExecFuncEnter, 0, fr.Hash, fnPtr))

		for _, exit := range FunctionExitPoints(f) {
			exit.Block.InsertAt(exit.Index, emitHook(HookExecFuncExit, 0, fr.Hash, fnPtr))
		}
	}
}

// Copyright 2025 racehook project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package instrument is the static instrumentation core: it walks an
// in-memory ir.Module and rewrites it in place with deterministic hook
// callsites for coverage, memory-access tracing, stack-lifetime tracking
// and call-depth tracking, then emits a sidecar report describing exactly
// what it hashed and hooked.
package instrument

import (
	"fmt"

	"github.com/fuzzcore/racehook/pkg/compiledb"
	"github.com/fuzzcore/racehook/pkg/ir"
	"github.com/fuzzcore/racehook/pkg/log"
)

// Run instruments cfg.Module in place according to cfg.Mode and returns the
// sidecar report describing the run. It does not write the report to disk;
// callers that want the sidecar on disk call WriteReport themselves, the
// same split the CLI driver and tests each want for different reasons.
func Run(cfg Config) (*Report, error) {
	if err := checkPreconditions(cfg.Module); err != nil {
		return nil, err
	}

	if cfg.Mode != ModeIgnore && cfg.Mode != ModeNormal {
		return nil, fmt.Errorf("%w: %q", ErrInvalidMode, cfg.Mode)
	}

	db, err := compiledb.Load(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCompileDB, err)
	}

	enum := Enumerate(cfg.Module, db)
	establishHookMarks(cfg.Module, enum)

	if tag, ok := db.Special(cfg.Module.Name); ok {
		// Enumeration and hook marks are already in place; only the
		// mode-specific hook insertion is skipped, so the sidecar
		// still reports every function, block and instruction this
		// module hashed.
		log.Logf(1, "instrument: module %s matches special tag %q, skipping", cfg.Module.Name, tag)
		return BuildReport(cfg.Module, enum), nil
	}

	switch cfg.Mode {
	case ModeIgnore:
		InstrumentExecIgnore(cfg.Module, enum)
	case ModeNormal:
		InstrumentExecFunc(cfg.Module, enum)
		InstrumentCovCfg(cfg.Module, enum)
		InstrumentMemStack(cfg.Module, enum, cfg.Trace)
		InstrumentMemAccess(cfg.Module, enum)
	}

	return BuildReport(cfg.Module, enum), nil
}

// establishHookMarks places a hook mark in every enumerated block before any
// mode runs, regardless of which mode was requested. Ignore mode only ever
// emits hooks at function entry/exit, but the mark singleton invariant
// holds for every enumerated block, not just the ones a given mode happens
// to touch — so the mark has to exist independently of whether anything
// ever anchors a hook to it.
func establishHookMarks(m *ir.Module, enum Enumeration) {
	for _, fr := range enum.Funcs {
		f := &m.Functions[fr.Index]
		for _, br := range fr.Blocks {
			BlockHookPoint(&f.Blocks[br.Index])
		}
	}
}

// checkPreconditions rejects every module-level condition spec.md §4.1/§7
// treats as fatal-before-any-mutation: unsupported pointer width,
// non-little-endian layout, the presence of an invoke or resume terminator,
// a non-leaf intrinsic, and any user code already using the mark sentinel.
func checkPreconditions(m *ir.Module) error {
	if m.PointerBits != 64 {
		return fmt.Errorf("%w: unsupported pointer width %d", ErrPrecondition, m.PointerBits)
	}
	if !m.LittleEndian {
		return fmt.Errorf("%w: module is not little-endian", ErrPrecondition)
	}
	for fi := range m.Functions {
		f := &m.Functions[fi]
		if f.HasProhibitedTerminator() {
			return fmt.Errorf("%w: function %s has an invoke or resume terminator", ErrPrecondition, f.Name)
		}
		if f.Intrinsic && (!f.Leaf || f.Name == ir.MarkSentinelName) {
			return fmt.Errorf("%w: intrinsic %s is not a leaf intrinsic", ErrPrecondition, f.Name)
		}
		for bi := range f.Blocks {
			for _, inst := range f.Blocks[bi].Insts {
				if !inst.Original {
					continue
				}
				if inst.Op == ir.OpHookMark || (inst.Op == ir.OpCall && inst.Callee == ir.MarkSentinelName) {
					return fmt.Errorf("%w: function %s already uses the mark sentinel", ErrPrecondition, f.Name)
				}
			}
		}
	}
	return nil
}

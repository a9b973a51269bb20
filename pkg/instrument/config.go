// Copyright 2025 racehook project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package instrument

import (
	"io"

	"github.com/fuzzcore/racehook/pkg/ir"
)

// Mode selects which families of hooks Run inserts.
type Mode string

const (
	// ModeIgnore inserts only the pause/resume pair around every eligible
	// function,
	// the minimal instrumentation a translation unit the fuzzer should
	// never attribute coverage or races to still needs.
	ModeIgnore Mode = "ignore"

	// ModeNormal inserts the full hook set: function enter/exit,
	// coverage, stack-lifetime and memory-access hooks, in that fixed
	// order.
	ModeNormal Mode = "normal"
)

// Config is everything one instrumentation run needs.
type Config struct {
	// Module is rewritten in place by Run.
	Module *ir.Module

	Mode Mode

	// DBPath is the path to the compile-info database. Required: a
	// missing or unreadable database is a fatal error (ErrCompileDB),
	// never treated as an implicit empty database.
	DBPath string

	// Trace, if non-nil, receives diagnostic output: the non-contiguous
	// alloca warnings of the stack-lifetime mode. Run does no
	// location-based probing, so Trace has no effect on probe collisions.
	Trace io.Writer
}

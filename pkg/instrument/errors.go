// Copyright 2025 racehook project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package instrument

import (
	"errors"

	"github.com/fuzzcore/racehook/pkg/catalogue"
)

// Sentinel errors for the fatal conditions spec.md §7 names, so callers can
// errors.Is/errors.As instead of string-matching, the convention this
// module's ambient packages (pkg/vcs, pkg/report in the teacher corpus)
// already follow for their own fatal paths.
var (
	// ErrPrecondition wraps a violated module-level precondition: pointer
	// width, endianness, invoke/resume presence, a non-leaf (or mark
	// sentinel) intrinsic, or a hook-mark collision with user code.
	ErrPrecondition = errors.New("instrument: precondition violated")

	// ErrInvalidMode is returned when Config.Mode is neither "ignore" nor
	// "normal".
	ErrInvalidMode = errors.New("instrument: invalid mode")

	// ErrCompileDB wraps a compile-info database load failure.
	ErrCompileDB = errors.New("instrument: compile database")

	// ErrProbeCollision is catalogue.ErrProbeCollision re-exported at this
	// package's boundary, so a caller driving the core never needs to
	// import pkg/catalogue just to recognize the error it can surface.
	ErrProbeCollision = catalogue.ErrProbeCollision
)

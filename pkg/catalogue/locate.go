// Copyright 2025 racehook project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package catalogue

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fuzzcore/racehook/pkg/ir"
)

// ErrProbeCollision is returned when two distinct instructions resolve to the
// same source location during location-based probing and a trace sink is
// set (the debug-build stand-in). Without a trace sink the collision is
// tolerated silently.
var ErrProbeCollision = errors.New("catalogue: probe collision")

// LOCEntry is a location-based catalogue entry: a semantic name, the
// expected opcode at the site, and the source location it must match. This
// probing strategy exists for catalogues that are not wired into the
// shipped memset/memcpy modes, exactly as in the pass this was ported from,
// where it is present, correct and unused by the shipped instrumenter.
type LOCEntry struct {
	Semantic string
	Op       ir.Opcode
	File     string
	Line     int
	Col      int
}

// normalizeFile strips a single leading "./" the way the original's
// probeLOCs does before comparing file names, so a catalogue built from one
// compilation's relative paths still matches a module rooted the same way
// but invoked from a different directory.
func normalizeFile(f string) string {
	return strings.TrimPrefix(f, "./")
}

func locEquals(loc ir.DebugLoc, entry LOCEntry) bool {
	return normalizeFile(loc.File) == normalizeFile(entry.File) &&
		loc.Line == entry.Line && loc.Col == entry.Col
}

// locIncludes reports whether loc or any of its inlined-at ancestors equals
// entry's location, matching the original's ancestor walk for instructions
// that survived inlining.
func locIncludes(loc *ir.DebugLoc, entry LOCEntry) bool {
	for l := loc; l != nil; l = l.InlinedAt {
		if locEquals(*l, entry) {
			return true
		}
	}
	return false
}

// ProbeLocations matches every instruction against table by (opcode, source
// location, inlined-at ancestry). trace, if non-nil, stands in for the
// original's debug-build flag: a duplicate location match is fatal
// (ErrProbeCollision) when trace is non-nil, and best-effort (last match
// wins, replacing the earlier hit for that location) when trace is nil.
func ProbeLocations(insts []ir.Instruction, table []LOCEntry, trace io.Writer) ([]ProbeHit, error) {
	var hits []ProbeHit
	claimedBy := make(map[string]int) // location string -> index into hits
	for _, inst := range insts {
		for _, entry := range table {
			if inst.Op != entry.Op {
				continue
			}
			loc := inst.Loc
			if !locIncludes(&loc, entry) {
				continue
			}
			key := fmt.Sprintf("%s:%d:%d", normalizeFile(entry.File), entry.Line, entry.Col)
			hit := ProbeHit{InstName: inst.Name, Semantic: entry.Semantic}
			if idx, dup := claimedBy[key]; dup && hits[idx].InstName != inst.Name {
				if trace != nil {
					return hits, fmt.Errorf("%w: %s and %s both match %s", ErrProbeCollision, hits[idx].InstName, inst.Name, key)
				}
				hits[idx] = hit
				continue
			}
			claimedBy[key] = len(hits)
			hits = append(hits, hit)
		}
	}
	return hits, nil
}

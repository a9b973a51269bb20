// Copyright 2025 racehook project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package compiledb loads the compile-info database the instrumentation
// core reads once at construction: a read-only document mapping
// translation-unit name suffixes to whole-module directive tags, and
// function names to an opt-out flag.
package compiledb

import (
	"fmt"

	"github.com/fuzzcore/racehook/pkg/config"
)

// DB is the parsed compile-info database. The zero value is a valid, empty
// database (no module is special, no function is ignored).
type DB struct {
	SpecialTags  map[string]string `json:"special"`
	IgnoredFuncs map[string]bool   `json:"ignored"`
}

// Load reads and parses the compile-info database at path using
// pkg/config's comment-stripping, unknown-field-rejecting JSON loader. An
// empty path is itself an error: the module driver treats a missing
// database path as a database-unreadable failure (spec.md §7), not an
// implicit empty database.
func Load(path string) (*DB, error) {
	db := &DB{}
	if err := config.LoadFile(path, db); err != nil {
		return nil, fmt.Errorf("compiledb: %w", err)
	}
	return db, nil
}

// Special looks up the directive tag registered for a module whose name
// ends in suffix. Multiple suffixes in the database can match the same
// module name; the longest match wins, mirroring how a build system keys
// special-cased translation units by their most specific path suffix.
func (db *DB) Special(moduleName string) (tag string, ok bool) {
	if db == nil {
		return "", false
	}
	best := -1
	for suffix, t := range db.SpecialTags {
		if len(suffix) > best && hasSuffix(moduleName, suffix) {
			best = len(suffix)
			tag, ok = t, true
		}
	}
	return tag, ok
}

// Ignored reports whether fn is opted out of instrumentation.
func (db *DB) Ignored(fn string) bool {
	if db == nil {
		return false
	}
	return db.IgnoredFuncs[fn]
}

func hasSuffix(s, suffix string) bool {
	return len(s) >= len(suffix) && s[len(s)-len(suffix):] == suffix
}

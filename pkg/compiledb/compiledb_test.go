// Copyright 2025 racehook project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package compiledb_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fuzzcore/racehook/pkg/compiledb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeDB(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "compiledb.json")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestLoadMissingPath(t *testing.T) {
	_, err := compiledb.Load("")
	assert.Error(t, err)
}

func TestLoadMalformed(t *testing.T) {
	path := writeDB(t, `{"unknown_field": 1}`)
	_, err := compiledb.Load(path)
	assert.Error(t, err)
}

func TestSpecialLongestSuffixWins(t *testing.T) {
	path := writeDB(t, `{
		"special": {"kernel.ko": "tag-generic", "net/kernel.ko": "tag-net"},
		"ignored": {}
	}`)
	db, err := compiledb.Load(path)
	require.NoError(t, err)

	tag, ok := db.Special("net/kernel.ko")
	require.True(t, ok)
	assert.Equal(t, "tag-net", tag)
}

func TestSpecialUnrecognizedModuleIsNotFound(t *testing.T) {
	db := &compiledb.DB{}
	_, ok := db.Special("anything.ko")
	assert.False(t, ok)
}

func TestIgnoredFunction(t *testing.T) {
	path := writeDB(t, `{"ignored": {"h": true}}`)
	db, err := compiledb.Load(path)
	require.NoError(t, err)
	assert.True(t, db.Ignored("h"))
	assert.False(t, db.Ignored("other"))
}

func TestNilDBIsInert(t *testing.T) {
	var db *compiledb.DB
	assert.False(t, db.Ignored("h"))
	_, ok := db.Special("x.ko")
	assert.False(t, ok)
}

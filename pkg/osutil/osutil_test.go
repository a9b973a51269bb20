// Copyright 2025 racehook project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package osutil

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileCreatesParentDirs(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "nested", "sidecar.json")

	require.False(t, IsExist(target))
	require.NoError(t, WriteFile(target, []byte(`{"ok":true}`)))
	assert.True(t, IsExist(target))
}

func TestAbsPassesThroughAbsolutePaths(t *testing.T) {
	assert.Equal(t, "/tmp/x", Abs("/tmp/x"))
	assert.Equal(t, "", Abs(""))
}

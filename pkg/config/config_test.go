// Copyright 2025 racehook project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package config_test

import (
	"path/filepath"
	"testing"

	"github.com/fuzzcore/racehook/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDataStripsCommentLines(t *testing.T) {
	data := []byte(`
# this is a compile-info database
{
	# ignored functions
	"ignored": {"h": true}
}
`)
	var doc struct {
		Ignored map[string]bool `json:"ignored"`
	}
	require.NoError(t, config.LoadData(data, &doc))
	assert.True(t, doc.Ignored["h"])
}

func TestLoadDataRejectsUnknownFields(t *testing.T) {
	var doc struct {
		Ignored map[string]bool `json:"ignored"`
	}
	err := config.LoadData([]byte(`{"unknown": 1}`), &doc)
	assert.Error(t, err)
}

func TestLoadFileMissingName(t *testing.T) {
	var doc struct{}
	assert.Error(t, config.LoadFile("", &doc))
}

func TestSaveFileThenLoadFileRoundTrips(t *testing.T) {
	type doc struct {
		Special map[string]string `json:"special"`
	}
	dir := t.TempDir()
	file := filepath.Join(dir, "db.json")

	want := &doc{Special: map[string]string{"_test.ko": "ignore"}}
	require.NoError(t, config.SaveFile(file, want))

	got := &doc{}
	require.NoError(t, config.LoadFile(file, got))
	assert.Equal(t, want, got)
}

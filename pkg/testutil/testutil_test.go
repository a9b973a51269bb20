// Copyright 2025 racehook project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package testutil

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRandSourceDeterministicUnderCI(t *testing.T) {
	t.Setenv("CI", "1")
	t.Setenv("RACER_SEED", "")
	src := RandSource(t)
	assert.Equal(t, rand.NewSource(0).Int63(), src.Int63())
}

func TestRandSourceHonorsFixedSeed(t *testing.T) {
	t.Setenv("CI", "")
	t.Setenv("RACER_SEED", "42")
	src := RandSource(t)
	assert.Equal(t, rand.NewSource(42).Int63(), src.Int63())
}

func TestRandValueStruct(t *testing.T) {
	type point struct {
		X, Y int
	}
	v := RandValue(t, point{})
	_, ok := v.(point)
	assert.True(t, ok)
}

func TestWriterLogsToTB(t *testing.T) {
	w := &Writer{TB: t}
	n, err := w.Write([]byte("hello"))
	assert.NoError(t, err)
	assert.Equal(t, 5, n)
}

func TestIterCountPositive(t *testing.T) {
	assert.Greater(t, IterCount(), 0)
}

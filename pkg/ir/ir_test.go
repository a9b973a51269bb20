// Copyright 2025 racehook project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package ir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlockInsertAtMiddle(t *testing.T) {
	b := &Block{Insts: []Instruction{Load("%a", "%p", 4), Return("ret")}}
	b.InsertAt(1, HookMark())
	require.Len(t, b.Insts, 3)
	assert.Equal(t, OpLoad, b.Insts[0].Op)
	assert.Equal(t, OpHookMark, b.Insts[1].Op)
	assert.Equal(t, OpReturn, b.Insts[2].Op)
}

func TestBlockInsertAtEnd(t *testing.T) {
	b := &Block{Insts: []Instruction{Return("ret")}}
	b.InsertAt(len(b.Insts), Call("%c", "f", true))
	require.Len(t, b.Insts, 2)
	assert.Equal(t, OpReturn, b.Insts[0].Op)
	assert.Equal(t, OpCall, b.Insts[1].Op)
}

func TestHookMarkIndexAbsent(t *testing.T) {
	b := &Block{Insts: []Instruction{Return("ret")}}
	assert.Equal(t, -1, b.HookMarkIndex())
}

func TestHookMarkIndexPresent(t *testing.T) {
	b := &Block{Insts: []Instruction{HookMark(), Return("ret")}}
	assert.Equal(t, 0, b.HookMarkIndex())
}

func TestIsReturnOnlyDegenerate(t *testing.T) {
	b := &Block{Insts: []Instruction{HookMark(), Return("ret")}}
	assert.True(t, b.IsReturnOnly())
}

func TestIsReturnOnlyFalseWithOtherOriginal(t *testing.T) {
	b := &Block{Insts: []Instruction{HookMark(), Load("%a", "%p", 4), Return("ret")}}
	assert.False(t, b.IsReturnOnly())
}

func TestExitBlocksOnlyReturnTerminated(t *testing.T) {
	f := &Function{Blocks: []Block{
		{Insts: []Instruction{Branch("br", TermBranch)}},
		{Insts: []Instruction{Return("ret")}},
	}}
	exits := f.ExitBlocks()
	require.Len(t, exits, 1)
	assert.Equal(t, OpReturn, exits[0].Terminator().Op)
}

func TestHasProhibitedTerminator(t *testing.T) {
	clean := &Function{Blocks: []Block{{Insts: []Instruction{Return("ret")}}}}
	assert.False(t, clean.HasProhibitedTerminator())

	withInvoke := &Function{Blocks: []Block{{Insts: []Instruction{Branch("inv", TermInvoke)}}}}
	assert.True(t, withInvoke.HasProhibitedTerminator())

	withResume := &Function{Blocks: []Block{{Insts: []Instruction{Branch("res", TermResume)}}}}
	assert.True(t, withResume.HasProhibitedTerminator())
}

func TestDebugLocStringEmptyWhenNoFile(t *testing.T) {
	assert.Equal(t, "", DebugLoc{}.String())
	assert.Equal(t, "a.c:3:5", DebugLoc{File: "a.c", Line: 3, Col: 5}.String())
}

func TestNewModuleDefaultsKernelLayout(t *testing.T) {
	m := NewModule("vmlinux")
	assert.Equal(t, 64, m.PointerBits)
	assert.True(t, m.LittleEndian)
}

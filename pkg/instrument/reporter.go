// Copyright 2025 racehook project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package instrument

import (
	"fmt"

	"github.com/fuzzcore/racehook/pkg/config"
	"github.com/fuzzcore/racehook/pkg/ir"
)

// Report is the sidecar document one instrumentation run emits: the
// module's seed and static facts, plus every enumerated function/block/
// original-instruction and its stable hash. Blocks added during
// instrumentation and non-original instructions are never listed, matching
// the original's record() method.
type Report struct {
	Meta struct {
		Seed uint64 `json:"seed"`
	} `json:"meta"`
	ExternalDecls []string                `json:"external_decls"`
	Globals       []string                `json:"globals"`
	StructTypes   []string                `json:"struct_types"`
	Funcs         map[string]*FuncReport  `json:"funcs"`
}

// FuncReport is one function's entry in the sidecar.
type FuncReport struct {
	Meta struct {
		Hash uint64 `json:"hash"`
	} `json:"meta"`
	Blocks []BlockReport `json:"blocks"`
}

// BlockReport is one block's entry: its own hash, the hashes of its
// predecessor/successor blocks (looked up by index into the same
// function's enumeration), and every original instruction it still holds.
type BlockReport struct {
	Hash  uint64        `json:"hash"`
	Preds []uint64      `json:"preds"`
	Succs []uint64      `json:"succs"`
	Insts []InstReport  `json:"insts"`
}

// InstReport is one original instruction's entry.
type InstReport struct {
	Hash uint64 `json:"hash"`
	Text string `json:"text"`
	Loc  string `json:"loc"`
}

// BuildReport assembles the sidecar document from a fully instrumented
// module and the enumeration computed before instrumentation began. It
// must run against the same enumeration the modes used, since a block's
// hash is a function of its enumeration ordinal, not anything recoverable
// from the rewritten IR alone.
func BuildReport(m *ir.Module, enum Enumeration) *Report {
	r := &Report{
		ExternalDecls: m.ExternalDecls,
		Globals:       m.Globals,
		StructTypes:   m.StructTypes,
		Funcs:         make(map[string]*FuncReport, len(enum.Funcs)),
	}
	r.Meta.Seed = enum.Seed

	for _, fr := range enum.Funcs {
		f := &m.Functions[fr.Index]
		blockHash := make(map[int]uint64, len(fr.Blocks))
		for _, br := range fr.Blocks {
			blockHash[br.Index] = br.Hash
		}

		out := &FuncReport{Blocks: make([]BlockReport, 0, len(fr.Blocks))}
		out.Meta.Hash = fr.Hash

		for _, br := range fr.Blocks {
			b := &f.Blocks[br.Index]
			bout := BlockReport{Hash: br.Hash}
			for _, p := range b.Preds {
				if h, ok := blockHash[p]; ok {
					bout.Preds = append(bout.Preds, h)
				}
			}
			for _, s := range b.Succs {
				if h, ok := blockHash[s]; ok {
					bout.Succs = append(bout.Succs, h)
				}
			}
			for _, inst := range b.Insts {
				if !inst.Original || !inst.Hashed {
					continue
				}
				bout.Insts = append(bout.Insts, InstReport{
					Hash: inst.Hash,
					Text: inst.Name,
					Loc:  inst.Loc.String(),
				})
			}
			out.Blocks = append(out.Blocks, bout)
		}
		r.Funcs[f.Name] = out
	}
	return r
}

// WriteReport marshals r as indented JSON and writes it to path, the same
// save path the compile-info database and every other small JSON document
// this core reads or writes goes through.
func WriteReport(path string, r *Report) error {
	if err := config.SaveFile(path, r); err != nil {
		return fmt.Errorf("instrument: write report: %w", err)
	}
	return nil
}

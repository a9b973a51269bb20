// Copyright 2025 racehook project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// racehook-instrument drives the static instrumentation core from the
// command line. It mirrors the host driver's own flag surface exactly:
// racer-mode selects the instrumentation mode, racer-input is the
// compile-info database and racer-output is where the sidecar report is
// written — in the original these are the only flags the pass takes,
// since the IR module itself flows in-process from the host compiler. This
// binary has no host compiler to receive it from, so the module's input
// and output paths are given as the two positional arguments instead of
// reusing either flag name for a different purpose.
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/fuzzcore/racehook/pkg/config"
	"github.com/fuzzcore/racehook/pkg/instrument"
	"github.com/fuzzcore/racehook/pkg/ir"
	"github.com/fuzzcore/racehook/pkg/log"
	"github.com/fuzzcore/racehook/pkg/tool"
)

func main() {
	var (
		flagMode    = flag.String("racer-mode", "", "instrumentation mode: ignore or normal")
		flagInput   = flag.String("racer-input", "", "path to the compile-info database")
		flagOutput  = flag.String("racer-output", "", "path to write the sidecar report")
		flagCPUProf = flag.String("cpuprofile", "", "write CPU profile to this file")
		flagMemProf = flag.String("memprofile", "", "write memory profile to this file")
	)
	if err := tool.ParseFlags(flag.CommandLine, os.Args[1:]); err != nil {
		tool.Fail(err)
	}

	if *flagMode == "" || *flagInput == "" || *flagOutput == "" {
		tool.Failf("racer-mode, racer-input and racer-output are all required")
	}
	if len(flag.Args()) != 2 {
		tool.Failf("usage: racehook-instrument -racer-mode=... -racer-input=... -racer-output=... <module-in> <module-out>")
	}
	moduleInPath, moduleOutPath := flag.Arg(0), flag.Arg(1)

	stopProfiling := tool.InstallProfiling(*flagCPUProf, *flagMemProf)
	defer stopProfiling()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	module, err := load(ctx, moduleInPath, *flagInput)
	if err != nil {
		tool.Fail(err)
	}

	report, err := instrument.Run(instrument.Config{
		Module: module,
		Mode:   instrument.Mode(*flagMode),
		DBPath: *flagInput,
		Trace:  log.VerboseWriter(1),
	})
	if err != nil {
		tool.Fail(err)
	}
	if ctx.Err() != nil {
		tool.Failf("interrupted")
	}

	if err := writeModule(moduleOutPath, module); err != nil {
		tool.Fail(err)
	}
	if err := instrument.WriteReport(*flagOutput, report); err != nil {
		tool.Fail(err)
	}

	log.Logf(0, "instrumented %d functions", len(report.Funcs))
}

// load reads the input IR module and validates the compile-info database
// path concurrently: neither depends on the other, and both are the only
// blocking I/O this driver does before handing off to instrument.Run.
func load(ctx context.Context, moduleInPath, dbPath string) (*ir.Module, error) {
	var module ir.Module
	g, _ := errgroup.WithContext(ctx)

	g.Go(func() error {
		return config.LoadFile(moduleInPath, &module)
	})
	g.Go(func() error {
		_, err := os.Stat(dbPath)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &module, nil
}

func writeModule(path string, m *ir.Module) error {
	return config.SaveFile(path, m)
}

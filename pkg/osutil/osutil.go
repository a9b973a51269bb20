// Copyright 2025 racehook project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package osutil contains the small set of filesystem helpers the
// instrumentation core needs to load a compile-info database and write a
// sidecar report: permission constants, atomic-enough file writes and
// existence checks. The process-management, shared-memory and VM-image
// helpers the teacher package carries alongside these live outside the
// core's scope (see DESIGN.md) and are not reproduced here.
package osutil

import (
	"fmt"
	"os"
	"path/filepath"
)

const (
	DefaultDirPerm  = 0755
	DefaultFilePerm = 0644
)

// IsExist returns true if name exists.
func IsExist(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}

func MkdirAll(dir string) error {
	return os.MkdirAll(dir, DefaultDirPerm)
}

// WriteFile writes data to filename, creating parent directories as needed.
func WriteFile(filename string, data []byte) error {
	if dir := filepath.Dir(filename); dir != "." {
		if err := MkdirAll(dir); err != nil {
			return err
		}
	}
	return os.WriteFile(filename, data, DefaultFilePerm)
}

var wd string

func init() {
	var err error
	wd, err = os.Getwd()
	if err != nil {
		panic(fmt.Sprintf("failed to get wd: %v", err))
	}
}

// Abs makes path absolute relative to the process's startup working directory.
func Abs(path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(wd, path)
}

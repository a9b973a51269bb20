// Copyright 2025 racehook project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

package instrument

import "github.com/fuzzcore/racehook/pkg/hash"

// ModuleSeed derives the module-scoped seed every func_hash is combined
// with, so hashes are stable per translation unit but differ across them.
func ModuleSeed(moduleName string) uint64 {
	return hash.String64(moduleName)
}

// FuncHash derives a function's hash from the module seed and its
// fully-qualified name: func_hash = H(seed, fq_name).
func FuncHash(seed uint64, fqName string) uint64 {
	return hash.Combine64(seed, hash.String64(fqName))
}

// BlockHash derives a block's hash from its owning function's hash and its
// module-wide enumeration ordinal: block_hash = H(func_hash, block_ordinal).
func BlockHash(funcHash uint64, blockOrdinal int) uint64 {
	return hash.Combine64(funcHash, uint64(blockOrdinal))
}

// InstHash derives an instruction's hash from its owning block's hash and
// its module-wide enumeration ordinal: inst_hash = H(block_hash, inst_ordinal).
func InstHash(blockHash uint64, instOrdinal int) uint64 {
	return hash.Combine64(blockHash, uint64(instOrdinal))
}

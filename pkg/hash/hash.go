// Copyright 2025 racehook project authors. All rights reserved.
// Use of this source code is governed by Apache 2 LICENSE that can be found in the LICENSE file.

// Package hash implements the 64-bit entity-identity combiner the
// instrumentation core uses to assign stable, seeded hashes to functions,
// basic blocks and instructions (see pkg/instrument). The combiner itself is
// a SHA-1 digest truncated to its first 8 bytes: any 64-bit mixing function
// with good avalanche satisfies the core's contract, and reusing the
// teacher's existing digest-based Sig type keeps the hashing story for
// program identities (functions/blocks/instructions) and the hashing story
// for everything else in this corpus (corpus entries, cache keys) built on
// the same primitive.
package hash

import (
	"bytes"
	"crypto/sha1"
	"encoding/binary"
	"fmt"
)

type Sig [sha1.Size]byte

func Hash(pieces ...[]byte) Sig {
	h := sha1.New()
	for _, data := range pieces {
		h.Write(data)
	}
	var sig Sig
	copy(sig[:], h.Sum(nil))
	return sig
}

// Truncate64 returns first 64 bits of the hash as int64.
func (sig *Sig) Truncate64() int64 {
	var v int64
	if err := binary.Read(bytes.NewReader((*sig)[:]), binary.LittleEndian, &v); err != nil {
		panic(fmt.Sprintf("failed convert hash to id: %v", err))
	}
	return v
}

// Combine64 mixes a sequence of already-hashed or raw 64-bit values into a
// single 64-bit identity, the same way the C++ original chains
// hash_combine(seed, hash_value(name)) calls to derive func/block/inst
// hashes from their parent's hash plus a local ordinal. Each part is fed to
// the digest in big-endian order so that Combine64(a, b) and
// Combine64(a, c) diverge from their first differing part rather than only
// in trailing bytes.
func Combine64(parts ...uint64) uint64 {
	buf := make([]byte, 8*len(parts))
	for i, p := range parts {
		binary.BigEndian.PutUint64(buf[i*8:], p)
	}
	sig := Hash(buf)
	return uint64(sig.Truncate64())
}

// String64 hashes a byte string down to the 64-bit seed used to bootstrap
// Combine64 chains (e.g. the seed derived from a translation unit's name).
func String64(s string) uint64 {
	sig := Hash([]byte(s))
	return uint64(sig.Truncate64())
}

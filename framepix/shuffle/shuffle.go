// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package shuffle

import (
	"encoding/binary"

	"github.com/vechain/guus/guus"
)

// SeedFromHash takes the first 8 bytes of a block hash as a little endian seed.
func SeedFromHash(h guus.Bytes32) uint64 {
	return binary.LittleEndian.Uint64(h[:8])
}

// Shuffle permutes items in place with a seeded Fisher–Yates shuffle.
func Shuffle[T any](items []T, seed uint64) {
	if len(items) <= 1 {
		return
	}
	mt := NewMT19937(seed)
	for i := 1; i < len(items); i++ {
		j := mt.Uniform(uint64(i + 1))
		if uint64(i) != j {
			items[i], items[j] = items[j], items[i]
		}
	}
}

// Permutation returns a shuffled permutation of [0, n).
func Permutation(n int, seed uint64) []int {
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
	}
	Shuffle(perm, seed)
	return perm
}

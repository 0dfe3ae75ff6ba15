// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package quorum derives, per block, the set of nodes that vote and the
// set of nodes they test, and verifies deregistration votes against them.
package quorum

import (
	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/guus/framepix/shuffle"
	"github.com/vechain/guus/guus"
)

// State is the quorum formed at a height. It is immutable once built.
type State struct {
	QuorumNodes []guus.PublicKey
	NodesToTest []guus.PublicKey
	Rest        []rlp.RawValue `rlp:"tail"`
}

// Generate builds the quorum from the fully funded keys in key order. The
// keys are shuffled with the seed; the first QuorumSize become the quorum
// and a slice of the remainder is put under test.
func Generate(seed guus.Bytes32, sortedKeys []guus.PublicKey, p guus.QuorumParams) *State {
	perm := shuffle.Permutation(len(sortedKeys), shuffle.SeedFromHash(seed))

	quorumSize := min(uint64(len(sortedKeys)), p.QuorumSize)
	state := &State{
		QuorumNodes: make([]guus.PublicKey, 0, quorumSize),
	}
	for _, idx := range perm[:quorumSize] {
		state.QuorumNodes = append(state.QuorumNodes, sortedKeys[idx])
	}

	remaining := uint64(len(sortedKeys)) - quorumSize
	numToTest := min(p.MinNodesToTest, remaining)
	if p.NthOfNetworkToTest > 0 {
		numToTest = max(remaining/p.NthOfNetworkToTest, numToTest)
	}
	state.NodesToTest = make([]guus.PublicKey, 0, numToTest)
	for _, idx := range perm[quorumSize : quorumSize+numToTest] {
		state.NodesToTest = append(state.NodesToTest, sortedKeys[idx])
	}
	return state
}

// IndexOf returns the position of key among the quorum nodes, or -1.
func (s *State) IndexOf(key guus.PublicKey) int {
	for i, k := range s.QuorumNodes {
		if k == key {
			return i
		}
	}
	return -1
}

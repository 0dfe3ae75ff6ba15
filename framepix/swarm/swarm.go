// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package swarm groups funded nodes into storage swarms.
package swarm

import (
	"slices"

	"github.com/vechain/guus/framepix/shuffle"
	"github.com/vechain/guus/guus"
)

type swarms map[uint64][]guus.PublicKey

// ids returns swarm ids in ascending order.
func (s swarms) ids() []uint64 {
	ids := make([]uint64, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// smallest returns the id of the swarm with the fewest members below limit,
// ties broken by the lower id.
func (s swarms) smallest(limit uint64) (uint64, bool) {
	var (
		best  uint64
		found bool
	)
	for _, id := range s.ids() {
		n := uint64(len(s[id]))
		if n >= limit {
			continue
		}
		if !found || n < uint64(len(s[best])) {
			best, found = id, true
		}
	}
	return best, found
}

// Assign places every key into a swarm. current maps each funded node to its
// swarm, guus.UnassignedSwarmID for nodes not placed yet. The result is
// deterministic for the same input and seed, and keeps placed nodes where
// they are unless their swarm dissolves.
func Assign(current map[guus.PublicKey]uint64, seed uint64, p guus.SwarmParams) map[guus.PublicKey]uint64 {
	s := make(swarms)
	var unassigned []guus.PublicKey
	for key, id := range current {
		if id == guus.UnassignedSwarmID {
			unassigned = append(unassigned, key)
		} else {
			s[id] = append(s[id], key)
		}
	}
	for _, members := range s {
		slices.SortFunc(members, guus.PublicKey.Compare)
	}
	slices.SortFunc(unassigned, guus.PublicKey.Compare)
	shuffle.Shuffle(unassigned, seed)

	mt := shuffle.NewMT19937(seed)
	newID := func() uint64 {
		for {
			id := mt.Uint64()
			if _, taken := s[id]; !taken && id != guus.UnassignedSwarmID {
				return id
			}
		}
	}

	// top up swarms below the ideal size
	var leftover []guus.PublicKey
	for _, key := range unassigned {
		if id, ok := s.smallest(p.IdealSwarmSize); ok {
			s[id] = append(s[id], key)
		} else {
			leftover = append(leftover, key)
		}
	}

	// open new swarms while enough nodes remain
	for p.NewSwarmSize > 0 && uint64(len(leftover)) >= p.NewSwarmSize {
		s[newID()] = slices.Clone(leftover[:p.NewSwarmSize])
		leftover = leftover[p.NewSwarmSize:]
	}
	if len(leftover) > 0 {
		if len(s) == 0 {
			s[newID()] = leftover
		} else {
			for _, key := range leftover {
				id, _ := s.smallest(^uint64(0))
				s[id] = append(s[id], key)
			}
		}
	}

	// dissolve starved swarms into the others, smallest first
	for len(s) > 1 {
		var (
			starved uint64
			found   bool
		)
		for _, id := range s.ids() {
			n := uint64(len(s[id]))
			if n < p.MinSwarmSize && (!found || n < uint64(len(s[starved]))) {
				starved, found = id, true
			}
		}
		if !found {
			break
		}
		members := s[starved]
		delete(s, starved)
		slices.SortFunc(members, guus.PublicKey.Compare)
		shuffle.Shuffle(members, seed)
		for _, key := range members {
			id, _ := s.smallest(^uint64(0))
			s[id] = append(s[id], key)
		}
	}

	out := make(map[guus.PublicKey]uint64, len(current))
	for id, members := range s {
		for _, key := range members {
			out[key] = id
		}
	}
	return out
}

// Changes returns the keys whose swarm differs between before and after, in key order.
func Changes(before, after map[guus.PublicKey]uint64) []guus.PublicKey {
	var changed []guus.PublicKey
	for key, id := range after {
		if prev, ok := before[key]; !ok || prev != id {
			changed = append(changed, key)
		}
	}
	slices.SortFunc(changed, guus.PublicKey.Compare)
	return changed
}

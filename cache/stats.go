// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package cache

import "sync/atomic"

// Stats counts cache lookups. It is safe for concurrent use.
type Stats struct {
	hits, misses atomic.Int64
	lastRate     atomic.Int32 // per mille
}

// Hit records a hit and returns the total.
func (s *Stats) Hit() int64 { return s.hits.Add(1) }

// Miss records a miss and returns the total.
func (s *Stats) Miss() int64 { return s.misses.Add(1) }

// Stats returns the hit and miss totals, and whether the hit rate moved by
// at least one per mille since the previous call.
func (s *Stats) Stats() (changed bool, hits, misses int64) {
	hits, misses = s.hits.Load(), s.misses.Load()
	var rate int32
	if total := hits + misses; total > 0 {
		rate = int32(hits * 1000 / total)
	}
	return s.lastRate.Swap(rate) != rate, hits, misses
}

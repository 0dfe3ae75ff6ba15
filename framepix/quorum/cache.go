// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package quorum

import (
	"slices"

	"github.com/vechain/guus/kv"
)

// Cache holds the quorum states of the live window keyed by height. States
// pruned from the window wait in pending until Flush hands them to the
// archive.
type Cache struct {
	states  map[uint64]*State
	pending map[uint64]*State
	archive *Archive
}

// NewCache creates an empty cache. archive may be nil, in which case pruned
// states are dropped.
func NewCache(archive *Archive) *Cache {
	return &Cache{
		states:  make(map[uint64]*State),
		pending: make(map[uint64]*State),
		archive: archive,
	}
}

// Put stores the state formed at height.
func (c *Cache) Put(height uint64, s *State) {
	c.states[height] = s
}

// Get returns the state formed at height, falling back to the archive.
func (c *Cache) Get(height uint64) (*State, bool) {
	if s, ok := c.states[height]; ok {
		return s, true
	}
	if s, ok := c.pending[height]; ok {
		return s, true
	}
	if c.archive == nil {
		return nil, false
	}
	s, err := c.archive.Get(height)
	if err != nil {
		if !c.archive.IsNotFound(err) {
			logger.Warn("failed to load archived quorum", "height", height, "err", err)
		}
		return nil, false
	}
	return s, true
}

// GetLive returns the state only if it is in the live window.
func (c *Cache) GetLive(height uint64) (*State, bool) {
	s, ok := c.states[height]
	return s, ok
}

// Prune moves states below height out of the live window.
func (c *Cache) Prune(below uint64) {
	for h, s := range c.states {
		if h < below {
			delete(c.states, h)
			if c.archive != nil {
				c.pending[h] = s
			}
		}
	}
}

// RemoveAbove drops every state formed above height.
func (c *Cache) RemoveAbove(height uint64) {
	for h := range c.states {
		if h > height {
			delete(c.states, h)
		}
	}
	for h := range c.pending {
		if h > height {
			delete(c.pending, h)
		}
	}
}

// Heights returns the live heights in ascending order.
func (c *Cache) Heights() []uint64 {
	hs := make([]uint64, 0, len(c.states))
	for h := range c.states {
		hs = append(hs, h)
	}
	slices.Sort(hs)
	return hs
}

// Len returns the number of live states.
func (c *Cache) Len() int {
	return len(c.states)
}

// Clear drops all live and pending states.
func (c *Cache) Clear() {
	clear(c.states)
	clear(c.pending)
}

// Flush archives pending states through w.
func (c *Cache) Flush(w kv.Putter) error {
	if c.archive == nil {
		return nil
	}
	hs := make([]uint64, 0, len(c.pending))
	for h := range c.pending {
		hs = append(hs, h)
	}
	slices.Sort(hs)
	for _, h := range hs {
		if err := c.archive.Put(w, h, c.pending[h]); err != nil {
			return err
		}
		delete(c.pending, h)
	}
	c.archive.logStats()
	return nil
}

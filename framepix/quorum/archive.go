// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package quorum

import (
	"encoding/binary"

	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/guus/cache"
	"github.com/vechain/guus/kv"
	"github.com/vechain/guus/log"
)

var logger = log.WithContext("pkg", "quorum")

const archiveVersion uint8 = 0

type archivedState struct {
	Version uint8
	Height  uint64
	State   *State
}

// Archive keeps quorum states that left the live window, so that votes and
// queries for old heights can still be answered.
type Archive struct {
	store kv.Store
	cache *cache.LRU[uint64, *State]
}

// NewArchive creates an archive on store, caching up to cacheSize states.
func NewArchive(store kv.Store, cacheSize int) (*Archive, error) {
	c, err := cache.NewLRU[uint64, *State](cacheSize)
	if err != nil {
		return nil, errors.Wrap(err, "quorum archive cache")
	}
	return &Archive{store: store, cache: c}, nil
}

func archiveKey(height uint64) []byte {
	var k [8]byte
	binary.BigEndian.PutUint64(k[:], height)
	return k[:]
}

// Put writes the state of height through w.
func (a *Archive) Put(w kv.Putter, height uint64, state *State) error {
	data, err := rlp.EncodeToBytes(&archivedState{archiveVersion, height, state})
	if err != nil {
		return err
	}
	if err := w.Put(archiveKey(height), data); err != nil {
		return err
	}
	a.cache.Add(height, state)
	return nil
}

// Get loads the state of height. The error can be checked with IsNotFound.
func (a *Archive) Get(height uint64) (*State, error) {
	return a.cache.GetOrLoad(height, func(height uint64) (*State, error) {
		data, err := a.store.Get(archiveKey(height))
		if err != nil {
			return nil, err
		}
		var rec archivedState
		if err := rlp.DecodeBytes(data, &rec); err != nil {
			return nil, errors.Wrapf(err, "decode archived quorum %d", height)
		}
		if rec.Version > archiveVersion || rec.Height != height || rec.State == nil {
			return nil, errors.Errorf("corrupted archived quorum %d", height)
		}
		return rec.State, nil
	})
}

// IsNotFound reports whether err means the height was never archived.
func (a *Archive) IsNotFound(err error) bool {
	return a.store.IsNotFound(err)
}

// Delete removes the state of height through w.
func (a *Archive) Delete(w kv.Putter, height uint64) error {
	a.cache.Remove(height)
	return w.Delete(archiveKey(height))
}

// logStats reports the cache hit rate when it moved.
func (a *Archive) logStats() {
	if changed, hit, miss := a.cache.Stats(); changed {
		logger.Debug("quorum archive cache stats", "hit", hit, "miss", miss)
	}
}

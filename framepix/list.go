// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package framepix maintains the frame_pix node registry as the chain grows
// and shrinks. The List is driven by the chain hooks and answers queries
// about registered nodes, quorums and rewards.
package framepix

import (
	"sync"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/guus/framepix/blacklist"
	"github.com/vechain/guus/framepix/quorum"
	"github.com/vechain/guus/framepix/registry"
	"github.com/vechain/guus/framepix/reward"
	"github.com/vechain/guus/framepix/rollback"
	"github.com/vechain/guus/guus"
	"github.com/vechain/guus/kv"
	"github.com/vechain/guus/log"
)

var logger = log.WithContext("pkg", "framepix")

const archiveBucket = kv.Bucket("fq")

// NodeEntry is a node and a copy of its record.
type NodeEntry struct {
	Key  guus.PublicKey
	Info *registry.Info
}

// List is the frame_pix state machine. Hooks take the write lock for the
// whole call; queries share the read lock.
type List struct {
	opts  Options
	store kv.Store
	chain ChainReader

	lock    sync.RWMutex
	height  uint64
	log     *rollback.Log
	reg     *registry.Registry
	ledger  *blacklist.Ledger
	quorums *quorum.Cache
	rest    []rlp.RawValue // fields of the persisted container unknown to this version
}

// New creates a list. store may be nil for a memory only list; chain may be
// nil when Init does not need to catch up.
func New(store kv.Store, chain ChainReader, opts Options) (*List, error) {
	if err := opts.Params.Validate(); err != nil {
		return nil, err
	}
	var archive *quorum.Archive
	if store != nil {
		var err error
		if archive, err = quorum.NewArchive(archiveBucket.NewStore(store), max(opts.ArchiveCacheSize, 1)); err != nil {
			return nil, err
		}
	}

	rlog := &rollback.Log{}
	return &List{
		opts:    opts,
		store:   store,
		chain:   chain,
		log:     rlog,
		reg:     registry.New(rlog),
		ledger:  blacklist.New(rlog),
		quorums: quorum.NewCache(archive),
	}, nil
}

// reset drops all state, back to before the first block.
func (l *List) reset() {
	l.height = 0
	l.log.Clear()
	l.reg.Clear()
	l.ledger.Load(nil)
	l.quorums.Clear()
	l.rest = nil
}

// Height returns the height of the last processed block.
func (l *List) Height() uint64 {
	l.lock.RLock()
	defer l.lock.RUnlock()
	return l.height
}

// IsRegistered reports whether key has a registration, funded or not.
func (l *List) IsRegistered(key guus.PublicKey) bool {
	l.lock.RLock()
	defer l.lock.RUnlock()
	return l.reg.IsRegistered(key)
}

// GetQuorumState returns the quorum formed at height. The state is shared
// and must not be modified.
func (l *List) GetQuorumState(height uint64) (*quorum.State, bool) {
	l.lock.RLock()
	defer l.lock.RUnlock()
	return l.quorums.Get(height)
}

// GetRegistrySnapshot returns copies of the records of keys, skipping unknown
// ones. With no keys it returns every node in key order.
func (l *List) GetRegistrySnapshot(keys ...guus.PublicKey) []NodeEntry {
	l.lock.RLock()
	defer l.lock.RUnlock()

	var out []NodeEntry
	if len(keys) == 0 {
		l.reg.Ascend(func(key guus.PublicKey, info *registry.Info) bool {
			out = append(out, NodeEntry{key, info.Clone()})
			return true
		})
		return out
	}
	for _, key := range keys {
		if info, ok := l.reg.Get(key); ok {
			out = append(out, NodeEntry{key, info})
		}
	}
	return out
}

// PublicKeys returns the registered keys in order.
func (l *List) PublicKeys(fullyFundedOnly bool) []guus.PublicKey {
	l.lock.RLock()
	defer l.lock.RUnlock()
	return l.reg.Keys(fullyFundedOnly)
}

// GetBlacklistedKeyImages returns the blacklist in insertion order.
func (l *List) GetBlacklistedKeyImages() []blacklist.Entry {
	l.lock.RLock()
	defer l.lock.RUnlock()
	return l.ledger.Entries()
}

// GetRewardWinner returns the node paid by the next block and its split.
func (l *List) GetRewardWinner() (guus.PublicKey, []reward.Payout, error) {
	l.lock.RLock()
	defer l.lock.RUnlock()
	return reward.WinnerPayouts(l.reg)
}

// IsKeyImageLocked reports whether ki backs a stake or is still blacklisted.
// For a staked key image it also returns the unlock height requested by the
// node (0 while none was requested) and the contribution.
func (l *List) IsKeyImageLocked(ki guus.KeyImage) (bool, uint64, *registry.Contribution) {
	l.lock.RLock()
	defer l.lock.RUnlock()

	if key, c, ok := l.reg.FindKeyImage(ki); ok {
		info, _ := l.reg.Get(key)
		return true, info.RequestedUnlockHeight, c
	}
	if e, ok := l.ledger.Find(ki); ok && l.ledger.IsLocked(ki, l.height) {
		return true, e.UnlockHeight, nil
	}
	return false, 0, nil
}

func (l *List) updateGauges() {
	metricRegisteredNodes().Set(int64(l.reg.Len()))
	metricFundedNodes().Set(int64(len(l.reg.Keys(true))))
	metricBlacklistedKeys().Set(int64(l.ledger.Len()))
	metricRollbackEvents().Set(int64(l.log.Len()))
}

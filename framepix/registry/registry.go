// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"github.com/google/btree"

	"github.com/vechain/guus/guus"
)

const treeDegree = 32

// Journal receives the pre-image of every registry mutation.
type Journal interface {
	RecordNew(height uint64, key guus.PublicKey)
	RecordChange(height uint64, key guus.PublicKey, prev *Info)
}

type entry struct {
	key  guus.PublicKey
	info *Info
}

func (e *entry) Less(than *entry) bool {
	return e.key.Compare(than.key) < 0
}

var _ btree.LessFunc[*entry] = (*entry).Less

// Registry maps node keys to their records in key order. Journaled mutations
// report their pre-image before they are applied.
type Registry struct {
	tree    *btree.BTreeG[*entry]
	journal Journal
}

// New creates an empty registry.
func New(journal Journal) *Registry {
	return &Registry{
		tree:    btree.NewG(treeDegree, (*entry).Less),
		journal: journal,
	}
}

func (r *Registry) lookup(key guus.PublicKey) (*entry, bool) {
	return r.tree.Get(&entry{key: key})
}

// Len returns the number of registered nodes.
func (r *Registry) Len() int {
	return r.tree.Len()
}

// IsRegistered reports whether the key has a record.
func (r *Registry) IsRegistered(key guus.PublicKey) bool {
	return r.tree.Has(&entry{key: key})
}

// Get returns a copy of the record.
func (r *Registry) Get(key guus.PublicKey) (*Info, bool) {
	e, ok := r.lookup(key)
	if !ok {
		return nil, false
	}
	return e.info.Clone(), true
}

// Upsert stores a copy of info under key, journaling the previous record.
func (r *Registry) Upsert(height uint64, key guus.PublicKey, info *Info) {
	if e, ok := r.lookup(key); ok {
		r.journal.RecordChange(height, key, e.info.Clone())
		e.info = info.Clone()
		return
	}
	r.journal.RecordNew(height, key)
	r.tree.ReplaceOrInsert(&entry{key, info.Clone()})
}

// Remove deletes the record, journaling it. It returns false if key was absent.
func (r *Registry) Remove(height uint64, key guus.PublicKey) bool {
	e, ok := r.lookup(key)
	if !ok {
		return false
	}
	r.journal.RecordChange(height, key, e.info.Clone())
	r.tree.Delete(e)
	return true
}

// Restore puts back a journaled pre-image without journaling.
func (r *Registry) Restore(key guus.PublicKey, info *Info) {
	r.tree.ReplaceOrInsert(&entry{key, info.Clone()})
}

// Erase removes a record without journaling.
func (r *Registry) Erase(key guus.PublicKey) {
	r.tree.Delete(&entry{key: key})
}

// Clear drops every record without journaling.
func (r *Registry) Clear() {
	r.tree.Clear(false)
}

// Ascend calls fn for each record in key order until fn returns false.
// The record must not be modified.
func (r *Registry) Ascend(fn func(key guus.PublicKey, info *Info) bool) {
	r.tree.Ascend(func(e *entry) bool {
		return fn(e.key, e.info)
	})
}

// Keys returns all keys in order, optionally only the fully funded ones.
func (r *Registry) Keys(fullyFundedOnly bool) []guus.PublicKey {
	keys := make([]guus.PublicKey, 0, r.tree.Len())
	r.Ascend(func(key guus.PublicKey, info *Info) bool {
		if !fullyFundedOnly || info.IsFullyFunded() {
			keys = append(keys, key)
		}
		return true
	})
	return keys
}

// FindKeyImage returns the node and contribution that lock the key image.
func (r *Registry) FindKeyImage(ki guus.KeyImage) (guus.PublicKey, *Contribution, bool) {
	var (
		owner guus.PublicKey
		found *Contribution
	)
	r.Ascend(func(key guus.PublicKey, info *Info) bool {
		if c, ok := info.FindLockedContribution(ki); ok {
			owner, found = key, c
			return false
		}
		return true
	})
	return owner, found, found != nil
}

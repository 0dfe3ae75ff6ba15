// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/guus/guus"
	"github.com/vechain/guus/test/datagen"
)

type journalEntry struct {
	height uint64
	key    guus.PublicKey
	prev   *Info // nil for a new record
}

type recorder struct {
	entries []journalEntry
}

func (r *recorder) RecordNew(height uint64, key guus.PublicKey) {
	r.entries = append(r.entries, journalEntry{height, key, nil})
}

func (r *recorder) RecordChange(height uint64, key guus.PublicKey, prev *Info) {
	r.entries = append(r.entries, journalEntry{height, key, prev})
}

func newInfo(height uint64, contributed uint64) *Info {
	return &Info{
		Version:            CurrentVersion,
		RegistrationHeight: height,
		StakingRequirement: 100,
		TotalContributed:   contributed,
		Contributors: []Contributor{
			{Version: CurrentVersion, Amount: contributed, Reserved: 100, Address: guus.Address{Spend: guus.PublicKey{9}}},
		},
	}
}

func TestRegistryJournaling(t *testing.T) {
	rec := &recorder{}
	reg := New(rec)

	k1 := guus.PublicKey{1}
	reg.Upsert(10, k1, newInfo(10, 0))
	require.Len(t, rec.entries, 1)
	assert.Nil(t, rec.entries[0].prev)
	assert.True(t, reg.IsRegistered(k1))

	updated := newInfo(10, 100)
	reg.Upsert(11, k1, updated)
	require.Len(t, rec.entries, 2)
	assert.Equal(t, uint64(0), rec.entries[1].prev.TotalContributed)
	assert.Equal(t, uint64(11), rec.entries[1].height)

	assert.True(t, reg.Remove(12, k1))
	assert.False(t, reg.Remove(12, k1))
	require.Len(t, rec.entries, 3)
	assert.Equal(t, uint64(100), rec.entries[2].prev.TotalContributed)
	assert.False(t, reg.IsRegistered(k1))

	// journal-free inverse operations
	reg.Restore(k1, rec.entries[2].prev)
	got, ok := reg.Get(k1)
	require.True(t, ok)
	assert.Equal(t, updated, got)
	reg.Erase(k1)
	assert.Equal(t, 0, reg.Len())
	assert.Len(t, rec.entries, 3)
}

func TestRegistryIsolation(t *testing.T) {
	reg := New(&recorder{})
	key := guus.PublicKey{1}
	info := newInfo(1, 0)
	reg.Upsert(1, key, info)

	info.Contributors[0].Amount = 77
	got, _ := reg.Get(key)
	assert.Equal(t, uint64(0), got.Contributors[0].Amount)

	got.Contributors[0].Amount = 88
	again, _ := reg.Get(key)
	assert.Equal(t, uint64(0), again.Contributors[0].Amount)
}

func TestRegistryOrder(t *testing.T) {
	reg := New(&recorder{})
	var keys []guus.PublicKey
	for range 20 {
		keys = append(keys, datagen.RandPublicKey())
	}
	for i, k := range keys {
		reg.Upsert(1, k, newInfo(1, uint64(i%2)*100))
	}

	all := reg.Keys(false)
	require.Len(t, all, 20)
	for i := 1; i < len(all); i++ {
		assert.Equal(t, -1, all[i-1].Compare(all[i]))
	}

	funded := reg.Keys(true)
	assert.Len(t, funded, 10)
	for _, k := range funded {
		info, _ := reg.Get(k)
		assert.True(t, info.IsFullyFunded())
	}
}

func TestFindKeyImage(t *testing.T) {
	reg := New(&recorder{})
	ki := datagen.RandKeyImage()
	info := newInfo(1, 100)
	info.Contributors[0].LockedContributions = []Contribution{{Version: CurrentVersion, KeyImage: ki, Amount: 100}}
	reg.Upsert(1, guus.PublicKey{5}, info)
	reg.Upsert(1, guus.PublicKey{6}, newInfo(1, 100))

	owner, c, ok := reg.FindKeyImage(ki)
	require.True(t, ok)
	assert.Equal(t, guus.PublicKey{5}, owner)
	assert.Equal(t, uint64(100), c.Amount)

	_, _, ok = reg.FindKeyImage(datagen.RandKeyImage())
	assert.False(t, ok)
	assert.Equal(t, 1, info.NumLockedContributions())
}

// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package blacklist

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/guus/guus"
)

type toggle struct {
	height uint64
	entry  Entry
	adding bool
	index  int
}

type recorder struct {
	toggles []toggle
}

func (r *recorder) RecordBlacklist(height uint64, e Entry, adding bool, index int) {
	r.toggles = append(r.toggles, toggle{height, e, adding, index})
}

func ki(b byte) guus.KeyImage { return guus.KeyImage{b} }

func TestPruneBoundary(t *testing.T) {
	rec := &recorder{}
	l := New(rec)
	l.Add(10, Entry{KeyImage: ki(1), UnlockHeight: 100})

	assert.True(t, l.IsLocked(ki(1), 99))
	assert.False(t, l.IsLocked(ki(1), 100))
	assert.False(t, l.IsLocked(ki(2), 0))

	assert.Equal(t, 0, l.Prune(99), "present at unlock height - 1")
	_, ok := l.Find(ki(1))
	assert.True(t, ok)

	assert.Equal(t, 1, l.Prune(100), "gone at unlock height")
	_, ok = l.Find(ki(1))
	assert.False(t, ok)

	require.Len(t, rec.toggles, 2)
	assert.True(t, rec.toggles[0].adding)
	assert.False(t, rec.toggles[1].adding)
	assert.Equal(t, 0, rec.toggles[1].index)
}

func TestAwaitingUnlockNeverPruned(t *testing.T) {
	l := New(&recorder{})
	l.Add(1, Entry{KeyImage: ki(1), UnlockHeight: guus.KeyImageAwaitingUnlockHeight})
	assert.Equal(t, 0, l.Prune(1_000_000))
	assert.True(t, l.IsLocked(ki(1), 1_000_000))
	assert.Equal(t, 1, l.Len())
}

func TestUndoRestoresOrder(t *testing.T) {
	rec := &recorder{}
	l := New(rec)
	l.Add(1, Entry{KeyImage: ki(1), UnlockHeight: 5})
	l.Add(1, Entry{KeyImage: ki(2), UnlockHeight: 50})
	l.Add(1, Entry{KeyImage: ki(3), UnlockHeight: 5})
	l.Add(1, Entry{KeyImage: ki(4), UnlockHeight: 60})
	before := l.Entries()
	rec.toggles = nil

	assert.Equal(t, 2, l.Prune(10))
	assert.Equal(t, []guus.KeyImage{ki(2), ki(4)}, keyImages(l.Entries()))

	// undo newest first
	for i := len(rec.toggles) - 1; i >= 0; i-- {
		tg := rec.toggles[i]
		if tg.adding {
			require.NoError(t, l.RemoveAt(tg.index, tg.entry.KeyImage))
		} else {
			require.NoError(t, l.Insert(tg.index, tg.entry))
		}
	}
	assert.Equal(t, before, l.Entries())
}

func TestInsertRemoveBounds(t *testing.T) {
	l := New(&recorder{})
	assert.Error(t, l.Insert(1, Entry{}))
	assert.Error(t, l.RemoveAt(0, ki(1)))
	require.NoError(t, l.Insert(0, Entry{KeyImage: ki(1)}))
	assert.Error(t, l.RemoveAt(0, ki(2)), "key image mismatch")
	assert.NoError(t, l.RemoveAt(0, ki(1)))
}

func keyImages(entries []Entry) []guus.KeyImage {
	var out []guus.KeyImage
	for _, e := range entries {
		out = append(out, e.KeyImage)
	}
	return out
}

// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package blacklist tracks key images of deregistered stakes that stay
// unspendable until their unlock height.
package blacklist

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/guus/guus"
)

// EntryVersion is the current encoding version of Entry.
const EntryVersion uint8 = 0

// Entry blacklists a key image until UnlockHeight.
type Entry struct {
	Version      uint8
	KeyImage     guus.KeyImage
	UnlockHeight uint64
	Rest         []rlp.RawValue `rlp:"tail"`
}

// Clone returns a deep copy.
func (e Entry) Clone() Entry {
	if len(e.Rest) == 0 {
		e.Rest = nil
	} else {
		rest := make([]rlp.RawValue, len(e.Rest))
		for i, r := range e.Rest {
			rest[i] = append(rlp.RawValue(nil), r...)
		}
		e.Rest = rest
	}
	return e
}

// Journal receives every journaled ledger mutation with the position it
// happened at.
type Journal interface {
	RecordBlacklist(height uint64, entry Entry, adding bool, index int)
}

// Ledger is the ordered list of blacklisted key images.
type Ledger struct {
	entries []Entry
	journal Journal
}

// New creates an empty ledger.
func New(journal Journal) *Ledger {
	return &Ledger{journal: journal}
}

// Len returns the number of entries.
func (l *Ledger) Len() int {
	return len(l.entries)
}

// Entries returns a copy of all entries in order.
func (l *Ledger) Entries() []Entry {
	out := make([]Entry, len(l.entries))
	for i, e := range l.entries {
		out[i] = e.Clone()
	}
	return out
}

// Add appends an entry.
func (l *Ledger) Add(height uint64, e Entry) {
	l.entries = append(l.entries, e.Clone())
	l.journal.RecordBlacklist(height, e.Clone(), true, len(l.entries)-1)
}

// Prune removes every entry whose unlock height has been reached and
// returns how many were removed.
func (l *Ledger) Prune(height uint64) int {
	var removed int
	for i := 0; i < len(l.entries); {
		e := l.entries[i]
		if e.UnlockHeight == guus.KeyImageAwaitingUnlockHeight || height < e.UnlockHeight {
			i++
			continue
		}
		l.journal.RecordBlacklist(height, e.Clone(), false, i)
		l.entries = append(l.entries[:i], l.entries[i+1:]...)
		removed++
	}
	return removed
}

// Insert puts an entry back at index without journaling.
func (l *Ledger) Insert(index int, e Entry) error {
	if index < 0 || index > len(l.entries) {
		return errors.Errorf("blacklist index %d out of range [0, %d]", index, len(l.entries))
	}
	l.entries = append(l.entries, Entry{})
	copy(l.entries[index+1:], l.entries[index:])
	l.entries[index] = e.Clone()
	return nil
}

// RemoveAt drops the entry at index without journaling. The entry must
// carry the expected key image.
func (l *Ledger) RemoveAt(index int, ki guus.KeyImage) error {
	if index < 0 || index >= len(l.entries) {
		return errors.Errorf("blacklist index %d out of range [0, %d)", index, len(l.entries))
	}
	if l.entries[index].KeyImage != ki {
		return errors.Errorf("blacklist entry %d holds key image %v, want %v", index, l.entries[index].KeyImage, ki)
	}
	l.entries = append(l.entries[:index], l.entries[index+1:]...)
	return nil
}

// Find returns the entry of the key image.
func (l *Ledger) Find(ki guus.KeyImage) (Entry, bool) {
	for _, e := range l.entries {
		if e.KeyImage == ki {
			return e.Clone(), true
		}
	}
	return Entry{}, false
}

// IsLocked reports whether ki is barred from spending at height. Entries
// awaiting their unlock height are always locked.
func (l *Ledger) IsLocked(ki guus.KeyImage, height uint64) bool {
	for _, e := range l.entries {
		if e.KeyImage == ki {
			return e.UnlockHeight == guus.KeyImageAwaitingUnlockHeight || e.UnlockHeight > height
		}
	}
	return false
}

// Load replaces all entries without journaling.
func (l *Ledger) Load(entries []Entry) {
	l.entries = make([]Entry, 0, len(entries))
	for _, e := range entries {
		l.entries = append(l.entries, e.Clone())
	}
}

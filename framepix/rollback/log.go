// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package rollback keeps the undo history that lets frame_pix state follow
// chain reorganizations.
package rollback

import (
	"github.com/pkg/errors"

	"github.com/vechain/guus/framepix/blacklist"
	"github.com/vechain/guus/framepix/registry"
	"github.com/vechain/guus/guus"
)

// ErrBarrier is returned when a rewind would cross the retention window.
var ErrBarrier = errors.New("rollback barrier reached")

var (
	_ registry.Journal  = (*Log)(nil)
	_ blacklist.Journal = (*Log)(nil)
)

// Log is the append-only undo history, oldest first.
type Log struct {
	events []Event
}

// Len returns the number of events.
func (l *Log) Len() int {
	return len(l.events)
}

// Events returns the events, oldest first. The slice must not be modified.
func (l *Log) Events() []Event {
	return l.events
}

// Load replaces the history.
func (l *Log) Load(events []Event) {
	l.events = append([]Event(nil), events...)
}

// Clear drops the history.
func (l *Log) Clear() {
	l.events = nil
}

func (l *Log) RecordNew(height uint64, key guus.PublicKey) {
	l.events = append(l.events, &New{BlockHeight: height, Key: key})
}

func (l *Log) RecordChange(height uint64, key guus.PublicKey, prev *registry.Info) {
	l.events = append(l.events, &Change{BlockHeight: height, Key: key, Info: prev})
}

func (l *Log) RecordBlacklist(height uint64, entry blacklist.Entry, adding bool, index int) {
	l.events = append(l.events, &BlacklistToggle{
		BlockHeight: height,
		Entry:       entry,
		WasAdding:   adding,
		Index:       uint64(index),
	})
}

// Cull drops history older than height and leaves a single barrier in
// front. The barrier never moves down: history culled earlier is gone even
// if the chain has since been detached below that point.
func (l *Log) Cull(height uint64) {
	i := 0
	for i < len(l.events) {
		ev := l.events[i]
		if b, ok := ev.(*Barrier); ok {
			height = max(height, b.BlockHeight)
			i++
			continue
		}
		if ev.Height() >= height {
			break
		}
		i++
	}
	kept := make([]Event, 0, len(l.events)-i+1)
	kept = append(kept, &Barrier{BlockHeight: height})
	l.events = append(kept, l.events[i:]...)
}

// Rewind undoes every event above target, newest first. It stops with
// ErrBarrier when the history needed to go further has been culled; events
// undone before that point stay undone.
func (l *Log) Rewind(target uint64, reg *registry.Registry, ledger *blacklist.Ledger) (int, error) {
	var undone int
	for len(l.events) > 0 {
		last := l.events[len(l.events)-1]
		if last.Height() <= target {
			break
		}
		if err := Undo(last, reg, ledger); err != nil {
			return undone, err
		}
		l.events = l.events[:len(l.events)-1]
		undone++
	}
	return undone, nil
}

// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package rollback

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/guus/framepix/blacklist"
	"github.com/vechain/guus/framepix/registry"
	"github.com/vechain/guus/guus"
)

// event tags on the wire.
const (
	tagChange    byte = 0
	tagNew       byte = 1
	tagBarrier   byte = 2
	tagBlacklist byte = 3
)

// Event is one undoable mutation. The set of events is closed.
type Event interface {
	Height() uint64
	tag() byte
}

// Change restores Info under Key. It undoes updates and removals.
type Change struct {
	BlockHeight uint64
	Key         guus.PublicKey
	Info        *registry.Info
	Rest        []rlp.RawValue `rlp:"tail"`
}

// New erases Key. It undoes a fresh registration.
type New struct {
	BlockHeight uint64
	Key         guus.PublicKey
	Rest        []rlp.RawValue `rlp:"tail"`
}

// Barrier marks the oldest height history can be rewound to.
type Barrier struct {
	BlockHeight uint64
	Rest        []rlp.RawValue `rlp:"tail"`
}

// BlacklistToggle undoes an addition to, or a removal from, the blacklist.
type BlacklistToggle struct {
	BlockHeight uint64
	Entry       blacklist.Entry
	WasAdding   bool
	Index       uint64
	Rest        []rlp.RawValue `rlp:"tail"`
}

func (e *Change) Height() uint64          { return e.BlockHeight }
func (e *New) Height() uint64             { return e.BlockHeight }
func (e *Barrier) Height() uint64         { return e.BlockHeight }
func (e *BlacklistToggle) Height() uint64 { return e.BlockHeight }

func (e *Change) tag() byte          { return tagChange }
func (e *New) tag() byte             { return tagNew }
func (e *Barrier) tag() byte         { return tagBarrier }
func (e *BlacklistToggle) tag() byte { return tagBlacklist }

// Undo reverses a single event against the registry and the blacklist.
// A barrier cannot be undone.
func Undo(ev Event, reg *registry.Registry, ledger *blacklist.Ledger) error {
	switch e := ev.(type) {
	case *Change:
		reg.Restore(e.Key, e.Info)
	case *New:
		reg.Erase(e.Key)
	case *BlacklistToggle:
		if e.WasAdding {
			return ledger.RemoveAt(int(e.Index), e.Entry.KeyImage)
		}
		return ledger.Insert(int(e.Index), e.Entry)
	case *Barrier:
		return ErrBarrier
	default:
		return errors.Errorf("unknown rollback event %T", ev)
	}
	return nil
}

type envelope struct {
	Tag     byte
	Payload rlp.RawValue
}

// EncodeEvent serializes an event with its type tag.
func EncodeEvent(ev Event) ([]byte, error) {
	payload, err := rlp.EncodeToBytes(ev)
	if err != nil {
		return nil, err
	}
	return rlp.EncodeToBytes(&envelope{ev.tag(), payload})
}

// DecodeEvent parses an event encoded by EncodeEvent.
func DecodeEvent(b []byte) (Event, error) {
	var env envelope
	if err := rlp.DecodeBytes(b, &env); err != nil {
		return nil, errors.Wrap(err, "decode rollback event")
	}
	var ev Event
	switch env.Tag {
	case tagChange:
		ev = &Change{}
	case tagNew:
		ev = &New{}
	case tagBarrier:
		ev = &Barrier{}
	case tagBlacklist:
		ev = &BlacklistToggle{}
	default:
		return nil, errors.Errorf("unknown rollback event tag %d", env.Tag)
	}
	if err := rlp.DecodeBytes(env.Payload, ev); err != nil {
		return nil, errors.Wrapf(err, "decode rollback event tag %d", env.Tag)
	}
	return ev, nil
}

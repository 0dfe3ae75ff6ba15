// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package framepix

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/golang/snappy"
	"github.com/pkg/errors"

	"github.com/vechain/guus/framepix/blacklist"
	"github.com/vechain/guus/framepix/quorum"
	"github.com/vechain/guus/framepix/registry"
	"github.com/vechain/guus/framepix/rollback"
	"github.com/vechain/guus/guus"
)

const (
	containerVersion uint8 = 0
	entryVersion     uint8 = 0
)

var dataKey = []byte("framepix_data")

type quorumEntry struct {
	Version uint8
	Height  uint64
	State   *quorum.State
	Rest    []rlp.RawValue `rlp:"tail"`
}

type infoEntry struct {
	Version uint8
	Key     guus.PublicKey
	Info    *registry.Info
	Rest    []rlp.RawValue `rlp:"tail"`
}

// container is the persisted form of a List.
type container struct {
	Version   uint8
	Height    uint64
	Quorums   []quorumEntry
	Infos     []infoEntry
	Events    [][]byte
	Blacklist []blacklist.Entry
	Rest      []rlp.RawValue `rlp:"tail"`
}

// Init loads the persisted state, or starts empty, then replays the blocks
// the chain holds beyond it.
func (l *List) Init() error {
	l.lock.Lock()
	defer l.lock.Unlock()

	if err := l.load(); err != nil {
		return err
	}
	logger.Info("frame_pix state loaded", "height", l.height, "nodes", l.reg.Len(), "forks", l.opts.Forks)
	if l.chain == nil {
		return nil
	}

	chainHeight := l.chain.Height()
	if l.height > chainHeight {
		if err := l.rewind(chainHeight); err != nil {
			if !errors.Is(err, rollback.ErrBarrier) {
				return fatal(err)
			}
			logger.Warn("persisted state too far ahead of the chain, rebuilding", "state", l.height, "chain", chainHeight)
			l.reset()
		}
	}
	if l.height < chainHeight {
		logger.Info("catching up with the chain", "from", l.height+1, "to", chainHeight)
	}
	for l.height < chainHeight {
		blk, txs, err := l.chain.BlockByHeight(l.height + 1)
		if err != nil {
			return errors.Wrapf(err, "read block %d", l.height+1)
		}
		if err := l.blockAdded(blk, txs); err != nil {
			return fatal(errors.Wrap(err, "replay"))
		}
	}
	l.updateGauges()
	return nil
}

// Store writes the whole state, and the quorum states pruned since the last
// call, to the kv store.
func (l *List) Store() error {
	l.lock.Lock()
	defer l.lock.Unlock()

	if l.store == nil {
		return nil
	}
	archived := archiveBucket.NewStore(l.store).NewBatch()
	if err := l.quorums.Flush(archived); err != nil {
		return err
	}
	if err := archived.Write(); err != nil {
		return errors.Wrap(err, "write quorum archive")
	}

	data, err := l.encode()
	if err != nil {
		return err
	}
	if err := l.store.Put(dataKey, snappy.Encode(nil, data)); err != nil {
		return errors.Wrap(err, "write frame_pix state")
	}
	logger.Debug("frame_pix state stored", "height", l.height, "bytes", len(data))
	return nil
}

func (l *List) encode() ([]byte, error) {
	c := container{
		Version:   containerVersion,
		Height:    l.height,
		Blacklist: l.ledger.Entries(),
		Rest:      l.rest,
	}
	for _, h := range l.quorums.Heights() {
		s, _ := l.quorums.GetLive(h)
		c.Quorums = append(c.Quorums, quorumEntry{Version: entryVersion, Height: h, State: s})
	}
	l.reg.Ascend(func(key guus.PublicKey, info *registry.Info) bool {
		c.Infos = append(c.Infos, infoEntry{Version: entryVersion, Key: key, Info: info})
		return true
	})
	for _, ev := range l.log.Events() {
		b, err := rollback.EncodeEvent(ev)
		if err != nil {
			return nil, err
		}
		c.Events = append(c.Events, b)
	}
	return rlp.EncodeToBytes(&c)
}

// load replaces the state with the persisted one. A missing state leaves an
// empty list; an unreadable one is fatal.
func (l *List) load() error {
	l.reset()
	if l.store == nil {
		return nil
	}
	raw, err := l.store.Get(dataKey)
	if err != nil {
		if l.store.IsNotFound(err) {
			return nil
		}
		return errors.Wrap(err, "read frame_pix state")
	}
	data, err := snappy.Decode(nil, raw)
	if err != nil {
		return fatal(errors.Wrap(err, "decompress frame_pix state"))
	}
	if err := l.decode(data); err != nil {
		l.reset()
		return fatal(err)
	}
	return nil
}

func (l *List) decode(data []byte) error {
	var c container
	if err := rlp.DecodeBytes(data, &c); err != nil {
		return errors.Wrap(err, "decode frame_pix state")
	}
	if c.Version > containerVersion {
		return errors.Errorf("frame_pix state version %d is newer than supported %d", c.Version, containerVersion)
	}

	// entries are rewritten from the live state on Store, so fields this
	// version cannot hold would be lost
	for _, q := range c.Quorums {
		if q.Version > entryVersion || len(q.Rest) > 0 {
			return errors.Errorf("quorum entry at %d has unknown fields (version %d)", q.Height, q.Version)
		}
		if q.State == nil {
			return errors.Errorf("empty quorum state at %d", q.Height)
		}
		l.quorums.Put(q.Height, q.State)
	}
	for _, e := range c.Infos {
		if e.Version > entryVersion || len(e.Rest) > 0 {
			return errors.Errorf("record entry for %v has unknown fields (version %d)", e.Key.AbbrevString(), e.Version)
		}
		if e.Info == nil {
			return errors.Errorf("empty record for %v", e.Key.AbbrevString())
		}
		l.reg.Restore(e.Key, e.Info)
	}
	events := make([]rollback.Event, 0, len(c.Events))
	for i, b := range c.Events {
		ev, err := rollback.DecodeEvent(b)
		if err != nil {
			return errors.Wrapf(err, "rollback event %d", i)
		}
		events = append(events, ev)
	}
	l.log.Load(events)
	l.ledger.Load(c.Blacklist)
	l.height = c.Height
	l.rest = c.Rest
	return nil
}

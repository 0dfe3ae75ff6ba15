// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package block

import (
	"fmt"
	"io"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/guus/guus"
	"github.com/vechain/guus/tx"
)

// Header is the part of a block frame_pix reads.
type Header struct {
	MajorVersion uint8
	Height       uint64
	Timestamp    uint64
	ParentID     guus.Bytes32
	Nonce        uint64
}

// Block is an immutable block type: a header, the miner tx and the ids of
// the other txs it includes.
type Block struct {
	header  Header
	minerTx *tx.Transaction
	txIDs   []guus.Bytes32

	cache struct {
		id atomic.Value
	}
}

// New creates a block from its parts.
func New(header Header, minerTx *tx.Transaction, txs []*tx.Transaction) *Block {
	ids := make([]guus.Bytes32, 0, len(txs))
	for _, t := range txs {
		ids = append(ids, t.ID())
	}
	return &Block{header: header, minerTx: minerTx, txIDs: ids}
}

// Header returns a copy of block header.
func (b *Block) Header() Header {
	return b.header
}

// Height returns the block height.
func (b *Block) Height() uint64 {
	return b.header.Height
}

// Timestamp returns the block time in seconds.
func (b *Block) Timestamp() uint64 {
	return b.header.Timestamp
}

// MajorVersion returns the hard fork version the block was produced under.
func (b *Block) MajorVersion() uint8 {
	return b.header.MajorVersion
}

// MinerTx returns the coinbase tx.
func (b *Block) MinerTx() *tx.Transaction {
	return b.minerTx
}

// TxIDs returns the ids of the included txs.
func (b *Block) TxIDs() []guus.Bytes32 {
	return append([]guus.Bytes32(nil), b.txIDs...)
}

// ID returns the block hash.
func (b *Block) ID() guus.Bytes32 {
	if cached := b.cache.id.Load(); cached != nil {
		return cached.(guus.Bytes32)
	}
	var minerID guus.Bytes32
	if b.minerTx != nil {
		minerID = b.minerTx.ID()
	}
	id := guus.Blake2bFn(func(w io.Writer) {
		rlp.Encode(w, []any{&b.header, minerID, b.txIDs})
	})
	b.cache.id.Store(id)
	return id
}

func (b *Block) String() string {
	return fmt.Sprintf("Block(%v #%v)", b.ID().AbbrevString(), b.header.Height)
}

// RewardParts splits the reward of a block.
type RewardParts struct {
	BaseReward         uint64
	OriginalBaseReward uint64
}

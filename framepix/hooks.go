// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package framepix

import (
	"github.com/vechain/guus/block"
	"github.com/vechain/guus/guus"
	"github.com/vechain/guus/tx"
)

// InitHook is called once the chain is opened.
type InitHook interface {
	Init() error
}

// BlockAddedHook is called for every block appended to the main chain, in order.
type BlockAddedHook interface {
	BlockAdded(blk *block.Block, txs []*tx.Transaction) error
}

// BlockchainDetachedHook is called when the chain is cut back to height.
type BlockchainDetachedHook interface {
	BlockchainDetached(height uint64) error
}

// ValidateMinerTxHook decides whether a miner tx pays the expected reward split.
type ValidateMinerTxHook interface {
	ValidateMinerTx(prevID guus.Bytes32, minerTx *tx.Transaction, height uint64, hf uint8, reward block.RewardParts) bool
}

// HookRegistrar is implemented by the chain to collect its hooks.
type HookRegistrar interface {
	RegisterInitHook(InitHook)
	RegisterBlockAddedHook(BlockAddedHook)
	RegisterBlockchainDetachedHook(BlockchainDetachedHook)
	RegisterValidateMinerTxHook(ValidateMinerTxHook)
}

// ChainReader gives read access to the main chain.
type ChainReader interface {
	// Height returns the height of the best block.
	Height() uint64
	// BlockByHeight returns the block and its txs, miner tx excluded.
	BlockByHeight(height uint64) (*block.Block, []*tx.Transaction, error)
}

var (
	_ InitHook               = (*List)(nil)
	_ BlockAddedHook         = (*List)(nil)
	_ BlockchainDetachedHook = (*List)(nil)
	_ ValidateMinerTxHook    = (*List)(nil)
)

// RegisterHooks registers every hook of the list.
func (l *List) RegisterHooks(r HookRegistrar) {
	r.RegisterInitHook(l)
	r.RegisterBlockAddedHook(l)
	r.RegisterBlockchainDetachedHook(l)
	r.RegisterValidateMinerTxHook(l)
}

// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package framepix

import (
	"math"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"

	"github.com/vechain/guus/block"
	"github.com/vechain/guus/framepix/registry"
	"github.com/vechain/guus/framepix/stake"
	"github.com/vechain/guus/guus"
	"github.com/vechain/guus/test/datagen"
	"github.com/vechain/guus/tx"
)

const baseTimestamp = uint64(1_700_000_000)

func timestampAt(height uint64) uint64 {
	return baseTimestamp + height*120
}

// stakingOptions activates swarms but not infinite staking, with the stake
// locked for 900 blocks.
func stakingOptions() Options {
	opts := DefaultOptions(guus.Fakechain)
	opts.Forks.InfiniteStaking = math.MaxUint64
	opts.Params.LockBlocks = 900
	return opts
}

// infiniteOptions activates every fork from genesis.
func infiniteOptions() Options {
	return DefaultOptions(guus.Fakechain)
}

type testChain struct {
	blocks []*block.Block
	txs    [][]*tx.Transaction
}

func newTestChain() *testChain {
	genesis := block.New(block.Header{Timestamp: baseTimestamp}, nil, nil)
	return &testChain{blocks: []*block.Block{genesis}, txs: [][]*tx.Transaction{nil}}
}

func (c *testChain) Height() uint64 {
	return uint64(len(c.blocks) - 1)
}

func (c *testChain) BlockByHeight(height uint64) (*block.Block, []*tx.Transaction, error) {
	if height >= uint64(len(c.blocks)) {
		return nil, nil, errors.Errorf("block %d not found", height)
	}
	return c.blocks[height], c.txs[height], nil
}

func (c *testChain) next(minerTx *tx.Transaction, txs []*tx.Transaction) *block.Block {
	parent := c.blocks[len(c.blocks)-1]
	height := parent.Height() + 1
	return block.New(block.Header{
		MajorVersion: guus.HFVersionFramePix,
		Height:       height,
		Timestamp:    timestampAt(height),
		ParentID:     parent.ID(),
	}, minerTx, txs)
}

func (c *testChain) push(blk *block.Block, txs []*tx.Transaction) {
	c.blocks = append(c.blocks, blk)
	c.txs = append(c.txs, txs)
}

func (c *testChain) truncate(height uint64) {
	c.blocks = c.blocks[:height+1]
	c.txs = c.txs[:height+1]
}

type harness struct {
	t     *testing.T
	opts  Options
	list  *List
	chain *testChain
}

func newHarness(t *testing.T, opts Options) *harness {
	chain := newTestChain()
	l, err := New(nil, chain, opts)
	require.NoError(t, err)
	require.NoError(t, l.Init())
	return &harness{t: t, opts: opts, list: l, chain: chain}
}

func (h *harness) next() uint64 {
	return h.list.Height() + 1
}

func (h *harness) add(txs ...*tx.Transaction) error {
	return h.addWithMiner(nil, txs...)
}

func (h *harness) addWithMiner(minerTx *tx.Transaction, txs ...*tx.Transaction) error {
	blk := h.chain.next(minerTx, txs)
	if err := h.list.BlockAdded(blk, txs); err != nil {
		return err
	}
	h.chain.push(blk, txs)
	return nil
}

func (h *harness) mustAdd(txs ...*tx.Transaction) {
	require.NoError(h.t, h.add(txs...))
}

func (h *harness) advanceTo(height uint64) {
	for h.list.Height() < height {
		h.mustAdd()
	}
}

func (h *harness) detach(height uint64) error {
	if err := h.list.BlockchainDetached(height); err != nil {
		return err
	}
	h.chain.truncate(height)
	return nil
}

func (h *harness) info(key guus.PublicKey) *registry.Info {
	snap := h.list.GetRegistrySnapshot(key)
	require.Len(h.t, snap, 1)
	return snap[0].Info
}

// staker owns an address and the one-time key of the output it stakes.
type staker struct {
	addr     guus.Address
	outSec   guus.SecretKey
	keyImage guus.KeyImage
}

func newStaker() *staker {
	sec, _ := datagen.RandKeyPair()
	return &staker{addr: datagen.RandAddress(), outSec: sec, keyImage: datagen.RandKeyImage()}
}

type node struct {
	sec      guus.SecretKey
	key      guus.PublicKey
	operator *staker
}

func newNode() *node {
	sec, key := datagen.RandKeyPair()
	return &node{sec: sec, key: key, operator: newStaker()}
}

func (n *node) registerTx(t *testing.T, height uint64, addrs []guus.Address, portions []uint64) *tx.Transaction {
	exp := timestampAt(height) + 3600
	r := &stake.Registration{
		Key:                 n.key,
		Addresses:           addrs,
		Portions:            portions,
		ExpirationTimestamp: exp,
		Signature:           stake.SignRegistration(n.sec, addrs, 0, portions, exp),
	}
	extra, err := stake.RegistrationExtra(r)
	require.NoError(t, err)
	return tx.NewBuilder(tx.TypeStandard).Extra(extra).Build()
}

func (n *node) soloRegisterTx(t *testing.T, height uint64) *tx.Transaction {
	return n.registerTx(t, height, []guus.Address{n.operator.addr}, []uint64{guus.StakingPortions})
}

// lockedTx contributes amount from addr with outputs locked until unlock.
func lockedTx(t *testing.T, key guus.PublicKey, addr guus.Address, amount, unlock uint64) *tx.Transaction {
	extra, err := stake.ContributionExtra(key, addr, nil)
	require.NoError(t, err)
	return tx.NewBuilder(tx.TypeStandard).
		Extra(extra).
		UnlockTime(unlock).
		Output(tx.Output{Recipient: addr, Amount: amount}).
		Build()
}

// stakeTx contributes amount from s backed by its key image.
func stakeTx(t *testing.T, key guus.PublicKey, s *staker, amount uint64) *tx.Transaction {
	proof := stake.ProveKeyImage(s.outSec, s.keyImage)
	extra, err := stake.ContributionExtra(key, s.addr, []tx.KeyImageProof{proof})
	require.NoError(t, err)
	return tx.NewBuilder(tx.TypeStandard).
		Extra(extra).
		Output(tx.Output{Key: s.outSec.PublicKey(), Recipient: s.addr, Amount: amount}).
		Build()
}

func unlockTx(t *testing.T, key guus.PublicKey, s *staker, nonce uint32) *tx.Transaction {
	extra, err := stake.UnlockExtra(stake.NewUnlock(key, s.outSec, s.keyImage, nonce))
	require.NoError(t, err)
	return tx.NewBuilder(tx.TypeKeyImageUnlock).Extra(extra).Build()
}

// fundTx pays the whole requirement of n from its operator.
func (h *harness) fundTx(n *node, height uint64) *tx.Transaction {
	req := guus.StakingRequirement(h.opts.Network, height)
	if h.opts.Forks.HardForkVersion(height) >= guus.HFVersionInfiniteStaking {
		return stakeTx(h.t, n.key, n.operator, req)
	}
	return lockedTx(h.t, n.key, n.operator.addr, req, height+h.opts.Params.LockBlocks)
}

// fundNodes registers count solo nodes in one block and funds them in the next.
func (h *harness) fundNodes(count int) []*node {
	nodes := make([]*node, count)
	regs := make([]*tx.Transaction, count)
	height := h.next()
	for i := range nodes {
		nodes[i] = newNode()
		regs[i] = nodes[i].soloRegisterTx(h.t, height)
	}
	h.mustAdd(regs...)

	funds := make([]*tx.Transaction, count)
	for i, n := range nodes {
		funds[i] = h.fundTx(n, height+1)
	}
	h.mustAdd(funds...)
	return nodes
}

var dumper = spew.ConfigState{Indent: " ", DisablePointerAddresses: true, DisableCapacities: true, SortKeys: true}

// dumpState renders the content of the list, ignoring identities.
func dumpState(l *List) string {
	return dumper.Sdump(l.Height(), l.GetRegistrySnapshot(), l.GetBlacklistedKeyImages())
}

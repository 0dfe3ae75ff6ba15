// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package framepix

import (
	"math"
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/guus/block"
	"github.com/vechain/guus/framepix/blacklist"
	"github.com/vechain/guus/framepix/quorum"
	"github.com/vechain/guus/framepix/registry"
	"github.com/vechain/guus/framepix/reward"
	"github.com/vechain/guus/framepix/rollback"
	"github.com/vechain/guus/framepix/shuffle"
	"github.com/vechain/guus/framepix/stake"
	"github.com/vechain/guus/framepix/swarm"
	"github.com/vechain/guus/guus"
	"github.com/vechain/guus/tx"
)

// BlockAdded applies blk to the state. A block breaking a frame_pix rule
// leaves the state untouched and yields a *ConsensusError.
func (l *List) BlockAdded(blk *block.Block, txs []*tx.Transaction) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	start := time.Now()
	if err := l.blockAdded(blk, txs); err != nil {
		if IsConsensusError(err) {
			metricBlockRejected().Add(1)
		}
		return err
	}
	metricBlocksProcessed().Add(1)
	metricProcessDuration().Observe(time.Since(start).Milliseconds())
	l.updateGauges()
	return nil
}

// blockAdded processes blk and undoes the partial block on a consensus error.
func (l *List) blockAdded(blk *block.Block, txs []*tx.Transaction) error {
	prev := l.height
	if blk.Height() != prev+1 {
		return errors.Errorf("framepix: block %d does not follow height %d", blk.Height(), prev)
	}
	err := l.processBlock(blk, txs)
	if err == nil || !IsConsensusError(err) {
		return err
	}
	logger.Warn("block rejected", "block", blk, "err", err)
	if rerr := l.rewind(prev); rerr != nil {
		return fatal(errors.Wrapf(rerr, "undo rejected block %d", blk.Height()))
	}
	return err
}

func (l *List) processBlock(blk *block.Block, txs []*tx.Transaction) error {
	height := blk.Height()
	hf := l.opts.Forks.HardForkVersion(height)
	l.height = height
	if hf < guus.HFVersionFramePix {
		return nil
	}

	p := &l.opts.Params
	membershipChanged := false

	if blk.MinerTx() != nil {
		l.recordWinner(height, blk.MinerTx())
	}

	for _, e := range l.expiredNodes(height) {
		logger.Info("node expired", "key", e.Key.AbbrevString(), "height", height)
		l.removeNode(height, e.Key, e.Info, "expired")
		membershipChanged = true
	}
	l.ledger.Prune(height)

	for i, t := range txs {
		funded, err := l.processTx(height, blk.Timestamp(), hf, i, t)
		if err != nil {
			return err
		}
		membershipChanged = membershipChanged || funded
	}

	if membershipChanged && hf >= guus.HFVersionSwarms {
		l.assignSwarms(height, blk.ID())
	}

	if height > p.RollbackRetention {
		l.log.Cull(height - p.RollbackRetention)
	}

	seed, err := l.quorumSeed(blk)
	if err != nil {
		return fatal(err)
	}
	l.quorums.Put(height, quorum.Generate(seed, l.reg.Keys(true), p.Quorum(hf)))
	if height > p.QuorumLifetime {
		l.quorums.Prune(height - p.QuorumLifetime)
	}
	return nil
}

// processTx applies the intents carried by t. It reports whether the set of
// funded nodes changed.
func (l *List) processTx(height, timestamp uint64, hf uint8, index int, t *tx.Transaction) (bool, error) {
	if err := l.processRegistration(height, timestamp, hf, index, t); err != nil {
		return false, err
	}
	funded, err := l.processContribution(height, index, t)
	if err != nil {
		return false, err
	}
	removed, err := l.processDeregistration(height, index, t)
	if err != nil {
		return false, err
	}
	l.processUnlock(height, t)
	return funded || removed, nil
}

func (l *List) recordWinner(height uint64, minerTx *tx.Transaction) {
	winner, err := reward.ParseWinner(minerTx)
	if err != nil || winner.IsZero() {
		return
	}
	info, ok := l.reg.Get(winner)
	if !ok {
		return
	}
	info.LastRewardBlockHeight = height
	info.LastRewardTransactionIndex = math.MaxUint32
	l.reg.Upsert(height, winner, info)
}

func (l *List) expiredNodes(height uint64) []NodeEntry {
	var expired []NodeEntry
	l.reg.Ascend(func(key guus.PublicKey, info *registry.Info) bool {
		if info.RequestedUnlockHeight != 0 && info.RequestedUnlockHeight <= height {
			expired = append(expired, NodeEntry{key, info.Clone()})
		}
		return true
	})
	return expired
}

// isOwn reports whether key is the node run by this process.
func (l *List) isOwn(key guus.PublicKey) bool {
	return !l.opts.OwnKey.IsZero() && key == l.opts.OwnKey
}

// removeNode deletes a node and blacklists the key images of its stake for
// one lock period.
func (l *List) removeNode(height uint64, key guus.PublicKey, info *registry.Info, reason string) {
	if l.isOwn(key) {
		logger.Warn("this node left the registry", "key", key.AbbrevString(), "height", height, "reason", reason)
	}
	for _, c := range info.Contributors {
		for _, lc := range c.LockedContributions {
			l.ledger.Add(height, blacklist.Entry{
				Version:      blacklist.EntryVersion,
				KeyImage:     lc.KeyImage,
				UnlockHeight: height + l.opts.Params.LockBlocks,
			})
		}
	}
	l.reg.Remove(height, key)
}

func (l *List) processRegistration(height, timestamp uint64, hf uint8, index int, t *tx.Transaction) error {
	r, err := stake.ParseRegistration(t, timestamp)
	if err != nil {
		if !errors.Is(err, stake.ErrUnrelated) {
			countIntent("registration", "malformed")
			logger.Debug("registration discarded", "tx", t.ID().AbbrevString(), "err", err)
		}
		return nil
	}
	if l.reg.IsRegistered(r.Key) {
		return consensusErrorf(height, index, "node %v already registered", r.Key.AbbrevString())
	}

	requirement := guus.StakingRequirement(l.opts.Network, height)
	info := &registry.Info{
		Version:                    guus.InfoVersion(hf),
		RegistrationHeight:         height,
		LastRewardBlockHeight:      height,
		LastRewardTransactionIndex: uint32(index),
		StakingRequirement:         requirement,
		PortionsForOperator:        r.PortionsForOperator,
		OperatorAddress:            r.Operator(),
		SwarmID:                    guus.UnassignedSwarmID,
	}
	if info.Version < registry.VersionInfiniteStaking {
		info.RequestedUnlockHeight = height + l.opts.Params.LockBlocks
	}
	for i, addr := range r.Addresses {
		reserved := guus.PortionsToAmount(r.Portions[i], requirement)
		info.Contributors = append(info.Contributors, registry.Contributor{
			Version:  info.Version,
			Reserved: reserved,
			Address:  addr,
		})
		info.TotalReserved += reserved
	}
	l.reg.Upsert(height, r.Key, info)
	countIntent("registration", "accepted")
	logger.Info("node registered", "key", r.Key.AbbrevString(), "height", height, "contributors", len(r.Addresses))
	if l.isOwn(r.Key) {
		logger.Warn("this node has been registered, awaiting contributions", "key", r.Key.AbbrevString(), "height", height)
	}
	return nil
}

// processContribution reports whether the contribution completed the funding of a node.
func (l *List) processContribution(height uint64, index int, t *tx.Transaction) (bool, error) {
	c, err := stake.ParseContribution(t)
	if err != nil {
		if !errors.Is(err, stake.ErrUnrelated) {
			countIntent("contribution", "malformed")
			logger.Debug("contribution discarded", "tx", t.ID().AbbrevString(), "err", err)
		}
		return false, nil
	}
	discard := func(reason string, ctx ...any) (bool, error) {
		countIntent("contribution", "ignored")
		logger.Debug("contribution ignored: "+reason, append([]any{"node", c.Key.AbbrevString()}, ctx...)...)
		return false, nil
	}

	info, ok := l.reg.Get(c.Key)
	if !ok {
		return discard("unknown node")
	}
	if info.IsFullyFunded() {
		return false, consensusErrorf(height, index, "contribution to fully funded node %v", c.Key.AbbrevString())
	}
	if info.Version >= registry.VersionInfiniteStaking && info.RequestedUnlockHeight != 0 {
		return discard("node is unlocking")
	}
	amount, locked, err := c.Stake(height, info.Version, l.opts.Params.LockBlocks)
	if err != nil {
		return discard("invalid stake", "err", err)
	}
	for _, lc := range locked {
		if _, _, taken := l.reg.FindKeyImage(lc.KeyImage); taken || l.ledger.IsLocked(lc.KeyImage, height) {
			return discard("key image already locked", "keyImage", lc.KeyImage)
		}
	}

	idx := info.FindContributor(c.Address)
	if idx < 0 {
		if len(info.Contributors) >= guus.MaxNumberOfContributors {
			return discard("no free contributor slot")
		}
		minimum := guus.MinNodeContribution(info.Version, info.StakingRequirement, info.TotalReserved, info.NumLockedContributions())
		if amount < minimum {
			return discard("below minimum contribution", "amount", amount, "min", minimum)
		}
		info.Contributors = append(info.Contributors, registry.Contributor{Version: info.Version, Address: c.Address})
		idx = len(info.Contributors) - 1
	}

	contributor := &info.Contributors[idx]
	if len(contributor.LockedContributions)+len(locked) > guus.MaxKeyImagesPerContributor {
		return discard("too many key images")
	}
	maxAmount := contributor.Reserved + (info.StakingRequirement - info.TotalReserved)
	if contributor.Amount >= maxAmount {
		return discard("contributor already at its maximum")
	}
	transferred := min(maxAmount-contributor.Amount, amount)
	contributor.Amount += transferred
	info.TotalContributed += transferred
	if contributor.Amount > contributor.Reserved {
		info.TotalReserved += contributor.Amount - contributor.Reserved
		contributor.Reserved = contributor.Amount
	}
	contributor.LockedContributions = append(contributor.LockedContributions, locked...)

	funded := info.IsFullyFunded()
	if funded {
		info.LastRewardBlockHeight = height
		info.LastRewardTransactionIndex = uint32(index)
		logger.Info("node fully funded", "key", c.Key.AbbrevString(), "height", height)
		if l.isOwn(c.Key) {
			logger.Warn("this node is fully funded and active", "key", c.Key.AbbrevString(), "height", height)
		}
	}
	l.reg.Upsert(height, c.Key, info)
	countIntent("contribution", "accepted")
	return funded, nil
}

// processDeregistration reports whether a node was removed.
func (l *List) processDeregistration(height uint64, index int, t *tx.Transaction) (bool, error) {
	d, err := stake.ParseDeregistration(t)
	if err != nil {
		if !errors.Is(err, stake.ErrUnrelated) {
			countIntent("deregistration", "malformed")
			logger.Debug("deregistration discarded", "tx", t.ID().AbbrevString(), "err", err)
		}
		return false, nil
	}
	state, ok := l.quorums.GetLive(d.BlockHeight)
	if !ok {
		return false, consensusErrorf(height, index, "no quorum state for height %d", d.BlockHeight)
	}
	params := l.opts.Params.Quorum(l.opts.Forks.HardForkVersion(d.BlockHeight))
	key, err := quorum.VerifyDeregistration(d, state, params, l.opts.Params.DeregisterLifetime, height)
	if err != nil {
		return false, &ConsensusError{Height: height, TxIndex: index, cause: err}
	}
	info, ok := l.reg.Get(key)
	if !ok {
		countIntent("deregistration", "ignored")
		logger.Debug("deregistered node already gone", "key", key.AbbrevString())
		return false, nil
	}
	l.removeNode(height, key, info, "deregistered")
	countIntent("deregistration", "accepted")
	logger.Info("node deregistered", "key", key.AbbrevString(), "height", height)
	return true, nil
}

func (l *List) processUnlock(height uint64, t *tx.Transaction) {
	u, err := stake.ParseKeyImageUnlock(t)
	if err != nil {
		if !errors.Is(err, stake.ErrUnrelated) {
			countIntent("unlock", "malformed")
			logger.Debug("unlock discarded", "tx", t.ID().AbbrevString(), "err", err)
		}
		return
	}
	info, ok := l.reg.Get(u.Key)
	if !ok || info.Version < registry.VersionInfiniteStaking || info.RequestedUnlockHeight != 0 {
		countIntent("unlock", "ignored")
		return
	}
	c, ok := info.FindLockedContribution(u.KeyImage)
	if !ok || !u.Verify(c) {
		countIntent("unlock", "ignored")
		return
	}
	info.RequestedUnlockHeight = height + l.opts.Params.LockBlocks
	l.reg.Upsert(height, u.Key, info)
	countIntent("unlock", "accepted")
	logger.Info("stake unlock requested", "key", u.Key.AbbrevString(), "unlockHeight", info.RequestedUnlockHeight)
	if l.isOwn(u.Key) {
		logger.Warn("this node will leave the registry", "key", u.Key.AbbrevString(), "unlockHeight", info.RequestedUnlockHeight)
	}
}

// assignSwarms places funded nodes and moves the members of dissolved swarms.
func (l *List) assignSwarms(height uint64, seed guus.Bytes32) {
	current := make(map[guus.PublicKey]uint64)
	l.reg.Ascend(func(key guus.PublicKey, info *registry.Info) bool {
		if info.IsFullyFunded() {
			current[key] = info.SwarmID
		}
		return true
	})
	assigned := swarm.Assign(current, shuffle.SeedFromHash(seed), l.opts.Params.Swarm)
	for _, key := range swarm.Changes(current, assigned) {
		info, _ := l.reg.Get(key)
		info.SwarmID = assigned[key]
		info.Version = max(info.Version, registry.VersionSwarms)
		for i := range info.Contributors {
			info.Contributors[i].Version = max(info.Contributors[i].Version, registry.VersionSwarms)
		}
		l.reg.Upsert(height, key, info)
	}
}

// quorumSeed returns the hash seeding the quorum of blk.
func (l *List) quorumSeed(blk *block.Block) (guus.Bytes32, error) {
	offset := l.opts.Params.QuorumSeedOffset
	if offset == 0 {
		return blk.ID(), nil
	}
	if l.chain == nil {
		return guus.Bytes32{}, errors.New("quorum seed offset needs a chain reader")
	}
	h := uint64(0)
	if blk.Height() > offset {
		h = blk.Height() - offset
	}
	seedBlk, _, err := l.chain.BlockByHeight(h)
	if err != nil {
		return guus.Bytes32{}, errors.Wrapf(err, "quorum seed block %d", h)
	}
	return seedBlk.ID(), nil
}

// BlockchainDetached rewinds the state to height. Reaching a rollback
// barrier is fatal.
func (l *List) BlockchainDetached(height uint64) error {
	l.lock.Lock()
	defer l.lock.Unlock()

	if height >= l.height {
		return nil
	}
	detached := l.height - height
	if err := l.rewind(height); err != nil {
		logger.Error("rollback failed", "target", height, "err", err)
		return fatal(err)
	}
	metricBlocksDetached().Add(int64(detached))
	l.updateGauges()
	logger.Debug("blockchain detached", "height", height, "blocks", detached)
	return nil
}

func (l *List) rewind(target uint64) error {
	if _, err := l.log.Rewind(target, l.reg, l.ledger); err != nil {
		if errors.Is(err, rollback.ErrBarrier) {
			return errors.Wrapf(err, "rewind to %d", target)
		}
		return err
	}
	l.quorums.RemoveAbove(target)
	l.height = target
	return nil
}

// ValidateMinerTx reports whether minerTx of the block at height pays the
// current reward winner its share of reward.
func (l *List) ValidateMinerTx(prevID guus.Bytes32, minerTx *tx.Transaction, height uint64, hf uint8, parts block.RewardParts) bool {
	if hf < guus.HFVersionFramePix {
		return true
	}
	l.lock.RLock()
	defer l.lock.RUnlock()

	if height != l.height+1 {
		logger.Warn("miner tx validated out of order", "height", height, "state", l.height, "prev", prevID.AbbrevString())
		return false
	}
	winner, payouts, err := reward.WinnerPayouts(l.reg)
	if err != nil {
		logger.Error("reward split unavailable", "height", height, "err", err)
		return false
	}
	total := guus.FramePixReward(parts.OriginalBaseReward, hf)
	if err := reward.CheckMinerTx(minerTx, winner, payouts, total); err != nil {
		logger.Debug("miner tx rejected", "height", height, "err", err)
		return false
	}
	return true
}

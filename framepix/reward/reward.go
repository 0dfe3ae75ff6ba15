// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reward selects the node paid by each block and splits its share
// among the contributors.
package reward

import (
	"github.com/pkg/errors"

	"github.com/vechain/guus/framepix/registry"
	"github.com/vechain/guus/guus"
	"github.com/vechain/guus/tx"
)

// Payout is a share of the frame_pix reward.
type Payout struct {
	Address  guus.Address
	Portions uint64
}

// NullPayouts is the split used when no node is eligible: everything to the null address.
func NullPayouts() []Payout {
	return []Payout{{Address: guus.NullAddress, Portions: guus.StakingPortions}}
}

// SelectWinner returns the fully funded node that waited longest since its
// last reward, ordered by (last reward height, tx index, key). It returns
// guus.NullPublicKey when no node is funded.
func SelectWinner(reg *registry.Registry) guus.PublicKey {
	var (
		winner guus.PublicKey
		best   *registry.Info
	)
	reg.Ascend(func(key guus.PublicKey, info *registry.Info) bool {
		if !info.IsFullyFunded() {
			return true
		}
		if best == nil ||
			info.LastRewardBlockHeight < best.LastRewardBlockHeight ||
			(info.LastRewardBlockHeight == best.LastRewardBlockHeight && info.LastRewardTransactionIndex < best.LastRewardTransactionIndex) {
			winner, best = key, info
		}
		return true
	})
	return winner
}

// Portions splits StakingPortions among the contributors of info: the
// operator takes its fee, the rest is shared in proportion to the amounts.
// A record whose amounts exceed its requirement has no valid split.
func Portions(info *registry.Info) ([]Payout, error) {
	if info.PortionsForOperator > guus.StakingPortions {
		return nil, errors.Errorf("operator portions %d exceed the total", info.PortionsForOperator)
	}
	remaining := guus.StakingPortions - info.PortionsForOperator
	payouts := make([]Payout, 0, len(info.Contributors))
	var total uint64
	for _, c := range info.Contributors {
		share, ok := guus.MulDiv(c.Amount, remaining, info.StakingRequirement)
		if !ok || c.Amount > info.StakingRequirement {
			return nil, errors.Errorf("contribution %d does not fit requirement %d", c.Amount, info.StakingRequirement)
		}
		if c.Address == info.OperatorAddress {
			share += info.PortionsForOperator
		}
		if share > guus.StakingPortions-total {
			return nil, errors.New("shares exceed the total")
		}
		total += share
		payouts = append(payouts, Payout{Address: c.Address, Portions: share})
	}
	return payouts, nil
}

// WinnerPayouts returns the winner and its split.
func WinnerPayouts(reg *registry.Registry) (guus.PublicKey, []Payout, error) {
	winner := SelectWinner(reg)
	if winner.IsZero() {
		return winner, NullPayouts(), nil
	}
	info, ok := reg.Get(winner)
	if !ok {
		return guus.NullPublicKey, NullPayouts(), nil
	}
	payouts, err := Portions(info)
	if err != nil {
		return winner, nil, errors.Wrapf(err, "payouts of %v", winner.AbbrevString())
	}
	return winner, payouts, nil
}

// Amount converts portions of total into atomic units.
func Amount(portions, total uint64) uint64 {
	return guus.PortionsToAmount(portions, total)
}

// ParseWinner returns the winner key declared in the miner tx extra.
func ParseWinner(minerTx *tx.Transaction) (guus.PublicKey, error) {
	extra, err := minerTx.ParsedExtra()
	if err != nil {
		return guus.PublicKey{}, err
	}
	var key guus.PublicKey
	if err := extra.Decode(tx.TagFramePixWinner, &key); err != nil {
		return guus.PublicKey{}, err
	}
	return key, nil
}

// CheckMinerTx verifies that the miner tx names the expected winner and
// pays every share of total. Output 0 belongs to the miner.
func CheckMinerTx(minerTx *tx.Transaction, winner guus.PublicKey, payouts []Payout, total uint64) error {
	declared, err := ParseWinner(minerTx)
	if err != nil {
		if errors.Is(err, tx.ErrFieldNotFound) {
			declared = guus.NullPublicKey
		} else {
			return errors.Wrap(err, "miner tx winner")
		}
	}
	if declared != winner {
		return errors.Errorf("miner tx pays %v, expected %v", declared.AbbrevString(), winner.AbbrevString())
	}

	outputs := minerTx.Outputs()
	if len(outputs) < len(payouts)+1 {
		return errors.Errorf("miner tx has %d outputs, need %d", len(outputs), len(payouts)+1)
	}
	for i, p := range payouts {
		out := outputs[i+1]
		if want := Amount(p.Portions, total); out.Amount != want {
			return errors.Errorf("output %d pays %d, expected %d", i+1, out.Amount, want)
		}
		if out.Recipient != p.Address {
			return errors.Errorf("output %d pays the wrong address", i+1)
		}
	}
	return nil
}

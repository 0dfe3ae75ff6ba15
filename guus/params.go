// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package guus

import (
	"math"

	"github.com/pkg/errors"
)

const (
	// Coin is the number of atomic units in one coin.
	Coin uint64 = 1_000_000_000

	// StakingPortions is the fixed point denominator of every share.
	StakingPortions uint64 = 0xfffffffffffffffc
	// MinPortions is the smallest share a reserved contributor may hold.
	MinPortions = StakingPortions / 4

	MaxNumberOfContributors    = 4
	MaxKeyImagesPerContributor = 1

	// KeyImageAwaitingUnlockHeight marks a blacklist entry whose unlock height is not yet known.
	KeyImageAwaitingUnlockHeight uint64 = 0
	// UnassignedSwarmID is the swarm of a node that has not been placed yet.
	UnassignedSwarmID uint64 = math.MaxUint64
	// MaxBlockNumber separates height-based unlock times from timestamps.
	MaxBlockNumber uint64 = 500_000_000

	// RegistrationAuthorizationWindow bounds how far ahead a registration may expire, in seconds.
	RegistrationAuthorizationWindow uint64 = 14 * 24 * 60 * 60
)

// QuorumParams sizes a quorum and its set of nodes to test.
type QuorumParams struct {
	QuorumSize         uint64 `yaml:"quorum-size"`
	MinVotesToKick     uint64 `yaml:"min-votes-to-kick"`
	NthOfNetworkToTest uint64 `yaml:"nth-of-network-to-test"`
	MinNodesToTest     uint64 `yaml:"min-nodes-to-test"`
}

// QuorumRule applies its quorum parameters from the given fork version onward.
type QuorumRule struct {
	FromFork     uint8 `yaml:"from-fork"`
	QuorumParams `yaml:",inline"`
}

// SwarmParams sizes storage swarms.
type SwarmParams struct {
	MinSwarmSize   uint64 `yaml:"min-swarm-size"`
	IdealSwarmSize uint64 `yaml:"ideal-swarm-size"`
	NewSwarmSize   uint64 `yaml:"new-swarm-size"`
}

// Params are the tunable constants of frame_pix processing.
type Params struct {
	LockBlocks         uint64       `yaml:"lock-blocks"`         // blocks a stake stays locked after registration or unlock request
	RollbackRetention  uint64       `yaml:"rollback-retention"`  // blocks of history kept for reorgs
	QuorumLifetime     uint64       `yaml:"quorum-lifetime"`     // blocks a quorum state is retained
	DeregisterLifetime uint64       `yaml:"deregister-lifetime"` // blocks a deregistration vote stays valid
	QuorumSeedOffset   uint64       `yaml:"quorum-seed-offset"`  // depth of the block whose hash seeds the quorum
	Quorums            []QuorumRule `yaml:"quorums"`
	Swarm              SwarmParams  `yaml:"swarm"`
}

// DefaultParams returns the parameters of a well-known network.
func DefaultParams(net NetworkType) Params {
	p := Params{
		LockBlocks:         lockBlocks(net),
		RollbackRetention:  30,
		QuorumLifetime:     6 * 60,
		DeregisterLifetime: 60,
		Quorums: []QuorumRule{
			{FromFork: HFVersionFramePix, QuorumParams: QuorumParams{
				QuorumSize:         10,
				MinVotesToKick:     7,
				NthOfNetworkToTest: 100,
				MinNodesToTest:     50,
			}},
		},
		Swarm: SwarmParams{
			MinSwarmSize:   5,
			IdealSwarmSize: 7,
			NewSwarmSize:   7,
		},
	}
	return p
}

func lockBlocks(net NetworkType) uint64 {
	switch net {
	case Mainnet:
		return 30 * 720
	case Fakechain:
		return 30
	default:
		return 2 * 720
	}
}

// Quorum returns the quorum parameters in effect for the fork version.
func (p *Params) Quorum(hf uint8) QuorumParams {
	var qp QuorumParams
	for _, r := range p.Quorums {
		if r.FromFork <= hf {
			qp = r.QuorumParams
		}
	}
	return qp
}

// Validate checks that the parameters are usable. A deregistration vote
// must still find its quorum state after the deepest rewind, as pruned
// quorum states are not restored by rollback.
func (p *Params) Validate() error {
	if len(p.Quorums) == 0 {
		return errors.New("params: at least one quorum rule required")
	}
	if p.DeregisterLifetime+p.RollbackRetention >= p.QuorumLifetime {
		return errors.Errorf("params: quorum-lifetime %d must exceed deregister-lifetime %d plus rollback-retention %d",
			p.QuorumLifetime, p.DeregisterLifetime, p.RollbackRetention)
	}
	return nil
}

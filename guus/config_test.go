// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package guus

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	nc, err := LoadConfig(strings.NewReader("network: testnet\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultNetworkConfig(Testnet), nc)

	custom := `
network: fakechain
forks:
  frame-pix: 5
  swarms: 6
  infinite-staking: 7
params:
  lock-blocks: 900
  rollback-retention: 30
  quorum-lifetime: 360
  deregister-lifetime: 60
  quorums:
    - from-fork: 9
      quorum-size: 3
      min-votes-to-kick: 2
      nth-of-network-to-test: 100
      min-nodes-to-test: 5
  swarm:
    min-swarm-size: 2
    ideal-swarm-size: 3
    new-swarm-size: 3
`
	nc, err = LoadConfig(strings.NewReader(custom))
	require.NoError(t, err)
	assert.Equal(t, Fakechain, nc.Network)
	assert.Equal(t, ForkConfig{FramePix: 5, Swarms: 6, InfiniteStaking: 7}, nc.Forks)
	assert.Equal(t, uint64(900), nc.Params.LockBlocks)
	assert.Equal(t, uint64(3), nc.Params.Quorum(HFVersionInfiniteStaking).QuorumSize)
	assert.Equal(t, uint64(3), nc.Params.Swarm.NewSwarmSize)

	_, err = LoadConfig(strings.NewReader("network: moon\n"))
	assert.Error(t, err)

	_, err = LoadConfig(strings.NewReader("network: testnet\nbogus: 1\n"))
	assert.Error(t, err)

	_, err = LoadConfig(strings.NewReader("network: testnet\nparams:\n  lock-blocks: 1\n"))
	assert.ErrorContains(t, err, "quorum rule")
}

func TestParamsValidate(t *testing.T) {
	p := DefaultParams(Mainnet)
	require.NoError(t, p.Validate())

	p.QuorumLifetime = p.DeregisterLifetime + p.RollbackRetention
	assert.ErrorContains(t, p.Validate(), "quorum-lifetime")

	p.QuorumLifetime++
	assert.NoError(t, p.Validate())

	_, err := LoadConfig(strings.NewReader(`network: testnet
params:
  rollback-retention: 30
  quorum-lifetime: 60
  deregister-lifetime: 60
  quorums:
    - from-fork: 9
      quorum-size: 10
      min-votes-to-kick: 7
`))
	assert.ErrorContains(t, err, "quorum-lifetime")
}

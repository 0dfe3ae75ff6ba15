// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package guus

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStakingRequirement(t *testing.T) {
	assert.Equal(t, 100*Coin, StakingRequirement(Testnet, 0))
	assert.Equal(t, 100*Coin, StakingRequirement(Fakechain, 1_000_000))

	start := GetForkConfig(Mainnet).FramePix
	assert.Equal(t, 45000*Coin, StakingRequirement(Mainnet, 0))
	assert.Equal(t, 45000*Coin, StakingRequirement(Mainnet, start))
	assert.Equal(t, 10000*Coin+17500*Coin, StakingRequirement(Mainnet, start+129600))
	assert.Equal(t, 10000*Coin, StakingRequirement(Mainnet, start+129600*70))

	// never increases
	prev := StakingRequirement(Mainnet, start)
	for h := start; h < start+129600*10; h += 10007 {
		cur := StakingRequirement(Mainnet, h)
		assert.LessOrEqual(t, cur, prev)
		prev = cur
	}
}

func TestMulDiv(t *testing.T) {
	v, ok := MulDiv(math.MaxUint64, math.MaxUint64, math.MaxUint64)
	assert.True(t, ok)
	assert.Equal(t, uint64(math.MaxUint64), v)

	_, ok = MulDiv(math.MaxUint64, 2, 1)
	assert.False(t, ok)
	_, ok = MulDiv(1, 1, 0)
	assert.False(t, ok)

	assert.Equal(t, 100*Coin, PortionsToAmount(StakingPortions, 100*Coin))
	assert.Equal(t, 25*Coin, PortionsToAmount(StakingPortions/4, 100*Coin))
}

func TestCheckPortions(t *testing.T) {
	tests := []struct {
		name     string
		portions []uint64
		want     bool
	}{
		{"all", []uint64{StakingPortions}, true},
		{"quarters", []uint64{MinPortions, MinPortions, MinPortions, MinPortions}, true},
		{"below min", []uint64{MinPortions - 1}, false},
		{"over", []uint64{StakingPortions / 2, StakingPortions/2 + 10}, false},
		{"dust remainder", []uint64{StakingPortions - 5, 5}, true},
		{"too much after all", []uint64{StakingPortions, 1}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CheckPortions(tt.portions, MinPortions))
		})
	}
}

func TestMinNodeContribution(t *testing.T) {
	req := 100 * Coin
	assert.Equal(t, 25*Coin, MinNodeContribution(0, req, 0, 0))
	assert.Equal(t, 10*Coin, MinNodeContribution(1, req, 90*Coin, 0))
	assert.Equal(t, uint64(0), MinNodeContribution(1, req, req, 0))

	assert.Equal(t, 25*Coin, MinNodeContribution(2, req, 0, 0))
	assert.Equal(t, 20*Coin, MinNodeContribution(2, req, 40*Coin, 1))
	assert.Equal(t, uint64(math.MaxUint64), MinNodeContribution(2, req, 40*Coin, 4))
}

func TestPortionsToMakeAmount(t *testing.T) {
	req := 100 * Coin
	assert.Equal(t, StakingPortions, PortionsToMakeAmount(req, req))
	assert.Equal(t, MinPortions, PortionsToMakeAmount(req, 25*Coin))
	assert.Equal(t, uint64(0), PortionsToMakeAmount(req, 0))

	// rounds up so the share is always worth the amount
	p := PortionsToMakeAmount(3, 1)
	assert.GreaterOrEqual(t, PortionsToAmount(p, 3), uint64(1))

	assert.Equal(t, MinPortions, MinNodeContributionInPortions(0, req, 0, 0))
	assert.Equal(t, uint64(math.MaxUint64), MinNodeContributionInPortions(2, req, 0, 4))
}

func TestInfoVersion(t *testing.T) {
	assert.Equal(t, uint8(0), InfoVersion(HFVersionFramePix))
	assert.Equal(t, uint8(1), InfoVersion(HFVersionSwarms))
	assert.Equal(t, uint8(2), InfoVersion(HFVersionInfiniteStaking))
}

func TestFramePixReward(t *testing.T) {
	assert.Equal(t, uint64(0), FramePixReward(100, HFVersionFramePix-1))
	assert.Equal(t, uint64(50), FramePixReward(100, HFVersionFramePix))
}

// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package guus

import (
	"math"

	"github.com/holiman/uint256"
)

// InfoVersion maps a fork version to the node record version it creates.
func InfoVersion(hf uint8) uint8 {
	switch {
	case hf >= HFVersionInfiniteStaking:
		return 2
	case hf >= HFVersionSwarms:
		return 1
	default:
		return 0
	}
}

// StakingRequirement is the total stake a node needs at the height.
func StakingRequirement(net NetworkType, height uint64) uint64 {
	if net == Testnet || net == Fakechain {
		return 100 * Coin
	}
	start := GetForkConfig(net).FramePix
	if height < start {
		height = start
	}
	halvings := (height - start) / 129600
	var variable uint64
	if halvings < 64 {
		variable = (35000 * Coin) >> halvings
	}
	return 10000*Coin + variable
}

// MulDiv computes a*b/c with a 256 bit intermediate. The second result is
// false if c is zero or the quotient overflows 64 bits.
func MulDiv(a, b, c uint64) (uint64, bool) {
	if c == 0 {
		return 0, false
	}
	x := new(uint256.Int).Mul(uint256.NewInt(a), uint256.NewInt(b))
	x.Div(x, uint256.NewInt(c))
	if !x.IsUint64() {
		return 0, false
	}
	return x.Uint64(), true
}

// PortionsToAmount converts a share of StakingPortions into atomic units.
func PortionsToAmount(portions, amount uint64) uint64 {
	v, _ := MulDiv(amount, portions, StakingPortions)
	return v
}

// CheckPortions verifies that every share respects the minimum contribution
// and that the shares never exceed what is left.
func CheckPortions(portions []uint64, minPortions uint64) bool {
	left := StakingPortions
	for _, p := range portions {
		if p < min(minPortions, left) || p > left {
			return false
		}
		left -= p
	}
	return true
}

// MinNodeContribution is the smallest amount a new contributor must transfer.
func MinNodeContribution(version uint8, requirement, totalReserved uint64, numLocked int) uint64 {
	if version < 2 {
		if totalReserved >= requirement {
			return 0
		}
		return min(requirement-totalReserved, requirement/MaxNumberOfContributors)
	}
	maxLocked := MaxNumberOfContributors * MaxKeyImagesPerContributor
	if numLocked >= maxLocked {
		return math.MaxUint64
	}
	var needed uint64
	if requirement > totalReserved {
		needed = requirement - totalReserved
	}
	return needed / uint64(maxLocked-numLocked)
}

// PortionsToMakeAmount returns the smallest share of StakingPortions worth
// at least amount out of requirement.
func PortionsToMakeAmount(requirement, amount uint64) uint64 {
	if requirement == 0 {
		return 0
	}
	x := new(uint256.Int).Mul(uint256.NewInt(StakingPortions), uint256.NewInt(amount))
	q, r := new(uint256.Int).DivMod(x, uint256.NewInt(requirement), new(uint256.Int))
	if !r.IsZero() {
		q.AddUint64(q, 1)
	}
	if !q.IsUint64() {
		return math.MaxUint64
	}
	return q.Uint64()
}

// MinNodeContributionInPortions is MinNodeContribution expressed as a share.
func MinNodeContributionInPortions(version uint8, requirement, totalReserved uint64, numLocked int) uint64 {
	amount := MinNodeContribution(version, requirement, totalReserved, numLocked)
	if amount == math.MaxUint64 {
		return math.MaxUint64
	}
	return PortionsToMakeAmount(requirement, amount)
}

// FramePixReward is the share of the base reward paid to frame_pix nodes.
func FramePixReward(baseReward uint64, hf uint8) uint64 {
	if hf < HFVersionFramePix {
		return 0
	}
	return baseReward / 2
}

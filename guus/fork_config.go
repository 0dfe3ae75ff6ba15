// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package guus

import (
	"fmt"
	"math"
	"strings"
)

// hard fork versions that change frame_pix behaviour.
const (
	HFVersionFramePix        uint8 = 9
	HFVersionSwarms          uint8 = 10
	HFVersionInfiniteStaking uint8 = 11
)

// ForkConfig holds the activation height of each hard fork.
type ForkConfig struct {
	FramePix        uint64 `yaml:"frame-pix"`
	Swarms          uint64 `yaml:"swarms"`
	InfiniteStaking uint64 `yaml:"infinite-staking"`
}

func (fc ForkConfig) String() string {
	var strs []string
	push := func(name string, height uint64) {
		if height != math.MaxUint64 {
			strs = append(strs, fmt.Sprintf("%v: #%v", name, height))
		}
	}

	push("FRAMEPIX", fc.FramePix)
	push("SWARMS", fc.Swarms)
	push("INFSTAKE", fc.InfiniteStaking)

	return strings.Join(strs, ", ")
}

// NoFork a special config without any forks.
var NoFork = ForkConfig{
	FramePix:        math.MaxUint64,
	Swarms:          math.MaxUint64,
	InfiniteStaking: math.MaxUint64,
}

var forkConfigs = map[NetworkType]ForkConfig{
	Mainnet: {
		FramePix:        101250,
		Swarms:          161849,
		InfiniteStaking: 234767,
	},
	Testnet: {
		FramePix:        1000,
		Swarms:          2000,
		InfiniteStaking: 3000,
	},
	Stagenet: {
		FramePix:        96210,
		Swarms:          96990,
		InfiniteStaking: 147200,
	},
	Fakechain: {
		FramePix:        0,
		Swarms:          0,
		InfiniteStaking: 0,
	},
}

// GetForkConfig returns the fork schedule of a well-known network.
func GetForkConfig(net NetworkType) ForkConfig {
	if fc, ok := forkConfigs[net]; ok {
		return fc
	}
	return NoFork
}

// HardForkVersion returns the protocol version in effect at the height.
func (fc ForkConfig) HardForkVersion(height uint64) uint8 {
	switch {
	case height >= fc.InfiniteStaking:
		return HFVersionInfiniteStaking
	case height >= fc.Swarms:
		return HFVersionSwarms
	case height >= fc.FramePix:
		return HFVersionFramePix
	default:
		return HFVersionFramePix - 1
	}
}

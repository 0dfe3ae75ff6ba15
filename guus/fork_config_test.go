// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package guus

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestForkConfigString(t *testing.T) {
	fc := ForkConfig{
		FramePix:        1,
		Swarms:          math.MaxUint64,
		InfiniteStaking: 2,
	}
	assert.Equal(t, "FRAMEPIX: #1, INFSTAKE: #2", fc.String())
	assert.Equal(t, "", NoFork.String())
}

func TestHardForkVersion(t *testing.T) {
	fc := ForkConfig{FramePix: 10, Swarms: 20, InfiniteStaking: 30}
	assert.Equal(t, HFVersionFramePix-1, fc.HardForkVersion(9))
	assert.Equal(t, HFVersionFramePix, fc.HardForkVersion(10))
	assert.Equal(t, HFVersionSwarms, fc.HardForkVersion(29))
	assert.Equal(t, HFVersionInfiniteStaking, fc.HardForkVersion(30))

	assert.Equal(t, HFVersionFramePix-1, NoFork.HardForkVersion(math.MaxUint64-1))
	assert.Equal(t, NoFork, GetForkConfig(NetworkType(99)))
}

// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package shuffle

const (
	nn       = 312
	mm       = 156
	matrixA  = 0xB5026F5AA96619E9
	upperMsk = 0xFFFFFFFF80000000
	lowerMsk = 0x7FFFFFFF
)

// MT19937 is the 64-bit Mersenne Twister. Its output sequence is fixed by
// the seed on every platform, which quorum and swarm selection rely on.
type MT19937 struct {
	mt  [nn]uint64
	mti int
}

// NewMT19937 seeds a generator.
func NewMT19937(seed uint64) *MT19937 {
	m := &MT19937{}
	m.mt[0] = seed
	for i := 1; i < nn; i++ {
		m.mt[i] = 6364136223846793005*(m.mt[i-1]^(m.mt[i-1]>>62)) + uint64(i)
	}
	m.mti = nn
	return m
}

func (m *MT19937) twist() {
	mag := func(x uint64) uint64 {
		if x&1 == 0 {
			return 0
		}
		return matrixA
	}
	var i int
	for ; i < nn-mm; i++ {
		x := (m.mt[i] & upperMsk) | (m.mt[i+1] & lowerMsk)
		m.mt[i] = m.mt[i+mm] ^ (x >> 1) ^ mag(x)
	}
	for ; i < nn-1; i++ {
		x := (m.mt[i] & upperMsk) | (m.mt[i+1] & lowerMsk)
		m.mt[i] = m.mt[i+mm-nn] ^ (x >> 1) ^ mag(x)
	}
	x := (m.mt[nn-1] & upperMsk) | (m.mt[0] & lowerMsk)
	m.mt[nn-1] = m.mt[mm-1] ^ (x >> 1) ^ mag(x)
	m.mti = 0
}

// Uint64 returns the next output.
func (m *MT19937) Uint64() uint64 {
	if m.mti >= nn {
		m.twist()
	}
	x := m.mt[m.mti]
	m.mti++

	x ^= (x >> 29) & 0x5555555555555555
	x ^= (x << 17) & 0x71D67FFFEDA60000
	x ^= (x << 37) & 0xFFF7EEE000000000
	x ^= x >> 43
	return x
}

// Uniform returns a value in [0, n) without modulo bias.
// panic if n == 0
func (m *MT19937) Uniform(n uint64) uint64 {
	if n == 0 {
		panic("n must > 0")
	}
	const maxOut = ^uint64(0)
	secureMax := maxOut - maxOut%n
	x := m.Uint64()
	for x >= secureMax {
		x = m.Uint64()
	}
	return x / (secureMax / n)
}

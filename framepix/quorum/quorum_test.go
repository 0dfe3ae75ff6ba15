// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package quorum

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/guus/guus"
	"github.com/vechain/guus/lvldb"
	"github.com/vechain/guus/test/datagen"
	"github.com/vechain/guus/tx"
)

var params = guus.QuorumParams{
	QuorumSize:         10,
	MinVotesToKick:     7,
	NthOfNetworkToTest: 100,
	MinNodesToTest:     50,
}

func sortedKeys(n int) []guus.PublicKey {
	keys := make([]guus.PublicKey, n)
	for i := range keys {
		keys[i] = guus.PublicKey{byte(i >> 8), byte(i)}
	}
	return keys
}

func TestGenerateSizes(t *testing.T) {
	tests := []struct {
		nodes, quorum, test int
	}{
		{0, 0, 0},
		{5, 5, 0},
		{10, 10, 0},
		{30, 10, 20},
		{60, 10, 50},
		{100, 10, 50},
		{10010, 10, 100},
	}
	for _, tt := range tests {
		s := Generate(guus.Bytes32{1}, sortedKeys(tt.nodes), params)
		assert.Len(t, s.QuorumNodes, tt.quorum, "nodes=%d", tt.nodes)
		assert.Len(t, s.NodesToTest, tt.test, "nodes=%d", tt.nodes)

		seen := make(map[guus.PublicKey]bool)
		for _, k := range append(slices.Clone(s.QuorumNodes), s.NodesToTest...) {
			assert.False(t, seen[k], "no key is both voter and tested")
			seen[k] = true
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	keys := sortedKeys(200)
	seed := datagen.RandBytes32()
	a := Generate(seed, keys, params)
	b := Generate(seed, slices.Clone(keys), params)
	assert.Equal(t, a, b)

	other := seed
	other[0]++
	assert.NotEqual(t, a.QuorumNodes, Generate(other, keys, params).QuorumNodes)
}

type quorumFixture struct {
	secrets []guus.SecretKey
	state   *State
}

func newFixture(t *testing.T, n int) *quorumFixture {
	f := &quorumFixture{state: &State{}}
	for range n {
		sec, pub := datagen.RandKeyPair()
		f.secrets = append(f.secrets, sec)
		f.state.QuorumNodes = append(f.state.QuorumNodes, pub)
	}
	f.state.NodesToTest = []guus.PublicKey{datagen.RandPublicKey(), datagen.RandPublicKey()}
	return f
}

func (f *quorumFixture) dereg(height uint64, node uint32, voters ...int) *tx.FramePixDeregister {
	d := &tx.FramePixDeregister{BlockHeight: height, NodeIndex: node}
	for _, v := range voters {
		d.Votes = append(d.Votes, SignVote(f.secrets[v], height, node, uint32(v)))
	}
	return d
}

func TestVerifyDeregistration(t *testing.T) {
	f := newFixture(t, 10)
	seven := []int{0, 1, 2, 3, 4, 5, 6}

	key, err := VerifyDeregistration(f.dereg(100, 1, seven...), f.state, params, 60, 101)
	require.NoError(t, err)
	assert.Equal(t, f.state.NodesToTest[1], key)

	_, err = VerifyDeregistration(f.dereg(100, 1, seven...), f.state, params, 60, 160)
	assert.NoError(t, err, "last block of the lifetime")

	_, err = VerifyDeregistration(f.dereg(100, 1, seven...), f.state, params, 60, 161)
	assert.ErrorIs(t, err, ErrVoteExpired)

	_, err = VerifyDeregistration(f.dereg(100, 1, seven...), f.state, params, 60, 100)
	assert.ErrorIs(t, err, ErrVoteFromFuture)

	_, err = VerifyDeregistration(f.dereg(100, 2, seven...), f.state, params, 60, 101)
	assert.ErrorIs(t, err, ErrNodeIndexOutOfRange)

	_, err = VerifyDeregistration(f.dereg(100, 1, 0, 1, 2, 3, 4, 5), f.state, params, 60, 101)
	assert.ErrorIs(t, err, ErrNotEnoughVotes)

	_, err = VerifyDeregistration(f.dereg(100, 1, 0, 1, 2, 3, 4, 5, 5), f.state, params, 60, 101)
	assert.ErrorIs(t, err, ErrDuplicateVoter)

	bad := f.dereg(100, 1, seven...)
	bad.Votes[3].Signature = f.dereg(100, 0, 3).Votes[0].Signature
	_, err = VerifyDeregistration(bad, f.state, params, 60, 101)
	assert.ErrorIs(t, err, ErrBadVoteSignature)

	oob := f.dereg(100, 1, seven...)
	oob.Votes[0].ValidatorIndex = 10
	_, err = VerifyDeregistration(oob, f.state, params, 60, 101)
	assert.ErrorIs(t, err, ErrVoterIndexOutOfRange)
}

func TestCacheAndArchive(t *testing.T) {
	db, err := lvldb.NewMem()
	require.NoError(t, err)
	defer db.Close()

	archive, err := NewArchive(db, 4)
	require.NoError(t, err)
	c := NewCache(archive)

	for h := uint64(1); h <= 10; h++ {
		c.Put(h, Generate(guus.Bytes32{byte(h)}, sortedKeys(20), params))
	}
	want5, _ := c.Get(5)

	c.Prune(6)
	assert.Equal(t, []uint64{6, 7, 8, 9, 10}, c.Heights())
	_, ok := c.GetLive(5)
	assert.False(t, ok)
	got, ok := c.Get(5)
	require.True(t, ok, "pending")
	assert.Equal(t, want5, got)

	batch := db.NewBatch()
	require.NoError(t, c.Flush(batch))
	require.NoError(t, batch.Write())

	// a fresh archive reads back from the store
	archive2, err := NewArchive(db, 4)
	require.NoError(t, err)
	got, err = archive2.Get(5)
	require.NoError(t, err)
	assert.Equal(t, want5.QuorumNodes, got.QuorumNodes)
	assert.Equal(t, want5.NodesToTest, got.NodesToTest)

	_, err = archive2.Get(50)
	assert.True(t, archive2.IsNotFound(err))

	c.RemoveAbove(8)
	assert.Equal(t, []uint64{6, 7, 8}, c.Heights())

	noArchive := NewCache(nil)
	noArchive.Put(1, &State{})
	noArchive.Prune(2)
	_, ok = noArchive.Get(1)
	assert.False(t, ok)
}

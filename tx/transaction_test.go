// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vechain/guus/guus"
	"github.com/vechain/guus/test/datagen"
)

func TestTransaction(t *testing.T) {
	addr := datagen.RandAddress()
	var extra Extra
	require.NoError(t, extra.Append(TagFramePixPubKey, datagen.RandPublicKey()))

	trx := NewBuilder(TypeStandard).
		UnlockTime(1000).
		Output(Output{Key: datagen.RandPublicKey(), Recipient: addr, Amount: 10}).
		OutputWithUnlock(Output{Key: datagen.RandPublicKey(), Recipient: addr, Amount: 20}, 2000).
		Output(Output{Key: datagen.RandPublicKey(), Recipient: addr, Amount: 30}).
		Extra(extra).
		Build()

	assert.Equal(t, TypeStandard, trx.Type())
	assert.Equal(t, uint64(1000), trx.OutputUnlockTime(0))
	assert.Equal(t, uint64(2000), trx.OutputUnlockTime(1))
	assert.Equal(t, uint64(1000), trx.OutputUnlockTime(2))
	assert.Len(t, trx.Outputs(), 3)

	enc, err := trx.MarshalBinary()
	require.NoError(t, err)
	var dec Transaction
	require.NoError(t, dec.UnmarshalBinary(enc))
	assert.Equal(t, trx.ID(), dec.ID())

	parsed, err := dec.ParsedExtra()
	require.NoError(t, err)
	assert.Equal(t, extra, parsed)
}

func TestExtra(t *testing.T) {
	var extra Extra
	reg := FramePixRegister{
		PublicSpendKeys:     []guus.PublicKey{datagen.RandPublicKey()},
		PublicViewKeys:      []guus.PublicKey{datagen.RandPublicKey()},
		PortionsForOperator: guus.StakingPortions,
		Portions:            []uint64{guus.StakingPortions},
		ExpirationTimestamp: 12345,
	}
	require.NoError(t, extra.Append(TagFramePixRegister, &reg))
	require.NoError(t, extra.Append(TagFramePixWinner, guus.PublicKey{1}))
	require.NoError(t, extra.Append(TagFramePixWinner, guus.PublicKey{2}))

	parsed, err := ParseExtra(extra.Bytes())
	require.NoError(t, err)

	var got FramePixRegister
	require.NoError(t, parsed.Decode(TagFramePixRegister, &got))
	assert.Equal(t, reg, got)

	var winner guus.PublicKey
	require.NoError(t, parsed.Decode(TagFramePixWinner, &winner))
	assert.Equal(t, guus.PublicKey{1}, winner, "first field wins")

	assert.ErrorIs(t, parsed.Decode(TagTxKeyImageUnlock, &KeyImageUnlock{}), ErrFieldNotFound)
	assert.Error(t, parsed.Decode(TagFramePixRegister, &winner), "type mismatch")

	empty, err := ParseExtra(nil)
	assert.NoError(t, err)
	assert.Empty(t, empty)

	_, err = ParseExtra([]byte{0xff, 0x01})
	assert.Error(t, err)
}

func TestConcurrentID(t *testing.T) {
	trx := NewBuilder(TypeStandard).Output(Output{Recipient: datagen.RandAddress(), Amount: 1}).Build()
	want := NewBuilder(TypeStandard).Output(trx.Outputs()[0]).Build().ID()

	var wg sync.WaitGroup
	ids := make([]guus.Bytes32, 8)
	for i := range ids {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ids[i] = trx.ID()
		}()
	}
	wg.Wait()
	for _, id := range ids {
		assert.Equal(t, want, id)
	}
}

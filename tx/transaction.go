// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"io"
	"sync/atomic"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/guus/guus"
)

// Type distinguishes the transaction kinds that frame_pix inspects.
type Type uint8

const (
	TypeStandard Type = iota
	TypeDeregister
	TypeKeyImageUnlock
)

func (t Type) String() string {
	switch t {
	case TypeStandard:
		return "standard"
	case TypeDeregister:
		return "deregister"
	case TypeKeyImageUnlock:
		return "key_image_unlock"
	default:
		return "unknown"
	}
}

// Output pays Amount to Recipient through the one-time key Key.
type Output struct {
	Key       guus.PublicKey
	Recipient guus.Address
	Amount    uint64
}

// Transaction is an immutable tx type.
type Transaction struct {
	body body

	cache struct {
		id atomic.Value
	}
}

type body struct {
	Version           uint8
	Type              Type
	UnlockTime        uint64
	Outputs           []Output
	OutputUnlockTimes []uint64
	Extra             []byte
}

// ID returns the identifier of the tx.
func (t *Transaction) ID() guus.Bytes32 {
	if cached := t.cache.id.Load(); cached != nil {
		return cached.(guus.Bytes32)
	}
	id := guus.Blake2bFn(func(w io.Writer) {
		rlp.Encode(w, &t.body)
	})
	t.cache.id.Store(id)
	return id
}

// Version returns the tx format version.
func (t *Transaction) Version() uint8 {
	return t.body.Version
}

// Type returns the tx type.
func (t *Transaction) Type() Type {
	return t.body.Type
}

// UnlockTime returns the tx wide unlock time.
func (t *Transaction) UnlockTime() uint64 {
	return t.body.UnlockTime
}

// OutputUnlockTime returns the unlock time of the i-th output. Outputs fall
// back to the tx wide unlock time unless every output carries its own.
func (t *Transaction) OutputUnlockTime(i int) uint64 {
	if len(t.body.OutputUnlockTimes) == len(t.body.Outputs) && i < len(t.body.OutputUnlockTimes) {
		return t.body.OutputUnlockTimes[i]
	}
	return t.body.UnlockTime
}

// Outputs returns a copy of outputs.
func (t *Transaction) Outputs() []Output {
	return append([]Output(nil), t.body.Outputs...)
}

// Extra returns a copy of the raw extra field.
func (t *Transaction) Extra() []byte {
	return append([]byte(nil), t.body.Extra...)
}

// ParsedExtra decodes the extra field.
func (t *Transaction) ParsedExtra() (Extra, error) {
	return ParseExtra(t.body.Extra)
}

// EncodeRLP implements rlp.Encoder
func (t *Transaction) EncodeRLP(w io.Writer) error {
	return rlp.Encode(w, &t.body)
}

// DecodeRLP implements rlp.Decoder
func (t *Transaction) DecodeRLP(s *rlp.Stream) error {
	var body body
	if err := s.Decode(&body); err != nil {
		return err
	}
	*t = Transaction{body: body}
	return nil
}

// MarshalBinary returns the canonical encoding of the tx.
func (t *Transaction) MarshalBinary() ([]byte, error) {
	return rlp.EncodeToBytes(t)
}

// UnmarshalBinary decodes the canonical encoding of the tx.
func (t *Transaction) UnmarshalBinary(b []byte) error {
	return rlp.DecodeBytes(b, t)
}

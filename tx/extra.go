// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

import (
	"github.com/ethereum/go-ethereum/rlp"
	"github.com/pkg/errors"

	"github.com/vechain/guus/guus"
)

// Tag identifies a field of the tx extra.
type Tag uint8

const (
	TagPubKey              Tag = 0x01
	TagFramePixRegister    Tag = 0x70
	TagFramePixDeregister  Tag = 0x71
	TagFramePixWinner      Tag = 0x72
	TagFramePixContributor Tag = 0x73
	TagFramePixPubKey      Tag = 0x74
	TagTxKeyImageProofs    Tag = 0x75
	TagTxKeyImageUnlock    Tag = 0x76
)

// ErrFieldNotFound is returned by Extra.Decode when the tag is absent.
var ErrFieldNotFound = errors.New("extra field not found")

// Field is a tagged, rlp encoded extra entry.
type Field struct {
	Tag  Tag
	Data []byte
}

// Extra is the ordered list of fields carried in a tx extra.
type Extra []Field

// ParseExtra decodes the raw extra bytes. An empty input is an empty extra.
func ParseExtra(b []byte) (Extra, error) {
	if len(b) == 0 {
		return nil, nil
	}
	var e Extra
	if err := rlp.DecodeBytes(b, &e); err != nil {
		return nil, errors.Wrap(err, "parse extra")
	}
	return e, nil
}

// Bytes encodes the extra.
func (e Extra) Bytes() []byte {
	if len(e) == 0 {
		return nil
	}
	b, _ := rlp.EncodeToBytes([]Field(e))
	return b
}

// Find returns the payload of the first field with the tag.
func (e Extra) Find(tag Tag) ([]byte, bool) {
	for _, f := range e {
		if f.Tag == tag {
			return f.Data, true
		}
	}
	return nil, false
}

// Decode decodes the first field with the tag into v.
func (e Extra) Decode(tag Tag, v any) error {
	data, ok := e.Find(tag)
	if !ok {
		return ErrFieldNotFound
	}
	return errors.Wrapf(rlp.DecodeBytes(data, v), "decode extra field 0x%02x", uint8(tag))
}

// Append encodes v and adds it under the tag.
func (e *Extra) Append(tag Tag, v any) error {
	data, err := rlp.EncodeToBytes(v)
	if err != nil {
		return errors.Wrapf(err, "encode extra field 0x%02x", uint8(tag))
	}
	*e = append(*e, Field{Tag: tag, Data: data})
	return nil
}

// FramePixRegister is the registration payload signed by the operator.
type FramePixRegister struct {
	PublicSpendKeys     []guus.PublicKey
	PublicViewKeys      []guus.PublicKey
	PortionsForOperator uint64
	Portions            []uint64
	ExpirationTimestamp uint64
	Signature           guus.Signature
}

// DeregisterVote is one quorum member's signature on a deregistration.
type DeregisterVote struct {
	ValidatorIndex uint32
	Signature      guus.Signature
}

// FramePixDeregister removes the tested node at NodeIndex of the quorum formed at BlockHeight.
type FramePixDeregister struct {
	BlockHeight uint64
	NodeIndex   uint32
	Votes       []DeregisterVote
}

// KeyImageProof proves ownership of the key image of a staked output.
type KeyImageProof struct {
	Key       guus.PublicKey
	KeyImage  guus.KeyImage
	Signature guus.Signature
}

// KeyImageUnlock asks to start unlocking the stake identified by KeyImage.
type KeyImageUnlock struct {
	KeyImage  guus.KeyImage
	Nonce     uint32
	Signature guus.Signature
}

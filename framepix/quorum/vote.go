// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package quorum

import (
	"encoding/binary"

	"github.com/pkg/errors"

	"github.com/vechain/guus/guus"
	"github.com/vechain/guus/tx"
)

var (
	ErrVoteExpired          = errors.New("deregistration vote expired")
	ErrVoteFromFuture       = errors.New("deregistration vote height is not behind the chain")
	ErrNodeIndexOutOfRange  = errors.New("tested node index out of range")
	ErrNotEnoughVotes       = errors.New("not enough votes")
	ErrVoterIndexOutOfRange = errors.New("voter index out of range")
	ErrDuplicateVoter       = errors.New("duplicate voter")
	ErrBadVoteSignature     = errors.New("bad vote signature")
)

// VoteHash is the message a quorum member signs to vote a tested node out.
func VoteHash(height uint64, nodeIndex uint32) guus.Bytes32 {
	var b [12]byte
	binary.LittleEndian.PutUint64(b[:8], height)
	binary.LittleEndian.PutUint32(b[8:], nodeIndex)
	return guus.FastHash(b[:])
}

// SignVote produces the vote of a quorum member.
func SignVote(sec guus.SecretKey, height uint64, nodeIndex uint32, validatorIndex uint32) tx.DeregisterVote {
	return tx.DeregisterVote{
		ValidatorIndex: validatorIndex,
		Signature:      guus.Sign(sec, VoteHash(height, nodeIndex)),
	}
}

// VerifyDeregistration checks a deregistration against the quorum formed at
// its vote height and returns the key of the node voted out.
func VerifyDeregistration(d *tx.FramePixDeregister, state *State, p guus.QuorumParams, lifetime, height uint64) (guus.PublicKey, error) {
	if d.BlockHeight >= height {
		return guus.PublicKey{}, ErrVoteFromFuture
	}
	if d.BlockHeight+lifetime < height {
		return guus.PublicKey{}, ErrVoteExpired
	}
	if uint64(d.NodeIndex) >= uint64(len(state.NodesToTest)) {
		return guus.PublicKey{}, ErrNodeIndexOutOfRange
	}
	if uint64(len(d.Votes)) < p.MinVotesToKick {
		return guus.PublicKey{}, errors.Wrapf(ErrNotEnoughVotes, "%d < %d", len(d.Votes), p.MinVotesToKick)
	}

	hash := VoteHash(d.BlockHeight, d.NodeIndex)
	seen := make(map[uint32]bool, len(d.Votes))
	for _, v := range d.Votes {
		if uint64(v.ValidatorIndex) >= uint64(len(state.QuorumNodes)) {
			return guus.PublicKey{}, ErrVoterIndexOutOfRange
		}
		if seen[v.ValidatorIndex] {
			return guus.PublicKey{}, errors.Wrapf(ErrDuplicateVoter, "index %d", v.ValidatorIndex)
		}
		seen[v.ValidatorIndex] = true
		if !guus.VerifySignature(state.QuorumNodes[v.ValidatorIndex], hash, v.Signature) {
			return guus.PublicKey{}, errors.Wrapf(ErrBadVoteSignature, "index %d", v.ValidatorIndex)
		}
	}
	return state.NodesToTest[d.NodeIndex], nil
}

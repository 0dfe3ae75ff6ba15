// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import (
	"github.com/vechain/guus/guus"
	"github.com/vechain/guus/tx"
)

// SignRegistration signs the registration hash with the node secret key.
func SignRegistration(sec guus.SecretKey, addresses []guus.Address, portionsForOperator uint64, portions []uint64, expiration uint64) guus.Signature {
	return guus.Sign(sec, RegistrationHash(addresses, portionsForOperator, portions, expiration))
}

// RegistrationExtra encodes r into tx extra fields.
func RegistrationExtra(r *Registration) (tx.Extra, error) {
	raw := tx.FramePixRegister{
		PortionsForOperator: r.PortionsForOperator,
		Portions:            r.Portions,
		ExpirationTimestamp: r.ExpirationTimestamp,
		Signature:           r.Signature,
	}
	for _, addr := range r.Addresses {
		raw.PublicSpendKeys = append(raw.PublicSpendKeys, addr.Spend)
		raw.PublicViewKeys = append(raw.PublicViewKeys, addr.View)
	}
	var extra tx.Extra
	if err := extra.Append(tx.TagFramePixPubKey, r.Key); err != nil {
		return nil, err
	}
	if err := extra.Append(tx.TagFramePixRegister, &raw); err != nil {
		return nil, err
	}
	return extra, nil
}

// ContributionExtra encodes the fields of a contribution to node key from addr.
func ContributionExtra(key guus.PublicKey, addr guus.Address, proofs []tx.KeyImageProof) (tx.Extra, error) {
	var extra tx.Extra
	if err := extra.Append(tx.TagFramePixPubKey, key); err != nil {
		return nil, err
	}
	if err := extra.Append(tx.TagFramePixContributor, &addr); err != nil {
		return nil, err
	}
	if len(proofs) > 0 {
		if err := extra.Append(tx.TagTxKeyImageProofs, proofs); err != nil {
			return nil, err
		}
	}
	return extra, nil
}

// ProveKeyImage signs the key image of a staked output with its one-time secret key.
func ProveKeyImage(sec guus.SecretKey, ki guus.KeyImage) tx.KeyImageProof {
	return tx.KeyImageProof{
		Key:       sec.PublicKey(),
		KeyImage:  ki,
		Signature: guus.Sign(sec, KeyImageProofHash(ki)),
	}
}

// NewUnlock builds a signed unlock request for the stake behind ki.
func NewUnlock(key guus.PublicKey, sec guus.SecretKey, ki guus.KeyImage, nonce uint32) *Unlock {
	return &Unlock{
		Key: key,
		KeyImageUnlock: tx.KeyImageUnlock{
			KeyImage:  ki,
			Nonce:     nonce,
			Signature: guus.Sign(sec, UnlockHash(ki, nonce)),
		},
	}
}

// UnlockExtra encodes u into tx extra fields.
func UnlockExtra(u *Unlock) (tx.Extra, error) {
	var extra tx.Extra
	if err := extra.Append(tx.TagFramePixPubKey, u.Key); err != nil {
		return nil, err
	}
	if err := extra.Append(tx.TagTxKeyImageUnlock, &u.KeyImageUnlock); err != nil {
		return nil, err
	}
	return extra, nil
}

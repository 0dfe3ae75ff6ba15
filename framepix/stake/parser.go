// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package stake extracts frame_pix intents from transactions.
//
// Parsers never panic on hostile input. A transaction that does not carry
// the fields of an intent yields ErrUnrelated; any other error means the
// intent is malformed and must be discarded.
package stake

import (
	"github.com/pkg/errors"

	"github.com/vechain/guus/framepix/registry"
	"github.com/vechain/guus/guus"
	"github.com/vechain/guus/tx"
)

// ErrUnrelated is returned when a transaction carries no intent of the requested kind.
var ErrUnrelated = errors.New("not a frame_pix transaction")

// Registration reserves a node and its contributor slots.
type Registration struct {
	Key                 guus.PublicKey
	Addresses           []guus.Address
	Portions            []uint64
	PortionsForOperator uint64
	ExpirationTimestamp uint64
	Signature           guus.Signature
}

// Operator returns the address of the first contributor.
func (r *Registration) Operator() guus.Address {
	return r.Addresses[0]
}

// StakeOutput is an output paid to the contributor.
type StakeOutput struct {
	Key        guus.PublicKey
	Amount     uint64
	UnlockTime uint64
}

// Contribution funds a registered node.
type Contribution struct {
	Key     guus.PublicKey
	Address guus.Address
	Outputs []StakeOutput
	Proofs  []tx.KeyImageProof
}

// Unlock asks a node to start unlocking the stake behind KeyImage.
type Unlock struct {
	Key guus.PublicKey
	tx.KeyImageUnlock
}

func parseExtra(t *tx.Transaction) (tx.Extra, error) {
	extra, err := t.ParsedExtra()
	if err != nil {
		return nil, errors.Wrap(err, "malformed extra")
	}
	return extra, nil
}

func decodeNodeKey(extra tx.Extra) (guus.PublicKey, error) {
	var key guus.PublicKey
	if err := extra.Decode(tx.TagFramePixPubKey, &key); err != nil {
		return guus.PublicKey{}, errors.Wrap(err, "node key")
	}
	if key.IsZero() {
		return guus.PublicKey{}, errors.New("null node key")
	}
	return key, nil
}

// ParseRegistration extracts and authenticates a registration. blockTimestamp
// is the timestamp of the block carrying t.
func ParseRegistration(t *tx.Transaction, blockTimestamp uint64) (*Registration, error) {
	extra, err := parseExtra(t)
	if err != nil {
		return nil, err
	}
	var raw tx.FramePixRegister
	if err := extra.Decode(tx.TagFramePixRegister, &raw); err != nil {
		if errors.Is(err, tx.ErrFieldNotFound) {
			return nil, ErrUnrelated
		}
		return nil, err
	}
	key, err := decodeNodeKey(extra)
	if err != nil {
		return nil, err
	}

	n := len(raw.PublicSpendKeys)
	if n == 0 || n != len(raw.PublicViewKeys) || n != len(raw.Portions) {
		return nil, errors.Errorf("registration has %d spend keys, %d view keys and %d portions",
			n, len(raw.PublicViewKeys), len(raw.Portions))
	}
	if n > guus.MaxNumberOfContributors {
		return nil, errors.Errorf("registration has %d contributors, max %d", n, guus.MaxNumberOfContributors)
	}
	if raw.PortionsForOperator > guus.StakingPortions {
		return nil, errors.New("operator portions exceed the total")
	}
	if !guus.CheckPortions(raw.Portions, guus.MinPortions) {
		return nil, errors.New("invalid contributor portions")
	}
	if blockTimestamp > raw.ExpirationTimestamp {
		return nil, errors.Errorf("registration expired at %d", raw.ExpirationTimestamp)
	}
	if raw.ExpirationTimestamp > blockTimestamp+guus.RegistrationAuthorizationWindow {
		return nil, errors.Errorf("registration expiration %d too far ahead", raw.ExpirationTimestamp)
	}

	addresses := make([]guus.Address, n)
	for i := range addresses {
		addresses[i] = guus.Address{Spend: raw.PublicSpendKeys[i], View: raw.PublicViewKeys[i]}
		for j := range i {
			if addresses[j] == addresses[i] {
				return nil, errors.New("duplicate contributor address")
			}
		}
	}

	hash := RegistrationHash(addresses, raw.PortionsForOperator, raw.Portions, raw.ExpirationTimestamp)
	if !guus.VerifySignature(key, hash, raw.Signature) {
		return nil, errors.New("bad registration signature")
	}

	return &Registration{
		Key:                 key,
		Addresses:           addresses,
		Portions:            append([]uint64(nil), raw.Portions...),
		PortionsForOperator: raw.PortionsForOperator,
		ExpirationTimestamp: raw.ExpirationTimestamp,
		Signature:           raw.Signature,
	}, nil
}

// ParseContribution extracts the outputs t pays to a contributor of a node.
// Use Contribution.Stake to validate them against the node version.
func ParseContribution(t *tx.Transaction) (*Contribution, error) {
	extra, err := parseExtra(t)
	if err != nil {
		return nil, err
	}
	var addr guus.Address
	if err := extra.Decode(tx.TagFramePixContributor, &addr); err != nil {
		if errors.Is(err, tx.ErrFieldNotFound) {
			return nil, ErrUnrelated
		}
		return nil, err
	}
	key, err := decodeNodeKey(extra)
	if err != nil {
		return nil, err
	}

	c := &Contribution{Key: key, Address: addr}
	for i, out := range t.Outputs() {
		if out.Recipient != addr {
			continue
		}
		c.Outputs = append(c.Outputs, StakeOutput{
			Key:        out.Key,
			Amount:     out.Amount,
			UnlockTime: t.OutputUnlockTime(i),
		})
	}
	if len(c.Outputs) == 0 {
		return nil, errors.New("contribution pays nothing to the contributor")
	}
	if err := extra.Decode(tx.TagTxKeyImageProofs, &c.Proofs); err != nil && !errors.Is(err, tx.ErrFieldNotFound) {
		return nil, err
	}
	return c, nil
}

// Stake validates the outputs for a node of the given record version and
// returns the staked amount. From VersionInfiniteStaking every output must be
// backed by a key image proof and the proven key images are returned as
// locked contributions; before it, every output must stay locked for at
// least lockBlocks after height.
func (c *Contribution) Stake(height uint64, version uint8, lockBlocks uint64) (uint64, []registry.Contribution, error) {
	var (
		total  uint64
		locked []registry.Contribution
	)
	for i, out := range c.Outputs {
		if total+out.Amount < total {
			return 0, nil, errors.New("contribution amount overflows")
		}
		total += out.Amount

		if version < registry.VersionInfiniteStaking {
			if out.UnlockTime < height+lockBlocks || out.UnlockTime >= guus.MaxBlockNumber {
				return 0, nil, errors.Errorf("output %d unlocks at %d, need [%d, %d)",
					i, out.UnlockTime, height+lockBlocks, guus.MaxBlockNumber)
			}
			continue
		}

		proof, ok := c.findProof(out.Key)
		if !ok {
			return 0, nil, errors.Errorf("output %d has no key image proof", i)
		}
		if !guus.VerifySignature(out.Key, KeyImageProofHash(proof.KeyImage), proof.Signature) {
			return 0, nil, errors.Errorf("bad key image proof for output %d", i)
		}
		locked = append(locked, registry.Contribution{
			Version:        0,
			KeyImagePubKey: out.Key,
			KeyImage:       proof.KeyImage,
			Amount:         out.Amount,
		})
	}
	if total == 0 {
		return 0, nil, errors.New("zero contribution")
	}
	if len(locked) > guus.MaxKeyImagesPerContributor {
		return 0, nil, errors.Errorf("%d key images locked, max %d", len(locked), guus.MaxKeyImagesPerContributor)
	}
	return total, locked, nil
}

func (c *Contribution) findProof(key guus.PublicKey) (tx.KeyImageProof, bool) {
	for _, p := range c.Proofs {
		if p.Key == key {
			return p, true
		}
	}
	return tx.KeyImageProof{}, false
}

// ParseDeregistration extracts the quorum vote set of a deregistration tx.
// The votes are verified against the quorum state by the caller.
func ParseDeregistration(t *tx.Transaction) (*tx.FramePixDeregister, error) {
	if t.Type() != tx.TypeDeregister {
		return nil, ErrUnrelated
	}
	extra, err := parseExtra(t)
	if err != nil {
		return nil, err
	}
	var d tx.FramePixDeregister
	if err := extra.Decode(tx.TagFramePixDeregister, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

// ParseKeyImageUnlock extracts an unlock request. The signature is verified
// by the caller against the key of the locked contribution.
func ParseKeyImageUnlock(t *tx.Transaction) (*Unlock, error) {
	if t.Type() != tx.TypeKeyImageUnlock {
		return nil, ErrUnrelated
	}
	extra, err := parseExtra(t)
	if err != nil {
		return nil, err
	}
	key, err := decodeNodeKey(extra)
	if err != nil {
		return nil, err
	}
	u := &Unlock{Key: key}
	if err := extra.Decode(tx.TagTxKeyImageUnlock, &u.KeyImageUnlock); err != nil {
		return nil, err
	}
	return u, nil
}

// Verify reports whether the unlock is signed by the key of the contribution.
func (u *Unlock) Verify(c *registry.Contribution) bool {
	return c.KeyImage == u.KeyImage &&
		guus.VerifySignature(c.KeyImagePubKey, UnlockHash(u.KeyImage, u.Nonce), u.Signature)
}

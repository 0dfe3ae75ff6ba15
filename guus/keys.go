// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package guus

import (
	"bytes"
	"encoding/hex"
	"fmt"

	"github.com/decred/dcrd/dcrec/secp256k1/v4"
	"github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
	"github.com/pkg/errors"
)

const (
	// PublicKeyLength is the length of a compressed secp256k1 public key.
	PublicKeyLength = 33
	// SignatureLength is the length of a compact recoverable signature.
	SignatureLength = 65
)

// PublicKey identifies a frame_pix node, a contributor key or a one-time output key.
type PublicKey [PublicKeyLength]byte

// NullPublicKey is the all zero key, used when there is no reward winner.
var NullPublicKey = PublicKey{}

// String implements stringer
func (k PublicKey) String() string {
	return hex.EncodeToString(k[:])
}

// AbbrevString returns abbrev string presentation.
func (k PublicKey) AbbrevString() string {
	return fmt.Sprintf("%x…%x", k[:4], k[29:])
}

// Bytes returns byte slice form of PublicKey.
func (k PublicKey) Bytes() []byte {
	return k[:]
}

// IsZero returns if the key has all zero bytes.
func (k PublicKey) IsZero() bool {
	return k == PublicKey{}
}

// Compare orders keys by their byte representation.
func (k PublicKey) Compare(other PublicKey) int {
	return bytes.Compare(k[:], other[:])
}

// ParsePublicKey parses a hex encoded compressed public key.
func ParsePublicKey(s string) (PublicKey, error) {
	var k PublicKey
	if err := decodeFixedHex(s, k[:]); err != nil {
		return PublicKey{}, errors.Wrap(err, "public key")
	}
	if _, err := secp256k1.ParsePubKey(k[:]); err != nil {
		return PublicKey{}, errors.Wrap(err, "public key")
	}
	return k, nil
}

// KeyImage uniquely identifies a spent output.
type KeyImage [32]byte

// String implements stringer
func (ki KeyImage) String() string {
	return hex.EncodeToString(ki[:])
}

// IsZero returns if the key image has all zero bytes.
func (ki KeyImage) IsZero() bool {
	return ki == KeyImage{}
}

// Signature is a compact recoverable secp256k1 signature.
type Signature [SignatureLength]byte

// String implements stringer
func (s Signature) String() string {
	return hex.EncodeToString(s[:])
}

// SecretKey is the raw scalar of a private key.
type SecretKey [32]byte

// GenerateKey creates a fresh key pair.
func GenerateKey() (SecretKey, PublicKey, error) {
	priv, err := secp256k1.GeneratePrivateKey()
	if err != nil {
		return SecretKey{}, PublicKey{}, err
	}
	var sec SecretKey
	copy(sec[:], priv.Serialize())
	return sec, sec.PublicKey(), nil
}

// ParseSecretKey parses a hex encoded secret key.
func ParseSecretKey(s string) (SecretKey, error) {
	var sec SecretKey
	if err := decodeFixedHex(s, sec[:]); err != nil {
		return SecretKey{}, errors.Wrap(err, "secret key")
	}
	return sec, nil
}

// PublicKey derives the compressed public key.
func (s SecretKey) PublicKey() PublicKey {
	var pub PublicKey
	copy(pub[:], secp256k1.PrivKeyFromBytes(s[:]).PubKey().SerializeCompressed())
	return pub
}

// String implements stringer
func (s SecretKey) String() string {
	return hex.EncodeToString(s[:])
}

// Sign signs the hash with the secret key.
func Sign(sec SecretKey, hash Bytes32) Signature {
	var sig Signature
	copy(sig[:], ecdsa.SignCompact(secp256k1.PrivKeyFromBytes(sec[:]), hash[:], true))
	return sig
}

// VerifySignature reports whether sig over hash was produced by pub.
func VerifySignature(pub PublicKey, hash Bytes32, sig Signature) bool {
	recovered, compressed, err := ecdsa.RecoverCompact(sig[:], hash[:])
	if err != nil || !compressed {
		return false
	}
	return bytes.Equal(recovered.SerializeCompressed(), pub[:])
}

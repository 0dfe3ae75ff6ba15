// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package guus

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcutil/base58"
	"github.com/pkg/errors"
)

// Address is a public wallet address: a spend key and a view key.
type Address struct {
	Spend PublicKey
	View  PublicKey
}

// NullAddress receives the whole reward share when no node is eligible.
var NullAddress = Address{}

// IsZero returns if the address is the null address.
func (a Address) IsZero() bool {
	return a == NullAddress
}

// Bytes returns the concatenated spend and view keys.
func (a Address) Bytes() []byte {
	b := make([]byte, 0, PublicKeyLength*2)
	b = append(b, a.Spend[:]...)
	return append(b, a.View[:]...)
}

// String returns the network independent hex form.
func (a Address) String() string {
	return hex.EncodeToString(a.Bytes())
}

// Encode returns the base58check form for the given network.
func (a Address) Encode(net NetworkType) string {
	return base58.CheckEncode(a.Bytes(), net.AddressPrefix())
}

// ParseAddress decodes a base58check address and checks its network prefix.
func ParseAddress(net NetworkType, s string) (Address, error) {
	payload, version, err := base58.CheckDecode(s)
	if err != nil {
		return Address{}, errors.Wrap(err, "decode address")
	}
	if version != net.AddressPrefix() {
		return Address{}, errors.Errorf("address belongs to another network (prefix 0x%02x)", version)
	}
	if len(payload) != PublicKeyLength*2 {
		return Address{}, errors.New("invalid address length")
	}
	var addr Address
	copy(addr.Spend[:], payload[:PublicKeyLength])
	copy(addr.View[:], payload[PublicKeyLength:])
	return addr, nil
}

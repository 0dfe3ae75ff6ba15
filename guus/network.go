// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package guus

import (
	"strings"

	"github.com/pkg/errors"
)

// NetworkType selects address prefixes, staking requirements and lock windows.
type NetworkType uint8

const (
	Mainnet NetworkType = iota
	Testnet
	Stagenet
	Fakechain
)

var networkNames = map[NetworkType]string{
	Mainnet:   "mainnet",
	Testnet:   "testnet",
	Stagenet:  "stagenet",
	Fakechain: "fakechain",
}

func (n NetworkType) String() string {
	if name, ok := networkNames[n]; ok {
		return name
	}
	return "unknown"
}

// ParseNetworkType parses the network name.
func ParseNetworkType(s string) (NetworkType, error) {
	for n, name := range networkNames {
		if strings.EqualFold(name, s) {
			return n, nil
		}
	}
	return 0, errors.Errorf("unknown network %q", s)
}

// AddressPrefix is the base58check version byte of public addresses.
func (n NetworkType) AddressPrefix() byte {
	switch n {
	case Testnet:
		return 0x35
	case Stagenet:
		return 0x18
	case Fakechain:
		return 0x0a
	default:
		return 0x72
	}
}

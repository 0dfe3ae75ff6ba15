// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import "github.com/vechain/guus/guus"

// RandKeyPair generates a key pair, panicking on failure.
func RandKeyPair() (guus.SecretKey, guus.PublicKey) {
	sec, pub, err := guus.GenerateKey()
	if err != nil {
		panic(err)
	}
	return sec, pub
}

func RandPublicKey() guus.PublicKey {
	_, pub := RandKeyPair()
	return pub
}

func RandAddress() guus.Address {
	return guus.Address{Spend: RandPublicKey(), View: RandPublicKey()}
}

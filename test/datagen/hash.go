// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package datagen

import (
	"crypto/rand"

	"github.com/vechain/guus/guus"
)

func RandBytes32() (b guus.Bytes32) {
	rand.Read(b[:])
	return
}

func RandKeyImage() (ki guus.KeyImage) {
	rand.Read(ki[:])
	return
}

// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import (
	"encoding/binary"

	"github.com/vechain/guus/guus"
)

// RegistrationHash is the message signed by the node key to authorize a registration.
func RegistrationHash(addresses []guus.Address, portionsForOperator uint64, portions []uint64, expiration uint64) guus.Bytes32 {
	buf := make([]byte, 0, 8+len(addresses)*(2*33+8)+8)
	buf = binary.LittleEndian.AppendUint64(buf, portionsForOperator)
	for i, addr := range addresses {
		buf = append(buf, addr.Spend[:]...)
		buf = append(buf, addr.View[:]...)
		if i < len(portions) {
			buf = binary.LittleEndian.AppendUint64(buf, portions[i])
		}
	}
	buf = binary.LittleEndian.AppendUint64(buf, expiration)
	return guus.FastHash(buf)
}

// KeyImageProofHash is the message signed by a staked output key to prove
// ownership of its key image.
func KeyImageProofHash(ki guus.KeyImage) guus.Bytes32 {
	return guus.FastHash(ki[:])
}

// UnlockHash is the message signed by a staked output key to request the unlock of its stake.
func UnlockHash(ki guus.KeyImage, nonce uint32) guus.Bytes32 {
	return guus.FastHash(ki[:], binary.LittleEndian.AppendUint32(nil, nonce))
}

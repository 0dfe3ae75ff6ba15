// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package tx

// Builder to make it easy to build transaction.
type Builder struct {
	body body
}

// NewBuilder creates a builder for the tx type.
func NewBuilder(typ Type) *Builder {
	return &Builder{body: body{Version: 2, Type: typ}}
}

// Version sets the format version.
func (b *Builder) Version(v uint8) *Builder {
	b.body.Version = v
	return b
}

// UnlockTime sets the tx wide unlock time.
func (b *Builder) UnlockTime(h uint64) *Builder {
	b.body.UnlockTime = h
	return b
}

// Output adds an output locked until the tx wide unlock time.
func (b *Builder) Output(o Output) *Builder {
	if len(b.body.OutputUnlockTimes) > 0 {
		return b.OutputWithUnlock(o, b.body.UnlockTime)
	}
	b.body.Outputs = append(b.body.Outputs, o)
	return b
}

// OutputWithUnlock adds an output with its own unlock time. Outputs added
// without an explicit unlock time take the tx wide one.
func (b *Builder) OutputWithUnlock(o Output, unlockTime uint64) *Builder {
	for len(b.body.OutputUnlockTimes) < len(b.body.Outputs) {
		b.body.OutputUnlockTimes = append(b.body.OutputUnlockTimes, b.body.UnlockTime)
	}
	b.body.Outputs = append(b.body.Outputs, o)
	b.body.OutputUnlockTimes = append(b.body.OutputUnlockTimes, unlockTime)
	return b
}

// Extra sets the extra field.
func (b *Builder) Extra(e Extra) *Builder {
	b.body.Extra = e.Bytes()
	return b
}

// RawExtra sets the extra field without encoding.
func (b *Builder) RawExtra(raw []byte) *Builder {
	b.body.Extra = append([]byte(nil), raw...)
	return b
}

// Build builds a tx object.
func (b *Builder) Build() *Transaction {
	tx := Transaction{body: b.body}
	tx.body.Outputs = append([]Output(nil), b.body.Outputs...)
	tx.body.OutputUnlockTimes = append([]uint64(nil), b.body.OutputUnlockTimes...)
	tx.body.Extra = append([]byte(nil), b.body.Extra...)
	return &tx
}

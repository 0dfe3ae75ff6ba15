// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package registry

import (
	"io"

	"github.com/ethereum/go-ethereum/rlp"

	"github.com/vechain/guus/guus"
)

// record versions. Each one adds fields to the encoding of a record.
const (
	VersionInitial uint8 = iota
	VersionSwarms
	VersionInfiniteStaking

	CurrentVersion = VersionInfiniteStaking
)

// Contribution is a stake locked by key image.
type Contribution struct {
	Version        uint8
	KeyImagePubKey guus.PublicKey
	KeyImage       guus.KeyImage
	Amount         uint64
	Rest           []rlp.RawValue `rlp:"tail"`
}

// Contributor is one funder of a node.
type Contributor struct {
	Version             uint8
	Amount              uint64
	Reserved            uint64
	Address             guus.Address
	LockedContributions []Contribution // since VersionInfiniteStaking
	Rest                []rlp.RawValue
}

// EncodeRLP implements rlp.Encoder.
func (c *Contributor) EncodeRLP(w io.Writer) error {
	fields := []any{c.Version, c.Amount, c.Reserved, &c.Address}
	if c.Version >= VersionInfiniteStaking {
		locked := c.LockedContributions
		if locked == nil {
			locked = []Contribution{}
		}
		fields = append(fields, locked)
	}
	for _, r := range c.Rest {
		fields = append(fields, r)
	}
	return rlp.Encode(w, fields)
}

// DecodeRLP implements rlp.Decoder.
func (c *Contributor) DecodeRLP(s *rlp.Stream) error {
	if _, err := s.List(); err != nil {
		return err
	}
	var dec Contributor
	if err := decodeFields(s, &dec.Version, &dec.Amount, &dec.Reserved, &dec.Address); err != nil {
		return err
	}
	if dec.Version >= VersionInfiniteStaking {
		if err := s.Decode(&dec.LockedContributions); err != nil {
			return err
		}
		if len(dec.LockedContributions) == 0 {
			dec.LockedContributions = nil
		}
	}
	rest, err := decodeRest(s)
	if err != nil {
		return err
	}
	dec.Rest = rest
	*c = dec
	return nil
}

// Info is the registry record of a node.
type Info struct {
	Version                    uint8
	RegistrationHeight         uint64
	RequestedUnlockHeight      uint64 // 0 while the stake is not unlocking
	LastRewardBlockHeight      uint64
	LastRewardTransactionIndex uint32
	Contributors               []Contributor
	TotalContributed           uint64
	TotalReserved              uint64
	StakingRequirement         uint64
	PortionsForOperator        uint64
	OperatorAddress            guus.Address
	SwarmID                    uint64 // since VersionSwarms
	Rest                       []rlp.RawValue
}

// IsFullyFunded reports whether the stake has reached the requirement.
func (info *Info) IsFullyFunded() bool {
	return info.TotalContributed >= info.StakingRequirement
}

// NumLockedContributions counts the key image locked contributions.
func (info *Info) NumLockedContributions() int {
	var n int
	for _, c := range info.Contributors {
		n += len(c.LockedContributions)
	}
	return n
}

// FindContributor returns the index of the contributor with the address, or -1.
func (info *Info) FindContributor(addr guus.Address) int {
	for i, c := range info.Contributors {
		if c.Address == addr {
			return i
		}
	}
	return -1
}

// FindLockedContribution returns the contribution locked under the key image.
func (info *Info) FindLockedContribution(ki guus.KeyImage) (*Contribution, bool) {
	for i := range info.Contributors {
		for j := range info.Contributors[i].LockedContributions {
			if lc := &info.Contributors[i].LockedContributions[j]; lc.KeyImage == ki {
				cpy := lc.Clone()
				return &cpy, true
			}
		}
	}
	return nil, false
}

// EncodeRLP implements rlp.Encoder.
func (info *Info) EncodeRLP(w io.Writer) error {
	contributors := info.Contributors
	if contributors == nil {
		contributors = []Contributor{}
	}
	fields := []any{
		info.Version,
		info.RegistrationHeight,
		info.RequestedUnlockHeight,
		info.LastRewardBlockHeight,
		info.LastRewardTransactionIndex,
		contributors,
		info.TotalContributed,
		info.TotalReserved,
		info.StakingRequirement,
		info.PortionsForOperator,
		&info.OperatorAddress,
	}
	if info.Version >= VersionSwarms {
		fields = append(fields, info.SwarmID)
	}
	for _, r := range info.Rest {
		fields = append(fields, r)
	}
	return rlp.Encode(w, fields)
}

// DecodeRLP implements rlp.Decoder.
func (info *Info) DecodeRLP(s *rlp.Stream) error {
	if _, err := s.List(); err != nil {
		return err
	}
	var dec Info
	if err := decodeFields(s,
		&dec.Version,
		&dec.RegistrationHeight,
		&dec.RequestedUnlockHeight,
		&dec.LastRewardBlockHeight,
		&dec.LastRewardTransactionIndex,
		&dec.Contributors,
		&dec.TotalContributed,
		&dec.TotalReserved,
		&dec.StakingRequirement,
		&dec.PortionsForOperator,
		&dec.OperatorAddress,
	); err != nil {
		return err
	}
	if len(dec.Contributors) == 0 {
		dec.Contributors = nil
	}
	if dec.Version >= VersionSwarms {
		if err := s.Decode(&dec.SwarmID); err != nil {
			return err
		}
	}
	rest, err := decodeRest(s)
	if err != nil {
		return err
	}
	dec.Rest = rest
	*info = dec
	return nil
}

func decodeFields(s *rlp.Stream, ptrs ...any) error {
	for _, p := range ptrs {
		if err := s.Decode(p); err != nil {
			return err
		}
	}
	return nil
}

// decodeRest collects the fields a newer version appended, then closes the list.
func decodeRest(s *rlp.Stream) ([]rlp.RawValue, error) {
	var rest []rlp.RawValue
	for {
		raw, err := s.Raw()
		if err == rlp.EOL {
			break
		}
		if err != nil {
			return nil, err
		}
		rest = append(rest, raw)
	}
	return rest, s.ListEnd()
}

// Clone returns a deep copy.
func (c Contribution) Clone() Contribution {
	c.Rest = cloneRaw(c.Rest)
	return c
}

// Clone returns a deep copy.
func (c Contributor) Clone() Contributor {
	if c.LockedContributions != nil {
		locked := make([]Contribution, len(c.LockedContributions))
		for i, lc := range c.LockedContributions {
			locked[i] = lc.Clone()
		}
		c.LockedContributions = locked
	}
	c.Rest = cloneRaw(c.Rest)
	return c
}

// Clone returns a deep copy.
func (info *Info) Clone() *Info {
	cpy := *info
	if info.Contributors != nil {
		cpy.Contributors = make([]Contributor, len(info.Contributors))
		for i, c := range info.Contributors {
			cpy.Contributors[i] = c.Clone()
		}
	}
	cpy.Rest = cloneRaw(info.Rest)
	return &cpy
}

// cloneRaw copies src; an empty tail is always nil.
func cloneRaw(src []rlp.RawValue) []rlp.RawValue {
	if len(src) == 0 {
		return nil
	}
	dst := make([]rlp.RawValue, len(src))
	for i, r := range src {
		dst[i] = append(rlp.RawValue(nil), r...)
	}
	return dst
}

// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package stake

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/vechain/guus/guus"
)

const registrationUsage = "usage: <operator portions> <address>=<portions> [<address>=<portions> [...]]"

// RegistrationArgs is the validated content of a registration command.
type RegistrationArgs struct {
	Addresses           []guus.Address
	Portions            []uint64
	PortionsForOperator uint64
}

// ParsePortions parses a raw portion count or a percentage such as "12.5%".
func ParsePortions(s string) (uint64, error) {
	pct, ok := strings.CutSuffix(s, "%")
	if !ok {
		v, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return 0, errors.Errorf("invalid portions %q", s)
		}
		return v, nil
	}

	whole, frac, _ := strings.Cut(pct, ".")
	if (whole == "" && frac == "") || len(frac) > 9 {
		return 0, errors.Errorf("invalid percentage %q", s)
	}
	digits := whole + frac
	num, err := strconv.ParseUint(digits, 10, 64)
	if err != nil {
		return 0, errors.Errorf("invalid percentage %q", s)
	}
	den := uint64(100)
	for range len(frac) {
		den *= 10
	}
	if num > den {
		return 0, errors.Errorf("percentage %q above 100%%", s)
	}
	v, _ := guus.MulDiv(guus.StakingPortions, num, den)
	return v, nil
}

// ConvertRegistrationArgs validates the arguments of a registration command.
// args are the operator portions followed by address=portions items, the
// first address being the operator. It has no side effects.
func ConvertRegistrationArgs(net guus.NetworkType, hf uint8, requirement uint64, args []string) (*RegistrationArgs, error) {
	if len(args) < 2 {
		return nil, errors.New(registrationUsage)
	}
	if requirement == 0 {
		return nil, errors.New("zero staking requirement")
	}
	if len(args)-1 > guus.MaxNumberOfContributors {
		return nil, errors.Errorf("exceeds the maximum number of contributors, which is %d", guus.MaxNumberOfContributors)
	}

	operator, err := ParsePortions(args[0])
	if err != nil {
		return nil, errors.Wrap(err, "operator portions")
	}
	if operator > guus.StakingPortions {
		return nil, errors.Errorf("operator portions must be between 0 and %d", guus.StakingPortions)
	}

	res := &RegistrationArgs{PortionsForOperator: operator}
	for _, arg := range args[1:] {
		addrStr, portionStr, ok := strings.Cut(arg, "=")
		if !ok {
			return nil, errors.New(registrationUsage)
		}
		addr, err := guus.ParseAddress(net, addrStr)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to parse address %q", addrStr)
		}
		for _, prev := range res.Addresses {
			if prev == addr {
				return nil, errors.Errorf("address %q given twice", addrStr)
			}
		}
		portions, err := ParsePortions(portionStr)
		if err != nil {
			return nil, errors.Wrapf(err, "invalid amount for contributor %q", addrStr)
		}
		res.Addresses = append(res.Addresses, addr)
		res.Portions = append(res.Portions, portions)
	}

	// a remainder too small to fund anything goes to the contributor that leaves it
	dust := guus.StakingPortions / requirement * 10
	var (
		left     = guus.StakingPortions
		reserved uint64
		version  = guus.InfoVersion(hf)
	)
	for i, p := range res.Portions {
		if p < left && left-p <= dust {
			p = left
			res.Portions[i] = p
		}
		minPortions := guus.MinNodeContributionInPortions(version, requirement, reserved, i)
		if p < min(minPortions, left) {
			return nil, errors.Errorf("contributor %d portions %d below the minimum %d", i, p, minPortions)
		}
		if p > left {
			return nil, errors.Errorf("contributor portions sum above %d", guus.StakingPortions)
		}
		left -= p
		reserved += guus.PortionsToAmount(p, requirement)
	}
	return res, nil
}

// MakeRegistrationCmd validates args and renders the wallet command that
// registers the node, signed with the node secret key. The registration
// expires one authorization window after now.
func MakeRegistrationCmd(net guus.NetworkType, hf uint8, requirement uint64, args []string, nodeSec guus.SecretKey, now time.Time, friendly bool) (string, error) {
	reg, err := ConvertRegistrationArgs(net, hf, requirement, args)
	if err != nil {
		return "", err
	}
	exp := uint64(now.Unix()) + guus.RegistrationAuthorizationWindow
	sig := SignRegistration(nodeSec, reg.Addresses, reg.PortionsForOperator, reg.Portions, exp)

	var b strings.Builder
	b.WriteString("register_frame_pix ")
	b.WriteString(strconv.FormatUint(reg.PortionsForOperator, 10))
	for i, addr := range reg.Addresses {
		fmt.Fprintf(&b, " %s %d", addr.Encode(net), reg.Portions[i])
	}
	fmt.Fprintf(&b, " %d %s %s", exp, nodeSec.PublicKey(), sig)
	cmd := b.String()

	if !friendly {
		return cmd, nil
	}
	expires := time.Unix(int64(exp), 0).UTC().Format(time.RFC1123)
	return fmt.Sprintf("Run this command in the wallet that will fund this frame_pix node:\n\n%s\n\n"+
		"This registration expires at %s.\nThis should be in %d days.\n"+
		"Please submit your registration into the blockchain before this time or it will be invalid.",
		cmd, expires, guus.RegistrationAuthorizationWindow/(24*60*60)), nil
}

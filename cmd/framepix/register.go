// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"time"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/guus/framepix/stake"
	"github.com/vechain/guus/guus"
)

func keygenAction(ctx *cli.Context) error {
	sec, pub, err := guus.GenerateKey()
	if err != nil {
		return err
	}
	fmt.Printf("secret: %v\npublic: %v\n", sec, pub)
	return nil
}

// registrationRules returns the fork version and staking requirement at --height.
func registrationRules(ctx *cli.Context, cfg guus.NetworkConfig) (uint8, uint64) {
	height := ctx.Uint64(heightFlag.Name)
	return cfg.Forks.HardForkVersion(height), guus.StakingRequirement(cfg.Network, height)
}

func registerAction(ctx *cli.Context) error {
	cfg, err := loadNetworkConfig(ctx)
	if err != nil {
		return err
	}
	sec, err := loadSecretKey(ctx.String(keyFlag.Name))
	if err != nil {
		return err
	}
	hf, requirement := registrationRules(ctx, cfg)
	cmd, err := stake.MakeRegistrationCmd(cfg.Network, hf, requirement, ctx.Args(), sec, time.Now(), ctx.Bool(friendlyFlag.Name))
	if err != nil {
		return err
	}
	logger.Debug("registration prepared", "network", cfg.Network, "hf", hf, "requirement", requirement, "key", sec.PublicKey().AbbrevString())
	fmt.Println(cmd)
	return nil
}

func checkArgsAction(ctx *cli.Context) error {
	cfg, err := loadNetworkConfig(ctx)
	if err != nil {
		return err
	}
	hf, requirement := registrationRules(ctx, cfg)
	reg, err := stake.ConvertRegistrationArgs(cfg.Network, hf, requirement, ctx.Args())
	if err != nil {
		return err
	}
	fmt.Printf("operator cut: %v portions\n", reg.PortionsForOperator)
	for i, addr := range reg.Addresses {
		fmt.Printf("%v: %v portions (%v atomic units)\n",
			addr.Encode(cfg.Network), reg.Portions[i], guus.PortionsToAmount(reg.Portions[i], requirement))
	}
	return nil
}

// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"fmt"
	"path/filepath"

	"github.com/davecgh/go-spew/spew"
	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/guus/framepix"
	"github.com/vechain/guus/lvldb"
)

func inspectAction(ctx *cli.Context) error {
	cfg, err := loadNetworkConfig(ctx)
	if err != nil {
		return err
	}
	dir := filepath.Join(ctx.String(dataDirFlag.Name), cfg.Network.String())
	db, err := lvldb.New(dir, lvldb.Options{})
	if err != nil {
		return errors.Wrapf(err, "open %v", dir)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Warn("failed to close database", "err", err)
		}
	}()

	// no chain: the persisted state is shown as is
	list, err := framepix.New(db, nil, framepix.FromConfig(cfg))
	if err != nil {
		return err
	}
	if err := list.Init(); err != nil {
		return err
	}

	nodes := list.GetRegistrySnapshot()
	fmt.Printf("height:      %v\n", list.Height())
	fmt.Printf("nodes:       %v (%v fully funded)\n", len(nodes), len(list.PublicKeys(true)))
	fmt.Printf("blacklisted: %v\n", len(list.GetBlacklistedKeyImages()))
	winner, payouts, err := list.GetRewardWinner()
	if err != nil {
		return err
	}
	fmt.Printf("next winner: %v\n", winner)
	for _, p := range payouts {
		fmt.Printf("  %v %v\n", p.Address.Encode(cfg.Network), p.Portions)
	}
	if state, ok := list.GetQuorumState(list.Height()); ok {
		fmt.Printf("quorum:      %v members, %v under test\n", len(state.QuorumNodes), len(state.NodesToTest))
	}

	if ctx.Bool(detailedFlag.Name) {
		dumper := spew.ConfigState{Indent: "  ", DisablePointerAddresses: true, DisableCapacities: true}
		for _, n := range nodes {
			fmt.Printf("\n%v\n", n.Key)
			dumper.Dump(n.Info)
		}
		for _, e := range list.GetBlacklistedKeyImages() {
			fmt.Printf("blacklisted %v until %v\n", e.KeyImage, e.UnlockHeight)
		}
	}
	return nil
}

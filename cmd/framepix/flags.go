// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/guus/log"
)

var (
	verbosityFlag = cli.IntFlag{
		Name:  "verbosity",
		Value: log.LegacyLevelInfo,
		Usage: "log verbosity (0-5)",
	}
	jsonLogsFlag = cli.BoolFlag{
		Name:  "json-logs",
		Usage: "output logs in JSON format",
	}
	networkFlag = cli.StringFlag{
		Name:  "network",
		Value: "mainnet",
		Usage: "the network (mainnet|testnet|stagenet|fakechain)",
	}
	configFlag = cli.StringFlag{
		Name:  "config",
		Usage: "path to a yaml network description, overrides --network",
	}
	dataDirFlag = cli.StringFlag{
		Name:  "data-dir",
		Value: defaultDataDir(),
		Usage: "directory of the frame_pix database",
	}
	heightFlag = cli.Uint64Flag{
		Name:  "height",
		Usage: "chain height the registration is made at, selects the fork rules and staking requirement",
	}
	keyFlag = cli.StringFlag{
		Name:  "key",
		Usage: "hex encoded service node secret key, or the path of a file holding it",
	}
	friendlyFlag = cli.BoolFlag{
		Name:  "friendly",
		Usage: "wrap the command in instructions",
	}
	detailedFlag = cli.BoolFlag{
		Name:  "detailed",
		Usage: "dump every node record",
	}
)

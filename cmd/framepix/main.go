// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// framepix is the operator tool of frame_pix service nodes: it prepares
// registration commands and inspects the persisted node list.
package main

import (
	"fmt"
	"os"

	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/guus/log"
)

var (
	version   string
	gitCommit string
	gitTag    string

	logger = log.WithContext("pkg", "framepix-cli")
)

func fullVersion() string {
	versionMeta := "release"
	if gitTag == "" {
		versionMeta = "dev"
	}
	return fmt.Sprintf("%s-%s-%s", version, gitCommit, versionMeta)
}

func main() {
	app := cli.App{
		Version:   fullVersion(),
		Name:      "framepix",
		Usage:     "frame_pix service node tool",
		Copyright: "2025 VeChain Foundation <https://vechain.org/>",
		Flags:     []cli.Flag{verbosityFlag, jsonLogsFlag},
		Before:    initLogger,
		Commands: []cli.Command{
			{
				Name:   "keygen",
				Usage:  "generate a service node key pair",
				Action: keygenAction,
			},
			{
				Name:      "register",
				Usage:     "print the wallet command registering a service node",
				ArgsUsage: "<operator cut> <address> <amount> [<address> <amount>]...",
				Flags:     []cli.Flag{networkFlag, configFlag, heightFlag, keyFlag, friendlyFlag},
				Action:    registerAction,
			},
			{
				Name:      "check-args",
				Usage:     "validate registration arguments without signing",
				ArgsUsage: "<operator cut> <address> <amount> [<address> <amount>]...",
				Flags:     []cli.Flag{networkFlag, configFlag, heightFlag},
				Action:    checkArgsAction,
			},
			{
				Name:   "inspect",
				Usage:  "print the persisted frame_pix state",
				Flags:  []cli.Flag{networkFlag, configFlag, dataDirFlag, detailedFlag},
				Action: inspectAction,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

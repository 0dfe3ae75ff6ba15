// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	cli "gopkg.in/urfave/cli.v1"

	"github.com/vechain/guus/guus"
	"github.com/vechain/guus/log"
)

func initLogger(ctx *cli.Context) error {
	lvl := ctx.GlobalInt(verbosityFlag.Name)
	if lvl < log.LegacyLevelCrit || lvl > log.LegacyLevelTrace {
		return errors.Errorf("invalid verbosity %d", lvl)
	}
	log.SetDefault(log.NewHandler(os.Stderr, lvl, ctx.GlobalBool(jsonLogsFlag.Name)))
	return nil
}

func defaultDataDir() string {
	if home, err := os.UserHomeDir(); err == nil {
		return filepath.Join(home, ".framepix")
	}
	return ".framepix"
}

// loadNetworkConfig resolves the network from --config, falling back to
// the built-in description of --network.
func loadNetworkConfig(ctx *cli.Context) (guus.NetworkConfig, error) {
	if path := ctx.String(configFlag.Name); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return guus.NetworkConfig{}, errors.Wrap(err, "open config")
		}
		defer f.Close()
		cfg, err := guus.LoadConfig(f)
		if err != nil {
			return guus.NetworkConfig{}, errors.Wrapf(err, "load %v", path)
		}
		logger.Debug("network config loaded", "path", path, "network", cfg.Network, "forks", cfg.Forks)
		return cfg, nil
	}
	net, err := guus.ParseNetworkType(ctx.String(networkFlag.Name))
	if err != nil {
		return guus.NetworkConfig{}, err
	}
	return guus.DefaultNetworkConfig(net), nil
}

// loadSecretKey accepts the key itself or a file holding it.
func loadSecretKey(s string) (guus.SecretKey, error) {
	if s == "" {
		return guus.SecretKey{}, errors.New("missing --key")
	}
	if sec, err := guus.ParseSecretKey(s); err == nil {
		return sec, nil
	}
	data, err := os.ReadFile(s)
	if err != nil {
		return guus.SecretKey{}, errors.Wrap(err, "read key file")
	}
	return guus.ParseSecretKey(strings.TrimSpace(string(data)))
}

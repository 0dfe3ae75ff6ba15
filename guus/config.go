// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package guus

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config describes a network. Well-known networks only need a name; custom
// networks may override the fork schedule and parameters.
type Config struct {
	Network string      `yaml:"network"`
	Forks   *ForkConfig `yaml:"forks"`
	Params  *Params     `yaml:"params"`
}

// NetworkConfig is a resolved Config.
type NetworkConfig struct {
	Network NetworkType
	Forks   ForkConfig
	Params  Params
}

// DefaultNetworkConfig returns the built-in configuration of a network.
func DefaultNetworkConfig(net NetworkType) NetworkConfig {
	return NetworkConfig{
		Network: net,
		Forks:   GetForkConfig(net),
		Params:  DefaultParams(net),
	}
}

// LoadConfig reads a yaml network description.
func LoadConfig(r io.Reader) (NetworkConfig, error) {
	var cfg Config
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return NetworkConfig{}, errors.Wrap(err, "decode config")
	}
	net, err := ParseNetworkType(cfg.Network)
	if err != nil {
		return NetworkConfig{}, err
	}
	nc := DefaultNetworkConfig(net)
	if cfg.Forks != nil {
		nc.Forks = *cfg.Forks
	}
	if cfg.Params != nil {
		nc.Params = *cfg.Params
		if err := nc.Params.Validate(); err != nil {
			return NetworkConfig{}, err
		}
	}
	return nc, nil
}

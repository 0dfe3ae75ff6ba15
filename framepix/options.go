// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package framepix

import (
	"github.com/vechain/guus/guus"
)

// Options configures a List.
type Options struct {
	Network guus.NetworkType
	Forks   guus.ForkConfig
	Params  guus.Params

	// ArchiveCacheSize is the number of archived quorum states kept in memory.
	ArchiveCacheSize int

	// OwnKey is the key of the node run by this process, if any. Its
	// registry changes are logged at a level operators see.
	OwnKey guus.PublicKey
}

// DefaultOptions returns the options of a well-known network.
func DefaultOptions(net guus.NetworkType) Options {
	return FromConfig(guus.DefaultNetworkConfig(net))
}

// FromConfig builds options from a resolved network config.
func FromConfig(cfg guus.NetworkConfig) Options {
	return Options{
		Network:          cfg.Network,
		Forks:            cfg.Forks,
		Params:           cfg.Params,
		ArchiveCacheSize: 256,
	}
}

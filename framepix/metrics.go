// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package framepix

import (
	"github.com/vechain/guus/metrics"
)

var (
	metricBlocksProcessed = metrics.LazyLoadCounter("framepix_blocks_processed_count")
	metricBlockRejected   = metrics.LazyLoadCounter("framepix_blocks_rejected_count")
	metricBlocksDetached  = metrics.LazyLoadCounter("framepix_blocks_detached_count")
	metricTxIntents       = metrics.LazyLoadCounterVec("framepix_tx_intents_count", []string{"kind", "result"})
	metricProcessDuration = metrics.LazyLoadHistogram("framepix_block_process_duration_ms", metrics.BucketBlockMs)
	metricRegisteredNodes = metrics.LazyLoadGauge("framepix_registered_nodes")
	metricFundedNodes     = metrics.LazyLoadGauge("framepix_funded_nodes")
	metricBlacklistedKeys = metrics.LazyLoadGauge("framepix_blacklisted_key_images")
	metricRollbackEvents  = metrics.LazyLoadGauge("framepix_rollback_events")
)

func countIntent(kind, result string) {
	metricTxIntents().AddWithLabel(1, map[string]string{"kind": kind, "result": result})
}

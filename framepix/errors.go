// Copyright (c) 2025 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package framepix

import (
	"fmt"

	"github.com/pkg/errors"
)

// ConsensusError rejects a block that breaks a frame_pix rule. The state is
// left as it was before the block.
type ConsensusError struct {
	Height  uint64
	TxIndex int // -1 when the block itself is at fault
	cause   error
}

func consensusErrorf(height uint64, txIndex int, format string, args ...any) *ConsensusError {
	return &ConsensusError{Height: height, TxIndex: txIndex, cause: errors.Errorf(format, args...)}
}

func (e *ConsensusError) Error() string {
	if e.TxIndex < 0 {
		return fmt.Sprintf("framepix: block %d rejected: %v", e.Height, e.cause)
	}
	return fmt.Sprintf("framepix: block %d tx %d rejected: %v", e.Height, e.TxIndex, e.cause)
}

func (e *ConsensusError) Unwrap() error { return e.cause }

// IsConsensusError reports whether the block must be rejected.
func IsConsensusError(err error) bool {
	var ce *ConsensusError
	return errors.As(err, &ce)
}

// FatalError means the state can no longer follow the chain: history needed
// for a rewind was culled, or persisted data is unreadable.
type FatalError struct {
	cause error
}

func (e *FatalError) Error() string {
	return fmt.Sprintf("framepix: fatal: %v", e.cause)
}

func (e *FatalError) Unwrap() error { return e.cause }

func fatal(err error) error {
	if err == nil || IsFatal(err) {
		return err
	}
	return &FatalError{err}
}

// IsFatal reports whether err requires operator intervention.
func IsFatal(err error) bool {
	var fe *FatalError
	return errors.As(err, &fe)
}

package ledger

import "errors"

// ErrAssetLimitExceeded is returned when a projected spend would exceed the
// window limit of a per-asset or global record. A zero limit on a tracked
// asset blocks it entirely.
var ErrAssetLimitExceeded = errors.New("transfer limit exceeded")

/*
Package executor orchestrates transfer authorization for a wallet's limit
module: signature verification, nonce consumption, window-limit accounting,
the asset movement itself and relayer gas-refund settlement.

Each call to ExecuteTransferLimit is one atomic pass through

	Idle -> Verifying -> LimitChecking -> Transferring -> Refunding -> Idle

with no in-flight state surviving between calls. Any failure aborts the pass;
ledger and balance mutations roll back together. The nonce is the one
exception: it is consumed as soon as authorization succeeds, so a digest that
was ever authorized can never be replayed even if its movement failed.

The package also owns the delegate registry. Delegate updates are authorized
by wallet-owner signatures against the wallet's own threshold, never by the
module's signature scheme, so a delegate cannot escalate its own powers.
*/
package executor

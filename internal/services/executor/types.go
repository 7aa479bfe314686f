package executor

import (
	"math/big"

	"vaultguard/internal/models"
)

// SetupRequest is the one-time module initialization payload. Assets and
// Limits match positionally; a zero limit blocks its asset.
type SetupRequest struct {
	WalletAddress      string
	Assets             []string
	Limits             []*big.Int
	PeriodSeconds      int64
	Rolling            bool
	GlobalNativeLimit  *big.Int
	GlobalStableLimit  *big.Int
	SignatureThreshold int
}

// TransferRequest is one executeTransferLimit submission. Nonce must equal
// the module's current nonce and is bound into the signed digest. A gas
// refund is requested by a nonzero GasLimit and GasPrice; RefundAsset
// defaults to the native asset.
type TransferRequest struct {
	WalletAddress string
	Asset         string
	Recipient     string
	Amount        *big.Int
	GasLimit      uint64
	GasPrice      *big.Int
	RefundAsset   string
	Data          []byte
	Nonce         uint64
	Relayer       string
	Signatures    [][]byte
}

// DelegateRequest updates the module delegate. Signatures are wallet-owner
// signatures over the delegate digest bound to the wallet-level nonce.
type DelegateRequest struct {
	WalletAddress string
	Delegate      string
	Nonce         uint64
	Signatures    [][]byte
}

// GlobalSpend reports the global aggregates for the current window.
type GlobalSpend struct {
	NativeSpent models.BigInt `json:"native_spent"`
	NativeLimit models.BigInt `json:"native_limit"`
	StableSpent models.BigInt `json:"stable_spent"`
	StableLimit models.BigInt `json:"stable_limit"`
}

package executor

import "errors"

// Service errors
var (
	ErrInvalidConfiguration = errors.New("invalid module configuration")
	ErrAlreadyInitialized   = errors.New("module already initialized")
	ErrWalletNotFound       = errors.New("wallet not found")
	ErrModuleNotFound       = errors.New("module not initialized")
	ErrModuleDisabled       = errors.New("module not enabled on wallet")
	ErrWalletNonceMismatch  = errors.New("wallet nonce mismatch")
	ErrInvalidAmount        = errors.New("invalid amount")
	ErrTransferFailed       = errors.New("transfer failed")
	ErrRefundFailed         = errors.New("refund failed")
)

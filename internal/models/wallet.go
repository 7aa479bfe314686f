package models

import (
	"time"
)

// NativeAsset is the sentinel identifier for the native currency.
const NativeAsset = "0x0000000000000000000000000000000000000000"

// Wallet is a custodial multi-signature wallet that funds are held for.
// Threshold is the number of owner signatures required for wallet-level
// actions such as delegate updates.
type Wallet struct {
	ID            uint   `gorm:"primarykey"`
	Address       string `gorm:"uniqueIndex;not null"`
	Threshold     int    `gorm:"not null"`
	Nonce         uint64 `gorm:"not null;default:0"`
	ModuleEnabled bool   `gorm:"not null;default:false"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// WalletOwner is one member of a wallet's owner set.
type WalletOwner struct {
	ID        uint   `gorm:"primarykey"`
	WalletID  uint   `gorm:"index;not null"`
	Address   string `gorm:"not null"`
	CreatedAt time.Time
}

// Balance holds the amount of one asset credited to an address. Wallet
// custody and external recipients share the same table.
type Balance struct {
	ID        uint   `gorm:"primarykey"`
	Address   string `gorm:"uniqueIndex:idx_balance_addr_asset;not null"`
	Asset     string `gorm:"uniqueIndex:idx_balance_addr_asset;not null"`
	Amount    BigInt `gorm:"not null"`
	UpdatedAt time.Time
}

package models

import (
	"time"
)

// ModuleConfig is the per-wallet transfer limit module state. One row per
// owning wallet; created once by setup. Delegate and Nonce are the only
// fields mutated after initialization.
type ModuleConfig struct {
	ID                 uint   `gorm:"primarykey"`
	WalletAddress      string `gorm:"uniqueIndex;not null"`
	PeriodSeconds      int64  `gorm:"not null"`
	Rolling            bool   `gorm:"not null;default:false"`
	GlobalNativeLimit  BigInt `gorm:"not null"`
	GlobalStableLimit  BigInt `gorm:"not null"`
	SignatureThreshold int    `gorm:"not null"`
	Delegate           string `gorm:"not null;default:''"`
	Nonce              uint64 `gorm:"not null;default:0"`
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// LimitRecord accumulates spend for one asset (or one of the global
// aggregates) inside the current accounting window.
type LimitRecord struct {
	ID            uint   `gorm:"primarykey"`
	WalletAddress string `gorm:"uniqueIndex:idx_limit_wallet_key;not null"`
	Key           string `gorm:"uniqueIndex:idx_limit_wallet_key;not null"`
	LimitAmount   BigInt `gorm:"not null"`
	SpentAmount   BigInt `gorm:"not null"`
	WindowStart   int64  `gorm:"not null;default:0"`
	UpdatedAt     time.Time
}

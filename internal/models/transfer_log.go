package models

import (
	"time"
)

// TransferLog records one accepted transfer pass, including the relayer
// refund settled out of the same quota.
type TransferLog struct {
	ID            uint   `gorm:"primarykey"`
	Reference     string `gorm:"uniqueIndex;not null"`
	WalletAddress string `gorm:"index;not null"`
	Asset         string `gorm:"not null"`
	Recipient     string `gorm:"not null"`
	Amount        BigInt `gorm:"not null"`
	RefundAsset   string `gorm:"not null;default:''"`
	RefundAmount  BigInt `gorm:"not null"`
	Relayer       string `gorm:"not null;default:''"`
	Nonce         uint64 `gorm:"not null"`
	CreatedAt     time.Time
}

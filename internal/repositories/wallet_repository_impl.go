package repositories

import (
	"context"
	"errors"
	"math/big"

	"vaultguard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type walletRepository struct {
	db *gorm.DB
}

// NewWalletRepository creates a gorm-backed WalletRepository.
func NewWalletRepository(db *gorm.DB) WalletRepository {
	return &walletRepository{db: db}
}

func (r *walletRepository) GetWallet(ctx context.Context, address string) (*models.Wallet, error) {
	var w models.Wallet
	err := r.db.WithContext(ctx).Where("address = ?", address).First(&w).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &w, nil
}

func (r *walletRepository) GetOwners(ctx context.Context, address string) ([]string, error) {
	w, err := r.GetWallet(ctx, address)
	if err != nil || w == nil {
		return nil, err
	}
	var owners []string
	err = r.db.WithContext(ctx).Model(&models.WalletOwner{}).
		Where("wallet_id = ?", w.ID).
		Order("address").
		Pluck("address", &owners).Error
	return owners, err
}

func (r *walletRepository) ConsumeWalletNonce(ctx context.Context, address string, expected uint64) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.Wallet{}).
		Where("address = ? AND nonce = ?", address, expected).
		Update("nonce", gorm.Expr("nonce + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *walletRepository) CreateWallet(ctx context.Context, wallet *models.Wallet, owners []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(wallet).Error; err != nil {
			return err
		}
		for _, addr := range owners {
			if err := tx.Create(&models.WalletOwner{WalletID: wallet.ID, Address: addr}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *walletRepository) SetBalance(ctx context.Context, address, asset string, amount *big.Int) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "address"}, {Name: "asset"}},
		DoUpdates: clause.AssignmentColumns([]string{"amount"}),
	}).Create(&models.Balance{Address: address, Asset: asset, Amount: models.NewBigInt(amount)}).Error
}

func (r *walletRepository) GetBalance(ctx context.Context, address, asset string) (*big.Int, error) {
	var b models.Balance
	err := r.db.WithContext(ctx).Where("address = ? AND asset = ?", address, asset).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return big.NewInt(0), nil
	}
	if err != nil {
		return nil, err
	}
	return b.Amount.Int(), nil
}

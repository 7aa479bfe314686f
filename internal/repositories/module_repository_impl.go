package repositories

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"vaultguard/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type moduleRepository struct {
	db *gorm.DB

	// locking is set on the transaction-scoped view: limit-record reads then
	// take FOR UPDATE row locks, so two execution passes touching the same
	// records serialize instead of both projecting from the same stale spend.
	locking bool
}

// NewModuleRepository creates a gorm-backed ModuleRepository.
func NewModuleRepository(db *gorm.DB) ModuleRepository {
	return &moduleRepository{db: db}
}

func (r *moduleRepository) GetModule(ctx context.Context, wallet string) (*models.ModuleConfig, error) {
	var cfg models.ModuleConfig
	err := r.db.WithContext(ctx).Where("wallet_address = ?", wallet).First(&cfg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (r *moduleRepository) CreateModule(ctx context.Context, cfg *models.ModuleConfig, records []*models.LimitRecord) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(cfg).Error; err != nil {
			return err
		}
		for _, rec := range records {
			if err := tx.Create(rec).Error; err != nil {
				return err
			}
		}
		return nil
	})
	// The wallet_address unique index is the arbiter when two setup calls race
	// past the existence check.
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrAlreadyExists
	}
	return err
}

func (r *moduleRepository) SetDelegate(ctx context.Context, wallet, delegate string) error {
	res := r.db.WithContext(ctx).Model(&models.ModuleConfig{}).
		Where("wallet_address = ?", wallet).
		Update("delegate", delegate)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *moduleRepository) CurrentNonce(ctx context.Context, wallet string) (uint64, error) {
	var cfg models.ModuleConfig
	err := r.db.WithContext(ctx).Select("nonce").Where("wallet_address = ?", wallet).First(&cfg).Error
	if err != nil {
		return 0, err
	}
	return cfg.Nonce, nil
}

// ConsumeNonce increments the nonce only when it currently equals expected.
// The guarded UPDATE makes racing requests resolve to exactly one winner.
func (r *moduleRepository) ConsumeNonce(ctx context.Context, wallet string, expected uint64) (bool, error) {
	res := r.db.WithContext(ctx).Model(&models.ModuleConfig{}).
		Where("wallet_address = ? AND nonce = ?", wallet, expected).
		Update("nonce", gorm.Expr("nonce + 1"))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected == 1, nil
}

func (r *moduleRepository) GetLimitRecord(ctx context.Context, wallet, key string) (*models.LimitRecord, error) {
	q := r.db.WithContext(ctx)
	if r.locking {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var rec models.LimitRecord
	err := q.Where("wallet_address = ? AND key = ?", wallet, key).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *moduleRepository) SaveLimitRecord(ctx context.Context, rec *models.LimitRecord) error {
	if rec.ID != 0 {
		return r.db.WithContext(ctx).Save(rec).Error
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "wallet_address"}, {Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"limit_amount", "spent_amount", "window_start", "updated_at"}),
	}).Create(rec).Error
}

// MoveBalance debits from and credits to inside the surrounding transaction.
// The debit is guarded so an overdraw fails with ErrInsufficientFunds.
func (r *moduleRepository) MoveBalance(ctx context.Context, from, to, asset string, amount *big.Int) error {
	if amount == nil || amount.Sign() == 0 {
		return nil
	}
	amt := amount.String()

	res := r.db.WithContext(ctx).Model(&models.Balance{}).
		Where("address = ? AND asset = ? AND amount >= ?::numeric", from, asset, amt).
		Update("amount", gorm.Expr("amount - ?::numeric", amt))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: %s of %s", ErrInsufficientFunds, amt, asset)
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "address"}, {Name: "asset"}},
		DoUpdates: clause.Assignments(map[string]interface{}{"amount": gorm.Expr("balances.amount + EXCLUDED.amount")}),
	}).Create(&models.Balance{Address: to, Asset: asset, Amount: models.NewBigInt(amount)}).Error
}

func (r *moduleRepository) CreateTransferLog(ctx context.Context, entry *models.TransferLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *moduleRepository) GetTransferLog(ctx context.Context, reference string) (*models.TransferLog, error) {
	var entry models.TransferLog
	err := r.db.WithContext(ctx).Where("reference = ?", reference).First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *moduleRepository) ExecuteInTransaction(ctx context.Context, fn func(tx ModuleTxRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&moduleRepository{db: tx, locking: true})
	})
}

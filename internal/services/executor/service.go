package executor

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"vaultguard/internal/models"
	"vaultguard/internal/repositories"
	"vaultguard/internal/services/ledger"
	"vaultguard/internal/services/signature"

	"github.com/google/uuid"
)

type service struct {
	modules   repositories.ModuleRepository
	wallets   repositories.WalletRepository
	cache     repositories.CacheRepository
	verifier  Verifier
	sequencer NonceSequencer
	ledger    LimitLedger
	meter     GasMeter
	metrics   MetricsCollector
	now       func() time.Time
}

// NewService creates the transfer executor.
func NewService(
	modules repositories.ModuleRepository,
	wallets repositories.WalletRepository,
	cache repositories.CacheRepository,
	verifier Verifier,
	sequencer NonceSequencer,
	limitLedger LimitLedger,
	meter GasMeter,
	metrics MetricsCollector,
) Service {
	if modules == nil {
		panic("module repository is required")
	}
	if wallets == nil {
		panic("wallet repository is required")
	}
	if cache == nil {
		panic("cache is required")
	}
	if verifier == nil {
		panic("verifier is required")
	}
	if sequencer == nil {
		panic("sequencer is required")
	}
	if limitLedger == nil {
		panic("ledger is required")
	}
	if meter == nil {
		meter = StaticGasMeter{Units: DefaultGasUnits}
	}
	if metrics == nil {
		metrics = NoopMetricsCollector{}
	}

	return &service{
		modules:   modules,
		wallets:   wallets,
		cache:     cache,
		verifier:  verifier,
		sequencer: sequencer,
		ledger:    limitLedger,
		meter:     meter,
		metrics:   metrics,
		now:       time.Now,
	}
}

func (s *service) Setup(ctx context.Context, req SetupRequest) (*models.ModuleConfig, error) {
	wallet := normalizeAddress(req.WalletAddress)

	if req.PeriodSeconds < MinPeriodSeconds {
		return nil, fmt.Errorf("%w: accounting window below %ds minimum", ErrInvalidConfiguration, MinPeriodSeconds)
	}
	if len(req.Assets) == 0 || len(req.Assets) != len(req.Limits) {
		return nil, fmt.Errorf("%w: assets and limits must match", ErrInvalidConfiguration)
	}

	w, err := s.wallets.GetWallet(ctx, wallet)
	if err != nil {
		return nil, fmt.Errorf("get wallet: %w", err)
	}
	if w == nil {
		return nil, ErrWalletNotFound
	}
	if !w.ModuleEnabled {
		return nil, ErrModuleDisabled
	}

	owners, err := s.wallets.GetOwners(ctx, wallet)
	if err != nil {
		return nil, fmt.Errorf("get owners: %w", err)
	}
	// The +1 is the delegate slot.
	if req.SignatureThreshold < 1 || req.SignatureThreshold > len(owners)+1 {
		return nil, fmt.Errorf("%w: signature threshold out of range", ErrInvalidConfiguration)
	}

	existing, err := s.modules.GetModule(ctx, wallet)
	if err != nil {
		return nil, fmt.Errorf("get module: %w", err)
	}
	if existing != nil {
		return nil, ErrAlreadyInitialized
	}

	cfg := &models.ModuleConfig{
		WalletAddress:      wallet,
		PeriodSeconds:      req.PeriodSeconds,
		Rolling:            req.Rolling,
		GlobalNativeLimit:  models.NewBigInt(req.GlobalNativeLimit),
		GlobalStableLimit:  models.NewBigInt(req.GlobalStableLimit),
		SignatureThreshold: req.SignatureThreshold,
	}

	seen := make(map[string]struct{}, len(req.Assets))
	records := make([]*models.LimitRecord, 0, len(req.Assets))
	for i, a := range req.Assets {
		asset := normalizeAddress(a)
		if _, dup := seen[asset]; dup {
			return nil, fmt.Errorf("%w: duplicate asset %s", ErrInvalidConfiguration, asset)
		}
		seen[asset] = struct{}{}
		records = append(records, &models.LimitRecord{
			WalletAddress: wallet,
			Key:           asset,
			LimitAmount:   models.NewBigInt(req.Limits[i]),
		})
	}

	if err := s.modules.CreateModule(ctx, cfg, records); err != nil {
		if errors.Is(err, repositories.ErrAlreadyExists) {
			return nil, ErrAlreadyInitialized
		}
		return nil, fmt.Errorf("create module: %w", err)
	}
	return cfg, nil
}

func (s *service) ExecuteTransferLimit(ctx context.Context, req TransferRequest) (*models.TransferLog, error) {
	wallet := normalizeAddress(req.WalletAddress)
	asset := normalizeAddress(req.Asset)
	recipient := normalizeAddress(req.Recipient)
	relayer := normalizeAddress(req.Relayer)

	if req.Amount == nil || req.Amount.Sign() < 0 {
		return nil, ErrInvalidAmount
	}

	cfg, err := s.modules.GetModule(ctx, wallet)
	if err != nil {
		return nil, fmt.Errorf("get module: %w", err)
	}
	if cfg == nil {
		return nil, ErrModuleNotFound
	}
	w, err := s.wallets.GetWallet(ctx, wallet)
	if err != nil {
		return nil, fmt.Errorf("get wallet: %w", err)
	}
	if w == nil {
		return nil, ErrWalletNotFound
	}
	if !w.ModuleEnabled {
		return nil, ErrModuleDisabled
	}

	owners, err := s.wallets.GetOwners(ctx, wallet)
	if err != nil {
		return nil, fmt.Errorf("get owners: %w", err)
	}
	authorized := owners
	if cfg.Delegate != "" {
		authorized = append(authorized, cfg.Delegate)
	}

	st := StateVerifying
	digest := signature.TransferDigest(wallet, asset, recipient, req.Amount,
		req.GasLimit, req.GasPrice, normalizeAddress(req.RefundAsset), req.Data, req.Nonce)
	if err := s.verifier.Verify(digest, req.Signatures, authorized, cfg.SignatureThreshold); err != nil {
		s.metrics.RecordError(st.String(), err.Error())
		return nil, err
	}

	// The nonce is burned on authorization success: even if the movement
	// below fails and rolls back, this digest can never be replayed.
	consumed, err := s.sequencer.Consume(ctx, wallet, req.Nonce)
	if err != nil {
		s.metrics.RecordError(st.String(), err.Error())
		return nil, err
	}

	refundAsset, refundAmount := s.refundFor(req)

	spends := []ledger.Spend{{Asset: asset, Amount: req.Amount}}
	if refundAmount != nil {
		spends = append(spends, ledger.Spend{Asset: refundAsset, Amount: refundAmount})
	}

	var entry *models.TransferLog
	err = s.modules.ExecuteInTransaction(ctx, func(tx repositories.ModuleTxRepository) error {
		st = StateLimitChecking
		if err := s.ledger.CheckAndRecordSpend(ctx, tx, cfg, spends, s.now()); err != nil {
			return err
		}

		st = StateTransferring
		if err := tx.MoveBalance(ctx, wallet, recipient, asset, req.Amount); err != nil {
			return fmt.Errorf("%w: %v", ErrTransferFailed, err)
		}

		if refundAmount != nil {
			st = StateRefunding
			if relayer == "" {
				return fmt.Errorf("%w: no relayer to refund", ErrRefundFailed)
			}
			if err := tx.MoveBalance(ctx, wallet, relayer, refundAsset, refundAmount); err != nil {
				return fmt.Errorf("%w: %v", ErrRefundFailed, err)
			}
		}

		entry = &models.TransferLog{
			Reference:     uuid.NewString(),
			WalletAddress: wallet,
			Asset:         asset,
			Recipient:     recipient,
			Amount:        models.NewBigInt(req.Amount),
			RefundAsset:   refundAsset,
			RefundAmount:  models.NewBigInt(refundAmount),
			Relayer:       relayer,
			Nonce:         consumed,
		}
		return tx.CreateTransferLog(ctx, entry)
	})
	if err != nil {
		s.metrics.RecordError(st.String(), err.Error())
		return nil, err
	}

	s.invalidateCaches(ctx, wallet, asset, refundAsset)
	s.metrics.RecordTransfer(asset, req.Amount)
	if refundAmount != nil {
		s.metrics.RecordRefund(refundAsset, refundAmount)
	}
	return entry, nil
}

// refundFor computes the refund owed to the relayer. Native refunds pay for
// metered gas capped by the supplied limit; non-native refunds are the fixed
// quantity gasLimit * gasPrice in the refund asset.
func (s *service) refundFor(req TransferRequest) (string, *big.Int) {
	if req.GasLimit == 0 || req.GasPrice == nil || req.GasPrice.Sign() <= 0 {
		return "", nil
	}
	refundAsset := normalizeAddress(req.RefundAsset)
	if refundAsset == "" {
		refundAsset = models.NativeAsset
	}
	units := req.GasLimit
	if refundAsset == models.NativeAsset {
		if metered := s.meter.Consumed(); metered < units {
			units = metered
		}
	}
	return refundAsset, new(big.Int).Mul(new(big.Int).SetUint64(units), req.GasPrice)
}

func (s *service) SetDelegate(ctx context.Context, req DelegateRequest) error {
	wallet := normalizeAddress(req.WalletAddress)
	delegate := normalizeAddress(req.Delegate)
	if delegate == models.NativeAsset {
		// Zero address clears the delegate.
		delegate = ""
	}

	w, err := s.wallets.GetWallet(ctx, wallet)
	if err != nil {
		return fmt.Errorf("get wallet: %w", err)
	}
	if w == nil {
		return ErrWalletNotFound
	}
	cfg, err := s.modules.GetModule(ctx, wallet)
	if err != nil {
		return fmt.Errorf("get module: %w", err)
	}
	if cfg == nil {
		return ErrModuleNotFound
	}

	// Wallet-level authorization: owner signatures against the wallet's own
	// threshold. The delegate never co-signs its own appointment.
	owners, err := s.wallets.GetOwners(ctx, wallet)
	if err != nil {
		return fmt.Errorf("get owners: %w", err)
	}
	digest := signature.DelegateDigest(wallet, delegate, req.Nonce)
	if err := s.verifier.Verify(digest, req.Signatures, owners, w.Threshold); err != nil {
		s.metrics.RecordError(StateVerifying.String(), err.Error())
		return err
	}

	ok, err := s.wallets.ConsumeWalletNonce(ctx, wallet, req.Nonce)
	if err != nil {
		return fmt.Errorf("consume wallet nonce: %w", err)
	}
	if !ok {
		return ErrWalletNonceMismatch
	}

	if err := s.modules.SetDelegate(ctx, wallet, delegate); err != nil {
		return fmt.Errorf("set delegate: %w", err)
	}
	s.cache.Delete(ctx, delegateCacheKey(wallet))
	return nil
}

func (s *service) CurrentNonce(ctx context.Context, wallet string) (uint64, error) {
	wallet = normalizeAddress(wallet)
	var cached uint64
	if err := s.cache.Get(ctx, nonceCacheKey(wallet), &cached); err == nil {
		return cached, nil
	}
	n, err := s.sequencer.Current(ctx, wallet)
	if err != nil {
		return 0, err
	}
	s.cache.Set(ctx, nonceCacheKey(wallet), n, cacheDuration)
	return n, nil
}

func (s *service) LimitRecord(ctx context.Context, wallet, asset string) (*models.LimitRecord, error) {
	wallet = normalizeAddress(wallet)
	key := normalizeAddress(asset)
	var cached models.LimitRecord
	if err := s.cache.Get(ctx, limitCacheKey(wallet, key), &cached); err == nil {
		return &cached, nil
	}
	rec, err := s.modules.GetLimitRecord(ctx, wallet, key)
	if err != nil || rec == nil {
		return rec, err
	}
	s.cache.Set(ctx, limitCacheKey(wallet, key), rec, cacheDuration)
	return rec, nil
}

func (s *service) GlobalSpend(ctx context.Context, wallet string) (*GlobalSpend, error) {
	wallet = normalizeAddress(wallet)
	cfg, err := s.modules.GetModule(ctx, wallet)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, ErrModuleNotFound
	}
	out := &GlobalSpend{
		NativeLimit: cfg.GlobalNativeLimit,
		StableLimit: cfg.GlobalStableLimit,
	}
	if rec, err := s.modules.GetLimitRecord(ctx, wallet, ledger.GlobalNativeKey); err != nil {
		return nil, err
	} else if rec != nil {
		out.NativeSpent = rec.SpentAmount
	}
	if rec, err := s.modules.GetLimitRecord(ctx, wallet, ledger.GlobalStableKey); err != nil {
		return nil, err
	} else if rec != nil {
		out.StableSpent = rec.SpentAmount
	}
	return out, nil
}

func (s *service) Delegate(ctx context.Context, wallet string) (string, error) {
	wallet = normalizeAddress(wallet)
	var cached string
	if err := s.cache.Get(ctx, delegateCacheKey(wallet), &cached); err == nil {
		return cached, nil
	}
	cfg, err := s.modules.GetModule(ctx, wallet)
	if err != nil {
		return "", err
	}
	if cfg == nil {
		return "", ErrModuleNotFound
	}
	s.cache.Set(ctx, delegateCacheKey(wallet), cfg.Delegate, cacheDuration)
	return cfg.Delegate, nil
}

// TransferLog resolves one executed transfer by its log reference, scoped to
// the owning wallet.
func (s *service) TransferLog(ctx context.Context, wallet, reference string) (*models.TransferLog, error) {
	wallet = normalizeAddress(wallet)
	entry, err := s.modules.GetTransferLog(ctx, reference)
	if err != nil {
		return nil, err
	}
	if entry == nil || entry.WalletAddress != wallet {
		return nil, nil
	}
	return entry, nil
}

func (s *service) invalidateCaches(ctx context.Context, wallet string, assets ...string) {
	keys := []string{nonceCacheKey(wallet)}
	for _, a := range assets {
		if a != "" {
			keys = append(keys, limitCacheKey(wallet, a))
		}
	}
	keys = append(keys,
		limitCacheKey(wallet, ledger.GlobalNativeKey),
		limitCacheKey(wallet, ledger.GlobalStableKey),
	)
	s.cache.Delete(ctx, keys...)
}

func normalizeAddress(a string) string {
	return strings.ToLower(strings.TrimSpace(a))
}

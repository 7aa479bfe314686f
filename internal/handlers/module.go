package handlers

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"vaultguard/internal/middleware"
	"vaultguard/internal/services/executor"
	"vaultguard/internal/services/ledger"
	"vaultguard/internal/services/nonce"
	"vaultguard/internal/services/oracle"
	"vaultguard/internal/services/signature"
	"vaultguard/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// ModuleHandler exposes the transfer limit module endpoints.
type ModuleHandler struct {
	service executor.Service
}

// NewModuleHandler creates a new ModuleHandler.
func NewModuleHandler(s executor.Service) *ModuleHandler { return &ModuleHandler{service: s} }

// Setup handles POST /api/module/:wallet/setup.
func (h *ModuleHandler) Setup(c *fiber.Ctx) error {
	var req struct {
		Assets             []string `json:"assets"`
		Limits             []string `json:"limits"`
		PeriodSeconds      int64    `json:"period_seconds"`
		Rolling            bool     `json:"rolling"`
		GlobalNativeLimit  string   `json:"global_native_limit"`
		GlobalStableLimit  string   `json:"global_stable_limit"`
		SignatureThreshold int      `json:"signature_threshold"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	limits, err := parseBigSlice(req.Limits)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	globalNative, err := parseBig(req.GlobalNativeLimit)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	globalStable, err := parseBig(req.GlobalStableLimit)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	cfg, err := h.service.Setup(c.Context(), executor.SetupRequest{
		WalletAddress:      c.Params("wallet"),
		Assets:             req.Assets,
		Limits:             limits,
		PeriodSeconds:      req.PeriodSeconds,
		Rolling:            req.Rolling,
		GlobalNativeLimit:  globalNative,
		GlobalStableLimit:  globalStable,
		SignatureThreshold: req.SignatureThreshold,
	})
	if err != nil {
		return moduleError(c, err)
	}
	return response.Success(c, "module initialized", cfg)
}

// Execute handles POST /api/module/:wallet/execute.
func (h *ModuleHandler) Execute(c *fiber.Ctx) error {
	relayer, _ := c.Locals(middleware.RelayerLocalKey).(string)

	var req struct {
		Asset       string   `json:"asset"`
		Recipient   string   `json:"recipient"`
		Amount      string   `json:"amount"`
		GasLimit    uint64   `json:"gas_limit"`
		GasPrice    string   `json:"gas_price"`
		RefundAsset string   `json:"refund_asset"`
		Data        string   `json:"data"`
		Nonce       uint64   `json:"nonce"`
		Signatures  []string `json:"signatures"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	amount, err := parseBig(req.Amount)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	gasPrice, err := parseBig(req.GasPrice)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	sigs, err := decodeSignatures(req.Signatures)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	data, err := decodeHex(req.Data)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	entry, err := h.service.ExecuteTransferLimit(c.Context(), executor.TransferRequest{
		WalletAddress: c.Params("wallet"),
		Asset:         req.Asset,
		Recipient:     req.Recipient,
		Amount:        amount,
		GasLimit:      req.GasLimit,
		GasPrice:      gasPrice,
		RefundAsset:   req.RefundAsset,
		Data:          data,
		Nonce:         req.Nonce,
		Relayer:       relayer,
		Signatures:    sigs,
	})
	if err != nil {
		return moduleError(c, err)
	}
	return response.Success(c, "transfer executed", entry)
}

// SetDelegate handles POST /api/module/:wallet/delegate.
func (h *ModuleHandler) SetDelegate(c *fiber.Ctx) error {
	var req struct {
		Delegate   string   `json:"delegate"`
		Nonce      uint64   `json:"nonce"`
		Signatures []string `json:"signatures"`
	}
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}
	sigs, err := decodeSignatures(req.Signatures)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	if err := h.service.SetDelegate(c.Context(), executor.DelegateRequest{
		WalletAddress: c.Params("wallet"),
		Delegate:      req.Delegate,
		Nonce:         req.Nonce,
		Signatures:    sigs,
	}); err != nil {
		return moduleError(c, err)
	}
	return response.Success(c, "delegate updated", nil)
}

// Nonce handles GET /api/module/:wallet/nonce.
func (h *ModuleHandler) Nonce(c *fiber.Ctx) error {
	n, err := h.service.CurrentNonce(c.Context(), c.Params("wallet"))
	if err != nil {
		return moduleError(c, err)
	}
	return response.Success(c, "current nonce", fiber.Map{"nonce": n})
}

// Limit handles GET /api/module/:wallet/limits/:asset.
func (h *ModuleHandler) Limit(c *fiber.Ctx) error {
	rec, err := h.service.LimitRecord(c.Context(), c.Params("wallet"), c.Params("asset"))
	if err != nil {
		return moduleError(c, err)
	}
	if rec == nil {
		return response.NotFound(c, "asset not tracked")
	}
	return response.Success(c, "limit record", rec)
}

// GlobalSpend handles GET /api/module/:wallet/spent.
func (h *ModuleHandler) GlobalSpend(c *fiber.Ctx) error {
	spend, err := h.service.GlobalSpend(c.Context(), c.Params("wallet"))
	if err != nil {
		return moduleError(c, err)
	}
	return response.Success(c, "global spend", spend)
}

// TransferLog handles GET /api/module/:wallet/transfers/:reference.
func (h *ModuleHandler) TransferLog(c *fiber.Ctx) error {
	entry, err := h.service.TransferLog(c.Context(), c.Params("wallet"), c.Params("reference"))
	if err != nil {
		return moduleError(c, err)
	}
	if entry == nil {
		return response.NotFound(c, "transfer not found")
	}
	return response.Success(c, "transfer log", entry)
}

// Delegate handles GET /api/module/:wallet/delegate.
func (h *ModuleHandler) Delegate(c *fiber.Ctx) error {
	delegate, err := h.service.Delegate(c.Context(), c.Params("wallet"))
	if err != nil {
		return moduleError(c, err)
	}
	return response.Success(c, "delegate", fiber.Map{"delegate": delegate})
}

// moduleError maps service failures to distinguishable HTTP responses so a
// relayer can decide whether to retry or abandon.
func moduleError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, executor.ErrInvalidConfiguration),
		errors.Is(err, executor.ErrInvalidAmount),
		errors.Is(err, signature.ErrMalformedSignature),
		errors.Is(err, signature.ErrInvalidSignatureOrder):
		return response.Error(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, signature.ErrInvalidSignature),
		errors.Is(err, signature.ErrUnauthorizedSigner),
		errors.Is(err, signature.ErrThresholdNotMet),
		errors.Is(err, executor.ErrModuleDisabled):
		return response.Error(c, fiber.StatusForbidden, err.Error())
	case errors.Is(err, nonce.ErrNonceMismatch),
		errors.Is(err, executor.ErrWalletNonceMismatch),
		errors.Is(err, executor.ErrAlreadyInitialized):
		return response.Error(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, ledger.ErrAssetLimitExceeded),
		errors.Is(err, executor.ErrTransferFailed),
		errors.Is(err, executor.ErrRefundFailed):
		return response.Error(c, fiber.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, oracle.ErrPriceUnavailable):
		return response.Error(c, fiber.StatusServiceUnavailable, err.Error())
	case errors.Is(err, executor.ErrModuleNotFound),
		errors.Is(err, executor.ErrWalletNotFound):
		return response.NotFound(c, err.Error())
	default:
		return response.ServerError(c, err.Error())
	}
}

func parseBig(s string) (*big.Int, error) {
	if s == "" {
		return nil, nil
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("invalid amount %q", s)
	}
	return n, nil
}

func parseBigSlice(vals []string) ([]*big.Int, error) {
	out := make([]*big.Int, len(vals))
	for i, v := range vals {
		n, err := parseBig(v)
		if err != nil {
			return nil, err
		}
		out[i] = n
	}
	return out, nil
}

func decodeSignatures(sigs []string) ([][]byte, error) {
	out := make([][]byte, len(sigs))
	for i, s := range sigs {
		b, err := decodeHex(s)
		if err != nil {
			return nil, fmt.Errorf("signature %d: %w", i, err)
		}
		out[i] = b
	}
	return out, nil
}

func decodeHex(s string) ([]byte, error) {
	if s == "" {
		return nil, nil
	}
	return hex.DecodeString(strings.TrimPrefix(s, "0x"))
}

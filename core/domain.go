package core

import (
	"errors"
	"strings"
	"time"

	"github.com/holiman/uint256"
)

var (
	ErrUnauthorized         = errors.New("core: caller is not authorized")
	ErrVaultPaused          = errors.New("core: vault is paused")
	ErrTokenNotWhitelisted  = errors.New("core: token is not whitelisted")
	ErrInsufficientBalance  = errors.New("core: insufficient ledger balance")
	ErrTransferFailed       = errors.New("core: token transfer failed")
	ErrBalanceOverflow      = errors.New("core: ledger balance overflow")
	ErrTokenNotRegistered   = errors.New("core: token is not registered")
	ErrOwnerRequired        = errors.New("core: vault owner is required")
	ErrAmountRequired       = errors.New("core: amount is required")
	ErrIdentityRequired     = errors.New("core: identity is required")
	ErrTokenIDRequired      = errors.New("core: token id is required")
)

// LedgerEntry is the tracked balance for one (token, holder) pair.
type LedgerEntry struct {
	TokenID   string
	Holder    string
	Amount    *uint256.Int
	UpdatedAt time.Time
}

func (e LedgerEntry) Clone() LedgerEntry {
	out := e
	if e.Amount != nil {
		out.Amount = new(uint256.Int).Set(e.Amount)
	}
	return out
}

type DepositRequest struct {
	TokenID  string
	Caller   string
	Amount   *uint256.Int
	Metadata map[string]any
}

func (r DepositRequest) Validate() error {
	return validateTransferRequest(r.TokenID, r.Caller, r.Amount)
}

type WithdrawRequest struct {
	TokenID  string
	Caller   string
	Amount   *uint256.Int
	Metadata map[string]any
}

func (r WithdrawRequest) Validate() error {
	return validateTransferRequest(r.TokenID, r.Caller, r.Amount)
}

func validateTransferRequest(tokenID string, caller string, amount *uint256.Int) error {
	if strings.TrimSpace(tokenID) == "" {
		return ErrTokenIDRequired
	}
	if strings.TrimSpace(caller) == "" {
		return ErrIdentityRequired
	}
	if amount == nil {
		return ErrAmountRequired
	}
	return nil
}

func copyAnyMap(in map[string]any) map[string]any {
	if len(in) == 0 {
		return map[string]any{}
	}
	out := make(map[string]any, len(in))
	for key, value := range in {
		out[key] = value
	}
	return out
}

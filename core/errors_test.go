package core

import (
	stderrors "errors"
	"net/http"
	"testing"

	goerrors "github.com/goliatone/go-errors"
)

func TestVaultErrorMapper_AssignsStableCodes(t *testing.T) {
	cases := []struct {
		name     string
		err      error
		category goerrors.Category
		textCode string
	}{
		{"unauthorized", ErrUnauthorized, goerrors.CategoryAuthz, VaultErrorUnauthorized},
		{"paused", ErrVaultPaused, goerrors.CategoryConflict, VaultErrorPaused},
		{"not_whitelisted", ErrTokenNotWhitelisted, goerrors.CategoryOperation, VaultErrorTokenNotWhitelisted},
		{"insufficient", ErrInsufficientBalance, goerrors.CategoryConflict, VaultErrorInsufficientBalance},
		{"transfer_failed", ErrTransferFailed, goerrors.CategoryExternal, VaultErrorTransferFailed},
		{"overflow", ErrBalanceOverflow, goerrors.CategoryOperation, VaultErrorOverflow},
		{"not_registered", ErrTokenNotRegistered, goerrors.CategoryNotFound, VaultErrorTokenNotRegistered},
		{"bad_input", ErrAmountRequired, goerrors.CategoryBadInput, VaultErrorBadInput},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			mapped := vaultErrorMapper(tc.err)
			if mapped == nil {
				t.Fatalf("expected mapped error")
			}
			if mapped.Category != tc.category {
				t.Fatalf("expected category %q, got %q", tc.category, mapped.Category)
			}
			if mapped.TextCode != tc.textCode {
				t.Fatalf("expected text code %q, got %q", tc.textCode, mapped.TextCode)
			}
			if mapped.Code == 0 {
				t.Fatalf("expected http status code on mapped error")
			}
		})
	}
}

func TestVaultErrorMapper_PreservesRichErrors(t *testing.T) {
	original := goerrors.New("token rejected the pull", goerrors.CategoryExternal).
		WithTextCode(VaultErrorTransferFailed)
	mapped := vaultErrorMapper(original)
	if mapped.TextCode != VaultErrorTransferFailed {
		t.Fatalf("expected original text code kept, got %q", mapped.TextCode)
	}
	if mapped.Code != http.StatusBadGateway {
		t.Fatalf("expected bad gateway status, got %d", mapped.Code)
	}
}

func TestVaultErrorMapper_WrappedSentinelStillMatches(t *testing.T) {
	wrapped := stderrors.Join(ErrInsufficientBalance)
	mapped := vaultErrorMapper(wrapped)
	if mapped.TextCode != VaultErrorInsufficientBalance {
		t.Fatalf("expected insufficient balance code, got %q", mapped.TextCode)
	}
}

func TestVaultErrorMapper_FallsBackToInternal(t *testing.T) {
	mapped := vaultErrorMapper(stderrors.New("something odd happened"))
	if mapped == nil {
		t.Fatalf("expected mapped error")
	}
	if mapped.Code == 0 {
		t.Fatalf("expected http status code on fallback error")
	}
	if mapped.TextCode == "" {
		t.Fatalf("expected text code on fallback error")
	}
}

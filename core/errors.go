package core

import (
	"errors"
	"net/http"
	"strings"

	goerrors "github.com/goliatone/go-errors"
)

const (
	VaultErrorBadInput            = "VAULT_BAD_INPUT"
	VaultErrorUnauthorized        = "VAULT_UNAUTHORIZED"
	VaultErrorPaused              = "VAULT_PAUSED"
	VaultErrorTokenNotWhitelisted = "VAULT_TOKEN_NOT_WHITELISTED"
	VaultErrorInsufficientBalance = "VAULT_INSUFFICIENT_BALANCE"
	VaultErrorTransferFailed      = "VAULT_TRANSFER_FAILED"
	VaultErrorOverflow            = "VAULT_OVERFLOW"
	VaultErrorTokenNotRegistered  = "VAULT_TOKEN_NOT_REGISTERED"
	VaultErrorInternal            = "VAULT_INTERNAL_ERROR"
)

func vaultErrorMapper(err error) *goerrors.Error {
	if err == nil {
		return nil
	}

	var richErr *goerrors.Error
	if goerrors.As(err, &richErr) {
		return ensureVaultErrorEnvelope(richErr)
	}

	switch {
	case errors.Is(err, ErrUnauthorized):
		return newVaultError(err.Error(), goerrors.CategoryAuthz, VaultErrorUnauthorized)
	case errors.Is(err, ErrVaultPaused):
		return newVaultError(err.Error(), goerrors.CategoryConflict, VaultErrorPaused)
	case errors.Is(err, ErrTokenNotWhitelisted):
		return newVaultError(err.Error(), goerrors.CategoryOperation, VaultErrorTokenNotWhitelisted)
	case errors.Is(err, ErrInsufficientBalance):
		return newVaultError(err.Error(), goerrors.CategoryConflict, VaultErrorInsufficientBalance)
	case errors.Is(err, ErrTransferFailed):
		return newVaultError(err.Error(), goerrors.CategoryExternal, VaultErrorTransferFailed)
	case errors.Is(err, ErrBalanceOverflow):
		return newVaultError(err.Error(), goerrors.CategoryOperation, VaultErrorOverflow)
	case errors.Is(err, ErrTokenNotRegistered):
		return newVaultError(err.Error(), goerrors.CategoryNotFound, VaultErrorTokenNotRegistered)
	case errors.Is(err, ErrAmountRequired),
		errors.Is(err, ErrIdentityRequired),
		errors.Is(err, ErrTokenIDRequired),
		errors.Is(err, ErrOwnerRequired):
		return newVaultError(err.Error(), goerrors.CategoryBadInput, VaultErrorBadInput)
	}

	msg := strings.ToLower(strings.TrimSpace(err.Error()))
	switch {
	case strings.Contains(msg, "required"), strings.Contains(msg, "invalid"):
		return newVaultError(err.Error(), goerrors.CategoryBadInput, VaultErrorBadInput)
	}

	mapped := goerrors.MapToError(err, goerrors.DefaultErrorMappers())
	return ensureVaultErrorEnvelope(mapped)
}

func newVaultError(message string, category goerrors.Category, textCode string) *goerrors.Error {
	return ensureVaultErrorEnvelope(
		goerrors.New(message, category).
			WithTextCode(textCode),
	)
}

func ensureVaultErrorEnvelope(err *goerrors.Error) *goerrors.Error {
	if err == nil {
		return nil
	}
	if err.Code == 0 {
		err.Code = vaultHTTPStatus(err.Category)
	}
	if strings.TrimSpace(err.TextCode) == "" {
		err.TextCode = defaultVaultTextCode(err.Category)
	}
	if err.Category == goerrors.CategoryInternal && strings.TrimSpace(err.Message) == "" {
		err.Message = "An unexpected error occurred"
	}
	return err
}

func defaultVaultTextCode(category goerrors.Category) string {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return VaultErrorBadInput
	case goerrors.CategoryAuth, goerrors.CategoryAuthz:
		return VaultErrorUnauthorized
	case goerrors.CategoryNotFound:
		return VaultErrorTokenNotRegistered
	case goerrors.CategoryConflict:
		return VaultErrorPaused
	case goerrors.CategoryExternal:
		return VaultErrorTransferFailed
	case goerrors.CategoryOperation:
		return VaultErrorTokenNotWhitelisted
	default:
		return VaultErrorInternal
	}
}

func vaultHTTPStatus(category goerrors.Category) int {
	switch category {
	case goerrors.CategoryBadInput, goerrors.CategoryValidation:
		return http.StatusBadRequest
	case goerrors.CategoryNotFound:
		return http.StatusNotFound
	case goerrors.CategoryAuth:
		return http.StatusUnauthorized
	case goerrors.CategoryAuthz:
		return http.StatusForbidden
	case goerrors.CategoryConflict:
		return http.StatusConflict
	case goerrors.CategoryExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

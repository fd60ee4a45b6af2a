package query

import (
	"net/http"

	goerrors "github.com/goliatone/go-errors"
	"github.com/light-fury/tsunami-vault/core"
)

func queryDependencyError(message string) error {
	return goerrors.New(message, goerrors.CategoryInternal).
		WithCode(http.StatusInternalServerError).
		WithTextCode(core.VaultErrorInternal)
}

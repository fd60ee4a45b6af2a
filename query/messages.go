package query

import (
	"fmt"
	"strings"

	"github.com/light-fury/tsunami-vault/core"
)

const (
	TypeBalance           = "vault.query.balance"
	TypeBalances          = "vault.query.balances"
	TypeTokenTotal        = "vault.query.token_total"
	TypeWhitelistStatus   = "vault.query.whitelist.status"
	TypeWhitelistedTokens = "vault.query.whitelist.list"
	TypePaused            = "vault.query.paused"
	TypeRoleStatus        = "vault.query.role.status"
	TypeAdminRoster       = "vault.query.role.roster"
	TypeEvents            = "vault.query.events"
)

type BalanceMessage struct {
	TokenID string
	Holder  string
}

func (BalanceMessage) Type() string { return TypeBalance }

func (m BalanceMessage) Validate() error {
	if strings.TrimSpace(m.TokenID) == "" {
		return fmt.Errorf("query: token id is required")
	}
	if strings.TrimSpace(m.Holder) == "" {
		return fmt.Errorf("query: holder is required")
	}
	return nil
}

// BalancesMessage lists ledger entries; an empty TokenID spans every token.
type BalancesMessage struct {
	TokenID string
}

func (BalancesMessage) Type() string { return TypeBalances }

func (BalancesMessage) Validate() error { return nil }

type TokenTotalMessage struct {
	TokenID string
}

func (TokenTotalMessage) Type() string { return TypeTokenTotal }

func (m TokenTotalMessage) Validate() error {
	if strings.TrimSpace(m.TokenID) == "" {
		return fmt.Errorf("query: token id is required")
	}
	return nil
}

type WhitelistStatusMessage struct {
	TokenID string
}

func (WhitelistStatusMessage) Type() string { return TypeWhitelistStatus }

func (m WhitelistStatusMessage) Validate() error {
	if strings.TrimSpace(m.TokenID) == "" {
		return fmt.Errorf("query: token id is required")
	}
	return nil
}

type WhitelistedTokensMessage struct{}

func (WhitelistedTokensMessage) Type() string { return TypeWhitelistedTokens }

func (WhitelistedTokensMessage) Validate() error { return nil }

type PausedMessage struct{}

func (PausedMessage) Type() string { return TypePaused }

func (PausedMessage) Validate() error { return nil }

type RoleStatusMessage struct {
	Identity string
}

func (RoleStatusMessage) Type() string { return TypeRoleStatus }

func (m RoleStatusMessage) Validate() error {
	if strings.TrimSpace(m.Identity) == "" {
		return fmt.Errorf("query: identity is required")
	}
	return nil
}

type AdminRosterMessage struct{}

func (AdminRosterMessage) Type() string { return TypeAdminRoster }

func (AdminRosterMessage) Validate() error { return nil }

type EventsMessage struct {
	Filter core.EventFilter
}

func (EventsMessage) Type() string { return TypeEvents }

func (m EventsMessage) Validate() error {
	if m.Filter.Limit < 0 {
		return fmt.Errorf("query: limit must not be negative")
	}
	return nil
}

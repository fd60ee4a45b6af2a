package query

import (
	"context"

	"github.com/holiman/uint256"
	"github.com/light-fury/tsunami-vault/core"
)

type BalanceReader interface {
	Balance(ctx context.Context, tokenID string, holder string) *uint256.Int
	Balances(ctx context.Context, tokenID string) []core.LedgerEntry
	TokenTotal(ctx context.Context, tokenID string) *uint256.Int
}

type ControlReader interface {
	IsWhitelisted(ctx context.Context, tokenID string) bool
	WhitelistedTokens(ctx context.Context) []string
	Paused(ctx context.Context) bool
	IsAdmin(ctx context.Context, identity string) bool
	IsOwner(ctx context.Context, identity string) bool
	Owner(ctx context.Context) string
	Admins(ctx context.Context) []string
}

type EventReader interface {
	Events(ctx context.Context, filter core.EventFilter) ([]core.VaultEvent, error)
}

// RoleStatus describes the authority an identity carries on the vault.
type RoleStatus struct {
	Identity string
	IsOwner  bool
	IsAdmin  bool
}

type AdminRoster struct {
	Owner  string
	Admins []string
}

type BalanceQuery struct {
	reader BalanceReader
}

func NewBalanceQuery(reader BalanceReader) *BalanceQuery {
	return &BalanceQuery{reader: reader}
}

func (q *BalanceQuery) Query(ctx context.Context, msg BalanceMessage) (*uint256.Int, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: balance reader is required")
	}
	return q.reader.Balance(ctx, msg.TokenID, msg.Holder), nil
}

type BalancesQuery struct {
	reader BalanceReader
}

func NewBalancesQuery(reader BalanceReader) *BalancesQuery {
	return &BalancesQuery{reader: reader}
}

func (q *BalancesQuery) Query(ctx context.Context, msg BalancesMessage) ([]core.LedgerEntry, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: balance reader is required")
	}
	return q.reader.Balances(ctx, msg.TokenID), nil
}

type TokenTotalQuery struct {
	reader BalanceReader
}

func NewTokenTotalQuery(reader BalanceReader) *TokenTotalQuery {
	return &TokenTotalQuery{reader: reader}
}

func (q *TokenTotalQuery) Query(ctx context.Context, msg TokenTotalMessage) (*uint256.Int, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: balance reader is required")
	}
	return q.reader.TokenTotal(ctx, msg.TokenID), nil
}

type WhitelistStatusQuery struct {
	reader ControlReader
}

func NewWhitelistStatusQuery(reader ControlReader) *WhitelistStatusQuery {
	return &WhitelistStatusQuery{reader: reader}
}

func (q *WhitelistStatusQuery) Query(ctx context.Context, msg WhitelistStatusMessage) (bool, error) {
	if q == nil || q.reader == nil {
		return false, queryDependencyError("query: control reader is required")
	}
	return q.reader.IsWhitelisted(ctx, msg.TokenID), nil
}

type WhitelistedTokensQuery struct {
	reader ControlReader
}

func NewWhitelistedTokensQuery(reader ControlReader) *WhitelistedTokensQuery {
	return &WhitelistedTokensQuery{reader: reader}
}

func (q *WhitelistedTokensQuery) Query(ctx context.Context, _ WhitelistedTokensMessage) ([]string, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: control reader is required")
	}
	return q.reader.WhitelistedTokens(ctx), nil
}

type PausedQuery struct {
	reader ControlReader
}

func NewPausedQuery(reader ControlReader) *PausedQuery {
	return &PausedQuery{reader: reader}
}

func (q *PausedQuery) Query(ctx context.Context, _ PausedMessage) (bool, error) {
	if q == nil || q.reader == nil {
		return false, queryDependencyError("query: control reader is required")
	}
	return q.reader.Paused(ctx), nil
}

type RoleStatusQuery struct {
	reader ControlReader
}

func NewRoleStatusQuery(reader ControlReader) *RoleStatusQuery {
	return &RoleStatusQuery{reader: reader}
}

func (q *RoleStatusQuery) Query(ctx context.Context, msg RoleStatusMessage) (RoleStatus, error) {
	if q == nil || q.reader == nil {
		return RoleStatus{}, queryDependencyError("query: control reader is required")
	}
	return RoleStatus{
		Identity: msg.Identity,
		IsOwner:  q.reader.IsOwner(ctx, msg.Identity),
		IsAdmin:  q.reader.IsAdmin(ctx, msg.Identity),
	}, nil
}

type AdminRosterQuery struct {
	reader ControlReader
}

func NewAdminRosterQuery(reader ControlReader) *AdminRosterQuery {
	return &AdminRosterQuery{reader: reader}
}

func (q *AdminRosterQuery) Query(ctx context.Context, _ AdminRosterMessage) (AdminRoster, error) {
	if q == nil || q.reader == nil {
		return AdminRoster{}, queryDependencyError("query: control reader is required")
	}
	return AdminRoster{
		Owner:  q.reader.Owner(ctx),
		Admins: q.reader.Admins(ctx),
	}, nil
}

type EventsQuery struct {
	reader EventReader
}

func NewEventsQuery(reader EventReader) *EventsQuery {
	return &EventsQuery{reader: reader}
}

func (q *EventsQuery) Query(ctx context.Context, msg EventsMessage) ([]core.VaultEvent, error) {
	if q == nil || q.reader == nil {
		return nil, queryDependencyError("query: event reader is required")
	}
	return q.reader.Events(ctx, msg.Filter)
}

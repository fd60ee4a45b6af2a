package query

import (
	"context"
	"fmt"
	"testing"

	"github.com/holiman/uint256"
	"github.com/light-fury/tsunami-vault/core"
)

type stubBalanceReader struct {
	balanceFn  func(ctx context.Context, tokenID string, holder string) *uint256.Int
	balancesFn func(ctx context.Context, tokenID string) []core.LedgerEntry
	totalFn    func(ctx context.Context, tokenID string) *uint256.Int
}

func (s stubBalanceReader) Balance(ctx context.Context, tokenID string, holder string) *uint256.Int {
	return s.balanceFn(ctx, tokenID, holder)
}

func (s stubBalanceReader) Balances(ctx context.Context, tokenID string) []core.LedgerEntry {
	return s.balancesFn(ctx, tokenID)
}

func (s stubBalanceReader) TokenTotal(ctx context.Context, tokenID string) *uint256.Int {
	return s.totalFn(ctx, tokenID)
}

type stubControlReader struct {
	whitelisted map[string]bool
	tokens      []string
	paused      bool
	owner       string
	admins      []string
}

func (s stubControlReader) IsWhitelisted(_ context.Context, tokenID string) bool {
	return s.whitelisted[tokenID]
}

func (s stubControlReader) WhitelistedTokens(_ context.Context) []string { return s.tokens }

func (s stubControlReader) Paused(_ context.Context) bool { return s.paused }

func (s stubControlReader) IsAdmin(_ context.Context, identity string) bool {
	for _, admin := range s.admins {
		if admin == identity {
			return true
		}
	}
	return false
}

func (s stubControlReader) IsOwner(_ context.Context, identity string) bool {
	return identity == s.owner
}

func (s stubControlReader) Owner(_ context.Context) string { return s.owner }

func (s stubControlReader) Admins(_ context.Context) []string { return s.admins }

type stubEventReader struct {
	eventsFn func(ctx context.Context, filter core.EventFilter) ([]core.VaultEvent, error)
}

func (s stubEventReader) Events(ctx context.Context, filter core.EventFilter) ([]core.VaultEvent, error) {
	return s.eventsFn(ctx, filter)
}

func TestBalanceQuery_DelegatesToReader(t *testing.T) {
	reader := stubBalanceReader{
		balanceFn: func(_ context.Context, tokenID string, holder string) *uint256.Int {
			if tokenID != "tok" || holder != "alice" {
				t.Fatalf("unexpected lookup: %q %q", tokenID, holder)
			}
			return uint256.NewInt(40)
		},
	}

	balance, err := NewBalanceQuery(reader).Query(context.Background(), BalanceMessage{
		TokenID: "tok",
		Holder:  "alice",
	})
	if err != nil {
		t.Fatalf("query balance: %v", err)
	}
	if !balance.Eq(uint256.NewInt(40)) {
		t.Fatalf("unexpected balance: %s", balance.Dec())
	}
}

func TestBalancesQuery_PassesTokenScope(t *testing.T) {
	reader := stubBalanceReader{
		balancesFn: func(_ context.Context, tokenID string) []core.LedgerEntry {
			if tokenID != "tok" {
				t.Fatalf("unexpected token scope: %q", tokenID)
			}
			return []core.LedgerEntry{{TokenID: "tok", Holder: "alice", Amount: uint256.NewInt(7)}}
		},
	}

	entries, err := NewBalancesQuery(reader).Query(context.Background(), BalancesMessage{TokenID: "tok"})
	if err != nil {
		t.Fatalf("query balances: %v", err)
	}
	if len(entries) != 1 || entries[0].Holder != "alice" {
		t.Fatalf("unexpected entries: %+v", entries)
	}
}

func TestTokenTotalQuery_DelegatesToReader(t *testing.T) {
	reader := stubBalanceReader{
		totalFn: func(_ context.Context, tokenID string) *uint256.Int {
			return uint256.NewInt(110)
		},
	}

	total, err := NewTokenTotalQuery(reader).Query(context.Background(), TokenTotalMessage{TokenID: "tok"})
	if err != nil {
		t.Fatalf("query token total: %v", err)
	}
	if !total.Eq(uint256.NewInt(110)) {
		t.Fatalf("unexpected total: %s", total.Dec())
	}
}

func TestControlQueries_ReflectReaderState(t *testing.T) {
	reader := stubControlReader{
		whitelisted: map[string]bool{"tok": true},
		tokens:      []string{"tok"},
		paused:      true,
		owner:       "owner-1",
		admins:      []string{"admin-1"},
	}

	allowed, err := NewWhitelistStatusQuery(reader).Query(context.Background(), WhitelistStatusMessage{TokenID: "tok"})
	if err != nil || !allowed {
		t.Fatalf("expected whitelisted token, got allowed=%v err=%v", allowed, err)
	}

	tokens, err := NewWhitelistedTokensQuery(reader).Query(context.Background(), WhitelistedTokensMessage{})
	if err != nil || len(tokens) != 1 || tokens[0] != "tok" {
		t.Fatalf("unexpected token list: %v err=%v", tokens, err)
	}

	paused, err := NewPausedQuery(reader).Query(context.Background(), PausedMessage{})
	if err != nil || !paused {
		t.Fatalf("expected paused gate, got paused=%v err=%v", paused, err)
	}
}

func TestRoleStatusQuery_ReportsBothRoles(t *testing.T) {
	reader := stubControlReader{owner: "owner-1", admins: []string{"admin-1"}}

	status, err := NewRoleStatusQuery(reader).Query(context.Background(), RoleStatusMessage{Identity: "owner-1"})
	if err != nil {
		t.Fatalf("query role status: %v", err)
	}
	if !status.IsOwner || status.IsAdmin {
		t.Fatalf("unexpected owner status: %+v", status)
	}

	status, err = NewRoleStatusQuery(reader).Query(context.Background(), RoleStatusMessage{Identity: "admin-1"})
	if err != nil {
		t.Fatalf("query role status: %v", err)
	}
	if status.IsOwner || !status.IsAdmin {
		t.Fatalf("unexpected admin status: %+v", status)
	}
}

func TestAdminRosterQuery_ReturnsOwnerAndAdmins(t *testing.T) {
	reader := stubControlReader{owner: "owner-1", admins: []string{"admin-1", "admin-2"}}

	roster, err := NewAdminRosterQuery(reader).Query(context.Background(), AdminRosterMessage{})
	if err != nil {
		t.Fatalf("query admin roster: %v", err)
	}
	if roster.Owner != "owner-1" || len(roster.Admins) != 2 {
		t.Fatalf("unexpected roster: %+v", roster)
	}
}

func TestEventsQuery_PropagatesFilterAndError(t *testing.T) {
	reader := stubEventReader{
		eventsFn: func(_ context.Context, filter core.EventFilter) ([]core.VaultEvent, error) {
			if filter.Holder != "alice" || filter.Limit != 3 {
				t.Fatalf("unexpected filter: %+v", filter)
			}
			return []core.VaultEvent{{EventType: core.EventTypeDeposit, Holder: "alice"}}, nil
		},
	}

	events, err := NewEventsQuery(reader).Query(context.Background(), EventsMessage{Filter: core.EventFilter{
		Holder: "alice",
		Limit:  3,
	}})
	if err != nil {
		t.Fatalf("query events: %v", err)
	}
	if len(events) != 1 || events[0].EventType != core.EventTypeDeposit {
		t.Fatalf("unexpected events: %+v", events)
	}

	failing := stubEventReader{
		eventsFn: func(_ context.Context, _ core.EventFilter) ([]core.VaultEvent, error) {
			return nil, fmt.Errorf("journal unavailable")
		},
	}
	if _, err := NewEventsQuery(failing).Query(context.Background(), EventsMessage{}); err == nil {
		t.Fatalf("expected reader error to propagate")
	}
}

func TestQueries_RequireReader(t *testing.T) {
	if _, err := (&BalanceQuery{}).Query(context.Background(), BalanceMessage{}); err == nil {
		t.Fatalf("expected dependency error for nil reader")
	}
	if _, err := (&PausedQuery{}).Query(context.Background(), PausedMessage{}); err == nil {
		t.Fatalf("expected dependency error for nil reader")
	}
	if _, err := (&EventsQuery{}).Query(context.Background(), EventsMessage{}); err == nil {
		t.Fatalf("expected dependency error for nil reader")
	}
}

func TestQueryMessages_Validate(t *testing.T) {
	if err := (BalanceMessage{TokenID: "tok"}).Validate(); err == nil {
		t.Fatalf("expected missing holder to fail validation")
	}
	if err := (BalanceMessage{TokenID: "tok", Holder: "alice"}).Validate(); err != nil {
		t.Fatalf("expected valid balance message, got %v", err)
	}
	if err := (BalancesMessage{}).Validate(); err != nil {
		t.Fatalf("expected empty token scope to be valid, got %v", err)
	}
	if err := (RoleStatusMessage{}).Validate(); err == nil {
		t.Fatalf("expected missing identity to fail validation")
	}
	if err := (EventsMessage{Filter: core.EventFilter{Limit: -1}}).Validate(); err == nil {
		t.Fatalf("expected negative limit to fail validation")
	}
}

package core

import (
	"context"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/holiman/uint256"
)

// Token is the consumed capability set of an external fungible-token
// collaborator. Implementations may re-enter the vault's public operations
// before returning; the vault's checks-effects-external-call ordering is the
// defense, not any lock held across the call.
type Token interface {
	ID() string
	// TransferFrom pulls amount from `from` into `to` (vault custody on
	// deposit). Any failure must surface as an error with no partial effect.
	TransferFrom(ctx context.Context, from string, to string, amount *uint256.Int) error
	// Transfer pushes amount out of the caller's account (vault custody on
	// withdrawal) to `to`.
	Transfer(ctx context.Context, to string, amount *uint256.Int) error
	// BalanceOf is read-only and used by observers and tests; the vault
	// trusts its own ledger, not the token's reported balances.
	BalanceOf(ctx context.Context, identity string) (*uint256.Int, error)
}

// Registry is the token collaborator lookup used by the vault.
type Registry interface {
	Register(token Token) error
	Get(tokenID string) (Token, bool)
	List() []Token
}

// LedgerStore persists balance snapshots; the in-memory ledger remains
// authoritative.
type LedgerStore interface {
	UpsertBalance(ctx context.Context, entry LedgerEntry) error
	ListBalances(ctx context.Context) ([]LedgerEntry, error)
}

// ControlStore persists the whitelist, the admin set, and the pause flag.
type ControlStore interface {
	SetWhitelisted(ctx context.Context, tokenID string, allowed bool) error
	ListWhitelisted(ctx context.Context) ([]string, error)
	SetAdmin(ctx context.Context, identity string, granted bool) error
	ListAdmins(ctx context.Context) ([]string, error)
	SetPaused(ctx context.Context, paused bool) error
	Paused(ctx context.Context) (bool, error)
}

// EventStore journals the vault's observable events.
type EventStore interface {
	Append(ctx context.Context, event VaultEvent) error
	List(ctx context.Context, filter EventFilter) ([]VaultEvent, error)
}

// StoreProvider is implemented by repository factories that can hand the
// vault its persistence stores.
type StoreProvider interface {
	LedgerStore() LedgerStore
	ControlStore() ControlStore
	EventStore() EventStore
}

// RepositoryStoreFactory builds stores from a persistence client before
// exposing them.
type RepositoryStoreFactory interface {
	BuildStores(persistenceClient any) (StoreProvider, error)
}

type Logger = glog.Logger

type LoggerProvider = glog.LoggerProvider

type FieldsLogger = glog.FieldsLogger

type MetricsRecorder interface {
	IncCounter(ctx context.Context, name string, value int64, tags map[string]string)
	ObserveHistogram(ctx context.Context, name string, value float64, tags map[string]string)
}

package core

import (
	"context"
	"fmt"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	glog "github.com/goliatone/go-logger/glog"
	"github.com/google/uuid"
	"github.com/holiman/uint256"
)

// Vault is the custodial ledger service: it holds external token funds in a
// custody account and tracks per-(token, holder) balances. Deposits pull
// funds in before crediting; withdrawals debit before pushing funds out, so a
// reentrant token callback always observes the already-updated ledger.
type Vault struct {
	config            Config
	logger            Logger
	loggerProvider    LoggerProvider
	metricsRecorder   MetricsRecorder
	errorFactory      ErrorFactory
	errorMapper       ErrorMapper
	persistenceClient any
	repositoryFactory any
	configProvider    ConfigProvider
	optionsResolver   OptionsResolver
	registry          Registry
	ledger            *BalanceLedger
	whitelist         *WhitelistRegistry
	roles             *RoleRegistry
	pauseGate         *PauseGate
	ledgerStore       LedgerStore
	controlStore      ControlStore
	eventStore        EventStore
}

type VaultDependencies struct {
	Logger            Logger
	LoggerProvider    LoggerProvider
	MetricsRecorder   MetricsRecorder
	ErrorFactory      ErrorFactory
	ErrorMapper       ErrorMapper
	PersistenceClient any
	RepositoryFactory any
	ConfigProvider    ConfigProvider
	OptionsResolver   OptionsResolver
	Registry          Registry
	LedgerStore       LedgerStore
	ControlStore      ControlStore
	EventStore        EventStore
}

func NewVault(cfg Config, options ...Option) (*Vault, error) {
	builder := defaultVaultBuilder(cfg)
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("vault", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("vault"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	if builder.errorFactory == nil {
		builder.errorFactory = goerrors.New
	}
	if builder.metricsRecorder == nil {
		builder.metricsRecorder = NopMetricsRecorder{}
	}
	if builder.errorMapper == nil {
		builder.errorMapper = defaultErrorMapper
	}
	if builder.configProvider == nil {
		builder.configProvider = NewCfgxConfigProvider(nil)
	}
	if builder.optionsResolver == nil {
		builder.optionsResolver = GoOptionsResolver{}
	}
	if builder.registry == nil {
		builder.registry = NewTokenRegistry()
	}

	defaults := DefaultConfig()
	loaded, err := builder.configProvider.Load(context.Background(), defaults)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	finalConfig, err := builder.optionsResolver.Resolve(defaults, loaded, builder.runtimeConfig)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	if strings.TrimSpace(finalConfig.Owner) == "" {
		return nil, mapBuildError(builder.errorMapper, ErrOwnerRequired)
	}

	if (builder.ledgerStore == nil || builder.controlStore == nil || builder.eventStore == nil) &&
		builder.repositoryFactory != nil {
		var storeProvider StoreProvider
		if storeFactory, ok := builder.repositoryFactory.(RepositoryStoreFactory); ok {
			built, buildErr := storeFactory.BuildStores(builder.persistenceClient)
			if buildErr != nil {
				return nil, mapBuildError(builder.errorMapper, buildErr)
			}
			storeProvider = built
		} else if direct, ok := builder.repositoryFactory.(StoreProvider); ok {
			storeProvider = direct
		}
		if storeProvider != nil {
			if builder.ledgerStore == nil {
				builder.ledgerStore = storeProvider.LedgerStore()
			}
			if builder.controlStore == nil {
				builder.controlStore = storeProvider.ControlStore()
			}
			if builder.eventStore == nil {
				builder.eventStore = storeProvider.EventStore()
			}
		}
	}
	if builder.ledgerStore == nil {
		builder.ledgerStore = NewMemoryLedgerStore()
	}
	if builder.controlStore == nil {
		builder.controlStore = NewMemoryControlStore()
	}
	if builder.eventStore == nil {
		builder.eventStore = NewMemoryEventStore()
	}

	roles, err := NewRoleRegistry(finalConfig.Owner)
	if err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}

	vault := &Vault{
		config:            finalConfig,
		logger:            logger,
		loggerProvider:    provider,
		metricsRecorder:   builder.metricsRecorder,
		errorFactory:      builder.errorFactory,
		errorMapper:       builder.errorMapper,
		persistenceClient: builder.persistenceClient,
		repositoryFactory: builder.repositoryFactory,
		configProvider:    builder.configProvider,
		optionsResolver:   builder.optionsResolver,
		registry:          builder.registry,
		ledger:            NewBalanceLedger(),
		whitelist:         NewWhitelistRegistry(),
		roles:             roles,
		pauseGate:         NewPauseGate(),
		ledgerStore:       builder.ledgerStore,
		controlStore:      builder.controlStore,
		eventStore:        builder.eventStore,
	}

	if err := vault.rehydrate(context.Background()); err != nil {
		return nil, mapBuildError(builder.errorMapper, err)
	}
	return vault, nil
}

func Setup(cfg Config, options ...Option) (*Vault, error) {
	return NewVault(cfg, options...)
}

// rehydrate replays persisted state into the in-memory structures. The stores
// are the durable record; memory is authoritative afterwards.
func (v *Vault) rehydrate(ctx context.Context) error {
	if v.ledgerStore != nil {
		entries, err := v.ledgerStore.ListBalances(ctx)
		if err != nil {
			return fmt.Errorf("core: balance rehydration failed: %w", err)
		}
		v.ledger.Restore(entries)
	}
	if v.controlStore != nil {
		whitelisted, err := v.controlStore.ListWhitelisted(ctx)
		if err != nil {
			return fmt.Errorf("core: whitelist rehydration failed: %w", err)
		}
		v.whitelist.Restore(whitelisted)

		admins, err := v.controlStore.ListAdmins(ctx)
		if err != nil {
			return fmt.Errorf("core: admin rehydration failed: %w", err)
		}
		v.roles.Restore(admins)

		paused, err := v.controlStore.Paused(ctx)
		if err != nil {
			return fmt.Errorf("core: pause flag rehydration failed: %w", err)
		}
		v.pauseGate.Set(paused)
	}
	return nil
}

func mapBuildError(mapper ErrorMapper, err error) error {
	if err == nil {
		return nil
	}
	if mapper == nil {
		return err
	}
	mapped := mapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

func (v *Vault) Config() Config {
	if v == nil {
		return Config{}
	}
	return v.config
}

func (v *Vault) Dependencies() VaultDependencies {
	if v == nil {
		return VaultDependencies{}
	}
	return VaultDependencies{
		Logger:            v.logger,
		LoggerProvider:    v.loggerProvider,
		MetricsRecorder:   v.metricsRecorder,
		ErrorFactory:      v.errorFactory,
		ErrorMapper:       v.errorMapper,
		PersistenceClient: v.persistenceClient,
		RepositoryFactory: v.repositoryFactory,
		ConfigProvider:    v.configProvider,
		OptionsResolver:   v.optionsResolver,
		Registry:          v.registry,
		LedgerStore:       v.ledgerStore,
		ControlStore:      v.controlStore,
		EventStore:        v.eventStore,
	}
}

// RegisterToken adds a token collaborator to the vault's registry.
// Registration is distinct from whitelisting: a registered token still cannot
// move funds until an admin whitelists its id.
func (v *Vault) RegisterToken(token Token) error {
	if v == nil || v.registry == nil {
		return ErrTokenNotRegistered
	}
	if err := v.registry.Register(token); err != nil {
		return v.mapError(err)
	}
	return nil
}

// Deposit pulls req.Amount of req.TokenID from the caller into vault custody
// and credits the caller's tracked balance. The external transfer happens
// before any ledger mutation, so a failed transfer leaves no trace.
func (v *Vault) Deposit(ctx context.Context, req DepositRequest) (balance *uint256.Int, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"token_id": req.TokenID,
		"caller":   req.Caller,
	}
	if req.Amount != nil {
		fields["amount"] = req.Amount.Dec()
	}
	defer func() {
		v.observeOperation(ctx, startedAt, "deposit", err, fields)
	}()

	if err = req.Validate(); err != nil {
		err = v.mapError(err)
		return nil, err
	}
	tokenID := strings.TrimSpace(req.TokenID)
	caller := strings.TrimSpace(req.Caller)

	if err = v.checkTransferGates(tokenID); err != nil {
		err = v.mapError(err)
		return nil, err
	}
	token, err := v.resolveToken(tokenID)
	if err != nil {
		return nil, err
	}

	if transferErr := token.TransferFrom(ctx, caller, v.config.CustodyAccount, req.Amount); transferErr != nil {
		err = v.mapError(fmt.Errorf("%w: %v", ErrTransferFailed, transferErr))
		return nil, err
	}

	balance, creditErr := v.ledger.Credit(tokenID, caller, req.Amount)
	if creditErr != nil {
		v.compensateTransfer(ctx, token, caller, req.Amount, "deposit credit rejected")
		err = v.mapError(creditErr)
		return nil, err
	}

	if persistErr := v.persistBalance(ctx, tokenID, caller, balance); persistErr != nil {
		if _, rollbackErr := v.ledger.Debit(tokenID, caller, req.Amount); rollbackErr != nil {
			v.logError(ctx, "deposit rollback failed", map[string]any{
				"token_id": tokenID,
				"holder":   caller,
				"error":    rollbackErr.Error(),
			})
		}
		v.compensateTransfer(ctx, token, caller, req.Amount, "deposit persistence failed")
		err = v.mapError(persistErr)
		return nil, err
	}

	v.emitEvent(ctx, VaultEvent{
		EventType: EventTypeDeposit,
		TokenID:   tokenID,
		Holder:    caller,
		Amount:    new(uint256.Int).Set(req.Amount),
		Metadata:  copyAnyMap(req.Metadata),
	})
	return balance, nil
}

// Withdraw debits the caller's tracked balance and then pushes the funds out
// of custody. The debit lands before the external call; a reentrant token
// callback cannot spend the same balance twice.
func (v *Vault) Withdraw(ctx context.Context, req WithdrawRequest) (balance *uint256.Int, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"token_id": req.TokenID,
		"caller":   req.Caller,
	}
	if req.Amount != nil {
		fields["amount"] = req.Amount.Dec()
	}
	defer func() {
		v.observeOperation(ctx, startedAt, "withdraw", err, fields)
	}()

	if err = req.Validate(); err != nil {
		err = v.mapError(err)
		return nil, err
	}
	tokenID := strings.TrimSpace(req.TokenID)
	caller := strings.TrimSpace(req.Caller)

	if err = v.checkTransferGates(tokenID); err != nil {
		err = v.mapError(err)
		return nil, err
	}
	token, err := v.resolveToken(tokenID)
	if err != nil {
		return nil, err
	}

	balance, debitErr := v.ledger.Debit(tokenID, caller, req.Amount)
	if debitErr != nil {
		err = v.mapError(debitErr)
		return nil, err
	}

	if persistErr := v.persistBalance(ctx, tokenID, caller, balance); persistErr != nil {
		v.restoreCredit(ctx, tokenID, caller, req.Amount, "withdraw persistence failed")
		err = v.mapError(persistErr)
		return nil, err
	}

	if transferErr := token.Transfer(ctx, caller, req.Amount); transferErr != nil {
		restored := v.restoreCredit(ctx, tokenID, caller, req.Amount, "withdraw transfer failed")
		if restored != nil {
			if persistErr := v.persistBalance(ctx, tokenID, caller, restored); persistErr != nil {
				v.logError(ctx, "withdraw rollback persistence failed", map[string]any{
					"token_id": tokenID,
					"holder":   caller,
					"error":    persistErr.Error(),
				})
			}
		}
		err = v.mapError(fmt.Errorf("%w: %v", ErrTransferFailed, transferErr))
		return nil, err
	}

	v.emitEvent(ctx, VaultEvent{
		EventType: EventTypeWithdrawal,
		TokenID:   tokenID,
		Holder:    caller,
		Amount:    new(uint256.Int).Set(req.Amount),
		Metadata:  copyAnyMap(req.Metadata),
	})
	return balance, nil
}

func (v *Vault) Pause(ctx context.Context, caller string) (err error) {
	return v.setPaused(ctx, caller, true, "pause")
}

func (v *Vault) Unpause(ctx context.Context, caller string) (err error) {
	return v.setPaused(ctx, caller, false, "unpause")
}

func (v *Vault) setPaused(ctx context.Context, caller string, paused bool, operation string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"caller": caller}
	defer func() {
		v.observeOperation(ctx, startedAt, operation, err, fields)
	}()

	if err = v.requireAdmin(caller); err != nil {
		err = v.mapError(err)
		return err
	}

	previous := v.pauseGate.Paused()
	v.pauseGate.Set(paused)
	if v.controlStore != nil {
		if storeErr := v.controlStore.SetPaused(ctx, paused); storeErr != nil {
			v.pauseGate.Set(previous)
			err = v.mapError(storeErr)
			return err
		}
	}
	return nil
}

func (v *Vault) WhitelistToken(ctx context.Context, caller string, tokenID string) error {
	return v.setWhitelisted(ctx, caller, tokenID, true, "whitelist_token")
}

func (v *Vault) RemoveTokenFromWhitelist(ctx context.Context, caller string, tokenID string) error {
	return v.setWhitelisted(ctx, caller, tokenID, false, "remove_token_from_whitelist")
}

func (v *Vault) setWhitelisted(ctx context.Context, caller string, tokenID string, allowed bool, operation string) (err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"caller":   caller,
		"token_id": tokenID,
	}
	defer func() {
		v.observeOperation(ctx, startedAt, operation, err, fields)
	}()

	if err = v.requireAdmin(caller); err != nil {
		err = v.mapError(err)
		return err
	}
	tokenID = strings.TrimSpace(tokenID)
	if tokenID == "" {
		err = v.mapError(ErrTokenIDRequired)
		return err
	}

	previous := v.whitelist.IsWhitelisted(tokenID)
	if setErr := v.whitelist.Set(tokenID, allowed); setErr != nil {
		err = v.mapError(setErr)
		return err
	}
	if v.controlStore != nil {
		if storeErr := v.controlStore.SetWhitelisted(ctx, tokenID, allowed); storeErr != nil {
			_ = v.whitelist.Set(tokenID, previous)
			err = v.mapError(storeErr)
			return err
		}
	}
	return nil
}

// AddAdmin grants the admin role. Granting an already-held role is a soft
// success reported through the changed indicator.
func (v *Vault) AddAdmin(ctx context.Context, caller string, identity string) (changed bool, err error) {
	return v.setAdmin(ctx, caller, identity, true, "add_admin")
}

func (v *Vault) RemoveAdmin(ctx context.Context, caller string, identity string) (changed bool, err error) {
	return v.setAdmin(ctx, caller, identity, false, "remove_admin")
}

func (v *Vault) setAdmin(ctx context.Context, caller string, identity string, granted bool, operation string) (changed bool, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{
		"caller": caller,
		"holder": identity,
	}
	defer func() {
		fields["changed"] = changed
		v.observeOperation(ctx, startedAt, operation, err, fields)
	}()

	if err = v.requireOwner(caller); err != nil {
		err = v.mapError(err)
		return false, err
	}

	if granted {
		changed, err = v.roles.Grant(identity)
	} else {
		changed, err = v.roles.Revoke(identity)
	}
	if err != nil {
		err = v.mapError(err)
		return false, err
	}
	if !changed {
		return false, nil
	}

	if v.controlStore != nil {
		if storeErr := v.controlStore.SetAdmin(ctx, strings.TrimSpace(identity), granted); storeErr != nil {
			if granted {
				_, _ = v.roles.Revoke(identity)
			} else {
				_, _ = v.roles.Grant(identity)
			}
			err = v.mapError(storeErr)
			return false, err
		}
	}
	return true, nil
}

// Balance reports the tracked amount for (tokenID, holder). Unknown pairs
// report zero.
func (v *Vault) Balance(ctx context.Context, tokenID string, holder string) *uint256.Int {
	if v == nil {
		return uint256.NewInt(0)
	}
	return v.ledger.Balance(tokenID, holder)
}

// Balances snapshots all non-zero ledger entries, optionally filtered by
// token id.
func (v *Vault) Balances(ctx context.Context, tokenID string) []LedgerEntry {
	if v == nil {
		return nil
	}
	entries := v.ledger.Entries()
	tokenID = strings.TrimSpace(tokenID)
	if tokenID == "" {
		return entries
	}
	out := make([]LedgerEntry, 0, len(entries))
	for _, entry := range entries {
		if entry.TokenID == tokenID {
			out = append(out, entry)
		}
	}
	return out
}

// TokenTotal reports the vault's total tracked custody for a token.
func (v *Vault) TokenTotal(ctx context.Context, tokenID string) *uint256.Int {
	if v == nil {
		return uint256.NewInt(0)
	}
	return v.ledger.TokenTotal(tokenID)
}

func (v *Vault) IsWhitelisted(ctx context.Context, tokenID string) bool {
	if v == nil {
		return false
	}
	return v.whitelist.IsWhitelisted(tokenID)
}

func (v *Vault) WhitelistedTokens(ctx context.Context) []string {
	if v == nil {
		return nil
	}
	return v.whitelist.List()
}

func (v *Vault) Paused(ctx context.Context) bool {
	if v == nil {
		return false
	}
	return v.pauseGate.Paused()
}

func (v *Vault) IsAdmin(ctx context.Context, identity string) bool {
	if v == nil {
		return false
	}
	return v.roles.IsAdmin(identity)
}

func (v *Vault) IsOwner(ctx context.Context, identity string) bool {
	if v == nil {
		return false
	}
	return v.roles.IsOwner(identity)
}

func (v *Vault) Owner(ctx context.Context) string {
	if v == nil {
		return ""
	}
	return v.roles.Owner()
}

func (v *Vault) Admins(ctx context.Context) []string {
	if v == nil {
		return nil
	}
	return v.roles.Admins()
}

func (v *Vault) Events(ctx context.Context, filter EventFilter) ([]VaultEvent, error) {
	if v == nil || v.eventStore == nil {
		return nil, nil
	}
	events, err := v.eventStore.List(ctx, filter)
	if err != nil {
		return nil, v.mapError(err)
	}
	return events, nil
}

// checkTransferGates enforces the pause and whitelist preconditions shared by
// deposit and withdraw, in that order.
func (v *Vault) checkTransferGates(tokenID string) error {
	if v.pauseGate.Paused() {
		return ErrVaultPaused
	}
	if !v.whitelist.IsWhitelisted(tokenID) {
		return ErrTokenNotWhitelisted
	}
	return nil
}

// resolveToken looks up the token collaborator. A whitelisted id with no
// registered collaborator cannot move funds, so it surfaces as a transfer
// failure rather than a lookup error.
func (v *Vault) resolveToken(tokenID string) (Token, error) {
	if v == nil || v.registry == nil {
		return nil, v.mapError(fmt.Errorf("core: token registry unavailable"))
	}
	token, ok := v.registry.Get(tokenID)
	if ok {
		return token, nil
	}
	wrapped := v.errorFactory(
		fmt.Sprintf("token %q has no registered collaborator", tokenID),
		goerrors.CategoryExternal,
	).WithTextCode(VaultErrorTransferFailed)
	return nil, wrapped.WithMetadata(map[string]any{"token_id": tokenID})
}

// requireAdmin checks the admin role alone. Owner authority covers role
// management only; the owner holds admin powers solely through an explicit
// grant.
func (v *Vault) requireAdmin(caller string) error {
	caller = strings.TrimSpace(caller)
	if caller == "" {
		return ErrIdentityRequired
	}
	if v.roles.IsAdmin(caller) {
		return nil
	}
	return ErrUnauthorized
}

func (v *Vault) requireOwner(caller string) error {
	caller = strings.TrimSpace(caller)
	if caller == "" {
		return ErrIdentityRequired
	}
	if v.roles.IsOwner(caller) {
		return nil
	}
	return ErrUnauthorized
}

func (v *Vault) persistBalance(ctx context.Context, tokenID string, holder string, amount *uint256.Int) error {
	if v.ledgerStore == nil {
		return nil
	}
	return v.ledgerStore.UpsertBalance(ctx, LedgerEntry{
		TokenID:   tokenID,
		Holder:    holder,
		Amount:    new(uint256.Int).Set(amount),
		UpdatedAt: time.Now().UTC(),
	})
}

// restoreCredit undoes a debit after a downstream failure and returns the
// restored balance, or nil when the restore itself failed.
func (v *Vault) restoreCredit(ctx context.Context, tokenID string, holder string, amount *uint256.Int, reason string) *uint256.Int {
	restored, err := v.ledger.Credit(tokenID, holder, amount)
	if err != nil {
		v.logError(ctx, "ledger rollback failed", map[string]any{
			"token_id": tokenID,
			"holder":   holder,
			"reason":   reason,
			"error":    err.Error(),
		})
		return nil
	}
	return restored
}

// compensateTransfer returns pulled-in funds to the caller after a deposit
// fails past the external transfer. Best effort; a failed compensation is
// logged and the original error still wins.
func (v *Vault) compensateTransfer(ctx context.Context, token Token, caller string, amount *uint256.Int, reason string) {
	if token == nil || amount == nil {
		return
	}
	if err := token.Transfer(ctx, caller, amount); err != nil {
		v.logError(ctx, "compensating transfer failed", map[string]any{
			"token_id": token.ID(),
			"holder":   caller,
			"reason":   reason,
			"error":    err.Error(),
		})
	}
}

// emitEvent journals a vault event. The ledger commit is the point of truth;
// a journal failure is logged, never surfaced.
func (v *Vault) emitEvent(ctx context.Context, event VaultEvent) {
	if v == nil || v.eventStore == nil {
		return
	}
	if strings.TrimSpace(event.ID) == "" {
		event.ID = uuid.NewString()
	}
	if event.OccurredAt.IsZero() {
		event.OccurredAt = time.Now().UTC()
	}
	if err := v.eventStore.Append(ctx, event); err != nil {
		v.logError(ctx, "event journal append failed", map[string]any{
			"event_type": event.EventType,
			"token_id":   event.TokenID,
			"holder":     event.Holder,
			"error":      err.Error(),
		})
	}
}

func (v *Vault) mapError(err error) error {
	if err == nil {
		return nil
	}
	if v == nil || v.errorMapper == nil {
		return err
	}
	mapped := v.errorMapper(err)
	if mapped == nil {
		return err
	}
	return mapped
}

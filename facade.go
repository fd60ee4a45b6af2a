package vault

import (
	"context"
	"fmt"

	vaultcommand "github.com/light-fury/tsunami-vault/command"
	"github.com/light-fury/tsunami-vault/core"
	vaultquery "github.com/light-fury/tsunami-vault/query"
)

type CommandQueryService interface {
	vaultcommand.MutatingService
	vaultquery.BalanceReader
	vaultquery.ControlReader
	vaultquery.EventReader
}

type Commands struct {
	Deposit                  *vaultcommand.DepositCommand
	Withdraw                 *vaultcommand.WithdrawCommand
	Pause                    *vaultcommand.PauseCommand
	Unpause                  *vaultcommand.UnpauseCommand
	WhitelistToken           *vaultcommand.WhitelistTokenCommand
	RemoveTokenFromWhitelist *vaultcommand.RemoveTokenFromWhitelistCommand
	AddAdmin                 *vaultcommand.AddAdminCommand
	RemoveAdmin              *vaultcommand.RemoveAdminCommand
}

type Queries struct {
	Balance           *vaultquery.BalanceQuery
	Balances          *vaultquery.BalancesQuery
	TokenTotal        *vaultquery.TokenTotalQuery
	WhitelistStatus   *vaultquery.WhitelistStatusQuery
	WhitelistedTokens *vaultquery.WhitelistedTokensQuery
	Paused            *vaultquery.PausedQuery
	RoleStatus        *vaultquery.RoleStatusQuery
	AdminRoster       *vaultquery.AdminRosterQuery
	Events            *vaultquery.EventsQuery
}

type Facade struct {
	service  CommandQueryService
	commands Commands
	queries  Queries
}

type FacadeOption func(*facadeOptions)

type facadeOptions struct {
	eventReader vaultquery.EventReader
}

// WithEventReader reroutes event queries, typically straight to the
// journal store instead of through the service.
func WithEventReader(reader vaultquery.EventReader) FacadeOption {
	return func(options *facadeOptions) {
		options.eventReader = reader
	}
}

func NewFacade(service CommandQueryService, opts ...FacadeOption) (*Facade, error) {
	if service == nil {
		return nil, fmt.Errorf("vault: command/query service is required")
	}
	cfg := facadeOptions{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	reader := cfg.eventReader
	if reader == nil {
		reader = resolveEventReader(service)
	}

	facade := &Facade{service: service}
	facade.commands = Commands{
		Deposit:                  vaultcommand.NewDepositCommand(service),
		Withdraw:                 vaultcommand.NewWithdrawCommand(service),
		Pause:                    vaultcommand.NewPauseCommand(service),
		Unpause:                  vaultcommand.NewUnpauseCommand(service),
		WhitelistToken:           vaultcommand.NewWhitelistTokenCommand(service),
		RemoveTokenFromWhitelist: vaultcommand.NewRemoveTokenFromWhitelistCommand(service),
		AddAdmin:                 vaultcommand.NewAddAdminCommand(service),
		RemoveAdmin:              vaultcommand.NewRemoveAdminCommand(service),
	}
	facade.queries = Queries{
		Balance:           vaultquery.NewBalanceQuery(service),
		Balances:          vaultquery.NewBalancesQuery(service),
		TokenTotal:        vaultquery.NewTokenTotalQuery(service),
		WhitelistStatus:   vaultquery.NewWhitelistStatusQuery(service),
		WhitelistedTokens: vaultquery.NewWhitelistedTokensQuery(service),
		Paused:            vaultquery.NewPausedQuery(service),
		RoleStatus:        vaultquery.NewRoleStatusQuery(service),
		AdminRoster:       vaultquery.NewAdminRosterQuery(service),
		Events:            vaultquery.NewEventsQuery(reader),
	}

	return facade, nil
}

func (f *Facade) Commands() Commands {
	if f == nil {
		return Commands{}
	}
	return f.commands
}

func (f *Facade) Queries() Queries {
	if f == nil {
		return Queries{}
	}
	return f.queries
}

func (f *Facade) Service() CommandQueryService {
	if f == nil {
		return nil
	}
	return f.service
}

// resolveEventReader prefers the journal store the service was wired with,
// falling back to the service itself.
func resolveEventReader(service CommandQueryService) vaultquery.EventReader {
	provider, ok := service.(interface {
		Dependencies() core.VaultDependencies
	})
	if !ok {
		return service
	}
	deps := provider.Dependencies()
	if deps.EventStore == nil {
		return service
	}
	return eventStoreReader{store: deps.EventStore}
}

type eventStoreReader struct {
	store core.EventStore
}

func (r eventStoreReader) Events(ctx context.Context, filter core.EventFilter) ([]core.VaultEvent, error) {
	return r.store.List(ctx, filter)
}

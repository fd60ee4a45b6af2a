package query

import (
	gocmd "github.com/goliatone/go-command"
	"github.com/holiman/uint256"
	"github.com/light-fury/tsunami-vault/core"
)

var (
	_ gocmd.Querier[BalanceMessage, *uint256.Int]        = (*BalanceQuery)(nil)
	_ gocmd.Querier[BalancesMessage, []core.LedgerEntry] = (*BalancesQuery)(nil)
	_ gocmd.Querier[TokenTotalMessage, *uint256.Int]     = (*TokenTotalQuery)(nil)
	_ gocmd.Querier[WhitelistStatusMessage, bool]        = (*WhitelistStatusQuery)(nil)
	_ gocmd.Querier[WhitelistedTokensMessage, []string]  = (*WhitelistedTokensQuery)(nil)
	_ gocmd.Querier[PausedMessage, bool]                 = (*PausedQuery)(nil)
	_ gocmd.Querier[RoleStatusMessage, RoleStatus]       = (*RoleStatusQuery)(nil)
	_ gocmd.Querier[AdminRosterMessage, AdminRoster]     = (*AdminRosterQuery)(nil)
	_ gocmd.Querier[EventsMessage, []core.VaultEvent]    = (*EventsQuery)(nil)
)

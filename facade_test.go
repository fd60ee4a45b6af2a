package vault_test

import (
	"context"
	"testing"

	gocmd "github.com/goliatone/go-command"
	"github.com/holiman/uint256"
	vault "github.com/light-fury/tsunami-vault"
	vaultcommand "github.com/light-fury/tsunami-vault/command"
	"github.com/light-fury/tsunami-vault/core"
	vaultquery "github.com/light-fury/tsunami-vault/query"
	"github.com/light-fury/tsunami-vault/tokens/devkit"
)

func newFacadeFixture(t *testing.T) (*vault.Facade, *devkit.ReferenceToken) {
	t.Helper()

	token := devkit.NewReferenceToken("tok", vault.DefaultConfig().CustodyAccount)
	if err := token.Mint("alice", uint256.NewInt(500)); err != nil {
		t.Fatalf("mint: %v", err)
	}
	if err := token.Approve("alice", vault.DefaultConfig().CustodyAccount, uint256.NewInt(500)); err != nil {
		t.Fatalf("approve: %v", err)
	}

	service, err := vault.NewVault(vault.Config{Owner: "owner-1"})
	if err != nil {
		t.Fatalf("new vault: %v", err)
	}
	if err := service.RegisterToken(token); err != nil {
		t.Fatalf("register token: %v", err)
	}
	if _, err := service.AddAdmin(context.Background(), "owner-1", "owner-1"); err != nil {
		t.Fatalf("grant admin role: %v", err)
	}
	if err := service.WhitelistToken(context.Background(), "owner-1", "tok"); err != nil {
		t.Fatalf("whitelist: %v", err)
	}

	facade, err := vault.NewFacade(service)
	if err != nil {
		t.Fatalf("new facade: %v", err)
	}
	return facade, token
}

func TestNewFacade_RequiresService(t *testing.T) {
	if _, err := vault.NewFacade(nil); err == nil {
		t.Fatalf("expected nil service to be rejected")
	}
}

func TestFacade_DepositCommandAndBalanceQuery(t *testing.T) {
	facade, _ := newFacadeFixture(t)

	collector := gocmd.NewResult[*uint256.Int]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	err := facade.Commands().Deposit.Execute(ctx, vaultcommand.DepositMessage{Request: core.DepositRequest{
		TokenID: "tok",
		Caller:  "alice",
		Amount:  uint256.NewInt(120),
	}})
	if err != nil {
		t.Fatalf("deposit command: %v", err)
	}
	stored, ok := collector.Load()
	if !ok || !stored.Eq(uint256.NewInt(120)) {
		t.Fatalf("expected stored balance 120, got ok=%v", ok)
	}

	balance, err := facade.Queries().Balance.Query(context.Background(), vaultquery.BalanceMessage{
		TokenID: "tok",
		Holder:  "alice",
	})
	if err != nil {
		t.Fatalf("balance query: %v", err)
	}
	if !balance.Eq(uint256.NewInt(120)) {
		t.Fatalf("unexpected balance: %s", balance.Dec())
	}
}

func TestFacade_WithdrawRoundTripUpdatesWallet(t *testing.T) {
	facade, token := newFacadeFixture(t)

	ctx := context.Background()
	err := facade.Commands().Deposit.Execute(ctx, vaultcommand.DepositMessage{Request: core.DepositRequest{
		TokenID: "tok",
		Caller:  "alice",
		Amount:  uint256.NewInt(200),
	}})
	if err != nil {
		t.Fatalf("deposit command: %v", err)
	}
	err = facade.Commands().Withdraw.Execute(ctx, vaultcommand.WithdrawMessage{Request: core.WithdrawRequest{
		TokenID: "tok",
		Caller:  "alice",
		Amount:  uint256.NewInt(150),
	}})
	if err != nil {
		t.Fatalf("withdraw command: %v", err)
	}

	wallet, err := token.BalanceOf(ctx, "alice")
	if err != nil {
		t.Fatalf("balance of alice: %v", err)
	}
	if !wallet.Eq(uint256.NewInt(450)) {
		t.Fatalf("unexpected wallet balance: %s", wallet.Dec())
	}
	total, err := facade.Queries().TokenTotal.Query(ctx, vaultquery.TokenTotalMessage{TokenID: "tok"})
	if err != nil {
		t.Fatalf("token total query: %v", err)
	}
	if !total.Eq(uint256.NewInt(50)) {
		t.Fatalf("unexpected token total: %s", total.Dec())
	}
}

func TestFacade_PauseGateBlocksDeposits(t *testing.T) {
	facade, _ := newFacadeFixture(t)
	ctx := context.Background()

	if err := facade.Commands().Pause.Execute(ctx, vaultcommand.PauseMessage{Caller: "owner-1"}); err != nil {
		t.Fatalf("pause command: %v", err)
	}
	paused, err := facade.Queries().Paused.Query(ctx, vaultquery.PausedMessage{})
	if err != nil || !paused {
		t.Fatalf("expected paused gate, got paused=%v err=%v", paused, err)
	}

	err = facade.Commands().Deposit.Execute(ctx, vaultcommand.DepositMessage{Request: core.DepositRequest{
		TokenID: "tok",
		Caller:  "alice",
		Amount:  uint256.NewInt(1),
	}})
	if err == nil {
		t.Fatalf("expected paused vault to reject deposits")
	}

	if err := facade.Commands().Unpause.Execute(ctx, vaultcommand.UnpauseMessage{Caller: "owner-1"}); err != nil {
		t.Fatalf("unpause command: %v", err)
	}
}

func TestFacade_AdminLifecycleThroughCommands(t *testing.T) {
	facade, _ := newFacadeFixture(t)
	ctx := context.Background()

	collector := gocmd.NewResult[vaultcommand.AdminChangeResult]()
	cmdCtx := gocmd.ContextWithResult(ctx, collector)
	err := facade.Commands().AddAdmin.Execute(cmdCtx, vaultcommand.AddAdminMessage{
		Caller:   "owner-1",
		Identity: "admin-1",
	})
	if err != nil {
		t.Fatalf("add admin command: %v", err)
	}
	result, ok := collector.Load()
	if !ok || !result.Changed {
		t.Fatalf("expected admin grant to report change, got ok=%v result=%+v", ok, result)
	}

	status, err := facade.Queries().RoleStatus.Query(ctx, vaultquery.RoleStatusMessage{Identity: "admin-1"})
	if err != nil {
		t.Fatalf("role status query: %v", err)
	}
	if !status.IsAdmin || status.IsOwner {
		t.Fatalf("unexpected role status: %+v", status)
	}

	// the fixture grants the owner the admin role for whitelist and pause
	roster, err := facade.Queries().AdminRoster.Query(ctx, vaultquery.AdminRosterMessage{})
	if err != nil {
		t.Fatalf("admin roster query: %v", err)
	}
	if roster.Owner != "owner-1" || len(roster.Admins) != 2 {
		t.Fatalf("unexpected roster: %+v", roster)
	}
	if roster.Admins[0] != "admin-1" || roster.Admins[1] != "owner-1" {
		t.Fatalf("unexpected roster admins: %v", roster.Admins)
	}
}

func TestFacade_EventsQueryReadsJournal(t *testing.T) {
	facade, _ := newFacadeFixture(t)
	ctx := context.Background()

	err := facade.Commands().Deposit.Execute(ctx, vaultcommand.DepositMessage{Request: core.DepositRequest{
		TokenID: "tok",
		Caller:  "alice",
		Amount:  uint256.NewInt(30),
	}})
	if err != nil {
		t.Fatalf("deposit command: %v", err)
	}

	events, err := facade.Queries().Events.Query(ctx, vaultquery.EventsMessage{Filter: core.EventFilter{
		TokenID: "tok",
	}})
	if err != nil {
		t.Fatalf("events query: %v", err)
	}
	if len(events) != 1 || events[0].EventType != core.EventTypeDeposit {
		t.Fatalf("unexpected events: %+v", events)
	}
}

type staticEventReader struct {
	events []core.VaultEvent
}

func (r staticEventReader) Events(_ context.Context, _ core.EventFilter) ([]core.VaultEvent, error) {
	return r.events, nil
}

func TestFacade_WithEventReaderOverridesJournal(t *testing.T) {
	service, err := vault.NewVault(vault.Config{Owner: "owner-1"})
	if err != nil {
		t.Fatalf("new vault: %v", err)
	}

	reader := staticEventReader{events: []core.VaultEvent{{EventType: core.EventTypeWithdrawal}}}
	facade, err := vault.NewFacade(service, vault.WithEventReader(reader))
	if err != nil {
		t.Fatalf("new facade: %v", err)
	}

	events, err := facade.Queries().Events.Query(context.Background(), vaultquery.EventsMessage{})
	if err != nil {
		t.Fatalf("events query: %v", err)
	}
	if len(events) != 1 || events[0].EventType != core.EventTypeWithdrawal {
		t.Fatalf("unexpected events: %+v", events)
	}
}

package command

import (
	"context"
	"fmt"
	"testing"

	gocmd "github.com/goliatone/go-command"
	"github.com/holiman/uint256"
	"github.com/light-fury/tsunami-vault/core"
)

type stubMutatingService struct {
	depositFn   func(ctx context.Context, req core.DepositRequest) (*uint256.Int, error)
	withdrawFn  func(ctx context.Context, req core.WithdrawRequest) (*uint256.Int, error)
	pauseFn     func(ctx context.Context, caller string) error
	unpauseFn   func(ctx context.Context, caller string) error
	whitelistFn func(ctx context.Context, caller string, tokenID string) error
	removeFn    func(ctx context.Context, caller string, tokenID string) error
	addAdminFn  func(ctx context.Context, caller string, identity string) (bool, error)
	dropAdminFn func(ctx context.Context, caller string, identity string) (bool, error)
}

func (s stubMutatingService) Deposit(ctx context.Context, req core.DepositRequest) (*uint256.Int, error) {
	if s.depositFn == nil {
		return nil, fmt.Errorf("unexpected deposit call")
	}
	return s.depositFn(ctx, req)
}

func (s stubMutatingService) Withdraw(ctx context.Context, req core.WithdrawRequest) (*uint256.Int, error) {
	if s.withdrawFn == nil {
		return nil, fmt.Errorf("unexpected withdraw call")
	}
	return s.withdrawFn(ctx, req)
}

func (s stubMutatingService) Pause(ctx context.Context, caller string) error {
	if s.pauseFn == nil {
		return fmt.Errorf("unexpected pause call")
	}
	return s.pauseFn(ctx, caller)
}

func (s stubMutatingService) Unpause(ctx context.Context, caller string) error {
	if s.unpauseFn == nil {
		return fmt.Errorf("unexpected unpause call")
	}
	return s.unpauseFn(ctx, caller)
}

func (s stubMutatingService) WhitelistToken(ctx context.Context, caller string, tokenID string) error {
	if s.whitelistFn == nil {
		return fmt.Errorf("unexpected whitelist call")
	}
	return s.whitelistFn(ctx, caller, tokenID)
}

func (s stubMutatingService) RemoveTokenFromWhitelist(ctx context.Context, caller string, tokenID string) error {
	if s.removeFn == nil {
		return fmt.Errorf("unexpected remove call")
	}
	return s.removeFn(ctx, caller, tokenID)
}

func (s stubMutatingService) AddAdmin(ctx context.Context, caller string, identity string) (bool, error) {
	if s.addAdminFn == nil {
		return false, fmt.Errorf("unexpected add admin call")
	}
	return s.addAdminFn(ctx, caller, identity)
}

func (s stubMutatingService) RemoveAdmin(ctx context.Context, caller string, identity string) (bool, error) {
	if s.dropAdminFn == nil {
		return false, fmt.Errorf("unexpected remove admin call")
	}
	return s.dropAdminFn(ctx, caller, identity)
}

func TestDepositCommand_ExecuteDelegatesAndStoresResult(t *testing.T) {
	expected := uint256.NewInt(75)
	called := false

	svc := stubMutatingService{
		depositFn: func(_ context.Context, req core.DepositRequest) (*uint256.Int, error) {
			called = true
			if req.TokenID != "tok" || req.Caller != "alice" {
				t.Fatalf("unexpected deposit payload: %q %q", req.TokenID, req.Caller)
			}
			return expected, nil
		},
	}

	cmd := NewDepositCommand(svc)
	collector := gocmd.NewResult[*uint256.Int]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	err := cmd.Execute(ctx, DepositMessage{Request: core.DepositRequest{
		TokenID: "tok",
		Caller:  "alice",
		Amount:  uint256.NewInt(75),
	}})
	if err != nil {
		t.Fatalf("execute deposit: %v", err)
	}
	if !called {
		t.Fatalf("expected deposit service invocation")
	}
	result, ok := collector.Load()
	if !ok {
		t.Fatalf("expected result to be stored")
	}
	if !result.Eq(expected) {
		t.Fatalf("unexpected result: %s", result.Dec())
	}
}

func TestWithdrawCommand_ExecuteDelegatesAndStoresResult(t *testing.T) {
	svc := stubMutatingService{
		withdrawFn: func(_ context.Context, req core.WithdrawRequest) (*uint256.Int, error) {
			if req.TokenID != "tok" {
				t.Fatalf("unexpected token: %q", req.TokenID)
			}
			return uint256.NewInt(25), nil
		},
	}

	cmd := NewWithdrawCommand(svc)
	collector := gocmd.NewResult[*uint256.Int]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	err := cmd.Execute(ctx, WithdrawMessage{Request: core.WithdrawRequest{
		TokenID: "tok",
		Caller:  "alice",
		Amount:  uint256.NewInt(5),
	}})
	if err != nil {
		t.Fatalf("execute withdraw: %v", err)
	}
	result, ok := collector.Load()
	if !ok || !result.Eq(uint256.NewInt(25)) {
		t.Fatalf("expected stored balance 25, got ok=%v", ok)
	}
}

func TestControlCommands_DelegateToService(t *testing.T) {
	t.Run("pause", func(t *testing.T) {
		called := false
		svc := stubMutatingService{
			pauseFn: func(_ context.Context, caller string) error {
				called = true
				if caller != "admin-1" {
					t.Fatalf("unexpected caller: %q", caller)
				}
				return nil
			},
		}
		if err := NewPauseCommand(svc).Execute(context.Background(), PauseMessage{Caller: "admin-1"}); err != nil {
			t.Fatalf("execute pause: %v", err)
		}
		if !called {
			t.Fatalf("expected pause invocation")
		}
	})

	t.Run("unpause", func(t *testing.T) {
		svc := stubMutatingService{
			unpauseFn: func(_ context.Context, caller string) error {
				if caller != "admin-1" {
					t.Fatalf("unexpected caller: %q", caller)
				}
				return nil
			},
		}
		if err := NewUnpauseCommand(svc).Execute(context.Background(), UnpauseMessage{Caller: "admin-1"}); err != nil {
			t.Fatalf("execute unpause: %v", err)
		}
	})

	t.Run("whitelist", func(t *testing.T) {
		svc := stubMutatingService{
			whitelistFn: func(_ context.Context, caller string, tokenID string) error {
				if caller != "admin-1" || tokenID != "tok" {
					t.Fatalf("unexpected whitelist payload: %q %q", caller, tokenID)
				}
				return nil
			},
		}
		err := NewWhitelistTokenCommand(svc).Execute(context.Background(), WhitelistTokenMessage{
			Caller:  "admin-1",
			TokenID: "tok",
		})
		if err != nil {
			t.Fatalf("execute whitelist: %v", err)
		}
	})

	t.Run("remove_whitelist", func(t *testing.T) {
		svc := stubMutatingService{
			removeFn: func(_ context.Context, caller string, tokenID string) error {
				if tokenID != "tok" {
					t.Fatalf("unexpected token: %q", tokenID)
				}
				return nil
			},
		}
		err := NewRemoveTokenFromWhitelistCommand(svc).Execute(context.Background(), RemoveTokenFromWhitelistMessage{
			Caller:  "admin-1",
			TokenID: "tok",
		})
		if err != nil {
			t.Fatalf("execute remove whitelist: %v", err)
		}
	})
}

func TestAddAdminCommand_StoresChangeResult(t *testing.T) {
	svc := stubMutatingService{
		addAdminFn: func(_ context.Context, caller string, identity string) (bool, error) {
			if caller != "owner-1" || identity != "admin-1" {
				t.Fatalf("unexpected admin payload: %q %q", caller, identity)
			}
			return true, nil
		},
	}

	cmd := NewAddAdminCommand(svc)
	collector := gocmd.NewResult[AdminChangeResult]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	if err := cmd.Execute(ctx, AddAdminMessage{Caller: "owner-1", Identity: "admin-1"}); err != nil {
		t.Fatalf("execute add admin: %v", err)
	}
	result, ok := collector.Load()
	if !ok {
		t.Fatalf("expected stored change result")
	}
	if !result.Changed || result.Identity != "admin-1" {
		t.Fatalf("unexpected change result: %+v", result)
	}
}

func TestRemoveAdminCommand_ReportsSoftNoOp(t *testing.T) {
	svc := stubMutatingService{
		dropAdminFn: func(_ context.Context, _ string, _ string) (bool, error) {
			return false, nil
		},
	}

	cmd := NewRemoveAdminCommand(svc)
	collector := gocmd.NewResult[AdminChangeResult]()
	ctx := gocmd.ContextWithResult(context.Background(), collector)

	if err := cmd.Execute(ctx, RemoveAdminMessage{Caller: "owner-1", Identity: "ghost"}); err != nil {
		t.Fatalf("execute remove admin: %v", err)
	}
	result, ok := collector.Load()
	if !ok || result.Changed {
		t.Fatalf("expected soft no-op result, got ok=%v result=%+v", ok, result)
	}
}

func TestCommands_RequireService(t *testing.T) {
	if err := (&DepositCommand{}).Execute(context.Background(), DepositMessage{}); err == nil {
		t.Fatalf("expected dependency error for nil service")
	}
	if err := (&PauseCommand{}).Execute(context.Background(), PauseMessage{}); err == nil {
		t.Fatalf("expected dependency error for nil service")
	}
}

func TestMessages_Validate(t *testing.T) {
	if err := (DepositMessage{}).Validate(); err == nil {
		t.Fatalf("expected empty deposit message to fail validation")
	}
	valid := DepositMessage{Request: core.DepositRequest{
		TokenID: "tok",
		Caller:  "alice",
		Amount:  uint256.NewInt(1),
	}}
	if err := valid.Validate(); err != nil {
		t.Fatalf("expected valid deposit message, got %v", err)
	}
	if err := (AddAdminMessage{Caller: "owner-1"}).Validate(); err == nil {
		t.Fatalf("expected missing identity to fail validation")
	}
	if err := (WhitelistTokenMessage{TokenID: "tok"}).Validate(); err == nil {
		t.Fatalf("expected missing caller to fail validation")
	}
}

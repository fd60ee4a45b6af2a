package command

import (
	"context"

	gocmd "github.com/goliatone/go-command"
	"github.com/holiman/uint256"
	"github.com/light-fury/tsunami-vault/core"
)

type MutatingService interface {
	Deposit(ctx context.Context, req core.DepositRequest) (*uint256.Int, error)
	Withdraw(ctx context.Context, req core.WithdrawRequest) (*uint256.Int, error)
	Pause(ctx context.Context, caller string) error
	Unpause(ctx context.Context, caller string) error
	WhitelistToken(ctx context.Context, caller string, tokenID string) error
	RemoveTokenFromWhitelist(ctx context.Context, caller string, tokenID string) error
	AddAdmin(ctx context.Context, caller string, identity string) (bool, error)
	RemoveAdmin(ctx context.Context, caller string, identity string) (bool, error)
}

// AdminChangeResult reports whether a role mutation actually changed the
// admin set.
type AdminChangeResult struct {
	Identity string
	Changed  bool
}

type DepositCommand struct {
	service MutatingService
}

func NewDepositCommand(service MutatingService) *DepositCommand {
	return &DepositCommand{service: service}
}

func (c *DepositCommand) Execute(ctx context.Context, msg DepositMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: deposit service is required")
	}
	balance, err := c.service.Deposit(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, balance)
	return nil
}

type WithdrawCommand struct {
	service MutatingService
}

func NewWithdrawCommand(service MutatingService) *WithdrawCommand {
	return &WithdrawCommand{service: service}
}

func (c *WithdrawCommand) Execute(ctx context.Context, msg WithdrawMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: withdraw service is required")
	}
	balance, err := c.service.Withdraw(ctx, msg.Request)
	if err != nil {
		return err
	}
	storeResult(ctx, balance)
	return nil
}

type PauseCommand struct {
	service MutatingService
}

func NewPauseCommand(service MutatingService) *PauseCommand {
	return &PauseCommand{service: service}
}

func (c *PauseCommand) Execute(ctx context.Context, msg PauseMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: pause service is required")
	}
	return c.service.Pause(ctx, msg.Caller)
}

type UnpauseCommand struct {
	service MutatingService
}

func NewUnpauseCommand(service MutatingService) *UnpauseCommand {
	return &UnpauseCommand{service: service}
}

func (c *UnpauseCommand) Execute(ctx context.Context, msg UnpauseMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: unpause service is required")
	}
	return c.service.Unpause(ctx, msg.Caller)
}

type WhitelistTokenCommand struct {
	service MutatingService
}

func NewWhitelistTokenCommand(service MutatingService) *WhitelistTokenCommand {
	return &WhitelistTokenCommand{service: service}
}

func (c *WhitelistTokenCommand) Execute(ctx context.Context, msg WhitelistTokenMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: whitelist service is required")
	}
	return c.service.WhitelistToken(ctx, msg.Caller, msg.TokenID)
}

type RemoveTokenFromWhitelistCommand struct {
	service MutatingService
}

func NewRemoveTokenFromWhitelistCommand(service MutatingService) *RemoveTokenFromWhitelistCommand {
	return &RemoveTokenFromWhitelistCommand{service: service}
}

func (c *RemoveTokenFromWhitelistCommand) Execute(ctx context.Context, msg RemoveTokenFromWhitelistMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: whitelist service is required")
	}
	return c.service.RemoveTokenFromWhitelist(ctx, msg.Caller, msg.TokenID)
}

type AddAdminCommand struct {
	service MutatingService
}

func NewAddAdminCommand(service MutatingService) *AddAdminCommand {
	return &AddAdminCommand{service: service}
}

func (c *AddAdminCommand) Execute(ctx context.Context, msg AddAdminMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: admin service is required")
	}
	changed, err := c.service.AddAdmin(ctx, msg.Caller, msg.Identity)
	if err != nil {
		return err
	}
	storeResult(ctx, AdminChangeResult{Identity: msg.Identity, Changed: changed})
	return nil
}

type RemoveAdminCommand struct {
	service MutatingService
}

func NewRemoveAdminCommand(service MutatingService) *RemoveAdminCommand {
	return &RemoveAdminCommand{service: service}
}

func (c *RemoveAdminCommand) Execute(ctx context.Context, msg RemoveAdminMessage) error {
	if c == nil || c.service == nil {
		return commandDependencyError("command: admin service is required")
	}
	changed, err := c.service.RemoveAdmin(ctx, msg.Caller, msg.Identity)
	if err != nil {
		return err
	}
	storeResult(ctx, AdminChangeResult{Identity: msg.Identity, Changed: changed})
	return nil
}

func storeResult[T any](ctx context.Context, value T) {
	collector := gocmd.ResultFromContext[T](ctx)
	if collector == nil {
		return
	}
	collector.Store(value)
}

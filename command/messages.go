package command

import (
	"fmt"
	"strings"

	"github.com/light-fury/tsunami-vault/core"
)

const (
	TypeDeposit                  = "vault.command.deposit"
	TypeWithdraw                 = "vault.command.withdraw"
	TypePause                    = "vault.command.pause"
	TypeUnpause                  = "vault.command.unpause"
	TypeWhitelistToken           = "vault.command.whitelist.add"
	TypeRemoveTokenFromWhitelist = "vault.command.whitelist.remove"
	TypeAddAdmin                 = "vault.command.admin.add"
	TypeRemoveAdmin              = "vault.command.admin.remove"
)

type DepositMessage struct {
	Request core.DepositRequest
}

func (DepositMessage) Type() string { return TypeDeposit }

func (m DepositMessage) Validate() error {
	return validateTransferMessage(m.Request.TokenID, m.Request.Caller, m.Request.Amount != nil)
}

type WithdrawMessage struct {
	Request core.WithdrawRequest
}

func (WithdrawMessage) Type() string { return TypeWithdraw }

func (m WithdrawMessage) Validate() error {
	return validateTransferMessage(m.Request.TokenID, m.Request.Caller, m.Request.Amount != nil)
}

type PauseMessage struct {
	Caller string
}

func (PauseMessage) Type() string { return TypePause }

func (m PauseMessage) Validate() error {
	if strings.TrimSpace(m.Caller) == "" {
		return fmt.Errorf("command: caller is required")
	}
	return nil
}

type UnpauseMessage struct {
	Caller string
}

func (UnpauseMessage) Type() string { return TypeUnpause }

func (m UnpauseMessage) Validate() error {
	if strings.TrimSpace(m.Caller) == "" {
		return fmt.Errorf("command: caller is required")
	}
	return nil
}

type WhitelistTokenMessage struct {
	Caller  string
	TokenID string
}

func (WhitelistTokenMessage) Type() string { return TypeWhitelistToken }

func (m WhitelistTokenMessage) Validate() error {
	return validateControlMessage(m.Caller, m.TokenID, "token id")
}

type RemoveTokenFromWhitelistMessage struct {
	Caller  string
	TokenID string
}

func (RemoveTokenFromWhitelistMessage) Type() string { return TypeRemoveTokenFromWhitelist }

func (m RemoveTokenFromWhitelistMessage) Validate() error {
	return validateControlMessage(m.Caller, m.TokenID, "token id")
}

type AddAdminMessage struct {
	Caller   string
	Identity string
}

func (AddAdminMessage) Type() string { return TypeAddAdmin }

func (m AddAdminMessage) Validate() error {
	return validateControlMessage(m.Caller, m.Identity, "identity")
}

type RemoveAdminMessage struct {
	Caller   string
	Identity string
}

func (RemoveAdminMessage) Type() string { return TypeRemoveAdmin }

func (m RemoveAdminMessage) Validate() error {
	return validateControlMessage(m.Caller, m.Identity, "identity")
}

func validateTransferMessage(tokenID string, caller string, hasAmount bool) error {
	if strings.TrimSpace(tokenID) == "" {
		return fmt.Errorf("command: token id is required")
	}
	if strings.TrimSpace(caller) == "" {
		return fmt.Errorf("command: caller is required")
	}
	if !hasAmount {
		return fmt.Errorf("command: amount is required")
	}
	return nil
}

func validateControlMessage(caller string, subject string, subjectName string) error {
	if strings.TrimSpace(caller) == "" {
		return fmt.Errorf("command: caller is required")
	}
	if strings.TrimSpace(subject) == "" {
		return fmt.Errorf("command: %s is required", subjectName)
	}
	return nil
}

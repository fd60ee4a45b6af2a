package command

import gocmd "github.com/goliatone/go-command"

var (
	_ gocmd.Commander[DepositMessage]                  = (*DepositCommand)(nil)
	_ gocmd.Commander[WithdrawMessage]                 = (*WithdrawCommand)(nil)
	_ gocmd.Commander[PauseMessage]                    = (*PauseCommand)(nil)
	_ gocmd.Commander[UnpauseMessage]                  = (*UnpauseCommand)(nil)
	_ gocmd.Commander[WhitelistTokenMessage]           = (*WhitelistTokenCommand)(nil)
	_ gocmd.Commander[RemoveTokenFromWhitelistMessage] = (*RemoveTokenFromWhitelistCommand)(nil)
	_ gocmd.Commander[AddAdminMessage]                 = (*AddAdminCommand)(nil)
	_ gocmd.Commander[RemoveAdminMessage]              = (*RemoveAdminCommand)(nil)
)

package sqlstore

import "github.com/light-fury/tsunami-vault/core"

var (
	_ core.LedgerStore            = (*LedgerStore)(nil)
	_ core.ControlStore           = (*ControlStore)(nil)
	_ core.EventStore             = (*EventStore)(nil)
	_ core.StoreProvider          = (*RepositoryFactory)(nil)
	_ core.RepositoryStoreFactory = (*RepositoryFactory)(nil)
)

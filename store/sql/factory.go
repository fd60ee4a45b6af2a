package sqlstore

import (
	"fmt"

	persistence "github.com/goliatone/go-persistence-bun"
	"github.com/light-fury/tsunami-vault/core"
	"github.com/uptrace/bun"
)

type RepositoryFactory struct {
	db *bun.DB

	ledgerStore  *LedgerStore
	controlStore *ControlStore
	eventStore   *EventStore
}

func NewRepositoryFactory() *RepositoryFactory {
	return &RepositoryFactory{}
}

func NewRepositoryFactoryFromPersistence(client *persistence.Client) (*RepositoryFactory, error) {
	factory := NewRepositoryFactory()
	if _, err := factory.BuildStores(client); err != nil {
		return nil, err
	}
	return factory, nil
}

func NewRepositoryFactoryFromDB(db *bun.DB) (*RepositoryFactory, error) {
	factory := NewRepositoryFactory()
	if _, err := factory.BuildStores(db); err != nil {
		return nil, err
	}
	return factory, nil
}

func (f *RepositoryFactory) BuildStores(persistenceClient any) (core.StoreProvider, error) {
	if f == nil {
		return nil, fmt.Errorf("sqlstore: repository factory is nil")
	}
	if f.db == nil {
		db, err := resolveBunDB(persistenceClient)
		if err != nil {
			return nil, err
		}
		f.db = db
	}
	if f.ledgerStore != nil && f.controlStore != nil && f.eventStore != nil {
		return f, nil
	}
	if err := f.initStores(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *RepositoryFactory) LedgerStore() core.LedgerStore {
	if f == nil {
		return nil
	}
	return f.ledgerStore
}

func (f *RepositoryFactory) ControlStore() core.ControlStore {
	if f == nil {
		return nil
	}
	return f.controlStore
}

func (f *RepositoryFactory) EventStore() core.EventStore {
	if f == nil {
		return nil
	}
	return f.eventStore
}

func (f *RepositoryFactory) DB() *bun.DB {
	if f == nil {
		return nil
	}
	return f.db
}

func (f *RepositoryFactory) initStores() error {
	ledgerStore, err := NewLedgerStore(f.db)
	if err != nil {
		return err
	}
	f.ledgerStore = ledgerStore

	controlStore, err := NewControlStore(f.db)
	if err != nil {
		return err
	}
	f.controlStore = controlStore

	eventStore, err := NewEventStore(f.db)
	if err != nil {
		return err
	}
	f.eventStore = eventStore

	return nil
}

func resolveBunDB(candidate any) (*bun.DB, error) {
	switch typed := candidate.(type) {
	case nil:
		return nil, fmt.Errorf("sqlstore: persistence client is required")
	case *bun.DB:
		return typed, nil
	case interface{ DB() *bun.DB }:
		db := typed.DB()
		if db == nil {
			return nil, fmt.Errorf("sqlstore: persistence client returned nil bun db")
		}
		return db, nil
	default:
		return nil, fmt.Errorf("sqlstore: unsupported persistence client type %T", candidate)
	}
}

package vault

import "github.com/light-fury/tsunami-vault/core"

type Config = core.Config

type Option = core.Option

type Vault = core.Vault

type VaultDependencies = core.VaultDependencies
type Token = core.Token
type Registry = core.Registry
type LedgerStore = core.LedgerStore
type ControlStore = core.ControlStore
type EventStore = core.EventStore
type StoreProvider = core.StoreProvider
type MetricsRecorder = core.MetricsRecorder

type DepositRequest = core.DepositRequest
type WithdrawRequest = core.WithdrawRequest

type LedgerEntry = core.LedgerEntry

type VaultEvent = core.VaultEvent

type EventFilter = core.EventFilter

var (
	WithLogger            = core.WithLogger
	WithLoggerProvider    = core.WithLoggerProvider
	WithMetricsRecorder   = core.WithMetricsRecorder
	WithErrorFactory      = core.WithErrorFactory
	WithErrorMapper       = core.WithErrorMapper
	WithPersistenceClient = core.WithPersistenceClient
	WithRepositoryFactory = core.WithRepositoryFactory
	WithConfigProvider    = core.WithConfigProvider
	WithOptionsResolver   = core.WithOptionsResolver
	WithRegistry          = core.WithRegistry
	WithLedgerStore       = core.WithLedgerStore
	WithControlStore      = core.WithControlStore
	WithEventStore        = core.WithEventStore
)

func DefaultConfig() Config {
	return core.DefaultConfig()
}

func NewVault(cfg Config, opts ...Option) (*Vault, error) {
	return core.NewVault(cfg, opts...)
}

func Setup(cfg Config, opts ...Option) (*Vault, error) {
	return core.Setup(cfg, opts...)
}

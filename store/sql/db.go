package sqlstore

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	persistence "github.com/goliatone/go-persistence-bun"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

type persistenceConfig struct {
	debug       bool
	driver      string
	server      string
	pingTimeout time.Duration
	otelName    string
}

func (c persistenceConfig) GetDebug() bool {
	return c.debug
}

func (c persistenceConfig) GetDriver() string {
	return c.driver
}

func (c persistenceConfig) GetServer() string {
	return c.server
}

func (c persistenceConfig) GetPingTimeout() time.Duration {
	if c.pingTimeout <= 0 {
		return time.Second
	}
	return c.pingTimeout
}

func (c persistenceConfig) GetOtelIdentifier() string {
	if strings.TrimSpace(c.otelName) == "" {
		return "tsunami-vault"
	}
	return c.otelName
}

// NewSQLiteClient opens a sqlite-backed persistence client. An empty dsn
// yields a private in-memory database.
func NewSQLiteClient(dsn string) (*persistence.Client, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		dsn = fmt.Sprintf("file:vault-%d?mode=memory&cache=shared&_foreign_keys=on", time.Now().UnixNano())
	}
	sqlDB, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open sqlite db: %w", err)
	}
	sqlDB.SetMaxOpenConns(1)

	client, err := persistence.New(persistenceConfig{driver: "sqlite3", server: dsn}, sqlDB, sqlitedialect.New())
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("sqlstore: new sqlite persistence client: %w", err)
	}
	return client, nil
}

// NewPostgresClient opens a postgres-backed persistence client using lib/pq.
func NewPostgresClient(dsn string) (*persistence.Client, error) {
	dsn = strings.TrimSpace(dsn)
	if dsn == "" {
		return nil, fmt.Errorf("sqlstore: postgres dsn is required")
	}
	sqlDB, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: open postgres db: %w", err)
	}

	client, err := persistence.New(persistenceConfig{driver: "postgres", server: dsn}, sqlDB, pgdialect.New())
	if err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("sqlstore: new postgres persistence client: %w", err)
	}
	return client, nil
}

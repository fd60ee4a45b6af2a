package sqlstore

import (
	"time"

	"github.com/uptrace/bun"
)

type balanceRecord struct {
	bun.BaseModel `bun:"table:vault_balances,alias:vb"`

	ID        string    `bun:"id,pk"`
	TokenID   string    `bun:"token_id,notnull"`
	Holder    string    `bun:"holder,notnull"`
	Amount    string    `bun:"amount,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

type whitelistRecord struct {
	bun.BaseModel `bun:"table:vault_whitelist,alias:vw"`

	ID        string    `bun:"id,pk"`
	TokenID   string    `bun:"token_id,notnull"`
	Allowed   bool      `bun:"allowed,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

type adminRecord struct {
	bun.BaseModel `bun:"table:vault_admins,alias:va"`

	ID        string    `bun:"id,pk"`
	Identity  string    `bun:"identity,notnull"`
	Granted   bool      `bun:"granted,notnull"`
	CreatedAt time.Time `bun:"created_at,nullzero,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

type gateRecord struct {
	bun.BaseModel `bun:"table:vault_gate,alias:vg"`

	ID        string    `bun:"id,pk"`
	FlagName  string    `bun:"flag_name,notnull"`
	Engaged   bool      `bun:"engaged,notnull"`
	UpdatedAt time.Time `bun:"updated_at,nullzero,notnull,default:current_timestamp"`
}

type vaultEventRecord struct {
	bun.BaseModel `bun:"table:vault_events,alias:ve"`

	ID         string         `bun:"id,pk"`
	EventType  string         `bun:"event_type,notnull"`
	TokenID    string         `bun:"token_id,notnull"`
	Holder     string         `bun:"holder,notnull"`
	Amount     string         `bun:"amount,notnull"`
	Metadata   map[string]any `bun:"metadata,type:jsonb,notnull"`
	OccurredAt time.Time      `bun:"occurred_at,nullzero,notnull"`
	CreatedAt  time.Time      `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

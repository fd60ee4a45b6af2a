package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/light-fury/tsunami-vault/core"
	"github.com/uptrace/bun"
)

// LedgerStore persists one row per (token, holder) pair with the current
// tracked amount.
type LedgerStore struct {
	db   *bun.DB
	repo repository.Repository[*balanceRecord]
}

func NewLedgerStore(db *bun.DB) (*LedgerStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*balanceRecord](db, balanceHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid balance repository wiring: %w", err)
		}
	}
	return &LedgerStore{db: db, repo: repo}, nil
}

func (s *LedgerStore) UpsertBalance(ctx context.Context, entry core.LedgerEntry) error {
	if s == nil || s.repo == nil {
		return fmt.Errorf("sqlstore: ledger store is not configured")
	}
	tokenID := strings.TrimSpace(entry.TokenID)
	holder := strings.TrimSpace(entry.Holder)
	if tokenID == "" || holder == "" {
		return fmt.Errorf("sqlstore: token id and holder are required")
	}
	if entry.Amount == nil {
		return fmt.Errorf("sqlstore: amount is required")
	}

	now := time.Now().UTC()
	existing, _, err := s.repo.List(ctx,
		repository.SelectBy("token_id", "=", tokenID),
		repository.SelectBy("holder", "=", holder),
	)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		record := existing[0]
		record.Amount = encodeAmount(entry.Amount)
		record.UpdatedAt = now
		_, err = s.repo.Update(ctx, record, repository.UpdateByID(record.ID))
		return err
	}

	_, err = s.repo.Create(ctx, newBalanceRecord(entry, now))
	return err
}

func (s *LedgerStore) ListBalances(ctx context.Context) ([]core.LedgerEntry, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("sqlstore: ledger store is not configured")
	}
	records, _, err := s.repo.List(ctx,
		repository.OrderBy("token_id ASC"),
		repository.OrderBy("holder ASC"),
	)
	if err != nil {
		return nil, err
	}
	out := make([]core.LedgerEntry, 0, len(records))
	for _, record := range records {
		entry, convertErr := record.toDomain()
		if convertErr != nil {
			return nil, convertErr
		}
		out = append(out, entry)
	}
	return out, nil
}

package sqlstore

import (
	"context"
	"fmt"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/light-fury/tsunami-vault/core"
	"github.com/uptrace/bun"
)

// EventStore journals deposit and withdrawal events in append order.
type EventStore struct {
	repo repository.Repository[*vaultEventRecord]
}

func NewEventStore(db *bun.DB) (*EventStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	repo := repository.NewRepository[*vaultEventRecord](db, eventHandlers())
	if validator, ok := repo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid event repository wiring: %w", err)
		}
	}
	return &EventStore{repo: repo}, nil
}

func (s *EventStore) Append(ctx context.Context, event core.VaultEvent) error {
	if s == nil || s.repo == nil {
		return fmt.Errorf("sqlstore: event store is not configured")
	}
	if strings.TrimSpace(event.EventType) == "" {
		return fmt.Errorf("sqlstore: event type is required")
	}
	if strings.TrimSpace(event.TokenID) == "" || strings.TrimSpace(event.Holder) == "" {
		return fmt.Errorf("sqlstore: event token id and holder are required")
	}

	record := newVaultEventRecord(event, time.Now().UTC())
	if strings.TrimSpace(record.ID) == "" {
		record.ID = uuid.NewString()
	}
	_, err := s.repo.Create(ctx, record)
	return err
}

func (s *EventStore) List(ctx context.Context, filter core.EventFilter) ([]core.VaultEvent, error) {
	if s == nil || s.repo == nil {
		return nil, fmt.Errorf("sqlstore: event store is not configured")
	}

	criteria := []repository.SelectCriteria{
		repository.OrderBy("occurred_at ASC"),
		repository.OrderBy("created_at ASC"),
	}
	if tokenID := strings.TrimSpace(filter.TokenID); tokenID != "" {
		criteria = append(criteria, repository.SelectBy("token_id", "=", tokenID))
	}
	if holder := strings.TrimSpace(filter.Holder); holder != "" {
		criteria = append(criteria, repository.SelectBy("holder", "=", holder))
	}
	if eventType := strings.TrimSpace(filter.EventType); eventType != "" {
		criteria = append(criteria, repository.SelectBy("event_type", "=", eventType))
	}
	if filter.Limit > 0 {
		limit := filter.Limit
		criteria = append(criteria, repository.SelectRawProcessor(func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Limit(limit)
		}))
	}

	records, _, err := s.repo.List(ctx, criteria...)
	if err != nil {
		return nil, err
	}
	out := make([]core.VaultEvent, 0, len(records))
	for _, record := range records {
		event, convertErr := record.toDomain()
		if convertErr != nil {
			return nil, convertErr
		}
		out = append(out, event)
	}
	return out, nil
}

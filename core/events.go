package core

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/holiman/uint256"
)

const (
	EventTypeDeposit    = "deposit"
	EventTypeWithdrawal = "withdrawal"
)

// VaultEvent is the observable record emitted exactly once per successful
// deposit or withdrawal, never on failure.
type VaultEvent struct {
	ID         string
	EventType  string
	TokenID    string
	Holder     string
	Amount     *uint256.Int
	OccurredAt time.Time
	Metadata   map[string]any
}

func (e VaultEvent) Clone() VaultEvent {
	out := e
	if e.Amount != nil {
		out.Amount = new(uint256.Int).Set(e.Amount)
	}
	out.Metadata = copyAnyMap(e.Metadata)
	return out
}

type EventFilter struct {
	TokenID   string
	Holder    string
	EventType string
	Limit     int
}

// MemoryEventStore is the default journal when no repository factory is
// configured.
type MemoryEventStore struct {
	mu     sync.Mutex
	events []VaultEvent
}

func NewMemoryEventStore() *MemoryEventStore {
	return &MemoryEventStore{}
}

func (s *MemoryEventStore) Append(_ context.Context, event VaultEvent) error {
	if s == nil {
		return fmt.Errorf("core: event store is not configured")
	}
	if strings.TrimSpace(event.EventType) == "" {
		return fmt.Errorf("core: event type is required")
	}
	s.mu.Lock()
	s.events = append(s.events, event.Clone())
	s.mu.Unlock()
	return nil
}

func (s *MemoryEventStore) List(_ context.Context, filter EventFilter) ([]VaultEvent, error) {
	if s == nil {
		return nil, fmt.Errorf("core: event store is not configured")
	}
	tokenID := strings.TrimSpace(filter.TokenID)
	holder := strings.TrimSpace(filter.Holder)
	eventType := strings.TrimSpace(filter.EventType)

	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]VaultEvent, 0, len(s.events))
	for _, event := range s.events {
		if tokenID != "" && event.TokenID != tokenID {
			continue
		}
		if holder != "" && event.Holder != holder {
			continue
		}
		if eventType != "" && event.EventType != eventType {
			continue
		}
		out = append(out, event.Clone())
		if filter.Limit > 0 && len(out) >= filter.Limit {
			break
		}
	}
	return out, nil
}

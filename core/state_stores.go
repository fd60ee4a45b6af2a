package core

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/holiman/uint256"
)

// MemoryLedgerStore is the default balance snapshot store when no repository
// factory is configured.
type MemoryLedgerStore struct {
	mu       sync.Mutex
	balances map[string]map[string]*uint256.Int
}

func NewMemoryLedgerStore() *MemoryLedgerStore {
	return &MemoryLedgerStore{balances: make(map[string]map[string]*uint256.Int)}
}

func (s *MemoryLedgerStore) UpsertBalance(_ context.Context, entry LedgerEntry) error {
	if s == nil {
		return fmt.Errorf("core: ledger store is not configured")
	}
	tokenID := strings.TrimSpace(entry.TokenID)
	holder := strings.TrimSpace(entry.Holder)
	if tokenID == "" || holder == "" || entry.Amount == nil {
		return fmt.Errorf("core: ledger entry token id, holder and amount are required")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	holders, ok := s.balances[tokenID]
	if !ok {
		holders = make(map[string]*uint256.Int)
		s.balances[tokenID] = holders
	}
	holders[holder] = new(uint256.Int).Set(entry.Amount)
	return nil
}

func (s *MemoryLedgerStore) ListBalances(_ context.Context) ([]LedgerEntry, error) {
	if s == nil {
		return nil, fmt.Errorf("core: ledger store is not configured")
	}
	s.mu.Lock()
	out := make([]LedgerEntry, 0, len(s.balances))
	for tokenID, holders := range s.balances {
		for holder, amount := range holders {
			out = append(out, LedgerEntry{
				TokenID: tokenID,
				Holder:  holder,
				Amount:  new(uint256.Int).Set(amount),
			})
		}
	}
	s.mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].TokenID != out[j].TokenID {
			return out[i].TokenID < out[j].TokenID
		}
		return out[i].Holder < out[j].Holder
	})
	return out, nil
}

// MemoryControlStore is the default whitelist/admin/pause store.
type MemoryControlStore struct {
	mu        sync.Mutex
	whitelist map[string]bool
	admins    map[string]bool
	paused    bool
}

func NewMemoryControlStore() *MemoryControlStore {
	return &MemoryControlStore{
		whitelist: make(map[string]bool),
		admins:    make(map[string]bool),
	}
}

func (s *MemoryControlStore) SetWhitelisted(_ context.Context, tokenID string, allowed bool) error {
	if s == nil {
		return fmt.Errorf("core: control store is not configured")
	}
	tokenID = strings.TrimSpace(tokenID)
	if tokenID == "" {
		return ErrTokenIDRequired
	}
	s.mu.Lock()
	s.whitelist[tokenID] = allowed
	s.mu.Unlock()
	return nil
}

func (s *MemoryControlStore) ListWhitelisted(_ context.Context) ([]string, error) {
	if s == nil {
		return nil, fmt.Errorf("core: control store is not configured")
	}
	s.mu.Lock()
	out := make([]string, 0, len(s.whitelist))
	for tokenID, allowed := range s.whitelist {
		if allowed {
			out = append(out, tokenID)
		}
	}
	s.mu.Unlock()
	sort.Strings(out)
	return out, nil
}

func (s *MemoryControlStore) SetAdmin(_ context.Context, identity string, granted bool) error {
	if s == nil {
		return fmt.Errorf("core: control store is not configured")
	}
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return ErrIdentityRequired
	}
	s.mu.Lock()
	s.admins[identity] = granted
	s.mu.Unlock()
	return nil
}

func (s *MemoryControlStore) ListAdmins(_ context.Context) ([]string, error) {
	if s == nil {
		return nil, fmt.Errorf("core: control store is not configured")
	}
	s.mu.Lock()
	out := make([]string, 0, len(s.admins))
	for identity, granted := range s.admins {
		if granted {
			out = append(out, identity)
		}
	}
	s.mu.Unlock()
	sort.Strings(out)
	return out, nil
}

func (s *MemoryControlStore) SetPaused(_ context.Context, paused bool) error {
	if s == nil {
		return fmt.Errorf("core: control store is not configured")
	}
	s.mu.Lock()
	s.paused = paused
	s.mu.Unlock()
	return nil
}

func (s *MemoryControlStore) Paused(_ context.Context) (bool, error) {
	if s == nil {
		return false, fmt.Errorf("core: control store is not configured")
	}
	s.mu.Lock()
	paused := s.paused
	s.mu.Unlock()
	return paused, nil
}

package core

import (
	"sort"
	"strings"
	"sync"
)

// WhitelistRegistry tracks which token ids are eligible for deposit and
// withdrawal. Absence of an entry means not whitelisted; entries are only
// flipped, never deleted.
type WhitelistRegistry struct {
	mu      sync.RWMutex
	entries map[string]bool
}

func NewWhitelistRegistry() *WhitelistRegistry {
	return &WhitelistRegistry{entries: make(map[string]bool)}
}

func (w *WhitelistRegistry) IsWhitelisted(tokenID string) bool {
	if w == nil {
		return false
	}
	tokenID = strings.TrimSpace(tokenID)
	if tokenID == "" {
		return false
	}
	w.mu.RLock()
	allowed := w.entries[tokenID]
	w.mu.RUnlock()
	return allowed
}

func (w *WhitelistRegistry) Set(tokenID string, allowed bool) error {
	if w == nil {
		return ErrTokenIDRequired
	}
	tokenID = strings.TrimSpace(tokenID)
	if tokenID == "" {
		return ErrTokenIDRequired
	}
	w.mu.Lock()
	w.entries[tokenID] = allowed
	w.mu.Unlock()
	return nil
}

func (w *WhitelistRegistry) List() []string {
	if w == nil {
		return nil
	}
	w.mu.RLock()
	out := make([]string, 0, len(w.entries))
	for tokenID, allowed := range w.entries {
		if allowed {
			out = append(out, tokenID)
		}
	}
	w.mu.RUnlock()
	sort.Strings(out)
	return out
}

func (w *WhitelistRegistry) Restore(tokenIDs []string) {
	if w == nil {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for _, tokenID := range tokenIDs {
		tokenID = strings.TrimSpace(tokenID)
		if tokenID == "" {
			continue
		}
		w.entries[tokenID] = true
	}
}

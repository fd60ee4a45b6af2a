package core

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// TokenRegistry holds the external token collaborators the vault can custody,
// keyed by token id.
type TokenRegistry struct {
	mu     sync.RWMutex
	tokens map[string]Token
}

func NewTokenRegistry() *TokenRegistry {
	return &TokenRegistry{tokens: make(map[string]Token)}
}

func (r *TokenRegistry) Register(token Token) error {
	if token == nil {
		return fmt.Errorf("core: token is nil")
	}
	id := strings.TrimSpace(token.ID())
	if id == "" {
		return fmt.Errorf("core: token id is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.tokens[id]; exists {
		return fmt.Errorf("core: token already registered: %s", id)
	}
	r.tokens[id] = token
	return nil
}

func (r *TokenRegistry) Get(tokenID string) (Token, bool) {
	id := strings.TrimSpace(tokenID)
	if id == "" {
		return nil, false
	}
	r.mu.RLock()
	token, ok := r.tokens[id]
	r.mu.RUnlock()
	return token, ok
}

func (r *TokenRegistry) List() []Token {
	r.mu.RLock()
	keys := make([]string, 0, len(r.tokens))
	for id := range r.tokens {
		keys = append(keys, id)
	}
	r.mu.RUnlock()
	sort.Strings(keys)
	tokens := make([]Token, 0, len(keys))
	r.mu.RLock()
	for _, id := range keys {
		tokens = append(tokens, r.tokens[id])
	}
	r.mu.RUnlock()
	return tokens
}

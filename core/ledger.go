package core

import (
	"sort"
	"strings"
	"sync"

	"github.com/holiman/uint256"
)

// BalanceLedger is the custodial accounting record: tracked balance per
// (token, holder) pair. All arithmetic is checked; balances never go
// negative and never wrap.
type BalanceLedger struct {
	mu       sync.RWMutex
	balances map[string]map[string]*uint256.Int
}

func NewBalanceLedger() *BalanceLedger {
	return &BalanceLedger{balances: make(map[string]map[string]*uint256.Int)}
}

// Balance returns the tracked amount for (tokenID, holder). Absent pairs
// report zero.
func (l *BalanceLedger) Balance(tokenID string, holder string) *uint256.Int {
	if l == nil {
		return uint256.NewInt(0)
	}
	tokenID = strings.TrimSpace(tokenID)
	holder = strings.TrimSpace(holder)
	l.mu.RLock()
	defer l.mu.RUnlock()
	holders, ok := l.balances[tokenID]
	if !ok {
		return uint256.NewInt(0)
	}
	amount, ok := holders[holder]
	if !ok {
		return uint256.NewInt(0)
	}
	return new(uint256.Int).Set(amount)
}

// Credit adds amount to (tokenID, holder) and returns the new balance.
// A wrap fails with ErrBalanceOverflow and leaves the ledger untouched.
func (l *BalanceLedger) Credit(tokenID string, holder string, amount *uint256.Int) (*uint256.Int, error) {
	if l == nil || amount == nil {
		return nil, ErrAmountRequired
	}
	tokenID = strings.TrimSpace(tokenID)
	holder = strings.TrimSpace(holder)
	if tokenID == "" {
		return nil, ErrTokenIDRequired
	}
	if holder == "" {
		return nil, ErrIdentityRequired
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	holders, ok := l.balances[tokenID]
	if !ok {
		holders = make(map[string]*uint256.Int)
		l.balances[tokenID] = holders
	}
	current, ok := holders[holder]
	if !ok {
		current = uint256.NewInt(0)
	}
	next, overflow := new(uint256.Int).AddOverflow(current, amount)
	if overflow {
		return nil, ErrBalanceOverflow
	}
	holders[holder] = next
	return new(uint256.Int).Set(next), nil
}

// Debit subtracts amount from (tokenID, holder) and returns the new balance.
// The balance check happens before any mutation; a short balance fails with
// ErrInsufficientBalance.
func (l *BalanceLedger) Debit(tokenID string, holder string, amount *uint256.Int) (*uint256.Int, error) {
	if l == nil || amount == nil {
		return nil, ErrAmountRequired
	}
	tokenID = strings.TrimSpace(tokenID)
	holder = strings.TrimSpace(holder)
	if tokenID == "" {
		return nil, ErrTokenIDRequired
	}
	if holder == "" {
		return nil, ErrIdentityRequired
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	holders, ok := l.balances[tokenID]
	if !ok {
		if amount.IsZero() {
			return uint256.NewInt(0), nil
		}
		return nil, ErrInsufficientBalance
	}
	current, ok := holders[holder]
	if !ok {
		current = uint256.NewInt(0)
	}
	if current.Lt(amount) {
		return nil, ErrInsufficientBalance
	}
	next := new(uint256.Int).Sub(current, amount)
	holders[holder] = next
	return new(uint256.Int).Set(next), nil
}

// TokenTotal returns the sum of all tracked balances for a token. Per-token
// sums fit in uint256 by construction: every credit is bounded by the same
// checked arithmetic.
func (l *BalanceLedger) TokenTotal(tokenID string) *uint256.Int {
	total := uint256.NewInt(0)
	if l == nil {
		return total
	}
	tokenID = strings.TrimSpace(tokenID)
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, amount := range l.balances[tokenID] {
		total.Add(total, amount)
	}
	return total
}

// Entries returns a snapshot of all non-zero balances, ordered by token then
// holder.
func (l *BalanceLedger) Entries() []LedgerEntry {
	if l == nil {
		return nil
	}
	l.mu.RLock()
	out := make([]LedgerEntry, 0, len(l.balances))
	for tokenID, holders := range l.balances {
		for holder, amount := range holders {
			if amount.IsZero() {
				continue
			}
			out = append(out, LedgerEntry{
				TokenID: tokenID,
				Holder:  holder,
				Amount:  new(uint256.Int).Set(amount),
			})
		}
	}
	l.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].TokenID != out[j].TokenID {
			return out[i].TokenID < out[j].TokenID
		}
		return out[i].Holder < out[j].Holder
	})
	return out
}

// Restore seeds balances during rehydration, replacing any existing amount
// for the pair.
func (l *BalanceLedger) Restore(entries []LedgerEntry) {
	if l == nil {
		return
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, entry := range entries {
		tokenID := strings.TrimSpace(entry.TokenID)
		holder := strings.TrimSpace(entry.Holder)
		if tokenID == "" || holder == "" || entry.Amount == nil {
			continue
		}
		holders, ok := l.balances[tokenID]
		if !ok {
			holders = make(map[string]*uint256.Int)
			l.balances[tokenID] = holders
		}
		holders[holder] = new(uint256.Int).Set(entry.Amount)
	}
}

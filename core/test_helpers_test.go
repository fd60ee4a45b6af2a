package core

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/holiman/uint256"
)

// testToken is an in-memory fungible token. Transfers move real balances so
// conservation checks can compare token-side and vault-side accounting.
type testToken struct {
	id string

	mu       sync.Mutex
	balances map[string]*uint256.Int

	failTransferFrom bool
	failTransfer     bool

	// invoked before the outbound transfer completes, with the vault's
	// custody balance already debited
	onTransfer func(ctx context.Context, to string, amount *uint256.Int)
}

func newTestToken(id string) *testToken {
	return &testToken{
		id:       id,
		balances: map[string]*uint256.Int{},
	}
}

func (t *testToken) ID() string { return t.id }

func (t *testToken) mint(identity string, amount uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()
	current, ok := t.balances[identity]
	if !ok {
		current = uint256.NewInt(0)
	}
	t.balances[identity] = new(uint256.Int).Add(current, uint256.NewInt(amount))
}

func (t *testToken) balanceOf(identity string) *uint256.Int {
	t.mu.Lock()
	defer t.mu.Unlock()
	current, ok := t.balances[identity]
	if !ok {
		return uint256.NewInt(0)
	}
	return new(uint256.Int).Set(current)
}

func (t *testToken) move(from string, to string, amount *uint256.Int) error {
	t.mu.Lock()
	defer t.mu.Unlock()
	current, ok := t.balances[from]
	if !ok {
		current = uint256.NewInt(0)
	}
	if current.Lt(amount) {
		return fmt.Errorf("test token: %s has insufficient funds", from)
	}
	t.balances[from] = new(uint256.Int).Sub(current, amount)
	dest, ok := t.balances[to]
	if !ok {
		dest = uint256.NewInt(0)
	}
	t.balances[to] = new(uint256.Int).Add(dest, amount)
	return nil
}

func (t *testToken) TransferFrom(_ context.Context, from string, to string, amount *uint256.Int) error {
	if t.failTransferFrom {
		return fmt.Errorf("test token: transfer_from rejected")
	}
	return t.move(from, to, amount)
}

func (t *testToken) Transfer(ctx context.Context, to string, amount *uint256.Int) error {
	if t.failTransfer {
		return fmt.Errorf("test token: transfer rejected")
	}
	if t.onTransfer != nil {
		t.onTransfer(ctx, to, amount)
	}
	return t.move("vault-custody", to, amount)
}

func (t *testToken) BalanceOf(_ context.Context, identity string) (*uint256.Int, error) {
	return t.balanceOf(identity), nil
}

// failingLedgerStore rejects writes after a configured number of successes.
type failingLedgerStore struct {
	inner     *MemoryLedgerStore
	allowed   int
	attempted int
}

func newFailingLedgerStore(allowed int) *failingLedgerStore {
	return &failingLedgerStore{inner: NewMemoryLedgerStore(), allowed: allowed}
}

func (s *failingLedgerStore) UpsertBalance(ctx context.Context, entry LedgerEntry) error {
	s.attempted++
	if s.attempted > s.allowed {
		return fmt.Errorf("failing ledger store: write rejected")
	}
	return s.inner.UpsertBalance(ctx, entry)
}

func (s *failingLedgerStore) ListBalances(ctx context.Context) ([]LedgerEntry, error) {
	return s.inner.ListBalances(ctx)
}

func newTestVault(t interface{ Fatalf(string, ...any) }, options ...Option) *Vault {
	vault, err := NewVault(Config{Owner: "owner-1"}, options...)
	if err != nil {
		t.Fatalf("new vault: %v", err)
	}
	return vault
}

// newFundedVault wires a registered, whitelisted token with depositor funds.
// The owner grants itself the admin role first; whitelist and pause
// operations require it.
func newFundedVault(t interface{ Fatalf(string, ...any) }, tokenID string, depositor string, funds uint64, options ...Option) (*Vault, *testToken) {
	vault := newTestVault(t, options...)
	token := newTestToken(tokenID)
	token.mint(depositor, funds)
	if err := vault.RegisterToken(token); err != nil {
		t.Fatalf("register token: %v", err)
	}
	if _, err := vault.AddAdmin(context.Background(), "owner-1", "owner-1"); err != nil {
		t.Fatalf("grant admin role: %v", err)
	}
	if err := vault.WhitelistToken(context.Background(), "owner-1", tokenID); err != nil {
		t.Fatalf("whitelist token: %v", err)
	}
	return vault, token
}

func mustAmount(value uint64) *uint256.Int {
	return uint256.NewInt(value)
}

func maxAmount() *uint256.Int {
	max := new(uint256.Int)
	max.SetAllOne()
	return max
}

func containsString(values []string, want string) bool {
	for _, value := range values {
		if strings.TrimSpace(value) == want {
			return true
		}
	}
	return false
}

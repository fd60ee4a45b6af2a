package devkit

import (
	"context"
	"fmt"
	"sync"

	"github.com/holiman/uint256"
	"github.com/light-fury/tsunami-vault/core"
)

// FailingToken wraps another token and fails selected operations, leaving
// the wrapped balances untouched. Use it to exercise rollback paths.
type FailingToken struct {
	mu               sync.Mutex
	inner            core.Token
	failTransferFrom bool
	failTransfer     bool
}

func NewFailingToken(inner core.Token) *FailingToken {
	return &FailingToken{inner: inner}
}

func (t *FailingToken) FailTransferFrom(fail bool) {
	t.mu.Lock()
	t.failTransferFrom = fail
	t.mu.Unlock()
}

func (t *FailingToken) FailTransfer(fail bool) {
	t.mu.Lock()
	t.failTransfer = fail
	t.mu.Unlock()
}

func (t *FailingToken) ID() string { return t.inner.ID() }

func (t *FailingToken) TransferFrom(ctx context.Context, from string, to string, amount *uint256.Int) error {
	t.mu.Lock()
	fail := t.failTransferFrom
	t.mu.Unlock()
	if fail {
		return fmt.Errorf("devkit: token %q rejected transfer_from", t.inner.ID())
	}
	return t.inner.TransferFrom(ctx, from, to, amount)
}

func (t *FailingToken) Transfer(ctx context.Context, to string, amount *uint256.Int) error {
	t.mu.Lock()
	fail := t.failTransfer
	t.mu.Unlock()
	if fail {
		return fmt.Errorf("devkit: token %q rejected transfer", t.inner.ID())
	}
	return t.inner.Transfer(ctx, to, amount)
}

func (t *FailingToken) BalanceOf(ctx context.Context, identity string) (*uint256.Int, error) {
	return t.inner.BalanceOf(ctx, identity)
}

// ReentrantToken invokes a hook during Transfer, before the funds move.
// The hook typically calls back into the vault to probe reentrancy
// handling during the external-call window.
type ReentrantToken struct {
	inner core.Token
	hook  func(ctx context.Context, to string, amount *uint256.Int)
}

func NewReentrantToken(inner core.Token, hook func(ctx context.Context, to string, amount *uint256.Int)) *ReentrantToken {
	return &ReentrantToken{inner: inner, hook: hook}
}

func (t *ReentrantToken) ID() string { return t.inner.ID() }

func (t *ReentrantToken) TransferFrom(ctx context.Context, from string, to string, amount *uint256.Int) error {
	return t.inner.TransferFrom(ctx, from, to, amount)
}

func (t *ReentrantToken) Transfer(ctx context.Context, to string, amount *uint256.Int) error {
	if t.hook != nil {
		t.hook(ctx, to, amount)
	}
	return t.inner.Transfer(ctx, to, amount)
}

func (t *ReentrantToken) BalanceOf(ctx context.Context, identity string) (*uint256.Int, error) {
	return t.inner.BalanceOf(ctx, identity)
}

var (
	_ core.Token = (*FailingToken)(nil)
	_ core.Token = (*ReentrantToken)(nil)
)

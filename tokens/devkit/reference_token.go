package devkit

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/holiman/uint256"
	"github.com/light-fury/tsunami-vault/core"
)

// ReferenceToken is an in-memory fungible token collaborator. The operator
// account plays the role the vault custody account plays in production:
// Transfer spends from the operator, TransferFrom spends an allowance the
// source holder granted to the operator.
type ReferenceToken struct {
	mu         sync.Mutex
	id         string
	operator   string
	balances   map[string]*uint256.Int
	allowances map[string]map[string]*uint256.Int
}

func NewReferenceToken(id string, operator string) *ReferenceToken {
	return &ReferenceToken{
		id:         strings.TrimSpace(id),
		operator:   strings.TrimSpace(operator),
		balances:   map[string]*uint256.Int{},
		allowances: map[string]map[string]*uint256.Int{},
	}
}

func (t *ReferenceToken) ID() string {
	if t == nil {
		return ""
	}
	return t.id
}

// Mint credits freshly issued supply to an account.
func (t *ReferenceToken) Mint(account string, amount *uint256.Int) error {
	if t == nil {
		return fmt.Errorf("devkit: reference token is nil")
	}
	account = strings.TrimSpace(account)
	if account == "" {
		return fmt.Errorf("devkit: account is required")
	}
	if amount == nil {
		return fmt.Errorf("devkit: amount is required")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.credit(account, amount)
}

// Approve lets spender move up to amount out of holder's account through
// TransferFrom. The allowance replaces any previous grant.
func (t *ReferenceToken) Approve(holder string, spender string, amount *uint256.Int) error {
	if t == nil {
		return fmt.Errorf("devkit: reference token is nil")
	}
	holder = strings.TrimSpace(holder)
	spender = strings.TrimSpace(spender)
	if holder == "" || spender == "" {
		return fmt.Errorf("devkit: holder and spender are required")
	}
	if amount == nil {
		return fmt.Errorf("devkit: amount is required")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	grants, ok := t.allowances[holder]
	if !ok {
		grants = map[string]*uint256.Int{}
		t.allowances[holder] = grants
	}
	grants[spender] = new(uint256.Int).Set(amount)
	return nil
}

func (t *ReferenceToken) Allowance(holder string, spender string) *uint256.Int {
	if t == nil {
		return uint256.NewInt(0)
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	grants, ok := t.allowances[strings.TrimSpace(holder)]
	if !ok {
		return uint256.NewInt(0)
	}
	granted, ok := grants[strings.TrimSpace(spender)]
	if !ok {
		return uint256.NewInt(0)
	}
	return new(uint256.Int).Set(granted)
}

func (t *ReferenceToken) TransferFrom(_ context.Context, from string, to string, amount *uint256.Int) error {
	if t == nil {
		return fmt.Errorf("devkit: reference token is nil")
	}
	from = strings.TrimSpace(from)
	to = strings.TrimSpace(to)
	if from == "" || to == "" {
		return fmt.Errorf("devkit: from and to accounts are required")
	}
	if amount == nil {
		return fmt.Errorf("devkit: amount is required")
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	grants := t.allowances[from]
	granted, ok := grants[t.operator]
	if !ok || granted.Lt(amount) {
		return fmt.Errorf("devkit: allowance from %q to %q is insufficient", from, t.operator)
	}
	if err := t.move(from, to, amount); err != nil {
		return err
	}
	granted.Sub(granted, amount)
	return nil
}

func (t *ReferenceToken) Transfer(_ context.Context, to string, amount *uint256.Int) error {
	if t == nil {
		return fmt.Errorf("devkit: reference token is nil")
	}
	to = strings.TrimSpace(to)
	if to == "" {
		return fmt.Errorf("devkit: to account is required")
	}
	if amount == nil {
		return fmt.Errorf("devkit: amount is required")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.move(t.operator, to, amount)
}

func (t *ReferenceToken) BalanceOf(_ context.Context, identity string) (*uint256.Int, error) {
	if t == nil {
		return nil, fmt.Errorf("devkit: reference token is nil")
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	balance, ok := t.balances[strings.TrimSpace(identity)]
	if !ok {
		return uint256.NewInt(0), nil
	}
	return new(uint256.Int).Set(balance), nil
}

func (t *ReferenceToken) move(from string, to string, amount *uint256.Int) error {
	source, ok := t.balances[from]
	if !ok || source.Lt(amount) {
		return fmt.Errorf("devkit: account %q balance is insufficient", from)
	}
	source.Sub(source, amount)
	return t.credit(to, amount)
}

func (t *ReferenceToken) credit(account string, amount *uint256.Int) error {
	target, ok := t.balances[account]
	if !ok {
		target = uint256.NewInt(0)
		t.balances[account] = target
	}
	sum, overflow := new(uint256.Int).AddOverflow(target, amount)
	if overflow {
		return fmt.Errorf("devkit: account %q balance overflow", account)
	}
	target.Set(sum)
	return nil
}

var _ core.Token = (*ReferenceToken)(nil)

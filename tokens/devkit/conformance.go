package devkit

import (
	"context"
	"fmt"
	"strings"

	"github.com/holiman/uint256"
	"github.com/light-fury/tsunami-vault/core"
)

// ValidateTokenConformance exercises a token implementation the way the
// vault does during a deposit and a withdrawal: pull amount from `holder`
// into `custody` with TransferFrom, push it back with Transfer, and check
// that BalanceOf reports the moves. The holder must already carry the
// amount and must have approved the pull.
func ValidateTokenConformance(
	ctx context.Context,
	token core.Token,
	holder string,
	custody string,
	amount *uint256.Int,
) error {
	if token == nil {
		return fmt.Errorf("devkit: token is required")
	}
	if strings.TrimSpace(token.ID()) == "" {
		return fmt.Errorf("devkit: token id is required")
	}
	if amount == nil || amount.IsZero() {
		return fmt.Errorf("devkit: a non-zero amount is required")
	}

	before, err := token.BalanceOf(ctx, holder)
	if err != nil {
		return err
	}
	if before.Lt(amount) {
		return fmt.Errorf("devkit: holder %q must carry at least the probe amount", holder)
	}

	if err := token.TransferFrom(ctx, holder, custody, amount); err != nil {
		return fmt.Errorf("devkit: pull into custody failed: %w", err)
	}
	pulled, err := token.BalanceOf(ctx, holder)
	if err != nil {
		return err
	}
	expected := new(uint256.Int).Sub(before, amount)
	if !pulled.Eq(expected) {
		return fmt.Errorf("devkit: holder balance after pull is %s, want %s", pulled.Dec(), expected.Dec())
	}

	if err := token.Transfer(ctx, holder, amount); err != nil {
		return fmt.Errorf("devkit: push back to holder failed: %w", err)
	}
	restored, err := token.BalanceOf(ctx, holder)
	if err != nil {
		return err
	}
	if !restored.Eq(before) {
		return fmt.Errorf("devkit: holder balance after round trip is %s, want %s", restored.Dec(), before.Dec())
	}
	return nil
}

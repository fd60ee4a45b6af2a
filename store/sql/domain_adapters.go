package sqlstore

import (
	"fmt"
	"strings"
	"time"

	"github.com/holiman/uint256"
	"github.com/light-fury/tsunami-vault/core"
)

// Amounts persist as decimal strings so a full uint256 survives any SQL
// backend without precision loss.
func encodeAmount(amount *uint256.Int) string {
	if amount == nil {
		return "0"
	}
	return amount.Dec()
}

func decodeAmount(value string) (*uint256.Int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return uint256.NewInt(0), nil
	}
	amount := new(uint256.Int)
	if err := amount.SetFromDecimal(value); err != nil {
		return nil, fmt.Errorf("sqlstore: invalid stored amount %q: %w", value, err)
	}
	return amount, nil
}

func newBalanceRecord(entry core.LedgerEntry, now time.Time) *balanceRecord {
	updatedAt := entry.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = now
	}
	return &balanceRecord{
		TokenID:   strings.TrimSpace(entry.TokenID),
		Holder:    strings.TrimSpace(entry.Holder),
		Amount:    encodeAmount(entry.Amount),
		CreatedAt: now,
		UpdatedAt: updatedAt,
	}
}

func (r *balanceRecord) toDomain() (core.LedgerEntry, error) {
	if r == nil {
		return core.LedgerEntry{}, fmt.Errorf("sqlstore: balance record is nil")
	}
	amount, err := decodeAmount(r.Amount)
	if err != nil {
		return core.LedgerEntry{}, err
	}
	return core.LedgerEntry{
		TokenID:   r.TokenID,
		Holder:    r.Holder,
		Amount:    amount,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

func newVaultEventRecord(event core.VaultEvent, now time.Time) *vaultEventRecord {
	occurredAt := event.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = now
	}
	metadata := event.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	return &vaultEventRecord{
		ID:         strings.TrimSpace(event.ID),
		EventType:  strings.TrimSpace(event.EventType),
		TokenID:    strings.TrimSpace(event.TokenID),
		Holder:     strings.TrimSpace(event.Holder),
		Amount:     encodeAmount(event.Amount),
		Metadata:   metadata,
		OccurredAt: occurredAt,
		CreatedAt:  now,
	}
}

func (r *vaultEventRecord) toDomain() (core.VaultEvent, error) {
	if r == nil {
		return core.VaultEvent{}, fmt.Errorf("sqlstore: event record is nil")
	}
	amount, err := decodeAmount(r.Amount)
	if err != nil {
		return core.VaultEvent{}, err
	}
	return core.VaultEvent{
		ID:         r.ID,
		EventType:  r.EventType,
		TokenID:    r.TokenID,
		Holder:     r.Holder,
		Amount:     amount,
		OccurredAt: r.OccurredAt,
		Metadata:   r.Metadata,
	}, nil
}

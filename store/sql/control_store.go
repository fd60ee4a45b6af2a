package sqlstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/uptrace/bun"
)

const pauseFlagName = "paused"

// ControlStore persists the token whitelist, the admin set, and the pause
// flag. Whitelist and admin rows are flipped in place, never deleted, so the
// history of granted-then-revoked ids stays queryable.
type ControlStore struct {
	db            *bun.DB
	whitelistRepo repository.Repository[*whitelistRecord]
	adminRepo     repository.Repository[*adminRecord]
	gateRepo      repository.Repository[*gateRecord]
}

func NewControlStore(db *bun.DB) (*ControlStore, error) {
	if db == nil {
		return nil, fmt.Errorf("sqlstore: bun db is required")
	}
	whitelistRepo := repository.NewRepository[*whitelistRecord](db, whitelistHandlers())
	if validator, ok := whitelistRepo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid whitelist repository wiring: %w", err)
		}
	}
	adminRepo := repository.NewRepository[*adminRecord](db, adminHandlers())
	if validator, ok := adminRepo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid admin repository wiring: %w", err)
		}
	}
	gateRepo := repository.NewRepository[*gateRecord](db, gateHandlers())
	if validator, ok := gateRepo.(repository.Validator); ok {
		if err := validator.Validate(); err != nil {
			return nil, fmt.Errorf("sqlstore: invalid gate repository wiring: %w", err)
		}
	}
	return &ControlStore{
		db:            db,
		whitelistRepo: whitelistRepo,
		adminRepo:     adminRepo,
		gateRepo:      gateRepo,
	}, nil
}

func (s *ControlStore) SetWhitelisted(ctx context.Context, tokenID string, allowed bool) error {
	if s == nil || s.whitelistRepo == nil {
		return fmt.Errorf("sqlstore: control store is not configured")
	}
	tokenID = strings.TrimSpace(tokenID)
	if tokenID == "" {
		return fmt.Errorf("sqlstore: token id is required")
	}

	now := time.Now().UTC()
	existing, _, err := s.whitelistRepo.List(ctx,
		repository.SelectBy("token_id", "=", tokenID),
	)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		record := existing[0]
		record.Allowed = allowed
		record.UpdatedAt = now
		_, err = s.whitelistRepo.Update(ctx, record, repository.UpdateByID(record.ID))
		return err
	}

	_, err = s.whitelistRepo.Create(ctx, &whitelistRecord{
		TokenID:   tokenID,
		Allowed:   allowed,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return err
}

func (s *ControlStore) ListWhitelisted(ctx context.Context) ([]string, error) {
	if s == nil || s.whitelistRepo == nil {
		return nil, fmt.Errorf("sqlstore: control store is not configured")
	}
	records, _, err := s.whitelistRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(records))
	for _, record := range records {
		if record.Allowed {
			out = append(out, record.TokenID)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *ControlStore) SetAdmin(ctx context.Context, identity string, granted bool) error {
	if s == nil || s.adminRepo == nil {
		return fmt.Errorf("sqlstore: control store is not configured")
	}
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return fmt.Errorf("sqlstore: identity is required")
	}

	now := time.Now().UTC()
	existing, _, err := s.adminRepo.List(ctx,
		repository.SelectBy("identity", "=", identity),
	)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		record := existing[0]
		record.Granted = granted
		record.UpdatedAt = now
		_, err = s.adminRepo.Update(ctx, record, repository.UpdateByID(record.ID))
		return err
	}

	_, err = s.adminRepo.Create(ctx, &adminRecord{
		Identity:  identity,
		Granted:   granted,
		CreatedAt: now,
		UpdatedAt: now,
	})
	return err
}

func (s *ControlStore) ListAdmins(ctx context.Context) ([]string, error) {
	if s == nil || s.adminRepo == nil {
		return nil, fmt.Errorf("sqlstore: control store is not configured")
	}
	records, _, err := s.adminRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(records))
	for _, record := range records {
		if record.Granted {
			out = append(out, record.Identity)
		}
	}
	sort.Strings(out)
	return out, nil
}

func (s *ControlStore) SetPaused(ctx context.Context, paused bool) error {
	if s == nil || s.gateRepo == nil {
		return fmt.Errorf("sqlstore: control store is not configured")
	}

	now := time.Now().UTC()
	existing, _, err := s.gateRepo.List(ctx,
		repository.SelectBy("flag_name", "=", pauseFlagName),
	)
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		record := existing[0]
		record.Engaged = paused
		record.UpdatedAt = now
		_, err = s.gateRepo.Update(ctx, record, repository.UpdateByID(record.ID))
		return err
	}

	_, err = s.gateRepo.Create(ctx, &gateRecord{
		FlagName:  pauseFlagName,
		Engaged:   paused,
		UpdatedAt: now,
	})
	return err
}

func (s *ControlStore) Paused(ctx context.Context) (bool, error) {
	if s == nil || s.gateRepo == nil {
		return false, fmt.Errorf("sqlstore: control store is not configured")
	}
	records, _, err := s.gateRepo.List(ctx,
		repository.SelectBy("flag_name", "=", pauseFlagName),
	)
	if err != nil {
		return false, err
	}
	if len(records) == 0 {
		return false, nil
	}
	return records[0].Engaged, nil
}

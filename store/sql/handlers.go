package sqlstore

import (
	"strings"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
)

func balanceHandlers() repository.ModelHandlers[*balanceRecord] {
	return repository.ModelHandlers[*balanceRecord]{
		NewRecord: func() *balanceRecord {
			return &balanceRecord{}
		},
		GetID: func(record *balanceRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return parseUUID(record.ID)
		},
		SetID: func(record *balanceRecord, id uuid.UUID) {
			if record == nil {
				return
			}
			record.ID = id.String()
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record *balanceRecord) string {
			if record == nil {
				return ""
			}
			return strings.TrimSpace(record.ID)
		},
	}
}

func whitelistHandlers() repository.ModelHandlers[*whitelistRecord] {
	return repository.ModelHandlers[*whitelistRecord]{
		NewRecord: func() *whitelistRecord {
			return &whitelistRecord{}
		},
		GetID: func(record *whitelistRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return parseUUID(record.ID)
		},
		SetID: func(record *whitelistRecord, id uuid.UUID) {
			if record == nil {
				return
			}
			record.ID = id.String()
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record *whitelistRecord) string {
			if record == nil {
				return ""
			}
			return strings.TrimSpace(record.ID)
		},
	}
}

func adminHandlers() repository.ModelHandlers[*adminRecord] {
	return repository.ModelHandlers[*adminRecord]{
		NewRecord: func() *adminRecord {
			return &adminRecord{}
		},
		GetID: func(record *adminRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return parseUUID(record.ID)
		},
		SetID: func(record *adminRecord, id uuid.UUID) {
			if record == nil {
				return
			}
			record.ID = id.String()
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record *adminRecord) string {
			if record == nil {
				return ""
			}
			return strings.TrimSpace(record.ID)
		},
	}
}

func gateHandlers() repository.ModelHandlers[*gateRecord] {
	return repository.ModelHandlers[*gateRecord]{
		NewRecord: func() *gateRecord {
			return &gateRecord{}
		},
		GetID: func(record *gateRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return parseUUID(record.ID)
		},
		SetID: func(record *gateRecord, id uuid.UUID) {
			if record == nil {
				return
			}
			record.ID = id.String()
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record *gateRecord) string {
			if record == nil {
				return ""
			}
			return strings.TrimSpace(record.ID)
		},
	}
}

func eventHandlers() repository.ModelHandlers[*vaultEventRecord] {
	return repository.ModelHandlers[*vaultEventRecord]{
		NewRecord: func() *vaultEventRecord {
			return &vaultEventRecord{}
		},
		GetID: func(record *vaultEventRecord) uuid.UUID {
			if record == nil {
				return uuid.Nil
			}
			return parseUUID(record.ID)
		},
		SetID: func(record *vaultEventRecord, id uuid.UUID) {
			if record == nil {
				return
			}
			record.ID = id.String()
		},
		GetIdentifier: func() string {
			return "id"
		},
		GetIdentifierValue: func(record *vaultEventRecord) string {
			if record == nil {
				return ""
			}
			return strings.TrimSpace(record.ID)
		},
	}
}

func parseUUID(value string) uuid.UUID {
	parsed, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil
	}
	return parsed
}

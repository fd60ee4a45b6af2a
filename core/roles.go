package core

import (
	"sort"
	"strings"
	"sync"
)

// RoleRegistry tracks the vault owner and the revocable admin role. The owner
// is fixed at construction; only the owner mutates the admin set.
type RoleRegistry struct {
	mu     sync.RWMutex
	owner  string
	admins map[string]struct{}
}

func NewRoleRegistry(owner string) (*RoleRegistry, error) {
	owner = strings.TrimSpace(owner)
	if owner == "" {
		return nil, ErrOwnerRequired
	}
	return &RoleRegistry{
		owner:  owner,
		admins: make(map[string]struct{}),
	}, nil
}

func (r *RoleRegistry) Owner() string {
	if r == nil {
		return ""
	}
	return r.owner
}

func (r *RoleRegistry) IsOwner(identity string) bool {
	if r == nil {
		return false
	}
	return strings.TrimSpace(identity) == r.owner
}

func (r *RoleRegistry) IsAdmin(identity string) bool {
	if r == nil {
		return false
	}
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return false
	}
	r.mu.RLock()
	_, ok := r.admins[identity]
	r.mu.RUnlock()
	return ok
}

// Grant adds identity to the admin set. Granting an already-held role is a
// soft success; the return value reports whether the set changed.
func (r *RoleRegistry) Grant(identity string) (bool, error) {
	if r == nil {
		return false, ErrIdentityRequired
	}
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return false, ErrIdentityRequired
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.admins[identity]; exists {
		return false, nil
	}
	r.admins[identity] = struct{}{}
	return true, nil
}

func (r *RoleRegistry) Revoke(identity string) (bool, error) {
	if r == nil {
		return false, ErrIdentityRequired
	}
	identity = strings.TrimSpace(identity)
	if identity == "" {
		return false, ErrIdentityRequired
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.admins[identity]; !exists {
		return false, nil
	}
	delete(r.admins, identity)
	return true, nil
}

func (r *RoleRegistry) Admins() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	out := make([]string, 0, len(r.admins))
	for identity := range r.admins {
		out = append(out, identity)
	}
	r.mu.RUnlock()
	sort.Strings(out)
	return out
}

// Restore seeds the admin set during rehydration, bypassing the owner guard.
func (r *RoleRegistry) Restore(admins []string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, identity := range admins {
		identity = strings.TrimSpace(identity)
		if identity == "" {
			continue
		}
		r.admins[identity] = struct{}{}
	}
}

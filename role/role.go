// Package role implements the privilege hierarchy for chat users.
package role

import (
	"fmt"
	"iter"
	"strings"
	"sync"
)

// Role is a privilege tier. Roles are totally ordered: None < User < Admin <
// SuperAdmin. The zero value is None.
type Role int

const (
	// None is the role of any name the registry doesn't know.
	None Role = iota
	// User may look up information.
	User
	// Admin may additionally mutate information and manage users.
	Admin
	// SuperAdmin may additionally manage admins, super-admins, and channels.
	SuperAdmin
)

func (r Role) String() string {
	switch r {
	case None:
		return "none"
	case User:
		return "user"
	case Admin:
		return "admin"
	case SuperAdmin:
		return "superadmin"
	}
	return fmt.Sprintf("role.Role(%d)", int(r))
}

// MarshalText implements encoding.TextMarshaler. None has no serialized form;
// a name with no role simply has no registry entry.
func (r Role) MarshalText() ([]byte, error) {
	if r < User || r > SuperAdmin {
		return nil, fmt.Errorf("role: cannot marshal %v", r)
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Role) UnmarshalText(text []byte) error {
	switch string(text) {
	case "user":
		*r = User
	case "admin":
		*r = Admin
	case "superadmin":
		*r = SuperAdmin
	default:
		return fmt.Errorf("role: unknown role %q", text)
	}
	return nil
}

// Registry maps user names to roles. Names are lower-cased on every operation,
// since people type their own names inconsistently. The zero Registry is not
// ready to use; call New.
type Registry struct {
	mu    sync.Mutex
	users map[string]Role
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{users: make(map[string]Role)}
}

// Of returns the role a name holds, None if it holds none.
func (g *Registry) Of(name string) Role {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.users[strings.ToLower(name)]
}

// Allowed reports whether name holds at least the min role.
func (g *Registry) Allowed(name string, min Role) bool {
	return g.Of(name) >= min
}

// Add grants a role to a name. It reports false without changing anything if
// the name already holds an equal or higher role, so that granting a lower
// role never silently demotes a higher one. Promotion always succeeds.
func (g *Registry) Add(name string, r Role) bool {
	if r <= None {
		return false
	}
	name = strings.ToLower(name)
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.users[name] >= r {
		return false
	}
	g.users[name] = r
	return true
}

// Remove revokes a role from a name. It reports false without changing
// anything unless the name holds exactly r; removing "admin" from a
// super-admin must not demote them.
func (g *Registry) Remove(name string, r Role) bool {
	if r <= None {
		return false
	}
	name = strings.ToLower(name)
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.users[name] != r {
		return false
	}
	delete(g.users, name)
	return true
}

// Len returns the number of names holding any role.
func (g *Registry) Len() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.users)
}

// All iterates over every name and its role in no particular order. The
// registry is locked for the duration of the iteration.
func (g *Registry) All() iter.Seq2[string, Role] {
	return func(yield func(string, Role) bool) {
		g.mu.Lock()
		defer g.mu.Unlock()
		for name, r := range g.users {
			if !yield(name, r) {
				return
			}
		}
	}
}

// Replace substitutes the registry's entire contents, normalizing keys.
// It is used when loading persisted roles.
func (g *Registry) Replace(users map[string]Role) {
	m := make(map[string]Role, len(users))
	for name, r := range users {
		if r <= None {
			continue
		}
		m[strings.ToLower(name)] = r
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.users = m
}

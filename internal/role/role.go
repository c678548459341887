// Package role contains utilities for user roles.
package role

import (
	"math"
	"slices"
	"strings"
)

type Role int

const (
	RoleAdmin   Role = 200
	RoleUser    Role = 100
	RoleUnknown Role = math.MinInt
)

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "Admin"
	case RoleUser:
		return "User"
	default:
		return "Unknown"
	}
}

// ToRole parses a role name. Matching is case-insensitive.
func ToRole(name string) Role {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "admin":
		return RoleAdmin
	case "user":
		return RoleUser
	default:
		return RoleUnknown
	}
}

// Set is the set of roles held by a user.
type Set struct {
	roles []Role
}

func NewSet(roles ...Role) Set {
	var s Set
	for _, r := range roles {
		s = s.With(r)
	}
	return s
}

// ParseSet builds a set from role names. Unknown names are dropped.
func ParseSet(names []string) Set {
	var s Set
	for _, name := range names {
		s = s.With(ToRole(name))
	}
	return s
}

func (s Set) Has(r Role) bool {
	return slices.Contains(s.roles, r)
}

// With returns a copy of s including r.
func (s Set) With(r Role) Set {
	if r == RoleUnknown || s.Has(r) {
		return s
	}
	roles := append(slices.Clone(s.roles), r)
	slices.Sort(roles)
	return Set{roles: roles}
}

func (s Set) IsAdmin() bool {
	return s.Has(RoleAdmin)
}

// Names returns the role names in ascending privilege order.
func (s Set) Names() []string {
	names := make([]string, 0, len(s.roles))
	for _, r := range s.roles {
		names = append(names, r.String())
	}
	return names
}

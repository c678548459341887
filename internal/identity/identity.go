// Package identity carries the acting principal of a request.
package identity

import (
	"context"
	"errors"

	"github.com/matt-dz/tastebook/internal/role"
)

// Identity is the principal resolved from a bearer credential.
type Identity struct {
	UserID string
	Roles  role.Set
}

type identityKeyType struct{}

var identityKey identityKeyType

var ErrNoIdentity = errors.New("no identity in context")

func WithCtx(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// FromCtx returns the identity stored by the authentication middleware.
func FromCtx(ctx context.Context) (Identity, error) {
	id, ok := ctx.Value(identityKey).(Identity)
	if !ok || id.UserID == "" {
		return Identity{}, ErrNoIdentity
	}
	return id, nil
}

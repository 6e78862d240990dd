package internal

import (
	"context"
)

type ctxKey string

const ContextIdentityKey ctxKey = "identity"

// Identity is the authenticated caller extracted from a verified token.
type Identity struct {
	Subject string
	Role    string
}

func (i Identity) IsAdmin() bool {
	return i.Role == "admin"
}

func ContextWithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, ContextIdentityKey, identity)
}

func IdentityFromContext(ctx context.Context) (Identity, bool) {
	if ctx == nil {
		return Identity{}, false
	}
	identity, ok := ctx.Value(ContextIdentityKey).(Identity)
	return identity, ok
}

package models

import "context"

// Identity is the capability set a session layer needs from an authenticated principal.
type Identity interface {
	GetID() int64
	GetAuthKey() string
	ValidateAuthKey(key string) bool
}

// IdentityFinder resolves identities for a session layer.
// FindIdentity returns (nil, nil) when no identity matches.
type IdentityFinder interface {
	FindIdentity(ctx context.Context, id int64) (Identity, error)
	FindIdentityByAccessToken(ctx context.Context, token, tokenType string) (Identity, error)
}

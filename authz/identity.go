package authz

import (
	"context"

	"github.com/yeremiapane/jobportal-app/models"
)

// Identity is the authenticated principal of one request. Permissions is the
// snapshot carried by the credential, not the live role.
type Identity struct {
	UserID      uint
	Username    string
	Role        string
	Permissions models.PermissionMatrix
}

func (id Identity) Can(module string, action models.Action) bool {
	return id.Permissions.Allows(module, action)
}

type identityKey struct{}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}

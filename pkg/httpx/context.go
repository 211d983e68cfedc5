package httpx

import "context"

type ctxKey string

const ctxKeyIdentity ctxKey = "identity"

// Identity is what a guard attaches to the request once a caller has been
// authenticated. PrincipalID is empty when the guard trusted the token
// without looking the principal up.
type Identity struct {
	Email       string `json:"email"`
	Kind        string `json:"kind"`
	PrincipalID string `json:"id,omitempty"`
}

func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity, id)
}

// IdentityFromContext returns the authenticated identity, if any.
func IdentityFromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKeyIdentity).(Identity)
	if !ok || id.Email == "" {
		return Identity{}, false
	}
	return id, true
}

package httpx

import (
	"context"
	"errors"
	"net/http"
	"slices"
	"strings"

	"github.com/pathfinder-tours/pathfinder/pkg/jwtx"
	"github.com/pathfinder-tours/pathfinder/pkg/slogx"
)

// SessionCookie names the cookie carrying a server-side session token.
const SessionCookie = "sid"

var (
	// ErrNoSession means the cookie does not map to a live session; the
	// guard then falls back to the bearer header.
	ErrNoSession = errors.New("httpx: no live session")

	// ErrNoPrincipal means the principal is not in any of the tier's
	// collections.
	ErrNoPrincipal = errors.New("httpx: principal not found")
)

// Principals resolves callers against the credential store. kinds lists the
// collections to search, in order.
type Principals interface {
	// SessionIdentity returns the principal behind a live session token,
	// ErrNoSession when the session is unknown or expired, or ErrNoPrincipal
	// when the session's principal is not in kinds.
	SessionIdentity(ctx context.Context, token string, kinds []string) (Identity, error)

	// EmailIdentity returns the first principal in kinds with the email, or
	// ErrNoPrincipal.
	EmailIdentity(ctx context.Context, email string, kinds []string) (Identity, error)
}

// GuardConfig describes one authentication tier.
type GuardConfig struct {
	Tier     string
	Kinds    []string
	Verifier jwtx.Verifier

	// Principals may be nil to skip sessions and existence checks entirely.
	Principals Principals

	// Recheck looks the claimed identity up after the token verified.
	Recheck bool
}

// Guard authenticates a request for one tier:
//
//  1. a live session cookie resolves by primary key: missing principal is 401
//  2. otherwise a bearer token is required: missing is 401
//  3. a token that does not verify, or was minted for a kind outside the
//     tier, is 403
//  4. with Recheck, a verified token whose identity is gone from its own
//     collection is 403
//
// On success the Identity is attached to the request context.
func Guard(cfg GuardConfig) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := slogx.FromContext(ctx).With("tier", cfg.Tier)

			if cfg.Principals != nil {
				if c, err := r.Cookie(SessionCookie); err == nil && c.Value != "" {
					id, err := cfg.Principals.SessionIdentity(ctx, c.Value, cfg.Kinds)
					switch {
					case err == nil:
						next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, id)))
						return
					case errors.Is(err, ErrNoPrincipal):
						log.Warn("session principal not found")
						ErrUnauthorized.Write(w)
						return
					case !errors.Is(err, ErrNoSession):
						log.Error("session lookup failed", "err", err)
						ErrUnexpected.Write(w)
						return
					}
				}
			}

			raw, ok := bearerToken(r)
			if !ok {
				w.Header().Set("WWW-Authenticate", `Bearer realm="`+cfg.Tier+`"`)
				ErrUnauthorized.Write(w)
				return
			}

			claims, err := cfg.Verifier.Verify(raw)
			if err != nil {
				log.Warn("jwt verify failed", "err", err)
				w.Header().Set("WWW-Authenticate", `Bearer error="invalid_token"`)
				ErrForbidden.Write(w)
				return
			}

			if !slices.Contains(cfg.Kinds, claims.Kind) {
				log.Warn("token kind not accepted", "kind", claims.Kind)
				ErrForbidden.Write(w)
				return
			}

			id := Identity{Email: claims.Email(), Kind: claims.Kind}
			if cfg.Recheck && cfg.Principals != nil {
				// Emails are only unique within one collection.
				id, err = cfg.Principals.EmailIdentity(ctx, claims.Email(), []string{claims.Kind})
				switch {
				case errors.Is(err, ErrNoPrincipal):
					log.Warn("token identity no longer exists", "email", claims.Email())
					ErrForbidden.Write(w)
					return
				case err != nil:
					log.Error("identity lookup failed", "err", err)
					ErrUnexpected.Write(w)
					return
				}
			}

			next.ServeHTTP(w, r.WithContext(WithIdentity(ctx, id)))
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	if len(authz) < len("Bearer ") || !strings.EqualFold(authz[:len("Bearer ")], "Bearer ") {
		return "", false
	}
	raw := strings.TrimSpace(authz[len("Bearer "):])
	return raw, raw != ""
}

package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/pathfinder-tours/pathfinder/internal/api/domain"
	"github.com/pathfinder-tours/pathfinder/internal/api/oauth/google"
	"github.com/pathfinder-tours/pathfinder/internal/api/store"
	"github.com/pathfinder-tours/pathfinder/pkg/cryptox"
	"github.com/pathfinder-tours/pathfinder/pkg/idx"
	"github.com/pathfinder-tours/pathfinder/pkg/slogx"
)

const DefaultSessionTTL = time.Hour

var (
	ErrOAuthState   = errors.New("oauth state mismatch")
	ErrOAuthProfile = errors.New("oauth profile incomplete")
)

// OAuthProvider is the part of an OAuth client the callback flow needs.
type OAuthProvider interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, code string) (string, error)
	UserInfo(ctx context.Context, accessToken string) (google.Profile, error)
}

var _ OAuthProvider = (*google.Client)(nil)

// OAuthLogin is a completed external login. SessionToken is the raw cookie
// value; only its fingerprint is stored.
type OAuthLogin struct {
	User         domain.User
	SessionToken string
	ExpiresAt    time.Time
	Created      bool
}

// OAuthService turns a Google sign-in into a server-side cookie session.
type OAuthService struct {
	Store      store.Store
	Provider   OAuthProvider
	Hasher     *cryptox.Hasher
	SessionTTL time.Duration
	Now        func() time.Time
}

func (s *OAuthService) now() time.Time {
	if s.Now != nil {
		return s.Now().UTC()
	}
	return time.Now().UTC()
}

// Begin returns a fresh state value and the provider URL to redirect to.
func (s *OAuthService) Begin() (state, redirectURL string, err error) {
	state, err = cryptox.GenerateToken(cryptox.TokenSize128)
	if err != nil {
		return "", "", fmt.Errorf("generate state: %w", err)
	}
	return state, s.Provider.AuthCodeURL(state), nil
}

// Callback checks state, resolves the Google profile to a user and opens
// a session for them. Users are matched by google id first, then linked by
// verified email, then created with a random password.
func (s *OAuthService) Callback(ctx context.Context, wantState, gotState, code string) (OAuthLogin, error) {
	log := slogx.FromContext(ctx)

	if wantState == "" || subtle.ConstantTimeCompare([]byte(wantState), []byte(gotState)) != 1 {
		log.Warn("oauth callback with bad state")
		return OAuthLogin{}, ErrOAuthState
	}

	accessToken, err := s.Provider.Exchange(ctx, code)
	if err != nil {
		return OAuthLogin{}, fmt.Errorf("exchange code: %w", err)
	}
	profile, err := s.Provider.UserInfo(ctx, accessToken)
	if err != nil {
		return OAuthLogin{}, fmt.Errorf("fetch userinfo: %w", err)
	}
	if profile.Subject == "" || profile.Email == "" {
		return OAuthLogin{}, ErrOAuthProfile
	}

	u, created, err := s.resolveUser(ctx, profile)
	if err != nil {
		return OAuthLogin{}, err
	}

	token, err := cryptox.GenerateToken(cryptox.TokenSize256)
	if err != nil {
		return OAuthLogin{}, fmt.Errorf("generate session token: %w", err)
	}
	ttl := s.SessionTTL
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	now := s.now()
	sess := domain.Session{
		ID:            idx.NewAt(now).String(),
		TokenHash:     cryptox.FingerprintToken(token),
		PrincipalKind: domain.KindUser,
		PrincipalID:   u.ID,
		ExpiresAt:     now.Add(ttl),
		CreatedAt:     now,
	}
	if err := s.Store.Sessions().CreateSession(ctx, sess); err != nil {
		return OAuthLogin{}, fmt.Errorf("create session: %w", err)
	}

	log.Info("oauth session opened",
		slog.String("user_id", u.ID),
		slog.Bool("created", created),
	)
	return OAuthLogin{User: u, SessionToken: token, ExpiresAt: sess.ExpiresAt, Created: created}, nil
}

func (s *OAuthService) resolveUser(ctx context.Context, p google.Profile) (domain.User, bool, error) {
	users := s.Store.Users()

	u, err := users.GetUserByGoogleID(ctx, p.Subject)
	if err == nil {
		return u, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return domain.User{}, false, fmt.Errorf("get user by google id: %w", err)
	}

	if p.EmailVerified {
		u, err = users.GetUserByEmail(ctx, p.Email)
		switch {
		case err == nil:
			if err := users.SetGoogleID(ctx, u.ID, p.Subject, s.now()); err != nil {
				return domain.User{}, false, fmt.Errorf("link google id: %w", err)
			}
			u.GoogleID = &p.Subject
			slogx.FromContext(ctx).Info("google account linked", slog.String("user_id", u.ID))
			return u, false, nil
		case !errors.Is(err, store.ErrNotFound):
			return domain.User{}, false, fmt.Errorf("get user by email: %w", err)
		}
	}

	u, err = s.createUser(ctx, p)
	if err != nil {
		return domain.User{}, false, err
	}
	return u, true, nil
}

func (s *OAuthService) createUser(ctx context.Context, p google.Profile) (domain.User, error) {
	password, err := cryptox.GeneratePassword(24)
	if err != nil {
		return domain.User{}, fmt.Errorf("generate password: %w", err)
	}
	hash, err := s.Hasher.Hash(password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	now := s.now()
	u := domain.User{
		ID:           idx.NewAt(now).String(),
		Username:     usernameFor(p),
		Email:        p.Email,
		PasswordHash: hash,
		GoogleID:     &p.Subject,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if p.EmailVerified {
		u.ConfirmedAt = &now
	}

	err = s.Store.Users().CreateUser(ctx, u)
	if errors.Is(err, store.ErrAlreadyExists) {
		// Display names collide easily; retry once with a suffix.
		suffix, genErr := cryptox.GenerateHexToken(3)
		if genErr != nil {
			return domain.User{}, fmt.Errorf("generate username suffix: %w", genErr)
		}
		u.Username = u.Username + "-" + suffix
		err = s.Store.Users().CreateUser(ctx, u)
	}
	if errors.Is(err, store.ErrAlreadyExists) {
		return domain.User{}, ErrConflict
	}
	if err != nil {
		return domain.User{}, fmt.Errorf("create user: %w", err)
	}
	return u, nil
}

func usernameFor(p google.Profile) string {
	if name := strings.TrimSpace(p.Name); name != "" {
		return name
	}
	local, _, _ := strings.Cut(p.Email, "@")
	return local
}

package service_test

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/pathfinder-tours/pathfinder/internal/api/mailer"
	"github.com/pathfinder-tours/pathfinder/internal/api/service"
	"github.com/pathfinder-tours/pathfinder/internal/api/store/drivers/sqlite"
	"github.com/pathfinder-tours/pathfinder/pkg/cryptox"
	"github.com/pathfinder-tours/pathfinder/pkg/jwtx"
	"github.com/stretchr/testify/require"
)

const testSecret = "0123456789abcdef0123456789abcdef"

// clock is a settable time source shared by every service in an env.
type clock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *clock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

func (c *clock) Advance(d time.Duration) { c.Set(c.Now().Add(d)) }

type env struct {
	store    *sqlite.Store
	clock    *clock
	hasher   *cryptox.Hasher
	mail     *mailer.Recorder
	verifier *jwtx.HS256Verifier

	creds     *service.CredentialService
	lifecycle *service.LifecycleService
	accounts  *service.AccountService
	customers *service.CustomerService
	resolver  *service.PrincipalResolver
}

func newEnv(t *testing.T) *env {
	t.Helper()

	st, err := sqlite.NewStore(sqlite.FileDSN(filepath.Join(t.TempDir(), "service.db")))
	require.NoError(t, err)
	require.NoError(t, st.ApplyMigrations())
	t.Cleanup(func() { _ = st.Close() })

	clk := &clock{t: time.Unix(1_700_000_000, 0).UTC()}
	hasher := &cryptox.Hasher{
		Pepper: "pepper",
		Params: cryptox.Argon2Params{Memory: 1024, Iterations: 1, Parallelism: 1, KeyLength: 32, SaltLength: 16},
	}

	signer, err := jwtx.NewSignerHS256(testSecret)
	require.NoError(t, err)
	verifier, err := jwtx.NewVerifierHS256(testSecret, "pathfinder")
	require.NoError(t, err)
	verifier.Now = clk.Now

	rec := &mailer.Recorder{}
	return &env{
		store:    st,
		clock:    clk,
		hasher:   hasher,
		mail:     rec,
		verifier: verifier,
		creds: &service.CredentialService{
			Store:  st,
			Hasher: hasher,
			Issuer: &jwtx.Issuer{Signer: signer, Issuer: "pathfinder", TTL: time.Hour, Now: clk.Now},
			Now:    clk.Now,
		},
		lifecycle: &service.LifecycleService{
			Store:     st,
			Mailer:    rec,
			Hasher:    hasher,
			PublicURL: "http://localhost:4000",
			Now:       clk.Now,
		},
		accounts:  &service.AccountService{Store: st, Hasher: hasher, Now: clk.Now},
		customers: &service.CustomerService{Store: st, Hasher: hasher, Now: clk.Now},
		resolver:  &service.PrincipalResolver{Store: st, Now: clk.Now},
	}
}

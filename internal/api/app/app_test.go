package app

import (
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pathfinder-tours/pathfinder/pkg/apisdk"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	cfg := loadConfig(viper.New())
	cfg.TokenSecret = strings.Repeat("k", 32)
	cfg.AdminEmail = "admin@test.com"
	cfg.AdminPassword = "admin-pass"
	cfg.DatabaseFile = filepath.Join(dir, "api.db")
	cfg.PepperFile = filepath.Join(dir, "pepper")
	cfg.CI = true
	cfg.GoogleClientID = ""
	cfg.SMTPHost = ""
	cfg.LogLevel = "error"
	return cfg
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig(t)
	cfg.AdminPassword = ""

	_, err := New(cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "invalid configuration")
}

func TestNewSeedsAdmin(t *testing.T) {
	cfg := testConfig(t)

	app, err := New(cfg)
	require.NoError(t, err)
	require.Nil(t, app.oauthService)

	srv := httptest.NewServer(app.router)
	t.Cleanup(srv.Close)
	t.Cleanup(func() { _ = app.db.Close() })

	client := apisdk.NewClient(srv.URL)
	admin, err := client.Login(t.Context(), apisdk.LoginRequest{Email: cfg.AdminEmail, Password: cfg.AdminPassword})
	require.NoError(t, err)

	me, err := admin.WhoAmI(t.Context())
	require.NoError(t, err)
	require.Equal(t, "admin", me.Kind)
}

func TestNewReopensExistingDatabase(t *testing.T) {
	cfg := testConfig(t)

	first, err := New(cfg)
	require.NoError(t, err)
	require.NoError(t, first.db.Close())

	// The admin is only seeded once and the pepper is reused.
	cfg.AdminPassword = "ignored"
	second, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = second.db.Close() })

	srv := httptest.NewServer(second.router)
	t.Cleanup(srv.Close)

	_, err = apisdk.NewClient(srv.URL).Login(t.Context(), apisdk.LoginRequest{Email: cfg.AdminEmail, Password: "admin-pass"})
	require.NoError(t, err)
}

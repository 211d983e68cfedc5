package http_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/pathfinder-tours/pathfinder/pkg/apisdk"
	"github.com/stretchr/testify/require"
)

func TestSigninLoginWhoAmI(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t, serverOptions{})

	u, err := s.client.Signin(ctx, apisdk.SigninRequest{Username: "test", Email: "test@test.com", Password: "fish"})
	require.NoError(t, err)
	require.Equal(t, "test", u.Username)
	require.False(t, u.Confirmed)

	t.Run("duplicate signin answers 401", func(t *testing.T) {
		_, err := s.client.Signin(ctx, apisdk.SigninRequest{Username: "test", Email: "other@test.com", Password: "fish"})
		requireStatus(t, err, http.StatusUnauthorized)

		_, err = s.client.Signin(ctx, apisdk.SigninRequest{Username: "other", Email: "TEST@test.com", Password: "fish"})
		requireStatus(t, err, http.StatusUnauthorized)
	})

	t.Run("signin with missing fields", func(t *testing.T) {
		_, err := s.client.Signin(ctx, apisdk.SigninRequest{Username: "x"})
		requireStatus(t, err, http.StatusBadRequest)

		var apiErr *apisdk.Error
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, "validation_error", apiErr.Code)
		require.Equal(t, "Missing value", apiErr.Description)
		require.Contains(t, apiErr.Details, "email")
	})

	t.Run("wrong and missing credentials", func(t *testing.T) {
		_, err := s.client.Login(ctx, apisdk.LoginRequest{Email: "test@test.com", Password: "chips"})
		requireStatus(t, err, http.StatusUnauthorized)

		_, err = s.client.Login(ctx, apisdk.LoginRequest{Email: "test@test.com"})
		requireStatus(t, err, http.StatusUnauthorized)

		_, err = s.client.Login(ctx, apisdk.LoginRequest{Email: "nobody@test.com", Password: "fish"})
		requireStatus(t, err, http.StatusUnauthorized)
	})

	session, err := s.client.Login(ctx, apisdk.LoginRequest{Email: "test@test.com", Password: "fish"})
	require.NoError(t, err)
	require.NotEmpty(t, session.Token())

	t.Run("whoami", func(t *testing.T) {
		me, err := session.WhoAmI(ctx)
		require.NoError(t, err)
		require.Equal(t, "test@test.com", me.Identity)
		require.Equal(t, "user", me.Kind)
	})

	t.Run("no token is 401", func(t *testing.T) {
		_, err := s.client.NewSession("").WhoAmI(ctx)
		requireStatus(t, err, http.StatusUnauthorized)
	})

	t.Run("garbage token is 403", func(t *testing.T) {
		_, err := s.client.NewSession("not-a-jwt").WhoAmI(ctx)
		requireStatus(t, err, http.StatusForbidden)
	})

	t.Run("tampered token is 403", func(t *testing.T) {
		tok := session.Token()
		tampered := tok[:len(tok)-2] + "xx"
		if strings.HasSuffix(tok, "xx") {
			tampered = tok[:len(tok)-2] + "yy"
		}
		_, err := s.client.NewSession(tampered).WhoAmI(ctx)
		requireStatus(t, err, http.StatusForbidden)
	})

	t.Run("logout acknowledges", func(t *testing.T) {
		text, err := session.Logout(ctx)
		require.NoError(t, err)
		require.Equal(t, "work in progress", text)

		// Bearer tokens are stateless.
		_, err = session.WhoAmI(ctx)
		require.NoError(t, err)
	})

	t.Run("expired token is 403", func(t *testing.T) {
		s.clock.Advance(time.Hour)
		_, err := session.WhoAmI(ctx)
		requireStatus(t, err, http.StatusForbidden)
	})
}

func TestTierSeparation(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t, serverOptions{})

	user := s.signinAndLogin(t, "test")
	admin := s.adminLogin(t)

	_, err := s.client.CustomerRegister(ctx, apisdk.CustomerRegisterRequest{
		Username: "walker",
		Email:    "walker@test.com",
		Password: "fish",
	})
	require.NoError(t, err)
	customer, err := s.client.CustomerLogin(ctx, apisdk.LoginRequest{Email: "walker@test.com", Password: "fish"})
	require.NoError(t, err)

	t.Run("admin passes the user tier", func(t *testing.T) {
		me, err := admin.WhoAmI(ctx)
		require.NoError(t, err)
		require.Equal(t, adminEmail, me.Identity)
		require.Equal(t, "admin", me.Kind)
	})

	t.Run("user is rejected by the admin tier", func(t *testing.T) {
		_, err := user.AdminListUsers(ctx)
		requireStatus(t, err, http.StatusForbidden)

		users, err := admin.AdminListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 1)
	})

	t.Run("customer is rejected by the user tier", func(t *testing.T) {
		_, err := customer.WhoAmI(ctx)
		requireStatus(t, err, http.StatusForbidden)
	})

	t.Run("user is rejected by the customer tier", func(t *testing.T) {
		_, err := user.Me(ctx)
		requireStatus(t, err, http.StatusForbidden)
	})

	t.Run("customer credentials do not log into the user tier", func(t *testing.T) {
		_, err := s.client.Login(ctx, apisdk.LoginRequest{Email: "walker@test.com", Password: "fish"})
		requireStatus(t, err, http.StatusUnauthorized)
	})
}

func TestSharedEmailAcrossTiers(t *testing.T) {
	ctx := context.Background()

	for _, lenient := range []bool{false, true} {
		name := "strict guards"
		if lenient {
			name = "lenient guards"
		}
		t.Run(name, func(t *testing.T) {
			s := newTestServer(t, serverOptions{lenientGuards: lenient, ci: true})
			user := s.signinAndLogin(t, "victim")

			for _, email := range []string{adminEmail, "victim@test.com"} {
				_, err := s.client.CustomerRegister(ctx, apisdk.CustomerRegisterRequest{
					Username: strings.Split(email, "@")[0],
					Email:    email,
					Password: "owned",
				})
				require.NoError(t, err)
			}

			asAdmin, err := s.client.CustomerLogin(ctx, apisdk.LoginRequest{Email: adminEmail, Password: "owned"})
			require.NoError(t, err)
			asVictim, err := s.client.CustomerLogin(ctx, apisdk.LoginRequest{Email: "victim@test.com", Password: "owned"})
			require.NoError(t, err)

			t.Run("customer named like the admin is not an admin", func(t *testing.T) {
				_, err := asAdmin.AdminListUsers(ctx)
				requireStatus(t, err, http.StatusForbidden)
				_, err = asAdmin.ListSubscribers(ctx)
				requireStatus(t, err, http.StatusForbidden)
				_, err = asAdmin.WhoAmI(ctx)
				requireStatus(t, err, http.StatusForbidden)
			})

			t.Run("customer named like a user cannot reset the user", func(t *testing.T) {
				_, err := asVictim.RequestReset(ctx)
				requireStatus(t, err, http.StatusForbidden)
				_, err = asVictim.DeleteAccount(ctx)
				requireStatus(t, err, http.StatusForbidden)

				_, err = s.client.Login(ctx, apisdk.LoginRequest{Email: "victim@test.com", Password: "fish"})
				require.NoError(t, err)
			})

			t.Run("each token stays in its own tier", func(t *testing.T) {
				me, err := user.WhoAmI(ctx)
				require.NoError(t, err)
				require.Equal(t, "user", me.Kind)

				c, err := asVictim.Me(ctx)
				require.NoError(t, err)
				require.Equal(t, "victim@test.com", c.Email)

				_, err = user.Me(ctx)
				requireStatus(t, err, http.StatusForbidden)
			})
		})
	}
}

func TestDeletedUserToken(t *testing.T) {
	ctx := context.Background()

	t.Run("strict guards reject the token", func(t *testing.T) {
		s := newTestServer(t, serverOptions{})
		session := s.signinAndLogin(t, "test")

		text, err := session.DeleteAccount(ctx)
		require.NoError(t, err)
		require.Equal(t, "User successfully deleted", text)

		_, err = session.WhoAmI(ctx)
		requireStatus(t, err, http.StatusForbidden)
	})

	t.Run("lenient guards trust the token", func(t *testing.T) {
		s := newTestServer(t, serverOptions{lenientGuards: true})
		session := s.signinAndLogin(t, "test")

		_, err := session.DeleteAccount(ctx)
		require.NoError(t, err)

		me, err := session.WhoAmI(ctx)
		require.NoError(t, err)
		require.Equal(t, "test@test.com", me.Identity)

		// The admin tier always checks.
		admin := s.adminLogin(t)
		_, err = admin.AdminListUsers(ctx)
		require.NoError(t, err)
	})
}

func TestAdminMFA(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t, serverOptions{})
	admin := s.adminLogin(t)

	enrolled, err := admin.EnrollMFA(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, enrolled.Secret)
	require.Contains(t, enrolled.OTPAuthURL, "otpauth://totp/")

	// Not enforced until verified.
	_, err = s.client.Login(ctx, apisdk.LoginRequest{Email: adminEmail, Password: adminPassword})
	require.NoError(t, err)

	_, err = admin.VerifyMFA(ctx, "000000")
	requireStatus(t, err, http.StatusBadRequest)

	code := totpCode(t, enrolled.Secret, s.clock.Now())
	done, err := admin.VerifyMFA(ctx, code)
	require.NoError(t, err)
	require.Equal(t, "MFA enabled", done.Text)

	t.Run("login needs a code", func(t *testing.T) {
		_, err := s.client.Login(ctx, apisdk.LoginRequest{Email: adminEmail, Password: adminPassword})
		requireStatus(t, err, http.StatusUnauthorized)
		var apiErr *apisdk.Error
		require.True(t, errors.As(err, &apiErr))
		require.Equal(t, "mfa_required", apiErr.Code)

		_, err = s.client.Login(ctx, apisdk.LoginRequest{Email: adminEmail, Password: adminPassword, OTP: "000000"})
		requireStatus(t, err, http.StatusUnauthorized)

		_, err = s.client.Login(ctx, apisdk.LoginRequest{Email: adminEmail, Password: adminPassword, OTP: code})
		require.NoError(t, err)
	})

	t.Run("disable", func(t *testing.T) {
		_, err := admin.DisableMFA(ctx, code)
		require.NoError(t, err)

		_, err = s.client.Login(ctx, apisdk.LoginRequest{Email: adminEmail, Password: adminPassword})
		require.NoError(t, err)
	})
}

package api_test

import (
	"net/http"
	"testing"

	"github.com/pathfinder-tours/pathfinder/pkg/apisdk"
	"github.com/stretchr/testify/require"
)

// TestAccountLifecycle walks a user through signin, confirmation, reset and deletion.
func TestAccountLifecycle(t *testing.T) {
	client := apisdk.NewClient(setupAPIContainer(t, nil))
	ctx := t.Context()

	session := signupAndLogin(t, client, "walker")

	me, err := session.WhoAmI(ctx)
	require.NoError(t, err)
	require.Equal(t, "walker@pathfinder.test", me.Identity)

	// CI mode returns the token instead of mailing it.
	d, err := session.RequestVerification(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, d.Token)

	confirmed, err := client.Confirm(ctx, "walker@pathfinder.test", d.Token)
	require.NoError(t, err)
	require.Equal(t, "Your email has been confirmed.", confirmed.Text)

	reset, err := client.Forgot(ctx, "walker@pathfinder.test")
	require.NoError(t, err)
	require.NotEmpty(t, reset.Token)

	_, err = client.Reset(ctx, apisdk.ResetRequest{Token: reset.Token, NewPassword: "chips"})
	require.NoError(t, err)

	_, err = client.Login(ctx, apisdk.LoginRequest{Email: "walker@pathfinder.test", Password: "fish"})
	assertStatus(t, err, http.StatusUnauthorized, "old password")

	session, err = client.Login(ctx, apisdk.LoginRequest{Email: "walker@pathfinder.test", Password: "chips"})
	require.NoError(t, err)

	text, err := session.DeleteAccount(ctx)
	require.NoError(t, err)
	require.Equal(t, "User successfully deleted", text)

	_, err = session.WhoAmI(ctx)
	assertStatus(t, err, http.StatusForbidden, "deleted user token")
}

// TestAdminTier checks the seeded admin and the tier boundaries.
func TestAdminTier(t *testing.T) {
	client := apisdk.NewClient(setupAPIContainer(t, nil))
	ctx := t.Context()

	admin, err := client.Login(ctx, apisdk.LoginRequest{Email: adminEmail, Password: adminPassword})
	require.NoError(t, err)

	user := signupAndLogin(t, client, "guide")

	users, err := admin.AdminListUsers(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)

	_, err = user.AdminListUsers(ctx)
	assertStatus(t, err, http.StatusForbidden, "user on the admin tier")

	_, err = client.NewSession("").AdminListUsers(ctx)
	assertStatus(t, err, http.StatusUnauthorized, "anonymous on the admin tier")

	created, err := admin.AdminCreateCustomer(ctx, apisdk.CustomerRegisterRequest{
		Username: "hiker",
		Email:    "hiker@pathfinder.test",
		Password: "fish",
	})
	require.NoError(t, err)

	customer, err := client.CustomerLogin(ctx, apisdk.LoginRequest{Email: "hiker@pathfinder.test", Password: "fish"})
	require.NoError(t, err)

	mine, err := customer.Me(ctx)
	require.NoError(t, err)
	require.Equal(t, created.ID, mine.ID)

	_, err = customer.WhoAmI(ctx)
	assertStatus(t, err, http.StatusForbidden, "customer on the user tier")
}

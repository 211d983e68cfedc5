package http_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/pathfinder-tours/pathfinder/pkg/apisdk"
	"github.com/stretchr/testify/require"
)

func TestAccountRoutes(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t, serverOptions{})
	alice := s.signinAndLogin(t, "alice")
	_ = s.signinAndLogin(t, "bob")

	t.Run("get by username", func(t *testing.T) {
		u, err := alice.GetAccount(ctx, "bob")
		require.NoError(t, err)
		require.Equal(t, "bob@test.com", u.Email)

		_, err = alice.GetAccount(ctx, "carol")
		requireStatus(t, err, http.StatusNotFound)
	})

	t.Run("patch", func(t *testing.T) {
		u, err := alice.UpdateAccount(ctx, apisdk.AccountPatchRequest{Username: "alicia"})
		require.NoError(t, err)
		require.Equal(t, "alicia", u.Username)

		_, err = alice.UpdateAccount(ctx, apisdk.AccountPatchRequest{Username: "bob"})
		requireStatus(t, err, http.StatusUnauthorized)

		_, err = alice.UpdateAccount(ctx, apisdk.AccountPatchRequest{Password: "chips"})
		require.NoError(t, err)
		_, err = s.client.Login(ctx, apisdk.LoginRequest{Email: "alice@test.com", Password: "chips"})
		require.NoError(t, err)
	})

	t.Run("admin deletes a user", func(t *testing.T) {
		admin := s.adminLogin(t)
		bob, err := alice.GetAccount(ctx, "bob")
		require.NoError(t, err)

		_, err = admin.AdminDeleteUser(ctx, bob.ID)
		require.NoError(t, err)
		_, err = admin.AdminDeleteUser(ctx, bob.ID)
		requireStatus(t, err, http.StatusNotFound)

		users, err := alice.ListAccounts(ctx)
		require.NoError(t, err)
		require.Len(t, users, 1)
	})
}

func TestCustomerRoutes(t *testing.T) {
	ctx := context.Background()
	s := newTestServer(t, serverOptions{})

	c, err := s.client.CustomerRegister(ctx, apisdk.CustomerRegisterRequest{
		Username:  "walker",
		Email:     "walker@test.com",
		Password:  "fish",
		FirstName: "Axelle",
	})
	require.NoError(t, err)
	require.Empty(t, c.LikedSuggestions)

	_, err = s.client.CustomerRegister(ctx, apisdk.CustomerRegisterRequest{Username: "walker", Email: "w2@test.com", Password: "fish"})
	requireStatus(t, err, http.StatusUnauthorized)

	customer, err := s.client.CustomerLogin(ctx, apisdk.LoginRequest{Email: "walker@test.com", Password: "fish"})
	require.NoError(t, err)

	t.Run("me", func(t *testing.T) {
		me, err := customer.Me(ctx)
		require.NoError(t, err)
		require.Equal(t, c.ID, me.ID)
		require.Equal(t, "Axelle", me.FirstName)
	})

	t.Run("update likes", func(t *testing.T) {
		me, err := customer.UpdateMe(ctx, apisdk.CustomerPatchRequest{LikedSuggestions: []string{"s1", "s2"}})
		require.NoError(t, err)
		require.Equal(t, []string{"s1", "s2"}, me.LikedSuggestions)

		me, err = customer.UpdateMe(ctx, apisdk.CustomerPatchRequest{LastName: "Whound"})
		require.NoError(t, err)
		require.Equal(t, []string{"s1", "s2"}, me.LikedSuggestions)
		require.Equal(t, "Whound", me.LastName)

		me, err = customer.UpdateMe(ctx, apisdk.CustomerPatchRequest{LikedSuggestions: []string{}})
		require.NoError(t, err)
		require.Empty(t, me.LikedSuggestions)
	})

	t.Run("users list customers", func(t *testing.T) {
		user := s.signinAndLogin(t, "guide")
		cs, err := user.ListCustomers(ctx)
		require.NoError(t, err)
		require.Len(t, cs, 1)

		_, err = customer.ListCustomers(ctx)
		requireStatus(t, err, http.StatusForbidden)
	})

	t.Run("admin manages customers", func(t *testing.T) {
		admin := s.adminLogin(t)

		created, err := admin.AdminCreateCustomer(ctx, apisdk.CustomerRegisterRequest{
			Username: "hiker",
			Email:    "hiker@test.com",
			Password: "fish",
		})
		require.NoError(t, err)

		updated, err := admin.AdminUpdateCustomer(ctx, created.ID, apisdk.CustomerPatchRequest{PhoneNumber: "06-55-55-55-55"})
		require.NoError(t, err)
		require.Equal(t, "06-55-55-55-55", updated.PhoneNumber)

		_, err = admin.AdminUpdateCustomer(ctx, "missing", apisdk.CustomerPatchRequest{FirstName: "x"})
		requireStatus(t, err, http.StatusNotFound)

		cs, err := admin.AdminListCustomers(ctx)
		require.NoError(t, err)
		require.Len(t, cs, 2)

		_, err = customer.AdminListCustomers(ctx)
		requireStatus(t, err, http.StatusForbidden)
	})
}

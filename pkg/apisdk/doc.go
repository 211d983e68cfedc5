/*
Package apisdk is a Go client for the Pathfinder API and the wire types it
speaks.

# Client vs Session

Client covers the public endpoints and logs in:

	client := apisdk.NewClient("http://localhost:4000")

	_, err := client.Signin(ctx, apisdk.SigninRequest{Username: "test", Email: "test@test.com", Password: "fish"})
	session, err := client.Login(ctx, apisdk.LoginRequest{Email: "test@test.com", Password: "fish"})

A Session carries the bearer token and covers the guarded endpoints:

	me, err := session.WhoAmI(ctx)
	d, err := session.RequestVerification(ctx)

Tokens are not refreshed. Once the access token expires every call fails
with a 403 and the caller logs in again.

# Errors

Every non-2xx answer is returned as *Error, holding the status code and
whatever error body the server sent:

	var apiErr *apisdk.Error
	if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusUnauthorized {
		// log in again
	}
*/
package apisdk

/*
Package authsdk provides clients for the property-management
authentication service.

# SDKClient vs APIClient

The package is organized around two client types:

  - SDKClient: the five public authentication operations. Stateless, it
    never reads or writes a session store.
  - APIClient: the session-aware request pipeline used for everything
    else. It attaches the stored token, persists tokens from responses
    and reacts to 401 and 403 answers.

Use an SDKClient for one-shot public calls:

	client := authsdk.NewSDKClient("http://localhost:8080/api")

	msg, err := client.Signup(ctx, authsdk.SignupRequest{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Password:  "secret1",
		Role:      authsdk.RoleClient,
	})

	_, err = client.ForgotPassword(ctx, "ada@example.com")

Use an APIClient when the session must survive between calls:

	api := authsdk.NewAPIClient(baseURL, sessionstore.NewFile(path),
		authsdk.WithLogger(logger),
		authsdk.WithNavigator(nav),
	)

	resp, err := api.Login(ctx, authsdk.LoginRequest{Email: email, Password: pw})
	if err == nil && !resp.Authenticated {
		// Two-factor enabled: exchange the pending token for a session.
		resp, err = api.VerifyTwoFactor(ctx, authsdk.TwoFactorVerificationRequest{
			Token: resp.Token,
			Code:  code,
		})
	}

	profile, err := api.GetProfile(ctx)

# Session Handling

Every APIClient request reads the "token" key from the session store and
sends it as "Authorization: Bearer <token>". A missing token sends the
request unauthenticated.

A successful response carrying a non-empty "token" field is persisted,
except for the signup and password endpoints and for pending two-factor
tokens ("authenticated": false). Login and VerifyTwoFactor also cache the
user record under the "user" key.

A 401 outside /auth/ clears the token and the user together and navigates
to RouteLogin. A 401 from an /auth/ endpoint is a failed credential check
and changes nothing. A 403 navigates to RouteUnauthorized.

# Error Handling

Every operation fails with *APIError. MapError is the single mapping from
an HTTP exchange to an error:

  - KindHTTP: non-2xx status. Message is the server's "message" field or
    "Request failed".
  - KindTransport: no response. Message is "Network error occurred".
  - KindRequest: the request could not be built. Message is
    "Request failed".
  - KindValidation: produced by callers validating input locally.

Example:

	_, err := client.Signup(ctx, req)
	if apiErr, ok := authsdk.AsAPIError(err); ok && apiErr.Kind == authsdk.KindHTTP {
		fmt.Println(apiErr.Status, apiErr.Message)
	}

Nothing is retried.

# Timeouts

SDKClient sets no timeout of its own; bound calls with the context.
APIClient requests are bounded by DefaultTimeout unless WithTimeout or
WithHTTPClient says otherwise.

# Thread Safety

Both clients are safe for concurrent use. Concurrent token writes follow
last-write-wins.
*/
package authsdk

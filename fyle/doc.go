// Package fyle provides a client for the Fyle REST API.
//
// The client authenticates with the OAuth2 refresh token grant and exposes
// one resource client per API resource. Every request carries the current
// access token as a bearer token, and every non-200 response is returned as
// an *Error whose Kind is derived from the HTTP status.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := fyle.NewClient(fyle.Credentials{
//		BaseURL:      "https://app.fylehq.com",
//		ClientID:     "client-id",
//		ClientSecret: "client-secret",
//		RefreshToken: "refresh-token",
//	}, logger, fyle.WithTimeout(30*time.Second))
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ctx := context.Background()
//	if err := client.Authenticate(ctx); err != nil {
//		log.Fatal(err)
//	}
//
//	projects, err := client.Projects.List(ctx, fyle.ListProjectsParams{ActiveOnly: fyle.Bool(true)})
//
// # Error Handling
//
// Status codes map to kinds as follows:
//
//   - 400: KindInvalidParameters
//   - 401: KindUnauthorized
//   - 403: KindForbidden
//   - 404: KindNotFound
//   - 498: KindTokenExpired
//   - 500: KindInternalServerError
//   - anything else: KindGeneric, with the status in StatusCode
//
// The token endpoint only distinguishes 401, 404 and 500. Failures that
// happen before a status is known (connection errors, unreadable or
// malformed bodies) are returned as *TransportError.
//
// The client never retries. When a call fails with ErrTokenExpired,
// re-authenticate and call again:
//
//	projects, err := client.Projects.List(ctx, fyle.ListProjectsParams{})
//	if errors.Is(err, fyle.ErrTokenExpired) {
//		if err := client.Authenticate(ctx); err != nil {
//			return err
//		}
//		projects, err = client.Projects.List(ctx, fyle.ListProjectsParams{})
//	}
//
// Authenticate must return before resource calls are issued; nothing in the
// package orders concurrent calls against it.
package fyle

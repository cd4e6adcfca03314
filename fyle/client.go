package fyle

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Client is the entry point of the SDK. It owns the OAuth2 credentials and
// hands the current session to every resource client.
type Client struct {
	creds  Credentials
	r      *requester
	logger zerolog.Logger

	// Projects is the projects resource client
	Projects *Projects

	resources     []sessionReceiver
	authenticated atomic.Bool
}

// NewClient creates a new, unauthenticated Fyle client. Call Authenticate
// before using any resource client.
func NewClient(creds Credentials, logger zerolog.Logger, opts ...Option) (*Client, error) {
	creds.BaseURL = strings.TrimSuffix(strings.TrimSpace(creds.BaseURL), "/")

	switch {
	case creds.BaseURL == "":
		return nil, fmt.Errorf("%w: base URL is required", ErrInvalidConfig)
	case creds.ClientID == "":
		return nil, fmt.Errorf("%w: client ID is required", ErrInvalidConfig)
	case creds.ClientSecret == "":
		return nil, fmt.Errorf("%w: client secret is required", ErrInvalidConfig)
	case creds.RefreshToken == "":
		return nil, fmt.Errorf("%w: refresh token is required", ErrInvalidConfig)
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	r, err := newRequester(o, logger)
	if err != nil {
		return nil, err
	}

	c := &Client{
		creds:    creds,
		r:        r,
		logger:   logger,
		Projects: newProjects(newAPIBase(r)),
	}
	c.resources = []sessionReceiver{c.Projects}

	return c, nil
}

// BaseURL returns the normalized base URL
func (c *Client) BaseURL() string {
	return c.creds.BaseURL
}

// Authenticated reports whether a token has been distributed
func (c *Client) Authenticated() bool {
	return c.authenticated.Load()
}

// Authenticate fetches a fresh access token and pushes it, together with
// the base URL, into every resource client. Calling it again refreshes the
// token; it is the way to recover from ErrTokenExpired. On failure no
// resource client is touched.
func (c *Client) Authenticate(ctx context.Context) error {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return fmt.Errorf("failed to authenticate: %w", err)
	}

	session := Session{
		AccessToken: token,
		ServerURL:   c.creds.BaseURL,
	}
	for _, res := range c.resources {
		res.SetSession(session)
	}
	c.authenticated.Store(true)

	c.logger.Debug().
		Str("base_url", c.creds.BaseURL).
		Int("resources", len(c.resources)).
		Msg("Authenticated with Fyle")

	return nil
}

// AccessToken exchanges the refresh token for a new access token without
// distributing it.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	payload, err := json.Marshal(tokenRequest{
		ClientID:     c.creds.ClientID,
		ClientSecret: c.creds.ClientSecret,
		RefreshToken: c.creds.RefreshToken,
		GrantType:    GrantTypeRefreshToken,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal token request: %w", err)
	}

	var resp tokenResponse
	err = c.r.do(ctx, call{
		method:  http.MethodPost,
		path:    TokenPath,
		url:     c.creds.BaseURL + TokenPath,
		body:    payload,
		mapping: tokenStatuses,
		out:     &resp,
	})
	if err != nil {
		return "", err
	}

	if resp.AccessToken == "" {
		return "", ErrMissingAccessToken
	}
	return resp.AccessToken, nil
}

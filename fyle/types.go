package fyle

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// json is the standard-library compatible codec with numbers kept as
// json.Number, so server values pass through unchanged.
var json = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// Endpoint paths
const (
	TokenPath    = "/api/oauth/token"
	ProjectsPath = "/api/tpa/v1/projects"
)

// GrantTypeRefreshToken is the only OAuth2 grant this SDK uses
const GrantTypeRefreshToken = "refresh_token"

// Credentials holds the OAuth2 client details used to obtain access tokens
type Credentials struct {
	BaseURL      string
	ClientID     string
	ClientSecret string
	RefreshToken string
}

// Session is the per-resource-client view of the current authentication
type Session struct {
	AccessToken string
	ServerURL   string
}

// tokenRequest is the body posted to the token endpoint
type tokenRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
	RefreshToken string `json:"refresh_token"`
	GrantType    string `json:"grant_type"`
}

// tokenResponse is the subset of the token endpoint response we use
type tokenResponse struct {
	AccessToken string `json:"access_token"`
}

// Project is a project record. Its fields are defined by the server.
type Project map[string]any

// Name returns the project name, or "" when absent
func (p Project) Name() string {
	return stringField(p, "name")
}

// ID returns the project id as a string, or "" when absent
func (p Project) ID() string {
	return stringField(p, "id")
}

// ProjectRef identifies a project created or updated by an upsert
type ProjectRef map[string]any

// ID returns the referenced id as a string, or "" when absent
func (r ProjectRef) ID() string {
	return stringField(r, "id")
}

// ListProjectsParams are the query parameters of the projects list call
type ListProjectsParams struct {
	// ActiveOnly filters on project state. Nil leaves the parameter out.
	ActiveOnly *bool `url:"active_only,omitempty"`
}

// Bool returns a pointer to b, for optional parameters
func Bool(b bool) *bool {
	return &b
}

func stringField(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

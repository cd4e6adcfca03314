package fyle

import (
	"context"
)

// ProjectsAPI defines the interface for project operations
type ProjectsAPI interface {
	// List retrieves projects, optionally only active ones
	List(ctx context.Context, params ListProjectsParams) ([]Project, error)

	// UpsertBatch creates or updates projects in bulk
	UpsertBatch(ctx context.Context, records []Project) ([]ProjectRef, error)
}

// sessionReceiver is implemented by every resource client the Client owns
type sessionReceiver interface {
	SetSession(s Session)
}

var (
	_ ProjectsAPI     = (*Projects)(nil)
	_ sessionReceiver = (*Projects)(nil)
)

package fyle

import (
	"context"
	"fmt"
)

// Projects is the client for the projects resource
type Projects struct {
	api *APIBase
}

func newProjects(api *APIBase) *Projects {
	return &Projects{api: api}
}

// SetSession updates the session used by every projects call
func (p *Projects) SetSession(s Session) {
	p.api.SetSession(s)
}

// List returns the projects of the organization. Leaving ActiveOnly unset
// lets the server apply its default.
func (p *Projects) List(ctx context.Context, params ListProjectsParams) ([]Project, error) {
	var projects []Project
	if err := p.api.Get(ctx, ProjectsPath, params, &projects); err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	return projects, nil
}

// UpsertBatch creates or updates projects in bulk and returns the ids the
// server assigned. Matching existing projects is done server-side.
func (p *Projects) UpsertBatch(ctx context.Context, records []Project) ([]ProjectRef, error) {
	if records == nil {
		records = []Project{}
	}

	var refs []ProjectRef
	if err := p.api.Post(ctx, ProjectsPath, records, &refs); err != nil {
		return nil, fmt.Errorf("failed to upsert projects: %w", err)
	}
	return refs, nil
}

package filter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fylein/fyle-sdk-go/fyle"
)

func TestCompile(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{
			name:       "valid expression",
			expression: `Project.active == true`,
		},
		{
			name:        "empty expression",
			expression:  "   ",
			wantErr:     true,
			errContains: "empty expression",
		},
		{
			name:       "invalid syntax",
			expression: `iprefix(field("name"), "unclosed`,
			wantErr:    true,
		},
		{
			name:        "non-boolean result",
			expression:  `field("name")`,
			wantErr:     true,
			errContains: "failed to compile expression",
		},
		{
			name:       "helpers",
			expression: `has("code") and icontains(field("name"), "ops") or isuffix(lower(field("code")), "x")`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expression)
			if tt.wantErr {
				require.Error(t, err)
				var compErr *CompilationError
				assert.True(t, errors.As(err, &compErr))
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expression, f.Expression())
		})
	}
}

func TestFilter_Apply(t *testing.T) {
	projects := []fyle.Project{
		{"id": "1", "name": "Ops Platform", "active": true, "code": "OPS"},
		{"id": "2", "name": "Marketing", "active": false},
		{"id": "3", "name": "ops-legacy", "active": false, "code": "LEGACY"},
	}

	tests := []struct {
		name       string
		expression string
		wantIDs    []string
	}{
		{
			name:       "active only",
			expression: `Project.active == true`,
			wantIDs:    []string{"1"},
		},
		{
			name:       "case insensitive prefix",
			expression: `iprefix(field("name"), "OPS")`,
			wantIDs:    []string{"1", "3"},
		},
		{
			name:       "operator form",
			expression: `lower(field("name")) startsWith "ops" and field("code") endsWith "Y"`,
			wantIDs:    []string{"3"},
		},
		{
			name:       "case insensitive contains",
			expression: `icontains(field("name"), "PLAT")`,
			wantIDs:    []string{"1"},
		},
		{
			name:       "field presence",
			expression: `not has("code")`,
			wantIDs:    []string{"2"},
		},
		{
			name:       "missing field renders empty",
			expression: `field("description") == ""`,
			wantIDs:    []string{"1", "2", "3"},
		},
		{
			name:       "no matches",
			expression: `upper(field("name")) == "NOPE"`,
			wantIDs:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := Compile(tt.expression)
			require.NoError(t, err)

			matched, err := f.Apply(projects)
			require.NoError(t, err)

			ids := make([]string, 0, len(matched))
			for _, p := range matched {
				ids = append(ids, p.ID())
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestFilter_EvaluationError(t *testing.T) {
	f, err := Compile(`Project.name + 1 > 0`)
	require.NoError(t, err)

	_, err = f.Match(fyle.Project{"id": "42", "name": "abc"})
	require.Error(t, err)

	var evalErr *EvaluationError
	require.True(t, errors.As(err, &evalErr))
	assert.Equal(t, "42", evalErr.ProjectID)
	assert.Contains(t, err.Error(), "project '42'")
}

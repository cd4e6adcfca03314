package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/fylein/fyle-sdk-go/filter"
	"github.com/fylein/fyle-sdk-go/fyle"
)

var (
	// Command flags
	activeOnly  bool
	filterExpr  string
	upsertInput string
)

// projectsCmd groups the project commands
var projectsCmd = &cobra.Command{
	Use:   "projects",
	Short: "List and upsert Fyle projects",
}

// listProjectsCmd represents the projects list command
var listProjectsCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Long: `List the projects of your Fyle organisation.

Use --active-only to ask the server for active (or, with --active-only=false,
inactive) projects. The --filter expression is evaluated locally against each
project, for example:

  fylectl projects list --filter 'iprefix(field("name"), "acme")'
  fylectl projects list --filter 'lower(field("name")) startsWith "acme"'`,
	PreRunE: initializeApp,
	RunE:    runListProjects,
}

// upsertProjectsCmd represents the projects upsert command
var upsertProjectsCmd = &cobra.Command{
	Use:   "upsert",
	Short: "Create or update projects in bulk",
	Long: `Create or update projects from a JSON array of project objects.
Pass --file - to read the array from standard input.`,
	PreRunE: initializeApp,
	RunE:    runUpsertProjects,
}

func init() {
	listProjectsCmd.Flags().BoolVar(&activeOnly, "active-only", false, "only return active projects (false returns inactive ones)")
	listProjectsCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression evaluated against each project")

	upsertProjectsCmd.Flags().StringVar(&upsertInput, "file", "", "JSON file holding an array of projects, or - for stdin")
	_ = upsertProjectsCmd.MarkFlagRequired("file")

	projectsCmd.AddCommand(listProjectsCmd)
	projectsCmd.AddCommand(upsertProjectsCmd)
}

func runListProjects(cmd *cobra.Command, args []string) error {
	format, err := resolveOutput(outputMode)
	if err != nil {
		return err
	}

	var projectFilter *filter.Filter
	if filterExpr != "" {
		projectFilter, err = filter.Compile(filterExpr)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
	}

	// Unset means the parameter is left out of the query entirely
	var params fyle.ListProjectsParams
	if cmd.Flags().Changed("active-only") {
		params.ActiveOnly = fyle.Bool(activeOnly)
	}

	ctx := commandContext(cmd)
	projects, err := withReauth(ctx, client, func(ctx context.Context) ([]fyle.Project, error) {
		return client.Projects.List(ctx, params)
	})
	if err != nil {
		return err
	}

	logger.Debug().Int("count", len(projects)).Msg("Fetched projects")

	if projectFilter != nil {
		projects, err = projectFilter.Apply(projects)
		if err != nil {
			return err
		}
		logger.Debug().
			Str("filter", projectFilter.Expression()).
			Int("matched", len(projects)).
			Msg("Applied filter")
	}

	return writeProjects(cmd.OutOrStdout(), format, projects)
}

func runUpsertProjects(cmd *cobra.Command, args []string) error {
	format, err := resolveOutput(outputMode)
	if err != nil {
		return err
	}

	records, err := readProjects(upsertInput, cmd.InOrStdin())
	if err != nil {
		return err
	}

	logger.Info().Int("count", len(records)).Msg("Upserting projects")

	ctx := commandContext(cmd)
	refs, err := withReauth(ctx, client, func(ctx context.Context) ([]fyle.ProjectRef, error) {
		return client.Projects.UpsertBatch(ctx, records)
	})
	if err != nil {
		return err
	}

	return writeRefs(cmd.OutOrStdout(), format, refs)
}

// readProjects decodes a JSON array of projects from path, or from stdin
// when path is "-".
func readProjects(path string, stdin io.Reader) ([]fyle.Project, error) {
	var r io.Reader
	if path == "-" {
		r = stdin
	} else {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open projects file: %w", err)
		}
		defer f.Close()
		r = f
	}

	var records []fyle.Project
	if err := json.NewDecoder(r).Decode(&records); err != nil {
		return nil, fmt.Errorf("failed to parse projects: %w", err)
	}
	return records, nil
}

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/fylein/fyle-sdk-go/fyle"
)

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:     "test",
	Short:   "Test the connection to Fyle",
	Long:    `Authenticate against Fyle with the configured refresh token and display basic project statistics.`,
	PreRunE: initializeApp,
	RunE:    runTest,
}

// projectStats is what the test command reports
type projectStats struct {
	Total  int
	Active int
}

func runTest(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Testing connection to Fyle at %s...\n", client.BaseURL())

	// Authentication already happened in initializeApp
	fmt.Fprintln(out, "✓ Authentication successful!")

	stats, err := collectProjectStats(commandContext(cmd), client)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "\nFyle Statistics:\n")
	fmt.Fprintf(out, "- Total projects: %d\n", stats.Total)
	fmt.Fprintf(out, "- Active projects: %d\n", stats.Active)

	return nil
}

// collectProjectStats fetches all and active projects concurrently
func collectProjectStats(ctx context.Context, c *fyle.Client) (projectStats, error) {
	var stats projectStats

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		all, err := withReauth(ctx, c, func(ctx context.Context) ([]fyle.Project, error) {
			return c.Projects.List(ctx, fyle.ListProjectsParams{})
		})
		if err != nil {
			return err
		}
		stats.Total = len(all)
		return nil
	})

	g.Go(func() error {
		active, err := withReauth(ctx, c, func(ctx context.Context) ([]fyle.Project, error) {
			return c.Projects.List(ctx, fyle.ListProjectsParams{ActiveOnly: fyle.Bool(true)})
		})
		if err != nil {
			return err
		}
		stats.Active = len(active)
		return nil
	})

	if err := g.Wait(); err != nil {
		return projectStats{}, err
	}
	return stats, nil
}

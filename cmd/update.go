package cmd

import (
	"fmt"

	"github.com/blang/semver"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

var (
	updateRepository string
	checkOnly        bool
)

// updateCmd represents the update command
var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Update fylectl to the latest release",
	Long:  `Check GitHub for a newer fylectl release and replace the running binary with it.`,
	RunE:  runUpdate,
}

func init() {
	updateCmd.Flags().StringVar(&updateRepository, "repository", "fylein/fyle-sdk-go", "GitHub repository (owner/name) to check for releases")
	updateCmd.Flags().BoolVar(&checkOnly, "check", false, "only report whether an update is available")
}

func runUpdate(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	current, err := semver.ParseTolerant(version)
	if err != nil {
		return fmt.Errorf("cannot update a development build (version %q)", version)
	}

	ctx := commandContext(cmd)
	latest, found, err := selfupdate.DetectLatest(ctx, selfupdate.ParseSlug(updateRepository))
	if err != nil {
		return fmt.Errorf("failed to detect latest release: %w", err)
	}
	if !found {
		return fmt.Errorf("no release found for %s", updateRepository)
	}

	if latest.LessOrEqual(current.String()) {
		fmt.Fprintf(out, "✓ fylectl %s is up to date\n", current)
		return nil
	}

	if checkOnly {
		fmt.Fprintf(out, "Update available: %s → %s\n", current, latest.Version())
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}

	fmt.Fprintf(out, "Updating fylectl %s → %s...\n", current, latest.Version())
	if err := selfupdate.UpdateTo(ctx, latest.AssetURL, latest.AssetName, exe); err != nil {
		return fmt.Errorf("failed to update binary: %w", err)
	}

	fmt.Fprintf(out, "✓ Updated to %s\n", latest.Version())
	return nil
}

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/winytils/release/internal/domain"
	"github.com/winytils/release/internal/orchestrator"
)

var rootCmd *cobra.Command

func Execute() error {
	return rootCmd.Execute()
}

// newReleaseCmd creates the root command running the release sequence.
func newReleaseCmd(c *container) *cobra.Command {
	var (
		primaryRemote     string
		mirrorRemote      string
		outputDir         string
		pypirc            string
		dryRun            bool
		skipGithubRelease bool
	)
	cmd := &cobra.Command{
		Use:   "release <version>",
		Short: "Publish a package release",
		Long: `release publishes one version of the package: it pushes the current
branch to the primary and mirror remotes, creates and pushes the annotated
tag v<version>, builds the distributable artifacts and uploads them to the
package index, then removes the output directory.

The sequence is fail-fast: the first failing step aborts the run and its
exit code is propagated.`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			version, err := domain.NewVersion(args[0])
			if err != nil {
				return fmt.Errorf("invalid version %q: %w", args[0], err)
			}
			orch := c.releaseOrchestrator(pypirc)
			cfg := orchestrator.ReleaseConfig{
				PrimaryRemote:     primaryRemote,
				MirrorRemote:      mirrorRemote,
				OutputDir:         outputDir,
				DryRun:            dryRun,
				SkipGithubRelease: skipGithubRelease,
			}
			return orch.Execute(cmd.Context(), cfg, version)
		},
	}

	cmd.Flags().StringVar(&primaryRemote, "primary-remote", c.cfg.PrimaryRemote, "Remote receiving the branch and tag first")
	cmd.Flags().StringVar(&mirrorRemote, "mirror-remote", c.cfg.MirrorRemote, "Mirror remote receiving the same branch and tag")
	cmd.Flags().StringVar(&outputDir, "output-dir", c.cfg.OutputDir, "Directory the build tool writes artifacts into")
	cmd.Flags().StringVar(&pypirc, "pypirc", c.cfg.Pypirc, "Index credential file handed to the upload client")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the planned steps without executing anything")
	cmd.Flags().BoolVar(&skipGithubRelease, "skip-github-release", false, "Do not create a GitHub release for the tag")
	return cmd
}

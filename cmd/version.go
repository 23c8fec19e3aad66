package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/mod/semver"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), "nursing-mcq", formatVersion(version))
	},
}

// formatVersion canonicalizes release versions and flags pre-releases.
// Anything that isn't semver is printed unchanged.
func formatVersion(v string) string {
	if !semver.IsValid(v) {
		return v
	}
	c := semver.Canonical(v)
	if semver.Prerelease(c) != "" {
		return c + " (pre-release)"
	}
	return c
}

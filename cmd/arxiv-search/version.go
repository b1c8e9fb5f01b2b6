package main

import (
	"fmt"
	"runtime/debug"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version of arxiv-search",
	Run: func(cmd *cobra.Command, args []string) {
		info, _ := debug.ReadBuildInfo()
		fmt.Fprintln(cmd.OutOrStdout(), versionString(version, info))
	},
}

// versionString prefers the ldflags version and falls back to the module
// version recorded by "go install".
func versionString(v string, info *debug.BuildInfo) string {
	if v == "dev" && info != nil && info.Main.Version != "" && info.Main.Version != "(devel)" {
		v = info.Main.Version
	}
	s := "arxiv-search " + v
	if info != nil && info.GoVersion != "" {
		s += " (" + info.GoVersion + ")"
	}
	return s
}

func init() {
	rootCmd.AddCommand(versionCmd)
}

//go:build mage

package main

import (
	"os"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

// Search builds the CLI and runs a one-shot search. The query comes from
// the QUERY environment variable; empty uses the configured default.
func Search() error {
	mg.Deps(Build)
	args := []string{"search"}
	if q := os.Getenv("QUERY"); q != "" {
		args = append(args, q)
	}
	if c := os.Getenv("CATEGORY"); c != "" {
		args = append(args, "--category", c)
	}
	return sh.RunV("bin/"+binName, args...)
}

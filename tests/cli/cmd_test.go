// SPDX-License-Identifier: MPL-2.0

// Package cli contains CLI integration tests using testscript.
//
// The depwalk command runs in-process through testscript.RunMain, so scripts
// exercise the real command tree, config loading and exit codes.
package cli

import (
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	cmd "github.com/invowk/depwalk/cmd/depwalk"
)

func TestMain(m *testing.M) {
	os.Exit(testscript.RunMain(m, map[string]func() int{
		"depwalk": cmd.Main,
	}))
}

// TestCLI runs all testscript tests in the testdata directory.
func TestCLI(t *testing.T) {
	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Setup: func(env *testscript.Env) error {
			// Keep the user's configuration out of the scripts.
			env.Setenv("XDG_CONFIG_HOME", env.WorkDir+"/.config")
			env.Setenv("NO_COLOR", "1")
			return nil
		},
		// Continue running all tests even if one fails
		ContinueOnError: true,
	})
}

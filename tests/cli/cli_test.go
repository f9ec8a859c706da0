// SPDX-License-Identifier: MPL-2.0

// Package cli contains CLI integration tests using testscript.
//
// The scripts in testdata run the richhelp binary in an isolated work
// directory and check its output and exit status.
package cli

import (
	"os"
	"testing"

	"github.com/rogpeppe/go-internal/testscript"

	cmd "github.com/invowk/richhelp/cmd/richhelp"
)

func TestMain(m *testing.M) {
	testscript.Main(m, map[string]func(){
		"richhelp": cmd.Execute,
	})
}

// TestCLI runs all testscript tests in the testdata directory.
func TestCLI(t *testing.T) {
	t.Parallel()

	testscript.Run(t, testscript.Params{
		Dir: "testdata",
		Setup: func(env *testscript.Env) error {
			// Deterministic layout: no terminal, fixed width, no user config.
			env.Setenv("COLUMNS", "100")
			env.Setenv("XDG_CONFIG_HOME", env.WorkDir+string(os.PathSeparator)+"xdg")
			env.Setenv("NO_COLOR", "1")
			return nil
		},
	})
}

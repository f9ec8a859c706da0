// SPDX-License-Identifier: MPL-2.0

// Command richhelp previews rich help screens rendered by the engine.
package main

import cmd "github.com/invowk/richhelp/cmd/richhelp"

func main() {
	cmd.Execute()
}

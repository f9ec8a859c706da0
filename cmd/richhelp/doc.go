// SPDX-License-Identifier: MPL-2.0

// Package cmd contains the CLI commands of the richhelp binary.
//
// The binary renders its own help through the engine and carries a sample
// command tree used to preview themes, output formats and the tree view.
package cmd

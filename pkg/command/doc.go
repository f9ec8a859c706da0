// SPDX-License-Identifier: MPL-2.0

// Package command describes command-line programs for help rendering.
//
// A Command holds everything the help engine reads: prose, parameters,
// subcommands and panel declarations. Commands are built once when the host
// program declares them and are treated as read-only afterwards. The engine
// never depends on a concrete command type; it consumes the Node interface, so
// any host framework can be adapted through a thin shim (see the cobracmd
// subpackage).
//
// Commands can be declared directly as struct literals or through the
// Builder, whose calls are recorded in declaration order:
//
//	cmd := command.New("sync").
//		Help("Synchronise files.").
//		Arg("src").
//		Option("--type, -t", command.WithHelp("Type of file to sync"), command.WithDefault("files"), command.ShowDefault()).
//		Build()
package command

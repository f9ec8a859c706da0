// SPDX-License-Identifier: MPL-2.0

// Package tui provides the terminal rendering primitives used by the help
// engine: a Console bound to one output (color profile and width), titled
// panel frames, borderless tables, guide-line trees, markdown through glamour,
// and export of rendered ANSI text to plain text, HTML or SVG.
//
// Everything here is a pure function of its inputs and the Console settings;
// nothing writes to the output itself.
package tui

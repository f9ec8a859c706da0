// SPDX-License-Identifier: MPL-2.0

// Package theme resolves the layered help configuration.
//
// A Config starts from the library Defaults, receives explicit overrides, and
// then a theme: a color Palette plus a structural Format, addressed as
// "nord", "slim" or "nord-slim". Theme values only replace fields that still
// equal their library default, so user settings are never overwritten.
// Resolved configurations are plain values and are never mutated; Compile turns
// one into lipgloss styles for a specific renderer.
package theme

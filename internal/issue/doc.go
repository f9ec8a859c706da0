// SPDX-License-Identifier: MPL-2.0

// Package issue provides actionable errors for configuration and theme
// problems, plus a catalog of markdown articles that explain them at length.
package issue

// Package ui holds the shared lipgloss palette, styles and layout helpers
// used by every maptools screen and by the CLI's plain-text output.
//
// Every full-screen view goes through RenderApplicationContainer so the
// header (name and version), the footer (help or notice) and the outer
// border look the same everywhere.
package ui

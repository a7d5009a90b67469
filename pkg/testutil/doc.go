// Package testutil provides helpers shared by the package tests.
//
// Key components:
//   - Environment: an isolated XDG config and state directory with the
//     BEAUTIFY_* variables cleared
//   - WriteFile: creates a file and its parent directories
//
// Each test gets its own environment; nothing is shared between tests.
package testutil

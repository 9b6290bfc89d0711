// Package ui provides semantic text formatting for CLI output.
//
// This package defines formatters for different types of content (code,
// paths, key IDs, errors) that render appropriately based on terminal
// capabilities. When colors are available, content is colorized. When
// NO_COLOR is set or the terminal doesn't support colors, text-based
// decorations (backticks, parentheses) are used instead.
//
// # Semantic Formatters
//
// Use the appropriate formatter for the content type:
//
//	ui.Code.Sprint("shroud notes.gpg 'vi %FILE'")  // Commands
//	ui.Path.Sprint("/dev/shm/shroud-123/notes")    // File paths
//	ui.Key.Sprint("A1B2C3D4E5F60718")              // Recipient key IDs
//	ui.Success.Sprint("✓")                          // Success indicators
//	ui.Error.Sprint("✗")                            // Error indicators
//	ui.Info.Sprint("→")                             // Informational hints
//	ui.Muted.Sprint("optional")                    // De-emphasized text
//
// # Color Behavior
//
// Colors are disabled when:
//   - NO_COLOR environment variable is set (any value)
//   - Terminal doesn't support colors (TERM=dumb, not a TTY)
package ui

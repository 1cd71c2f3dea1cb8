// Package tui provides Bubble Tea models for the interactive surfaces:
// the habit-type picker and the post-commit summary rendering.
package tui

// ErrorMsg is emitted when an error occurs.
type ErrorMsg struct {
	Err error
}

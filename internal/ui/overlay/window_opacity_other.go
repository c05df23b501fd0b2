//go:build !windows

package overlay

// Per-window alpha is only wired up on Windows; elsewhere the canvas
// background alpha is the only transparency control.
func (overlay *Window) applyNativeOpacity(alpha uint8) {}

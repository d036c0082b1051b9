//go:build !linux

package terminal

// resetTerminalMode is a no-op where termios ioctls differ; tcell's Fini covers the normal path
func resetTerminalMode() {}

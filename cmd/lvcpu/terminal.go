//go:build linux || darwin || dragonfly || freebsd || netbsd || openbsd

package main

import (
	"golang.org/x/sys/unix"
	"golang.org/x/term"
)

// charMode clears line editing and echo so each keystroke reaches IN as it
// is typed. Signal keys and output post-processing are left alone.
func charMode(mode *unix.Termios) {
	mode.Lflag &^= unix.ICANON | unix.ECHO
	mode.Cc[unix.VMIN] = 1
	mode.Cc[unix.VTIME] = 0
}

// enterCharMode switches the terminal at fd into character mode.
// restore puts back the previous mode, and is a no-op when fd is not a
// terminal.
func enterCharMode(fd int) (restore func(), err error) {
	restore = func() {}

	if !term.IsTerminal(fd) {
		return
	}

	old, err := unix.IoctlGetTermios(fd, ioctlGetTermios)
	if err != nil {
		return
	}

	mode := *old
	charMode(&mode)

	err = unix.IoctlSetTermios(fd, ioctlSetTermios, &mode)
	if err != nil {
		return
	}

	restore = func() {
		_ = unix.IoctlSetTermios(fd, ioctlSetTermios, old)
	}

	return
}

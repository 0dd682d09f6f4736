//go:build !(linux || darwin || dragonfly || freebsd || netbsd || openbsd)

package main

// enterCharMode leaves the terminal alone; input stays line buffered.
func enterCharMode(fd int) (restore func(), err error) {
	restore = func() {}
	return
}

package main

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/nf/wasd/platform"
)

const ctrlC = 0x03

// stdinHost feeds bytes read from stdin to the keyboard controller, one
// key at a time. If stdin is a terminal it is put in raw mode.
type stdinHost struct {
	m  *platform.Machine
	in io.Reader
}

func newStdinHost(m *platform.Machine) *stdinHost {
	return &stdinHost{m: m, in: os.Stdin}
}

func (h *stdinHost) Run(exit <-chan bool) error {
	if f, ok := h.in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		fd := int(f.Fd())
		old, err := term.MakeRaw(fd)
		if err != nil {
			return err
		}
		defer term.Restore(fd, old)
	}

	var (
		keys    = make(chan byte)
		readErr = make(chan error, 1)
	)
	go readKeys(h.in, keys, readErr)
	for {
		select {
		case <-exit:
			return nil
		case err := <-readErr:
			if err == io.EOF {
				return nil
			}
			return err
		case b := <-keys:
			if b == ctrlC {
				return nil
			}
			if platform.Feed(h.m.Keyboard, []byte{b}, exit) == 0 {
				return nil
			}
		}
	}
}

func readKeys(r io.Reader, keys chan<- byte, readErr chan<- error) {
	var b [1]byte
	for {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			readErr <- err
			return
		}
		keys <- b[0]
	}
}

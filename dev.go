package main

import (
	"bytes"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/howeyc/fsnotify"

	"github.com/nf/wasd/cursor"
	"github.com/nf/wasd/platform"
)

// devMode replays the key script in file on a fresh machine and does so
// again each time the file changes.
func devMode(l cursor.Layout, file string) error {
	file = filepath.Clean(file)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer watcher.Close()
	if err := watcher.Watch(filepath.Dir(file)); err != nil {
		return err
	}

	run := time.After(1 * time.Millisecond)
	for {
		select {
		case <-run:
			log.Printf("dev: run %s", filepath.Base(file))
			keys, err := os.ReadFile(file)
			if err != nil {
				log.Printf("dev: %v", err)
				break
			}
			res, err := replay(l, parseScript(keys))
			if err != nil {
				log.Printf("dev: %v", err)
				break
			}
			log.Printf("dev: %v", res)
			os.Stdout.WriteString(res.Screen)
		case ev := <-watcher.Event:
			if filepath.Clean(ev.Name) == file && !ev.IsAttrib() {
				run = time.After(100 * time.Millisecond)
			}
		case err := <-watcher.Error:
			log.Printf("dev: watcher: %v", err)
		}
	}
}

// parseScript returns the keys in a key script. Whitespace is ignored and
// '#' starts a comment that runs to the end of the line.
func parseScript(b []byte) []byte {
	var keys []byte
	for len(b) > 0 {
		line, rest, _ := bytes.Cut(b, []byte{'\n'})
		b = rest
		if i := bytes.IndexByte(line, '#'); i >= 0 {
			line = line[:i]
		}
		for _, c := range line {
			switch c {
			case ' ', '\t', '\r':
			default:
				keys = append(keys, c)
			}
		}
	}
	return keys
}

type replayResult struct {
	Keys     int // keys read by the program
	Halted   bool
	Position cursor.Position
	Screen   string
}

func (r replayResult) String() string {
	verb := "stopped"
	if r.Halted {
		verb = "halted"
	}
	return fmt.Sprintf("%d keys read, %s at %v", r.Keys, verb, r.Position)
}

// replay runs keys on a fresh machine. If the keys run out before the
// program quits, the program is stopped.
func replay(l cursor.Layout, keys []byte) (replayResult, error) {
	m, err := platform.New(l)
	if err != nil {
		return replayResult{}, err
	}
	var (
		done    = make(chan bool)
		fed     = make(chan int, 1)
		execErr = make(chan error, 1)
	)
	go func() { fed <- platform.Feed(m.Keyboard, keys, done) }()
	go func() { execErr <- m.Exec() }()

	var res replayResult
	select {
	case err = <-execErr:
		close(done)
		res.Keys = <-fed
	case res.Keys = <-fed:
		m.Halt()
		err = <-execErr
	}
	switch {
	case err == nil:
		res.Halted = true
	case errors.Is(err, cursor.ErrStopped):
	default:
		return res, err
	}
	res.Position = m.Program.Position()
	res.Screen = m.Display.Text()
	return res, nil
}

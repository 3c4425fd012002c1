// Package platform implements the machine the cursor program runs on:
// a memory bus with a keyboard controller and a text display mapped on it.
package platform

import (
	"fmt"
	"log"

	"github.com/nf/wasd/cursor"
	"github.com/nf/wasd/mmio"
)

type Machine struct {
	Layout   cursor.Layout
	Bus      *mmio.Bus
	Keyboard *Keyboard
	Display  *Display
	Program  *cursor.Program
}

// New returns a machine with its devices mapped at the addresses in l.
// The keyboard value register must follow the status register.
func New(l cursor.Layout) (*Machine, error) {
	if l.Key != l.Status+1 {
		return nil, fmt.Errorf("keyboard value register %.8x does not follow status register %.8x", l.Key, l.Status)
	}
	m := &Machine{
		Layout:   l,
		Bus:      new(mmio.Bus),
		Keyboard: NewKeyboard(l.Status),
		Display:  NewDisplay(l.Display),
	}
	if err := m.Bus.Map(l.Display, m.Display.Size(), m.Display); err != nil {
		return nil, fmt.Errorf("display: %w", err)
	}
	if err := m.Bus.Map(l.Status, m.Keyboard.Size(), m.Keyboard); err != nil {
		return nil, fmt.Errorf("keyboard: %w", err)
	}
	m.Program = cursor.New(cursor.NewRegisters(m.Bus, l))
	return m, nil
}

// Exec runs the program until it halts or is stopped.
func (m *Machine) Exec() error { return m.Program.Run() }

// Halt stops a running program.
func (m *Machine) Halt() { m.Program.Stop() }

// Frontend presents the machine to a user. Run blocks until exit is
// closed or the frontend is closed by the user.
type Frontend interface {
	Run(exit <-chan bool) error
}

type Runner struct {
	m     *Machine
	front Frontend
}

// NewRunner returns a Runner for m. If front is nil the machine runs
// headless.
func NewRunner(m *Machine, front Frontend) *Runner {
	return &Runner{m: m, front: front}
}

// Run executes the program and drives the frontend until either finishes.
// It returns the program's error, which is nil if it read the quit key.
func (r *Runner) Run() error {
	var (
		exit    = make(chan bool)
		execErr = make(chan error, 1)
	)
	go func() {
		err := r.m.Exec()
		execErr <- err
		close(exit)
	}()
	if r.front == nil {
		<-exit
		return <-execErr
	}
	if err := r.front.Run(exit); err != nil {
		log.Printf("frontend: %v", err)
	}
	select {
	case <-exit:
	default:
		// The user closed the frontend while the program was running.
		r.m.Halt()
		<-exit
	}
	return <-execErr
}

// Feed presses each key in turn, waiting for the program to read it
// before pressing the next. It returns early if done is closed and
// reports the number of keys read.
func Feed(k *Keyboard, keys []byte, done <-chan bool) int {
	for i, b := range keys {
		// Drain a stale notification from an earlier consumer.
		select {
		case <-k.Taken():
		default:
		}
		k.Press(b)
		select {
		case <-k.Taken():
		case <-done:
			return i
		}
	}
	return len(keys)
}

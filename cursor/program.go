// Package cursor implements a program that moves a cursor glyph around a
// memory-mapped text display in response to keys read from a memory-mapped
// keyboard.
//
// The program polls the keyboard status register in a busy loop. When a key
// is available it reads the key, moves the glyph one cell (w, a, s, d for
// up, left, down, right, wrapping at the edges) and stops when it reads q.
package cursor

import (
	"errors"
	"runtime"

	"github.com/nf/wasd/mmio"
)

// Glyph is drawn at the cursor position; Blank erases it.
const (
	Glyph = '*'
	Blank = ' '
)

// State is the poll loop state.
type State byte

const (
	Idle State = iota
	Processing
	Halted
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Processing:
		return "processing"
	case Halted:
		return "halted"
	}
	return "unknown"
}

// Event describes one processed key.
type Event struct {
	Key      byte
	Dir      Direction
	From, To Position
	State    State
}

// ErrStopped is returned by Run if the program was stopped by the host
// rather than by the quit key.
var ErrStopped = errors.New("stopped")

// Program is the cursor program bound to a set of device registers.
type Program struct {
	// Trace, if set, is called after each processed key.
	// It must not be changed while the program runs.
	Trace func(Event)

	regs  *Registers
	pos   Position
	state State
	stop  chan bool
}

func New(regs *Registers) *Program {
	return &Program{regs: regs, stop: make(chan bool)}
}

func (p *Program) Position() Position { return p.pos }
func (p *Program) State() State       { return p.state }

// Start draws the glyph at the top-left cell and resets the loop to Idle.
func (p *Program) Start() {
	p.pos = Position{}
	p.state = Idle
	p.regs.WriteCell(p.pos.Offset(), Glyph)
}

// Step performs one poll of the keyboard and reports whether the program
// has halted. A bus fault is returned as a *mmio.FaultError.
func (p *Program) Step() (halted bool, err error) {
	err = mmio.Catch(func() { halted = p.step() })
	return
}

func (p *Program) step() bool {
	if p.state == Halted {
		return true
	}
	if !p.regs.ReadStatus() {
		return false
	}
	p.state = Processing

	key := p.regs.ReadKey()
	d := DirectionFor(key)
	from := p.pos
	to := from.Step(d)
	switch {
	case d == Quit:
		p.state = Halted
	case to != from:
		p.regs.WriteCell(from.Offset(), Blank)
		p.regs.WriteCell(to.Offset(), Glyph)
		p.pos = to
		p.state = Idle
	default:
		p.state = Idle
	}

	if p.Trace != nil {
		p.Trace(Event{Key: key, Dir: d, From: from, To: p.pos, State: p.state})
	}
	return p.state == Halted
}

// Run draws the glyph and polls the keyboard until the quit key is read.
// It returns nil after the quit key, ErrStopped if Stop was called, or a
// *mmio.FaultError if a device access faulted.
func (p *Program) Run() error {
	if err := mmio.Catch(p.Start); err != nil {
		return err
	}
	for {
		halted, err := p.Step()
		if err != nil || halted {
			return err
		}
		select {
		case <-p.stop:
			return ErrStopped
		default:
		}
		runtime.Gosched()
	}
}

// Stop makes a running Run return ErrStopped. It must be called at most once.
func (p *Program) Stop() { close(p.stop) }

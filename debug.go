package main

import (
	"fmt"
	"log"
	"os"
	"sync"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/nf/wasd/cursor"
	"github.com/nf/wasd/platform"
)

// debugger shows the display alongside the program state and a log of
// processed keys. Typed keys go to the keyboard controller.
type debugger struct {
	m *platform.Machine

	display *tview.TextView
	state   *tview.TextView
	log     *tview.TextView
	rows    *tview.Flex
	app     *tview.Application

	mu     sync.Mutex
	last   cursor.Event
	keys   int
	halted bool
}

func newDebugger(m *platform.Machine) *debugger {
	d := &debugger{
		m: m,
		display: tview.NewTextView().
			SetWrap(false),
		state: tview.NewTextView().
			SetWrap(false),
		log: tview.NewTextView().
			SetMaxLines(1000),
		rows: tview.NewFlex().
			SetDirection(tview.FlexRow),
		app: tview.NewApplication(),
	}
	d.log.SetChangedFunc(func() { d.app.Draw() })
	d.display.SetBackgroundColor(tcell.ColorBlack)
	d.state.SetBackgroundColor(tcell.ColorDarkGrey)
	d.state.SetTextColor(tcell.ColorBlack)
	d.rows.
		AddItem(d.display, cursor.Rows, 0, false).
		AddItem(d.state, 2, 0, false).
		AddItem(d.log, 0, 1, false)
	d.app.SetRoot(d.rows, true)
	d.app.SetInputCapture(func(ev *tcell.EventKey) *tcell.EventKey {
		switch ev.Key() {
		case tcell.KeyCtrlC, tcell.KeyEscape:
			d.app.Stop()
		case tcell.KeyRune:
			if r := ev.Rune(); r < 0x80 {
				d.m.Keyboard.Press(byte(r))
			}
		}
		return nil
	})
	m.Program.Trace = d.trace
	return d
}

func (d *debugger) trace(e cursor.Event) {
	d.mu.Lock()
	d.last = e
	d.keys++
	d.mu.Unlock()
	if e.Dir == cursor.None {
		log.Printf("key %q ignored at %v", e.Key, e.From)
	} else {
		log.Printf("key %q %v %v -> %v", e.Key, e.Dir, e.From, e.To)
	}
}

// Run runs the debugger until the user quits it. It stays open after the
// program halts so the final state can be inspected.
func (d *debugger) Run(exit <-chan bool) error {
	log.SetPrefix("")
	log.SetOutput(d.log)
	defer func() {
		log.SetOutput(os.Stderr)
		log.SetPrefix("wasd: ")
	}()

	stopped := make(chan bool)
	defer close(stopped)
	go func() {
		for {
			select {
			case <-d.m.Display.Changed:
				d.app.QueueUpdateDraw(d.refresh)
			case <-exit:
				d.mu.Lock()
				d.halted = true
				d.mu.Unlock()
				log.Printf("program exited; press Esc to close")
				d.app.QueueUpdateDraw(d.refresh)
				return
			case <-stopped:
				return
			}
		}
	}()

	d.refresh()
	return d.app.Run()
}

func (d *debugger) refresh() {
	d.display.SetText(d.m.Display.Text())
	d.state.SetText(d.stateMsg())
	d.mu.Lock()
	halted := d.halted
	d.mu.Unlock()
	if halted {
		d.state.SetTextColor(tcell.ColorWhite)
		d.state.SetBackgroundColor(tcell.ColorDarkRed)
	}
}

func (d *debugger) stateMsg() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	kind := "       "
	if d.halted {
		kind = "[HALT!]"
	}
	e := d.last
	return fmt.Sprintf("%s pos %v offset %4d  keys %d  last %q (%v)\nstatus %.8x  key %.8x  display %.8x",
		kind, e.To, e.To.Offset(), d.keys, e.Key, e.Dir,
		d.m.Layout.Status, d.m.Layout.Key, d.m.Layout.Display)
}

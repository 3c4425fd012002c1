package main

import (
	"github.com/gdamore/tcell/v2"

	"github.com/nf/wasd/cursor"
	"github.com/nf/wasd/platform"
)

// terminal shows the display in a terminal and sends key presses to the
// keyboard controller.
type terminal struct {
	m      *platform.Machine
	screen tcell.Screen
	rev    int
}

func newTerminal(m *platform.Machine) (*terminal, error) {
	s, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	return &terminal{m: m, screen: s, rev: -1}, nil
}

func (t *terminal) Run(exit <-chan bool) error {
	if err := t.screen.Init(); err != nil {
		return err
	}
	defer t.screen.Fini()
	t.screen.HideCursor()

	events := make(chan tcell.Event)
	quit := make(chan struct{})
	defer close(quit)
	go t.screen.ChannelEvents(events, quit)

	t.draw()
	for {
		select {
		case <-exit:
			t.draw()
			return nil
		case <-t.m.Display.Changed:
			t.draw()
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			switch ev := ev.(type) {
			case *tcell.EventKey:
				if !t.key(ev) {
					return nil
				}
			case *tcell.EventResize:
				t.screen.Sync()
				t.rev = -1
				t.draw()
			}
		}
	}
}

// key handles a key event and reports whether the frontend should keep
// running.
func (t *terminal) key(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyCtrlC, tcell.KeyEscape:
		return false
	case tcell.KeyRune:
		if r := ev.Rune(); r < 0x80 {
			t.m.Keyboard.Press(byte(r))
		}
	}
	return true
}

func (t *terminal) draw() {
	buf, rev := t.m.Display.Snapshot()
	if rev == t.rev {
		return
	}
	t.rev = rev
	for row := 0; row < cursor.Rows; row++ {
		for col := 0; col < cursor.Cols; col++ {
			i := 2 * (row*cursor.Cols + col)
			t.screen.SetContent(col, row, rune(platform.Printable(buf[i])), nil, attrStyle(buf[i+1]))
		}
	}
	t.screen.Show()
}

// vgaColors maps the 16 VGA text colors to tcell colors.
var vgaColors = [16]tcell.Color{
	tcell.ColorBlack, tcell.ColorNavy, tcell.ColorGreen, tcell.ColorTeal,
	tcell.ColorMaroon, tcell.ColorPurple, tcell.ColorOlive, tcell.ColorSilver,
	tcell.ColorGray, tcell.ColorBlue, tcell.ColorLime, tcell.ColorAqua,
	tcell.ColorRed, tcell.ColorFuchsia, tcell.ColorYellow, tcell.ColorWhite,
}

func attrStyle(attr byte) tcell.Style {
	return tcell.StyleDefault.
		Foreground(vgaColors[attr&0x0f]).
		Background(vgaColors[attr>>4&0x07])
}

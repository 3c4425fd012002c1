package platform

import (
	"strings"
	"sync"

	"github.com/nf/wasd/cursor"
)

// DefaultAttr is white on black.
const DefaultAttr = 0x0f

// Display is a VGA-style text buffer of cursor.Cols x cursor.Rows cells,
// each a character byte followed by an attribute byte.
type Display struct {
	// Changed receives a value after the buffer is written.
	Changed <-chan bool

	base uint32

	mu   sync.Mutex
	buf  [cursor.DisplaySize]byte
	rev  int // incremented on every write
	chng chan bool
}

func NewDisplay(base uint32) *Display {
	d := &Display{base: base, chng: make(chan bool, 1)}
	d.Changed = d.chng
	d.reset()
	return d
}

func (d *Display) Size() uint32 { return cursor.DisplaySize }

func (d *Display) Read(addr uint32) byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf[addr-d.base]
}

func (d *Display) Write(addr uint32, b byte) {
	d.mu.Lock()
	d.buf[addr-d.base] = b
	d.rev++
	d.mu.Unlock()
	notify(d.chng)
}

// Reset restores the power-on contents: blank characters with DefaultAttr.
func (d *Display) Reset() {
	d.mu.Lock()
	d.reset()
	d.rev++
	d.mu.Unlock()
	notify(d.chng)
}

func (d *Display) reset() {
	for i := range d.buf {
		if i%2 == 0 {
			d.buf[i] = 0
		} else {
			d.buf[i] = DefaultAttr
		}
	}
}

// Revision returns a counter that changes whenever the buffer does.
func (d *Display) Revision() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rev
}

// Snapshot returns a copy of the buffer and its revision.
func (d *Display) Snapshot() ([cursor.DisplaySize]byte, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf, d.rev
}

// Cell returns the character and attribute at col, row.
func (d *Display) Cell(col, row int) (ch, attr byte) {
	i := 2 * (row*cursor.Cols + col)
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.buf[i], d.buf[i+1]
}

// Text renders buf as cursor.Rows lines of text. Non-printable
// characters are shown as spaces.
func Text(buf *[cursor.DisplaySize]byte) string {
	var b strings.Builder
	b.Grow(cursor.Rows * (cursor.Cols + 1))
	for row := 0; row < cursor.Rows; row++ {
		for col := 0; col < cursor.Cols; col++ {
			b.WriteByte(Printable(buf[2*(row*cursor.Cols+col)]))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// Text renders the current contents of the display.
func (d *Display) Text() string {
	buf, _ := d.Snapshot()
	return Text(&buf)
}

// Printable maps ch to itself if it is printable ASCII and to a space
// otherwise.
func Printable(ch byte) byte {
	if ch < 0x20 || ch > 0x7e {
		return ' '
	}
	return ch
}

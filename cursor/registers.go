package cursor

import "github.com/nf/wasd/mmio"

// Layout gives the bus addresses of the devices the program uses.
type Layout struct {
	Display uint32 // base of the 80x25x2 text buffer
	Status  uint32 // keyboard status register
	Key     uint32 // keyboard value register
}

// DefaultLayout is the memory map of the reference platform.
var DefaultLayout = Layout{
	Display: 0x000b8000,
	Status:  0x000a0000,
	Key:     0x000a0001,
}

// DisplaySize is the size of the text buffer in bytes.
const DisplaySize = Cols * Rows * 2

// KeyReady is the status register value meaning a key is available.
const KeyReady = 0x01

// Registers are the program's view of the keyboard and display.
type Registers struct {
	display mmio.Reg8
	status  mmio.Reg8
	key     mmio.Reg8
}

func NewRegisters(bus *mmio.Bus, l Layout) *Registers {
	return &Registers{
		display: mmio.NewReg8(bus, l.Display),
		status:  mmio.NewReg8(bus, l.Status),
		key:     mmio.NewReg8(bus, l.Key),
	}
}

// ReadStatus reports whether a key is available.
func (r *Registers) ReadStatus() bool { return r.status.Load() == KeyReady }

// ReadKey returns the most recently pressed key.
func (r *Registers) ReadKey() byte { return r.key.Load() }

// WriteCell writes b at offset into the display buffer.
// The offset is not checked.
func (r *Registers) WriteCell(offset uint32, b byte) { r.display.Offset(offset).Store(b) }

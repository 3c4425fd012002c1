package mmio

import "sync"

// Reg8 is a volatile 8-bit register at a fixed bus address.
// Every Load and Store reaches the device; nothing is cached.
type Reg8 struct {
	bus  *Bus
	addr uint32
}

// NewReg8 returns the register at addr on b.
func NewReg8(b *Bus, addr uint32) Reg8 { return Reg8{bus: b, addr: addr} }

func (r Reg8) Addr() uint32 { return r.addr }
func (r Reg8) Load() byte   { return r.bus.Read8(r.addr) }
func (r Reg8) Store(v byte) { r.bus.Write8(r.addr, v) }

// Offset returns the register n bytes after r.
func (r Reg8) Offset(n uint32) Reg8 { return Reg8{bus: r.bus, addr: r.addr + n} }

// Memory is a plain byte region usable as a Device.
type Memory struct {
	mu    sync.Mutex
	base  uint32
	bytes []byte
}

// NewMemory returns a zeroed region of size bytes that expects to be
// mapped at base.
func NewMemory(base, size uint32) *Memory {
	return &Memory{base: base, bytes: make([]byte, size)}
}

func (m *Memory) Len() int { return len(m.bytes) }

func (m *Memory) Read(addr uint32) byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bytes[addr-m.base]
}

func (m *Memory) Write(addr uint32, v byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bytes[addr-m.base] = v
}

// Bytes returns a copy of the region's contents.
func (m *Memory) Bytes() []byte {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]byte(nil), m.bytes...)
}

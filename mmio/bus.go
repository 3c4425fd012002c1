// Package mmio provides a byte-addressed memory bus onto which devices
// are mapped, and volatile registers that access them.
package mmio

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

// Device is a memory-mapped region of a Bus. Addresses passed to Read and
// Write are absolute bus addresses within the region the device is mapped at.
type Device interface {
	Read(addr uint32) byte
	Write(addr uint32, value byte)
}

// Bus dispatches byte accesses to the devices mapped on it.
// It is safe for concurrent use.
type Bus struct {
	mu      sync.RWMutex
	regions []region // sorted by start
}

type region struct {
	start, end uint32 // end is exclusive
	dev        Device
}

func (r region) contains(addr uint32) bool {
	return addr >= r.start && addr < r.end
}

var ErrOverlap = errors.New("region overlaps an existing mapping")

// Map maps d at [start, start+size).
func (b *Bus) Map(start, size uint32, d Device) error {
	if size == 0 {
		return fmt.Errorf("map %.8x: zero size", start)
	}
	end := start + size
	if end < start {
		return fmt.Errorf("map %.8x+%x: wraps address space", start, size)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, r := range b.regions {
		if start < r.end && r.start < end {
			return fmt.Errorf("map %.8x-%.8x: %w at %.8x-%.8x",
				start, end-1, ErrOverlap, r.start, r.end-1)
		}
	}
	b.regions = append(b.regions, region{start: start, end: end, dev: d})
	sort.Slice(b.regions, func(i, j int) bool {
		return b.regions[i].start < b.regions[j].start
	})
	return nil
}

func (b *Bus) lookup(addr uint32) (Device, bool) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	i := sort.Search(len(b.regions), func(i int) bool {
		return b.regions[i].end > addr
	})
	if i < len(b.regions) && b.regions[i].contains(addr) {
		return b.regions[i].dev, true
	}
	return nil, false
}

// Read8 reads the byte at addr. It panics with a Fault if no device is
// mapped at addr.
func (b *Bus) Read8(addr uint32) byte {
	d, ok := b.lookup(addr)
	if !ok {
		panic(Fault{Addr: addr})
	}
	return d.Read(addr)
}

// Write8 writes value at addr. It panics with a Fault if no device is
// mapped at addr.
func (b *Bus) Write8(addr uint32, value byte) {
	d, ok := b.lookup(addr)
	if !ok {
		panic(Fault{Addr: addr, Write: true})
	}
	d.Write(addr, value)
}

// Fault describes an access to an address with no device behind it.
type Fault struct {
	Addr  uint32
	Write bool
}

func (f Fault) String() string {
	if f.Write {
		return fmt.Sprintf("write to unmapped address %.8x", f.Addr)
	}
	return fmt.Sprintf("read from unmapped address %.8x", f.Addr)
}

// FaultError is returned by Catch when fn triggers a Fault.
type FaultError struct {
	Fault
}

func (e *FaultError) Error() string { return "bus fault: " + e.Fault.String() }

// Catch calls fn and converts a Fault panic into a *FaultError.
// Any other panic is propagated.
func Catch(fn func()) (err error) {
	defer func() {
		if e := recover(); e != nil {
			if f, ok := e.(Fault); ok {
				err = &FaultError{Fault: f}
			} else {
				panic(e)
			}
		}
	}()
	fn()
	return nil
}

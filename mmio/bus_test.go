package mmio

import (
	"errors"
	"fmt"
	"testing"
)

func TestMap(t *testing.T) {
	for _, c := range []struct {
		start, size uint32
		ok          bool
	}{
		{0x1000, 0x10, true},
		{0x0ff0, 0x10, true}, // ends where the existing region starts
		{0x1010, 0x10, true}, // starts where the existing region ends
		{0x0ff1, 0x10, false},
		{0x100f, 0x01, false},
		{0x1008, 0x02, false},
		{0x0f00, 0x200, false},
		{0x2000, 0, false},
		{0xffffffff, 2, false},
	} {
		t.Run(fmt.Sprintf("%.8x+%x", c.start, c.size), func(t *testing.T) {
			var b Bus
			if err := b.Map(0x1000, 0x10, NewMemory(0x1000, 0x10)); err != nil {
				t.Fatal(err)
			}
			if c.start == 0x1000 && c.size == 0x10 {
				// Mapping the same region twice must fail.
				if err := b.Map(c.start, c.size, NewMemory(c.start, c.size)); !errors.Is(err, ErrOverlap) {
					t.Errorf("Map duplicate returned %v, want ErrOverlap", err)
				}
				return
			}
			err := b.Map(c.start, c.size, NewMemory(c.start, c.size))
			if ok := err == nil; ok != c.ok {
				t.Errorf("Map returned %v, want ok == %v", err, c.ok)
			}
		})
	}
}

func TestReadWrite(t *testing.T) {
	var (
		b  Bus
		lo = NewMemory(0x100, 4)
		hi = NewMemory(0x200, 4)
	)
	if err := b.Map(0x200, 4, hi); err != nil {
		t.Fatal(err)
	}
	if err := b.Map(0x100, 4, lo); err != nil {
		t.Fatal(err)
	}
	b.Write8(0x103, 0xaa)
	b.Write8(0x200, 0xbb)
	if g := b.Read8(0x103); g != 0xaa {
		t.Errorf("Read8(103) == %.2x, want aa", g)
	}
	if g := b.Read8(0x200); g != 0xbb {
		t.Errorf("Read8(200) == %.2x, want bb", g)
	}
	if g, w := lo.Bytes(), []byte{0, 0, 0, 0xaa}; string(g) != string(w) {
		t.Errorf("lo == % x, want % x", g, w)
	}
	if g, w := hi.Bytes(), []byte{0xbb, 0, 0, 0}; string(g) != string(w) {
		t.Errorf("hi == % x, want % x", g, w)
	}
}

func TestFault(t *testing.T) {
	var b Bus
	if err := b.Map(0x100, 4, NewMemory(0x100, 4)); err != nil {
		t.Fatal(err)
	}
	for _, c := range []struct {
		name string
		fn   func()
		want Fault
	}{
		{"read below", func() { b.Read8(0xff) }, Fault{Addr: 0xff}},
		{"read above", func() { b.Read8(0x104) }, Fault{Addr: 0x104}},
		{"write above", func() { b.Write8(0x104, 1) }, Fault{Addr: 0x104, Write: true}},
	} {
		t.Run(c.name, func(t *testing.T) {
			err := Catch(c.fn)
			var fe *FaultError
			if !errors.As(err, &fe) {
				t.Fatalf("Catch returned %v, want *FaultError", err)
			}
			if fe.Fault != c.want {
				t.Errorf("fault == %+v, want %+v", fe.Fault, c.want)
			}
		})
	}
	if err := Catch(func() { b.Read8(0x100) }); err != nil {
		t.Errorf("Catch on mapped read returned %v", err)
	}
}

func TestCatchPropagatesOtherPanics(t *testing.T) {
	defer func() {
		if e := recover(); e != "boom" {
			t.Errorf("recovered %v, want boom", e)
		}
	}()
	Catch(func() { panic("boom") })
	t.Error("Catch returned")
}

// countingDevice counts accesses so tests can check Reg8 never caches.
type countingDevice struct {
	reads, writes int
	v             byte
}

func (d *countingDevice) Read(uint32) byte {
	d.reads++
	return d.v
}

func (d *countingDevice) Write(_ uint32, v byte) {
	d.writes++
	d.v = v
}

func TestReg8(t *testing.T) {
	var (
		b Bus
		d countingDevice
	)
	if err := b.Map(0xa0000, 2, &d); err != nil {
		t.Fatal(err)
	}
	r := NewReg8(&b, 0xa0000)
	for i := 0; i < 3; i++ {
		r.Load()
	}
	r.Store(7)
	r.Offset(1).Store(9)
	if d.reads != 3 || d.writes != 2 {
		t.Errorf("reads, writes == %d, %d, want 3, 2", d.reads, d.writes)
	}
	if g := r.Load(); g != 9 {
		t.Errorf("Load() == %d, want 9", g)
	}
	if g := r.Offset(1).Addr(); g != 0xa0001 {
		t.Errorf("Offset(1).Addr() == %.8x, want 000a0001", g)
	}
}

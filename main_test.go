package main

import "testing"

func TestParseAddr(t *testing.T) {
	for _, c := range []struct {
		in   string
		want uint32
		ok   bool
	}{
		{"0xb8000", 0xb8000, true},
		{"0x000A0000", 0xa0000, true},
		{"4096", 4096, true},
		{"0xffffffff", 0xffffffff, true},
		{"0x100000000", 0, false},
		{"vga", 0, false},
		{"", 0, false},
	} {
		g, err := parseAddr(c.in)
		if ok := err == nil; ok != c.ok || g != c.want {
			t.Errorf("parseAddr(%q) == %#x, %v; want %#x, ok == %v", c.in, g, err, c.want, c.ok)
		}
	}
}

package cursor

import (
	"fmt"
	"testing"
)

func TestStepWraps(t *testing.T) {
	for _, c := range []struct {
		from Position
		d    Direction
		want Position
	}{
		{Position{0, 0}, Left, Position{79, 0}},
		{Position{79, 24}, Right, Position{0, 24}},
		{Position{0, 0}, Up, Position{0, 24}},
		{Position{0, 24}, Down, Position{0, 0}},
		{Position{5, 5}, Up, Position{5, 4}},
		{Position{5, 5}, Left, Position{4, 5}},
		{Position{5, 5}, Down, Position{5, 6}},
		{Position{5, 5}, Right, Position{6, 5}},
		{Position{5, 5}, Quit, Position{5, 5}},
		{Position{5, 5}, None, Position{5, 5}},
	} {
		t.Run(fmt.Sprintf("%v_%v", c.from, c.d), func(t *testing.T) {
			if g := c.from.Step(c.d); g != c.want {
				t.Errorf("%v.Step(%v) == %v, want %v", c.from, c.d, g, c.want)
			}
		})
	}
}

func TestStepStaysInBounds(t *testing.T) {
	for col := uint32(0); col < Cols; col++ {
		for row := uint32(0); row < Rows; row++ {
			p := Position{col, row}
			for _, d := range []Direction{Up, Left, Down, Right} {
				if n := p.Step(d); !n.Valid() {
					t.Fatalf("%v.Step(%v) == %v, out of bounds", p, d, n)
				}
			}
		}
	}
}

func TestStepRoundTrip(t *testing.T) {
	opposite := map[Direction]Direction{Up: Down, Down: Up, Left: Right, Right: Left}
	for _, p := range []Position{{0, 0}, {79, 24}, {0, 24}, {79, 0}, {40, 12}} {
		for d, o := range opposite {
			if g := p.Step(d).Step(o); g != p {
				t.Errorf("%v.Step(%v).Step(%v) == %v", p, d, o, g)
			}
		}
	}
}

func TestAdvance(t *testing.T) {
	p := Position{10, 10}
	for k := 0; k < 0x100; k++ {
		key := byte(k)
		next, quit := p.Advance(key)
		var want Position
		switch key {
		case 'w':
			want = Position{10, 9}
		case 'a':
			want = Position{9, 10}
		case 's':
			want = Position{10, 11}
		case 'd':
			want = Position{11, 10}
		default:
			want = p
		}
		if next != want {
			t.Errorf("Advance(%q) == %v, want %v", key, next, want)
		}
		if quit != (key == 'q') {
			t.Errorf("Advance(%q) quit == %v", key, quit)
		}
	}
}

func TestOffset(t *testing.T) {
	for _, c := range []struct {
		p    Position
		want uint32
	}{
		{Position{0, 0}, 0},
		{Position{1, 0}, 2},
		{Position{0, 1}, 160},
		{Position{2, 1}, 164},
		{Position{79, 24}, 3998},
	} {
		if g := c.p.Offset(); g != c.want {
			t.Errorf("%v.Offset() == %d, want %d", c.p, g, c.want)
		}
	}
	if last := (Position{Cols - 1, Rows - 1}).Offset(); last+1 >= DisplaySize {
		t.Errorf("last character offset %d does not leave room for its attribute", last)
	}
}

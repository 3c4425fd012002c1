package cursor

import "fmt"

// Display dimensions in cells.
const (
	Cols = 80
	Rows = 25
)

// Position is a cell on the display. The zero value is the top-left cell.
type Position struct {
	Col, Row uint32
}

func (p Position) String() string { return fmt.Sprintf("(%d,%d)", p.Col, p.Row) }

// Valid reports whether p lies within the display.
func (p Position) Valid() bool { return p.Col < Cols && p.Row < Rows }

// Offset returns the byte offset of p's character cell in the display
// buffer. Each cell is two bytes: character then attribute.
func (p Position) Offset() uint32 { return 2 * (p.Row*Cols + p.Col) }

// Direction is the action associated with a key.
type Direction byte

const (
	None Direction = iota
	Up
	Left
	Down
	Right
	Quit
)

func (d Direction) String() string {
	switch d {
	case None:
		return "none"
	case Up:
		return "up"
	case Left:
		return "left"
	case Down:
		return "down"
	case Right:
		return "right"
	case Quit:
		return "quit"
	}
	return fmt.Sprintf("Direction(%d)", byte(d))
}

// DirectionFor returns the direction bound to key. Only lowercase
// w, a, s, d and q are bound.
func DirectionFor(key byte) Direction {
	switch key {
	case 'w':
		return Up
	case 'a':
		return Left
	case 's':
		return Down
	case 'd':
		return Right
	case 'q':
		return Quit
	default:
		return None
	}
}

// Step returns the position one cell away from p in direction d, wrapping
// at the display edges. Quit and None return p.
func (p Position) Step(d Direction) Position {
	switch d {
	case Up:
		if p.Row == 0 {
			p.Row = Rows - 1
		} else {
			p.Row--
		}
	case Left:
		if p.Col == 0 {
			p.Col = Cols - 1
		} else {
			p.Col--
		}
	case Down:
		if p.Row == Rows-1 {
			p.Row = 0
		} else {
			p.Row++
		}
	case Right:
		if p.Col == Cols-1 {
			p.Col = 0
		} else {
			p.Col++
		}
	}
	return p
}

// Advance returns the position reached from p by pressing key, and
// reports whether key is the quit key.
func (p Position) Advance(key byte) (next Position, quit bool) {
	d := DirectionFor(key)
	return p.Step(d), d == Quit
}

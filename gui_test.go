package main

import (
	"image"
	"image/color"
	"testing"

	"github.com/nf/wasd/cursor"
	"github.com/nf/wasd/platform"
)

func TestRenderText(t *testing.T) {
	d := platform.NewDisplay(0)
	d.Write((cursor.Position{Col: 2, Row: 1}).Offset(), cursor.Glyph)
	d.Write((cursor.Position{Col: 5, Row: 5}).Offset()+1, 0x4e) // yellow on red
	buf, _ := d.Snapshot()

	m := image.NewRGBA(image.Rect(0, 0, cursor.Cols*cellW, cursor.Rows*cellH))
	renderText(m, &buf)

	count := func(col, row int, c color.RGBA) (n int) {
		for y := row * cellH; y < (row+1)*cellH; y++ {
			for x := col * cellW; x < (col+1)*cellW; x++ {
				if m.RGBAAt(x, y) == c {
					n++
				}
			}
		}
		return
	}
	var (
		black = vgaPalette[0]
		white = vgaPalette[15]
		red   = vgaPalette[4]
	)
	if n := count(0, 0, black); n != cellW*cellH {
		t.Errorf("blank cell has %d black pixels, want %d", n, cellW*cellH)
	}
	if n := count(2, 1, white); n == 0 {
		t.Error("glyph cell has no foreground pixels")
	}
	if n := count(5, 5, red); n != cellW*cellH {
		t.Errorf("red cell has %d red pixels, want %d", n, cellW*cellH)
	}
}

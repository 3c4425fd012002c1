package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"log"
	"time"

	"golang.org/x/exp/shiny/driver"
	"golang.org/x/exp/shiny/screen"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/mobile/event/key"
	"golang.org/x/mobile/event/lifecycle"
	"golang.org/x/mobile/event/paint"
	"golang.org/x/mobile/event/size"

	"github.com/nf/wasd/cursor"
	"github.com/nf/wasd/platform"
)

// Cell size of basicfont.Face7x13.
const (
	cellW = 7
	cellH = 13
)

// gui shows the display in a window.
type gui struct {
	m *platform.Machine

	img *image.RGBA
	buf screen.Buffer
	tex screen.Texture
	rev int
}

func newGUI(m *platform.Machine) *gui {
	return &gui{
		m:   m,
		img: image.NewRGBA(image.Rect(0, 0, cursor.Cols*cellW, cursor.Rows*cellH)),
		rev: -1,
	}
}

func (g *gui) Run(exit <-chan bool) error {
	var runErr error
	driver.Main(func(s screen.Screen) {
		w, err := s.NewWindow(&screen.NewWindowOptions{
			Title:  "wasd",
			Width:  2 * g.img.Bounds().Dx(),
			Height: 2 * g.img.Bounds().Dy(),
		})
		if err != nil {
			runErr = err
			return
		}
		defer w.Release()
		defer g.release()

		type update struct{}
		go func() {
			t := time.NewTicker(time.Second / 60)
			defer t.Stop()
			for {
				select {
				case <-t.C:
					w.Send(update{})
				case <-exit:
					w.Send(update{})
					return
				}
			}
		}()

		var sz size.Event
		for {
			e := w.NextEvent()

			select {
			case <-exit:
				return
			default:
			}

			switch e := e.(type) {
			case size.Event:
				sz = e
				if sz.WidthPx+sz.HeightPx == 0 {
					return
				}
				g.rev = -1

			case lifecycle.Event:
				if e.To == lifecycle.StageDead {
					return
				}

			case key.Event:
				if e.Direction == key.DirRelease {
					break
				}
				if e.Code == key.CodeEscape {
					return
				}
				if e.Rune > 0 && e.Rune < 0x80 {
					g.m.Keyboard.Press(byte(e.Rune))
				}

			case paint.Event:
				g.rev = -1

			case update:
				if !g.render() {
					break
				}
				if err := g.upload(s); err != nil {
					runErr = fmt.Errorf("upload: %v", err)
					return
				}
				w.Scale(sz.Bounds(), g.tex, g.tex.Bounds(), draw.Src, nil)
				w.Publish()

			case error:
				log.Print(e)
			}
		}
	})
	return runErr
}

// render draws the display into g.img and reports whether it changed.
func (g *gui) render() bool {
	buf, rev := g.m.Display.Snapshot()
	if rev == g.rev {
		return false
	}
	g.rev = rev
	renderText(g.img, &buf)
	return true
}

func (g *gui) upload(s screen.Screen) (err error) {
	sz := g.img.Bounds().Size()
	if g.tex == nil {
		if g.buf, err = s.NewBuffer(sz); err != nil {
			return
		}
		if g.tex, err = s.NewTexture(sz); err != nil {
			return
		}
	}
	copy(g.buf.RGBA().Pix, g.img.Pix)
	g.tex.Upload(image.Point{}, g.buf, g.buf.Bounds())
	return nil
}

func (g *gui) release() {
	if g.tex != nil {
		g.tex.Release()
	}
	if g.buf != nil {
		g.buf.Release()
	}
}

// vgaPalette holds the 16 VGA text colors.
var vgaPalette = [16]color.RGBA{
	{0x00, 0x00, 0x00, 0xff}, {0x00, 0x00, 0xaa, 0xff}, {0x00, 0xaa, 0x00, 0xff}, {0x00, 0xaa, 0xaa, 0xff},
	{0xaa, 0x00, 0x00, 0xff}, {0xaa, 0x00, 0xaa, 0xff}, {0xaa, 0x55, 0x00, 0xff}, {0xaa, 0xaa, 0xaa, 0xff},
	{0x55, 0x55, 0x55, 0xff}, {0x55, 0x55, 0xff, 0xff}, {0x55, 0xff, 0x55, 0xff}, {0x55, 0xff, 0xff, 0xff},
	{0xff, 0x55, 0x55, 0xff}, {0xff, 0x55, 0xff, 0xff}, {0xff, 0xff, 0x55, 0xff}, {0xff, 0xff, 0xff, 0xff},
}

// renderText draws the text buffer buf into m, one cellW x cellH cell
// per character.
func renderText(m draw.Image, buf *[cursor.DisplaySize]byte) {
	d := font.Drawer{Dst: m, Face: basicfont.Face7x13}
	for row := 0; row < cursor.Rows; row++ {
		for col := 0; col < cursor.Cols; col++ {
			var (
				i    = 2 * (row*cursor.Cols + col)
				ch   = platform.Printable(buf[i])
				attr = buf[i+1]
				cell = image.Rect(col*cellW, row*cellH, (col+1)*cellW, (row+1)*cellH)
			)
			bg := vgaPalette[attr>>4&0x07]
			draw.Draw(m, cell, image.NewUniform(bg), image.Point{}, draw.Src)
			if ch == ' ' {
				continue
			}
			d.Src = image.NewUniform(vgaPalette[attr&0x0f])
			d.Dot = fixed.P(cell.Min.X, cell.Min.Y+basicfont.Face7x13.Ascent)
			d.DrawString(string(rune(ch)))
		}
	}
}

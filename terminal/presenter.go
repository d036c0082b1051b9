package terminal

import (
	"image"

	"github.com/gdamore/tcell/v2"
	xdraw "golang.org/x/image/draw"
)

// upperHalf shows the upper pixel as foreground and the lower as background
const upperHalf = '▀'

// CanvasSize returns the canvas pixel size for a cols x rows viewport
// Each cell holds two stacked pixels, so pixels are square on a typical 1:2 cell.
// scale supersamples the canvas; Present scales it back down.
func CanvasSize(cols, rows, scale int) (int, int) {
	if scale < 1 {
		scale = 1
	}
	if cols <= 0 || rows <= 0 {
		return 0, 0
	}
	return cols * scale, rows * 2 * scale
}

// Presenter maps a canvas onto half-block cells below a reserved HUD area
type Presenter struct {
	screen  tcell.Screen
	hudRows int
	scaled  *image.RGBA
	scaler  xdraw.Scaler
}

// NewPresenter creates a presenter drawing from row hudRows down
func NewPresenter(screen tcell.Screen, hudRows int) *Presenter {
	return &Presenter{
		screen:  screen,
		hudRows: max(hudRows, 0),
		scaler:  xdraw.BiLinear,
	}
}

// SetHUDRows moves the top of the canvas area
func (p *Presenter) SetHUDRows(rows int) {
	p.hudRows = max(rows, 0)
}

// Viewport returns the cell area available to the canvas
func (p *Presenter) Viewport() (cols, rows int) {
	cols, rows = p.screen.Size()
	return cols, max(rows-p.hudRows, 0)
}

// Present draws img into the viewport and flushes the screen
func (p *Presenter) Present(img *image.RGBA) error {
	cols, rows := p.Viewport()
	if cols <= 0 || rows <= 0 || img == nil || img.Bounds().Empty() {
		p.screen.Show()
		return nil
	}

	src := img
	if b := img.Bounds(); b.Dx() != cols || b.Dy() != rows*2 {
		src = p.downscale(img, cols, rows*2)
	}

	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := src.RGBAAt(x, 2*y)
			bot := src.RGBAAt(x, 2*y+1)
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bot.R), int32(bot.G), int32(bot.B)))
			p.screen.SetContent(x, y+p.hudRows, upperHalf, nil, style)
		}
	}
	p.screen.Show()
	return nil
}

// downscale resamples img to w x h, reusing the scratch buffer
func (p *Presenter) downscale(img *image.RGBA, w, h int) *image.RGBA {
	if p.scaled == nil || p.scaled.Bounds().Dx() != w || p.scaled.Bounds().Dy() != h {
		p.scaled = image.NewRGBA(image.Rect(0, 0, w, h))
	}
	p.scaler.Scale(p.scaled, p.scaled.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return p.scaled
}

package term

import (
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"

	"github.com/Garsondee/ricochet-arena/internal/arena"
)

var brown = tcell.NewRGBColor(150, 105, 60)

// cellPresenter renders entities as terminal cells.
type cellPresenter struct {
	screen tcell.Screen
	grid   Grid
	banner arena.Banner
}

func (p *cellPresenter) DrawEntity(pos, half arena.Vec2, sprite arena.SpriteKey) {
	switch sprite {
	case arena.SpriteBullet:
		if c, r, ok := p.grid.Cell(pos); ok {
			p.screen.SetContent(c, r, '•', nil, tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true))
		}
		return
	case arena.SpriteWall:
		p.fill(pos, half, '█', tcell.StyleDefault.Foreground(tcell.ColorGray))
	case arena.SpritePlayer:
		p.fill(pos, half, '▓', tcell.StyleDefault.Foreground(tcell.ColorBlue))
		p.mark(pos, 'P', tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(tcell.ColorBlue))
	case arena.SpriteBrownTank:
		p.fill(pos, half, '▓', tcell.StyleDefault.Foreground(brown))
		p.mark(pos, 'E', tcell.StyleDefault.Foreground(tcell.ColorWhite).Background(brown))
	}
}

func (p *cellPresenter) SetBanner(text string, visible bool) {
	p.banner = arena.Banner{Text: text, Visible: visible}
}

func (p *cellPresenter) fill(pos, half arena.Vec2, ch rune, style tcell.Style) {
	c0, r0, c1, r1, ok := p.grid.Span(pos, half)
	if !ok {
		return
	}
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			p.screen.SetContent(c, r, ch, nil, style)
		}
	}
}

func (p *cellPresenter) mark(pos arena.Vec2, ch rune, style tcell.Style) {
	if c, r, ok := p.grid.Cell(pos); ok {
		p.screen.SetContent(c, r, ch, nil, style)
	}
}

func (p *cellPresenter) drawBanner(text string) {
	msg := "  " + text + "  "
	n := utf8.RuneCountInString(msg)
	x := max((p.grid.Cols-n)/2, 0)
	y := p.grid.Rows / 2
	drawText(p.screen, x, y, msg, tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorGold).Bold(true), p.grid.Cols)
}

package match3

import (
	"fmt"
	"strings"

	platformcore "github.com/vovakirdan/match3/internal/core"
	"github.com/vovakirdan/match3/internal/games/match3/core"
)

// tileColor maps a tile type to a screen color.
func tileColor(t core.TileType) platformcore.Color {
	switch t {
	case core.TileBlue:
		return platformcore.ColorBlue
	case core.TileGreen:
		return platformcore.ColorGreen
	case core.TileRed:
		return platformcore.ColorRed
	case core.TileYellow:
		return platformcore.ColorYellow
	case core.TilePurple:
		return platformcore.ColorMagenta
	case core.TileOrange:
		return platformcore.ColorOrange
	default:
		return platformcore.ColorGray
	}
}

// Render draws the game state to the screen.
func (g *Game) Render(dst *platformcore.Screen) {
	dst.Clear()

	if g.engine == nil {
		return
	}
	if g.tooSmall {
		g.renderTooSmall(dst)
		return
	}

	g.renderHUD(dst)
	frame := g.boardFrame()
	dst.DrawBox(frame, platformcore.ColorGray)
	g.renderTiles(dst)
	g.renderSpawnRow(dst, frame.Bottom())
	dst.DrawStyledText(boardX, frame.Bottom()+1, g.status, platformcore.ColorWhite, 0)

	if g.paused {
		g.renderOverlay(dst, frame, "PAUSED")
	} else if g.stuck {
		g.renderOverlay(dst, frame, "NO MOVES")
	}
}

// boardFrame is the box around the grid, one cell larger on every side.
func (g *Game) boardFrame() platformcore.Rect {
	b := g.engine.Board()
	return platformcore.NewRect(boardX, boardY, b.Cols()*g.cellW+2, b.Rows()*g.cellH+2)
}

func (g *Game) renderTooSmall(dst *platformcore.Screen) {
	y := g.screenH / 2
	dst.DrawTextCentered(y, "Window too small")
	dst.DrawTextCentered(y+1, "Please resize terminal")
}

func (g *Game) renderHUD(dst *platformcore.Screen) {
	title := g.Title()
	if g.layoutID != "" {
		title += " · " + g.layoutID
	}
	dst.DrawStyledText(boardX, 0, title, platformcore.ColorCyan, platformcore.AttrBold)

	state := "ready"
	if !g.engine.AcceptingInput() {
		state = strings.ReplaceAll(g.engine.State().String(), "_", " ")
	}
	info := fmt.Sprintf("%s  tiles %d", state, g.engine.Board().Count())
	dst.DrawStyledText(boardX, 1, info, platformcore.ColorGray, 0)
}

func (g *Game) renderTiles(dst *platformcore.Screen) {
	b := g.engine.Board()
	for r := range b.Rows() {
		for c := range b.Cols() {
			at := core.C(r, c)
			cell := g.tileCell(at)
			x := boardX + 1 + c*g.cellW
			y := boardY + 1 + r*g.cellH
			for dy := range g.cellH {
				for dx := range g.cellW {
					ch := ' '
					if dx == g.cellW/2 && dy == g.cellH/2 {
						ch = cell.Rune
					}
					dst.SetCell(x+dx, y+dy, platformcore.Cell{Rune: ch, Color: cell.Color, Attr: cell.Attr})
				}
			}
			if g.selecting && g.selected == at && g.cellW >= 3 {
				dst.SetCell(x, y+g.cellH/2, platformcore.Cell{Rune: '[', Color: platformcore.ColorWhite})
				dst.SetCell(x+g.cellW-1, y+g.cellH/2, platformcore.Cell{Rune: ']', Color: platformcore.ColorWhite})
			}
		}
	}
}

// tileCell picks the glyph and style of one board cell.
func (g *Game) tileCell(at core.Coord) platformcore.Cell {
	b := g.engine.Board()
	tile, ok := b.Get(at)

	cell := platformcore.Cell{Rune: '·', Color: platformcore.ColorGray, Attr: platformcore.AttrFaint}
	if ok {
		cell = platformcore.Cell{Rune: tile.Type.Char(), Color: tileColor(tile.Type)}
	}

	if fx, active := g.fx.get(at); active {
		switch fx.kind {
		case core.MutationRemove:
			if !ok {
				cell = platformcore.Cell{Rune: '*', Color: tileColor(fx.typ), Attr: platformcore.AttrBold}
			}
		case core.MutationSpawn:
			cell.Attr |= platformcore.AttrFaint
		case core.MutationMove:
			cell.Attr |= platformcore.AttrBold
		case core.MutationShake:
			cell.Attr |= platformcore.AttrBlink
		}
	}

	if g.hint != nil && (g.hint.From == at || g.hint.To == at) {
		cell.Attr |= platformcore.AttrBold | platformcore.AttrBlink
	}
	if g.cursor == at {
		cell.Attr |= platformcore.AttrReverse
	}
	return cell
}

// renderSpawnRow labels each column with its toggle key and spawn switch.
func (g *Game) renderSpawnRow(dst *platformcore.Screen, y int) {
	cols := g.engine.Board().Cols()
	for c := range cols {
		x := boardX + 1 + c*g.cellW + g.cellW/2
		mark := platformcore.Cell{Rune: '▼', Color: platformcore.ColorGreen}
		if !g.engine.Spawnable(c) {
			mark = platformcore.Cell{Rune: '×', Color: platformcore.ColorRed}
		}
		dst.SetCell(x, y, mark)
		if c < 9 && g.cellW >= 3 {
			dst.SetCell(x+1, y, platformcore.Cell{Rune: rune('1' + c), Color: platformcore.ColorGray})
		}
	}
}

func (g *Game) renderOverlay(dst *platformcore.Screen, frame platformcore.Rect, text string) {
	y := frame.Y + frame.H/2
	x := frame.X + (frame.W-len(text))/2
	dst.DrawStyledText(x, y, text, platformcore.ColorWhite, platformcore.AttrBold|platformcore.AttrReverse)
}

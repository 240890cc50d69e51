package main

import (
	"fmt"
	"math"

	"github.com/gdamore/tcell/v2"

	"snakeos/game"
	"snakeos/portfolio"
)

// A terminal cell stands in for a cellW x cellH block of canvas pixels.
// Cells are roughly twice as tall as wide, hence the 1:2 ratio.
const (
	cellW   = 12.0
	cellH   = 24.0
	hudRows = 1
)

var (
	styleBG      = tcell.StyleDefault.Background(tcell.GetColor(game.BGColor))
	styleTheme   = styleBG.Foreground(tcell.GetColor(game.ThemeColor))
	styleGrid    = styleBG.Foreground(tcell.GetColor(game.GridColor))
	styleSpecial = styleBG.Foreground(tcell.GetColor(game.SpecialColor))
	styleFinal   = styleBG.Foreground(tcell.GetColor(game.FinalColor))
	styleDim     = styleBG.Foreground(tcell.ColorGray)
	styleBox     = styleTheme.Reverse(true)
)

// surface is the slice of tcell.Screen the renderer draws on.
type surface interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
	Size() (int, int)
}

// overlay is the UI state that lives outside the session.
type overlay struct {
	popup  *portfolio.Section
	footer string
	form   *hireForm
	qr     []string
	pilot  bool
}

// canvasSize converts a terminal size to the canvas the session plays on.
func canvasSize(cols, rows int) (float64, float64) {
	rows -= hudRows
	if cols < 1 || rows < 1 {
		return 0, 0
	}
	return float64(cols) * cellW, float64(rows) * cellH
}

// toCell maps a canvas point to a terminal cell.
func toCell(p game.Point) (int, int) {
	return int(math.Floor(p.X / cellW)), int(math.Floor(p.Y/cellH)) + hudRows
}

func fadeStyle(alpha float64) tcell.Style {
	g := int32(255 * math.Max(0, math.Min(1, alpha)))
	return styleBG.Foreground(tcell.NewRGBColor(0, g, 0))
}

// drawFrame paints one frame and whatever overlay its state calls for.
func drawFrame(s surface, f game.Frame, ov overlay) {
	cols, rows := s.Size()
	fill(s, 0, 0, cols, rows, ' ', styleBG)

	put := func(p game.Point, r rune, st tcell.Style) {
		x, y := toCell(p)
		if x >= 0 && x < cols && y >= hudRows && y < rows {
			s.SetContent(x, y, r, nil, st)
		}
	}

	if f.Grid.Spacing > 0 {
		for gx := 0.0; gx < f.Bounds.W; gx += f.Grid.Spacing {
			for gy := 0.0; gy < f.Bounds.H; gy += f.Grid.Spacing {
				put(game.Point{X: gx, Y: gy}, '·', styleGrid)
			}
		}
	}

	for _, p := range f.Particles {
		put(p.Position, '*', fadeStyle(p.Alpha))
	}

	for _, o := range f.Foods {
		switch {
		case o.Final:
			st := styleSpecial
			if o.Color == game.FinalColor {
				st = styleFinal
			}
			put(o.Position, '◆', st)
			x, y := toCell(o.Position)
			text(s, x-len(o.Label)/2, y-1, o.Label, styleFinal)
		case o.Type == game.Special:
			put(o.Position, '◆', styleSpecial)
		default:
			put(o.Position, '•', styleTheme)
		}
	}

	for i := len(f.Body) - 1; i >= 0; i-- {
		r := '▒'
		if i == 0 {
			r = '█'
		}
		put(f.Body[i].Position, r, styleTheme)
	}

	drawHUD(s, f.Status, ov.pilot)

	switch f.Status.State {
	case game.Menu:
		drawMenu(s)
	case game.Popup:
		if ov.popup != nil {
			drawPopup(s, *ov.popup, ov.footer)
		}
	case game.GameOver:
		drawGameOver(s, f.Status, ov.form, ov.qr)
	}
}

func drawHUD(s surface, st game.Status, pilot bool) {
	cols, _ := s.Size()
	fill(s, 0, 0, cols, hudRows, ' ', styleBG)
	text(s, 1, 0, fmt.Sprintf("SCORE: %06d", st.Score), styleTheme)
	sections := fmt.Sprintf("SECTIONS: %d/%d", st.Section, st.Sections)
	text(s, cols-len(sections)-1, 0, sections, styleTheme)

	if st.State == game.Playing {
		hint := "ARROWS/WASD STEER  Q QUIT"
		if pilot {
			hint = "AUTOPILOT  Q QUIT"
		}
		text(s, (cols-len(hint))/2, 0, hint, styleDim)
	}
}

func drawMenu(s surface) {
	box(s, []string{
		"SNAKE_OS",
		"",
		portfolio.Owner,
		"EAT TO GROW. EVERY 5TH BITE DROPS A DATA ORB.",
		"COLLECT ORBS TO UNLOCK THE PORTFOLIO.",
		"",
		"PRESS ENTER TO START",
	})
}

func drawPopup(s surface, sec portfolio.Section, footer string) {
	lines := []string{sec.Title, ""}
	lines = append(lines, sec.Lines...)
	for _, l := range sec.Links {
		entry := "> " + l.Label
		if l.URL != "" {
			entry += "  " + l.URL
		}
		if l.Note != "" {
			entry += "  " + l.Note
		}
		lines = append(lines, entry)
	}
	lines = append(lines, "", footer, "[C] CLOSE")
	box(s, lines)
}

func drawGameOver(s surface, st game.Status, form *hireForm, qr []string) {
	lines := []string{
		"GAME OVER",
		fmt.Sprintf("FINAL SCORE: %06d", st.Score),
		"",
		"LIKE WHAT YOU SAW? HIRE ME.",
	}
	if form != nil {
		for i, label := range fieldLabels {
			cursor := " "
			if i == form.focus && !form.locked() {
				cursor = ">"
			}
			lines = append(lines, fmt.Sprintf("%s %-7s [%s]", cursor, label, form.fields[i]))
		}
		switch {
		case form.err != "":
			lines = append(lines, "", form.err)
		case form.status != "":
			lines = append(lines, "", form.status)
		default:
			lines = append(lines, "")
		}
	}
	lines = append(lines, "", "TAB NEXT FIELD  ENTER SEND  CTRL+R PLAY AGAIN")

	// The QR code sits beside the form when the terminal is wide enough.
	cols, _ := s.Size()
	if len(qr) > 0 {
		textW := widest(lines)
		qrW := max(len([]rune(qr[0])), len(portfolio.ContactURL))
		if textW+qrW+8 < cols {
			x0, y0 := boxSized(s, lines, textW+4+qrW, len(qr)+1)
			x := x0 + textW + 4
			for i, l := range qr {
				text(s, x, y0+i, l, styleBG.Foreground(tcell.ColorWhite))
			}
			text(s, x, y0+len(qr), portfolio.ContactURL, styleDim)
			return
		}
	}
	box(s, lines)
}

// box draws lines centered in a bordered panel and returns the top-left of its content.
func box(s surface, lines []string) (int, int) {
	return boxSized(s, lines, 0, 0)
}

// boxSized is box with a minimum content area of minW x minH cells.
func boxSized(s surface, lines []string, minW, minH int) (int, int) {
	cols, rows := s.Size()
	w := max(widest(lines), minW) + 4
	h := max(len(lines), minH) + 2
	if w > cols {
		w = cols
	}
	x0 := (cols - w) / 2
	y0 := (rows - h) / 2
	if y0 < hudRows {
		y0 = hudRows
	}

	fill(s, x0, y0, w, h, ' ', styleBG)
	for x := x0; x < x0+w; x++ {
		s.SetContent(x, y0, '─', nil, styleTheme)
		s.SetContent(x, y0+h-1, '─', nil, styleTheme)
	}
	for y := y0; y < y0+h; y++ {
		s.SetContent(x0, y, '│', nil, styleTheme)
		s.SetContent(x0+w-1, y, '│', nil, styleTheme)
	}
	s.SetContent(x0, y0, '┌', nil, styleTheme)
	s.SetContent(x0+w-1, y0, '┐', nil, styleTheme)
	s.SetContent(x0, y0+h-1, '└', nil, styleTheme)
	s.SetContent(x0+w-1, y0+h-1, '┘', nil, styleTheme)

	for i, l := range lines {
		st := styleTheme
		if i == 0 {
			st = styleBox
		}
		text(s, x0+2, y0+1+i, l, st)
	}
	return x0 + 2, y0 + 1
}

func text(s surface, x, y int, str string, st tcell.Style) {
	cols, rows := s.Size()
	if y < 0 || y >= rows {
		return
	}
	for _, r := range str {
		if x >= cols {
			return
		}
		if x >= 0 {
			s.SetContent(x, y, r, nil, st)
		}
		x++
	}
}

func fill(s surface, x0, y0, w, h int, r rune, st tcell.Style) {
	for y := y0; y < y0+h; y++ {
		for x := x0; x < x0+w; x++ {
			s.SetContent(x, y, r, nil, st)
		}
	}
}

func widest(lines []string) int {
	n := 0
	for _, l := range lines {
		if w := len([]rune(l)); w > n {
			n = w
		}
	}
	return n
}

package gallery

import (
	"fmt"
	"image/color"
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/phanxgames/balloons"
)

const (
	spriteSize   = 64 // balloon body diameter in pixels
	stringLength = 24

	// debugCharW and debugCharH are the debug font's cell size.
	debugCharW = 6
	debugCharH = 16

	labelRunes = 18
	panelWidth = 44 // runes per panel line
)

var (
	skyColor   = color.RGBA{0xbf, 0xe3, 0xf5, 0xff}
	panelColor = color.RGBA{0x10, 0x10, 0x20, 0xc0}
	stringTint = color.RGBA{0x55, 0x55, 0x55, 0xff}
)

// newBalloonSprite renders a balloon body with its string in the given hex
// color. It is the loader behind the per-color sprite cache.
func newBalloonSprite(hex string) (*ebiten.Image, error) {
	c, err := balloons.ParseColor(hex)
	if err != nil {
		c = balloons.ColorWhite
	}
	img := ebiten.NewImage(spriteSize, spriteSize+stringLength)
	r := float32(spriteSize) / 2
	vector.DrawFilledCircle(img, r, r, r-1, c.NRGBA(), true)
	vector.StrokeLine(img, r, spriteSize-2, r, spriteSize+stringLength, 1, stringTint, true)
	// Highlight.
	vector.DrawFilledCircle(img, r*0.65, r*0.6, r*0.18, color.RGBA{0xff, 0xff, 0xff, 0x60}, true)
	return img, nil
}

// drawBalloons paints the projected discs back to front with short labels.
func (g *Game) drawBalloons(screen *ebiten.Image) {
	for _, d := range g.discs {
		item := g.field.Item(d.index)
		sprite, err := g.sprites.Get(item.Color)
		if err != nil {
			continue
		}

		s := 2 * d.radius / spriteSize
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(-spriteSize/2, -spriteSize/2)
		op.GeoM.Scale(s, s)
		op.GeoM.Translate(d.x, d.y)
		op.Filter = ebiten.FilterLinear
		if item.ID == g.selectedID {
			op.ColorScale.Scale(1.15, 1.15, 1.15, 1)
		}
		screen.DrawImage(sprite, op)

		// Labels only on balloons large enough to read.
		if d.radius >= 18 {
			label := truncate(item.Message, labelRunes)
			x := int(d.x) - utf8.RuneCountInString(label)*debugCharW/2
			ebitenutil.DebugPrintAt(screen, label, x, int(d.y)-debugCharH/2)
		}
	}
}

// drawPanel shows the selected message with its date.
func (g *Game) drawPanel(screen *ebiten.Image) {
	item, ok := g.Selected()
	if !ok {
		return
	}
	lines := wrapText(item.Message, panelWidth)
	if date := item.Date(); date != "" {
		lines = append(lines, "", date)
	}

	w := float32(panelWidth*debugCharW + 16)
	h := float32(len(lines)*debugCharH + 12)
	x := float32(g.width) - w - 12
	y := float32(12)
	vector.DrawFilledRect(screen, x, y, w, h, panelColor, false)
	ebitenutil.DebugPrintAt(screen, strings.Join(lines, "\n"), int(x)+8, int(y)+6)
}

// drawStatus reports loading state and errors along the bottom edge.
func (g *Game) drawStatus(screen *ebiten.Image) {
	var msg string
	switch {
	case g.loading:
		msg = "loading balloons..."
	case g.loadErr != nil:
		msg = "could not load balloons (R to retry): " + truncate(g.loadErr.Error(), 60)
	case g.field.Len() == 0:
		msg = "no balloons yet"
	default:
		return
	}
	ebitenutil.DebugPrintAt(screen, msg, 8, g.height-debugCharH-4)
}

// fpsCounter refreshes its readout about twice a second.
type fpsCounter struct {
	elapsed float64
	text    string
}

func (f *fpsCounter) update(dt float64) {
	f.elapsed += dt
	if f.elapsed < 0.5 && f.text != "" {
		return
	}
	f.elapsed = 0
	f.text = fmt.Sprintf("FPS: %.1f\nTPS: %.1f", ebiten.ActualFPS(), ebiten.ActualTPS())
}

func (f *fpsCounter) draw(screen *ebiten.Image) {
	vector.DrawFilledRect(screen, 0, 0, 100, 32, color.RGBA{0, 0, 0, 128}, false)
	ebitenutil.DebugPrintAt(screen, f.text, 2, 0)
}

// truncate shortens s to at most n runes, ending with "..." when cut.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	if n <= 3 {
		return string([]rune(s)[:n])
	}
	return string([]rune(s)[:n-3]) + "..."
}

// wrapText breaks s into lines of at most width runes, splitting on spaces
// where it can.
func wrapText(s string, width int) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		var line []rune
		for _, word := range strings.Fields(para) {
			w := []rune(word)
			for len(w) > width {
				if len(line) > 0 {
					lines = append(lines, string(line))
					line = line[:0]
				}
				lines = append(lines, string(w[:width]))
				w = w[width:]
			}
			switch {
			case len(line) == 0:
				line = append(line, w...)
			case len(line)+1+len(w) <= width:
				line = append(append(line, ' '), w...)
			default:
				lines = append(lines, string(line))
				line = append(line[:0], w...)
			}
		}
		lines = append(lines, string(line))
	}
	return lines
}

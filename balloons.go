package balloons

import (
	"image/color"
	"sort"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default balloon tint.
var ColorWhite = Color{1, 1, 1, 1}

// ParseColor parses a "#RRGGBB" or "#RGB" hex string into an opaque Color.
func ParseColor(hex string) (Color, error) {
	c, err := colorful.Hex(hex)
	if err != nil {
		return Color{}, err
	}
	return Color{R: c.R, G: c.G, B: c.B, A: 1}, nil
}

// NRGBA converts the color to a non-premultiplied 8-bit color.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: uint8(clamp01(c.R)*255 + 0.5),
		G: uint8(clamp01(c.G)*255 + 0.5),
		B: uint8(clamp01(c.B)*255 + 0.5),
		A: uint8(clamp01(c.A)*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Item is one stored message and the styling its balloon is drawn with.
// Items are owned by the store; the engine never mutates them.
type Item struct {
	ID         string    `json:"id" db:"id"`
	Color      string    `json:"color" db:"color"`
	Message    string    `json:"message" db:"message"`
	TextSize   float64   `json:"text_size" db:"text_size"`
	FontWeight string    `json:"font_weight" db:"font_weight"`
	TextColor  string    `json:"text_color" db:"text_color"`
	FontStyle  string    `json:"font_style" db:"font_style"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// Date formats the creation time as YYYY.MM.DD.
func (it Item) Date() string {
	if it.CreatedAt.IsZero() {
		return ""
	}
	return it.CreatedAt.Format("2006.01.02")
}

// Tint returns the balloon color, or ColorWhite if Color does not parse.
func (it Item) Tint() Color {
	c, err := ParseColor(it.Color)
	if err != nil {
		return ColorWhite
	}
	return c
}

// SortByRecency sorts items newest first. Items with equal timestamps keep
// their relative order.
func SortByRecency(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}

// SelectionEvent is published when a balloon is picked in the gallery.
type SelectionEvent struct {
	ID       string
	Index    int
	Message  string
	Position [3]float64
}

// EventSink receives gallery selection events. When set on a gallery, every
// selection is forwarded to it.
type EventSink interface {
	EmitSelection(event SelectionEvent)
}

package balloons

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/multierr"
)

const (
	// MaxMessageLength is the longest message a balloon carries, in runes.
	MaxMessageLength = 108

	DefaultColor     = "#FF0000"
	DefaultTextColor = "#000000"
	DefaultTextSize  = 0.25
)

// TextSizes are the text sizes a composer offers.
var TextSizes = []float64{0.1, 0.2, 0.25, 0.4, 0.5}

// TextColors is the text color palette a composer offers.
var TextColors = []string{
	"#FF0000", "#FF7F00", "#FFFF00", "#00FF00", "#0000FF",
	"#4B0082", "#9400D3", "#FFFFFF", "#000000",
}

// ErrInvalidDraft matches every error returned by Draft.Validate.
var ErrInvalidDraft = errors.New("invalid draft")

// DraftError collects every problem found in a draft.
type DraftError struct {
	Err error
}

func (e *DraftError) Error() string {
	return "invalid draft: " + e.Err.Error()
}

// Unwrap returns the combined problems.
func (e *DraftError) Unwrap() error { return e.Err }

// Is matches ErrInvalidDraft.
func (e *DraftError) Is(target error) bool { return target == ErrInvalidDraft }

// Problems returns each problem as a separate error.
func (e *DraftError) Problems() []error { return multierr.Errors(e.Err) }

// Draft is a message being composed, before it is sent to a store.
type Draft struct {
	Message    string
	Color      string
	TextSize   float64
	TextColor  string
	FontWeight string
	FontStyle  string
}

// NewDraft returns an empty draft with the composer's default styling.
func NewDraft(message string) Draft {
	return Draft{
		Message:   message,
		Color:     DefaultColor,
		TextSize:  DefaultTextSize,
		TextColor: DefaultTextColor,
	}
}

// Validate checks the draft and reports all problems at once as a
// *DraftError.
func (d Draft) Validate() error {
	var err error
	if strings.TrimSpace(d.Message) == "" {
		err = multierr.Append(err, errors.New("message is empty"))
	}
	if n := utf8.RuneCountInString(d.Message); n > MaxMessageLength {
		err = multierr.Append(err, fmt.Errorf("message is %d characters, limit is %d", n, MaxMessageLength))
	}
	if !slices.Contains(TextSizes, d.TextSize) {
		err = multierr.Append(err, fmt.Errorf("text size %v is not one of %v", d.TextSize, TextSizes))
	}
	if _, perr := ParseColor(d.Color); perr != nil {
		err = multierr.Append(err, fmt.Errorf("color %q: %w", d.Color, perr))
	}
	if _, perr := ParseColor(d.TextColor); perr != nil {
		err = multierr.Append(err, fmt.Errorf("text color %q: %w", d.TextColor, perr))
	}
	if err != nil {
		return &DraftError{Err: err}
	}
	return nil
}

// Item converts the draft to an Item without ID or timestamp; stores fill
// those in.
func (d Draft) Item() Item {
	return Item{
		Color:      d.Color,
		Message:    d.Message,
		TextSize:   d.TextSize,
		FontWeight: d.FontWeight,
		TextColor:  d.TextColor,
		FontStyle:  d.FontStyle,
	}
}

// SetHue sets the balloon color's hue (degrees) and saturation ([0, 1]),
// keeping its brightness, as a color wheel does.
func (d *Draft) SetHue(hue, saturation float64) error {
	c, err := colorful.Hex(d.Color)
	if err != nil {
		return err
	}
	_, _, v := c.Hsv()
	d.Color = strings.ToUpper(colorful.Hsv(hue, clamp01(saturation), v).Clamped().Hex())
	return nil
}

// SetShade sets the balloon color's brightness ([0, 1]), keeping hue and
// saturation, as a shade slider does.
func (d *Draft) SetShade(value float64) error {
	c, err := colorful.Hex(d.Color)
	if err != nil {
		return err
	}
	h, s, _ := c.Hsv()
	d.Color = strings.ToUpper(colorful.Hsv(h, s, clamp01(value)).Clamped().Hex())
	return nil
}

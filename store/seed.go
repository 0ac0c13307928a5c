package store

import (
	"context"
	"math/rand/v2"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/pkg/errors"

	"github.com/phanxgames/balloons"
)

var seedWords = []string{
	"hello", "from", "up", "here", "miss", "you", "happy", "birthday",
	"see", "the", "sky", "tonight", "float", "away", "wish", "me", "luck",
	"balloon", "love", "always", "goodbye", "summer", "friend",
}

// RandomDraft returns a valid draft with a random message and styling.
func RandomDraft(r *rand.Rand) balloons.Draft {
	n := 2 + r.IntN(10)
	words := make([]string, n)
	for i := range words {
		words[i] = seedWords[r.IntN(len(seedWords))]
	}
	d := balloons.NewDraft(strings.Join(words, " "))
	d.Color = strings.ToUpper(colorful.Hsv(r.Float64()*360, 0.5+r.Float64()*0.5, 0.7+r.Float64()*0.3).Clamped().Hex())
	d.TextColor = balloons.TextColors[r.IntN(len(balloons.TextColors))]
	d.TextSize = balloons.TextSizes[r.IntN(len(balloons.TextSizes))]
	return d
}

// Seed adds n random drafts to s.
func Seed(ctx context.Context, s Store, n int, r *rand.Rand) error {
	for i := 0; i < n; i++ {
		if _, err := s.Add(ctx, RandomDraft(r)); err != nil {
			return errors.Wrapf(err, "seeding message %d", i)
		}
	}
	return nil
}

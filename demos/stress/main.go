// Stress fills the gallery with hundreds of balloons to exercise placement
// and visibility ranking. Debug mode logs per-frame timings.
//
//	go run ./demos/stress -n 2000 -strategy nearest
//
// Targets are placed on the first frame after the fetch. Placement checks
// every candidate against all accepted points, so with a few thousand
// balloons that frame takes seconds.
package main

import (
	"context"
	"flag"
	"log"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/phanxgames/balloons"
	"github.com/phanxgames/balloons/gallery"
	"github.com/phanxgames/balloons/store"
)

const (
	defaultCount = 500
	defaultScope = 12.0
)

func main() {
	n := flag.Int("n", defaultCount, "number of balloons (thousands stall the first frame)")
	strategy := flag.String("strategy", "window", "visibility strategy: window or nearest")
	visible := flag.Int("visible", 60, "balloons drawn per frame")
	scope := flag.Float64("scope", defaultScope, "half-extent of the placement cube")
	debug := flag.Bool("debug", false, "log per-frame stats")
	flag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	strat, ok := balloons.StrategyByName(*strategy)
	if !ok {
		log.Fatalf("unknown strategy %q", *strategy)
	}

	mem := store.NewMemory(nil)
	if err := store.Seed(context.Background(), mem, *n, rand.New(rand.NewPCG(1, 1))); err != nil {
		log.Fatal(err)
	}

	g := gallery.New(gallery.Options{
		Store: mem,
		Page:  store.Page{Limit: *n},
		Field: balloons.FieldConfig{
			Scope:        *scope,
			MinDistance:  balloons.DefaultMinDistance,
			VisibleCount: *visible,
			Strategy:     strat,
		},
		Logger:  logger,
		Debug:   *debug,
		ShowFPS: true,
	})
	g.Camera().Distance = *scope * 2
	g.Camera().MaxDistance = *scope * 4

	if err := gallery.Run(g, gallery.RunConfig{Title: "Balloons: Stress Demo"}); err != nil {
		log.Fatal(err)
	}
}

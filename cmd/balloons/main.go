// Package main is the balloons command line tool: send and list messages,
// inspect layouts and open the gallery window.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"strings"

	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/samber/lo"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/phanxgames/balloons"
	"github.com/phanxgames/balloons/config"
	"github.com/phanxgames/balloons/gallery"
	"github.com/phanxgames/balloons/store"
)

const (
	flagEnv   = "env"
	flagDebug = "debug"

	flagColor      = "color"
	flagTextColor  = "text-color"
	flagTextSize   = "text-size"
	flagFontWeight = "font-weight"
	flagFontStyle  = "font-style"
	flagShade      = "shade"

	flagLimit  = "limit"
	flagOffset = "offset"
	flagJSON   = "json"

	flagCount       = "count"
	flagScope       = "scope"
	flagMinDistance = "min-distance"
	flagSeed        = "seed"

	flagScript      = "script"
	flagExit        = "exit-after-script"
	flagFPS         = "fps"
	flagWidth       = "width"
	flagHeight      = "height"
	flagScreenshots = "screenshots"
	flagDemo        = "demo"
)

// opener builds the configured store. Tests replace it.
type opener func(ctx context.Context, cfg *config.Config, logger *zap.Logger) (store.Store, func() error, error)

type runner struct {
	out    io.Writer
	open   opener
	cfg    *config.Config
	logger *zap.Logger
}

func main() {
	if err := newApp(os.Stdout, os.Stderr, store.Open).Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, "balloons:", err)
		os.Exit(1)
	}
}

func newApp(out, errOut io.Writer, open opener) *cli.App {
	r := &runner{out: out, open: open, logger: zap.NewNop()}
	return &cli.App{
		Name:            "balloons",
		Usage:           "send messages on balloons and watch them float",
		HideHelpCommand: true,
		Writer:          out,
		ErrWriter:       errOut,
		Flags: []cli.Flag{
			&cli.PathFlag{
				Name:  flagEnv,
				Value: ".env",
				Usage: "load environment from `FILE` if it exists",
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Commands: []*cli.Command{
			{
				Name:      "send",
				Usage:     "validate a message and add it to the store",
				ArgsUsage: "<message>",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: flagColor, Value: balloons.DefaultColor, Usage: "balloon color as #RRGGBB"},
					&cli.Float64Flag{Name: flagShade, Value: -1, Usage: "set the balloon color brightness in [0, 1]"},
					&cli.StringFlag{Name: flagTextColor, Value: balloons.DefaultTextColor, Usage: "text color as #RRGGBB"},
					&cli.Float64Flag{Name: flagTextSize, Value: balloons.DefaultTextSize, Usage: "text size, one of " + sizesUsage()},
					&cli.StringFlag{Name: flagFontWeight, Usage: "font weight, for example bold"},
					&cli.StringFlag{Name: flagFontStyle, Usage: "font style, for example italic"},
				},
				Before: r.load,
				Action: r.send,
			},
			{
				Name:  "list",
				Usage: "print stored messages, newest first",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: flagLimit, Usage: "page size (default from config)"},
					&cli.IntFlag{Name: flagOffset, Usage: "messages to skip"},
					&cli.BoolFlag{Name: flagJSON, Usage: "print JSON"},
				},
				Before: r.load,
				Action: r.list,
			},
			{
				Name:  "layout",
				Usage: "print generated balloon positions",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: flagCount, Value: 20, Usage: "number of positions"},
					&cli.Float64Flag{Name: flagScope, Value: balloons.DefaultScope, Usage: "half-extent of the placement cube"},
					&cli.Float64Flag{Name: flagMinDistance, Value: balloons.DefaultMinDistance, Usage: "minimum separation"},
					&cli.Uint64Flag{Name: flagSeed, Usage: "random seed (0 picks one)"},
					&cli.BoolFlag{Name: flagJSON, Usage: "print JSON"},
				},
				Action: r.layout,
			},
			{
				Name:  "gallery",
				Usage: "open the gallery window",
				Flags: []cli.Flag{
					&cli.PathFlag{Name: flagScript, Usage: "replay input from a JSON `FILE`"},
					&cli.BoolFlag{Name: flagExit, Usage: "quit when the script finishes"},
					&cli.BoolFlag{Name: flagFPS, Usage: "show FPS"},
					&cli.IntFlag{Name: flagWidth, Value: 960, Usage: "window width"},
					&cli.IntFlag{Name: flagHeight, Value: 640, Usage: "window height"},
					&cli.PathFlag{Name: flagScreenshots, Value: "screenshots", Usage: "screenshot `DIR`"},
					&cli.IntFlag{Name: flagDemo, Usage: "show `N` random balloons from an in-memory store"},
				},
				Before: r.load,
				Action: r.gallery,
			},
		},
	}
}

func sizesUsage() string {
	return strings.Join(lo.Map(balloons.TextSizes, func(s float64, _ int) string {
		return fmt.Sprint(s)
	}), ", ")
}

// load reads configuration and builds the logger.
func (r *runner) load(c *cli.Context) error {
	cfg, err := config.Decode(c.Path(flagEnv))
	if err != nil {
		return err
	}
	if c.Command.Name == "gallery" && c.Int(flagDemo) > 0 {
		// Demo mode needs no credentials.
		cfg.Store = config.StoreMemory
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if c.Bool(flagDebug) {
		cfg.Debug = true
	}
	r.cfg = cfg
	if cfg.Debug {
		if r.logger, err = cfg.Logger(); err != nil {
			return errors.Wrap(err, "creating logger")
		}
	}
	return nil
}

func (r *runner) openStore(ctx context.Context) (store.Store, func() error, error) {
	return r.open(ctx, r.cfg, r.logger)
}

func (r *runner) send(c *cli.Context) error {
	if c.NArg() == 0 {
		return errors.New("send: a message is required")
	}
	d := balloons.NewDraft(strings.Join(c.Args().Slice(), " "))
	d.Color = strings.ToUpper(c.String(flagColor))
	d.TextColor = strings.ToUpper(c.String(flagTextColor))
	d.TextSize = c.Float64(flagTextSize)
	d.FontWeight = c.String(flagFontWeight)
	d.FontStyle = c.String(flagFontStyle)
	if shade := c.Float64(flagShade); shade >= 0 {
		if err := d.SetShade(shade); err != nil {
			return errors.Wrap(err, "send: shade")
		}
	}

	if err := d.Validate(); err != nil {
		var de *balloons.DraftError
		if errors.As(err, &de) {
			for _, p := range de.Problems() {
				fmt.Fprintln(c.App.ErrWriter, "  -", p)
			}
		}
		return err
	}

	s, closeFn, err := r.openStore(c.Context)
	if err != nil {
		return err
	}
	defer closeFn()

	item, err := s.Add(c.Context, d)
	if err != nil {
		return err
	}
	fmt.Fprintf(r.out, "sent %s (%s)\n", item.ID, item.Date())
	return nil
}

func (r *runner) list(c *cli.Context) error {
	s, closeFn, err := r.openStore(c.Context)
	if err != nil {
		return err
	}
	defer closeFn()

	page := store.Page{Limit: r.cfg.PageSize, Offset: c.Int(flagOffset)}
	if c.IsSet(flagLimit) {
		page.Limit = c.Int(flagLimit)
	}
	items, err := s.List(c.Context, page)
	if err != nil {
		return err
	}

	if c.Bool(flagJSON) {
		enc := json.NewEncoder(r.out)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}
	for _, it := range items {
		fmt.Fprintf(r.out, "%s  %s  %s  %s\n", it.Date(), it.Color, it.ID, it.Message)
	}
	return nil
}

type layoutPoint struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

func (r *runner) layout(c *cli.Context) error {
	count := c.Int(flagCount)
	if count < 0 {
		return errors.Errorf("layout: count %d is negative", count)
	}
	l := balloons.Layout{
		Scope:       c.Float64(flagScope),
		MinDistance: c.Float64(flagMinDistance),
	}
	if seed := c.Uint64(flagSeed); seed != 0 {
		l.Rand = rand.New(rand.NewPCG(seed, seed))
	}
	placement := l.Generate(count)

	if c.Bool(flagJSON) {
		return json.NewEncoder(r.out).Encode(struct {
			Points   []layoutPoint `json:"points"`
			Fallback int           `json:"fallback"`
		}{
			Points: lo.Map(placement.Points, func(p r3.Vector, _ int) layoutPoint {
				return layoutPoint{X: p.X, Y: p.Y, Z: p.Z}
			}),
			Fallback: placement.Fallback,
		})
	}
	for _, p := range placement.Points {
		fmt.Fprintf(r.out, "%8.4f %8.4f %8.4f\n", p.X, p.Y, p.Z)
	}
	if placement.Fallback > 0 {
		fmt.Fprintf(c.App.ErrWriter, "%d of %d positions placed on the fallback grid\n", placement.Fallback, count)
	}
	return nil
}

func (r *runner) gallery(c *cli.Context) error {
	s, closeFn, err := r.openStore(c.Context)
	if err != nil {
		return err
	}
	defer closeFn()

	if n := c.Int(flagDemo); n > 0 {
		if err := store.Seed(c.Context, unlimited(s), n, rand.New(rand.NewPCG(1, uint64(n)))); err != nil {
			return err
		}
	}

	fieldCfg, err := r.cfg.Field.FieldConfig(r.logger)
	if err != nil {
		return err
	}
	opts := gallery.Options{
		Store:           s,
		Page:            store.Page{Limit: r.cfg.PageSize},
		Field:           fieldCfg,
		Logger:          r.logger,
		ShowFPS:         c.Bool(flagFPS),
		Debug:           r.cfg.Debug,
		ScreenshotDir:   c.Path(flagScreenshots),
		ExitAfterScript: c.Bool(flagExit),
		Width:           c.Int(flagWidth),
		Height:          c.Int(flagHeight),
	}
	if path := c.Path(flagScript); path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrap(err, "reading script")
		}
		if opts.Script, err = gallery.LoadScript(data); err != nil {
			return err
		}
	}

	return gallery.Run(gallery.New(opts), gallery.RunConfig{
		Title:  "Balloons",
		Width:  opts.Width,
		Height: opts.Height,
	})
}

// unlimited strips a rate limit so demo seeding is not throttled.
func unlimited(s store.Store) store.Store {
	if l, ok := s.(*store.Limited); ok {
		return l.Store
	}
	return s
}

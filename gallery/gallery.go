// Package gallery renders a Field of balloon messages with Ebitengine.
//
// A Game fetches one page of messages from a store, lays them out with a
// balloons.Field and draws the visible subset as projected balloons. Drag
// orbits the camera, the wheel zooms and clicking a balloon focuses the
// camera on it and opens its message.
package gallery

import (
	"context"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween/ease"
	"go.uber.org/zap"

	"github.com/phanxgames/balloons"
	"github.com/phanxgames/balloons/store"
)

const (
	defaultWidth  = 960
	defaultHeight = 640

	fetchTimeout  = 15 * time.Second
	focusDuration = 0.8
)

// Options configures a Game.
type Options struct {
	// Store supplies messages. Nil leaves the gallery empty until SetItems
	// is called.
	Store store.Store
	Page  store.Page
	Field balloons.FieldConfig

	// Sink receives a SelectionEvent for every picked balloon.
	Sink   balloons.EventSink
	Logger *zap.Logger

	// Script replays scripted input; the game exits when it finishes if
	// ExitAfterScript is set.
	Script          *Script
	ExitAfterScript bool

	// ScreenshotDir defaults to "screenshots".
	ScreenshotDir string
	ShowFPS       bool
	Debug         bool

	// Width and Height are the initial logical screen size.
	Width, Height int
}

type fetchResult struct {
	items []balloons.Item
	err   error
}

// Game is an ebiten.Game showing a balloon gallery.
type Game struct {
	opts   Options
	logger *zap.Logger
	field  *balloons.Field
	camera *balloons.Camera

	width, height int

	started bool
	loading bool
	loadErr error
	fetched chan fetchResult

	pointer pointerState
	inject  []pointerSample

	discs      []disc
	selectedID string

	sprites     *balloons.Cache[string, *ebiten.Image]
	fps         fpsCounter
	screenshots []string
}

// New creates a Game. It does not touch the store until the first Update.
func New(opts Options) *Game {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.ScreenshotDir == "" {
		opts.ScreenshotDir = "screenshots"
	}
	if opts.Width <= 0 || opts.Height <= 0 {
		opts.Width, opts.Height = defaultWidth, defaultHeight
	}
	logger := opts.Logger.Named("gallery")
	fieldCfg := opts.Field
	if fieldCfg.Logger == nil {
		fieldCfg.Logger = logger
	}

	field := balloons.NewField(fieldCfg)
	field.SetDebugMode(opts.Debug)

	return &Game{
		opts:    opts,
		logger:  logger,
		field:   field,
		camera:  balloons.NewCamera(),
		width:   opts.Width,
		height:  opts.Height,
		fetched: make(chan fetchResult, 1),
		sprites: balloons.NewCache(newBalloonSprite),
	}
}

// Field returns the layout driving the gallery.
func (g *Game) Field() *balloons.Field { return g.field }

// Camera returns the gallery camera.
func (g *Game) Camera() *balloons.Camera { return g.camera }

// SetItems replaces the gallery contents. Items are shown newest first.
func (g *Game) SetItems(items []balloons.Item) {
	sorted := make([]balloons.Item, len(items))
	copy(sorted, items)
	balloons.SortByRecency(sorted)
	g.field.SetItems(sorted)

	if g.selectedID != "" && g.indexOf(g.selectedID) < 0 {
		g.selectedID = ""
	}
	g.logger.Info("gallery loaded", zap.Int("count", len(sorted)))
}

// Refresh fetches the page again in the background. It does nothing while
// a fetch is in flight or when there is no store.
func (g *Game) Refresh() {
	if g.loading || g.opts.Store == nil {
		return
	}
	g.loading = true
	g.loadErr = nil

	st, page := g.opts.Store, g.opts.Page
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		items, err := st.List(ctx, page)
		g.fetched <- fetchResult{items: items, err: err}
	}()
}

// receive applies a finished fetch, if any.
func (g *Game) receive() {
	select {
	case res := <-g.fetched:
		g.loading = false
		if res.err != nil {
			g.loadErr = res.err
			g.logger.Error("fetching messages failed", zap.Error(res.err))
			return
		}
		g.SetItems(res.items)
	default:
	}
}

// Loading reports whether a fetch is in flight.
func (g *Game) Loading() bool { return g.loading }

// Err returns the last fetch error.
func (g *Game) Err() error { return g.loadErr }

// Selected returns the selected item, if any.
func (g *Game) Selected() (balloons.Item, bool) {
	i := g.indexOf(g.selectedID)
	if i < 0 {
		return balloons.Item{}, false
	}
	return g.field.Item(i), true
}

func (g *Game) indexOf(id string) int {
	if id == "" {
		return -1
	}
	for i, it := range g.field.Items() {
		if it.ID == id {
			return i
		}
	}
	return -1
}

// Screenshot queues a labeled screenshot, written at the end of the next
// Draw.
func (g *Game) Screenshot(label string) {
	g.screenshots = append(g.screenshots, label)
}

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if !g.started {
		g.started = true
		g.Refresh()
	}
	dt := 1.0 / float64(ebiten.TPS())
	g.receive()
	g.readKeys()
	g.step(dt, g.readPointer())
	g.fps.update(dt)

	if g.finished() {
		return ebiten.Termination
	}
	return nil
}

// finished reports whether an exit-after-script run may stop. Screenshots
// queued by the last step are written by the next Draw, so the game keeps
// running until the queue is empty.
func (g *Game) finished() bool {
	return g.opts.ExitAfterScript && g.opts.Script != nil && g.opts.Script.Done() &&
		len(g.screenshots) == 0
}

// step advances one frame with the given pointer sample.
func (g *Game) step(dt float64, in pointerSample) {
	if g.opts.Script != nil {
		g.opts.Script.step(g)
	}
	g.processPointer(in)
	g.camera.Update(float32(dt))
	g.field.Step(g.camera.Position())
	g.discs = g.project(g.discs[:0])
}

// selectAt picks the front-most balloon under (x, y). A miss clears the
// selection.
func (g *Game) selectAt(x, y float64) {
	d, ok := pick(g.discs, x, y)
	if !ok {
		if g.selectedID != "" {
			g.logger.Debug("selection cleared")
		}
		g.selectedID = ""
		return
	}

	item := g.field.Item(d.index)
	pos := g.field.Current(d.index)
	g.selectedID = item.ID
	g.camera.FocusOn(pos, focusDuration, ease.OutCubic)
	g.logger.Debug("balloon selected", zap.String("id", item.ID), zap.Int("index", d.index))

	if g.opts.Sink != nil {
		g.opts.Sink.EmitSelection(balloons.SelectionEvent{
			ID:       item.ID,
			Index:    d.index,
			Message:  item.Message,
			Position: [3]float64{pos.X, pos.Y, pos.Z},
		})
	}
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(skyColor)
	g.drawBalloons(screen)
	g.drawPanel(screen)
	g.drawStatus(screen)
	if g.opts.ShowFPS {
		g.fps.draw(screen)
	}
	g.flushScreenshots(screen)
}

// Layout implements ebiten.Game.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.width, g.height = outsideWidth, outsideHeight
	return outsideWidth, outsideHeight
}

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title         string
	Width, Height int
}

// Run opens a window and runs g until it is closed.
func Run(g *Game, cfg RunConfig) error {
	if cfg.Title == "" {
		cfg.Title = "Balloons"
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = g.width, g.height
	}
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	return ebiten.RunGame(g)
}

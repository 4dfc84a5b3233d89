package game

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/gdamore/tcell/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/samdwyer/starblade/internal/combat"
	"github.com/samdwyer/starblade/internal/dice"
	"github.com/samdwyer/starblade/internal/entity"
	"github.com/samdwyer/starblade/internal/expedition"
	"github.com/samdwyer/starblade/internal/gamedata"
	"github.com/samdwyer/starblade/internal/telemetry"
	"github.com/samdwyer/starblade/internal/ui"
	"github.com/samdwyer/starblade/internal/world"
)

// Game holds the entire game state.
type Game struct {
	cfg        Config
	screen     *ui.Screen
	renderer   *ui.Renderer
	logger     *zap.Logger
	tracer     trace.Tracer
	source     dice.Source
	content    *gamedata.Content
	expedition *expedition.Expedition
	session    *combat.Session
	combat     *ui.CombatView
	scheduler  combat.Scheduler   // nil means a timer dispatched through post
	post       func(func()) error // nil means screen.Post
	stalled    *atomic.Bool       // Set when the running fight lost an enemy turn
	state      State
	running    bool
}

// New creates a new game instance on the terminal.
func New(cfg Config, logger *zap.Logger) (*Game, error) {
	screen, err := ui.NewScreen()
	if err != nil {
		return nil, err
	}
	return NewWithScreen(screen, cfg, logger), nil
}

// NewWithScreen creates a game drawing to an initialized screen.
func NewWithScreen(screen *ui.Screen, cfg Config, logger *zap.Logger) *Game {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Game{
		cfg:      cfg,
		screen:   screen,
		renderer: ui.NewRenderer(screen),
		logger:   logger,
		tracer:   telemetry.Tracer("game"),
		source:   dice.NewSeededSource(cfg.Seed),
		state:    StateExplore,
		running:  true,
	}
}

// Run executes the main game loop.
func (g *Game) Run(ctx context.Context) error {
	if err := g.setup(ctx); err != nil {
		g.Close()
		return err
	}

	// Main game loop
	for g.running {
		// Render current state
		g.renderer.Render(g.view())

		// Handle input (blocking)
		g.handleInput(ctx)
	}

	// Cleanup
	g.Close()
	return nil
}

// setup loads content and places the party at the world's start.
func (g *Game) setup(ctx context.Context) error {
	ctx, initSpan := g.tracer.Start(ctx, "game.init")
	defer initSpan.End()

	content, err := gamedata.LoadContent()
	if err != nil {
		return fmt.Errorf("loading content: %w", err)
	}
	m, err := world.NewMap(ctx, content.World)
	if err != nil {
		return fmt.Errorf("building world: %w", err)
	}
	party, err := entity.NewDefaultParty(content.Classes, content.Party, m.StartX, m.StartY)
	if err != nil {
		return fmt.Errorf("building party: %w", err)
	}
	exp, err := expedition.New(expedition.Config{
		Map:        m,
		Party:      party,
		Encounters: content.Encounters,
		Quests:     content.Quests,
		Source:     g.source,
		Logger:     g.logger,
	})
	if err != nil {
		return err
	}

	g.content = content
	g.expedition = exp
	exp.Log(fmt.Sprintf("Your journey through %s begins.", m.Name))

	initSpan.SetAttributes(
		attribute.String("world.name", m.Name),
		attribute.Int("party.size", len(party.Members)),
		attribute.Int("party.start_x", m.StartX),
		attribute.Int("party.start_y", m.StartY),
	)
	g.logger.Info("game initialized",
		zap.String("world", m.Name),
		zap.Int("party_size", len(party.Members)),
		zap.Int64("seed", g.cfg.Seed),
	)
	return nil
}

// handleInput processes a single input event.
func (g *Game) handleInput(ctx context.Context) {
	ev := g.screen.PollEvent()

	switch ev := ev.(type) {
	case nil:
		// Screen finalized
		g.running = false
	case *tcell.EventKey:
		g.handleKeyEvent(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	case *tcell.EventInterrupt:
		// Scheduled enemy turns arrive here so they run on this goroutine.
		if fn, ok := ev.Data().(func()); ok {
			fn()
		}
	}
	g.recoverStalledCombat()
}

// handleKeyEvent processes keyboard input.
func (g *Game) handleKeyEvent(ctx context.Context, ev *tcell.EventKey) {
	g.handleKey(ctx, ev.Key(), ev.Rune())
}

func (g *Game) handleKey(ctx context.Context, key tcell.Key, r rune) {
	switch key {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		g.running = false
		return
	case tcell.KeyRune:
		if r == 'q' || r == 'Q' {
			g.running = false
			return
		}
	}

	switch g.state {
	case StateExplore:
		g.handleExploreKey(ctx, key, r)
	case StateCombat:
		g.handleCombatKey(ctx, key, r)
	}
}

func (g *Game) handleExploreKey(ctx context.Context, key tcell.Key, r rune) {
	switch key {
	case tcell.KeyUp:
		g.tryMove(ctx, 0, -1)
	case tcell.KeyDown:
		g.tryMove(ctx, 0, 1)
	case tcell.KeyLeft:
		g.tryMove(ctx, -1, 0)
	case tcell.KeyRight:
		g.tryMove(ctx, 1, 0)

	case tcell.KeyRune:
		switch r {
		case 'r', 'R':
			g.expedition.Rest()
		case 'c', 'C':
			g.expedition.Camp()
		}
	}
}

// tryMove attempts to move the party by the given delta, starting a fight
// when the move rolls an encounter.
func (g *Game) tryMove(ctx context.Context, dx, dy int) {
	result := g.expedition.Move(ctx, dx, dy)
	if result.Encounter == nil {
		return
	}
	if err := g.startCombat(ctx, result.Encounter); err != nil {
		g.logger.Error("starting combat", zap.Error(err))
		g.expedition.EncounterEnded(combat.OutcomeNone)
		g.endCombat()
	}
}

// view collects what the renderer needs for one frame.
func (g *Game) view() ui.View {
	v := ui.View{Help: g.state.Help()}
	if g.expedition == nil {
		return v
	}
	v.World = g.expedition.World()
	v.Party = g.expedition.Party()
	v.Hour = g.expedition.TimeOfDay()
	v.Fatigue = g.expedition.Fatigue()
	v.Mode = g.expedition.Mode().String()
	v.Journal = g.expedition.Journal().Entries()
	v.Quests = g.expedition.Quests().All()
	v.Combat = g.combat
	return v
}

// State returns the current input mode.
func (g *Game) State() State { return g.state }

// Close stops any running fight and cleans up game resources.
func (g *Game) Close() {
	if g.session != nil {
		g.session.Stop()
		g.session = nil
	}
	if g.screen != nil {
		g.screen.Close()
		g.screen = nil
	}
}

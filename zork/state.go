package zork

import (
	"slices"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Game is one playthrough of a World. It is not safe for concurrent use;
// hosts serving several players create one Game per session.
type Game struct {
	world  *World
	logger *zap.Logger
	id     string

	objects    map[string]*objectState
	location   string
	inventory  []string
	score      int
	moves      int
	done       bool
	grueWarned bool
}

// Option configures a Game.
type Option func(*Game)

// WithLogger sets the logger used for per-step debug logging.
func WithLogger(logger *zap.Logger) Option {
	return func(g *Game) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewGame creates a game over w, already reset to the initial configuration.
//
// Precondition: w must be a validated World.
func NewGame(w *World, opts ...Option) *Game {
	g := &Game{
		world:  w,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}
	g.initState()
	return g
}

func (g *Game) initState() {
	g.id = uuid.NewString()
	g.objects = make(map[string]*objectState, len(g.world.objectOrder))
	for _, id := range g.world.objectOrder {
		tmpl := g.world.objects[id]
		g.objects[id] = &objectState{
			Location: tmpl.Location,
			Open:     tmpl.Open,
		}
	}
	g.location = g.world.start
	g.inventory = nil
	for _, id := range g.world.objectOrder {
		if g.objects[id].Location == InventoryLocation {
			g.inventory = append(g.inventory, id)
		}
	}
	g.score = 0
	g.moves = 0
	g.done = false
	g.grueWarned = false
}

// ID returns the identifier assigned to the current playthrough. It changes on every Reset
// and is meant for log correlation only.
func (g *Game) ID() string {
	return g.id
}

// Location returns the current location id.
func (g *Game) Location() string {
	return g.location
}

func (g *Game) Score() int {
	return g.score
}

func (g *Game) Moves() int {
	return g.moves
}

func (g *Game) Done() bool {
	return g.done
}

// ObjectLocation returns the location marker of object id: a location id,
// InventoryLocation, or "in_<container>". Unknown ids return "".
func (g *Game) ObjectLocation(id string) string {
	st, ok := g.objects[id]
	if !ok {
		return ""
	}
	return st.Location
}

// Inventory returns the carried object ids in the order they were picked up.
func (g *Game) Inventory() []string {
	out := make([]string, len(g.inventory))
	copy(out, g.inventory)
	return out
}

func (g *Game) carrying(id string) bool {
	return slices.Contains(g.inventory, id)
}

func (g *Game) addToInventory(id string) {
	g.objects[id].Location = InventoryLocation
	g.inventory = append(g.inventory, id)
}

func (g *Game) removeFromInventory(id, dest string) {
	if i := slices.Index(g.inventory, id); i >= 0 {
		g.inventory = slices.Delete(g.inventory, i, i+1)
	}
	g.objects[id].Location = dest
}

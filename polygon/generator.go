package polygon

import (
	"io"
	"iter"
	"log/slog"
	"math/rand/v2"
)

// sides are drawn uniformly from [0, sideLimit).
const sideLimit = 10

// State is the lifecycle state of a Generator.
type State int

const (
	Active State = iota
	Exhausted
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Exhausted:
		return "exhausted"
	default:
		return "unknown"
	}
}

// Generator lazily produces a fixed number of randomly sized polygons.
// It is forward-only: once exhausted it produces nothing more.
// A Generator is not safe for concurrent use.
type Generator struct {
	limit  int
	count  int
	rng    *rand.Rand
	logger *slog.Logger
}

// Option configures a Generator.
type Option func(*Generator)

// WithRand sets the random source used for the polygon sides.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) {
		g.rng = rng
	}
}

// WithLogger sets the logger for the generator.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// NewGenerator returns a generator producing n polygons. A negative n is
// treated as 0.
func NewGenerator(n int, options ...Option) *Generator {
	g := &Generator{limit: max(n, 0)}
	for _, opt := range options {
		opt(g)
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if g.logger == nil {
		g.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return g
}

// Next produces the next polygon. The boolean is false once the generator
// is exhausted, and stays false.
func (g *Generator) Next() (*Polygon, bool) {
	if g.count >= g.limit {
		return nil, false
	}
	p := &Polygon{
		Height: g.rng.IntN(sideLimit),
		Width:  g.rng.IntN(sideLimit),
	}
	g.count++
	g.logger.Debug("produced polygon",
		slog.Int("index", g.count-1),
		slog.Int("height", p.Height),
		slog.Int("width", p.Width),
	)
	if g.count == g.limit {
		g.logger.Debug("generator exhausted", slog.Int("produced", g.count))
	}
	return p, true
}

// Done reports whether the generator is exhausted.
func (g *Generator) Done() bool {
	return g.count >= g.limit
}

func (g *Generator) State() State {
	if g.Done() {
		return Exhausted
	}
	return Active
}

// Produced is the number of polygons produced so far.
func (g *Generator) Produced() int {
	return g.count
}

// All returns a sequence pulling from g. Ranging over it twice does not
// restart the generator; the second range sees only what is left.
func (g *Generator) All() iter.Seq[*Polygon] {
	return func(yield func(*Polygon) bool) {
		for {
			p, ok := g.Next()
			if !ok || !yield(p) {
				return
			}
		}
	}
}

// Gen returns a lazy sequence of n randomly sized polygons.
func Gen(n int, options ...Option) iter.Seq[*Polygon] {
	return NewGenerator(n, options...).All()
}

package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/podhmo/playspec/polygon"
	"github.com/podhmo/playspec/props"
	"github.com/podhmo/playspec/scanner"
	"github.com/podhmo/playspec/shape"
)

type options struct {
	Count   int
	Seed    uint64
	Pattern string
}

// env is what the scenarios share.
type env struct {
	registry *props.Registry
	polygons []polygon.Option
	count    int
}

type scenario struct {
	name string
	run  func(ctx context.Context, w io.Writer, e *env) error
}

var scenarios = []scenario{
	{name: "shapes/areas", run: runAreas},
	{name: "shapes/circumferences", run: runCircumferences},
	{name: "shapes/properties", run: runProperties},
	{name: "polygon/area", run: runPolygonArea},
	{name: "polygon/generator", run: runGenerator},
}

// run executes the selected scenarios in order and returns how many failed.
// A failing scenario does not stop the others; the error is reserved for
// failures to set up.
func run(ctx context.Context, w io.Writer, logger *slog.Logger, opts options) (int, error) {
	s := scanner.New(scanner.WithLogger(logger))
	pkg, err := s.ScanFS(ctx, shape.Source, shape.ImportPath)
	if err != nil {
		return 0, fmt.Errorf("failed to scan shape declarations: %w", err)
	}

	e := &env{
		registry: props.New(props.WithPackages(pkg), props.WithLogger(logger)),
		polygons: []polygon.Option{polygon.WithLogger(logger)},
		count:    opts.Count,
	}
	if opts.Seed != 0 {
		e.polygons = append(e.polygons, polygon.WithRand(rand.New(rand.NewPCG(opts.Seed, opts.Seed))))
	}

	failed := 0
	for _, sc := range scenarios {
		if opts.Pattern != "" && !strings.Contains(sc.name, opts.Pattern) {
			logger.DebugContext(ctx, "skipping scenario", slog.String("name", sc.name))
			continue
		}
		fmt.Fprintf(w, "# %s\n", sc.name)
		if err := sc.run(ctx, w, e); err != nil {
			failed++
			fmt.Fprintf(w, "FAIL %s: %v\n", sc.name, err)
			continue
		}
		fmt.Fprintf(w, "ok %s\n", sc.name)
	}
	return failed, nil
}

func referenceShapes() []shape.Shape {
	return []shape.Shape{shape.NewCircle(10), shape.NewRectangle(3, 4)}
}

func runAreas(ctx context.Context, w io.Writer, e *env) error {
	total := shape.TotalArea(referenceShapes())
	fmt.Fprintf(w, "total area: %.4f\n", total)
	if !shape.CloseTo(total, 326.159, 3) {
		return fmt.Errorf("total area %v is not close to 326.159", total)
	}
	return nil
}

func runCircumferences(ctx context.Context, w io.Writer, e *env) error {
	total := shape.TotalCircumference(referenceShapes())
	fmt.Fprintf(w, "total circumference: %.4f\n", total)
	if !shape.CloseTo(total, 76.8317, 3) {
		return fmt.Errorf("total circumference %v is not close to 76.8317", total)
	}
	return nil
}

func runProperties(ctx context.Context, w io.Writer, e *env) error {
	for _, v := range []any{shape.NewCircle(12), shape.NewRectangle(3, 4), &shape.Base{}} {
		ps, err := e.registry.Enumerate(v)
		if err != nil {
			return fmt.Errorf("enumerate %T: %w", v, err)
		}
		if err := props.Fprint(w, ps); err != nil {
			return err
		}
	}
	return nil
}

func runPolygonArea(ctx context.Context, w io.Writer, e *env) error {
	square := polygon.New(10, 10)
	fmt.Fprintf(w, "area of a square 10x10 is: %d\n", square.Area())
	if got := square.Area(); got != 100 {
		return fmt.Errorf("area of a square 10x10 is %d, want 100", got)
	}
	return nil
}

func runGenerator(ctx context.Context, w io.Writer, e *env) error {
	g := polygon.NewGenerator(e.count, e.polygons...)
	i := 0
	for p := range g.All() {
		if got, want := p.Area(), p.Height*p.Width; got != want {
			return fmt.Errorf("polygon %d: area %d, want %d", i, got, want)
		}
		if p.Height < 0 || p.Height > 9 || p.Width < 0 || p.Width > 9 {
			return fmt.Errorf("polygon %d: sides (%d, %d) out of [0, 9]", i, p.Height, p.Width)
		}
		fmt.Fprintf(w, "%d %s\n", i, p)
		i++
	}
	if i > max(e.count, 0) {
		return fmt.Errorf("generated %d polygons, want at most %d", i, e.count)
	}
	return nil
}

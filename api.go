package tilepath

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"
	"runtime"

	"github.com/pdrpinto/tilepath/internal/grid"
)

// Mover identifies the entity a path is being searched for. The finder never
// inspects it; it is handed to the TileMap and the Heuristic so they can apply
// per-entity rules.
type Mover int

// TileMap is the map being searched.
type TileMap interface {
	// Width and Height give the map size in tiles.
	Width() int
	Height() int
	// Blocked reports whether mover may not enter (x, y).
	Blocked(mover Mover, x, y int) bool
	// Cost is the non-negative cost for mover to step from (sx, sy) to the
	// adjacent tile (tx, ty).
	Cost(mover Mover, sx, sy, tx, ty int) float64
	// Visited is called for every tile the search evaluates. It is meant for
	// debugging heuristics and has no effect on the result.
	Visited(x, y int)
}

var (
	// ErrNoPath is returned, possibly wrapped, whenever no path is reported.
	ErrNoPath = errors.New("no path found")
	// ErrTargetBlocked is returned without searching when the target tile is
	// blocked for the mover.
	ErrTargetBlocked = fmt.Errorf("%w: target is blocked", ErrNoPath)
	// ErrSearchDepthExceeded is returned when the depth ceiling is reached
	// before the target was discovered.
	ErrSearchDepthExceeded = fmt.Errorf("%w: search depth exceeded", ErrNoPath)
	// ErrOutOfBounds is returned when the start or target lies outside the map.
	ErrOutOfBounds = errors.New("coordinate out of bounds")
	// ErrInvalidOption is returned by NewFinder for unusable configuration.
	ErrInvalidOption = errors.New("invalid option")
)

// DefaultMaxSearchDistance is the depth ceiling used when none is configured.
const DefaultMaxSearchDistance = 500

// Result contains the outcome of a search.
type Result struct {
	Path *Path
	// TotalCost is the cost-so-far of the target when it was reached.
	TotalCost float64
	// ExpandedNodes counts the nodes moved to the closed set.
	ExpandedNodes int
	// MaxDepth is the deepest search-tree level reached.
	MaxDepth int
	Found    bool
}

// Options defines parameters for the search.
type Options struct {
	MaxSearchDistance int
	AllowDiagonal     bool
	Heuristic         Heuristic
	Logger            *slog.Logger
	NumberOfWorkers   int
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithMaxSearchDistance sets the depth ceiling. The search gives up once the
// search tree reaches this depth, trading completeness for bounded work.
func WithMaxSearchDistance(depth int) Option {
	return func(options *Options) { options.MaxSearchDistance = depth }
}

// WithDiagonalMovement enables 8-way movement.
func WithDiagonalMovement(allow bool) Option {
	return func(options *Options) { options.AllowDiagonal = allow }
}

// WithHeuristic replaces the default Euclidean heuristic. A nil heuristic
// restores the default.
func WithHeuristic(heuristic Heuristic) Option {
	return func(options *Options) { options.Heuristic = heuristic }
}

// WithLogger sets the logger that receives per-search debug records.
func WithLogger(logger *slog.Logger) Option {
	return func(options *Options) { options.Logger = logger }
}

// WithWorkers specifies how many worker goroutines FindPaths runs.
func WithWorkers(numberOfWorkers int) Option {
	return func(options *Options) { options.NumberOfWorkers = numberOfWorkers }
}

func buildOptions(options []Option) (Options, error) {
	searchOptions := Options{
		MaxSearchDistance: DefaultMaxSearchDistance,
		Heuristic:         Euclidean,
		NumberOfWorkers:   runtime.NumCPU(),
	}
	for _, option := range options {
		option(&searchOptions)
	}
	if searchOptions.Heuristic == nil {
		searchOptions.Heuristic = Euclidean
	}
	if searchOptions.Logger == nil {
		searchOptions.Logger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.Level(math.MaxInt)}))
	}
	if searchOptions.MaxSearchDistance <= 0 {
		return Options{}, fmt.Errorf("%w: max search distance %d", ErrInvalidOption, searchOptions.MaxSearchDistance)
	}
	if searchOptions.NumberOfWorkers <= 0 {
		return Options{}, fmt.Errorf("%w: %d workers", ErrInvalidOption, searchOptions.NumberOfWorkers)
	}
	return searchOptions, nil
}

// Finder searches one TileMap. It keeps a node per tile between searches, so
// it should be built once and reused. A Finder must not be used by more than
// one goroutine at a time; see FindPaths for concurrent searches.
type Finder struct {
	tileMap TileMap
	options Options
	pool    *nodePool
	open    openSet
	// active is the search currently owning the pool
	active *search
}

// NewFinder creates a finder for m.
func NewFinder(m TileMap, options ...Option) (*Finder, error) {
	if m == nil {
		return nil, fmt.Errorf("%w: nil map", ErrInvalidOption)
	}
	if m.Width() <= 0 || m.Height() <= 0 {
		return nil, fmt.Errorf("%w: map size %dx%d", ErrInvalidOption, m.Width(), m.Height())
	}
	searchOptions, err := buildOptions(options)
	if err != nil {
		return nil, err
	}
	return &Finder{
		tileMap: m,
		options: searchOptions,
		pool:    newNodePool(m.Width(), m.Height()),
	}, nil
}

// Options returns the configuration the finder was built with.
func (f *Finder) Options() Options { return f.options }

// FindPath searches for the cheapest path for mover from (sx, sy) to (tx, ty).
// When no path is found the returned error wraps ErrNoPath.
func (f *Finder) FindPath(mover Mover, sx, sy, tx, ty int) (Result, error) {
	return f.FindPathContext(context.Background(), mover, sx, sy, tx, ty)
}

// FindPathContext is FindPath with cancellation. The context is checked
// periodically between node expansions.
func (f *Finder) FindPathContext(contextObject context.Context, mover Mover, sx, sy, tx, ty int) (Result, error) {
	s, err := f.begin(mover, sx, sy, tx, ty)
	if err != nil {
		f.logFinished(Result{}, err)
		return Result{}, err
	}
	defer s.release()

	for !s.done {
		if s.iterations%contextCheckInterval == 0 {
			if err := contextObject.Err(); err != nil {
				f.logFinished(s.stats(), err)
				return s.stats(), err
			}
		}
		s.step()
	}

	result, err := s.finish()
	f.logFinished(result, err)
	return result, err
}

const contextCheckInterval = 64

func (f *Finder) checkBounds(x, y int) error {
	if !grid.InBounds(x, y, f.pool.width, f.pool.height) {
		return fmt.Errorf("%w: (%d,%d) outside %dx%d map", ErrOutOfBounds, x, y, f.pool.width, f.pool.height)
	}
	return nil
}

func (f *Finder) logFinished(result Result, err error) {
	attrs := []any{
		slog.Bool("found", result.Found),
		slog.Int("expanded", result.ExpandedNodes),
		slog.Int("max_depth", result.MaxDepth),
	}
	if err != nil {
		attrs = append(attrs, slog.String("reason", err.Error()))
	}
	f.options.Logger.Debug("search finished", attrs...)
}

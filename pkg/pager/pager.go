// Package pager loads connection results page by page in two directions:
// earlier pages are prepended and later pages are appended to one list.
package pager

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/AimceptionGian/FlexiPlan/pkg/logging"
	"github.com/AimceptionGian/FlexiPlan/pkg/transit"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// Direction selects which end of the list LoadMore extends
type Direction int

const (
	Earlier Direction = iota
	Later
)

func (d Direction) String() string {
	if d == Earlier {
		return "earlier"
	}
	return "later"
}

const (
	initialEarlierPage = -1
	initialLaterPage   = 1

	// DefaultLongWait is the wait above which a hint about alternatives is logged
	DefaultLongWait = 5
)

// Fetcher is anything that can return one page of connections.
// *transit.Client satisfies it.
type Fetcher interface {
	FetchConnections(ctx context.Context, q transit.Query) ([]transit.Connection, error)
}

// Entry is a connection annotated with its wait time at fetch time
type Entry struct {
	transit.Connection
	WaitMinutes int `json:"wait_minutes"`
}

// Options tweak a search. Zero values mean "departing now" and "use the names".
type Options struct {
	Departure      time.Time
	FromCoordinate *transit.Coordinate
	ToCoordinate   *transit.Coordinate
}

// cursor tracks the next page to request in one direction
type cursor struct {
	page    int
	hasMore bool
	loading bool
}

// Pager holds the merged result list for one origin/destination search.
// It is safe for concurrent use; network calls happen outside the lock.
type Pager struct {
	fetcher  Fetcher
	now      func() time.Time
	logger   *log.Logger
	longWait int

	mu         sync.Mutex
	generation uint64
	searchID   string
	query      transit.Query
	ready      bool
	searching  bool
	entries    []Entry
	cursors    [2]cursor
}

// Option configures a Pager.
type Option func(*Pager)

// WithClock overrides the wall clock used for wait-time annotations.
func WithClock(now func() time.Time) Option {
	return func(p *Pager) {
		if now != nil {
			p.now = now
		}
	}
}

// WithLogger injects a structured logger.
func WithLogger(l *log.Logger) Option {
	return func(p *Pager) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithLongWait sets the wait in minutes above which alternatives are suggested.
func WithLongWait(minutes int) Option {
	return func(p *Pager) {
		if minutes > 0 {
			p.longWait = minutes
		}
	}
}

// New creates a pager backed by f
func New(f Fetcher, opts ...Option) *Pager {
	p := &Pager{
		fetcher:  f,
		now:      time.Now,
		logger:   logging.Discard(),
		longWait: DefaultLongWait,
	}
	p.resetCursors()
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Pager) resetCursors() {
	p.cursors[Earlier] = cursor{page: initialEarlierPage, hasMore: true}
	p.cursors[Later] = cursor{page: initialLaterPage, hasMore: true}
}

// Search starts over with a new origin and destination and loads page 0.
// A missing origin or destination is silently ignored. Previous results are
// dropped as soon as the search is issued; if a newer Search is started before
// this one returns, this one's response is discarded.
func (p *Pager) Search(ctx context.Context, origin, destination string, opts Options) error {
	origin = strings.TrimSpace(origin)
	destination = strings.TrimSpace(destination)
	if origin == "" || destination == "" {
		return nil
	}

	q := transit.Query{
		From:           origin,
		To:             destination,
		Page:           0,
		FromCoordinate: opts.FromCoordinate,
		ToCoordinate:   opts.ToCoordinate,
		Departure:      opts.Departure,
	}

	p.mu.Lock()
	p.generation++
	gen := p.generation
	p.searchID = uuid.NewString()
	searchID := p.searchID
	p.query = q
	p.ready = false
	p.searching = true
	p.entries = nil
	p.resetCursors()
	p.mu.Unlock()

	logger := p.logger.With("search", searchID, "from", origin, "to", destination)
	logger.Debug("searching connections")

	conns, err := p.fetcher.FetchConnections(ctx, q)

	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.generation {
		logger.Debug("discarding superseded search response")
		return nil
	}
	p.searching = false

	if err != nil {
		logger.Error("search failed", "err", err)
		return fmt.Errorf("search %s -> %s: %w", origin, destination, err)
	}

	p.entries = p.annotate(conns)
	p.resetCursors()
	p.ready = true

	logger.Info("search finished", "count", len(conns))
	p.hintLongWaits(logger, p.entries)
	return nil
}

// LoadMore fetches the next page in direction d. It does nothing when no search
// has completed, when a request in that direction is already running, or when
// that direction has run out of results.
func (p *Pager) LoadMore(ctx context.Context, d Direction) error {
	p.mu.Lock()
	cur := &p.cursors[d]
	if !p.ready || cur.loading || !cur.hasMore {
		p.mu.Unlock()
		return nil
	}
	cur.loading = true
	gen := p.generation
	q := p.query
	q.Page = cur.page
	logger := p.logger.With("search", p.searchID, "direction", d.String(), "page", q.Page)
	p.mu.Unlock()

	conns, err := p.fetcher.FetchConnections(ctx, q)

	p.mu.Lock()
	defer p.mu.Unlock()

	if gen != p.generation {
		logger.Debug("discarding page from superseded search")
		return nil
	}

	cur = &p.cursors[d]
	cur.loading = false

	if err != nil {
		logger.Error("loading more connections failed", "err", err)
		return fmt.Errorf("load %s connections (page %d): %w", d, q.Page, err)
	}

	if len(conns) == 0 {
		cur.hasMore = false
		logger.Debug("no more connections")
		return nil
	}

	page := p.annotate(conns)
	if d == Earlier {
		merged := make([]Entry, 0, len(page)+len(p.entries))
		merged = append(merged, page...)
		p.entries = append(merged, p.entries...)
		cur.page--
	} else {
		p.entries = append(p.entries, page...)
		cur.page++
	}

	logger.Debug("loaded more connections", "count", len(page), "total", len(p.entries))
	p.hintLongWaits(logger, page)
	return nil
}

func (p *Pager) annotate(conns []transit.Connection) []Entry {
	now := p.now()
	entries := make([]Entry, 0, len(conns))
	for _, c := range conns {
		entries = append(entries, Entry{Connection: c, WaitMinutes: WaitMinutes(c, now)})
	}
	return entries
}

func (p *Pager) hintLongWaits(logger *log.Logger, page []Entry) {
	for _, e := range page {
		if e.WaitMinutes > p.longWait {
			logger.Info("long wait ahead, alternative connections may be worth checking", "wait_minutes", e.WaitMinutes)
			return
		}
	}
}

// WaitMinutes is the time from now until the connection departs, rounded to
// whole minutes. Unparsable departures count as 0.
func WaitMinutes(c transit.Connection, now time.Time) int {
	dep, err := c.From.DepartureTime()
	if err != nil {
		return 0
	}
	return int(math.Round(dep.Sub(now).Minutes()))
}

// Entries returns a copy of the current result list
func (p *Pager) Entries() []Entry {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out
}

// HasMore reports whether direction d may still yield results
func (p *Pager) HasMore(d Direction) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursors[d].hasMore
}

// Loading reports whether a request in direction d is in flight
func (p *Pager) Loading(d Direction) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursors[d].loading
}

// Page is the page LoadMore(d) would request next
func (p *Pager) Page(d Direction) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursors[d].page
}

// Searching reports whether an initial search is in flight
func (p *Pager) Searching() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.searching
}

// Ready reports whether a search has completed successfully
func (p *Pager) Ready() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ready
}

// Query returns the origin/destination query of the current search
func (p *Pager) Query() transit.Query {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.query
}

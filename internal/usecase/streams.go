package usecase

import (
	"sync"

	"github.com/stefanv/moneta/internal/aggregate"
	"github.com/stefanv/moneta/internal/domain"
)

// Streams groups one user's live input sequences. Write use cases republish
// full snapshots here after every successful mutation; the aggregation
// engine combines them into derived views.
type Streams struct {
	Entries   *aggregate.Feed[[]*domain.Entry]
	Goals     *aggregate.Feed[[]*domain.Goal]
	Rates     *aggregate.Feed[domain.RateTable]
	Base      *aggregate.Feed[domain.CurrencyCode]
	Selection *aggregate.Feed[aggregate.Selection]
}

func newStreams() *Streams {
	return &Streams{
		Entries:   aggregate.NewFeed[[]*domain.Entry](),
		Goals:     aggregate.NewFeed[[]*domain.Goal](),
		Rates:     aggregate.NewFeed[domain.RateTable](),
		Base:      aggregate.NewFeed[domain.CurrencyCode](),
		Selection: aggregate.NewFeed[aggregate.Selection](),
	}
}

// Inputs adapts the streams for engine wiring.
func (s *Streams) Inputs() aggregate.Inputs {
	return aggregate.Inputs{
		Entries:   s.Entries,
		Goals:     s.Goals,
		Rates:     s.Rates,
		Base:      s.Base,
		Selection: s.Selection,
	}
}

// StreamHub hands out per-user streams, creating them on first use. Streams
// live for the process lifetime; per-user cost is a handful of feeds.
type StreamHub struct {
	mu      sync.Mutex
	streams map[string]*Streams
}

// NewStreamHub creates an empty hub.
func NewStreamHub() *StreamHub {
	return &StreamHub{streams: make(map[string]*Streams)}
}

// For returns the streams for userID, creating them if needed.
func (h *StreamHub) For(userID string) *Streams {
	h.mu.Lock()
	defer h.mu.Unlock()

	s, ok := h.streams[userID]
	if !ok {
		s = newStreams()
		h.streams[userID] = s
	}

	return s
}

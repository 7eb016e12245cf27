package domain

import (
	"context"
	"time"
)

// SearchEvent describes one search run for observability hooks.
type SearchEvent struct {
	Timestamp  time.Time     `json:"timestamp"`
	Maze       string        `json:"maze,omitempty"`
	Mode       Mode          `json:"mode"`
	Explored   int           `json:"explored"`
	PathLength int           `json:"path_length"`
	Found      bool          `json:"found"`
	Duration   time.Duration `json:"duration"`
	Err        error         `json:"-"`
}

// SearchHooks defines callbacks fired around every search.
type SearchHooks struct {
	OnSearchStart func(context.Context, *SearchEvent)
	OnSearchDone  func(context.Context, *SearchEvent)
}

// Merge returns hooks that call h first and then other.
func (h SearchHooks) Merge(other SearchHooks) SearchHooks {
	return SearchHooks{
		OnSearchStart: chain(h.OnSearchStart, other.OnSearchStart),
		OnSearchDone:  chain(h.OnSearchDone, other.OnSearchDone),
	}
}

func chain(a, b func(context.Context, *SearchEvent)) func(context.Context, *SearchEvent) {
	if a == nil {
		return b
	}
	if b == nil {
		return a
	}
	return func(ctx context.Context, e *SearchEvent) {
		a(ctx, e)
		b(ctx, e)
	}
}

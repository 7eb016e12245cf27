package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/wayfinder/pkg/domain"
)

// LogHooks logs the start of every search at debug level and its outcome at info
// level, or warn when it failed.
func LogHooks(logger *slog.Logger) domain.SearchHooks {
	return domain.SearchHooks{
		OnSearchStart: func(ctx context.Context, e *domain.SearchEvent) {
			logger.DebugContext(ctx, "search_start", "maze", e.Maze, "mode", e.Mode.String())
		},
		OnSearchDone: func(ctx context.Context, e *domain.SearchEvent) {
			attrs := []any{
				"maze", e.Maze,
				"mode", e.Mode.String(),
				"found", e.Found,
				"explored", e.Explored,
				"path", e.PathLength,
				"duration_ms", e.Duration.Milliseconds(),
			}
			if e.Err != nil {
				logger.WarnContext(ctx, "search_done", append(attrs, "err", e.Err)...)
				return
			}
			logger.InfoContext(ctx, "search_done", attrs...)
		},
	}
}

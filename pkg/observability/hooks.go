package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/nfa/pkg/domain"
)

// LoggingHooks logs every event through logger.
func LoggingHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCompile: func(ctx context.Context, e *domain.CompileEvent) {
			logger.InfoContext(ctx, "compile",
				"automaton", e.Automaton,
				"states", e.States,
				"rejected", e.Rejected,
				"is_error", e.IsError,
			)
		},
		OnQuery: func(ctx context.Context, e *domain.QueryEvent) {
			logger.InfoContext(ctx, "query",
				"automaton", e.Automaton,
				"op", e.Operation,
				"input_len", e.InputLength,
				"result", e.Result,
				"width", e.Width,
				"duration", e.Duration,
			)
		},
	}
}

// Merge fans every event out to all hooks, in order.
func Merge(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnCompile: func(ctx context.Context, e *domain.CompileEvent) {
			for _, h := range hooks {
				if h.OnCompile != nil {
					h.OnCompile(ctx, e)
				}
			}
		},
		OnQuery: func(ctx context.Context, e *domain.QueryEvent) {
			for _, h := range hooks {
				if h.OnQuery != nil {
					h.OnQuery(ctx, e)
				}
			}
		},
	}
}

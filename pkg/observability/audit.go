package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/drake/pkg/domain"
)

// AuditHooks returns lifecycle hooks that log every event. Session
// boundaries are logged at info level, previews at debug.
func AuditHooks(logger *slog.Logger) domain.LifecycleHooks {
	at := func(level slog.Level) func(domain.Event) {
		return func(e domain.Event) {
			logger.LogAttrs(context.Background(), level, string(e.Type), slog.Any("event", e))
		}
	}
	info, debug := at(slog.LevelInfo), at(slog.LevelDebug)
	return domain.LifecycleHooks{
		OnDrag:    info,
		OnDragEnd: info,
		OnDrop:    info,
		OnCancel:  info,
		OnRemove:  info,
		OnShadow:  debug,
		OnOver:    debug,
		OnOut:     debug,
		OnCloned:  debug,
	}
}

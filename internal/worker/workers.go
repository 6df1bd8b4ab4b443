package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-tracker/internal/service"
)

// StartDiagnosticsWorker registers diagnostic event handlers.
func StartDiagnosticsWorker(diagnostics *service.DiagnosticsService) {
	if diagnostics == nil {
		return
	}
	diagnostics.RegisterHandlers()
}

// StartSessionJanitor evicts idle dashboard sessions in the background until ctx is done.
func StartSessionJanitor(ctx context.Context, sessions *service.SessionStore, interval time.Duration, logger *zap.Logger) {
	if sessions == nil || interval <= 0 {
		return
	}
	go sessions.RunJanitor(ctx, interval, logger)
}

package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-tracker/internal/events"
)

// DiagnosticsService writes dashboard events to the diagnostic log.
type DiagnosticsService struct {
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewDiagnosticsService creates the service.
func NewDiagnosticsService(dispatcher events.Dispatcher, logger *zap.Logger) *DiagnosticsService {
	return &DiagnosticsService{
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// RegisterHandlers subscribes to events.
func (s *DiagnosticsService) RegisterHandlers() {
	if s.dispatcher == nil {
		return
	}
	s.dispatcher.Subscribe(events.EventTicketsLoaded, s.handleInfo)
	s.dispatcher.Subscribe(events.EventTicketsLoadFailed, s.handleFailure)
	s.dispatcher.Subscribe(events.EventSearchApplied, s.handleDebug)
	s.dispatcher.Subscribe(events.EventTicketSelected, s.handleDebug)
	s.dispatcher.Subscribe(events.EventCommentsFetchFailed, s.handleFailure)
	s.dispatcher.Subscribe(events.EventStaleDetailDiscarded, s.handleInfo)
}

func (s *DiagnosticsService) handleInfo(_ context.Context, event events.Event) error {
	s.logger.Info(string(event.Type), eventFields(event)...)
	return nil
}

func (s *DiagnosticsService) handleDebug(_ context.Context, event events.Event) error {
	s.logger.Debug(string(event.Type), eventFields(event)...)
	return nil
}

func (s *DiagnosticsService) handleFailure(_ context.Context, event events.Event) error {
	s.logger.Warn(string(event.Type), eventFields(event)...)
	return nil
}

func eventFields(event events.Event) []zap.Field {
	fields := []zap.Field{
		zap.String("event_id", event.ID),
		zap.String("session_id", event.SessionID),
	}
	if event.TicketID != "" {
		fields = append(fields, zap.String("ticket_id", event.TicketID))
	}
	if event.Payload != nil {
		fields = append(fields, zap.Any("payload", event.Payload))
	}
	return fields
}

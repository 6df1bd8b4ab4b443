package service

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/events"
	"github.com/spec-kit/ticket-tracker/internal/repository"
	apperrors "github.com/spec-kit/ticket-tracker/pkg/util/errorutil"
)

// LoadStatus tracks the initial ticket fetch.
type LoadStatus string

const (
	LoadPending LoadStatus = "pending"
	LoadReady   LoadStatus = "ready"
	LoadFailed  LoadStatus = "failed"
)

// DetailPhase tracks the detail pane of the current selection.
type DetailPhase string

const (
	DetailIdle    DetailPhase = "idle"
	DetailLoading DetailPhase = "loading"
	DetailLoaded  DetailPhase = "loaded"
)

// Detail is the detail pane state for one selection.
type Detail struct {
	Phase      DetailPhase
	Generation uint64
	Ticket     domain.Ticket
	Comments   []domain.Comment
}

// State is a snapshot of a dashboard. Slices are shared with the dashboard
// but never mutated in place; updates replace them wholesale.
type State struct {
	SessionID  string
	Load       LoadStatus
	Tickets    []domain.Ticket
	Query      string
	Visible    []domain.Ticket
	SelectedID string
	Generation uint64
	Detail     Detail
}

// DashboardDependencies bundles collaborators for a dashboard.
type DashboardDependencies struct {
	Tickets    repository.TicketRepository
	Comments   repository.CommentRepository
	Dispatcher events.Dispatcher
	Logger     *zap.Logger
}

// Dashboard owns the state of one user's ticket view.
type Dashboard struct {
	mu         sync.Mutex
	state      State
	loadErr    error
	sessionID  string
	tickets    repository.TicketRepository
	comments   repository.CommentRepository
	dispatcher events.Dispatcher
	logger     *zap.Logger
}

// NewDashboard constructs an empty dashboard; call Load to populate it.
func NewDashboard(sessionID string, deps DashboardDependencies) *Dashboard {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Dashboard{
		state: State{
			SessionID: sessionID,
			Load:      LoadPending,
			Detail:    Detail{Phase: DetailIdle},
		},
		sessionID:  sessionID,
		tickets:    deps.Tickets,
		comments:   deps.Comments,
		dispatcher: deps.Dispatcher,
		logger:     logger.With(zap.String("session_id", sessionID)),
	}
}

// Load fetches all tickets and replaces the ticket set. On failure the
// dashboard is marked failed and the error is returned for the caller to log.
func (d *Dashboard) Load(ctx context.Context) error {
	tickets, err := d.tickets.List(ctx)
	if err != nil {
		d.mu.Lock()
		d.state.Load = LoadFailed
		d.loadErr = err
		d.state.Tickets = nil
		d.state.Visible = nil
		d.mu.Unlock()

		d.logger.Error("could not fetch ticket data", zap.Error(err))
		d.publish(ctx, events.Event{
			Type:    events.EventTicketsLoadFailed,
			Payload: events.FailurePayload{Error: err.Error()},
		})
		return err
	}

	unique, duplicates := uniqueTickets(tickets)
	if duplicates > 0 {
		d.logger.Warn("dropped tickets with duplicate ids", zap.Int("duplicates", duplicates))
	}

	d.mu.Lock()
	d.state.Load = LoadReady
	d.loadErr = nil
	d.state.Tickets = unique
	d.state.Visible = FilterTickets(unique, d.state.Query)
	d.mu.Unlock()

	d.publish(ctx, events.Event{
		Type:    events.EventTicketsLoaded,
		Payload: events.TicketsLoadedPayload{Count: len(unique), Duplicates: duplicates},
	})
	return nil
}

// Search recomputes the visible tickets for query. Selection and detail are untouched.
func (d *Dashboard) Search(ctx context.Context, query string) State {
	d.mu.Lock()
	d.state.Query = query
	d.state.Visible = FilterTickets(d.state.Tickets, query)
	snapshot := d.state
	d.mu.Unlock()

	d.publish(ctx, events.Event{
		Type: events.EventSearchApplied,
		Payload: events.SearchAppliedPayload{
			Query:   query,
			Matches: len(snapshot.Visible),
			Total:   len(snapshot.Tickets),
		},
	})
	return snapshot
}

// Select makes id the active ticket and loads its comments. A result is
// applied only while its selection is still the latest one; otherwise it is
// discarded and the newer selection's state is returned.
func (d *Dashboard) Select(ctx context.Context, id string) (State, error) {
	d.mu.Lock()
	ticket, ok := d.findLocked(id)
	if !ok {
		d.mu.Unlock()
		return State{}, apperrors.NewNotFound("ticket", map[string]any{"id": id})
	}
	d.state.Generation++
	generation := d.state.Generation
	d.state.SelectedID = ticket.ID
	d.state.Detail = Detail{Phase: DetailLoading, Generation: generation, Ticket: ticket}
	d.mu.Unlock()

	d.publish(ctx, events.Event{
		Type:     events.EventTicketSelected,
		TicketID: ticket.ID,
		Payload:  events.TicketSelectedPayload{Generation: generation, CommentIDs: len(ticket.CommentIDs)},
	})

	comments := []domain.Comment{}
	if ticket.HasComments() {
		fetched, err := d.comments.ListByIDs(ctx, ticket.CommentIDs)
		if err != nil {
			d.logger.Error("could not fetch comments", zap.String("ticket_id", ticket.ID), zap.Error(err))
			d.publish(ctx, events.Event{
				Type:     events.EventCommentsFetchFailed,
				TicketID: ticket.ID,
				Payload:  events.FailurePayload{Error: err.Error()},
			})
		} else {
			comments = fetched
		}
	}

	d.mu.Lock()
	current := d.state.Generation
	if current == generation {
		d.state.Detail = Detail{
			Phase:      DetailLoaded,
			Generation: generation,
			Ticket:     ticket,
			Comments:   comments,
		}
	}
	snapshot := d.state
	d.mu.Unlock()

	if current != generation {
		d.publish(ctx, events.Event{
			Type:     events.EventStaleDetailDiscarded,
			TicketID: ticket.ID,
			Payload:  events.StaleDetailPayload{Generation: generation, CurrentGeneration: current},
		})
	}
	return snapshot, nil
}

// SessionID returns the id of the session owning the dashboard.
func (d *Dashboard) SessionID() string {
	return d.sessionID
}

// LoadErr returns the error of the last failed load, or nil.
func (d *Dashboard) LoadErr() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.loadErr
}

// Snapshot returns the current state.
func (d *Dashboard) Snapshot() State {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.state
}

func (d *Dashboard) findLocked(id string) (domain.Ticket, bool) {
	for _, ticket := range d.state.Tickets {
		if ticket.ID == id {
			return ticket, true
		}
	}
	return domain.Ticket{}, false
}

func (d *Dashboard) publish(ctx context.Context, event events.Event) {
	if d.dispatcher == nil {
		return
	}
	event.SessionID = d.sessionID
	if err := d.dispatcher.Publish(ctx, event); err != nil {
		d.logger.Warn("event handler failed", zap.String("event_type", string(event.Type)), zap.Error(err))
	}
}

// uniqueTickets keeps the first ticket for each id.
func uniqueTickets(tickets []domain.Ticket) ([]domain.Ticket, int) {
	seen := make(map[string]struct{}, len(tickets))
	out := make([]domain.Ticket, 0, len(tickets))
	for _, ticket := range tickets {
		if _, ok := seen[ticket.ID]; ok {
			continue
		}
		seen[ticket.ID] = struct{}{}
		out = append(out, ticket)
	}
	return out, len(tickets) - len(out)
}

package view

import (
	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/service"
)

// EmptyReason tells apart the two ways the list can render no rows.
type EmptyReason string

const (
	EmptyNone      EmptyReason = ""
	EmptyNoTickets EmptyReason = "no_tickets"
	EmptyNoMatches EmptyReason = "no_matches"
)

const (
	MessageLoadingTickets = "Loading tickets..."
	MessageLoadFailed     = "Could not load ticket data. Check the server logs for details."
	MessageNoTickets      = "No tickets found in the record store."
	MessageNoMatches      = "No tickets match your search."
	MessageNoSummary      = "No Summary"
	LabelPending          = "Pending"
)

// ListView describes the ticket list.
type ListView struct {
	Query      string
	Loading    bool
	LoadFailed bool
	Rows       []RowView
	Empty      EmptyReason
	// Message is set whenever Rows is empty.
	Message string
}

// RowView describes one ticket row.
type RowView struct {
	ID       string
	Key      string
	Title    string
	Status   domain.StatusVariant
	Active   bool
	Timeline TimelineView
}

// CSSClass returns the classes of the row element.
func (r RowView) CSSClass() string {
	class := "ticket-item " + r.Status.CSSClass()
	if r.Active {
		class += " active"
	}
	return class
}

// TimelineView is the three-point timeline of a row.
type TimelineView struct {
	Start    string
	End      string
	Approval domain.Approval
}

// MarkerClass returns the class of the middle marker.
func (t TimelineView) MarkerClass() string {
	return t.Approval.CSSClass()
}

// RenderList derives the list view from dashboard state.
func RenderList(state service.State, f Formatter) ListView {
	view := ListView{Query: state.Query}

	switch state.Load {
	case service.LoadFailed:
		view.LoadFailed = true
		view.Message = MessageLoadFailed
		return view
	case service.LoadPending:
		view.Loading = true
		view.Message = MessageLoadingTickets
		return view
	}

	switch {
	case len(state.Tickets) == 0:
		view.Empty = EmptyNoTickets
		view.Message = MessageNoTickets
		return view
	case len(state.Visible) == 0:
		view.Empty = EmptyNoMatches
		view.Message = MessageNoMatches
		return view
	}

	view.Rows = make([]RowView, 0, len(state.Visible))
	for _, ticket := range state.Visible {
		view.Rows = append(view.Rows, renderRow(ticket, state.SelectedID, f))
	}
	return view
}

func renderRow(ticket domain.Ticket, selectedID string, f Formatter) RowView {
	title := ticket.Summary
	if title == "" {
		title = MessageNoSummary
	}
	end := LabelPending
	if ticket.IsResolved() {
		end = f.Date(ticket.ResolvedDate)
	}
	return RowView{
		ID:     ticket.ID,
		Key:    ticket.Key,
		Title:  title,
		Status: domain.VariantOf(ticket.Status),
		Active: selectedID != "" && ticket.ID == selectedID,
		Timeline: TimelineView{
			Start:    f.Date(ticket.CreatedDate),
			End:      end,
			Approval: ticket.Approval(),
		},
	}
}

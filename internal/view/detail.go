package view

import (
	"html/template"

	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/service"
)

const (
	MessageSelectTicket    = "Select a ticket to view its details."
	MessageLoadingComments = "Loading comments..."
	MessageNoComments      = "No comments found for this ticket."
	ValueNotAvailable      = "N/A"
	UnknownCommenter       = "Unknown"
)

// DetailView describes the detail pane.
type DetailView struct {
	Phase      service.DetailPhase
	Generation uint64
	// Placeholder replaces the pane while idle or loading.
	Placeholder  string
	TicketID     string
	Key          string
	Pills        []PillView
	UpdatedAgo   string
	Comments     []CommentView
	EmptyMessage string
}

// PillView is one status pill in the header.
type PillView struct {
	Label   string
	Value   string
	Variant domain.StatusVariant
}

// CSSClass returns the classes of the pill element.
func (p PillView) CSSClass() string {
	return "pill " + p.Variant.CSSClass()
}

// CommentView is one rendered comment.
type CommentView struct {
	Author   string
	When     string
	Body     string
	BodyHTML template.HTML
}

// RenderDetail derives the detail pane from dashboard state.
func RenderDetail(state service.State, f Formatter, md *Markdown) DetailView {
	detail := state.Detail
	view := DetailView{Phase: detail.Phase, Generation: detail.Generation}

	switch detail.Phase {
	case service.DetailLoading:
		view.Placeholder = MessageLoadingComments
		view.TicketID = detail.Ticket.ID
		return view
	case service.DetailLoaded:
	default:
		view.Phase = service.DetailIdle
		view.Placeholder = MessageSelectTicket
		return view
	}

	ticket := detail.Ticket
	view.TicketID = ticket.ID
	view.Key = ticket.Key
	view.Pills = []PillView{
		pill("Status", ticket.Status),
		pill("Compliance", ticket.ComplianceStatus),
		pill("Finance", ticket.FinanceStatus),
	}
	view.UpdatedAgo = f.Relative(ticket.UpdatedDate)

	view.Comments = make([]CommentView, 0, len(detail.Comments))
	for _, comment := range detail.Comments {
		author := comment.Commenter
		if author == "" {
			author = UnknownCommenter
		}
		view.Comments = append(view.Comments, CommentView{
			Author:   author,
			When:     f.DateTime(comment.Date),
			Body:     comment.Body,
			BodyHTML: md.Render(comment.Body),
		})
	}
	if len(view.Comments) == 0 {
		view.EmptyMessage = MessageNoComments
	}
	return view
}

func pill(label, value string) PillView {
	if value == "" {
		value = ValueNotAvailable
	}
	return PillView{Label: label, Value: value, Variant: domain.VariantOf(value)}
}

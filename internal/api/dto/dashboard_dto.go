package dto

import (
	"github.com/spec-kit/ticket-tracker/internal/view"
)

// StateResponse is the whole dashboard for a session.
type StateResponse struct {
	List   ListResponse   `json:"list"`
	Detail DetailResponse `json:"detail"`
}

// ListResponse mirrors the rendered ticket list.
type ListResponse struct {
	Query      string      `json:"query"`
	Loading    bool        `json:"loading"`
	LoadFailed bool        `json:"load_failed"`
	Empty      string      `json:"empty,omitempty"`
	Message    string      `json:"message,omitempty"`
	Tickets    []TicketRow `json:"tickets"`
}

// TicketRow is one list entry.
type TicketRow struct {
	ID       string         `json:"id"`
	Key      string         `json:"key"`
	Title    string         `json:"title"`
	Status   string         `json:"status_variant"`
	Active   bool           `json:"active"`
	Timeline TimelineStatus `json:"timeline"`
}

// TimelineStatus is the three-point timeline of a row.
type TimelineStatus struct {
	Start    string `json:"start"`
	End      string `json:"end"`
	Approval string `json:"approval"`
}

// DetailResponse mirrors the detail pane.
type DetailResponse struct {
	Phase        string            `json:"phase"`
	Generation   uint64            `json:"generation"`
	Placeholder  string            `json:"placeholder,omitempty"`
	TicketID     string            `json:"ticket_id,omitempty"`
	Key          string            `json:"key,omitempty"`
	Pills        []PillResponse    `json:"pills,omitempty"`
	UpdatedAgo   string            `json:"updated_ago,omitempty"`
	Comments     []CommentResponse `json:"comments"`
	EmptyMessage string            `json:"empty_message,omitempty"`
}

// PillResponse is one header pill.
type PillResponse struct {
	Label   string `json:"label"`
	Value   string `json:"value"`
	Variant string `json:"variant"`
}

// CommentResponse is one comment.
type CommentResponse struct {
	Author   string `json:"author"`
	When     string `json:"when"`
	Body     string `json:"body"`
	BodyHTML string `json:"body_html"`
}

// NewListResponse converts a list view.
func NewListResponse(list view.ListView) ListResponse {
	resp := ListResponse{
		Query:      list.Query,
		Loading:    list.Loading,
		LoadFailed: list.LoadFailed,
		Empty:      string(list.Empty),
		Message:    list.Message,
		Tickets:    make([]TicketRow, 0, len(list.Rows)),
	}
	for _, row := range list.Rows {
		resp.Tickets = append(resp.Tickets, TicketRow{
			ID:     row.ID,
			Key:    row.Key,
			Title:  row.Title,
			Status: string(row.Status),
			Active: row.Active,
			Timeline: TimelineStatus{
				Start:    row.Timeline.Start,
				End:      row.Timeline.End,
				Approval: string(row.Timeline.Approval),
			},
		})
	}
	return resp
}

// NewDetailResponse converts a detail view.
func NewDetailResponse(detail view.DetailView) DetailResponse {
	resp := DetailResponse{
		Phase:        string(detail.Phase),
		Generation:   detail.Generation,
		Placeholder:  detail.Placeholder,
		TicketID:     detail.TicketID,
		Key:          detail.Key,
		UpdatedAgo:   detail.UpdatedAgo,
		Comments:     make([]CommentResponse, 0, len(detail.Comments)),
		EmptyMessage: detail.EmptyMessage,
	}
	for _, p := range detail.Pills {
		resp.Pills = append(resp.Pills, PillResponse{Label: p.Label, Value: p.Value, Variant: string(p.Variant)})
	}
	for _, c := range detail.Comments {
		resp.Comments = append(resp.Comments, CommentResponse{
			Author:   c.Author,
			When:     c.When,
			Body:     c.Body,
			BodyHTML: string(c.BodyHTML),
		})
	}
	return resp
}

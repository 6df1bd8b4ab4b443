package repository

import (
	"sort"
	"strconv"
	"strings"

	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/recordstore"
)

// Field names of the tickets table.
const (
	FieldJiraKey          = "Jira Key"
	FieldJiraSummary      = "Jira Summary"
	FieldStatus           = "Status"
	FieldCreatedDate      = "Created Date"
	FieldUpdatedDate      = "Updated Date"
	FieldResolvedDate     = "Resolved Date"
	FieldComplianceStatus = "Compliance Status"
	FieldFinanceStatus    = "Finance Status"
	FieldComments         = "Comments"
)

// Field names of the comments table.
const (
	FieldCommenter = "Commenter"
	FieldDate      = "Date"
	FieldComment   = "Comment"
)

// MapTicket converts a raw ticket record. Absent fields become zero values.
func MapTicket(rec recordstore.Record) domain.Ticket {
	return domain.Ticket{
		ID:               rec.ID,
		Key:              stringField(rec.Fields, FieldJiraKey),
		Summary:          stringField(rec.Fields, FieldJiraSummary),
		Status:           stringField(rec.Fields, FieldStatus),
		CreatedDate:      stringField(rec.Fields, FieldCreatedDate),
		UpdatedDate:      stringField(rec.Fields, FieldUpdatedDate),
		ResolvedDate:     stringField(rec.Fields, FieldResolvedDate),
		ComplianceStatus: stringField(rec.Fields, FieldComplianceStatus),
		FinanceStatus:    stringField(rec.Fields, FieldFinanceStatus),
		CommentIDs:       stringsField(rec.Fields, FieldComments),
	}
}

// MapTickets converts records preserving their order.
func MapTickets(recs []recordstore.Record) []domain.Ticket {
	tickets := make([]domain.Ticket, 0, len(recs))
	for _, rec := range recs {
		tickets = append(tickets, MapTicket(rec))
	}
	return tickets
}

// MapComment converts a raw comment record.
func MapComment(rec recordstore.Record) domain.Comment {
	comment := domain.Comment{
		ID:        rec.ID,
		Commenter: stringField(rec.Fields, FieldCommenter),
		Date:      stringField(rec.Fields, FieldDate),
		Body:      stringField(rec.Fields, FieldComment),
	}
	if ts, ok := domain.ParseTimestamp(comment.Date); ok {
		comment.At = ts.Time
	}
	return comment
}

// MapComments converts records and sorts them ascending by timestamp.
// Comments with unparsable dates carry the zero time and sort first.
func MapComments(recs []recordstore.Record) []domain.Comment {
	comments := make([]domain.Comment, 0, len(recs))
	for _, rec := range recs {
		comments = append(comments, MapComment(rec))
	}
	SortComments(comments)
	return comments
}

// SortComments orders comments ascending by timestamp; ties keep input order.
func SortComments(comments []domain.Comment) {
	sort.SliceStable(comments, func(i, j int) bool {
		return comments[i].At.Before(comments[j].At)
	})
}

func stringField(fields map[string]any, name string) string {
	switch v := fields[name].(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case []any:
		return strings.Join(stringsOf(v), ", ")
	default:
		return ""
	}
}

func stringsField(fields map[string]any, name string) []string {
	switch v := fields[name].(type) {
	case []any:
		return stringsOf(v)
	case []string:
		return append([]string(nil), v...)
	case string:
		if v == "" {
			return nil
		}
		return []string{v}
	default:
		return nil
	}
}

func stringsOf(values []any) []string {
	out := make([]string, 0, len(values))
	for _, item := range values {
		if s, ok := item.(string); ok {
			out = append(out, s)
		}
	}
	return out
}

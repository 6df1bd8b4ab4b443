package repository

import (
	"context"

	"github.com/spec-kit/ticket-tracker/internal/domain"
	"github.com/spec-kit/ticket-tracker/internal/recordstore"
)

// RecordSource is the subset of the record store client used by repositories.
type RecordSource interface {
	FetchAll(ctx context.Context) ([]recordstore.Record, error)
	FetchRelated(ctx context.Context, ids []string) ([]recordstore.Record, error)
}

// TicketRepository loads the ticket set.
type TicketRepository interface {
	List(ctx context.Context) ([]domain.Ticket, error)
}

// CommentRepository loads comment threads by record identifier.
type CommentRepository interface {
	ListByIDs(ctx context.Context, ids []string) ([]domain.Comment, error)
}

type ticketRepository struct {
	source RecordSource
}

// NewTicketRepository instantiates repository.
func NewTicketRepository(source RecordSource) TicketRepository {
	return &ticketRepository{source: source}
}

func (r *ticketRepository) List(ctx context.Context) ([]domain.Ticket, error) {
	recs, err := r.source.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return MapTickets(recs), nil
}

type commentRepository struct {
	source RecordSource
}

// NewCommentRepository instantiates repository.
func NewCommentRepository(source RecordSource) CommentRepository {
	return &commentRepository{source: source}
}

func (r *commentRepository) ListByIDs(ctx context.Context, ids []string) ([]domain.Comment, error) {
	if len(ids) == 0 {
		return []domain.Comment{}, nil
	}
	recs, err := r.source.FetchRelated(ctx, ids)
	if err != nil {
		return nil, err
	}
	return MapComments(recs), nil
}

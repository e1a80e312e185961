package queries

import (
	"context"

	"github.com/google/uuid"

	"github.com/maysqunaibi/strollers-mvp/internal/infra"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/errs"
)

var ErrOrderNotFound = errs.New("order not found")

type OrderQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	GetByPaymentID(ctx context.Context, paymentID string) (*OrderView, error)
	List(ctx context.Context, filter OrderListFilter) ([]*OrderView, error)
	ListActive(ctx context.Context) ([]*OrderView, error)
}

type OrderReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*OrderView, error)
	FindByPaymentID(ctx context.Context, paymentID string) (*OrderView, error)
	List(ctx context.Context, filter OrderListFilter) ([]*OrderView, error)
	ListActive(ctx context.Context) ([]*OrderView, error)
}

type orderQueriesImpl struct {
	readStore OrderReadStore
}

func NewOrderQueries(readStore OrderReadStore) OrderQueries {
	return &orderQueriesImpl{readStore: readStore}
}

func (q *orderQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*OrderView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *orderQueriesImpl) GetByPaymentID(ctx context.Context, paymentID string) (*OrderView, error) {
	view, err := q.readStore.FindByPaymentID(ctx, paymentID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *orderQueriesImpl) List(ctx context.Context, filter OrderListFilter) ([]*OrderView, error) {
	return q.readStore.List(ctx, filter)
}

// ListActive returns orders with a cart currently out of its slot, the
// default console view for staff watching the floor.
func (q *orderQueriesImpl) ListActive(ctx context.Context) ([]*OrderView, error) {
	return q.readStore.ListActive(ctx)
}

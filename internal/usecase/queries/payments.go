package queries

import (
	"context"

	"github.com/maysqunaibi/strollers-mvp/internal/infra"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/errs"
)

var ErrPaymentNotFound = errs.New("payment not found")

type PaymentQueries interface {
	GetByID(ctx context.Context, id string) (*PaymentView, error)
	ListRecent(ctx context.Context, limit int32) ([]*PaymentView, error)
}

type PaymentReadStore interface {
	FindByID(ctx context.Context, id string) (*PaymentView, error)
	ListRecent(ctx context.Context, limit int32) ([]*PaymentView, error)
}

type paymentQueriesImpl struct {
	readStore PaymentReadStore
}

func NewPaymentQueries(readStore PaymentReadStore) PaymentQueries {
	return &paymentQueriesImpl{readStore: readStore}
}

func (q *paymentQueriesImpl) GetByID(ctx context.Context, id string) (*PaymentView, error) {
	view, err := q.readStore.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *paymentQueriesImpl) ListRecent(ctx context.Context, limit int32) ([]*PaymentView, error) {
	return q.readStore.ListRecent(ctx, limit)
}

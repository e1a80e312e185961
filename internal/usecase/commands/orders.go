package commands

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/maysqunaibi/strollers-mvp/internal/domain/order"
	"github.com/maysqunaibi/strollers-mvp/internal/infra"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/clock"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/errs"
)

var (
	ErrOrderNotFound          = errs.New("order not found")
	ErrInvalidOrderTransition = errs.New("order cannot change to the requested status")
)

type OrderCommands interface {
	MarkReturned(ctx context.Context, id uuid.UUID) error
	MarkOverdue(ctx context.Context, id uuid.UUID) error
	Cancel(ctx context.Context, id uuid.UUID) error
}

type orderCommandsImpl struct {
	orders OrderRepository
	db     TxBeginner
	clock  clock.Clock
}

func NewOrderCommands(orders OrderRepository, db TxBeginner, clock clock.Clock) OrderCommands {
	return &orderCommandsImpl{orders: orders, db: db, clock: clock}
}

func (c *orderCommandsImpl) MarkReturned(ctx context.Context, id uuid.UUID) error {
	return c.mutate(ctx, id, func(o *order.Order) error {
		return o.MarkReturned(c.clock.Now())
	})
}

func (c *orderCommandsImpl) MarkOverdue(ctx context.Context, id uuid.UUID) error {
	return c.mutate(ctx, id, func(o *order.Order) error {
		return o.MarkOverdue()
	})
}

func (c *orderCommandsImpl) Cancel(ctx context.Context, id uuid.UUID) error {
	return c.mutate(ctx, id, func(o *order.Order) error {
		return o.Cancel()
	})
}

// mutate loads the order under FOR UPDATE, applies one state-machine
// transition and persists it, so concurrent console actions on the same
// order serialize instead of clobbering each other.
func (c *orderCommandsImpl) mutate(ctx context.Context, id uuid.UUID, apply func(*order.Order) error) error {
	tx, err := c.db.Begin(ctx)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	defer rollbackQuietly(ctx, tx)

	o, err := c.orders.FindByIDForUpdate(ctx, tx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return errs.Mark(err, ErrOrderNotFound)
		}
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := apply(o); err != nil {
		if errors.Is(err, order.ErrInvalidTransition) {
			return errs.Mark(err, ErrInvalidOrderTransition)
		}
		return errs.Mark(err, ErrDomainValidation)
	}

	if err := c.orders.Update(ctx, tx, o); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if err := tx.Commit(ctx); err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return nil
}

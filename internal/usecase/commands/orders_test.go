//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"github.com/maysqunaibi/strollers-mvp/internal/domain/order"
	"github.com/maysqunaibi/strollers-mvp/internal/infra"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/clock"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/errs"
	"github.com/maysqunaibi/strollers-mvp/internal/usecase/commands"
	"github.com/maysqunaibi/strollers-mvp/tests/common/builder"
	commandsmock "github.com/maysqunaibi/strollers-mvp/tests/mock/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OrderCommandsTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	orders   *commandsmock.MockOrderRepository
	beginner *commandsmock.MockTxBeginner
	tx       *stubTx
	clock    *clock.MockClock
	cmds     commands.OrderCommands
}

func (s *OrderCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.orders = commandsmock.NewMockOrderRepository(s.ctrl)
	s.beginner = commandsmock.NewMockTxBeginner(s.ctrl)
	s.tx = &stubTx{}
	s.clock = clock.NewMockClock(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	s.cmds = commands.NewOrderCommands(s.orders, s.beginner, s.clock)
}

func (s *OrderCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestOrderCommandsSuite(t *testing.T) {
	suite.Run(t, new(OrderCommandsTestSuite))
}

func (s *OrderCommandsTestSuite) expectLoad(status order.Status) (uuid.UUID, *order.Order) {
	b := builder.NewOrderBuilder()
	b.Status = status.String()
	o := b.BuildReconstructed(s.clock.Now())

	s.beginner.EXPECT().Begin(gomock.Any()).Return(s.tx, nil)
	s.orders.EXPECT().FindByIDForUpdate(gomock.Any(), s.tx, o.ID()).Return(o, nil)
	return o.ID(), o
}

func (s *OrderCommandsTestSuite) TestMarkReturned() {
	id, o := s.expectLoad(order.StatusInUse)
	s.orders.EXPECT().Update(gomock.Any(), s.tx, o).Return(nil)

	s.Require().NoError(s.cmds.MarkReturned(context.Background(), id))
	s.Equal(order.StatusReturned, o.Status())
	s.Require().NotNil(o.ReturnedAt())
	s.Equal(s.clock.Now(), *o.ReturnedAt())
	s.True(s.tx.committed)
}

func (s *OrderCommandsTestSuite) TestMarkOverdue() {
	id, o := s.expectLoad(order.StatusInUse)
	s.orders.EXPECT().Update(gomock.Any(), s.tx, o).Return(nil)

	s.Require().NoError(s.cmds.MarkOverdue(context.Background(), id))
	s.Equal(order.StatusOverdue, o.Status())
}

func (s *OrderCommandsTestSuite) TestCancel() {
	id, o := s.expectLoad(order.StatusPendingPayment)
	s.orders.EXPECT().Update(gomock.Any(), s.tx, o).Return(nil)

	s.Require().NoError(s.cmds.Cancel(context.Background(), id))
	s.Equal(order.StatusCanceled, o.Status())
}

func (s *OrderCommandsTestSuite) TestInvalidTransition() {
	id, o := s.expectLoad(order.StatusReturned)

	err := s.cmds.Cancel(context.Background(), id)
	s.Require().Error(err)
	s.True(errs.Is(err, commands.ErrInvalidOrderTransition))
	s.Equal(order.StatusReturned, o.Status())
	s.False(s.tx.committed)
}

func (s *OrderCommandsTestSuite) TestOrderNotFound() {
	id := uuid.New()
	s.beginner.EXPECT().Begin(gomock.Any()).Return(s.tx, nil)
	s.orders.EXPECT().FindByIDForUpdate(gomock.Any(), s.tx, id).
		Return(nil, infra.WrapRepoErr("order not found", nil, infra.KindNotFound))

	err := s.cmds.MarkReturned(context.Background(), id)
	s.Require().Error(err)
	s.True(errs.Is(err, commands.ErrOrderNotFound))
}

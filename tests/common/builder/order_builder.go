//go:build unit

package builder

import (
	"time"

	"github.com/maysqunaibi/strollers-mvp/internal/domain/order"
	"github.com/maysqunaibi/strollers-mvp/internal/usecase/queries"

	"github.com/google/uuid"
)

type OrderBuilder struct {
	PaymentID     string
	DeviceNo      string
	CartNo        *string
	CartIndex     int
	SiteNo        *string
	AmountHalalas int64
	Status        string
}

func NewOrderBuilder() *OrderBuilder {
	cartNo := "C-012"
	siteNo := "S-001"
	return &OrderBuilder{
		PaymentID:     "pay_" + uuid.NewString(),
		DeviceNo:      "D-100",
		CartNo:        &cartNo,
		CartIndex:     3,
		SiteNo:        &siteNo,
		AmountHalalas: 1500,
		Status:        order.StatusPendingPayment.String(),
	}
}

func (b *OrderBuilder) With(mutate func(*OrderBuilder)) *OrderBuilder {
	mutate(b)
	return b
}

func (b *OrderBuilder) BuildDomain() (*order.Order, error) {
	return order.NewOrder(b.PaymentID, b.DeviceNo, b.CartNo, b.CartIndex, b.SiteNo, b.AmountHalalas)
}

// BuildReconstructed returns an order rehydrated as if loaded from the
// database in the builder's status, with timestamps consistent with it.
func (b *OrderBuilder) BuildReconstructed(now time.Time) *order.Order {
	status, err := order.NewStatus(b.Status)
	if err != nil {
		panic(err)
	}

	var requestedAt, confirmedAt, returnedAt *time.Time
	switch status {
	case order.StatusUnlocking, order.StatusUnlockFailed:
		t := now.Add(-10 * time.Second)
		requestedAt = &t
	case order.StatusInUse, order.StatusOverdue:
		rt := now.Add(-time.Minute)
		ct := now.Add(-time.Minute + 2*time.Second)
		requestedAt, confirmedAt = &rt, &ct
	case order.StatusReturned:
		rt := now.Add(-time.Hour)
		ct := now.Add(-time.Hour + 2*time.Second)
		ret := now.Add(-time.Minute)
		requestedAt, confirmedAt, returnedAt = &rt, &ct, &ret
	}

	return order.ReconstructOrder(
		uuid.New(), b.PaymentID, b.DeviceNo, b.CartNo, b.CartIndex, b.SiteNo, b.AmountHalalas,
		status, nil, nil,
		requestedAt, confirmedAt, returnedAt,
		now.Add(-2*time.Hour), now,
	)
}

func (b *OrderBuilder) BuildView(now time.Time) *queries.OrderView {
	return &queries.OrderView{
		ID:            uuid.New(),
		PaymentID:     b.PaymentID,
		SiteNo:        b.SiteNo,
		DeviceNo:      b.DeviceNo,
		CartNo:        b.CartNo,
		CartIndex:     b.CartIndex,
		AmountHalalas: b.AmountHalalas,
		Status:        b.Status,
		CreatedAt:     now.Add(-time.Hour),
		UpdatedAt:     now,
	}
}

package order

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidStatus      = errors.New("invalid order status")
	ErrInvalidTransition  = errors.New("invalid order status transition")
	ErrMissingPaymentID   = errors.New("payment id is required")
	ErrMissingDeviceNo    = errors.New("device number is required")
	ErrInvalidCartIndex   = errors.New("cart index must be non-negative")
	ErrInvalidAmount      = errors.New("amount must be positive")
	ErrUnlockNotRequested = errors.New("unlock has not been requested")
)

// Order is the rental transaction tying a payment to a hardware unlock
// outcome. It is the only place order status may be mutated; every
// transition is checked against the state machine and timestamps are
// append-only (never cleared once set).
type Order struct {
	id                uuid.UUID
	paymentID         string
	siteNo            *string
	deviceNo          string
	cartNo            *string
	cartIndex         int
	amountHalalas     int64
	status            Status
	vendorCode        *string
	vendorMsg         *string
	unlockRequestedAt *time.Time
	unlockConfirmedAt *time.Time
	returnedAt        *time.Time
	createdAt         time.Time
	updatedAt         time.Time
}

func NewOrder(paymentID, deviceNo string, cartNo *string, cartIndex int, siteNo *string, amountHalalas int64) (*Order, error) {
	if paymentID == "" {
		return nil, ErrMissingPaymentID
	}
	if deviceNo == "" {
		return nil, ErrMissingDeviceNo
	}
	if cartIndex < 0 {
		return nil, ErrInvalidCartIndex
	}
	if amountHalalas <= 0 {
		return nil, ErrInvalidAmount
	}

	return &Order{
		id:            uuid.New(),
		paymentID:     paymentID,
		siteNo:        siteNo,
		deviceNo:      deviceNo,
		cartNo:        cartNo,
		cartIndex:     cartIndex,
		amountHalalas: amountHalalas,
		status:        StatusPendingPayment,
	}, nil
}

func ReconstructOrder(
	id uuid.UUID,
	paymentID, deviceNo string,
	cartNo *string,
	cartIndex int,
	siteNo *string,
	amountHalalas int64,
	status Status,
	vendorCode, vendorMsg *string,
	unlockRequestedAt, unlockConfirmedAt, returnedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Order {
	return &Order{
		id:                id,
		paymentID:         paymentID,
		siteNo:            siteNo,
		deviceNo:          deviceNo,
		cartNo:            cartNo,
		cartIndex:         cartIndex,
		amountHalalas:     amountHalalas,
		status:            status,
		vendorCode:        vendorCode,
		vendorMsg:         vendorMsg,
		unlockRequestedAt: unlockRequestedAt,
		unlockConfirmedAt: unlockConfirmedAt,
		returnedAt:        returnedAt,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

func (o *Order) transition(next Status) error {
	if !o.status.CanTransitionTo(next) {
		return ErrInvalidTransition
	}
	o.status = next
	return nil
}

// BeginUnlock records that payment was verified paid and an unlock is
// about to be issued. Also the retry path out of unlock_failed.
func (o *Order) BeginUnlock(now time.Time) error {
	if err := o.transition(StatusUnlocking); err != nil {
		return err
	}
	t := now
	o.unlockRequestedAt = &t
	return nil
}

// ReissueUnlock refreshes the request timestamp on an order already in
// unlocking whose earlier request went stale without a recorded result.
func (o *Order) ReissueUnlock(now time.Time) error {
	if o.status != StatusUnlocking {
		return ErrInvalidTransition
	}
	if o.unlockRequestedAt == nil {
		return ErrUnlockNotRequested
	}
	t := now
	o.unlockRequestedAt = &t
	return nil
}

// ConfirmUnlock records the vendor's acknowledgement. Only valid while
// unlocking, which in turn requires the payment to have been verified
// paid; unlockConfirmedAt is therefore set only for paid orders.
func (o *Order) ConfirmUnlock(now time.Time, vendorCode, vendorMsg string) error {
	if o.unlockRequestedAt == nil {
		return ErrUnlockNotRequested
	}
	if err := o.transition(StatusInUse); err != nil {
		return err
	}
	t := now
	o.unlockConfirmedAt = &t
	o.vendorCode = &vendorCode
	o.vendorMsg = &vendorMsg
	return nil
}

func (o *Order) FailUnlock(vendorCode, vendorMsg string) error {
	if err := o.transition(StatusUnlockFailed); err != nil {
		return err
	}
	o.vendorCode = &vendorCode
	o.vendorMsg = &vendorMsg
	return nil
}

func (o *Order) MarkReturned(now time.Time) error {
	if err := o.transition(StatusReturned); err != nil {
		return err
	}
	t := now
	o.returnedAt = &t
	return nil
}

func (o *Order) MarkOverdue() error {
	return o.transition(StatusOverdue)
}

// Cancel is operator-initiated and only allowed before payment completes.
func (o *Order) Cancel() error {
	return o.transition(StatusCanceled)
}

func (o *Order) IsUnlockConfirmed() bool {
	return o.unlockConfirmedAt != nil
}

func (o *Order) ID() uuid.UUID                 { return o.id }
func (o *Order) PaymentID() string             { return o.paymentID }
func (o *Order) SiteNo() *string               { return o.siteNo }
func (o *Order) DeviceNo() string              { return o.deviceNo }
func (o *Order) CartNo() *string               { return o.cartNo }
func (o *Order) CartIndex() int                { return o.cartIndex }
func (o *Order) AmountHalalas() int64          { return o.amountHalalas }
func (o *Order) Status() Status                { return o.status }
func (o *Order) VendorCode() *string           { return o.vendorCode }
func (o *Order) VendorMsg() *string            { return o.vendorMsg }
func (o *Order) UnlockRequestedAt() *time.Time { return o.unlockRequestedAt }
func (o *Order) UnlockConfirmedAt() *time.Time { return o.unlockConfirmedAt }
func (o *Order) ReturnedAt() *time.Time        { return o.returnedAt }
func (o *Order) CreatedAt() time.Time          { return o.createdAt }
func (o *Order) UpdatedAt() time.Time          { return o.updatedAt }

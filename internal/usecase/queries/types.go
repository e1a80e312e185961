package queries

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// OrderView represents read-optimized order data for the console.
type OrderView struct {
	ID                uuid.UUID  `json:"id"`
	PaymentID         string     `json:"payment_id"`
	SiteNo            *string    `json:"site_no,omitempty"`
	DeviceNo          string     `json:"device_no"`
	CartNo            *string    `json:"cart_no,omitempty"`
	CartIndex         int        `json:"cart_index"`
	AmountHalalas     int64      `json:"amount_halalas"`
	Status            string     `json:"status"`
	VendorCode        *string    `json:"vendor_code,omitempty"`
	VendorMsg         *string    `json:"vendor_msg,omitempty"`
	UnlockRequestedAt *time.Time `json:"unlock_requested_at,omitempty"`
	UnlockConfirmedAt *time.Time `json:"unlock_confirmed_at,omitempty"`
	ReturnedAt        *time.Time `json:"returned_at,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// PaymentView represents the locally recorded snapshot of a provider
// payment. Raw carries the provider's original response body.
type PaymentView struct {
	ID            string          `json:"id"`
	Status        string          `json:"status"`
	Mode          string          `json:"mode"`
	Scheme        *string         `json:"scheme,omitempty"`
	AmountHalalas int64           `json:"amount_halalas"`
	Raw           json.RawMessage `json:"raw,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// PackageView represents a rental pricing package shown on the
// selection screen.
type PackageView struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	AmountHalalas   int64     `json:"amount_halalas"`
	DurationMinutes int32     `json:"duration_minutes"`
	SortOrder       int32     `json:"sort_order"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// AuthorizedOperatorView represents read-optimized operator data with
// authorization info.
type AuthorizedOperatorView struct {
	ID          uuid.UUID  `json:"id"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
}

// OrderListFilter narrows console order listings. Zero values mean no
// restriction; Limit falls back to a server-side default.
type OrderListFilter struct {
	Status   *string
	DeviceNo *string
	Limit    int32
}

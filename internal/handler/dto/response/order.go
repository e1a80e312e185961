package response

import (
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"

	"github.com/maysqunaibi/strollers-mvp/internal/usecase/queries"
)

type OrderResponse struct {
	ID                uuid.UUID  `json:"id"`
	PaymentID         string     `json:"paymentId"`
	SiteNo            *string    `json:"siteNo,omitempty"`
	DeviceNo          string     `json:"deviceNo"`
	CartNo            *string    `json:"cartNo,omitempty"`
	CartIndex         int        `json:"cartIndex"`
	AmountHalalas     int64      `json:"amountHalalas"`
	Status            string     `json:"status"`
	VendorCode        *string    `json:"vendorCode,omitempty"`
	VendorMsg         *string    `json:"vendorMsg,omitempty"`
	UnlockRequestedAt *time.Time `json:"unlockRequestedAt,omitempty"`
	UnlockConfirmedAt *time.Time `json:"unlockConfirmedAt,omitempty"`
	ReturnedAt        *time.Time `json:"returnedAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

func FromOrderView(view *queries.OrderView) *OrderResponse {
	var resp OrderResponse
	// Field names line up one to one; copier keeps it that way.
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromOrderViews(views []*queries.OrderView) []*OrderResponse {
	out := make([]*OrderResponse, 0, len(views))
	for _, v := range views {
		out = append(out, FromOrderView(v))
	}
	return out
}

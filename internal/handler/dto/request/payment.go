package request

import (
	"github.com/maysqunaibi/strollers-mvp/internal/usecase/commands"
)

type ConfirmAndUnlockRequest struct {
	PaymentID     string  `json:"paymentId" binding:"required"`
	DeviceNo      string  `json:"deviceNo" binding:"required"`
	CartNo        *string `json:"cartNo,omitempty"`
	CartIndex     int     `json:"cartIndex" binding:"min=0"`
	SiteNo        *string `json:"siteNo,omitempty"`
	AmountHalalas int64   `json:"amountHalalas" binding:"required,gt=0"`
}

func (r *ConfirmAndUnlockRequest) ToParams() commands.ConfirmAndUnlockParams {
	return commands.ConfirmAndUnlockParams{
		PaymentID:     r.PaymentID,
		DeviceNo:      r.DeviceNo,
		CartNo:        r.CartNo,
		CartIndex:     r.CartIndex,
		SiteNo:        r.SiteNo,
		AmountHalalas: r.AmountHalalas,
	}
}

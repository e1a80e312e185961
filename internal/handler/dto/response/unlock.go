package response

import (
	"github.com/google/uuid"

	"github.com/maysqunaibi/strollers-mvp/internal/usecase/commands"
)

// UnlockResponse is the composite confirm-and-unlock envelope. The outer
// code reports payment verification; data.vendor reports the hardware
// half. Clients must check both before treating the cart as released.
type UnlockResponse struct {
	Code string     `json:"code"`
	Data UnlockData `json:"data"`
	Msg  string     `json:"msg"`
}

type UnlockData struct {
	Vendor      VendorResult `json:"vendor"`
	OrderID     uuid.UUID    `json:"orderId"`
	OrderStatus string       `json:"orderStatus"`
	Replayed    bool         `json:"replayed,omitempty"`
}

type VendorResult struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}

func FromUnlockOutcome(o *commands.UnlockOutcome) *UnlockResponse {
	return &UnlockResponse{
		Code: o.Code,
		Msg:  o.Msg,
		Data: UnlockData{
			Vendor: VendorResult{
				Code: o.VendorCode,
				Msg:  o.VendorMsg,
			},
			OrderID:     o.OrderID,
			OrderStatus: o.OrderStatus.String(),
			Replayed:    o.Replayed,
		},
	}
}

// ReturnResponse is what the return page polls for after the provider
// redirect.
type ReturnResponse struct {
	State   string          `json:"state"`
	Message string          `json:"message,omitempty"`
	Unlock  *UnlockResponse `json:"unlock,omitempty"`
}

func FromReturnResult(r *commands.ReturnResult) *ReturnResponse {
	resp := &ReturnResponse{
		State:   r.State,
		Message: r.Message,
	}
	if r.Outcome != nil {
		resp.Unlock = FromUnlockOutcome(r.Outcome)
	}
	return resp
}

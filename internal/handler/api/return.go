package api

import (
	"net/http"

	resdto "github.com/maysqunaibi/strollers-mvp/internal/handler/dto/response"
	"github.com/maysqunaibi/strollers-mvp/internal/handler/httperr"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/cookie"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/errs"
	"github.com/maysqunaibi/strollers-mvp/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

// ReturnHandler serves the landing endpoint the payment provider
// redirects back to. It trusts nothing from the query string except the
// payment id, which the orchestrator re-verifies server-side.
type ReturnHandler struct {
	cmds commands.ReturnCommands
}

func NewReturnHandler(cmds commands.ReturnCommands) *ReturnHandler {
	return &ReturnHandler{cmds: cmds}
}

// @Summary Payment return landing
// @Description Resume the rental after the provider redirect: verify the payment and unlock the reserved cart
// @Tags rental
// @Produce json
// @Param id query string false "Provider payment ID"
// @Param payment_id query string false "Provider payment ID (alternate parameter name)"
// @Success 200 {object} resdto.ReturnResponse
// @Failure 400 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /pay/return [get]
func (h *ReturnHandler) Return(c *gin.Context) {
	// Providers differ on the redirect parameter name.
	paymentID := c.Query("id")
	if paymentID == "" {
		paymentID = c.Query("payment_id")
	}
	if paymentID == "" {
		c.JSON(http.StatusOK, resdto.ReturnResponse{
			State:   commands.ReturnStateError,
			Message: "Missing payment id",
		})
		return
	}

	sessionID := cookie.GetSessionID(c)
	if sessionID == "" {
		c.JSON(http.StatusOK, resdto.ReturnResponse{
			State:   commands.ReturnStateError,
			Message: "Missing selection data",
		})
		return
	}

	result, err := h.cmds.CompleteReturn(c.Request.Context(), sessionID, paymentID)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrProviderUnavailable):
			httperr.AbortWithError(c, http.StatusBadGateway, err, "Payment provider unavailable", nil)
		case errs.Is(err, commands.ErrVendorUnavailable):
			httperr.AbortWithError(c, http.StatusBadGateway, err, "Unlock service unavailable", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromReturnResult(result))
}

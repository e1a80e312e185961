package api

import (
	"net/http"
	"strconv"

	reqdto "github.com/maysqunaibi/strollers-mvp/internal/handler/dto/request"
	resdto "github.com/maysqunaibi/strollers-mvp/internal/handler/dto/response"
	"github.com/maysqunaibi/strollers-mvp/internal/handler/httperr"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/errs"
	"github.com/maysqunaibi/strollers-mvp/internal/usecase/commands"
	"github.com/maysqunaibi/strollers-mvp/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	cmds commands.PaymentCommands
	q    queries.PaymentQueries
}

func NewPaymentHandler(cmds commands.PaymentCommands, q queries.PaymentQueries) *PaymentHandler {
	return &PaymentHandler{cmds: cmds, q: q}
}

// @Summary Confirm payment and unlock cart
// @Description Verify the payment with the provider and release the selected cart. Safe to retry; at most one unlock is issued per payment.
// @Tags payments
// @Accept json
// @Produce json
// @Param request body reqdto.ConfirmAndUnlockRequest true "Payment and cart selection"
// @Success 200 {object} resdto.UnlockResponse
// @Failure 400 {object} httperr.Response
// @Failure 502 {object} httperr.Response
// @Router /payments/confirm-and-unlock [post]
func (h *PaymentHandler) ConfirmAndUnlock(c *gin.Context) {
	var req reqdto.ConfirmAndUnlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	outcome, err := h.cmds.ConfirmAndUnlock(c.Request.Context(), req.ToParams())
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		case errs.Is(err, commands.ErrProviderUnavailable):
			httperr.AbortWithError(c, http.StatusBadGateway, err, "Payment provider unavailable", nil)
		case errs.Is(err, commands.ErrVendorUnavailable):
			httperr.AbortWithError(c, http.StatusBadGateway, err, "Unlock service unavailable", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromUnlockOutcome(outcome))
}

// @Summary Get a recorded payment
// @Description Get the locally recorded snapshot of a provider payment
// @Tags payments
// @Security BearerAuth
// @Produce json
// @Param id path string true "Provider payment ID"
// @Success 200 {object} resdto.PaymentResponse
// @Failure 404 {object} httperr.Response
// @Router /payments/{id} [get]
func (h *PaymentHandler) Get(c *gin.Context) {
	view, err := h.q.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errs.Is(err, queries.ErrPaymentNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Payment not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load payment", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromPaymentView(view))
}

// @Summary List recent payments
// @Description List recently recorded payments, newest first
// @Tags payments
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Max rows" default(50)
// @Success 200 {array} resdto.PaymentResponse
// @Router /payments [get]
func (h *PaymentHandler) List(c *gin.Context) {
	limit := int64(0)
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || parsed < 0 {
			httperr.AbortWithError(c, http.StatusBadRequest, errs.New("invalid limit"), "Invalid limit", nil)
			return
		}
		limit = parsed
	}

	views, err := h.q.ListRecent(c.Request.Context(), int32(limit))
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list payments", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromPaymentViews(views))
}

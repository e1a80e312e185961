package api

import (
	"context"
	"net/http"
	"strconv"

	resdto "github.com/maysqunaibi/strollers-mvp/internal/handler/dto/response"
	"github.com/maysqunaibi/strollers-mvp/internal/handler/httperr"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/errs"
	"github.com/maysqunaibi/strollers-mvp/internal/usecase/commands"
	"github.com/maysqunaibi/strollers-mvp/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrderHandler struct {
	cmds commands.OrderCommands
	q    queries.OrderQueries
}

func NewOrderHandler(cmds commands.OrderCommands, q queries.OrderQueries) *OrderHandler {
	return &OrderHandler{cmds: cmds, q: q}
}

// @Summary List orders
// @Description List orders, newest first, optionally filtered
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param status query string false "Order status"
// @Param device_no query string false "Device number"
// @Param limit query int false "Max rows" default(50)
// @Success 200 {array} resdto.OrderResponse
// @Router /orders [get]
func (h *OrderHandler) List(c *gin.Context) {
	var filter queries.OrderListFilter
	if status := c.Query("status"); status != "" {
		filter.Status = &status
	}
	if deviceNo := c.Query("device_no"); deviceNo != "" {
		filter.DeviceNo = &deviceNo
	}
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.ParseInt(raw, 10, 32)
		if err != nil || parsed < 0 {
			httperr.AbortWithError(c, http.StatusBadRequest, errs.New("invalid limit"), "Invalid limit", nil)
			return
		}
		filter.Limit = int32(parsed)
	}

	views, err := h.q.List(c.Request.Context(), filter)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list orders", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromOrderViews(views))
}

// @Summary List active orders
// @Description List orders whose cart is currently out of its slot
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Success 200 {array} resdto.OrderResponse
// @Router /orders/active [get]
func (h *OrderHandler) ListActive(c *gin.Context) {
	views, err := h.q.ListActive(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list orders", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromOrderViews(views))
}

// @Summary Get order
// @Description Get an order by ID
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 404 {object} httperr.Response
// @Router /orders/{id} [get]
func (h *OrderHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		if errs.Is(err, queries.ErrOrderNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Order not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load order", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromOrderView(view))
}

// @Summary Mark order returned
// @Description Record that the cart came back to a slot
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /orders/{id}/return [post]
func (h *OrderHandler) MarkReturned(c *gin.Context) {
	h.mutate(c, h.cmds.MarkReturned)
}

// @Summary Mark order overdue
// @Description Flag an in-use order whose rental period has run out
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /orders/{id}/overdue [post]
func (h *OrderHandler) MarkOverdue(c *gin.Context) {
	h.mutate(c, h.cmds.MarkOverdue)
}

// @Summary Cancel order
// @Description Cancel an order that never completed payment
// @Tags orders
// @Security BearerAuth
// @Produce json
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /orders/{id}/cancel [post]
func (h *OrderHandler) Cancel(c *gin.Context) {
	h.mutate(c, h.cmds.Cancel)
}

func (h *OrderHandler) mutate(c *gin.Context, op func(ctx context.Context, id uuid.UUID) error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	if err := op(c.Request.Context(), id); err != nil {
		switch {
		case errs.Is(err, commands.ErrInvalidOrderTransition):
			httperr.AbortWithError(c, http.StatusConflict, err, "Order cannot change to the requested status", nil)
		case errs.Is(err, commands.ErrOrderNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Order not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to update order", nil)
		}
		return
	}

	view, err := h.q.GetByID(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load order", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromOrderView(view))
}

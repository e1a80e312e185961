package api

import (
	"net/http"

	reqdto "github.com/maysqunaibi/strollers-mvp/internal/handler/dto/request"
	resdto "github.com/maysqunaibi/strollers-mvp/internal/handler/dto/response"
	"github.com/maysqunaibi/strollers-mvp/internal/handler/httperr"
	"github.com/maysqunaibi/strollers-mvp/internal/infra"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/config"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/cookie"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/errs"
	"github.com/maysqunaibi/strollers-mvp/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type RentalHandler struct {
	cmds      commands.RentalCommands
	cookieCfg config.CookieConfig
}

func NewRentalHandler(cmds commands.RentalCommands, cfg config.Config) *RentalHandler {
	return &RentalHandler{cmds: cmds, cookieCfg: cfg.Cookie}
}

// @Summary Begin a rental
// @Description Stash the cart selection and return the hosted checkout configuration
// @Tags rental
// @Accept json
// @Produce json
// @Param request body reqdto.BeginRentalRequest true "Selected cart and amount"
// @Success 200 {object} resdto.CheckoutResponse
// @Failure 400 {object} httperr.Response
// @Router /rental/begin [post]
func (h *RentalHandler) Begin(c *gin.Context) {
	var req reqdto.BeginRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	sessionID := cookie.EnsureSessionID(c, h.cookieCfg)

	session, err := h.cmds.BeginRental(c.Request.Context(), sessionID, req.ToParams())
	if err != nil {
		if errs.Is(err, commands.ErrDomainValidation) {
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid selection", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to begin rental", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromCheckoutSession(session))
}

// @Summary Get the pending selection
// @Description Return the selection stashed for this session, if any
// @Tags rental
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 404 {object} httperr.Response
// @Router /rental/intent [get]
func (h *RentalHandler) GetIntent(c *gin.Context) {
	sessionID := cookie.GetSessionID(c)
	if sessionID == "" {
		httperr.AbortWithError(c, http.StatusNotFound, errs.New("no rental session"), "No pending selection", nil)
		return
	}

	intent, err := h.cmds.GetIntent(c.Request.Context(), sessionID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "No pending selection", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load selection", nil)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"deviceNo":      intent.DeviceNo(),
		"cartNo":        intent.CartNo(),
		"cartIndex":     intent.CartIndex(),
		"siteNo":        intent.SiteNo(),
		"amountHalalas": intent.AmountHalalas(),
	})
}

// @Summary Abandon the pending selection
// @Description Discard the stashed selection for this session
// @Tags rental
// @Success 204 "No Content"
// @Router /rental/intent [delete]
func (h *RentalHandler) Abandon(c *gin.Context) {
	sessionID := cookie.GetSessionID(c)
	if sessionID == "" {
		c.Status(http.StatusNoContent)
		return
	}

	if err := h.cmds.AbandonRental(c.Request.Context(), sessionID); err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to discard selection", nil)
		return
	}

	c.Status(http.StatusNoContent)
}

package api

import (
	"net/http"

	reqdto "github.com/maysqunaibi/strollers-mvp/internal/handler/dto/request"
	resdto "github.com/maysqunaibi/strollers-mvp/internal/handler/dto/response"
	"github.com/maysqunaibi/strollers-mvp/internal/handler/httperr"
	"github.com/maysqunaibi/strollers-mvp/internal/handler/middleware"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/config"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/cookie"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/errs"
	"github.com/maysqunaibi/strollers-mvp/internal/usecase/commands"
	"github.com/maysqunaibi/strollers-mvp/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	cmds      commands.AuthCommands
	q         queries.OperatorQueries
	jwtCfg    config.JWTConfig
	cookieCfg config.CookieConfig
}

func NewAuthHandler(cmds commands.AuthCommands, q queries.OperatorQueries, cfg config.Config) *AuthHandler {
	return &AuthHandler{
		cmds:      cmds,
		q:         q,
		jwtCfg:    cfg.JWT,
		cookieCfg: cfg.Cookie,
	}
}

// @Summary Operator login
// @Description Login with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body reqdto.LoginRequest true "Login request"
// @Success 200 {object} resdto.LoginResponse
// @Failure 400 {object} httperr.Response
// @Failure 401 {object} httperr.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req reqdto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	credentials, err := req.ToDomain()
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.cmds.Login(c.Request.Context(), credentials)
	if err != nil {
		switch {
		case errs.Is(err, commands.ErrInvalidCredentials),
			errs.Is(err, commands.ErrOperatorNotFound):
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid email or password", nil)
		case errs.Is(err, commands.ErrOperatorInactive):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Account is inactive", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	cookie.SetTokenCookies(c, h.cookieCfg,
		result.TokenPair.AccessToken, result.TokenPair.RefreshToken,
		h.jwtCfg.AccessDuration, h.jwtCfg.RefreshDuration)

	c.JSON(http.StatusOK, resdto.LoginResponse{
		AccessToken:  result.TokenPair.AccessToken,
		RefreshToken: result.TokenPair.RefreshToken,
	})
}

// @Summary Refresh tokens
// @Description Exchange a refresh token for a new token pair
// @Tags auth
// @Accept json
// @Produce json
// @Success 200 {object} resdto.LoginResponse
// @Failure 401 {object} httperr.Response
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c *gin.Context) {
	refreshToken := cookie.GetRefreshToken(c)
	if refreshToken == "" {
		var req reqdto.RefreshRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			httperr.AbortWithError(c, http.StatusUnauthorized, err, "Refresh token required", nil)
			return
		}
		refreshToken = req.RefreshToken
	}

	tokens, err := h.cmds.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		httperr.AbortWithError(c, http.StatusUnauthorized, err, "Invalid or expired refresh token", nil)
		return
	}

	cookie.SetTokenCookies(c, h.cookieCfg,
		tokens.AccessToken, tokens.RefreshToken,
		h.jwtCfg.AccessDuration, h.jwtCfg.RefreshDuration)

	c.JSON(http.StatusOK, resdto.LoginResponse{
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	})
}

// @Summary Operator logout
// @Description Clear session cookies
// @Tags auth
// @Security BearerAuth
// @Success 204 "No Content"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *gin.Context) {
	cookie.ClearTokenCookies(c, h.cookieCfg)
	c.Status(http.StatusNoContent)
}

// @Summary Get current operator
// @Description Get the authenticated operator's profile
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} queries.AuthorizedOperatorView
// @Failure 401 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	operatorID, ok := middleware.GetOperatorID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusUnauthorized, errs.New("operator not authenticated"), "Unauthorized", nil)
		return
	}

	op, err := h.q.GetCurrentOperator(c.Request.Context(), operatorID)
	if err != nil {
		switch {
		case errs.Is(err, queries.ErrOperatorNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Operator not found", nil)
		case errs.Is(err, queries.ErrOperatorInactive):
			httperr.AbortWithError(c, http.StatusForbidden, err, "Account is inactive", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
		}
		return
	}

	c.JSON(http.StatusOK, op)
}

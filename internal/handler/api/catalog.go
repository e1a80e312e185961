package api

import (
	"net/http"

	resdto "github.com/maysqunaibi/strollers-mvp/internal/handler/dto/response"
	"github.com/maysqunaibi/strollers-mvp/internal/handler/httperr"
	"github.com/maysqunaibi/strollers-mvp/internal/pkg/errs"
	"github.com/maysqunaibi/strollers-mvp/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type CatalogHandler struct {
	q queries.CatalogQueries
}

func NewCatalogHandler(q queries.CatalogQueries) *CatalogHandler {
	return &CatalogHandler{q: q}
}

// @Summary List rental packages
// @Description List active pricing packages for the selection screen
// @Tags catalog
// @Produce json
// @Success 200 {array} resdto.PackageResponse
// @Router /packages [get]
func (h *CatalogHandler) List(c *gin.Context) {
	views, err := h.q.ListActivePackages(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to list packages", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromPackageViews(views))
}

// @Summary Get rental package
// @Description Get one active pricing package
// @Tags catalog
// @Produce json
// @Param id path string true "Package ID"
// @Success 200 {object} resdto.PackageResponse
// @Failure 404 {object} httperr.Response
// @Router /packages/{id} [get]
func (h *CatalogHandler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid id", nil)
		return
	}

	view, err := h.q.GetPackage(c.Request.Context(), id)
	if err != nil {
		if errs.Is(err, queries.ErrPackageNotFound) {
			httperr.AbortWithError(c, http.StatusNotFound, err, "Package not found", nil)
			return
		}
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load package", nil)
		return
	}

	c.JSON(http.StatusOK, resdto.FromPackageView(view))
}

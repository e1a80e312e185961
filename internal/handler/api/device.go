package api

import (
	"net/http"

	"github.com/maysqunaibi/strollers-mvp/internal/handler/httperr"
	"github.com/maysqunaibi/strollers-mvp/internal/infra/vendor"

	"github.com/gin-gonic/gin"
)

// DeviceHandler passes device and slot state through from the vendor so
// the kiosk can show which carts are available before taking payment.
type DeviceHandler struct {
	vendor *vendor.Client
}

func NewDeviceHandler(vendorClient *vendor.Client) *DeviceHandler {
	return &DeviceHandler{vendor: vendorClient}
}

// @Summary Get device info
// @Description Get live station state from the hardware vendor
// @Tags devices
// @Produce json
// @Param deviceNo path string true "Device number"
// @Success 200 {object} vendor.DeviceInfo
// @Failure 502 {object} httperr.Response
// @Router /devices/{deviceNo} [get]
func (h *DeviceHandler) GetInfo(c *gin.Context) {
	info, err := h.vendor.GetDeviceInfo(c.Request.Context(), c.Param("deviceNo"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadGateway, err, "Device unavailable", nil)
		return
	}

	c.JSON(http.StatusOK, info)
}

// @Summary List carts at a device
// @Description List slot occupancy at a station from the hardware vendor
// @Tags devices
// @Produce json
// @Param deviceNo path string true "Device number"
// @Success 200 {array} vendor.Cart
// @Failure 502 {object} httperr.Response
// @Router /devices/{deviceNo}/carts [get]
func (h *DeviceHandler) ListCarts(c *gin.Context) {
	carts, err := h.vendor.ListCarts(c.Request.Context(), c.Param("deviceNo"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadGateway, err, "Device unavailable", nil)
		return
	}

	c.JSON(http.StatusOK, carts)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"performer-directory-backend/internal/middleware"
	"performer-directory-backend/internal/models"
	"performer-directory-backend/internal/services"
	"performer-directory-backend/internal/validator"
)

type CheckoutHandler struct {
	billing *services.BillingService
	log     *zap.Logger
}

func NewCheckoutHandler(billing *services.BillingService, log *zap.Logger) *CheckoutHandler {
	return &CheckoutHandler{billing: billing, log: log}
}

// CreateCheckoutSession godoc
// @Summary     Start a listing checkout
// @Description Forwards to the hosted checkout function with the caller's access token and returns its redirect URL.
// @Tags        billing
// @Accept      json
// @Produce     json
// @Security    Bearer
// @Param       request body models.CheckoutRequest true "Checkout"
// @Success     200 {object} models.CheckoutResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     502 {object} models.ErrorResponse
// @Router      /checkout [post]
func (h *CheckoutHandler) CreateCheckoutSession(c *gin.Context) {
	token := middleware.AccessToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "access token not found"})
		return
	}

	var req models.CheckoutRequest
	if !bindJSON(c, &req) {
		return
	}

	url, err := h.billing.CreateCheckout(c.Request.Context(), token, &req)
	if err != nil {
		var verr *validator.ValidationError
		if errors.As(err, &verr) {
			respondError(c, h.log, err)
			return
		}
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "failed to create checkout session", Message: err.Error()})
		return
	}
	c.JSON(http.StatusOK, models.CheckoutResponse{URL: url})
}

package handlers

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"performer-directory-backend/internal/models"
	"performer-directory-backend/internal/services"
)

// SignatureHeader carries the hex HMAC-SHA256 of the raw request body.
const SignatureHeader = "X-Signature"

type WebhookHandler struct {
	billing *services.BillingService
	log     *zap.Logger
}

func NewWebhookHandler(billing *services.BillingService, log *zap.Logger) *WebhookHandler {
	return &WebhookHandler{billing: billing, log: log}
}

// HandlePaymentWebhook godoc
// @Summary     Payment provider webhook
// @Description Records a profile's payment status. The body must be signed with the shared webhook secret.
// @Tags        webhooks
// @Accept      json
// @Produce     json
// @Param       X-Signature header string true "hex HMAC-SHA256 of the body"
// @Success     200 {object} map[string]string "status"
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /webhooks/payments [post]
func (h *WebhookHandler) HandlePaymentWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to read request body",
			Message: err.Error(),
		})
		return
	}

	if err := h.billing.VerifySignature(body, c.GetHeader(SignatureHeader)); err != nil {
		h.log.Warn("rejected payment webhook", zap.String("remote_ip", c.ClientIP()))
		respondError(c, h.log, err)
		return
	}

	var event models.PaymentEvent
	if err := json.Unmarshal(body, &event); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to parse event",
			Message: err.Error(),
		})
		return
	}

	if err := h.billing.ApplyPaymentEvent(c.Request.Context(), &event); err != nil {
		respondError(c, h.log, err)
		return
	}

	h.log.Info("payment status updated",
		zap.String("profile_id", event.ProfileID),
		zap.String("payment_status", string(event.PaymentStatus)))
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"performer-directory-backend/internal/models"
	"performer-directory-backend/internal/services"
	"performer-directory-backend/internal/validator"
)

// RelaysHandler serves the two email relay endpoints. Their error bodies use
// {error, details} rather than models.ErrorResponse.
type RelaysHandler struct {
	relay *services.RelayService
	log   *zap.Logger
}

func NewRelaysHandler(relay *services.RelayService, log *zap.Logger) *RelaysHandler {
	return &RelaysHandler{relay: relay, log: log}
}

// SendContactEmail godoc
// @Summary     Store a contact message and email the performer
// @Tags        relays
// @Accept      json
// @Produce     json
// @Param       request body models.ContactRelayRequest true "Contact message"
// @Success     200 {object} models.RelayResponse
// @Failure     400 {object} models.RelayErrorResponse
// @Failure     500 {object} models.RelayErrorResponse
// @Router      /functions/v1/send-contact-email [post]
func (h *RelaysHandler) SendContactEmail(c *gin.Context) {
	var req models.ContactRelayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.RelayErrorResponse{Error: "Invalid request body", Details: err.Error()})
		return
	}

	if err := h.relay.RelayContact(c.Request.Context(), &req); err != nil {
		h.relayError(c, "Failed to send email", err)
		return
	}
	c.JSON(http.StatusOK, models.RelayResponse{Success: true})
}

// SendFreeListingEmail godoc
// @Summary     Email a free-listing application to the admin inbox
// @Tags        relays
// @Accept      multipart/form-data
// @Produce     json
// @Success     200 {object} models.RelayResponse
// @Failure     400 {object} models.RelayErrorResponse
// @Failure     500 {object} models.RelayErrorResponse
// @Router      /functions/v1/send-free-listing-email [post]
func (h *RelaysHandler) SendFreeListingEmail(c *gin.Context) {
	var app models.FreeListingApplication
	if err := c.ShouldBind(&app); err != nil {
		c.JSON(http.StatusBadRequest, models.RelayErrorResponse{Error: "Invalid form data", Details: err.Error()})
		return
	}

	if err := h.relay.RelayFreeListing(c.Request.Context(), &app); err != nil {
		h.relayError(c, "Failed to send email", err)
		return
	}
	c.JSON(http.StatusOK, models.RelayResponse{Success: true})
}

func (h *RelaysHandler) relayError(c *gin.Context, msg string, err error) {
	var verr *validator.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, models.RelayErrorResponse{Error: "Validation failed", Details: verr.Error()})
	case errors.Is(err, services.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, models.RelayErrorResponse{Error: msg, Details: err.Error()})
	default:
		h.log.Error("relay failed", zap.String("path", c.FullPath()), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.RelayErrorResponse{Error: msg, Details: err.Error()})
	}
}

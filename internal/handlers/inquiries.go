package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"performer-directory-backend/internal/models"
	"performer-directory-backend/internal/services"
)

type InquiriesHandler struct {
	contacts *services.ContactService
	log      *zap.Logger
}

func NewInquiriesHandler(contacts *services.ContactService, log *zap.Logger) *InquiriesHandler {
	return &InquiriesHandler{contacts: contacts, log: log}
}

// NewCaptcha godoc
// @Summary     Issue an arithmetic challenge for the inquiry form
// @Tags        inquiries
// @Produce     json
// @Success     200 {object} models.CaptchaResponse
// @Router      /captcha [get]
func (h *InquiriesHandler) NewCaptcha(c *gin.Context) {
	c.JSON(http.StatusOK, h.challenge())
}

// SubmitInquiry godoc
// @Summary     Send an inquiry to a performer
// @Description Stores an unread message for an active, paid profile. A wrong captcha answer returns a fresh challenge.
// @Tags        inquiries
// @Accept      json
// @Produce     json
// @Param       profile_id path string true "Profile ID (UUID)"
// @Param       request body models.InquiryRequest true "Inquiry"
// @Success     201 {object} models.ContactMessage
// @Failure     400 {object} models.ErrorResponse
// @Failure     404 {object} models.ErrorResponse
// @Failure     422 {object} models.CaptchaErrorResponse
// @Router      /profiles/{profile_id}/inquiries [post]
func (h *InquiriesHandler) SubmitInquiry(c *gin.Context) {
	profileID, ok := uuidParam(c, "profile_id")
	if !ok {
		return
	}

	var req models.InquiryRequest
	if !bindJSON(c, &req) {
		return
	}

	msg, err := h.contacts.SubmitInquiry(c.Request.Context(), profileID, &req)
	if errors.Is(err, services.ErrCaptchaMismatch) {
		c.JSON(http.StatusUnprocessableEntity, models.CaptchaErrorResponse{
			Error:   services.ErrCaptchaMismatch.Error(),
			Captcha: h.challenge(),
		})
		return
	}
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (h *InquiriesHandler) challenge() models.CaptchaResponse {
	ch := h.contacts.NewChallenge()
	return models.CaptchaResponse{Num1: ch.Num1, Num2: ch.Num2, Token: ch.Token}
}

package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"performer-directory-backend/internal/models"
	"performer-directory-backend/internal/services"
)

type reviewFunc func(ctx context.Context, reviewer models.User, id uuid.UUID) (*models.FreeListingRequest, error)

// AdminHandler serves the moderation inbox and the free-listing review queue.
type AdminHandler struct {
	contacts *services.ContactService
	listings *services.ListingService
	log      *zap.Logger
}

func NewAdminHandler(contacts *services.ContactService, listings *services.ListingService, log *zap.Logger) *AdminHandler {
	return &AdminHandler{contacts: contacts, listings: listings, log: log}
}

func (h *AdminHandler) ListMessages(c *gin.Context) {
	unreadOnly := c.Query("unread") == "true"

	msgs, err := h.contacts.ListMessages(c.Request.Context(), unreadOnly)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, models.MessagesResponse{Messages: msgs})
}

func (h *AdminHandler) MarkMessageRead(c *gin.Context) {
	id, ok := uuidParam(c, "message_id")
	if !ok {
		return
	}

	if err := h.contacts.MarkRead(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) DeleteMessage(c *gin.Context) {
	id, ok := uuidParam(c, "message_id")
	if !ok {
		return
	}

	if err := h.contacts.DeleteMessage(c.Request.Context(), id); err != nil {
		respondError(c, h.log, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AdminHandler) ListFreeListings(c *gin.Context) {
	status := models.ListingStatus(c.Query("status"))

	reqs, err := h.listings.List(c.Request.Context(), status)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, models.FreeListingsResponse{Requests: reqs})
}

func (h *AdminHandler) ApproveFreeListing(c *gin.Context) {
	h.review(c, h.listings.Approve)
}

func (h *AdminHandler) RejectFreeListing(c *gin.Context) {
	h.review(c, h.listings.Reject)
}

func (h *AdminHandler) review(c *gin.Context, decide reviewFunc) {
	reviewer, ok := currentUser(c)
	if !ok {
		return
	}
	id, ok := uuidParam(c, "request_id")
	if !ok {
		return
	}

	req, err := decide(c.Request.Context(), reviewer, id)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, req)
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"performer-directory-backend/internal/models"
	"performer-directory-backend/internal/services"
)

type ListingsHandler struct {
	listings *services.ListingService
	log      *zap.Logger
}

func NewListingsHandler(listings *services.ListingService, log *zap.Logger) *ListingsHandler {
	return &ListingsHandler{listings: listings, log: log}
}

// ApplyFreeListing godoc
// @Summary     Apply for a free listing
// @Tags        listings
// @Accept      json
// @Produce     json
// @Param       request body models.FreeListingApplication true "Application"
// @Success     201 {object} models.FreeListingRequest
// @Failure     400 {object} models.ErrorResponse
// @Router      /free-listings [post]
func (h *ListingsHandler) ApplyFreeListing(c *gin.Context) {
	var app models.FreeListingApplication
	if !bindJSON(c, &app) {
		return
	}

	req, err := h.listings.Apply(c.Request.Context(), &app)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, req)
}

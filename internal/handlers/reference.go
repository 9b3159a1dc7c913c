package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"performer-directory-backend/internal/locations"
	"performer-directory-backend/internal/models"
)

// ReferenceHandler serves the fixed lists the forms are built from.
type ReferenceHandler struct {
	locations *locations.Directory
}

func NewReferenceHandler(dir *locations.Directory) *ReferenceHandler {
	return &ReferenceHandler{locations: dir}
}

func (h *ReferenceHandler) Categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": models.Categories})
}

func (h *ReferenceHandler) EventTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"event_types": models.EventTypes})
}

func (h *ReferenceHandler) TravelRadii(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"travel_radii": models.TravelRadii})
}

func (h *ReferenceHandler) Locations(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"states": h.locations.States})
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"performer-directory-backend/internal/models"
	"performer-directory-backend/internal/services"
)

type ProfilesHandler struct {
	profiles *services.ProfileService
	log      *zap.Logger
}

func NewProfilesHandler(profiles *services.ProfileService, log *zap.Logger) *ProfilesHandler {
	return &ProfilesHandler{profiles: profiles, log: log}
}

// ListProfiles godoc
// @Summary     Browse the directory
// @Description Lists active, paid profiles. state and city are exact matches; category may repeat and matches any.
// @Tags        profiles
// @Produce     json
// @Param       state    query string false "Two-letter state code"
// @Param       city     query string false "City name"
// @Param       category query []string false "Category filter (OR)"
// @Success     200 {object} models.ProfileListResponse
// @Failure     500 {object} models.ErrorResponse
// @Router      /profiles [get]
func (h *ProfilesHandler) ListProfiles(c *gin.Context) {
	var categories []models.Category
	for _, raw := range c.QueryArray("category") {
		categories = append(categories, models.Category(raw))
	}

	profiles, err := h.profiles.ListProfiles(c.Request.Context(), services.ProfileQuery{
		State:      c.Query("state"),
		City:       c.Query("city"),
		Categories: categories,
	})
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	out := make([]models.ProfileResponse, 0, len(profiles))
	for _, p := range profiles {
		resp := models.NewProfileResponse(p)
		resp.PaymentStatus = ""
		out = append(out, resp)
	}
	c.JSON(http.StatusOK, models.ProfileListResponse{Profiles: out, Count: len(out)})
}

// GetProfile godoc
// @Summary     Get a public profile
// @Tags        profiles
// @Produce     json
// @Param       profile_id path string true "Profile ID (UUID)"
// @Success     200 {object} models.ProfileResponse
// @Failure     404 {object} models.ErrorResponse
// @Router      /profiles/{profile_id} [get]
func (h *ProfilesHandler) GetProfile(c *gin.Context) {
	profileID, ok := uuidParam(c, "profile_id")
	if !ok {
		return
	}

	p, err := h.profiles.GetPublicProfile(c.Request.Context(), profileID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	resp := models.NewProfileResponse(*p)
	resp.PaymentStatus = ""
	c.JSON(http.StatusOK, resp)
}

func (h *ProfilesHandler) GetMyProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	p, err := h.profiles.GetOwnProfile(c.Request.Context(), user)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, ownerResponse(p))
}

func (h *ProfilesHandler) CreateMyProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.ProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.profiles.CreateOwnProfile(c.Request.Context(), user, &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, ownerResponse(p))
}

func (h *ProfilesHandler) UpdateMyProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	var req models.ProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	own, err := h.profiles.GetOwnProfile(c.Request.Context(), user)
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	p, err := h.profiles.UpdateProfile(c.Request.Context(), user, own.ID, &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, ownerResponse(p))
}

// UpdateProfile lets an admin edit any profile.
func (h *ProfilesHandler) UpdateProfile(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	profileID, ok := uuidParam(c, "profile_id")
	if !ok {
		return
	}

	var req models.ProfileRequest
	if !bindJSON(c, &req) {
		return
	}

	p, err := h.profiles.UpdateProfile(c.Request.Context(), user, profileID, &req)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, ownerResponse(p))
}

func ownerResponse(p *models.Profile) models.ProfileResponse {
	resp := models.NewProfileResponse(*p)
	resp.PaymentStatus = p.PaymentStatus
	resp.PaymentExpiresAt = p.PaymentExpiresAt
	return resp
}

package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"performer-directory-backend/internal/models"
	"performer-directory-backend/internal/services"
	"performer-directory-backend/internal/validator"
)

type AuthHandler struct {
	auth      services.Authenticator
	access    *services.Access
	validator *validator.Validator
	log       *zap.Logger
}

func NewAuthHandler(auth services.Authenticator, access *services.Access, v *validator.Validator, log *zap.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, access: access, validator: v, log: log}
}

// SignIn godoc
// @Summary     Sign in with email and password
// @Tags        auth
// @Accept      json
// @Produce     json
// @Param       request body models.SignInRequest true "Credentials"
// @Success     200 {object} models.Session
// @Failure     400 {object} models.ErrorResponse
// @Failure     401 {object} models.ErrorResponse
// @Router      /auth/sign-in [post]
func (h *AuthHandler) SignIn(c *gin.Context) {
	var req models.SignInRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.validator.Validate(req); err != nil {
		respondError(c, h.log, err)
		return
	}

	session, err := h.auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

func (h *AuthHandler) Refresh(c *gin.Context) {
	var req models.RefreshRequest
	if !bindJSON(c, &req) {
		return
	}
	if err := h.validator.Validate(req); err != nil {
		respondError(c, h.log, err)
		return
	}

	session, err := h.auth.Refresh(c.Request.Context(), req.RefreshToken)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// Me returns the caller's identity with their role resolved.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}

	admin, err := h.access.IsAdmin(c.Request.Context(), user.ID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	if admin {
		user.Role = services.RoleAdmin
	}
	c.JSON(http.StatusOK, user)
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"performer-directory-backend/internal/middleware"
	"performer-directory-backend/internal/models"
	"performer-directory-backend/internal/services"
	"performer-directory-backend/internal/validator"
)

// respondError maps service errors to a status and JSON body. Unknown errors
// are logged and reported as 500.
func respondError(c *gin.Context, log *zap.Logger, err error) {
	var verr *validator.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "validation failed", Fields: verr.Errors})
		return
	}

	var batchErr *services.UploadBatchError
	switch {
	case errors.As(err, &batchErr):
		log.Error("image upload stopped", zap.Error(err))
		c.JSON(http.StatusBadGateway, models.ErrorResponse{Error: "failed to upload image", Message: batchErr.Error()})
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, models.ErrorResponse{Error: "not found"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, models.ErrorResponse{Error: "forbidden"})
	case errors.Is(err, services.ErrInvalidCredentials), errors.Is(err, services.ErrInvalidSignature):
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrProfileExists), errors.Is(err, services.ErrInvalidTransition):
		c.JSON(http.StatusConflict, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrImageTooLarge):
		c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrImageCapacity),
		errors.Is(err, services.ErrUnsupportedImage),
		errors.Is(err, services.ErrInvalidReorder):
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: err.Error()})
	case errors.Is(err, services.ErrUnavailable):
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse{Error: services.ErrUnavailable.Error()})
	case errors.Is(err, services.ErrRetrievalFailed):
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: services.ErrRetrievalFailed.Error()})
	default:
		log.Error("request failed",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse{Error: "internal server error"})
	}
}

func currentUser(c *gin.Context) (models.User, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: "user id not found"})
	}
	return user, ok
}

func uuidParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body", Message: err.Error()})
		return false
	}
	return true
}

package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"performer-directory-backend/internal/models"
	"performer-directory-backend/internal/services"
)

// maxUploadBody caps a whole upload request at a full set of images plus
// form overhead.
const maxUploadBody = services.MaxImagesPerProfile*services.MaxImageBytes + 1<<20

type ImagesHandler struct {
	images *services.ImageService
	log    *zap.Logger
}

func NewImagesHandler(images *services.ImageService, log *zap.Logger) *ImagesHandler {
	return &ImagesHandler{images: images, log: log}
}

func (h *ImagesHandler) ListImages(c *gin.Context) {
	profileID, ok := uuidParam(c, "profile_id")
	if !ok {
		return
	}

	images, err := h.images.List(c.Request.Context(), profileID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, models.ImagesResponse{Images: images})
}

// UploadImages godoc
// @Summary     Upload profile images
// @Description Appends up to 4 images in total. Files are uploaded in order; a failure keeps the files uploaded before it.
// @Tags        images
// @Accept      multipart/form-data
// @Produce     json
// @Security    Bearer
// @Param       profile_id path string true "Profile ID (UUID)"
// @Param       images formData file true "JPEG, PNG or WebP, 5MB max each"
// @Success     201 {object} models.UploadResponse
// @Failure     400 {object} models.ErrorResponse
// @Failure     403 {object} models.ErrorResponse
// @Failure     502 {object} models.UploadResponse
// @Router      /profiles/{profile_id}/images [post]
func (h *ImagesHandler) UploadImages(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	profileID, ok := uuidParam(c, "profile_id")
	if !ok {
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxUploadBody)
	if err := c.Request.ParseMultipartForm(32 << 20); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			c.JSON(http.StatusRequestEntityTooLarge, models.ErrorResponse{
				Error:   "request body too large",
				Message: fmt.Sprintf("uploads are limited to %d bytes", tooLarge.Limit),
			})
			return
		}
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "failed to parse multipart form",
			Message: err.Error(),
		})
		return
	}

	form := c.Request.MultipartForm
	if form == nil || len(form.File["images"]) == 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{
			Error:   "no files uploaded",
			Message: "please provide files in the images field",
		})
		return
	}

	uploads := make([]services.ImageUpload, 0, len(form.File["images"]))
	for _, fh := range form.File["images"] {
		if fh.Size > services.MaxImageBytes {
			respondError(c, h.log, fmt.Errorf("%s: %w", fh.Filename, services.ErrImageTooLarge))
			return
		}
		data, err := readFile(fh)
		if err != nil {
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "failed to read file", Message: err.Error()})
			return
		}
		uploads = append(uploads, services.ImageUpload{
			Filename:    fh.Filename,
			ContentType: contentType(fh, data),
			Data:        data,
		})
	}

	added, err := h.images.Add(c.Request.Context(), user, profileID, uploads)
	var batchErr *services.UploadBatchError
	if errors.As(err, &batchErr) {
		h.log.Error("image upload stopped",
			zap.String("profile_id", profileID.String()),
			zap.Int("uploaded", len(added)),
			zap.Error(err))
		status := http.StatusBadGateway
		if errors.Is(err, services.ErrImageCapacity) {
			status = http.StatusConflict
		}
		c.JSON(status, models.UploadResponse{Images: added, Errors: []string{batchErr.Error()}})
		return
	}
	if err != nil {
		respondError(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, models.UploadResponse{Images: added})
}

func (h *ImagesHandler) DeleteImage(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	profileID, ok := uuidParam(c, "profile_id")
	if !ok {
		return
	}
	imageID, ok := uuidParam(c, "image_id")
	if !ok {
		return
	}

	images, err := h.images.Delete(c.Request.Context(), user, profileID, imageID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, models.ImagesResponse{Images: images})
}

func (h *ImagesHandler) ReorderImages(c *gin.Context) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	profileID, ok := uuidParam(c, "profile_id")
	if !ok {
		return
	}

	var req models.ReorderRequest
	if !bindJSON(c, &req) {
		return
	}
	if req.From == nil || req.To == nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "from and to are required"})
		return
	}

	images, err := h.images.Reorder(c.Request.Context(), user, profileID, *req.From, *req.To)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, models.ImagesResponse{Images: images})
}

func (h *ImagesHandler) MoveImageUp(c *gin.Context) {
	h.move(c, h.images.MoveUp)
}

func (h *ImagesHandler) MoveImageDown(c *gin.Context) {
	h.move(c, h.images.MoveDown)
}

func (h *ImagesHandler) move(c *gin.Context, fn func(ctx context.Context, user models.User, profileID, imageID uuid.UUID) ([]models.ProfileImage, error)) {
	user, ok := currentUser(c)
	if !ok {
		return
	}
	profileID, ok := uuidParam(c, "profile_id")
	if !ok {
		return
	}
	imageID, ok := uuidParam(c, "image_id")
	if !ok {
		return
	}

	images, err := fn(c.Request.Context(), user, profileID, imageID)
	if err != nil {
		respondError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, models.ImagesResponse{Images: images})
}

func readFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// contentType trusts the part header and falls back to sniffing.
func contentType(fh *multipart.FileHeader, data []byte) string {
	if ct := fh.Header.Get("Content-Type"); ct != "" && ct != "application/octet-stream" {
		return ct
	}
	return http.DetectContentType(data)
}

package services

import (
	"context"
	"errors"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"performer-directory-backend/internal/models"
)

const MaxImageBytes = 5 << 20

var imageExtensions = map[string]string{
	"image/jpeg": "jpg",
	"image/png":  "png",
	"image/webp": "webp",
}

// ImageUpload is one file of a multipart upload.
type ImageUpload struct {
	Filename    string
	ContentType string
	Data        []byte
}

type ImageService struct {
	profiles ProfileReader
	images   ImageStore
	objects  ObjectStore
	access   *Access
	log      *zap.Logger
}

func NewImageService(profiles ProfileReader, images ImageStore, objects ObjectStore, access *Access, log *zap.Logger) *ImageService {
	return &ImageService{
		profiles: profiles,
		images:   images,
		objects:  objects,
		access:   access,
		log:      log,
	}
}

func (s *ImageService) List(ctx context.Context, profileID uuid.UUID) ([]models.ProfileImage, error) {
	return s.images.ListImages(ctx, profileID)
}

// Add uploads files in order and appends them after the existing images.
// Capacity and file checks run before anything is uploaded. On a mid-batch
// failure the already persisted images are returned with an *UploadBatchError.
func (s *ImageService) Add(ctx context.Context, user models.User, profileID uuid.UUID, files []ImageUpload) ([]models.ProfileImage, error) {
	if err := s.authorize(ctx, user, profileID); err != nil {
		return nil, err
	}

	current, err := s.images.ListImages(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if len(current)+len(files) > MaxImagesPerProfile {
		return nil, ErrImageCapacity
	}
	for _, f := range files {
		if _, ok := imageExtensions[f.ContentType]; !ok {
			return nil, fmt.Errorf("%s: %w", f.Filename, ErrUnsupportedImage)
		}
		if len(f.Data) > MaxImageBytes {
			return nil, fmt.Errorf("%s: %w", f.Filename, ErrImageTooLarge)
		}
	}

	added := make([]models.ProfileImage, 0, len(files))
	for i, f := range files {
		objectPath := fmt.Sprintf("%s/%s.%s", profileID, uuid.NewString(), imageExtensions[f.ContentType])

		publicURL, err := s.objects.Upload(ctx, objectPath, f.ContentType, f.Data)
		if err != nil {
			return added, &UploadBatchError{Index: i, Filename: f.Filename, Err: err}
		}

		img := models.ProfileImage{
			ID:        uuid.New(),
			ProfileID: profileID,
			ImageURL:  publicURL,
			Position:  len(current) + len(added),
			CreatedAt: time.Now(),
		}
		if err := s.images.InsertImage(ctx, &img); err != nil {
			if errors.Is(err, ErrImageCapacity) {
				if rmErr := s.objects.Remove(ctx, objectPath); rmErr != nil {
					s.log.Warn("failed to remove image over capacity",
						zap.String("path", objectPath),
						zap.Error(rmErr))
				}
				return added, &UploadBatchError{Index: i, Filename: f.Filename, Err: err}
			}
			s.log.Warn("image uploaded but row insert failed",
				zap.String("profile_id", profileID.String()),
				zap.String("path", objectPath),
				zap.Error(err))
			return added, &UploadBatchError{Index: i, Filename: f.Filename, Err: err}
		}
		added = append(added, img)
	}

	return added, nil
}

// Delete removes the stored object and the row; the remaining images are
// renumbered densely by the store.
func (s *ImageService) Delete(ctx context.Context, user models.User, profileID, imageID uuid.UUID) ([]models.ProfileImage, error) {
	if err := s.authorize(ctx, user, profileID); err != nil {
		return nil, err
	}

	current, err := s.images.ListImages(ctx, profileID)
	if err != nil {
		return nil, err
	}
	idx := indexOf(current, imageID)
	if idx < 0 {
		return nil, ErrNotFound
	}

	if filename := objectName(current[idx].ImageURL); filename != "" {
		if err := s.objects.Remove(ctx, profileID.String()+"/"+filename); err != nil {
			return nil, fmt.Errorf("failed to delete image from storage: %w", err)
		}
	}

	if err := s.images.DeleteImage(ctx, profileID, imageID); err != nil {
		return nil, err
	}

	remaining := make([]models.ProfileImage, 0, len(current)-1)
	remaining = append(remaining, current[:idx]...)
	remaining = append(remaining, current[idx+1:]...)
	return Renumber(remaining), nil
}

// Reorder moves the image at index from to index to and persists the new
// positions. The returned list reflects the new order only once persisted.
func (s *ImageService) Reorder(ctx context.Context, user models.User, profileID uuid.UUID, from, to int) ([]models.ProfileImage, error) {
	if err := s.authorize(ctx, user, profileID); err != nil {
		return nil, err
	}

	current, err := s.images.ListImages(ctx, profileID)
	if err != nil {
		return nil, err
	}

	reordered, err := ReorderImages(current, from, to)
	if err != nil {
		return nil, err
	}

	changed := changedPositions(current, reordered)
	if len(changed) == 0 {
		return reordered, nil
	}
	if err := s.images.UpdateImagePositions(ctx, profileID, changed); err != nil {
		return nil, err
	}
	return reordered, nil
}

func (s *ImageService) MoveUp(ctx context.Context, user models.User, profileID, imageID uuid.UUID) ([]models.ProfileImage, error) {
	return s.move(ctx, user, profileID, imageID, -1)
}

func (s *ImageService) MoveDown(ctx context.Context, user models.User, profileID, imageID uuid.UUID) ([]models.ProfileImage, error) {
	return s.move(ctx, user, profileID, imageID, 1)
}

func (s *ImageService) move(ctx context.Context, user models.User, profileID, imageID uuid.UUID, delta int) ([]models.ProfileImage, error) {
	if err := s.authorize(ctx, user, profileID); err != nil {
		return nil, err
	}
	current, err := s.images.ListImages(ctx, profileID)
	if err != nil {
		return nil, err
	}
	idx := indexOf(current, imageID)
	if idx < 0 {
		return nil, ErrNotFound
	}
	return s.Reorder(ctx, user, profileID, idx, idx+delta)
}

func (s *ImageService) authorize(ctx context.Context, user models.User, profileID uuid.UUID) error {
	row, err := s.profiles.GetProfile(ctx, profileID)
	if err != nil {
		return err
	}
	return s.access.CanManage(ctx, user, row.UserID)
}

func indexOf(images []models.ProfileImage, id uuid.UUID) int {
	for i, img := range images {
		if img.ID == id {
			return i
		}
	}
	return -1
}

// objectName is the last path segment of a public URL, without any query string.
func objectName(publicURL string) string {
	u := publicURL
	if i := strings.IndexAny(u, "?#"); i >= 0 {
		u = u[:i]
	}
	if u == "" || strings.HasSuffix(u, "/") {
		return ""
	}
	return path.Base(u)
}

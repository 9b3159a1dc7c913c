package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"performer-directory-backend/internal/models"
)

// ProfileReader is the read path of the directory. Implementations return
// ErrNotFound (wrapped or bare) for a missing profile.
type ProfileReader interface {
	ListVisibleProfiles(ctx context.Context, filter models.ProfileFilter) ([]models.ProfileRow, error)
	GetProfile(ctx context.Context, profileID uuid.UUID) (*models.ProfileRow, error)
}

type ProfileStore interface {
	ProfileReader
	GetProfileByOwner(ctx context.Context, userID uuid.UUID) (*models.ProfileRow, error)
	CreateProfile(ctx context.Context, profile *models.Profile) error
	UpdateProfile(ctx context.Context, profile *models.Profile) error
	UpdatePaymentStatus(ctx context.Context, profileID uuid.UUID, status models.PaymentStatus, expiresAt *time.Time) error
}

type ImageStore interface {
	// ListImages returns the profile's images ordered by position.
	ListImages(ctx context.Context, profileID uuid.UUID) ([]models.ProfileImage, error)
	InsertImage(ctx context.Context, image *models.ProfileImage) error
	// DeleteImage removes the row and renumbers the remaining images to 0..n-1.
	DeleteImage(ctx context.Context, profileID, imageID uuid.UUID) error
	// UpdateImagePositions persists the position of every given image.
	UpdateImagePositions(ctx context.Context, profileID uuid.UUID, images []models.ProfileImage) error
}

type ContactStore interface {
	InsertContactMessage(ctx context.Context, msg *models.ContactMessage) error
	ListContactMessages(ctx context.Context, unreadOnly bool) ([]models.ContactMessage, error)
	MarkContactMessageRead(ctx context.Context, id uuid.UUID) error
	DeleteContactMessage(ctx context.Context, id uuid.UUID) error
}

type ListingStore interface {
	InsertFreeListingRequest(ctx context.Context, req *models.FreeListingRequest) error
	GetFreeListingRequest(ctx context.Context, id uuid.UUID) (*models.FreeListingRequest, error)
	ListFreeListingRequests(ctx context.Context, status models.ListingStatus) ([]models.FreeListingRequest, error)
	// SetFreeListingStatus moves a request from one status to another and
	// returns ErrInvalidTransition when the stored status is no longer from.
	SetFreeListingStatus(ctx context.Context, id uuid.UUID, from, to models.ListingStatus, reviewer uuid.UUID) error
}

type RoleStore interface {
	// GetUserRole returns "" when the user has no role row.
	GetUserRole(ctx context.Context, userID uuid.UUID) (string, error)
}

// ObjectStore is the bucket holding profile images.
type ObjectStore interface {
	Upload(ctx context.Context, path, contentType string, data []byte) (publicURL string, err error)
	Remove(ctx context.Context, path string) error
}

type Authenticator interface {
	SignIn(ctx context.Context, email, password string) (*models.Session, error)
	Refresh(ctx context.Context, refreshToken string) (*models.Session, error)
}

package services

import (
	"context"

	"github.com/google/uuid"
	"performer-directory-backend/internal/models"
)

// Unavailable stands in for the write-side stores when the server runs
// against the hosted REST catalog only. Every call fails with ErrUnavailable.
type Unavailable struct{}

var (
	_ ImageStore   = Unavailable{}
	_ ContactStore = Unavailable{}
	_ ListingStore = Unavailable{}
)

func (Unavailable) ListImages(context.Context, uuid.UUID) ([]models.ProfileImage, error) {
	return nil, ErrUnavailable
}

func (Unavailable) InsertImage(context.Context, *models.ProfileImage) error {
	return ErrUnavailable
}

func (Unavailable) DeleteImage(context.Context, uuid.UUID, uuid.UUID) error {
	return ErrUnavailable
}

func (Unavailable) UpdateImagePositions(context.Context, uuid.UUID, []models.ProfileImage) error {
	return ErrUnavailable
}

func (Unavailable) InsertContactMessage(context.Context, *models.ContactMessage) error {
	return ErrUnavailable
}

func (Unavailable) ListContactMessages(context.Context, bool) ([]models.ContactMessage, error) {
	return nil, ErrUnavailable
}

func (Unavailable) MarkContactMessageRead(context.Context, uuid.UUID) error {
	return ErrUnavailable
}

func (Unavailable) DeleteContactMessage(context.Context, uuid.UUID) error {
	return ErrUnavailable
}

func (Unavailable) InsertFreeListingRequest(context.Context, *models.FreeListingRequest) error {
	return ErrUnavailable
}

func (Unavailable) GetFreeListingRequest(context.Context, uuid.UUID) (*models.FreeListingRequest, error) {
	return nil, ErrUnavailable
}

func (Unavailable) ListFreeListingRequests(context.Context, models.ListingStatus) ([]models.FreeListingRequest, error) {
	return nil, ErrUnavailable
}

func (Unavailable) SetFreeListingStatus(context.Context, uuid.UUID, models.ListingStatus, models.ListingStatus, uuid.UUID) error {
	return ErrUnavailable
}

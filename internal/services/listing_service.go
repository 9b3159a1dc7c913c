package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"performer-directory-backend/internal/models"
	"performer-directory-backend/internal/validator"
)

// Approved and rejected are terminal.
var listingTransitions = map[models.ListingStatus]map[models.ListingStatus]struct{}{
	models.ListingPending: {
		models.ListingApproved: {},
		models.ListingRejected: {},
	},
}

// CanTransitionListing reports whether a free-listing request may move from current to next.
func CanTransitionListing(current, next models.ListingStatus) bool {
	allowed, ok := listingTransitions[current]
	if !ok {
		return false
	}
	_, ok = allowed[next]
	return ok
}

type ListingService struct {
	listings  ListingStore
	validator *validator.Validator
	log       *zap.Logger
}

func NewListingService(listings ListingStore, v *validator.Validator, log *zap.Logger) *ListingService {
	return &ListingService{listings: listings, validator: v, log: log}
}

// Apply stores a free-listing application as pending. No email is sent here.
func (s *ListingService) Apply(ctx context.Context, app *models.FreeListingApplication) (*models.FreeListingRequest, error) {
	if err := s.validator.Validate(app); err != nil {
		return nil, err
	}

	req := &models.FreeListingRequest{
		ID:              uuid.New(),
		FullName:        strings.TrimSpace(app.FullName),
		Email:           strings.TrimSpace(app.Email),
		Phone:           strings.TrimSpace(app.Phone),
		City:            strings.TrimSpace(app.City),
		State:           strings.ToUpper(strings.TrimSpace(app.State)),
		Instagram:       app.Instagram,
		Facebook:        app.Facebook,
		TikTok:          app.TikTok,
		Website:         app.Website,
		YearsExperience: app.YearsExperience,
		Characters:      app.Characters,
		Bio:             app.Bio,
		WillingToTravel: app.WillingToTravel,
		TravelRadius:    app.TravelRadius,
		AdditionalInfo:  app.AdditionalInfo,
		Status:          models.ListingPending,
		CreatedAt:       time.Now(),
	}

	if err := s.listings.InsertFreeListingRequest(ctx, req); err != nil {
		s.log.Error("failed to store free listing request", zap.String("email", req.Email), zap.Error(err))
		return nil, err
	}
	return req, nil
}

// List returns requests with the given status, or all of them when status is empty.
func (s *ListingService) List(ctx context.Context, status models.ListingStatus) ([]models.FreeListingRequest, error) {
	if status != "" && !status.Valid() {
		return nil, validator.FieldError("status", "must be pending, approved or rejected")
	}
	reqs, err := s.listings.ListFreeListingRequests(ctx, status)
	if err != nil {
		return nil, err
	}
	if reqs == nil {
		reqs = []models.FreeListingRequest{}
	}
	return reqs, nil
}

func (s *ListingService) Approve(ctx context.Context, reviewer models.User, id uuid.UUID) (*models.FreeListingRequest, error) {
	return s.review(ctx, reviewer, id, models.ListingApproved)
}

func (s *ListingService) Reject(ctx context.Context, reviewer models.User, id uuid.UUID) (*models.FreeListingRequest, error) {
	return s.review(ctx, reviewer, id, models.ListingRejected)
}

func (s *ListingService) review(ctx context.Context, reviewer models.User, id uuid.UUID, next models.ListingStatus) (*models.FreeListingRequest, error) {
	req, err := s.listings.GetFreeListingRequest(ctx, id)
	if err != nil {
		return nil, err
	}
	if !CanTransitionListing(req.Status, next) {
		return nil, ErrInvalidTransition
	}

	if err := s.listings.SetFreeListingStatus(ctx, id, req.Status, next, reviewer.ID); err != nil {
		return nil, err
	}

	now := time.Now()
	reviewerID := reviewer.ID
	req.Status = next
	req.ReviewedBy = &reviewerID
	req.ReviewedAt = &now

	s.log.Info("free listing reviewed",
		zap.String("request_id", id.String()),
		zap.String("status", string(next)),
		zap.String("reviewer", reviewerID.String()))
	return req, nil
}

package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"performer-directory-backend/internal/locations"
	"performer-directory-backend/internal/models"
	"performer-directory-backend/internal/validator"
)

// ProfileQuery is a directory search. State and City are matched by the
// datastore; Categories are applied afterwards with OR semantics.
type ProfileQuery struct {
	State      string
	City       string
	Categories []models.Category
}

type ProfileService struct {
	reader      ProfileReader
	store       ProfileStore
	access      *Access
	validator   *validator.Validator
	locations   *locations.Directory
	placeholder string
	log         *zap.Logger
}

// NewProfileService wires the read path and, optionally, the owner write path.
// A nil store leaves the service read-only.
func NewProfileService(
	reader ProfileReader,
	store ProfileStore,
	access *Access,
	v *validator.Validator,
	dir *locations.Directory,
	placeholder string,
	log *zap.Logger,
) *ProfileService {
	return &ProfileService{
		reader:      reader,
		store:       store,
		access:      access,
		validator:   v,
		locations:   dir,
		placeholder: placeholder,
		log:         log,
	}
}

// ListProfiles returns visible profiles matching q. An empty result is an
// empty slice, never an error.
func (s *ProfileService) ListProfiles(ctx context.Context, q ProfileQuery) ([]models.Profile, error) {
	filter := models.ProfileFilter{
		State: strings.ToUpper(strings.TrimSpace(q.State)),
		City:  strings.TrimSpace(q.City),
	}
	if filter.State != "" && filter.City != "" {
		if city := s.locations.CanonicalCity(filter.State, filter.City); city != "" {
			filter.City = city
		}
	}

	rows, err := s.reader.ListVisibleProfiles(ctx, filter)
	if err != nil {
		s.log.Error("profile query failed",
			zap.String("state", filter.State),
			zap.String("city", filter.City),
			zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrRetrievalFailed, err)
	}

	profiles := make([]models.Profile, 0, len(rows))
	for _, row := range rows {
		p := NormalizeProfile(row, s.placeholder)
		if !p.Visible() {
			continue
		}
		profiles = append(profiles, p)
	}

	return FilterByCategory(profiles, q.Categories), nil
}

// GetPublicProfile returns a profile only if it is visible in the directory.
func (s *ProfileService) GetPublicProfile(ctx context.Context, profileID uuid.UUID) (*models.Profile, error) {
	row, err := s.reader.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	p := NormalizeProfile(*row, s.placeholder)
	if !p.Visible() {
		return nil, ErrNotFound
	}
	return &p, nil
}

func (s *ProfileService) GetOwnProfile(ctx context.Context, user models.User) (*models.Profile, error) {
	if s.store == nil {
		return nil, ErrUnavailable
	}
	row, err := s.store.GetProfileByOwner(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	p := NormalizeProfile(*row, s.placeholder)
	return &p, nil
}

// CreateOwnProfile creates the caller's listing, inactive and unpaid until checkout.
func (s *ProfileService) CreateOwnProfile(ctx context.Context, user models.User, req *models.ProfileRequest) (*models.Profile, error) {
	if s.store == nil {
		return nil, ErrUnavailable
	}
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	_, err := s.store.GetProfileByOwner(ctx, user.ID)
	if err == nil {
		return nil, ErrProfileExists
	}
	if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	p := &models.Profile{
		ID:            uuid.New(),
		UserID:        user.ID,
		IsActive:      false,
		PaymentStatus: models.PaymentStatusUnpaid,
	}
	s.apply(p, req)

	if err := s.store.CreateProfile(ctx, p); err != nil {
		return nil, err
	}
	p.MainImageURL = s.placeholder
	return p, nil
}

// UpdateProfile applies req to the profile. Only the owner or an admin may do so.
func (s *ProfileService) UpdateProfile(ctx context.Context, user models.User, profileID uuid.UUID, req *models.ProfileRequest) (*models.Profile, error) {
	if s.store == nil {
		return nil, ErrUnavailable
	}
	if err := s.validateRequest(req); err != nil {
		return nil, err
	}

	row, err := s.store.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if err := s.access.CanManage(ctx, user, row.UserID); err != nil {
		return nil, err
	}

	p := NormalizeProfile(*row, s.placeholder)
	s.apply(&p, req)

	if err := s.store.UpdateProfile(ctx, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (s *ProfileService) validateRequest(req *models.ProfileRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}
	if (req.PriceMin == nil) != (req.PriceMax == nil) {
		return validator.FieldError("price_min", "price_min and price_max must be set together")
	}
	if req.PriceMin != nil && *req.PriceMin > *req.PriceMax {
		return validator.FieldError("price_max", "must be greater than or equal to price_min")
	}
	if !s.locations.ValidCity(req.State, req.City) {
		return validator.FieldError("city", "must be a listed city in the selected state")
	}
	return nil
}

func (s *ProfileService) apply(p *models.Profile, req *models.ProfileRequest) {
	p.DisplayName = strings.TrimSpace(req.DisplayName)
	p.Bio = req.Bio
	p.State = strings.ToUpper(strings.TrimSpace(req.State))
	p.City = s.locations.CanonicalCity(req.State, req.City)
	p.PriceMin = req.PriceMin
	p.PriceMax = req.PriceMax
	p.Socials = models.SocialHandles{
		Instagram: req.Instagram,
		Facebook:  req.Facebook,
		TikTok:    req.TikTok,
		YouTube:   req.YouTube,
		Website:   req.Website,
	}
	p.Services = models.ServiceAttributes{
		WillingToTravel: req.WillingToTravel,
		VirtualEvents:   req.VirtualEvents,
		OutdoorEvents:   req.OutdoorEvents,
		FamilyFriendly:  req.FamilyFriendly,
		PhotoOps:        req.PhotoOps,
		FacePainting:    req.FacePainting,
	}
	p.TravelRadius = req.TravelRadius
	p.ContactEmail = strings.TrimSpace(req.ContactEmail)
	p.Categories = uniqueCategories(req.Categories)
}

func uniqueCategories(in []models.Category) []models.Category {
	seen := make(map[models.Category]struct{}, len(in))
	out := make([]models.Category, 0, len(in))
	for _, c := range in {
		if _, dup := seen[c]; dup {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	return out
}

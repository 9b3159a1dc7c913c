package services_test

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"performer-directory-backend/internal/email"
	"performer-directory-backend/internal/locations"
	"performer-directory-backend/internal/models"
	"performer-directory-backend/internal/payments"
	"performer-directory-backend/internal/services"
	"performer-directory-backend/internal/validator"
)

var (
	testLog       = zap.NewNop()
	testValidator = validator.New(locations.Default())
)

func strPtr(s string) *string { return &s }
func intPtr(n int) *int       { return &n }

type fakeProfiles struct {
	rows       map[uuid.UUID]*models.ProfileRow
	listErr    error
	lastFilter models.ProfileFilter
	created    []*models.Profile
	updated    []*models.Profile
	payments   map[uuid.UUID]models.PaymentStatus
}

func newFakeProfiles(rows ...models.ProfileRow) *fakeProfiles {
	f := &fakeProfiles{
		rows:     map[uuid.UUID]*models.ProfileRow{},
		payments: map[uuid.UUID]models.PaymentStatus{},
	}
	for i := range rows {
		r := rows[i]
		f.rows[r.ID] = &r
	}
	return f
}

func (f *fakeProfiles) ListVisibleProfiles(_ context.Context, filter models.ProfileFilter) ([]models.ProfileRow, error) {
	f.lastFilter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	var out []models.ProfileRow
	for _, r := range f.rows {
		if !r.IsActive || r.PaymentStatus != models.PaymentStatusPaid {
			continue
		}
		if filter.State != "" && (r.State == nil || *r.State != filter.State) {
			continue
		}
		if filter.City != "" && (r.City == nil || *r.City != filter.City) {
			continue
		}
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].DisplayName < out[j].DisplayName })
	return out, nil
}

func (f *fakeProfiles) GetProfile(_ context.Context, id uuid.UUID) (*models.ProfileRow, error) {
	r, ok := f.rows[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeProfiles) GetProfileByOwner(_ context.Context, userID uuid.UUID) (*models.ProfileRow, error) {
	for _, r := range f.rows {
		if r.UserID == userID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, services.ErrNotFound
}

func (f *fakeProfiles) CreateProfile(_ context.Context, p *models.Profile) error {
	f.created = append(f.created, p)
	f.rows[p.ID] = &models.ProfileRow{ID: p.ID, UserID: p.UserID, DisplayName: p.DisplayName}
	return nil
}

func (f *fakeProfiles) UpdateProfile(_ context.Context, p *models.Profile) error {
	f.updated = append(f.updated, p)
	return nil
}

func (f *fakeProfiles) UpdatePaymentStatus(_ context.Context, id uuid.UUID, status models.PaymentStatus, _ *time.Time) error {
	if _, ok := f.rows[id]; !ok {
		return services.ErrNotFound
	}
	f.payments[id] = status
	return nil
}

type fakeImages struct {
	images       map[uuid.UUID][]models.ProfileImage
	insertErrAt  int
	insertErr    error
	inserts      int
	positionCall [][]models.ProfileImage
	deleted      []uuid.UUID
}

func newFakeImages() *fakeImages {
	return &fakeImages{images: map[uuid.UUID][]models.ProfileImage{}, insertErrAt: -1}
}

func (f *fakeImages) seed(profileID uuid.UUID, n int) []models.ProfileImage {
	for i := 0; i < n; i++ {
		id := uuid.New()
		f.images[profileID] = append(f.images[profileID], models.ProfileImage{
			ID:        id,
			ProfileID: profileID,
			ImageURL:  "https://cdn.example.com/profile-images/" + profileID.String() + "/" + id.String() + ".jpg",
			Position:  i,
		})
	}
	return f.images[profileID]
}

func (f *fakeImages) ListImages(_ context.Context, profileID uuid.UUID) ([]models.ProfileImage, error) {
	out := make([]models.ProfileImage, len(f.images[profileID]))
	copy(out, f.images[profileID])
	sort.SliceStable(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (f *fakeImages) InsertImage(_ context.Context, img *models.ProfileImage) error {
	if f.inserts == f.insertErrAt {
		f.inserts++
		if f.insertErr != nil {
			return f.insertErr
		}
		return errors.New("insert failed")
	}
	f.inserts++
	f.images[img.ProfileID] = append(f.images[img.ProfileID], *img)
	return nil
}

func (f *fakeImages) DeleteImage(_ context.Context, profileID, imageID uuid.UUID) error {
	f.deleted = append(f.deleted, imageID)
	var kept []models.ProfileImage
	for _, img := range f.images[profileID] {
		if img.ID != imageID {
			kept = append(kept, img)
		}
	}
	f.images[profileID] = services.Renumber(kept)
	return nil
}

func (f *fakeImages) UpdateImagePositions(_ context.Context, profileID uuid.UUID, changed []models.ProfileImage) error {
	f.positionCall = append(f.positionCall, changed)
	for _, c := range changed {
		for i := range f.images[profileID] {
			if f.images[profileID][i].ID == c.ID {
				f.images[profileID][i].Position = c.Position
			}
		}
	}
	return nil
}

type fakeObjects struct {
	uploaded  []string
	removed   []string
	failAt    int
	calls     int
	removeErr error
}

func (f *fakeObjects) Upload(_ context.Context, path, _ string, _ []byte) (string, error) {
	defer func() { f.calls++ }()
	if f.failAt >= 0 && f.calls == f.failAt {
		return "", errors.New("storage unavailable")
	}
	f.uploaded = append(f.uploaded, path)
	return "https://cdn.example.com/profile-images/" + path, nil
}

func (f *fakeObjects) Remove(_ context.Context, path string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	f.removed = append(f.removed, path)
	return nil
}

type fakeRoles map[uuid.UUID]string

func (f fakeRoles) GetUserRole(_ context.Context, userID uuid.UUID) (string, error) {
	return f[userID], nil
}

type fakeContacts struct {
	inserted  []*models.ContactMessage
	insertErr error
	read      []uuid.UUID
	deleted   []uuid.UUID
}

func (f *fakeContacts) InsertContactMessage(_ context.Context, msg *models.ContactMessage) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserted = append(f.inserted, msg)
	return nil
}

func (f *fakeContacts) ListContactMessages(_ context.Context, unreadOnly bool) ([]models.ContactMessage, error) {
	var out []models.ContactMessage
	for _, m := range f.inserted {
		if unreadOnly && m.IsRead {
			continue
		}
		out = append(out, *m)
	}
	return out, nil
}

func (f *fakeContacts) MarkContactMessageRead(_ context.Context, id uuid.UUID) error {
	f.read = append(f.read, id)
	return nil
}

func (f *fakeContacts) DeleteContactMessage(_ context.Context, id uuid.UUID) error {
	f.deleted = append(f.deleted, id)
	return nil
}

type fakeListings struct {
	requests map[uuid.UUID]*models.FreeListingRequest
}

func newFakeListings() *fakeListings {
	return &fakeListings{requests: map[uuid.UUID]*models.FreeListingRequest{}}
}

func (f *fakeListings) InsertFreeListingRequest(_ context.Context, req *models.FreeListingRequest) error {
	cp := *req
	f.requests[req.ID] = &cp
	return nil
}

func (f *fakeListings) GetFreeListingRequest(_ context.Context, id uuid.UUID) (*models.FreeListingRequest, error) {
	r, ok := f.requests[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (f *fakeListings) ListFreeListingRequests(_ context.Context, status models.ListingStatus) ([]models.FreeListingRequest, error) {
	var out []models.FreeListingRequest
	for _, r := range f.requests {
		if status == "" || r.Status == status {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeListings) SetFreeListingStatus(_ context.Context, id uuid.UUID, from, to models.ListingStatus, reviewer uuid.UUID) error {
	r, ok := f.requests[id]
	if !ok {
		return services.ErrNotFound
	}
	if r.Status != from {
		return services.ErrInvalidTransition
	}
	r.Status = to
	r.ReviewedBy = &reviewer
	return nil
}

type fakeSender struct {
	sent []*email.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, msg *email.Message) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

type fakeCheckout struct {
	token string
	req   payments.CheckoutSessionRequest
	url   string
	err   error
}

func (f *fakeCheckout) CreateCheckoutSession(_ context.Context, token string, in payments.CheckoutSessionRequest) (string, error) {
	f.token = token
	f.req = in
	return f.url, f.err
}

func visibleRow(name, state, city string, categories ...models.Category) models.ProfileRow {
	row := models.ProfileRow{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		DisplayName:   name,
		State:         strPtr(state),
		City:          strPtr(city),
		IsActive:      true,
		PaymentStatus: models.PaymentStatusPaid,
	}
	for _, c := range categories {
		row.ProfileCategories = append(row.ProfileCategories, models.CategoryRow{Category: c})
	}
	return row
}

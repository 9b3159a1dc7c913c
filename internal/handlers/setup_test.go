package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"performer-directory-backend/internal/captcha"
	"performer-directory-backend/internal/config"
	"performer-directory-backend/internal/email"
	"performer-directory-backend/internal/handlers"
	"performer-directory-backend/internal/locations"
	"performer-directory-backend/internal/middleware"
	"performer-directory-backend/internal/models"
	"performer-directory-backend/internal/payments"
	"performer-directory-backend/internal/services"
	"performer-directory-backend/internal/validator"
)

const (
	jwtSecret     = "handler-test-secret-that-is-long-enough"
	webhookSecret = "whsec_test"
	placeholder   = "https://cdn.example.com/placeholder.png"
)

// memStore is an in-memory implementation of every store interface.
type memStore struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*models.ProfileRow
	images   map[uuid.UUID][]models.ProfileImage
	messages []models.ContactMessage
	listings map[uuid.UUID]*models.FreeListingRequest
	roles    map[uuid.UUID]string

	// beforeInsert runs ahead of each image insert, outside the lock.
	beforeInsert func(profileID uuid.UUID)
}

func newMemStore() *memStore {
	return &memStore{
		profiles: map[uuid.UUID]*models.ProfileRow{},
		images:   map[uuid.UUID][]models.ProfileImage{},
		listings: map[uuid.UUID]*models.FreeListingRequest{},
		roles:    map[uuid.UUID]string{},
	}
}

func (m *memStore) addProfile(row models.ProfileRow) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.profiles[row.ID] = &row
}

func (m *memStore) ListVisibleProfiles(_ context.Context, filter models.ProfileFilter) ([]models.ProfileRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ProfileRow
	for _, r := range m.profiles {
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

func (m *memStore) GetProfile(_ context.Context, id uuid.UUID) (*models.ProfileRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.profiles[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memStore) GetProfileByOwner(_ context.Context, userID uuid.UUID) (*models.ProfileRow, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, r := range m.profiles {
		if r.UserID == userID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, services.ErrNotFound
}

func (m *memStore) CreateProfile(_ context.Context, p *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	state, city := p.State, p.City
	m.profiles[p.ID] = &models.ProfileRow{
		ID:            p.ID,
		UserID:        p.UserID,
		DisplayName:   p.DisplayName,
		State:         &state,
		City:          &city,
		PaymentStatus: p.PaymentStatus,
	}
	return nil
}

func (m *memStore) UpdateProfile(_ context.Context, p *models.Profile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.profiles[p.ID]
	if !ok {
		return services.ErrNotFound
	}
	r.DisplayName = p.DisplayName
	return nil
}

func (m *memStore) UpdatePaymentStatus(_ context.Context, id uuid.UUID, status models.PaymentStatus, expiresAt *time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.profiles[id]
	if !ok {
		return services.ErrNotFound
	}
	r.PaymentStatus = status
	r.PaymentExpiresAt = expiresAt
	if status == models.PaymentStatusPaid {
		r.IsActive = true
	}
	return nil
}

func (m *memStore) ListImages(_ context.Context, profileID uuid.UUID) ([]models.ProfileImage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.ProfileImage, len(m.images[profileID]))
	copy(out, m.images[profileID])
	sort.Slice(out, func(i, j int) bool { return out[i].Position < out[j].Position })
	return out, nil
}

func (m *memStore) InsertImage(_ context.Context, img *models.ProfileImage) error {
	if m.beforeInsert != nil {
		m.beforeInsert(img.ProfileID)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	count := len(m.images[img.ProfileID])
	if count >= services.MaxImagesPerProfile {
		return services.ErrImageCapacity
	}
	img.Position = count
	m.images[img.ProfileID] = append(m.images[img.ProfileID], *img)
	return nil
}

func (m *memStore) DeleteImage(_ context.Context, profileID, imageID uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []models.ProfileImage
	for _, img := range m.images[profileID] {
		if img.ID != imageID {
			kept = append(kept, img)
		}
	}
	sort.Slice(kept, func(i, j int) bool { return kept[i].Position < kept[j].Position })
	for i := range kept {
		kept[i].Position = i
	}
	m.images[profileID] = kept
	return nil
}

func (m *memStore) UpdateImagePositions(_ context.Context, profileID uuid.UUID, changed []models.ProfileImage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range changed {
		for i := range m.images[profileID] {
			if m.images[profileID][i].ID == c.ID {
				m.images[profileID][i].Position = c.Position
			}
		}
	}
	return nil
}

func (m *memStore) InsertContactMessage(_ context.Context, msg *models.ContactMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, *msg)
	return nil
}

func (m *memStore) ListContactMessages(_ context.Context, unreadOnly bool) ([]models.ContactMessage, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ContactMessage
	for _, msg := range m.messages {
		if unreadOnly && msg.IsRead {
			continue
		}
		out = append(out, msg)
	}
	return out, nil
}

func (m *memStore) MarkContactMessageRead(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.messages {
		if m.messages[i].ID == id {
			m.messages[i].IsRead = true
			return nil
		}
	}
	return services.ErrNotFound
}

func (m *memStore) DeleteContactMessage(_ context.Context, id uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := range m.messages {
		if m.messages[i].ID == id {
			m.messages = append(m.messages[:i], m.messages[i+1:]...)
			return nil
		}
	}
	return services.ErrNotFound
}

func (m *memStore) InsertFreeListingRequest(_ context.Context, req *models.FreeListingRequest) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *req
	m.listings[req.ID] = &cp
	return nil
}

func (m *memStore) GetFreeListingRequest(_ context.Context, id uuid.UUID) (*models.FreeListingRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.listings[id]
	if !ok {
		return nil, services.ErrNotFound
	}
	cp := *r
	return &cp, nil
}

func (m *memStore) ListFreeListingRequests(_ context.Context, status models.ListingStatus) ([]models.FreeListingRequest, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.FreeListingRequest
	for _, r := range m.listings {
		if status == "" || r.Status == status {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (m *memStore) SetFreeListingStatus(_ context.Context, id uuid.UUID, from, to models.ListingStatus, reviewer uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	r, ok := m.listings[id]
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

func (m *memStore) GetUserRole(_ context.Context, userID uuid.UUID) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.roles[userID], nil
}

type memObjects struct {
	mu      sync.Mutex
	objects map[string][]byte
	removed []string
}

func (o *memObjects) Upload(_ context.Context, path, _ string, data []byte) (string, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.objects[path] = data
	return "https://cdn.example.com/profile-images/" + path, nil
}

func (o *memObjects) Remove(_ context.Context, path string) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	delete(o.objects, path)
	o.removed = append(o.removed, path)
	return nil
}

type outbox struct {
	mu   sync.Mutex
	sent []*email.Message
	err  error
}

func (o *outbox) Send(_ context.Context, msg *email.Message) error {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.err != nil {
		return o.err
	}
	o.sent = append(o.sent, msg)
	return nil
}

type stubCheckout struct {
	token string
	url   string
}

func (s *stubCheckout) CreateCheckoutSession(_ context.Context, accessToken string, _ payments.CheckoutSessionRequest) (string, error) {
	s.token = accessToken
	return s.url, nil
}

type stubAuth struct{}

func (stubAuth) SignIn(_ context.Context, emailAddr, password string) (*models.Session, error) {
	if password != "correct horse" {
		return nil, services.ErrInvalidCredentials
	}
	return &models.Session{AccessToken: "access", RefreshToken: "refresh", ExpiresIn: 3600, User: models.User{ID: uuid.New(), Email: emailAddr}}, nil
}

func (stubAuth) Refresh(_ context.Context, refreshToken string) (*models.Session, error) {
	if refreshToken != "refresh" {
		return nil, services.ErrInvalidCredentials
	}
	return &models.Session{AccessToken: "access-2", RefreshToken: "refresh-2", ExpiresIn: 3600}, nil
}

type testServer struct {
	router   *gin.Engine
	store    *memStore
	objects  *memObjects
	outbox   *outbox
	checkout *stubCheckout
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	log := zap.NewNop()
	dir := locations.Default()
	v := validator.New(dir)
	store := newMemStore()
	objects := &memObjects{objects: map[string][]byte{}}
	box := &outbox{}
	checkout := &stubCheckout{url: "https://checkout.example.com/session/abc"}
	issuer := captcha.NewIssuer("captcha-secret", 10*time.Minute).WithDigits(func() int { return 3 })
	access := services.NewAccess(store)

	profiles := services.NewProfileService(store, store, access, v, dir, placeholder, log)
	images := services.NewImageService(store, store, objects, access, log)
	contacts := services.NewContactService(store, store, issuer, v, log)
	listings := services.NewListingService(store, v, log)
	relay := services.NewRelayService(store, box, v, "noreply@example.com", "admin@example.com", log)
	billing := services.NewBillingService(checkout, store, v, webhookSecret, log)

	router := handlers.NewRouter(handlers.RouterDeps{
		Log:       log,
		Auth:      middleware.AuthMiddleware(&config.Config{SupabaseJWTSecret: jwtSecret}),
		Admin:     middleware.RequireAdmin(access, log),
		Reference: handlers.NewReferenceHandler(dir),
		Profiles:  handlers.NewProfilesHandler(profiles, log),
		Images:    handlers.NewImagesHandler(images, log),
		Inquiries: handlers.NewInquiriesHandler(contacts, log),
		Listings:  handlers.NewListingsHandler(listings, log),
		Sessions:  handlers.NewAuthHandler(stubAuth{}, access, v, log),
		Checkout:  handlers.NewCheckoutHandler(billing, log),
		Webhook:   handlers.NewWebhookHandler(billing, log),
		AdminDesk: handlers.NewAdminHandler(contacts, listings, log),
		Relays:    handlers.NewRelaysHandler(relay, log),
	})

	return &testServer{router: router, store: store, objects: objects, outbox: box, checkout: checkout}
}

func bearer(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   userID.String(),
		"email": "user@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(jwtSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func authHeader(t *testing.T, userID uuid.UUID) http.Header {
	return http.Header{"Authorization": []string{bearer(t, userID)}}
}

func decode(t *testing.T, w *httptest.ResponseRecorder, dst interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), dst))
}

func strPtr(s string) *string { return &s }

func visibleProfile(name, state, city string, categories ...models.Category) models.ProfileRow {
	row := models.ProfileRow{
		ID:            uuid.New(),
		UserID:        uuid.New(),
		DisplayName:   name,
		State:         strPtr(state),
		City:          strPtr(city),
		IsActive:      true,
		PaymentStatus: models.PaymentStatusPaid,
		ContactEmail:  strPtr("booking@example.com"),
	}
	for _, c := range categories {
		row.ProfileCategories = append(row.ProfileCategories, models.CategoryRow{Category: c})
	}
	return row
}

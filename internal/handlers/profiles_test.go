package handlers_test

import (
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"performer-directory-backend/internal/models"
)

func TestListProfiles_FiltersAndHidesOwnerFields(t *testing.T) {
	s := newTestServer(t)
	s.store.addProfile(visibleProfile("Ava", "NY", "Brooklyn", models.CategoryPrincess))
	s.store.addProfile(visibleProfile("Ben", "NY", "Albany", models.CategoryPirate))
	s.store.addProfile(visibleProfile("Cal", "TX", "Austin", models.CategoryPirate, models.CategoryVillain))
	hidden := visibleProfile("Dee", "NY", "Brooklyn", models.CategoryPrincess)
	hidden.PaymentStatus = models.PaymentStatusExpired
	s.store.addProfile(hidden)

	w := s.do(t, http.MethodGet, "/api/v1/profiles?state=ny", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp models.ProfileListResponse
	decode(t, w, &resp)
	assert.Equal(t, 2, resp.Count)
	assert.Equal(t, "Ava", resp.Profiles[0].DisplayName)
	assert.Equal(t, "Ben", resp.Profiles[1].DisplayName)
	assert.Empty(t, resp.Profiles[0].PaymentStatus)
	assert.Equal(t, placeholder, resp.Profiles[0].MainImageURL)

	w = s.do(t, http.MethodGet, "/api/v1/profiles?category=pirate&category=princess&state=NY&city=Brooklyn", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &resp)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "Ava", resp.Profiles[0].DisplayName)
}

func TestListProfiles_EmptyIsArray(t *testing.T) {
	s := newTestServer(t)

	w := s.do(t, http.MethodGet, "/api/v1/profiles?state=WY", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"profiles":[],"count":0}`, w.Body.String())
}

func TestGetProfile(t *testing.T) {
	s := newTestServer(t)
	visible := visibleProfile("Ava", "NY", "Brooklyn")
	s.store.addProfile(visible)
	unpaid := visibleProfile("Ben", "NY", "Brooklyn")
	unpaid.IsActive = false
	unpaid.PaymentStatus = models.PaymentStatusUnpaid
	s.store.addProfile(unpaid)

	w := s.do(t, http.MethodGet, "/api/v1/profiles/"+visible.ID.String(), nil, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/profiles/"+unpaid.ID.String(), nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/profiles/"+uuid.NewString(), nil, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/profiles/not-a-uuid", nil, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMyProfile_Lifecycle(t *testing.T) {
	s := newTestServer(t)
	userID := uuid.New()
	auth := authHeader(t, userID)

	w := s.do(t, http.MethodGet, "/api/v1/me/profile", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = s.do(t, http.MethodGet, "/api/v1/me/profile", nil, auth)
	assert.Equal(t, http.StatusNotFound, w.Code)

	req := models.ProfileRequest{
		DisplayName:  "Captain Cosplay",
		State:        "TX",
		City:         "austin",
		ContactEmail: "cap@example.com",
		Categories:   []models.Category{models.CategorySuperhero, models.CategorySuperhero},
	}
	w = s.do(t, http.MethodPost, "/api/v1/me/profile", req, auth)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var created models.ProfileResponse
	decode(t, w, &created)
	assert.False(t, created.IsActive)
	assert.Equal(t, models.PaymentStatusUnpaid, created.PaymentStatus)
	assert.Equal(t, "Austin", created.City)
	assert.Equal(t, []models.Category{models.CategorySuperhero}, created.Categories)

	w = s.do(t, http.MethodPost, "/api/v1/me/profile", req, auth)
	assert.Equal(t, http.StatusConflict, w.Code)

	req.DisplayName = "Captain Costume"
	w = s.do(t, http.MethodPut, "/api/v1/me/profile", req, auth)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var updated models.ProfileResponse
	decode(t, w, &updated)
	assert.Equal(t, "Captain Costume", updated.DisplayName)
	assert.Equal(t, created.ID, updated.ID)
}

func TestMyProfile_Validation(t *testing.T) {
	s := newTestServer(t)

	req := models.ProfileRequest{
		DisplayName:  "X",
		State:        "ZZ",
		City:         "Nowhere",
		ContactEmail: "nope",
	}
	w := s.do(t, http.MethodPost, "/api/v1/me/profile", req, authHeader(t, uuid.New()))
	require.Equal(t, http.StatusBadRequest, w.Code)
	var resp models.ErrorResponse
	decode(t, w, &resp)
	assert.Contains(t, resp.Fields, "display_name")
	assert.Contains(t, resp.Fields, "state")
	assert.Contains(t, resp.Fields, "contact_email")
}

func TestAdminUpdateProfile(t *testing.T) {
	s := newTestServer(t)
	row := visibleProfile("Ava", "NY", "Brooklyn")
	s.store.addProfile(row)
	admin := uuid.New()
	s.store.roles[admin] = "admin"

	req := models.ProfileRequest{
		DisplayName:  "Ava Renamed",
		State:        "NY",
		City:         "Brooklyn",
		ContactEmail: "ava@example.com",
	}

	w := s.do(t, http.MethodPut, "/api/v1/admin/profiles/"+row.ID.String(), req, authHeader(t, uuid.New()))
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.do(t, http.MethodPut, "/api/v1/admin/profiles/"+row.ID.String(), req, authHeader(t, admin))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Ava Renamed", s.store.profiles[row.ID].DisplayName)
}

package handlers_test

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"performer-directory-backend/internal/models"
	"performer-directory-backend/internal/services"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR")

func (s *testServer) upload(t *testing.T, profileID, userID uuid.UUID, files map[string][]byte) *httptest.ResponseRecorder {
	t.Helper()
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	for name, data := range files {
		part, err := mw.CreateFormFile("images", name)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/profiles/"+profileID.String()+"/images", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", bearer(t, userID))
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func seedImages(s *testServer, profileID uuid.UUID, n int) []models.ProfileImage {
	for i := 0; i < n; i++ {
		id := uuid.New()
		s.store.images[profileID] = append(s.store.images[profileID], models.ProfileImage{
			ID:        id,
			ProfileID: profileID,
			ImageURL:  "https://cdn.example.com/profile-images/" + profileID.String() + "/" + id.String() + ".png",
			Position:  i,
		})
	}
	return s.store.images[profileID]
}

func imageIDs(images []models.ProfileImage) []uuid.UUID {
	ids := make([]uuid.UUID, len(images))
	for i, img := range images {
		ids[i] = img.ID
	}
	return ids
}

func TestUploadImages(t *testing.T) {
	s := newTestServer(t)
	row := visibleProfile("Ava", "NY", "Brooklyn")
	s.store.addProfile(row)
	seedImages(s, row.ID, 2)

	w := s.upload(t, row.ID, row.UserID, map[string][]byte{"a.png": pngHeader})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	var resp models.UploadResponse
	decode(t, w, &resp)
	require.Len(t, resp.Images, 1)
	assert.Equal(t, 2, resp.Images[0].Position)
	assert.Len(t, s.objects.objects, 1)

	w = s.upload(t, row.ID, row.UserID, map[string][]byte{"b.png": pngHeader, "c.png": pngHeader})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Len(t, s.store.images[row.ID], 3)
}

func TestUploadImages_RejectsOthersAndBadFiles(t *testing.T) {
	s := newTestServer(t)
	row := visibleProfile("Ava", "NY", "Brooklyn")
	s.store.addProfile(row)

	w := s.upload(t, row.ID, uuid.New(), map[string][]byte{"a.png": pngHeader})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = s.upload(t, row.ID, row.UserID, map[string][]byte{"notes.txt": []byte("plain text")})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.upload(t, uuid.New(), row.UserID, map[string][]byte{"a.png": pngHeader})
	assert.Equal(t, http.StatusNotFound, w.Code)

	assert.Empty(t, s.objects.objects)
}

func TestUploadImages_BodyTooLarge(t *testing.T) {
	s := newTestServer(t)
	row := visibleProfile("Ava", "NY", "Brooklyn")
	s.store.addProfile(row)

	// each file is under the per-image limit, the request as a whole is not
	chunk := append(append([]byte{}, pngHeader...), make([]byte, 9<<19)...)
	files := map[string][]byte{}
	for _, name := range []string{"a.png", "b.png", "c.png", "d.png", "e.png"} {
		files[name] = chunk
	}

	w := s.upload(t, row.ID, row.UserID, files)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code, w.Body.String())
	assert.Empty(t, s.objects.objects)
	assert.Empty(t, s.store.images[row.ID])
}

func TestUploadImages_SlotTakenMeanwhile(t *testing.T) {
	s := newTestServer(t)
	row := visibleProfile("Ava", "NY", "Brooklyn")
	s.store.addProfile(row)
	seedImages(s, row.ID, 3)

	s.store.beforeInsert = func(profileID uuid.UUID) {
		s.store.beforeInsert = nil
		s.store.mu.Lock()
		defer s.store.mu.Unlock()
		id := uuid.New()
		s.store.images[profileID] = append(s.store.images[profileID], models.ProfileImage{
			ID: id, ProfileID: profileID, ImageURL: "https://cdn.example.com/profile-images/" + id.String() + ".png", Position: 3,
		})
	}

	w := s.upload(t, row.ID, row.UserID, map[string][]byte{"a.png": pngHeader})
	assert.Equal(t, http.StatusConflict, w.Code, w.Body.String())
	assert.Len(t, s.store.images[row.ID], services.MaxImagesPerProfile)
	assert.Empty(t, s.objects.objects, "the orphaned object is removed")
}

func TestDeleteImage_Renumbers(t *testing.T) {
	s := newTestServer(t)
	row := visibleProfile("Ava", "NY", "Brooklyn")
	s.store.addProfile(row)
	seeded := seedImages(s, row.ID, 3)
	first := seeded[0]

	w := s.do(t, http.MethodDelete, "/api/v1/profiles/"+row.ID.String()+"/images/"+first.ID.String(), nil, authHeader(t, row.UserID))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp models.ImagesResponse
	decode(t, w, &resp)
	require.Len(t, resp.Images, 2)
	assert.Equal(t, 0, resp.Images[0].Position)
	assert.Equal(t, 1, resp.Images[1].Position)
	assert.Equal(t, []string{row.ID.String() + "/" + first.ID.String() + ".png"}, s.objects.removed)

	w = s.do(t, http.MethodDelete, "/api/v1/profiles/"+row.ID.String()+"/images/"+first.ID.String(), nil, authHeader(t, row.UserID))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestReorderImages(t *testing.T) {
	s := newTestServer(t)
	row := visibleProfile("Ava", "NY", "Brooklyn")
	s.store.addProfile(row)
	seeded := seedImages(s, row.ID, 4)
	before := imageIDs(seeded)
	path := "/api/v1/profiles/" + row.ID.String() + "/images/reorder"
	auth := authHeader(t, row.UserID)

	w := s.do(t, http.MethodPost, path, map[string]int{"from": 3, "to": 0}, auth)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp models.ImagesResponse
	decode(t, w, &resp)
	assert.Equal(t, []uuid.UUID{before[3], before[0], before[1], before[2]}, imageIDs(resp.Images))
	for i, img := range resp.Images {
		assert.Equal(t, i, img.Position)
	}

	w = s.do(t, http.MethodPost, path, map[string]int{"from": 0, "to": 4}, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, path, map[string]int{"from": 1}, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMoveImage(t *testing.T) {
	s := newTestServer(t)
	row := visibleProfile("Ava", "NY", "Brooklyn")
	s.store.addProfile(row)
	seeded := seedImages(s, row.ID, 3)
	before := imageIDs(seeded)
	base := "/api/v1/profiles/" + row.ID.String() + "/images/"
	auth := authHeader(t, row.UserID)

	w := s.do(t, http.MethodPost, base+before[1].String()+"/move-up", nil, auth)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp models.ImagesResponse
	decode(t, w, &resp)
	assert.Equal(t, []uuid.UUID{before[1], before[0], before[2]}, imageIDs(resp.Images))

	w = s.do(t, http.MethodPost, base+before[1].String()+"/move-up", nil, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code, "first image cannot move up")

	w = s.do(t, http.MethodPost, base+before[2].String()+"/move-down", nil, auth)
	assert.Equal(t, http.StatusBadRequest, w.Code, "last image cannot move down")

	w = s.do(t, http.MethodPost, base+before[1].String()+"/move-down", nil, auth)
	require.Equal(t, http.StatusOK, w.Code)
	decode(t, w, &resp)
	assert.Equal(t, before, imageIDs(resp.Images))

	w = s.do(t, http.MethodPost, base+uuid.NewString()+"/move-down", nil, auth)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListImages_Public(t *testing.T) {
	s := newTestServer(t)
	row := visibleProfile("Ava", "NY", "Brooklyn")
	s.store.addProfile(row)
	seedImages(s, row.ID, 2)

	w := s.do(t, http.MethodGet, "/api/v1/profiles/"+row.ID.String()+"/images", nil, nil)
	require.Equal(t, http.StatusOK, w.Code)
	var resp models.ImagesResponse
	decode(t, w, &resp)
	assert.Len(t, resp.Images, 2)
}

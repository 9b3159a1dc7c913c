package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"performer-directory-backend/internal/captcha"
	"performer-directory-backend/internal/models"
	"performer-directory-backend/internal/services"
	"performer-directory-backend/internal/validator"
)

func newContactService(profiles *fakeProfiles, contacts *fakeContacts) *services.ContactService {
	issuer := captcha.NewIssuer("test-secret", time.Minute).WithDigits(func() int { return 4 })
	return services.NewContactService(profiles, contacts, issuer, testValidator, testLog)
}

func inquiry(token string, answer int) *models.InquiryRequest {
	return &models.InquiryRequest{
		Name:          "Jane Doe",
		Email:         "jane@example.com",
		Phone:         "212-555-0100",
		City:          "New York",
		State:         "ny",
		ZipCode:       "10001-1234",
		Message:       "Birthday party for my son",
		EventTypes:    []models.EventType{models.EventBirthdayParty, models.EventOther},
		CaptchaToken:  token,
		CaptchaAnswer: &answer,
	}
}

func TestSubmitInquiry(t *testing.T) {
	row := visibleRow("A", "NY", "Albany")
	contacts := &fakeContacts{}
	svc := newContactService(newFakeProfiles(row), contacts)

	challenge := svc.NewChallenge()
	msg, err := svc.SubmitInquiry(context.Background(), row.ID, inquiry(challenge.Token, 8))
	require.NoError(t, err)

	require.Len(t, contacts.inserted, 1)
	assert.Same(t, msg, contacts.inserted[0])
	assert.False(t, msg.IsRead)
	assert.Equal(t, row.ID, *msg.ProfileID)
	assert.Equal(t, "NY", msg.State)
	assert.Len(t, msg.EventTypes, 2)
}

func TestSubmitInquiry_CaptchaMismatch(t *testing.T) {
	row := visibleRow("A", "NY", "Albany")
	contacts := &fakeContacts{}
	svc := newContactService(newFakeProfiles(row), contacts)

	challenge := svc.NewChallenge()
	_, err := svc.SubmitInquiry(context.Background(), row.ID, inquiry(challenge.Token, 9))
	assert.ErrorIs(t, err, services.ErrCaptchaMismatch)

	_, err = svc.SubmitInquiry(context.Background(), row.ID, inquiry("forged.token", 8))
	assert.ErrorIs(t, err, services.ErrCaptchaMismatch)
	assert.Empty(t, contacts.inserted)
}

func TestSubmitInquiry_Validation(t *testing.T) {
	row := visibleRow("A", "NY", "Albany")
	contacts := &fakeContacts{}
	svc := newContactService(newFakeProfiles(row), contacts)

	req := inquiry(svc.NewChallenge().Token, 8)
	req.EventTypes = nil
	req.ZipCode = "1234"

	_, err := svc.SubmitInquiry(context.Background(), row.ID, req)
	var verr *validator.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Errors, "event_types")
	assert.Contains(t, verr.Errors, "zip_code")
	assert.Empty(t, contacts.inserted)
}

func TestSubmitInquiry_HiddenProfile(t *testing.T) {
	row := visibleRow("A", "NY", "Albany")
	row.PaymentStatus = models.PaymentStatusExpired
	svc := newContactService(newFakeProfiles(row), &fakeContacts{})

	_, err := svc.SubmitInquiry(context.Background(), row.ID, inquiry(svc.NewChallenge().Token, 8))
	assert.ErrorIs(t, err, services.ErrNotFound)

	_, err = svc.SubmitInquiry(context.Background(), uuid.New(), inquiry(svc.NewChallenge().Token, 8))
	assert.ErrorIs(t, err, services.ErrNotFound)
}

func TestListMessages_NeverNil(t *testing.T) {
	svc := newContactService(newFakeProfiles(), &fakeContacts{})

	msgs, err := svc.ListMessages(context.Background(), true)
	require.NoError(t, err)
	assert.NotNil(t, msgs)
}

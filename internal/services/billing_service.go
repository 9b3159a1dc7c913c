package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"performer-directory-backend/internal/models"
	"performer-directory-backend/internal/payments"
	"performer-directory-backend/internal/validator"
)

type CheckoutCreator interface {
	CreateCheckoutSession(ctx context.Context, accessToken string, in payments.CheckoutSessionRequest) (string, error)
}

// BillingService starts checkouts and applies signed payment notifications.
type BillingService struct {
	checkout      CheckoutCreator
	profiles      ProfileStore
	validator     *validator.Validator
	webhookSecret []byte
	log           *zap.Logger
}

func NewBillingService(checkout CheckoutCreator, profiles ProfileStore, v *validator.Validator, webhookSecret string, log *zap.Logger) *BillingService {
	return &BillingService{
		checkout:      checkout,
		profiles:      profiles,
		validator:     v,
		webhookSecret: []byte(webhookSecret),
		log:           log,
	}
}

func (s *BillingService) CreateCheckout(ctx context.Context, accessToken string, req *models.CheckoutRequest) (string, error) {
	if err := s.validator.Validate(req); err != nil {
		return "", err
	}
	url, err := s.checkout.CreateCheckoutSession(ctx, accessToken, payments.CheckoutSessionRequest{
		PriceID:    req.PriceID,
		Mode:       req.Mode,
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
	})
	if err != nil {
		s.log.Error("checkout session failed", zap.String("price_id", req.PriceID), zap.Error(err))
		return "", err
	}
	return url, nil
}

// VerifySignature checks a hex HMAC-SHA256 of body. With no secret
// configured every signature is rejected.
func (s *BillingService) VerifySignature(body []byte, signature string) error {
	if len(s.webhookSecret) == 0 {
		return ErrInvalidSignature
	}
	got, err := hex.DecodeString(strings.TrimSpace(strings.TrimPrefix(signature, "sha256=")))
	if err != nil {
		return ErrInvalidSignature
	}
	mac := hmac.New(sha256.New, s.webhookSecret)
	mac.Write(body)
	if !hmac.Equal(got, mac.Sum(nil)) {
		return ErrInvalidSignature
	}
	return nil
}

// ApplyPaymentEvent records the payment status; a paid profile becomes active.
func (s *BillingService) ApplyPaymentEvent(ctx context.Context, event *models.PaymentEvent) error {
	if s.profiles == nil {
		return ErrUnavailable
	}
	if err := s.validator.Validate(event); err != nil {
		return err
	}

	profileID, err := uuid.Parse(event.ProfileID)
	if err != nil {
		return validator.FieldError("profile_id", "must be a valid UUID")
	}

	var expiresAt *time.Time
	if event.ExpiresAt != nil && *event.ExpiresAt != "" {
		t, err := time.Parse(time.RFC3339, *event.ExpiresAt)
		if err != nil {
			return validator.FieldError("expires_at", "must be an RFC 3339 timestamp")
		}
		expiresAt = &t
	}

	if err := s.profiles.UpdatePaymentStatus(ctx, profileID, event.PaymentStatus, expiresAt); err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}

	s.log.Info("payment status updated",
		zap.String("profile_id", profileID.String()),
		zap.String("payment_status", string(event.PaymentStatus)))
	return nil
}

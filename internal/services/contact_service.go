package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"performer-directory-backend/internal/captcha"
	"performer-directory-backend/internal/models"
	"performer-directory-backend/internal/validator"
)

// ContactService takes visitor inquiries and serves the admin inbox.
type ContactService struct {
	profiles  ProfileReader
	contacts  ContactStore
	captcha   *captcha.Issuer
	validator *validator.Validator
	log       *zap.Logger
}

func NewContactService(profiles ProfileReader, contacts ContactStore, issuer *captcha.Issuer, v *validator.Validator, log *zap.Logger) *ContactService {
	return &ContactService{
		profiles:  profiles,
		contacts:  contacts,
		captcha:   issuer,
		validator: v,
		log:       log,
	}
}

func (s *ContactService) NewChallenge() captcha.Challenge {
	return s.captcha.New()
}

// SubmitInquiry validates req, checks the arithmetic challenge and stores an
// unread message for a visible profile. Nothing is stored when the challenge
// fails.
func (s *ContactService) SubmitInquiry(ctx context.Context, profileID uuid.UUID, req *models.InquiryRequest) (*models.ContactMessage, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	if err := s.captcha.Verify(req.CaptchaToken, *req.CaptchaAnswer); err != nil {
		if !errors.Is(err, captcha.ErrMismatch) {
			s.log.Info("captcha rejected", zap.Error(err))
		}
		return nil, fmt.Errorf("%w: %v", ErrCaptchaMismatch, err)
	}

	row, err := s.profiles.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if !row.IsActive || row.PaymentStatus != models.PaymentStatusPaid {
		return nil, ErrNotFound
	}

	pid := profileID
	msg := &models.ContactMessage{
		ID:          uuid.New(),
		ProfileID:   &pid,
		SenderName:  strings.TrimSpace(req.Name),
		SenderEmail: strings.TrimSpace(req.Email),
		SenderPhone: strings.TrimSpace(req.Phone),
		City:        strings.TrimSpace(req.City),
		State:       strings.ToUpper(strings.TrimSpace(req.State)),
		ZipCode:     strings.TrimSpace(req.ZipCode),
		EventTypes:  req.EventTypes,
		Message:     req.Message,
		IsRead:      false,
		CreatedAt:   time.Now(),
	}

	if err := s.contacts.InsertContactMessage(ctx, msg); err != nil {
		s.log.Error("failed to store inquiry",
			zap.String("profile_id", profileID.String()),
			zap.Error(err))
		return nil, err
	}
	return msg, nil
}

func (s *ContactService) ListMessages(ctx context.Context, unreadOnly bool) ([]models.ContactMessage, error) {
	msgs, err := s.contacts.ListContactMessages(ctx, unreadOnly)
	if err != nil {
		return nil, err
	}
	if msgs == nil {
		msgs = []models.ContactMessage{}
	}
	return msgs, nil
}

func (s *ContactService) MarkRead(ctx context.Context, id uuid.UUID) error {
	return s.contacts.MarkContactMessageRead(ctx, id)
}

func (s *ContactService) DeleteMessage(ctx context.Context, id uuid.UUID) error {
	return s.contacts.DeleteContactMessage(ctx, id)
}

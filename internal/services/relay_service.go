package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"performer-directory-backend/internal/email"
	"performer-directory-backend/internal/models"
	"performer-directory-backend/internal/validator"
)

// RelayService backs the two email relay endpoints. Each call has at most
// one database write and one email; neither compensates for the other.
type RelayService struct {
	contacts  ContactStore
	sender    email.Sender
	validator *validator.Validator
	from      string
	adminTo   string
	log       *zap.Logger
}

func NewRelayService(contacts ContactStore, sender email.Sender, v *validator.Validator, from, adminTo string, log *zap.Logger) *RelayService {
	return &RelayService{
		contacts:  contacts,
		sender:    sender,
		validator: v,
		from:      from,
		adminTo:   adminTo,
		log:       log,
	}
}

// RelayContact stores the message and then emails the performer.
func (s *RelayService) RelayContact(ctx context.Context, req *models.ContactRelayRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	profileID, err := uuid.Parse(req.ProfileID)
	if err != nil {
		return validator.FieldError("profileId", "must be a valid UUID")
	}

	msg := &models.ContactMessage{
		ID:          uuid.New(),
		ProfileID:   &profileID,
		SenderName:  req.SenderName,
		SenderEmail: req.SenderEmail,
		Message:     req.Message,
		IsRead:      false,
		CreatedAt:   time.Now(),
	}
	if err := s.contacts.InsertContactMessage(ctx, msg); err != nil {
		return fmt.Errorf("failed to store contact message: %w", err)
	}

	mail, err := email.ContactNotification(s.from, req)
	if err != nil {
		return fmt.Errorf("failed to render email: %w", err)
	}
	if err := s.sender.Send(ctx, mail); err != nil {
		s.log.Error("contact email failed after message was stored",
			zap.String("message_id", msg.ID.String()),
			zap.Error(err))
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// RelayFreeListing emails the application to the admin inbox. Nothing is stored.
func (s *RelayService) RelayFreeListing(ctx context.Context, app *models.FreeListingApplication) error {
	if err := s.validator.Validate(app); err != nil {
		return err
	}

	mail, err := email.FreeListingNotification(s.from, s.adminTo, app)
	if err != nil {
		return fmt.Errorf("failed to render email: %w", err)
	}
	if err := s.sender.Send(ctx, mail); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

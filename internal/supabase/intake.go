package supabase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"performer-directory-backend/internal/models"
	"performer-directory-backend/internal/services"
)

func (d *DatabaseClient) InsertContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	eventTypes := make([]string, len(msg.EventTypes))
	for i, e := range msg.EventTypes {
		eventTypes[i] = string(e)
	}

	err := d.db.QueryRowContext(ctx, `
		INSERT INTO contact_messages (id, profile_id, sender_name, sender_email, sender_phone,
			city, state, zip_code, event_types, message, is_read)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING created_at
	`, msg.ID, msg.ProfileID, msg.SenderName, msg.SenderEmail, nullString(msg.SenderPhone),
		nullString(msg.City), nullString(msg.State), nullString(msg.ZipCode),
		pq.Array(eventTypes), msg.Message, msg.IsRead,
	).Scan(&msg.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert contact message: %w", err)
	}
	return nil
}

func (d *DatabaseClient) ListContactMessages(ctx context.Context, unreadOnly bool) ([]models.ContactMessage, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, profile_id, sender_name, sender_email, COALESCE(sender_phone, ''),
			COALESCE(city, ''), COALESCE(state, ''), COALESCE(zip_code, ''),
			event_types, message, is_read, created_at
		FROM contact_messages
		WHERE ($1 = false OR is_read = false)
		ORDER BY created_at DESC
	`, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("failed to list contact messages: %w", err)
	}
	defer rows.Close()

	messages := []models.ContactMessage{}
	for rows.Next() {
		var msg models.ContactMessage
		var eventTypes []string
		err := rows.Scan(
			&msg.ID, &msg.ProfileID, &msg.SenderName, &msg.SenderEmail, &msg.SenderPhone,
			&msg.City, &msg.State, &msg.ZipCode,
			pq.Array(&eventTypes), &msg.Message, &msg.IsRead, &msg.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contact message: %w", err)
		}
		for _, e := range eventTypes {
			msg.EventTypes = append(msg.EventTypes, models.EventType(e))
		}
		messages = append(messages, msg)
	}
	return messages, rows.Err()
}

func (d *DatabaseClient) MarkContactMessageRead(ctx context.Context, id uuid.UUID) error {
	res, err := d.db.ExecContext(ctx, `UPDATE contact_messages SET is_read = true WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to mark message read: %w", err)
	}
	return expectAffected(res)
}

func (d *DatabaseClient) DeleteContactMessage(ctx context.Context, id uuid.UUID) error {
	res, err := d.db.ExecContext(ctx, `DELETE FROM contact_messages WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete message: %w", err)
	}
	return expectAffected(res)
}

const listingColumns = `id, full_name, email, phone, city, state,
	COALESCE(instagram, ''), COALESCE(facebook, ''), COALESCE(tiktok, ''), COALESCE(website, ''),
	years_experience, characters, bio, willing_to_travel, COALESCE(travel_radius, ''),
	COALESCE(additional_info, ''), status, reviewed_by, reviewed_at, created_at`

func scanListing(s rowScanner) (*models.FreeListingRequest, error) {
	var r models.FreeListingRequest
	err := s.Scan(
		&r.ID, &r.FullName, &r.Email, &r.Phone, &r.City, &r.State,
		&r.Instagram, &r.Facebook, &r.TikTok, &r.Website,
		&r.YearsExperience, &r.Characters, &r.Bio, &r.WillingToTravel, &r.TravelRadius,
		&r.AdditionalInfo, &r.Status, &r.ReviewedBy, &r.ReviewedAt, &r.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (d *DatabaseClient) InsertFreeListingRequest(ctx context.Context, r *models.FreeListingRequest) error {
	err := d.db.QueryRowContext(ctx, `
		INSERT INTO free_listing_requests (id, full_name, email, phone, city, state,
			instagram, facebook, tiktok, website, years_experience, characters, bio,
			willing_to_travel, travel_radius, additional_info, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17)
		RETURNING created_at
	`, r.ID, r.FullName, r.Email, r.Phone, r.City, r.State,
		nullString(r.Instagram), nullString(r.Facebook), nullString(r.TikTok), nullString(r.Website),
		r.YearsExperience, r.Characters, r.Bio, r.WillingToTravel,
		nullString(string(r.TravelRadius)), nullString(r.AdditionalInfo), r.Status,
	).Scan(&r.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert free listing request: %w", err)
	}
	return nil
}

func (d *DatabaseClient) GetFreeListingRequest(ctx context.Context, id uuid.UUID) (*models.FreeListingRequest, error) {
	r, err := scanListing(d.db.QueryRowContext(ctx,
		`SELECT `+listingColumns+` FROM free_listing_requests WHERE id = $1`, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get free listing request: %w", err)
	}
	return r, nil
}

func (d *DatabaseClient) ListFreeListingRequests(ctx context.Context, status models.ListingStatus) ([]models.FreeListingRequest, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT `+listingColumns+`
		FROM free_listing_requests
		WHERE ($1 = '' OR status = $1)
		ORDER BY created_at DESC
	`, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list free listing requests: %w", err)
	}
	defer rows.Close()

	requests := []models.FreeListingRequest{}
	for rows.Next() {
		r, err := scanListing(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan free listing request: %w", err)
		}
		requests = append(requests, *r)
	}
	return requests, rows.Err()
}

// SetFreeListingStatus only succeeds while the stored status still equals from.
func (d *DatabaseClient) SetFreeListingStatus(ctx context.Context, id uuid.UUID, from, to models.ListingStatus, reviewer uuid.UUID) error {
	res, err := d.db.ExecContext(ctx, `
		UPDATE free_listing_requests
		SET status = $1, reviewed_by = $2, reviewed_at = NOW()
		WHERE id = $3 AND status = $4
	`, to, reviewer, id, from)
	if err != nil {
		return fmt.Errorf("failed to update free listing status: %w", err)
	}
	if err := expectAffected(res); err != nil {
		return services.ErrInvalidTransition
	}
	return nil
}

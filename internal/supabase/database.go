package supabase

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"performer-directory-backend/internal/models"
	"performer-directory-backend/internal/services"
)

// DatabaseClient reads and writes the directory tables directly over the
// Postgres connection of the Supabase project.
type DatabaseClient struct {
	db *sql.DB
}

func NewDatabaseClient(db *sql.DB) *DatabaseClient {
	return &DatabaseClient{db: db}
}

func (d *DatabaseClient) Close() error {
	return d.db.Close()
}

func (d *DatabaseClient) Ping(ctx context.Context) error {
	return d.db.PingContext(ctx)
}

// profileSelect embeds categories and images as JSON so a listing is one query.
const profileSelect = `
	SELECT p.id, p.user_id, p.display_name, p.bio, p.state, p.city, p.price_min, p.price_max,
		p.instagram, p.facebook, p.tiktok, p.youtube, p.website,
		p.is_active, p.payment_status, p.payment_expires_at,
		p.willing_to_travel, p.virtual_events, p.outdoor_events, p.family_friendly, p.photo_ops, p.face_painting,
		p.travel_radius, p.contact_email, p.created_at, p.updated_at,
		COALESCE((SELECT json_agg(json_build_object('category', c.category))
			FROM profile_categories c WHERE c.profile_id = p.id), '[]'),
		COALESCE((SELECT json_agg(json_build_object('id', i.id, 'image_url', i.image_url, 'position', i.position)
			ORDER BY i.position, i.created_at)
			FROM profile_images i WHERE i.profile_id = p.id), '[]')
	FROM profiles p`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(s rowScanner) (*models.ProfileRow, error) {
	var row models.ProfileRow
	var categories, images []byte
	err := s.Scan(
		&row.ID, &row.UserID, &row.DisplayName, &row.Bio, &row.State, &row.City, &row.PriceMin, &row.PriceMax,
		&row.Instagram, &row.Facebook, &row.TikTok, &row.YouTube, &row.Website,
		&row.IsActive, &row.PaymentStatus, &row.PaymentExpiresAt,
		&row.WillingToTravel, &row.VirtualEvents, &row.OutdoorEvents, &row.FamilyFriendly, &row.PhotoOps, &row.FacePainting,
		&row.TravelRadius, &row.ContactEmail, &row.CreatedAt, &row.UpdatedAt,
		&categories, &images,
	)
	if err != nil {
		return nil, err
	}
	if err := json.Unmarshal(categories, &row.ProfileCategories); err != nil {
		return nil, fmt.Errorf("failed to decode categories: %w", err)
	}
	if err := json.Unmarshal(images, &row.ProfileImages); err != nil {
		return nil, fmt.Errorf("failed to decode images: %w", err)
	}
	return &row, nil
}

func (d *DatabaseClient) ListVisibleProfiles(ctx context.Context, filter models.ProfileFilter) ([]models.ProfileRow, error) {
	rows, err := d.db.QueryContext(ctx, profileSelect+`
		WHERE p.is_active = true AND p.payment_status = 'paid'
			AND ($1 = '' OR p.state = $1)
			AND ($2 = '' OR p.city = $2)
		ORDER BY p.created_at DESC
	`, filter.State, filter.City)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	profiles := []models.ProfileRow{}
	for rows.Next() {
		row, err := scanProfile(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, *row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}

	return profiles, nil
}

func (d *DatabaseClient) GetProfile(ctx context.Context, profileID uuid.UUID) (*models.ProfileRow, error) {
	row, err := scanProfile(d.db.QueryRowContext(ctx, profileSelect+` WHERE p.id = $1`, profileID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return row, nil
}

func (d *DatabaseClient) GetProfileByOwner(ctx context.Context, userID uuid.UUID) (*models.ProfileRow, error) {
	row, err := scanProfile(d.db.QueryRowContext(ctx, profileSelect+` WHERE p.user_id = $1`, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, services.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	return row, nil
}

func (d *DatabaseClient) CreateProfile(ctx context.Context, p *models.Profile) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		INSERT INTO profiles (id, user_id, display_name, bio, state, city, price_min, price_max,
			instagram, facebook, tiktok, youtube, website, is_active, payment_status,
			willing_to_travel, virtual_events, outdoor_events, family_friendly, photo_ops, face_painting,
			travel_radius, contact_email)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
		RETURNING created_at, updated_at
	`, p.ID, p.UserID, p.DisplayName, nullString(p.Bio), nullString(p.State), nullString(p.City), p.PriceMin, p.PriceMax,
		nullString(p.Socials.Instagram), nullString(p.Socials.Facebook), nullString(p.Socials.TikTok),
		nullString(p.Socials.YouTube), nullString(p.Socials.Website), p.IsActive, p.PaymentStatus,
		p.Services.WillingToTravel, p.Services.VirtualEvents, p.Services.OutdoorEvents,
		p.Services.FamilyFriendly, p.Services.PhotoOps, p.Services.FacePainting,
		nullString(string(p.TravelRadius)), nullString(p.ContactEmail),
	).Scan(&p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}

	if err := replaceCategories(ctx, tx, p.ID, p.Categories); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdateProfile writes the owner-editable columns and replaces the category set.
// Billing columns are only changed through UpdatePaymentStatus.
func (d *DatabaseClient) UpdateProfile(ctx context.Context, p *models.Profile) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	err = tx.QueryRowContext(ctx, `
		UPDATE profiles
		SET display_name = $1, bio = $2, state = $3, city = $4, price_min = $5, price_max = $6,
			instagram = $7, facebook = $8, tiktok = $9, youtube = $10, website = $11,
			willing_to_travel = $12, virtual_events = $13, outdoor_events = $14,
			family_friendly = $15, photo_ops = $16, face_painting = $17,
			travel_radius = $18, contact_email = $19, updated_at = NOW()
		WHERE id = $20
		RETURNING updated_at
	`, p.DisplayName, nullString(p.Bio), nullString(p.State), nullString(p.City), p.PriceMin, p.PriceMax,
		nullString(p.Socials.Instagram), nullString(p.Socials.Facebook), nullString(p.Socials.TikTok),
		nullString(p.Socials.YouTube), nullString(p.Socials.Website),
		p.Services.WillingToTravel, p.Services.VirtualEvents, p.Services.OutdoorEvents,
		p.Services.FamilyFriendly, p.Services.PhotoOps, p.Services.FacePainting,
		nullString(string(p.TravelRadius)), nullString(p.ContactEmail), p.ID,
	).Scan(&p.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return services.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM profile_categories WHERE profile_id = $1`, p.ID); err != nil {
		return fmt.Errorf("failed to clear categories: %w", err)
	}
	if err := replaceCategories(ctx, tx, p.ID, p.Categories); err != nil {
		return err
	}

	return tx.Commit()
}

func replaceCategories(ctx context.Context, tx *sql.Tx, profileID uuid.UUID, categories []models.Category) error {
	if len(categories) == 0 {
		return nil
	}
	values := make([]string, len(categories))
	for i, c := range categories {
		values[i] = string(c)
	}
	_, err := tx.ExecContext(ctx, `
		INSERT INTO profile_categories (profile_id, category)
		SELECT $1, unnest($2::text[])
		ON CONFLICT DO NOTHING
	`, profileID, pq.Array(values))
	if err != nil {
		return fmt.Errorf("failed to write categories: %w", err)
	}
	return nil
}

// UpdatePaymentStatus records a payment outcome. A paid profile is activated.
func (d *DatabaseClient) UpdatePaymentStatus(ctx context.Context, profileID uuid.UUID, status models.PaymentStatus, expiresAt *time.Time) error {
	res, err := d.db.ExecContext(ctx, `
		UPDATE profiles
		SET payment_status = $1,
			payment_expires_at = $2,
			is_active = CASE WHEN $1 = 'paid' THEN true ELSE is_active END,
			updated_at = NOW()
		WHERE id = $3
	`, status, expiresAt, profileID)
	if err != nil {
		return fmt.Errorf("failed to update payment status: %w", err)
	}
	return expectAffected(res)
}

func (d *DatabaseClient) GetUserRole(ctx context.Context, userID uuid.UUID) (string, error) {
	var role string
	err := d.db.QueryRowContext(ctx, `
		SELECT role FROM user_roles
		WHERE user_id = $1
		ORDER BY (role = 'admin') DESC
		LIMIT 1
	`, userID).Scan(&role)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get user role: %w", err)
	}
	return role, nil
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return services.ErrNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

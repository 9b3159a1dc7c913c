package supabase

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"performer-directory-backend/internal/models"
	"performer-directory-backend/internal/services"
)

func (d *DatabaseClient) ListImages(ctx context.Context, profileID uuid.UUID) ([]models.ProfileImage, error) {
	rows, err := d.db.QueryContext(ctx, `
		SELECT id, profile_id, image_url, position, created_at
		FROM profile_images
		WHERE profile_id = $1
		ORDER BY position ASC, created_at ASC
	`, profileID)
	if err != nil {
		return nil, fmt.Errorf("failed to list images: %w", err)
	}
	defer rows.Close()

	images := []models.ProfileImage{}
	for rows.Next() {
		var img models.ProfileImage
		if err := rows.Scan(&img.ID, &img.ProfileID, &img.ImageURL, &img.Position, &img.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan image: %w", err)
		}
		images = append(images, img)
	}
	return images, rows.Err()
}

// InsertImage appends img after the profile's current images. The profile row
// is locked for the count so concurrent uploads cannot pass the image cap.
func (d *DatabaseClient) InsertImage(ctx context.Context, img *models.ProfileImage) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var locked uuid.UUID
	err = tx.QueryRowContext(ctx, `SELECT id FROM profiles WHERE id = $1 FOR UPDATE`, img.ProfileID).Scan(&locked)
	if errors.Is(err, sql.ErrNoRows) {
		return services.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to lock profile: %w", err)
	}

	var count int
	err = tx.QueryRowContext(ctx, `SELECT count(*) FROM profile_images WHERE profile_id = $1`, img.ProfileID).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to count images: %w", err)
	}
	if count >= services.MaxImagesPerProfile {
		return services.ErrImageCapacity
	}

	img.Position = count
	err = tx.QueryRowContext(ctx, `
		INSERT INTO profile_images (id, profile_id, image_url, position)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at
	`, img.ID, img.ProfileID, img.ImageURL, img.Position).Scan(&img.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert image: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit image insert: %w", err)
	}
	return nil
}

// DeleteImage removes one image and closes the gap it leaves, in one transaction.
func (d *DatabaseClient) DeleteImage(ctx context.Context, profileID, imageID uuid.UUID) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
		DELETE FROM profile_images
		WHERE id = $1 AND profile_id = $2
	`, imageID, profileID)
	if err != nil {
		return fmt.Errorf("failed to delete image: %w", err)
	}
	if err := expectAffected(res); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE profile_images pi
		SET position = r.rn - 1
		FROM (
			SELECT id, ROW_NUMBER() OVER (ORDER BY position, created_at) AS rn
			FROM profile_images
			WHERE profile_id = $1
		) r
		WHERE pi.id = r.id AND pi.position <> r.rn - 1
	`, profileID)
	if err != nil {
		return fmt.Errorf("failed to renumber images: %w", err)
	}

	return tx.Commit()
}

// UpdateImagePositions persists every given position or none of them.
func (d *DatabaseClient) UpdateImagePositions(ctx context.Context, profileID uuid.UUID, images []models.ProfileImage) error {
	tx, err := d.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		UPDATE profile_images SET position = $1
		WHERE id = $2 AND profile_id = $3
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare position update: %w", err)
	}
	defer stmt.Close()

	for i, img := range images {
		res, err := stmt.ExecContext(ctx, img.Position, img.ID, profileID)
		if err != nil {
			return &services.PositionUpdateError{Index: i, Total: len(images), Err: err}
		}
		if err := expectAffected(res); err != nil {
			return &services.PositionUpdateError{Index: i, Total: len(images), Err: err}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit position update: %w", err)
	}
	return nil
}

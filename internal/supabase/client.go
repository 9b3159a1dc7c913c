package supabase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/supabase-community/supabase-go"
	"performer-directory-backend/internal/config"
	"performer-directory-backend/internal/models"
	"performer-directory-backend/internal/services"
)

type Client struct {
	Supabase *supabase.Client
	Config   *config.Config
}

func NewClient(cfg *config.Config) (*Client, error) {
	client, err := supabase.NewClient(cfg.SupabaseURL, cfg.SupabasePublishableKey, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create supabase client: %w", err)
	}

	return &Client{
		Supabase: client,
		Config:   cfg,
	}, nil
}

// AuthClient signs users in against the hosted auth service.
type AuthClient struct {
	client *supabase.Client
}

func NewAuthClient(c *Client) *AuthClient {
	return &AuthClient{client: c.Supabase}
}

func (a *AuthClient) SignIn(_ context.Context, email, password string) (*models.Session, error) {
	resp, err := a.client.Auth.SignInWithEmailPassword(email, password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", services.ErrInvalidCredentials, err)
	}
	return &models.Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		User:         models.User{ID: resp.User.ID, Email: resp.User.Email},
	}, nil
}

func (a *AuthClient) Refresh(_ context.Context, refreshToken string) (*models.Session, error) {
	resp, err := a.client.Auth.RefreshToken(refreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", services.ErrInvalidCredentials, err)
	}
	return &models.Session{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		ExpiresIn:    resp.ExpiresIn,
		User:         models.User{ID: resp.User.ID, Email: resp.User.Email},
	}, nil
}

const restProfileColumns = "*,profile_categories(category),profile_images(id,image_url,position)"

// RestCatalog serves the public directory through PostgREST when no direct
// database connection is configured.
type RestCatalog struct {
	client *supabase.Client
}

func NewRestCatalog(c *Client) *RestCatalog {
	return &RestCatalog{client: c.Supabase}
}

func (r *RestCatalog) ListVisibleProfiles(_ context.Context, filter models.ProfileFilter) ([]models.ProfileRow, error) {
	query := r.client.From("profiles").
		Select(restProfileColumns, "", false).
		Eq("is_active", "true").
		Eq("payment_status", string(models.PaymentStatusPaid))
	if filter.State != "" {
		query = query.Eq("state", filter.State)
	}
	if filter.City != "" {
		query = query.Eq("city", filter.City)
	}

	rows := []models.ProfileRow{}
	if _, err := query.ExecuteTo(&rows); err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return rows, nil
}

func (r *RestCatalog) GetProfile(_ context.Context, profileID uuid.UUID) (*models.ProfileRow, error) {
	var rows []models.ProfileRow
	_, err := r.client.From("profiles").
		Select(restProfileColumns, "", false).
		Eq("id", profileID.String()).
		ExecuteTo(&rows)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if len(rows) == 0 {
		return nil, services.ErrNotFound
	}
	return &rows[0], nil
}

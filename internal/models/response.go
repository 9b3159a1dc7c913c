package models

import "time"

type ProfileResponse struct {
	ID               string            `json:"id"`
	DisplayName      string            `json:"display_name"`
	Bio              string            `json:"bio,omitempty"`
	State            string            `json:"state"`
	City             string            `json:"city"`
	PriceMin         *int              `json:"price_min,omitempty"`
	PriceMax         *int              `json:"price_max,omitempty"`
	Socials          SocialHandles     `json:"socials"`
	Services         ServiceAttributes `json:"services"`
	TravelRadius     TravelRadius      `json:"travel_radius,omitempty"`
	ContactEmail     string            `json:"contact_email,omitempty"`
	Categories       []Category        `json:"categories"`
	Images           []ProfileImage    `json:"images"`
	MainImageURL     string            `json:"main_image_url"`
	IsActive         bool              `json:"is_active"`
	PaymentStatus    PaymentStatus     `json:"payment_status"`
	PaymentExpiresAt *time.Time        `json:"payment_expires_at,omitempty"`
}

type ProfileListResponse struct {
	Profiles []ProfileResponse `json:"profiles"`
	Count    int               `json:"count"`
}

// NewProfileResponse flattens a Profile; owner-only fields are left to the caller.
func NewProfileResponse(p Profile) ProfileResponse {
	categories := p.Categories
	if categories == nil {
		categories = []Category{}
	}
	images := p.Images
	if images == nil {
		images = []ProfileImage{}
	}
	return ProfileResponse{
		ID:           p.ID.String(),
		DisplayName:  p.DisplayName,
		Bio:          p.Bio,
		State:        p.State,
		City:         p.City,
		PriceMin:     p.PriceMin,
		PriceMax:     p.PriceMax,
		Socials:      p.Socials,
		Services:     p.Services,
		TravelRadius: p.TravelRadius,
		ContactEmail: p.ContactEmail,
		Categories:   categories,
		Images:       images,
		MainImageURL: p.MainImageURL,
		IsActive:     p.IsActive,
	}
}

type ImagesResponse struct {
	Images []ProfileImage `json:"images"`
}

type UploadResponse struct {
	Images []ProfileImage `json:"images"`
	Errors []string       `json:"errors,omitempty"`
}

type CaptchaResponse struct {
	Num1  int    `json:"num1"`
	Num2  int    `json:"num2"`
	Token string `json:"token"`
}

type CaptchaErrorResponse struct {
	Error   string          `json:"error"`
	Captcha CaptchaResponse `json:"captcha"`
}

type CheckoutResponse struct {
	URL string `json:"url"`
}

type RelayResponse struct {
	Success bool `json:"success"`
}

type RelayErrorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

type MessagesResponse struct {
	Messages []ContactMessage `json:"messages"`
}

type FreeListingsResponse struct {
	Requests []FreeListingRequest `json:"requests"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

package models

import (
	"time"

	"github.com/google/uuid"
)

type PaymentStatus string

const (
	PaymentStatusUnpaid  PaymentStatus = "unpaid"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusExpired PaymentStatus = "expired"
)

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusUnpaid, PaymentStatusPaid, PaymentStatusExpired:
		return true
	}
	return false
}

type TravelRadius string

const (
	TravelLocalOnly      TravelRadius = "local_only"
	TravelShortDistance  TravelRadius = "short_distance"
	TravelMediumDistance TravelRadius = "medium_distance"
	TravelLongDistance   TravelRadius = "long_distance"
	TravelNationwide     TravelRadius = "nationwide"
)

var TravelRadii = []TravelRadius{
	TravelLocalOnly, TravelShortDistance, TravelMediumDistance, TravelLongDistance, TravelNationwide,
}

func (r TravelRadius) Valid() bool {
	for _, v := range TravelRadii {
		if r == v {
			return true
		}
	}
	return false
}

type Category string

const (
	CategorySuperhero  Category = "superhero"
	CategoryPrincess   Category = "princess"
	CategoryPirate     Category = "pirate"
	CategoryFairy      Category = "fairy"
	CategoryMermaid    Category = "mermaid"
	CategoryVillain    Category = "villain"
	CategoryCartoon    Category = "cartoon"
	CategoryAnime      Category = "anime"
	CategorySciFi      Category = "sci_fi"
	CategoryFantasy    Category = "fantasy"
	CategoryHistorical Category = "historical"
	CategoryHoliday    Category = "holiday"
	CategoryMascot     Category = "mascot"
	CategoryClown      Category = "clown"
	CategoryMagician   Category = "magician"
)

// Categories is the fixed set of performer tags, in display order.
var Categories = []Category{
	CategorySuperhero, CategoryPrincess, CategoryPirate, CategoryFairy, CategoryMermaid,
	CategoryVillain, CategoryCartoon, CategoryAnime, CategorySciFi, CategoryFantasy,
	CategoryHistorical, CategoryHoliday, CategoryMascot, CategoryClown, CategoryMagician,
}

func (c Category) Valid() bool {
	for _, v := range Categories {
		if c == v {
			return true
		}
	}
	return false
}

// ServiceAttributes are the boolean service flags shown on a listing.
type ServiceAttributes struct {
	WillingToTravel bool `json:"willing_to_travel"`
	VirtualEvents   bool `json:"virtual_events"`
	OutdoorEvents   bool `json:"outdoor_events"`
	FamilyFriendly  bool `json:"family_friendly"`
	PhotoOps        bool `json:"photo_ops"`
	FacePainting    bool `json:"face_painting"`
}

type SocialHandles struct {
	Instagram string `json:"instagram,omitempty"`
	Facebook  string `json:"facebook,omitempty"`
	TikTok    string `json:"tiktok,omitempty"`
	YouTube   string `json:"youtube,omitempty"`
	Website   string `json:"website,omitempty"`
}

// Profile is the normalized listing record handed to handlers.
type Profile struct {
	ID               uuid.UUID
	UserID           uuid.UUID
	DisplayName      string
	Bio              string
	State            string
	City             string
	PriceMin         *int
	PriceMax         *int
	Socials          SocialHandles
	IsActive         bool
	PaymentStatus    PaymentStatus
	PaymentExpiresAt *time.Time
	Services         ServiceAttributes
	TravelRadius     TravelRadius
	ContactEmail     string
	Categories       []Category
	Images           []ProfileImage
	MainImageURL     string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Visible reports whether the profile may appear in the public directory.
func (p *Profile) Visible() bool {
	return p.IsActive && p.PaymentStatus == PaymentStatusPaid
}

func (p *Profile) HasCategory(c Category) bool {
	for _, own := range p.Categories {
		if own == c {
			return true
		}
	}
	return false
}

// ProfileRow mirrors the profiles table with its embedded side relations, as
// returned by PostgREST for select=*,profile_categories(category),profile_images(...).
type ProfileRow struct {
	ID               uuid.UUID     `json:"id"`
	UserID           uuid.UUID     `json:"user_id"`
	DisplayName      string        `json:"display_name"`
	Bio              *string       `json:"bio"`
	State            *string       `json:"state"`
	City             *string       `json:"city"`
	PriceMin         *int          `json:"price_min"`
	PriceMax         *int          `json:"price_max"`
	Instagram        *string       `json:"instagram"`
	Facebook         *string       `json:"facebook"`
	TikTok           *string       `json:"tiktok"`
	YouTube          *string       `json:"youtube"`
	Website          *string       `json:"website"`
	IsActive         bool          `json:"is_active"`
	PaymentStatus    PaymentStatus `json:"payment_status"`
	PaymentExpiresAt *time.Time    `json:"payment_expires_at"`
	WillingToTravel  bool          `json:"willing_to_travel"`
	VirtualEvents    bool          `json:"virtual_events"`
	OutdoorEvents    bool          `json:"outdoor_events"`
	FamilyFriendly   bool          `json:"family_friendly"`
	PhotoOps         bool          `json:"photo_ops"`
	FacePainting     bool          `json:"face_painting"`
	TravelRadius     *TravelRadius `json:"travel_radius"`
	ContactEmail     *string       `json:"contact_email"`
	CreatedAt        time.Time     `json:"created_at"`
	UpdatedAt        time.Time     `json:"updated_at"`

	ProfileCategories []CategoryRow `json:"profile_categories"`
	ProfileImages     []ImageRow    `json:"profile_images"`
}

type CategoryRow struct {
	Category Category `json:"category"`
}

type ImageRow struct {
	ID       uuid.UUID `json:"id"`
	ImageURL *string   `json:"image_url"`
	Position int       `json:"position"`
}

// ProfileImage belongs to one profile; position 0 is the main image.
type ProfileImage struct {
	ID        uuid.UUID `json:"id"`
	ProfileID uuid.UUID `json:"profile_id"`
	ImageURL  string    `json:"image_url"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileFilter is the server-side part of a directory query.
type ProfileFilter struct {
	State string
	City  string
}

package models

import (
	"time"

	"github.com/google/uuid"
)

type ListingStatus string

const (
	ListingPending  ListingStatus = "pending"
	ListingApproved ListingStatus = "approved"
	ListingRejected ListingStatus = "rejected"
)

func (s ListingStatus) Valid() bool {
	switch s {
	case ListingPending, ListingApproved, ListingRejected:
		return true
	}
	return false
}

// FreeListingRequest is a promotional-period application awaiting admin review.
type FreeListingRequest struct {
	ID              uuid.UUID     `json:"id"`
	FullName        string        `json:"full_name"`
	Email           string        `json:"email"`
	Phone           string        `json:"phone"`
	City            string        `json:"city"`
	State           string        `json:"state"`
	Instagram       string        `json:"instagram,omitempty"`
	Facebook        string        `json:"facebook,omitempty"`
	TikTok          string        `json:"tiktok,omitempty"`
	Website         string        `json:"website,omitempty"`
	YearsExperience int           `json:"years_experience"`
	Characters      string        `json:"characters"`
	Bio             string        `json:"bio"`
	WillingToTravel bool          `json:"willing_to_travel"`
	TravelRadius    TravelRadius  `json:"travel_radius,omitempty"`
	AdditionalInfo  string        `json:"additional_info,omitempty"`
	Status          ListingStatus `json:"status"`
	ReviewedBy      *uuid.UUID    `json:"reviewed_by,omitempty"`
	ReviewedAt      *time.Time    `json:"reviewed_at,omitempty"`
	CreatedAt       time.Time     `json:"created_at"`
}

package services

import (
	"sort"

	"performer-directory-backend/internal/models"
)

// NormalizeProfile shapes a raw row: images sorted by position with blank URLs
// dropped, categories deduplicated, and MainImageURL falling back to placeholder.
func NormalizeProfile(row models.ProfileRow, placeholder string) models.Profile {
	p := models.Profile{
		ID:               row.ID,
		UserID:           row.UserID,
		DisplayName:      row.DisplayName,
		Bio:              deref(row.Bio),
		State:            deref(row.State),
		City:             deref(row.City),
		PriceMin:         row.PriceMin,
		PriceMax:         row.PriceMax,
		IsActive:         row.IsActive,
		PaymentStatus:    row.PaymentStatus,
		PaymentExpiresAt: row.PaymentExpiresAt,
		ContactEmail:     deref(row.ContactEmail),
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
		Socials: models.SocialHandles{
			Instagram: deref(row.Instagram),
			Facebook:  deref(row.Facebook),
			TikTok:    deref(row.TikTok),
			YouTube:   deref(row.YouTube),
			Website:   deref(row.Website),
		},
		Services: models.ServiceAttributes{
			WillingToTravel: row.WillingToTravel,
			VirtualEvents:   row.VirtualEvents,
			OutdoorEvents:   row.OutdoorEvents,
			FamilyFriendly:  row.FamilyFriendly,
			PhotoOps:        row.PhotoOps,
			FacePainting:    row.FacePainting,
		},
	}
	if row.TravelRadius != nil {
		p.TravelRadius = *row.TravelRadius
	}

	seen := make(map[models.Category]struct{}, len(row.ProfileCategories))
	p.Categories = make([]models.Category, 0, len(row.ProfileCategories))
	for _, c := range row.ProfileCategories {
		if _, dup := seen[c.Category]; dup {
			continue
		}
		seen[c.Category] = struct{}{}
		p.Categories = append(p.Categories, c.Category)
	}

	imageRows := make([]models.ImageRow, len(row.ProfileImages))
	copy(imageRows, row.ProfileImages)
	sort.SliceStable(imageRows, func(i, j int) bool {
		return imageRows[i].Position < imageRows[j].Position
	})

	p.Images = make([]models.ProfileImage, 0, len(imageRows))
	for _, img := range imageRows {
		if img.ImageURL == nil || *img.ImageURL == "" {
			continue
		}
		p.Images = append(p.Images, models.ProfileImage{
			ID:        img.ID,
			ProfileID: row.ID,
			ImageURL:  *img.ImageURL,
			Position:  img.Position,
		})
	}

	if len(p.Images) > 0 {
		p.MainImageURL = p.Images[0].ImageURL
	} else {
		p.MainImageURL = placeholder
	}
	return p
}

func deref[T any](v *T) T {
	var zero T
	if v == nil {
		return zero
	}
	return *v
}

package services

import "performer-directory-backend/internal/models"

// FilterByCategory keeps profiles sharing at least one category with selected.
// An empty selection returns profiles unchanged.
func FilterByCategory(profiles []models.Profile, selected []models.Category) []models.Profile {
	if len(selected) == 0 {
		return profiles
	}

	want := make(map[models.Category]struct{}, len(selected))
	for _, c := range selected {
		want[c] = struct{}{}
	}

	out := make([]models.Profile, 0, len(profiles))
	for _, p := range profiles {
		for _, c := range p.Categories {
			if _, ok := want[c]; ok {
				out = append(out, p)
				break
			}
		}
	}
	return out
}

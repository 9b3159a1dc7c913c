package services

import "performer-directory-backend/internal/models"

const MaxImagesPerProfile = 4

// ReorderImages moves the element at from to index to and renumbers every
// image to its new index. The input slice is not modified.
func ReorderImages(images []models.ProfileImage, from, to int) ([]models.ProfileImage, error) {
	n := len(images)
	if from < 0 || from >= n || to < 0 || to >= n {
		return nil, ErrInvalidReorder
	}

	out := make([]models.ProfileImage, 0, n)
	moved := images[from]
	for i, img := range images {
		if i == from {
			continue
		}
		out = append(out, img)
	}
	out = append(out[:to], append([]models.ProfileImage{moved}, out[to:]...)...)

	for i := range out {
		out[i].Position = i
	}
	return out, nil
}

// Renumber assigns dense positions 0..n-1 in slice order.
func Renumber(images []models.ProfileImage) []models.ProfileImage {
	out := make([]models.ProfileImage, len(images))
	copy(out, images)
	for i := range out {
		out[i].Position = i
	}
	return out
}

// changedPositions returns the images in after whose position differs from
// the one the same image held in before.
func changedPositions(before, after []models.ProfileImage) []models.ProfileImage {
	old := make(map[string]int, len(before))
	for _, img := range before {
		old[img.ID.String()] = img.Position
	}
	var changed []models.ProfileImage
	for _, img := range after {
		if pos, ok := old[img.ID.String()]; !ok || pos != img.Position {
			changed = append(changed, img)
		}
	}
	return changed
}

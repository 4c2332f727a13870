// Package validation holds the per-field constraints and normalization rules
// shared by the preference service and the client-side controller.
package validation

import (
	"strings"

	"github.com/google/uuid"

	"wedding-invite/internal/models"
)

// MaxSuggestedTracks caps the track list. The cap is checked against the raw
// input before cleaning.
const MaxSuggestedTracks = 5

// ParseReference validates an opaque guest/household identifier.
func ParseReference(id string) (uuid.UUID, error) {
	return uuid.Parse(id)
}

func IsValidMenuChoice(choice *models.MenuChoice) bool {
	if choice == nil {
		return true // explicit "unanswered"
	}
	switch *choice {
	case models.MenuMeat, models.MenuFish, models.MenuVegetarian, models.MenuKids:
		return true
	}
	return false
}

func IsValidAllergen(a models.AllergenType) bool {
	switch a {
	case models.AllergenNuts, models.AllergenSeafood, models.AllergenGluten, models.AllergenLactose:
		return true
	}
	return false
}

func IsValidAlcoholPreference(p models.AlcoholPreference) bool {
	switch p {
	case models.AlcoholWine, models.AlcoholChampagne, models.AlcoholSpirits, models.AlcoholNone:
		return true
	}
	return false
}

// NormalizeAlcohol enforces the server-side exclusivity of "none": if present,
// the result is exactly {none}; otherwise "none" is stripped from the set.
func NormalizeAlcohol(prefs []models.AlcoholPreference) []models.AlcoholPreference {
	for _, p := range prefs {
		if p == models.AlcoholNone {
			return []models.AlcoholPreference{models.AlcoholNone}
		}
	}
	out := make([]models.AlcoholPreference, 0, len(prefs))
	for _, p := range prefs {
		if p != models.AlcoholNone {
			out = append(out, p)
		}
	}
	return out
}

// CleanTracks trims entries, drops empties and truncates to the cap. The
// raw-count check happens before this in the service; cleaning never fails.
func CleanTracks(raw []string) []string {
	out := make([]string, 0, len(raw))
	for _, t := range raw {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		out = append(out, t)
		if len(out) == MaxSuggestedTracks {
			break
		}
	}
	return out
}

// ContainsTrackFold reports whether candidate already appears in tracks,
// compared case-insensitively. Used by the client-side dedup guard; the server
// stores repeated entries as given.
func ContainsTrackFold(tracks []string, candidate string) bool {
	for _, t := range tracks {
		if strings.EqualFold(t, candidate) {
			return true
		}
	}
	return false
}

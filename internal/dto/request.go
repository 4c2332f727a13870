package dto

import "wedding-invite/internal/models"

// Boolean payloads use pointers so a missing field is distinguishable from
// false and rejected as an invalid value.

type RSVPRequest struct {
	IsAttending *bool `json:"is_attending"`
}

type MenuRequest struct {
	MenuChoice *models.MenuChoice `json:"menu_choice"`
}

type AllergiesRequest struct {
	Allergies      []models.AllergenType `json:"allergies"`
	AllergiesOther string                `json:"allergies_other"`
	HasNoAllergies bool                  `json:"has_no_allergies"`
}

type AlcoholRequest struct {
	AlcoholPreferences []models.AlcoholPreference `json:"alcohol_preferences"`
}

type TransferRequest struct {
	NeedsTransfer *bool `json:"needs_transfer"`
}

type AccommodationRequest struct {
	HasAccommodation *bool `json:"has_accommodation"`
}

type SecondDayRequest struct {
	WantsSecondDay *bool `json:"wants_second_day"`
}

type TracksRequest struct {
	SuggestedTracks []string `json:"suggested_tracks"`
}

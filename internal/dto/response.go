package dto

import (
	"time"

	"wedding-invite/internal/models"
	"wedding-invite/internal/service"
)

// Envelope is the uniform result shape consumed by the UI layer. Callers
// branch only on Success; Error is a pre-formatted, user-displayable string.
type Envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Error   string `json:"error,omitempty"`
}

func OK(data any) Envelope {
	return Envelope{Success: true, Data: data}
}

func Fail(msg string) Envelope {
	return Envelope{Success: false, Error: msg}
}

type RSVPData struct {
	GuestID     string    `json:"guest_id"`
	GuestName   string    `json:"guest_name"`
	IsAttending bool      `json:"is_attending"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func ToRSVPData(g *models.Guest) RSVPData {
	attending := false
	if g.IsAttending != nil {
		attending = *g.IsAttending
	}
	return RSVPData{
		GuestID:     g.ID.String(),
		GuestName:   g.GuestName,
		IsAttending: attending,
		UpdatedAt:   g.UpdatedAt,
	}
}

type QuestionnaireData struct {
	GuestID            string    `json:"guest_id"`
	MenuChoice         *string   `json:"menu_choice"`
	Allergies          []string  `json:"allergies"`
	AllergiesOther     string    `json:"allergies_other"`
	HasNoAllergies     bool      `json:"has_no_allergies"`
	AlcoholPreferences []string  `json:"alcohol_preferences"`
	NeedsTransfer      *bool     `json:"needs_transfer"`
	HasAccommodation   *bool     `json:"has_accommodation"`
	WantsSecondDay     *bool     `json:"wants_second_day"`
	SuggestedTracks    []string  `json:"suggested_tracks"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func ToQuestionnaireData(q *models.GuestQuestionnaire) QuestionnaireData {
	var menu *string
	if q.MenuChoice != nil {
		m := string(*q.MenuChoice)
		menu = &m
	}
	return QuestionnaireData{
		GuestID:            q.GuestID.String(),
		MenuChoice:         menu,
		Allergies:          q.Allergies,
		AllergiesOther:     q.AllergiesOther,
		HasNoAllergies:     q.HasNoAllergies,
		AlcoholPreferences: q.AlcoholPreferences,
		NeedsTransfer:      q.NeedsTransfer,
		HasAccommodation:   q.HasAccommodation,
		WantsSecondDay:     q.WantsSecondDay,
		SuggestedTracks:    q.SuggestedTracks,
		UpdatedAt:          q.UpdatedAt,
	}
}

type BulkUpdateData struct {
	UpdatedCount int64     `json:"updated_count"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type GuestData struct {
	ID                string `json:"id"`
	GuestName         string `json:"guest_name"`
	Gender            string `json:"gender"`
	IsHeadOfHousehold bool   `json:"is_head_of_household"`
	Age               *int   `json:"age,omitempty"`
	IsAttending       *bool  `json:"is_attending"`
	KidsMenuEligible  bool   `json:"kids_menu_eligible"`
}

type InviteData struct {
	HouseholdID    string              `json:"household_id"`
	HouseholdName  string              `json:"household_name"`
	Guest          GuestData           `json:"guest"`
	Guests         []GuestData         `json:"guests"`
	Questionnaires []QuestionnaireData `json:"questionnaires"`
}

func toGuestData(g *models.Guest) GuestData {
	return GuestData{
		ID:                g.ID.String(),
		GuestName:         g.GuestName,
		Gender:            string(g.Gender),
		IsHeadOfHousehold: g.IsHeadOfHousehold,
		Age:               g.Age,
		IsAttending:       g.IsAttending,
		KidsMenuEligible:  g.EligibleForKidsMenu(),
	}
}

func ToInviteData(page *service.InvitePage) InviteData {
	guests := make([]GuestData, len(page.Guests))
	for i := range page.Guests {
		guests[i] = toGuestData(&page.Guests[i])
	}
	questionnaires := make([]QuestionnaireData, len(page.Questionnaires))
	for i := range page.Questionnaires {
		questionnaires[i] = ToQuestionnaireData(&page.Questionnaires[i])
	}
	return InviteData{
		HouseholdID:    page.Household.ID.String(),
		HouseholdName:  page.Household.HouseholdName,
		Guest:          toGuestData(page.Guest),
		Guests:         guests,
		Questionnaires: questionnaires,
	}
}

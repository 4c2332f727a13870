package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type MenuChoice string

const (
	MenuMeat       MenuChoice = "meat"
	MenuFish       MenuChoice = "fish"
	MenuVegetarian MenuChoice = "vegetarian"
	MenuKids       MenuChoice = "kids"
)

type AllergenType string

const (
	AllergenNuts    AllergenType = "nuts"
	AllergenSeafood AllergenType = "seafood"
	AllergenGluten  AllergenType = "gluten"
	AllergenLactose AllergenType = "lactose"
)

type AlcoholPreference string

const (
	AlcoholWine      AlcoholPreference = "wine"
	AlcoholChampagne AlcoholPreference = "champagne"
	AlcoholSpirits   AlcoholPreference = "spirits"
	AlcoholNone      AlcoholPreference = "none"
)

// GuestQuestionnaire holds a guest's post-RSVP preferences. Exactly one record
// per guest, created lazily on the first preference write.
type GuestQuestionnaire struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	GuestID            uuid.UUID      `gorm:"type:uuid;not null;uniqueIndex" json:"guest_id"`
	MenuChoice         *MenuChoice    `gorm:"type:varchar(20)" json:"menu_choice"`
	Allergies          pq.StringArray `gorm:"type:text[]" json:"allergies"`
	AllergiesOther     string         `gorm:"default:''" json:"allergies_other"`
	HasNoAllergies     bool           `gorm:"not null;default:false" json:"has_no_allergies"`
	AlcoholPreferences pq.StringArray `gorm:"type:text[]" json:"alcohol_preferences"`
	NeedsTransfer      *bool          `json:"needs_transfer"`
	HasAccommodation   *bool          `json:"has_accommodation"`
	WantsSecondDay     *bool          `json:"wants_second_day"`
	SuggestedTracks    pq.StringArray `gorm:"type:text[]" json:"suggested_tracks"`
	CreatedAt          time.Time      `json:"created_at"`
	UpdatedAt          time.Time      `json:"updated_at"`
}

func (q *GuestQuestionnaire) BeforeCreate(tx *gorm.DB) error {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	return nil
}

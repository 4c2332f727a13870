package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// KidsMenuMaxAge is the exclusive age bound for the kids menu.
const KidsMenuMaxAge = 12

type Guest struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	GuestName         string    `gorm:"not null" json:"guest_name"`
	Gender            Gender    `gorm:"type:varchar(10);not null" json:"gender"`
	InviteToken       string    `gorm:"type:uuid;not null;uniqueIndex" json:"invite_token"`
	IsHeadOfHousehold bool      `gorm:"not null;default:false" json:"is_head_of_household"`
	Age               *int      `json:"age,omitempty"`
	IsAttending       *bool     `json:"is_attending"`
	HouseholdID       uuid.UUID `gorm:"type:uuid;not null;index" json:"household_id"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func (g *Guest) BeforeCreate(tx *gorm.DB) error {
	if g.ID == uuid.Nil {
		g.ID = uuid.New()
	}
	if g.InviteToken == "" {
		g.InviteToken = uuid.NewString()
	}
	return nil
}

func (g *Guest) EligibleForKidsMenu() bool {
	return g.Age != nil && *g.Age < KidsMenuMaxAge
}

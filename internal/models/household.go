package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Household groups guests sharing one invitation context. It is created by the
// seed/admin tooling and read-only for the guest-facing service.
type Household struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	HouseholdName    string    `gorm:"not null" json:"household_name"`
	AddressLine      string    `json:"address_line,omitempty"`
	City             string    `json:"city,omitempty"`
	TelegramUsername string    `json:"telegram_username,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func (h *Household) BeforeCreate(tx *gorm.DB) error {
	if h.ID == uuid.Nil {
		h.ID = uuid.New()
	}
	return nil
}

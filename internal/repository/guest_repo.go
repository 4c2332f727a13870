package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wedding-invite/internal/models"
)

type GuestRepository interface {
	Create(ctx context.Context, guest *models.Guest) error
	FindByToken(ctx context.Context, token string) (*models.Guest, error)
	FindByHousehold(ctx context.Context, householdID uuid.UUID) ([]models.Guest, error)
	FindByHouseholdAndName(ctx context.Context, householdID uuid.UUID, name string) (*models.Guest, error)
	UpdateAttendance(ctx context.Context, id uuid.UUID, isAttending bool) (*models.Guest, error)
}

type guestRepository struct {
	db *gorm.DB
}

func NewGuestRepository(db *gorm.DB) GuestRepository {
	return &guestRepository{db: db}
}

func (r *guestRepository) Create(ctx context.Context, guest *models.Guest) error {
	return r.db.WithContext(ctx).Create(guest).Error
}

func (r *guestRepository) FindByToken(ctx context.Context, token string) (*models.Guest, error) {
	var guest models.Guest
	if err := r.db.WithContext(ctx).First(&guest, "invite_token = ?", token).Error; err != nil {
		return nil, err
	}
	return &guest, nil
}

func (r *guestRepository) FindByHousehold(ctx context.Context, householdID uuid.UUID) ([]models.Guest, error) {
	var guests []models.Guest
	err := r.db.WithContext(ctx).
		Where("household_id = ?", householdID).
		Order("created_at ASC, id ASC").
		Find(&guests).Error
	if err != nil {
		return nil, err
	}
	return guests, nil
}

func (r *guestRepository) FindByHouseholdAndName(ctx context.Context, householdID uuid.UUID, name string) (*models.Guest, error) {
	var guest models.Guest
	err := r.db.WithContext(ctx).
		Where("household_id = ? AND guest_name = ?", householdID, name).
		First(&guest).Error
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

// UpdateAttendance writes the attendance flag onto an existing guest row.
// Guests are never created here; a missing row surfaces gorm.ErrRecordNotFound.
func (r *guestRepository) UpdateAttendance(ctx context.Context, id uuid.UUID, isAttending bool) (*models.Guest, error) {
	var guest models.Guest
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&guest, "id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Model(&guest).Update("is_attending", isAttending).Error; err != nil {
			return err
		}
		guest.IsAttending = &isAttending
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &guest, nil
}

package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wedding-invite/internal/models"
)

type HouseholdRepository interface {
	Create(ctx context.Context, household *models.Household) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Household, error)
	FindByName(ctx context.Context, name string) (*models.Household, error)
}

type householdRepository struct {
	db *gorm.DB
}

func NewHouseholdRepository(db *gorm.DB) HouseholdRepository {
	return &householdRepository{db: db}
}

func (r *householdRepository) Create(ctx context.Context, household *models.Household) error {
	return r.db.WithContext(ctx).Create(household).Error
}

func (r *householdRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.Household, error) {
	var household models.Household
	if err := r.db.WithContext(ctx).First(&household, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &household, nil
}

func (r *householdRepository) FindByName(ctx context.Context, name string) (*models.Household, error) {
	var household models.Household
	if err := r.db.WithContext(ctx).First(&household, "household_name = ?", name).Error; err != nil {
		return nil, err
	}
	return &household, nil
}

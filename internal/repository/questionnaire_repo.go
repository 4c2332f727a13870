package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wedding-invite/internal/models"
)

// QuestionnaireRepository is the persistence gateway for per-guest preference
// records. Every write is an upsert: get-or-create the row for the guest, then
// patch only the targeted columns, both inside one transaction.
type QuestionnaireRepository interface {
	FindByGuestID(ctx context.Context, guestID uuid.UUID) (*models.GuestQuestionnaire, error)
	FindByGuestIDs(ctx context.Context, guestIDs []uuid.UUID) ([]models.GuestQuestionnaire, error)
	UpsertFields(ctx context.Context, guestID uuid.UUID, fields map[string]any) (*models.GuestQuestionnaire, error)
	BulkUpsertFields(ctx context.Context, guestIDs []uuid.UUID, fields map[string]any) (int64, error)
}

type questionnaireRepository struct {
	db *gorm.DB
}

func NewQuestionnaireRepository(db *gorm.DB) QuestionnaireRepository {
	return &questionnaireRepository{db: db}
}

func (r *questionnaireRepository) FindByGuestID(ctx context.Context, guestID uuid.UUID) (*models.GuestQuestionnaire, error) {
	var q models.GuestQuestionnaire
	if err := r.db.WithContext(ctx).First(&q, "guest_id = ?", guestID).Error; err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *questionnaireRepository) FindByGuestIDs(ctx context.Context, guestIDs []uuid.UUID) ([]models.GuestQuestionnaire, error) {
	var qs []models.GuestQuestionnaire
	if err := r.db.WithContext(ctx).Where("guest_id IN ?", guestIDs).Find(&qs).Error; err != nil {
		return nil, err
	}
	return qs, nil
}

func upsertInTx(tx *gorm.DB, guestID uuid.UUID, fields map[string]any) error {
	// Insert-if-absent keeps sibling fields at their defaults for new rows.
	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guest_id"}},
		DoNothing: true,
	}).Create(&models.GuestQuestionnaire{GuestID: guestID}).Error
	if err != nil {
		return err
	}
	return tx.Model(&models.GuestQuestionnaire{}).
		Where("guest_id = ?", guestID).
		Updates(fields).Error
}

func (r *questionnaireRepository) UpsertFields(ctx context.Context, guestID uuid.UUID, fields map[string]any) (*models.GuestQuestionnaire, error) {
	var q models.GuestQuestionnaire
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := upsertInTx(tx, guestID, fields); err != nil {
			return err
		}
		return tx.First(&q, "guest_id = ?", guestID).Error
	})
	if err != nil {
		return nil, err
	}
	return &q, nil
}

// BulkUpsertFields applies the same patch to every guest's questionnaire in one
// transaction. The returned count is the number of guests targeted, not the
// number of rows whose values actually changed.
func (r *questionnaireRepository) BulkUpsertFields(ctx context.Context, guestIDs []uuid.UUID, fields map[string]any) (int64, error) {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, guestID := range guestIDs {
			if err := upsertInTx(tx, guestID, fields); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return int64(len(guestIDs)), nil
}

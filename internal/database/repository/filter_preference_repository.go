package repository

import (
	"errors"

	"github.com/modamuse/lookpost-services-backend/internal/models"

	"gorm.io/gorm"
)

type FilterPreferenceRepository struct {
	db *gorm.DB
}

func NewFilterPreferenceRepository(db *gorm.DB) *FilterPreferenceRepository {
	return &FilterPreferenceRepository{db: db}
}

// GetByUserIDAndKey retrieves the persisted filter state for a user under a
// storage key. Returns (nil, nil) when none was saved yet.
func (r *FilterPreferenceRepository) GetByUserIDAndKey(userID, storageKey string) (*models.FilterPreference, error) {
	var pref models.FilterPreference
	err := r.db.Where("user_id = ? AND storage_key = ?", userID, storageKey).
		First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &pref, nil
}

// Upsert saves the filter state for a user, overwriting any previous row
// under the same storage key. Last write wins.
func (r *FilterPreferenceRepository) Upsert(userID, storageKey string, state models.FilterState) error {
	existing, err := r.GetByUserIDAndKey(userID, storageKey)
	if err != nil {
		return err
	}
	if existing == nil {
		return r.db.Create(&models.FilterPreference{
			UserID:     userID,
			StorageKey: storageKey,
			State:      state,
		}).Error
	}
	existing.State = state
	return r.db.Save(existing).Error
}

// DeleteByUserIDAndKey removes a saved filter state.
func (r *FilterPreferenceRepository) DeleteByUserIDAndKey(userID, storageKey string) error {
	return r.db.Where("user_id = ? AND storage_key = ?", userID, storageKey).
		Delete(&models.FilterPreference{}).Error
}

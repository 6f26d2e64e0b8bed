package services

import (
	"fmt"

	"github.com/modamuse/lookpost-services-backend/internal/database/repository"
	"github.com/modamuse/lookpost-services-backend/internal/filters"
	"github.com/modamuse/lookpost-services-backend/internal/models"
)

// FilterService applies filter state to a user's campaigns and persists the
// state between sessions under the fixed storage key.
type FilterService struct {
	campaignRepo *repository.CampaignRepository
	prefRepo     *repository.FilterPreferenceRepository
}

func NewFilterService(campaignRepo *repository.CampaignRepository, prefRepo *repository.FilterPreferenceRepository) *FilterService {
	return &FilterService{
		campaignRepo: campaignRepo,
		prefRepo:     prefRepo,
	}
}

// FilterCampaignsResult is one filtered view over a user's campaigns.
type FilterCampaignsResult struct {
	Campaigns []models.Campaign    `json:"campaigns"`
	Total     int                  `json:"total"`
	Options   models.FilterOptions `json:"options"`
}

// FilterCampaigns applies the given state to the user's campaign collection
// and returns the filtered subset together with the facet options observed
// in that subset.
func (s *FilterService) FilterCampaigns(userID string, state models.FilterState) (*FilterCampaignsResult, error) {
	state.Revalidate()

	campaigns, err := s.campaignRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get campaigns: %w", err)
	}

	filtered := filters.Apply(campaigns, state)
	return &FilterCampaignsResult{
		Campaigns: filtered,
		Total:     len(filtered),
		Options:   filters.ExtractOptions(filtered),
	}, nil
}

// GetFilterOptions derives the facet values and counts over the user's whole
// campaign collection.
func (s *FilterService) GetFilterOptions(userID string) (models.FilterOptions, error) {
	campaigns, err := s.campaignRepo.GetByUserID(userID)
	if err != nil {
		return models.FilterOptions{}, fmt.Errorf("failed to get campaigns: %w", err)
	}
	return filters.ExtractOptions(campaigns), nil
}

// LoadFilterState returns the user's persisted filter state. State that was
// never saved, or that violates its invariants, comes back as defaults.
func (s *FilterService) LoadFilterState(userID string) (models.FilterState, error) {
	pref, err := s.prefRepo.GetByUserIDAndKey(userID, models.FilterStorageKey)
	if err != nil {
		return models.FilterState{}, fmt.Errorf("failed to load filter state: %w", err)
	}
	if pref == nil {
		return models.DefaultFilterState(), nil
	}

	state := pref.State
	state.Revalidate()
	return state, nil
}

// SaveFilterState persists the user's filter state. Last write wins.
func (s *FilterService) SaveFilterState(userID string, state models.FilterState) error {
	state.Revalidate()
	if err := s.prefRepo.Upsert(userID, models.FilterStorageKey, state); err != nil {
		return fmt.Errorf("failed to save filter state: %w", err)
	}
	return nil
}

// ResetFilterState removes the user's persisted filter state.
func (s *FilterService) ResetFilterState(userID string) error {
	if err := s.prefRepo.DeleteByUserIDAndKey(userID, models.FilterStorageKey); err != nil {
		return fmt.Errorf("failed to reset filter state: %w", err)
	}
	return nil
}

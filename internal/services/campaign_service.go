package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/modamuse/lookpost-services-backend/internal/database/repository"
	"github.com/modamuse/lookpost-services-backend/internal/lookpost"
	"github.com/modamuse/lookpost-services-backend/internal/models"
)

type CampaignService struct {
	campaignRepo *repository.CampaignRepository
	rabbitMQ     *RabbitMQService // nil when messaging is disabled
	languageTag  string
}

func NewCampaignService(campaignRepo *repository.CampaignRepository, rabbitMQ *RabbitMQService, languageTag string) *CampaignService {
	return &CampaignService{
		campaignRepo: campaignRepo,
		rabbitMQ:     rabbitMQ,
		languageTag:  languageTag,
	}
}

func (s *CampaignService) validationOptions() lookpost.Options {
	return lookpost.Options{LanguageTag: s.languageTag}
}

// CreateCampaign creates a new draft campaign for a user
func (s *CampaignService) CreateCampaign(userID string, req *models.CreateCampaignRequest) (*models.CampaignResponse, error) {
	campaign := &models.Campaign{
		ID:               uuid.NewString(),
		UserID:           userID,
		Title:            req.Title,
		Prompt:           req.Prompt,
		ShortDescription: req.ShortDescription,
		LongDescription:  req.LongDescription,
		Locale:           req.Locale,
		LookVisualURL:    req.LookVisualURL,
		Instagram:        req.Instagram,
		Input:            req.Input,
		Product:          req.Product,
		LookItems:        req.LookItems,
		PaletteHex:       req.PaletteHex,
		BrandTone:        req.BrandTone,
		Status:           models.StatusDraft,
	}

	if err := s.campaignRepo.Create(campaign); err != nil {
		return nil, fmt.Errorf("failed to create campaign: %w", err)
	}

	return s.toResponse(campaign), nil
}

// GetCampaignsByUser retrieves all campaigns for a specific user
func (s *CampaignService) GetCampaignsByUser(userID string) ([]models.Campaign, error) {
	campaigns, err := s.campaignRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get campaigns: %w", err)
	}
	return campaigns, nil
}

// GetCampaignResponsesByUser retrieves all campaigns for a user as response DTOs
func (s *CampaignService) GetCampaignResponsesByUser(userID string) ([]*models.CampaignResponse, error) {
	campaigns, err := s.GetCampaignsByUser(userID)
	if err != nil {
		return nil, err
	}

	responses := make([]*models.CampaignResponse, len(campaigns))
	for i := range campaigns {
		responses[i] = s.toResponse(&campaigns[i])
	}
	return responses, nil
}

// GetCampaignsByUserPaginated retrieves one page of campaigns plus the total
func (s *CampaignService) GetCampaignsByUserPaginated(userID string, page, pageSize int) ([]*models.CampaignResponse, int64, error) {
	campaigns, total, err := s.campaignRepo.GetByUserIDPaginated(userID, page, pageSize)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get campaigns: %w", err)
	}

	responses := make([]*models.CampaignResponse, len(campaigns))
	for i := range campaigns {
		responses[i] = s.toResponse(&campaigns[i])
	}
	return responses, total, nil
}

// GetCampaignByID retrieves a campaign by ID (user must own it)
func (s *CampaignService) GetCampaignByID(userID, campaignID string) (*models.CampaignResponse, error) {
	campaign, err := s.campaignRepo.GetByUserIDAndID(userID, campaignID)
	if err != nil {
		return nil, errors.New("campaign not found")
	}

	return s.toResponse(campaign), nil
}

// UpdateCampaign updates a campaign (user must own it)
func (s *CampaignService) UpdateCampaign(userID, campaignID string, req *models.UpdateCampaignRequest) (*models.CampaignResponse, error) {
	campaign, err := s.campaignRepo.GetByUserIDAndID(userID, campaignID)
	if err != nil {
		return nil, errors.New("campaign not found")
	}

	campaign.Title = req.Title
	campaign.Prompt = req.Prompt
	campaign.ShortDescription = req.ShortDescription
	campaign.LongDescription = req.LongDescription
	campaign.LookVisualURL = req.LookVisualURL
	campaign.Instagram = req.Instagram
	campaign.Input = req.Input
	campaign.Product = req.Product
	campaign.LookItems = req.LookItems
	campaign.PaletteHex = req.PaletteHex
	campaign.BrandTone = req.BrandTone

	if err := s.campaignRepo.Update(campaign); err != nil {
		return nil, fmt.Errorf("failed to update campaign: %w", err)
	}

	return s.toResponse(campaign), nil
}

// DeleteCampaign deletes a campaign (user must own it)
func (s *CampaignService) DeleteCampaign(userID, campaignID string) error {
	_, err := s.campaignRepo.GetByUserIDAndID(userID, campaignID)
	if err != nil {
		return errors.New("campaign not found")
	}

	if err := s.campaignRepo.DeleteByUserIDAndID(userID, campaignID); err != nil {
		return fmt.Errorf("failed to delete campaign: %w", err)
	}

	return nil
}

// ValidateCampaign runs the normalization engine over a campaign. With apply
// set, the corrected fields are written back onto the stored record.
func (s *CampaignService) ValidateCampaign(userID, campaignID string, apply bool) (*models.ValidationResult, error) {
	campaign, err := s.campaignRepo.GetByUserIDAndID(userID, campaignID)
	if err != nil {
		return nil, errors.New("campaign not found")
	}

	result := lookpost.Validate(campaign, s.validationOptions())

	if apply && result.Corrected {
		if err := s.applyCorrections(campaign, result.CorrectedData); err != nil {
			return nil, fmt.Errorf("failed to persist corrections: %w", err)
		}
	}

	s.publishEvent(EventCampaignValidated, campaign, map[string]interface{}{
		"valid":            result.Valid,
		"corrected":        result.Corrected,
		"error_count":      len(result.Errors),
		"corrected_fields": result.ValidationLog.CorrectedFields,
	})

	return result, nil
}

// applyCorrections persists the corrected subset back onto the campaign:
// look items, palette, SEO keywords, brand tone, governance and telemetry.
// The rest of the schema is computed per call, not stored.
func (s *CampaignService) applyCorrections(campaign *models.Campaign, data *models.LookPost) error {
	campaign.LookItems = data.Look.Items
	campaign.PaletteHex = data.Look.PaletteHex
	campaign.SEOKeywords = data.Descriptions.SEOKeywords
	campaign.BrandTone = data.Descriptions.BrandTone
	governance := data.Governance
	campaign.Governance = &governance
	telemetry := data.Telemetry
	campaign.Telemetry = &telemetry

	return s.campaignRepo.Update(campaign)
}

// ExportCampaign builds the canonical schema for download. A campaign that
// fails hard validation cannot be exported.
func (s *CampaignService) ExportCampaign(userID, campaignID string) (string, []byte, error) {
	campaign, err := s.campaignRepo.GetByUserIDAndID(userID, campaignID)
	if err != nil {
		return "", nil, errors.New("campaign not found")
	}

	result := lookpost.Validate(campaign, s.validationOptions())
	if !result.Valid {
		return "", nil, fmt.Errorf("campaign failed validation with %d errors", len(result.Errors))
	}

	data, err := lookpost.MarshalExport(lookpost.Build(campaign, s.validationOptions()))
	if err != nil {
		return "", nil, err
	}

	return lookpost.ExportFileName(campaign.ID, time.Now()), data, nil
}

// PublishCampaign transitions a campaign to published. The campaign must
// pass hard validation first.
func (s *CampaignService) PublishCampaign(userID, campaignID string) (*models.CampaignResponse, error) {
	campaign, err := s.campaignRepo.GetByUserIDAndID(userID, campaignID)
	if err != nil {
		return nil, errors.New("campaign not found")
	}

	result := lookpost.Validate(campaign, s.validationOptions())
	if !result.Valid {
		return nil, fmt.Errorf("campaign failed validation with %d errors", len(result.Errors))
	}

	now := time.Now()
	campaign.Status = models.StatusPublished
	campaign.PublishedAt = &now
	campaign.ScheduledAt = nil

	if err := s.campaignRepo.Update(campaign); err != nil {
		return nil, fmt.Errorf("failed to publish campaign: %w", err)
	}

	s.publishEvent(EventCampaignPublished, campaign, nil)
	return s.toResponse(campaign), nil
}

// ScheduleCampaign transitions a campaign to scheduled for a future time.
func (s *CampaignService) ScheduleCampaign(userID, campaignID string, at time.Time) (*models.CampaignResponse, error) {
	campaign, err := s.campaignRepo.GetByUserIDAndID(userID, campaignID)
	if err != nil {
		return nil, errors.New("campaign not found")
	}

	if at.Before(time.Now()) {
		return nil, errors.New("scheduled time must be in the future")
	}

	result := lookpost.Validate(campaign, s.validationOptions())
	if !result.Valid {
		return nil, fmt.Errorf("campaign failed validation with %d errors", len(result.Errors))
	}

	campaign.Status = models.StatusScheduled
	campaign.ScheduledAt = &at

	if err := s.campaignRepo.Update(campaign); err != nil {
		return nil, fmt.Errorf("failed to schedule campaign: %w", err)
	}

	s.publishEvent(EventCampaignScheduled, campaign, map[string]interface{}{
		"scheduled_at": at.Format(time.RFC3339),
	})
	return s.toResponse(campaign), nil
}

func (s *CampaignService) publishEvent(eventType string, campaign *models.Campaign, payload map[string]interface{}) {
	if s.rabbitMQ == nil {
		return
	}
	if err := s.rabbitMQ.PublishCampaignEvent(eventType, campaign.ID, campaign.UserID, payload); err != nil {
		logrus.Warnf("Failed to publish %s event for campaign %s: %v", eventType, campaign.ID, err)
	}
}

// toResponse converts Campaign model to response DTO
func (s *CampaignService) toResponse(campaign *models.Campaign) *models.CampaignResponse {
	return &models.CampaignResponse{
		ID:               campaign.ID,
		UserID:           campaign.UserID,
		Title:            campaign.Title,
		Prompt:           campaign.Prompt,
		ShortDescription: campaign.ShortDescription,
		LongDescription:  campaign.LongDescription,
		Locale:           campaign.Locale,
		Status:           campaign.Status,
		LookVisualURL:    campaign.LookVisualURL,
		Instagram:        campaign.Instagram,
		Input:            campaign.Input,
		Product:          campaign.Product,
		LookItems:        campaign.LookItems,
		PaletteHex:       campaign.PaletteHex,
		SEOKeywords:      campaign.SEOKeywords,
		BrandTone:        campaign.BrandTone,
		ComplianceScore:  campaign.EffectiveComplianceScore(),
		HasAdjustments:   campaign.HasAdjustments(),
		PublishedAt:      campaign.PublishedAt,
		ScheduledAt:      campaign.ScheduledAt,
		CreatedAt:        campaign.CreatedAt.Format(time.RFC3339),
		UpdatedAt:        campaign.UpdatedAt.Format(time.RFC3339),
	}
}

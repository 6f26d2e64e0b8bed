package services

import (
	"encoding/json"
	"fmt"

	"github.com/getsentry/sentry-go"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/modamuse/lookpost-services-backend/internal/database/repository"
	"github.com/modamuse/lookpost-services-backend/internal/lookpost"
	"github.com/modamuse/lookpost-services-backend/internal/models"
)

// GenerationIngestService consumes finished campaigns from the external
// generation pipeline, runs them through the validation engine and persists
// the corrected record.
type GenerationIngestService struct {
	campaignRepo *repository.CampaignRepository
	rabbitMQ     *RabbitMQService
	languageTag  string
	stopChan     chan struct{}
}

func NewGenerationIngestService(campaignRepo *repository.CampaignRepository, rabbitMQ *RabbitMQService, languageTag string) *GenerationIngestService {
	return &GenerationIngestService{
		campaignRepo: campaignRepo,
		rabbitMQ:     rabbitMQ,
		languageTag:  languageTag,
		stopChan:     make(chan struct{}),
	}
}

// Start begins consuming generation results from RabbitMQ
func (s *GenerationIngestService) Start() error {
	msgs, err := s.rabbitMQ.channel.Consume(
		QueueGenerationResults, // queue
		"",                     // consumer
		true,                   // auto-ack
		false,                  // exclusive
		false,                  // no-local
		false,                  // no-wait
		nil,                    // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	logrus.Infof("RabbitMQ consumer started for %s queue", QueueGenerationResults)

	go func() {
		for {
			select {
			case <-s.stopChan:
				logrus.Info("Generation ingest consumer stopped")
				return
			case msg, ok := <-msgs:
				if !ok {
					logrus.Warn("RabbitMQ channel closed")
					return
				}
				if err := s.ingest(msg.Body); err != nil {
					logrus.Errorf("Failed to ingest generated campaign: %v", err)
					sentry.CaptureException(err)
				}
			}
		}
	}()

	return nil
}

// Stop stops the consumer goroutine
func (s *GenerationIngestService) Stop() {
	close(s.stopChan)
}

// ingest decodes one generated campaign, validates it, writes the corrected
// fields and stores the record. Generated payloads are never trusted: a
// record that fails hard validation is still stored as a draft so the user
// can repair it, but the failure is logged and reported in the event.
func (s *GenerationIngestService) ingest(body []byte) error {
	var campaign models.Campaign
	if err := json.Unmarshal(body, &campaign); err != nil {
		return fmt.Errorf("failed to decode generation result: %w", err)
	}

	if campaign.ID == "" {
		campaign.ID = uuid.NewString()
	}
	if campaign.Status == "" {
		campaign.Status = models.StatusDraft
	}

	result := lookpost.Validate(&campaign, lookpost.Options{LanguageTag: s.languageTag})
	if result.Corrected {
		data := result.CorrectedData
		campaign.LookItems = data.Look.Items
		campaign.PaletteHex = data.Look.PaletteHex
		campaign.SEOKeywords = data.Descriptions.SEOKeywords
		campaign.BrandTone = data.Descriptions.BrandTone
		governance := data.Governance
		campaign.Governance = &governance
		telemetry := data.Telemetry
		campaign.Telemetry = &telemetry
	}

	if !result.Valid {
		logrus.Warnf("Generated campaign %s failed validation: %v", campaign.ID, result.Errors)
	}

	// Regeneration of an existing campaign overwrites the stored record.
	if existing, err := s.campaignRepo.GetByID(campaign.ID); err == nil && existing != nil {
		campaign.CreatedAt = existing.CreatedAt
		if err := s.campaignRepo.Update(&campaign); err != nil {
			return fmt.Errorf("failed to update regenerated campaign: %w", err)
		}
	} else if err := s.campaignRepo.Create(&campaign); err != nil {
		return fmt.Errorf("failed to store generated campaign: %w", err)
	}

	if err := s.rabbitMQ.PublishCampaignEvent(EventCampaignValidated, campaign.ID, campaign.UserID, map[string]interface{}{
		"valid":            result.Valid,
		"corrected":        result.Corrected,
		"error_count":      len(result.Errors),
		"corrected_fields": result.ValidationLog.CorrectedFields,
	}); err != nil {
		logrus.Warnf("Failed to publish validated event for campaign %s: %v", campaign.ID, err)
	}

	return nil
}

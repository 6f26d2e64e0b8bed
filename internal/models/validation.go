package models

import "time"

// ValidationResult wraps one validation run over a campaign. Valid is true
// iff no hard error was recorded; warnings never affect it. CorrectedData is
// always populated, even for invalid campaigns, with whatever could be
// normalized; callers must check Valid before trusting required fields.
type ValidationResult struct {
	Valid         bool          `json:"valid"`
	Errors        []string      `json:"errors"`
	Warnings      []string      `json:"warnings"`
	Corrected     bool          `json:"corrected"`
	CorrectedData *LookPost     `json:"corrected_data"`
	ValidationLog ValidationLog `json:"validation_log"`
}

// ValidationLog records what a validation run changed and how long it took.
type ValidationLog struct {
	Timestamp       time.Time `json:"timestamp"`
	CorrectedFields []string  `json:"corrected_fields"`
	DurationMS      float64   `json:"duration_ms"`
}

package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRevalidateResetsInvalidComplianceRange(t *testing.T) {
	min, max := 90.0, 10.0
	f := FilterState{ComplianceMin: &min, ComplianceMax: &max}
	f.Revalidate()
	assert.Nil(t, f.ComplianceMin)
	assert.Nil(t, f.ComplianceMax)
}

func TestRevalidateKeepsValidComplianceRange(t *testing.T) {
	min, max := 10.0, 90.0
	f := FilterState{ComplianceMin: &min, ComplianceMax: &max}
	f.Revalidate()
	assert.NotNil(t, f.ComplianceMin)
	assert.NotNil(t, f.ComplianceMax)
}

func TestRevalidateResetsInvertedDateRange(t *testing.T) {
	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	end := start.Add(-24 * time.Hour)
	f := FilterState{DateStart: &start, DateEnd: &end, DatePreset: "last-week"}
	f.Revalidate()
	assert.Nil(t, f.DateStart)
	assert.Nil(t, f.DateEnd)
	assert.Empty(t, f.DatePreset)
}

func TestRevalidateFillsSortDefaults(t *testing.T) {
	f := FilterState{SortDirection: "sideways"}
	f.Revalidate()
	assert.Equal(t, SortByCreatedAt, f.SortField)
	assert.Equal(t, SortDesc, f.SortDirection)
}

func TestEffectiveComplianceScoreFallback(t *testing.T) {
	score, original := 85.0, 60.0

	c := Campaign{BrandComplianceScore: &score, BrandComplianceOriginalScore: &original}
	assert.Equal(t, 85.0, c.EffectiveComplianceScore())

	c = Campaign{BrandComplianceOriginalScore: &original}
	assert.Equal(t, 60.0, c.EffectiveComplianceScore())

	c = Campaign{}
	assert.Equal(t, 0.0, c.EffectiveComplianceScore())
}

package lookpost

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modamuse/lookpost-services-backend/internal/models"
)

func testOptions(seed int64) Options {
	return Options{
		LanguageTag: "pt-PT",
		Rand:        rand.New(rand.NewSource(seed)),
		Now:         func() time.Time { return time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC) },
	}
}

// validCampaign is fully populated and already normalized: validating it
// must require no corrections.
func validCampaign() *models.Campaign {
	longDescription := strings.TrimSpace(strings.Repeat("linho leve para dias quentes ", 25))
	return &models.Campaign{
		ID:               "550e8400-e29b-41d4-a716-446655440000",
		Title:            "Vestido de linho",
		Prompt:           "Look featuring Vestido de linho",
		ShortDescription: "Vestido de linho leve para o verão.",
		LongDescription:  longDescription,
		Locale:           "pt-PT",
		LookVisualURL:    "https://cdn.example.com/looks/1234.jpg",
		Instagram: &models.InstagramContent{
			Caption:       "O verão pede linho. ☀️",
			Hashtags:      []string{"#moda", "#linho"},
			CallToAction:  "Descobre mais na nossa loja ✨",
			AltText:       "Mulher com vestido de linho branco",
			SuggestedTime: "19:00",
		},
		Input: &models.CampaignInput{
			Brief:    "Look featuring Vestido de linho",
			Occasion: "casual",
			Vibe:     "leve",
			Audience: "mulheres 25-40",
		},
		Product: &models.ProductInfo{
			Name:   "Vestido de linho",
			SKU:    "VL-001",
			Style:  "Casual",
			Colors: []string{"branco"},
		},
		LookItems:   models.LookItemList{{Role: models.RoleCore, Name: "Vestido de linho", SKU: "VL-001"}},
		PaletteHex:  models.StringList{"#FFFFFF", "#C8B89A"},
		SEOKeywords: models.StringList{"vestido", "linho"},
		BrandTone:   "Casual e descontraído",
		Governance: &models.Governance{
			Tone:           "Casual e descontraído",
			ForbiddenTerms: []string{},
			RequiredTerms:  []string{},
			RiskLevels:     models.RiskLevels{Content: "low", BrandSafety: "low"},
		},
		Telemetry: &models.Telemetry{
			GenDurationsMS: models.GenDurations{LookImage: 4000, Descriptions: 1000, Instagram: 700},
			OutputLengths:  models.OutputLengths{ShortDescriptionChars: 35, LongDescriptionWords: 125},
			TimeSavedMin:   90,
		},
		CreatedAt: time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC),
	}
}

// campaignFromLookPost writes a normalized schema back onto a raw campaign,
// the way the persistence layer would before a re-validation.
func campaignFromLookPost(lp *models.LookPost) *models.Campaign {
	return &models.Campaign{
		ID:               lp.Campaign.ID,
		Title:            lp.Product.Name,
		Prompt:           lp.Input.Brief,
		ShortDescription: lp.Descriptions.Short,
		LongDescription:  lp.Descriptions.Long,
		Locale:           lp.Campaign.Locale,
		LookVisualURL:    lp.Look.ImageURL,
		Instagram: &models.InstagramContent{
			Caption:       lp.Instagram.Caption,
			Hashtags:      lp.Instagram.Hashtags,
			CallToAction:  lp.Instagram.CallToAction,
			AltText:       lp.Instagram.AltText,
			SuggestedTime: lp.Instagram.SuggestedTime,
		},
		Input: &models.CampaignInput{
			Brief:      lp.Input.Brief,
			Occasion:   lp.Input.Context.Occasion,
			Vibe:       lp.Input.Context.Vibe,
			Audience:   lp.Input.Context.Audience,
			BudgetHint: lp.Input.Context.BudgetHint,
		},
		Product:     &lp.Product,
		LookItems:   lp.Look.Items,
		PaletteHex:  lp.Look.PaletteHex,
		SEOKeywords: lp.Descriptions.SEOKeywords,
		BrandTone:   lp.Descriptions.BrandTone,
		Governance:  &lp.Governance,
		Telemetry:   &lp.Telemetry,
	}
}

func TestValidateCleanCampaignNeedsNoCorrection(t *testing.T) {
	result := Validate(validCampaign(), testOptions(1))
	assert.True(t, result.Valid)
	assert.Empty(t, result.Errors)
	assert.False(t, result.Corrected)
	assert.Empty(t, result.ValidationLog.CorrectedFields)
	require.NotNil(t, result.CorrectedData)
}

func TestValidateRequiredFieldGate(t *testing.T) {
	c := validCampaign()
	c.ShortDescription = ""
	c.LongDescription = ""

	result := Validate(c, testOptions(1))
	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, 2)
	assert.NotNil(t, result.CorrectedData, "corrected data is populated even when invalid")
}

func TestValidateMissingID(t *testing.T) {
	c := validCampaign()
	c.ID = ""

	result := Validate(c, testOptions(1))
	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, 1)
}

func TestValidateInvalidLookVisual(t *testing.T) {
	c := validCampaign()
	c.LookVisualURL = "looks/relative.jpg"

	result := Validate(c, testOptions(1))
	assert.False(t, result.Valid)
	assert.Len(t, result.Errors, 1)
}

func TestValidateSynthesizesBrief(t *testing.T) {
	c := validCampaign()
	c.Prompt = ""
	c.Input.Brief = ""

	result := Validate(c, testOptions(1))
	assert.True(t, result.Valid)
	assert.True(t, result.Corrected)
	assert.Equal(t, "Look featuring Vestido de linho", result.CorrectedData.Input.Brief)
	assert.Contains(t, result.ValidationLog.CorrectedFields, "input.brief")
}

func TestValidateBriefFallbackSubject(t *testing.T) {
	c := validCampaign()
	c.Prompt = ""
	c.Input.Brief = ""
	c.Title = ""
	// Product name also absent, so it falls back too.
	c.Product.Name = ""

	result := Validate(c, testOptions(1))
	assert.Equal(t, "Look featuring "+FallbackBriefSubject, result.CorrectedData.Input.Brief)
	assert.Equal(t, FallbackProductName, result.CorrectedData.Product.Name)
}

func TestValidateSynthesizesCoreItem(t *testing.T) {
	c := validCampaign()
	c.LookItems = models.LookItemList{{Role: "accessory", Name: "Cinto"}}

	result := Validate(c, testOptions(1))
	require.True(t, result.Valid)
	items := result.CorrectedData.Look.Items
	require.Len(t, items, 2)
	assert.Equal(t, models.RoleCore, items[0].Role, "synthesized core item is prepended")
	assert.Equal(t, "Vestido de linho", items[0].Name)
	assert.Equal(t, "VL-001", items[0].SKU)
	assert.Contains(t, result.ValidationLog.CorrectedFields, "look.items")
}

func TestValidatePaletteFallback(t *testing.T) {
	c := validCampaign()
	c.PaletteHex = nil

	result := Validate(c, testOptions(1))
	assert.Equal(t, FallbackPalette, result.CorrectedData.Look.PaletteHex)
	assert.Contains(t, result.ValidationLog.CorrectedFields, "look.palette_hex")
}

func TestValidatePaletteStaysEmptyWithoutProductColors(t *testing.T) {
	c := validCampaign()
	c.PaletteHex = nil
	c.Product.Colors = nil

	result := Validate(c, testOptions(1))
	assert.Empty(t, result.CorrectedData.Look.PaletteHex)
	assert.NotContains(t, result.ValidationLog.CorrectedFields, "look.palette_hex")
}

func TestValidateWarnings(t *testing.T) {
	c := validCampaign()
	c.ShortDescription = strings.Repeat("a", 201)
	c.LongDescription = "apenas algumas palavras"
	c.Instagram.AltText = ""

	result := Validate(c, testOptions(1))
	assert.True(t, result.Valid, "warnings never affect validity")
	assert.Len(t, result.Warnings, 3)
}

func TestValidateLongDescriptionBounds(t *testing.T) {
	word := "palavra "
	tests := []struct {
		words    int
		wantWarn bool
	}{
		{99, true},
		{100, false},
		{199, false},
		{200, true},
	}
	for _, tt := range tests {
		c := validCampaign()
		c.LongDescription = strings.TrimSpace(strings.Repeat(word, tt.words))
		result := Validate(c, testOptions(1))
		if tt.wantWarn {
			assert.NotEmpty(t, result.Warnings, "%d words should warn", tt.words)
		} else {
			assert.Empty(t, result.Warnings, "%d words should not warn", tt.words)
		}
	}
}

func TestValidateGeneratesSEOKeywords(t *testing.T) {
	c := validCampaign()
	c.SEOKeywords = nil

	result := Validate(c, testOptions(1))
	assert.NotEmpty(t, result.CorrectedData.Descriptions.SEOKeywords)
	assert.Contains(t, result.ValidationLog.CorrectedFields, "descriptions.seo_keywords")
}

func TestValidateCanonicalizesBrandTone(t *testing.T) {
	c := validCampaign()
	c.BrandTone = ""

	result := Validate(c, testOptions(1))
	assert.Equal(t, "Elegante e sofisticado", result.CorrectedData.Descriptions.BrandTone)
	assert.Contains(t, result.ValidationLog.CorrectedFields, "descriptions.brand_tone")
}

func TestValidateInstagramRepairs(t *testing.T) {
	c := validCampaign()
	c.Instagram.Hashtags = []string{"  moda  ", "#"}
	c.Instagram.SuggestedTime = "7:5"
	c.Instagram.CallToAction = ""

	result := Validate(c, testOptions(1))
	require.True(t, result.Valid)
	assert.Equal(t, []string{"#moda"}, result.CorrectedData.Instagram.Hashtags)
	assert.Equal(t, "07:05", result.CorrectedData.Instagram.SuggestedTime)
	assert.Equal(t, DefaultCallToAction(LocalePTPT), result.CorrectedData.Instagram.CallToAction)
	assert.Contains(t, result.ValidationLog.CorrectedFields, "instagram.hashtags")
	assert.Contains(t, result.ValidationLog.CorrectedFields, "instagram.suggested_post_time")
	assert.Contains(t, result.ValidationLog.CorrectedFields, "instagram.call_to_action")
}

func TestValidateSynthesizesGovernance(t *testing.T) {
	c := validCampaign()
	c.Governance = nil

	result := Validate(c, testOptions(1))
	gov := result.CorrectedData.Governance
	assert.Equal(t, result.CorrectedData.Descriptions.BrandTone, gov.Tone)
	assert.Empty(t, gov.ForbiddenTerms)
	assert.Empty(t, gov.RequiredTerms)
	assert.Equal(t, models.RiskLevels{Content: "low", BrandSafety: "low"}, gov.RiskLevels)
	assert.Contains(t, result.ValidationLog.CorrectedFields, "governance")
}

func TestValidateSynthesizesTelemetry(t *testing.T) {
	c := validCampaign()
	c.Telemetry = nil

	result := Validate(c, testOptions(42))
	tel := result.CorrectedData.Telemetry
	assert.GreaterOrEqual(t, tel.GenDurationsMS.LookImage, lookImageDurationMinMS)
	assert.LessOrEqual(t, tel.GenDurationsMS.LookImage, lookImageDurationMaxMS)
	assert.GreaterOrEqual(t, tel.GenDurationsMS.Descriptions, descriptionsDurationMinMS)
	assert.LessOrEqual(t, tel.GenDurationsMS.Descriptions, descriptionsDurationMaxMS)
	assert.GreaterOrEqual(t, tel.GenDurationsMS.Instagram, instagramDurationMinMS)
	assert.LessOrEqual(t, tel.GenDurationsMS.Instagram, instagramDurationMaxMS)
	assert.GreaterOrEqual(t, tel.TimeSavedMin, timeSavedMinMinutes)
	assert.LessOrEqual(t, tel.TimeSavedMin, timeSavedMaxMinutes)
	assert.Equal(t, models.OutputLengths{
		ShortDescriptionChars: 35,
		LongDescriptionWords:  125,
		CaptionChars:          22,
		HashtagCount:          2,
	}, tel.OutputLengths)
	assert.Contains(t, result.ValidationLog.CorrectedFields, "telemetry")
}

func TestValidateTelemetryIsDeterministicUnderSeed(t *testing.T) {
	a := validCampaign()
	a.Telemetry = nil
	b := validCampaign()
	b.Telemetry = nil

	first := Validate(a, testOptions(42))
	second := Validate(b, testOptions(42))
	assert.Equal(t, first.CorrectedData.Telemetry, second.CorrectedData.Telemetry)
}

func TestValidateIsAFixedPoint(t *testing.T) {
	c := validCampaign()
	// Strip everything the engine can repair.
	c.Prompt = ""
	c.Input.Brief = ""
	c.PaletteHex = nil
	c.SEOKeywords = nil
	c.BrandTone = ""
	c.Governance = nil
	c.Telemetry = nil
	c.Instagram.CallToAction = ""
	c.Instagram.SuggestedTime = "às 21h"

	first := Validate(c, testOptions(7))
	require.True(t, first.Valid)
	require.True(t, first.Corrected)

	second := Validate(campaignFromLookPost(first.CorrectedData), testOptions(7))
	assert.True(t, second.Valid)
	assert.False(t, second.Corrected, "normalization must be a fixed point, got corrections: %v",
		second.ValidationLog.CorrectedFields)
}

func TestValidateNeverPanicsOnEmptyCampaign(t *testing.T) {
	result := Validate(&models.Campaign{}, testOptions(1))
	assert.False(t, result.Valid)
	// id, look image, short description, long description, caption
	assert.Len(t, result.Errors, 5)
	require.NotNil(t, result.CorrectedData)
	assert.NotEmpty(t, result.CorrectedData.Input.Brief)
}

func TestValidateLogDuration(t *testing.T) {
	result := Validate(validCampaign(), testOptions(1))
	assert.GreaterOrEqual(t, result.ValidationLog.DurationMS, 0.0)
	assert.Equal(t, time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC), result.ValidationLog.Timestamp)
}

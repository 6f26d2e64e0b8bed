package filters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modamuse/lookpost-services-backend/internal/models"
)

func campaignAt(id string, createdAt time.Time) models.Campaign {
	return models.Campaign{
		ID:        id,
		Title:     "Campaign " + id,
		Status:    models.StatusDraft,
		CreatedAt: createdAt,
	}
}

func withColors(c models.Campaign, colors ...string) models.Campaign {
	c.PaletteHex = colors
	return c
}

func withScore(c models.Campaign, score float64) models.Campaign {
	c.BrandComplianceScore = &score
	return c
}

func ids(campaigns []models.Campaign) []string {
	out := make([]string, len(campaigns))
	for i, c := range campaigns {
		out[i] = c.ID
	}
	return out
}

var baseTime = time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)

func TestApplyEmptyFiltersReturnsEverything(t *testing.T) {
	campaigns := []models.Campaign{
		campaignAt("a", baseTime),
		campaignAt("b", baseTime.Add(time.Hour)),
	}
	got := Apply(campaigns, models.DefaultFilterState())
	assert.Len(t, got, 2)
}

func TestApplyColorFacetORWithinANDAcross(t *testing.T) {
	a := withColors(campaignAt("a", baseTime), "red", "blue")
	b := withColors(campaignAt("b", baseTime), "green")
	c := campaignAt("c", baseTime)

	f := models.DefaultFilterState()
	f.Colors = []string{"red", "green"}

	got := Apply([]models.Campaign{a, b, c}, f)
	assert.ElementsMatch(t, []string{"a", "b"}, ids(got),
		"campaigns with no extracted colors are excluded by an active color filter")
}

func TestApplyFacetMatchIsCaseInsensitive(t *testing.T) {
	a := withColors(campaignAt("a", baseTime), "Vermelho")

	f := models.DefaultFilterState()
	f.Colors = []string{"vermelho"}

	got := Apply([]models.Campaign{a}, f)
	assert.Len(t, got, 1)
}

func TestApplyColorsFromAllSources(t *testing.T) {
	a := campaignAt("a", baseTime)
	a.Product = &models.ProductInfo{Colors: []string{"dourado"}}
	b := campaignAt("b", baseTime)
	b.ImageAnalysis = &models.ImageAnalysis{Colors: []string{"prateado"}}
	c := campaignAt("c", baseTime)
	c.LookpostSchema = &models.LegacySchema{DominantColors: []string{"bronze"}}

	f := models.DefaultFilterState()
	f.Colors = []string{"dourado", "prateado", "bronze"}

	got := Apply([]models.Campaign{a, b, c}, f)
	assert.Len(t, got, 3)
}

func TestApplyFacetsCombineWithANDAcross(t *testing.T) {
	a := withColors(campaignAt("a", baseTime), "vermelho")
	a.Input = &models.CampaignInput{Occasion: "Festa"}
	b := withColors(campaignAt("b", baseTime), "vermelho")
	b.Input = &models.CampaignInput{Occasion: "Casamento"}
	c := campaignAt("c", baseTime)
	c.Input = &models.CampaignInput{Occasion: "Festa"}

	f := models.DefaultFilterState()
	f.Colors = []string{"Vermelho"}
	f.Occasions = []string{"festa"}

	got := Apply([]models.Campaign{a, b, c}, f)
	assert.Equal(t, []string{"a"}, ids(got),
		"matching one active facet is not enough; every active facet must match")
}

func TestApplyAllFacetsActiveTogether(t *testing.T) {
	a := withColors(campaignAt("a", baseTime), "Dourado")
	a.Product = &models.ProductInfo{Style: "Elegante"}
	a.Input = &models.CampaignInput{
		Occasion:   "Gala",
		Audience:   "Mulheres 25-40",
		BudgetHint: "Premium",
	}
	a.BrandComplianceAdjustments = models.AdjustmentList{{Field: "caption"}}

	f := models.DefaultFilterState()
	f.Colors = []string{"dourado"}
	f.Styles = []string{"elegante"}
	f.Budgets = []string{"premium"}
	f.Occasions = []string{"gala"}
	f.Audiences = []string{"mulheres 25-40"}
	f.Adjustments = []string{models.AdjustmentsWith}

	got := Apply([]models.Campaign{a}, f)
	assert.Len(t, got, 1, "all active facets satisfied, case-insensitively")
}

func TestExtractStylesFromAllSources(t *testing.T) {
	c := campaignAt("a", baseTime)
	c.Product = &models.ProductInfo{Style: "Casual"}
	c.Input = &models.CampaignInput{Vibe: "Boho & Romântico"}
	c.LookpostSchema = &models.LegacySchema{Style: "casual"}

	got := ExtractStyles(&c)
	assert.Equal(t, []string{"Casual", "Boho", "Romântico"}, got,
		"vibe splits on &, legacy duplicate dropped case-insensitively")
}

func TestExtractBriefFacets(t *testing.T) {
	c := campaignAt("a", baseTime)
	c.Input = &models.CampaignInput{
		Occasion:   "Festa de verão",
		Audience:   "Jovens adultos",
		BudgetHint: "Acessível",
	}

	assert.Equal(t, []string{"Festa de verão"}, ExtractOccasions(&c))
	assert.Equal(t, []string{"Jovens adultos"}, ExtractAudiences(&c))
	assert.Equal(t, []string{"Acessível"}, ExtractBudgets(&c))

	empty := campaignAt("b", baseTime)
	assert.Empty(t, ExtractOccasions(&empty), "no brief, no occasion facet")
	assert.Empty(t, ExtractAudiences(&empty))
	assert.Empty(t, ExtractBudgets(&empty))
}

func TestExtractColorsSplitsAndDedupes(t *testing.T) {
	c := campaignAt("a", baseTime)
	c.Product = &models.ProductInfo{Colors: []string{"Vermelho, Azul & Dourado", "vermelho"}}

	got := ExtractColors(&c)
	assert.Equal(t, []string{"Vermelho", "Azul", "Dourado"}, got,
		"first-seen casing wins, duplicates dropped case-insensitively")
}

func TestApplySearchAcrossFields(t *testing.T) {
	a := campaignAt("a", baseTime)
	a.Instagram = &models.InstagramContent{Caption: "O verão pede LINHO"}
	b := campaignAt("b", baseTime)
	b.LookpostSchema = &models.LegacySchema{Prompt: "vestido de linho"}
	c := campaignAt("c", baseTime)
	c.LongDescription = "nada a ver"

	f := models.DefaultFilterState()
	f.Search = "linho"

	got := Apply([]models.Campaign{a, b, c}, f)
	assert.ElementsMatch(t, []string{"a", "b"}, ids(got))
}

func TestApplyDateRangeInclusive(t *testing.T) {
	a := campaignAt("a", baseTime)
	b := campaignAt("b", baseTime.Add(48*time.Hour))

	f := models.DefaultFilterState()
	start := baseTime
	end := baseTime.Add(24 * time.Hour)
	f.DateStart = &start
	f.DateEnd = &end

	got := Apply([]models.Campaign{a, b}, f)
	assert.Equal(t, []string{"a"}, ids(got), "bounds are inclusive; a sits exactly on the start")
}

func TestApplyComplianceBoundary(t *testing.T) {
	c := withScore(campaignAt("a", baseTime), 80)

	f := models.DefaultFilterState()
	min, max := 80.0, 100.0
	f.ComplianceMin = &min
	f.ComplianceMax = &max
	assert.Len(t, Apply([]models.Campaign{c}, f), 1, "score 80 included in [80,100]")

	min, max = 0.0, 79.0
	f.ComplianceMin = &min
	f.ComplianceMax = &max
	assert.Empty(t, Apply([]models.Campaign{c}, f), "score 80 excluded from [0,79]")
}

func TestEffectiveScoreFallsBackToOriginalThenZero(t *testing.T) {
	original := 70.0
	a := campaignAt("a", baseTime)
	a.BrandComplianceOriginalScore = &original
	b := campaignAt("b", baseTime)

	f := models.DefaultFilterState()
	min := 1.0
	f.ComplianceMin = &min

	got := Apply([]models.Campaign{a, b}, f)
	assert.Equal(t, []string{"a"}, ids(got), "unscored campaigns count as zero")
}

func TestApplyAdjustmentsFacet(t *testing.T) {
	with := campaignAt("with", baseTime)
	with.BrandComplianceAdjustments = models.AdjustmentList{{Field: "caption"}}
	legacy := campaignAt("legacy", baseTime)
	legacy.LookpostSchema = &models.LegacySchema{
		BrandComplianceAdjustments: []models.ComplianceAdjustment{{Field: "short"}},
	}
	without := campaignAt("without", baseTime)
	all := []models.Campaign{with, legacy, without}

	f := models.DefaultFilterState()
	f.Adjustments = []string{models.AdjustmentsWith}
	assert.ElementsMatch(t, []string{"with", "legacy"}, ids(Apply(all, f)))

	f.Adjustments = []string{models.AdjustmentsWithout}
	assert.Equal(t, []string{"without"}, ids(Apply(all, f)))

	f.Adjustments = []string{models.AdjustmentsWith, models.AdjustmentsWithout}
	assert.Len(t, Apply(all, f), 3, "selecting both passes everything")

	f.Adjustments = nil
	assert.Len(t, Apply(all, f), 3, "empty selection is a no-op")
}

func TestApplySortStability(t *testing.T) {
	a := campaignAt("a", baseTime)
	b := campaignAt("b", baseTime)
	c := campaignAt("c", baseTime.Add(time.Hour))

	f := models.DefaultFilterState()
	f.SortField = models.SortByCreatedAt
	f.SortDirection = models.SortDesc

	got := Apply([]models.Campaign{a, b, c}, f)
	assert.Equal(t, []string{"c", "a", "b"}, ids(got),
		"equal timestamps keep their original relative order")
}

func TestApplySortByTitleAscending(t *testing.T) {
	a := campaignAt("a", baseTime)
	a.Title = "Zebra"
	b := campaignAt("b", baseTime)
	b.Title = "Alfazema"

	f := models.DefaultFilterState()
	f.SortField = models.SortByTitle
	f.SortDirection = models.SortAsc

	got := Apply([]models.Campaign{a, b}, f)
	assert.Equal(t, []string{"b", "a"}, ids(got))
}

func TestApplySortMissingTimestampsAsEpoch(t *testing.T) {
	published := baseTime
	a := campaignAt("a", baseTime)
	a.PublishedAt = &published
	b := campaignAt("b", baseTime)

	f := models.DefaultFilterState()
	f.SortField = models.SortByPublishedAt
	f.SortDirection = models.SortAsc

	got := Apply([]models.Campaign{a, b}, f)
	assert.Equal(t, []string{"b", "a"}, ids(got), "missing timestamps sort oldest")
}

func TestApplyDoesNotMutateInput(t *testing.T) {
	a := campaignAt("a", baseTime.Add(time.Hour))
	b := campaignAt("b", baseTime)
	input := []models.Campaign{a, b}

	f := models.DefaultFilterState()
	f.SortField = models.SortByCreatedAt
	f.SortDirection = models.SortAsc
	got := Apply(input, f)

	require.Equal(t, []string{"b", "a"}, ids(got))
	assert.Equal(t, []string{"a", "b"}, ids(input), "input order untouched")
}

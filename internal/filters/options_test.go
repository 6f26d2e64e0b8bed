package filters

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/modamuse/lookpost-services-backend/internal/models"
)

func TestExtractOptionsCountsSortedDescending(t *testing.T) {
	now := time.Now()
	a := withColors(campaignAt("a", now), "Vermelho", "Azul")
	b := withColors(campaignAt("b", now), "vermelho")
	c := withColors(campaignAt("c", now), "VERMELHO")

	opts := ExtractOptions([]models.Campaign{a, b, c})
	require.Len(t, opts.Colors, 2)
	assert.Equal(t, models.FacetOption{Value: "Vermelho", Count: 3}, opts.Colors[0],
		"case-insensitive counting under first-seen casing")
	assert.Equal(t, models.FacetOption{Value: "Azul", Count: 1}, opts.Colors[1])
}

func TestExtractOptionsAdjustmentFacetIsFixed(t *testing.T) {
	now := time.Now()
	adjusted := campaignAt("a", now)
	adjusted.BrandComplianceAdjustments = models.AdjustmentList{{Field: "caption"}}
	plain := campaignAt("b", now)

	opts := ExtractOptions([]models.Campaign{adjusted, plain})
	assert.Equal(t, []models.FacetOption{
		{Value: models.AdjustmentsWith, Count: 1},
		{Value: models.AdjustmentsWithout, Count: 1},
	}, opts.Adjustments)
}

func TestExtractOptionsEmptyCollection(t *testing.T) {
	opts := ExtractOptions(nil)
	assert.Empty(t, opts.Colors)
	assert.Equal(t, []models.FacetOption{
		{Value: models.AdjustmentsWith, Count: 0},
		{Value: models.AdjustmentsWithout, Count: 0},
	}, opts.Adjustments)
}

func TestFilteredSubsetCountsNeverExceedFullCounts(t *testing.T) {
	now := time.Now()
	campaigns := []models.Campaign{
		withColors(campaignAt("a", now), "red", "blue"),
		withColors(campaignAt("b", now), "green"),
		withColors(campaignAt("c", now), "red"),
		campaignAt("d", now),
	}

	full := ExtractOptions(campaigns)

	f := models.DefaultFilterState()
	f.Colors = []string{"red"}
	subset := ExtractOptions(Apply(campaigns, f))

	fullCounts := facetCountMap(full.Colors)
	for _, opt := range subset.Colors {
		assert.LessOrEqual(t, opt.Count, fullCounts[opt.Value],
			"facet %q grew after filtering", opt.Value)
	}
}

func facetCountMap(opts []models.FacetOption) map[string]int {
	out := make(map[string]int, len(opts))
	for _, o := range opts {
		out[o.Value] = o.Count
	}
	return out
}

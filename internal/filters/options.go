package filters

import (
	"sort"
	"strings"

	"github.com/modamuse/lookpost-services-backend/internal/models"
)

// ExtractOptions derives the distinct facet values and usage counts across a
// campaign collection in a single pass, for populating filter controls.
// Values are counted case-insensitively under their first-seen casing and
// emitted sorted by descending count. The adjustment facet always has
// exactly the two fixed options.
func ExtractOptions(campaigns []models.Campaign) models.FilterOptions {
	colors := newFacetCounter()
	styles := newFacetCounter()
	budgets := newFacetCounter()
	occasions := newFacetCounter()
	audiences := newFacetCounter()
	withAdjustments := 0
	withoutAdjustments := 0

	for i := range campaigns {
		c := &campaigns[i]
		colors.addAll(ExtractColors(c))
		styles.addAll(ExtractStyles(c))
		budgets.addAll(ExtractBudgets(c))
		occasions.addAll(ExtractOccasions(c))
		audiences.addAll(ExtractAudiences(c))
		if c.HasAdjustments() {
			withAdjustments++
		} else {
			withoutAdjustments++
		}
	}

	return models.FilterOptions{
		Colors:    colors.options(),
		Styles:    styles.options(),
		Budgets:   budgets.options(),
		Occasions: occasions.options(),
		Audiences: audiences.options(),
		Adjustments: []models.FacetOption{
			{Value: models.AdjustmentsWith, Count: withAdjustments},
			{Value: models.AdjustmentsWithout, Count: withoutAdjustments},
		},
	}
}

type facetCounter struct {
	counts map[string]int
	labels map[string]string
	order  []string
}

func newFacetCounter() *facetCounter {
	return &facetCounter{
		counts: make(map[string]int),
		labels: make(map[string]string),
	}
}

func (f *facetCounter) addAll(values []string) {
	for _, value := range values {
		key := strings.ToLower(value)
		if _, seen := f.counts[key]; !seen {
			f.labels[key] = value
			f.order = append(f.order, key)
		}
		f.counts[key]++
	}
}

func (f *facetCounter) options() []models.FacetOption {
	keys := append([]string(nil), f.order...)
	sort.SliceStable(keys, func(i, j int) bool {
		return f.counts[keys[i]] > f.counts[keys[j]]
	})
	out := make([]models.FacetOption, len(keys))
	for i, key := range keys {
		out[i] = models.FacetOption{Value: f.labels[key], Count: f.counts[key]}
	}
	return out
}

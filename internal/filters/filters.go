// Package filters implements the campaign filtering, sorting and facet
// extraction engine. It is pure: campaigns are read, never mutated.
package filters

import (
	"sort"
	"strings"
	"time"

	"github.com/modamuse/lookpost-services-backend/internal/models"
)

// Apply narrows a campaign collection by every active criterion in the
// filter state and returns the result stably sorted. Empty criteria are
// no-ops; the input slice is left untouched.
func Apply(campaigns []models.Campaign, f models.FilterState) []models.Campaign {
	out := make([]models.Campaign, 0, len(campaigns))
	for i := range campaigns {
		if matches(&campaigns[i], f) {
			out = append(out, campaigns[i])
		}
	}
	sortCampaigns(out, f.SortField, f.SortDirection)
	return out
}

func matches(c *models.Campaign, f models.FilterState) bool {
	if term := strings.TrimSpace(f.Search); term != "" && !matchesSearch(c, term) {
		return false
	}

	// Date range, inclusive on both bounds.
	if f.DateStart != nil && c.CreatedAt.Before(*f.DateStart) {
		return false
	}
	if f.DateEnd != nil && c.CreatedAt.After(*f.DateEnd) {
		return false
	}

	// Compliance score range, inclusive.
	score := c.EffectiveComplianceScore()
	if f.ComplianceMin != nil && score < *f.ComplianceMin {
		return false
	}
	if f.ComplianceMax != nil && score > *f.ComplianceMax {
		return false
	}

	// Facets: OR within a facet, AND across facets. A campaign with no
	// extracted values for an active facet is excluded.
	if len(f.Colors) > 0 && !intersectsFold(ExtractColors(c), f.Colors) {
		return false
	}
	if len(f.Styles) > 0 && !intersectsFold(ExtractStyles(c), f.Styles) {
		return false
	}
	if len(f.Budgets) > 0 && !intersectsFold(ExtractBudgets(c), f.Budgets) {
		return false
	}
	if len(f.Occasions) > 0 && !intersectsFold(ExtractOccasions(c), f.Occasions) {
		return false
	}
	if len(f.Audiences) > 0 && !intersectsFold(ExtractAudiences(c), f.Audiences) {
		return false
	}

	if len(f.Adjustments) > 0 {
		has := c.HasAdjustments()
		if has && !containsFold(f.Adjustments, models.AdjustmentsWith) {
			return false
		}
		if !has && !containsFold(f.Adjustments, models.AdjustmentsWithout) {
			return false
		}
	}

	return true
}

func matchesSearch(c *models.Campaign, term string) bool {
	term = strings.ToLower(term)
	fields := []string{
		c.Title,
		c.ShortDescription,
		c.LongDescription,
		c.Prompt,
	}
	if c.Instagram != nil {
		fields = append(fields, c.Instagram.Caption)
	}
	if c.LookpostSchema != nil {
		fields = append(fields, c.LookpostSchema.Prompt)
	}
	for _, field := range fields {
		if strings.Contains(strings.ToLower(field), term) {
			return true
		}
	}
	return false
}

// ExtractColors pulls color values from every field that may carry them:
// the palette, the product, image analysis, and the legacy schema blob.
func ExtractColors(c *models.Campaign) []string {
	var raw []string
	raw = append(raw, c.PaletteHex...)
	if c.Product != nil {
		raw = append(raw, c.Product.Colors...)
	}
	if c.ImageAnalysis != nil {
		raw = append(raw, c.ImageAnalysis.Colors...)
	}
	if c.LookpostSchema != nil {
		raw = append(raw, c.LookpostSchema.DominantColors...)
	}
	return normalizeFacetValues(raw)
}

// ExtractStyles pulls style values from the product, the brief vibe and the
// legacy schema.
func ExtractStyles(c *models.Campaign) []string {
	var raw []string
	if c.Product != nil {
		raw = append(raw, c.Product.Style)
	}
	if c.Input != nil {
		raw = append(raw, c.Input.Vibe)
	}
	if c.LookpostSchema != nil {
		raw = append(raw, c.LookpostSchema.Style)
	}
	return normalizeFacetValues(raw)
}

// ExtractBudgets pulls the budget hint from the brief.
func ExtractBudgets(c *models.Campaign) []string {
	if c.Input == nil {
		return nil
	}
	return normalizeFacetValues([]string{c.Input.BudgetHint})
}

// ExtractOccasions pulls the occasion from the brief.
func ExtractOccasions(c *models.Campaign) []string {
	if c.Input == nil {
		return nil
	}
	return normalizeFacetValues([]string{c.Input.Occasion})
}

// ExtractAudiences pulls the target audience from the brief.
func ExtractAudiences(c *models.Campaign) []string {
	if c.Input == nil {
		return nil
	}
	return normalizeFacetValues([]string{c.Input.Audience})
}

// normalizeFacetValues splits comma/ampersand-delimited values, trims, drops
// empties and deduplicates case-insensitively keeping first-seen casing.
func normalizeFacetValues(raw []string) []string {
	var out []string
	seen := make(map[string]bool)
	for _, value := range raw {
		for _, part := range splitDelimited(value) {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			key := strings.ToLower(part)
			if seen[key] {
				continue
			}
			seen[key] = true
			out = append(out, part)
		}
	}
	return out
}

func splitDelimited(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '&'
	})
}

func intersectsFold(values, selected []string) bool {
	for _, v := range values {
		if containsFold(selected, v) {
			return true
		}
	}
	return false
}

func containsFold(values []string, target string) bool {
	for _, v := range values {
		if strings.EqualFold(v, target) {
			return true
		}
	}
	return false
}

func sortCampaigns(campaigns []models.Campaign, field, direction string) {
	less := lessFunc(field)
	desc := direction == models.SortDesc
	// Stable in both directions: inverting the comparison rather than
	// reversing afterwards keeps ties in their original relative order.
	sort.SliceStable(campaigns, func(i, j int) bool {
		if desc {
			return less(&campaigns[j], &campaigns[i])
		}
		return less(&campaigns[i], &campaigns[j])
	})
}

func lessFunc(field string) func(a, b *models.Campaign) bool {
	switch field {
	case models.SortByTitle:
		return func(a, b *models.Campaign) bool { return a.Title < b.Title }
	case models.SortByCompliance:
		return func(a, b *models.Campaign) bool {
			return a.EffectiveComplianceScore() < b.EffectiveComplianceScore()
		}
	case models.SortByStatus:
		return func(a, b *models.Campaign) bool { return a.Status < b.Status }
	case models.SortByPublishedAt:
		return func(a, b *models.Campaign) bool {
			return timeOrEpoch(a.PublishedAt).Before(timeOrEpoch(b.PublishedAt))
		}
	case models.SortByScheduledAt:
		return func(a, b *models.Campaign) bool {
			return timeOrEpoch(a.ScheduledAt).Before(timeOrEpoch(b.ScheduledAt))
		}
	default:
		return func(a, b *models.Campaign) bool { return a.CreatedAt.Before(b.CreatedAt) }
	}
}

// timeOrEpoch sorts campaigns missing a timestamp as oldest.
func timeOrEpoch(t *time.Time) time.Time {
	if t == nil {
		return time.Unix(0, 0).UTC()
	}
	return *t
}

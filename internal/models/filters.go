package models

import (
	"database/sql/driver"
	"time"
)

// FilterStorageKey is the fixed key filter state is persisted under.
const FilterStorageKey = "campaign-filters-v1"

// Sort fields accepted by the filter engine.
const (
	SortByTitle       = "title"
	SortByCompliance  = "brand_compliance_score"
	SortByStatus      = "status"
	SortByPublishedAt = "published_at"
	SortByScheduledAt = "scheduled_at"
	SortByCreatedAt   = "created_at"
)

// Sort directions.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// Adjustment-presence facet values.
const (
	AdjustmentsWith    = "with"
	AdjustmentsWithout = "without"
)

// FilterState is the user-selected filter and sort criteria over the
// campaign list. Empty or nil criteria are no-ops.
type FilterState struct {
	Search string `json:"search"`

	DateStart  *time.Time `json:"date_start"`
	DateEnd    *time.Time `json:"date_end"`
	DatePreset string     `json:"date_preset,omitempty"`

	ComplianceMin *float64 `json:"compliance_min"`
	ComplianceMax *float64 `json:"compliance_max"`

	Colors      []string `json:"colors"`
	Styles      []string `json:"styles"`
	Budgets     []string `json:"budgets"`
	Occasions   []string `json:"occasions"`
	Audiences   []string `json:"audiences"`
	Adjustments []string `json:"adjustments"`

	SortField     string `json:"sort_field"`
	SortDirection string `json:"sort_direction"`
}

func (f FilterState) Value() (driver.Value, error) { return jsonbValue(f) }
func (f *FilterState) Scan(src interface{}) error  { return jsonbScan(f, src) }

// DefaultFilterState returns the unconstrained state: no criteria, newest
// campaigns first.
func DefaultFilterState() FilterState {
	return FilterState{
		SortField:     SortByCreatedAt,
		SortDirection: SortDesc,
	}
}

// Revalidate resets ranges that violate their invariants. Persisted state
// can come back inconsistent (older app versions, hand-edited rows), so it
// is re-checked on every load rather than trusted.
func (f *FilterState) Revalidate() {
	if f.ComplianceMin != nil && f.ComplianceMax != nil && *f.ComplianceMin > *f.ComplianceMax {
		f.ComplianceMin = nil
		f.ComplianceMax = nil
	}
	if f.DateStart != nil && f.DateEnd != nil && f.DateStart.After(*f.DateEnd) {
		f.DateStart = nil
		f.DateEnd = nil
		f.DatePreset = ""
	}
	if f.SortField == "" {
		f.SortField = SortByCreatedAt
	}
	if f.SortDirection != SortAsc && f.SortDirection != SortDesc {
		f.SortDirection = SortDesc
	}
}

// FacetOption is one observed facet value with its usage count.
type FacetOption struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// FilterOptions are the distinct facet values observed across a campaign
// collection, sorted by descending count. Recomputed whenever the collection
// changes, never persisted.
type FilterOptions struct {
	Colors      []FacetOption `json:"colors"`
	Styles      []FacetOption `json:"styles"`
	Budgets     []FacetOption `json:"budgets"`
	Occasions   []FacetOption `json:"occasions"`
	Audiences   []FacetOption `json:"audiences"`
	Adjustments []FacetOption `json:"adjustments"`
}

// FilterPreference is the per-user persisted filter state row.
type FilterPreference struct {
	ID         string      `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID     string      `json:"user_id" gorm:"uniqueIndex:idx_filter_prefs_user_key;type:uuid"`
	StorageKey string      `json:"storage_key" gorm:"uniqueIndex:idx_filter_prefs_user_key;type:varchar(64)"`
	State      FilterState `json:"state" gorm:"type:jsonb"`
	CreatedAt  time.Time   `json:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at"`
}

// TableName specifies the table name for the FilterPreference model
func (FilterPreference) TableName() string {
	return "filter_preferences"
}

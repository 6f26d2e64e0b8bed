package models

import (
	"database/sql/driver"
	"time"
)

// Campaign status values.
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusScheduled = "scheduled"
)

// Campaign is the as-stored campaign record. Generated campaigns arrive from
// the generation pipeline loosely populated: any optional column may be NULL
// or structurally malformed, which is why validation runs on ingest.
type Campaign struct {
	ID     string `json:"id" gorm:"primaryKey;type:uuid;default:gen_random_uuid()"`
	UserID string `json:"user_id" gorm:"index;type:uuid"`
	Title  string `json:"title" gorm:"type:varchar(255)"`

	// Content
	Prompt           string            `json:"prompt" gorm:"type:text"`
	ShortDescription string            `json:"short_description" gorm:"type:text"`
	LongDescription  string            `json:"long_description" gorm:"type:text"`
	Instagram        *InstagramContent `json:"instagram,omitempty" gorm:"type:jsonb"`

	// Media references
	LookVisualURL       string     `json:"look_visual_url" gorm:"type:text"`
	CenterpieceImageRef string     `json:"centerpiece_image_ref" gorm:"type:text"`
	AccessoryImageRefs  StringList `json:"accessory_image_refs,omitempty" gorm:"type:jsonb"`
	ModelImageRef       string     `json:"model_image_ref" gorm:"type:text"`

	// Status
	Status      string     `json:"status" gorm:"type:varchar(20);index;default:'draft'"`
	PublishedAt *time.Time `json:"published_at,omitempty" gorm:"index"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty" gorm:"index"`

	// Extended fields (populated by generation, repaired by validation)
	Locale      string         `json:"locale" gorm:"type:varchar(10)"`
	Input       *CampaignInput `json:"input,omitempty" gorm:"type:jsonb"`
	Product     *ProductInfo   `json:"product,omitempty" gorm:"type:jsonb"`
	LookItems   LookItemList   `json:"look_items,omitempty" gorm:"type:jsonb"`
	PaletteHex  StringList     `json:"palette_hex,omitempty" gorm:"type:jsonb"`
	SEOKeywords StringList     `json:"seo_keywords,omitempty" gorm:"type:jsonb"`
	BrandTone   string         `json:"brand_tone" gorm:"type:varchar(255)"`
	Governance  *Governance    `json:"governance,omitempty" gorm:"type:jsonb"`
	Telemetry   *Telemetry     `json:"telemetry,omitempty" gorm:"type:jsonb"`

	// Derived analysis and the pre-normalization legacy blob
	ImageAnalysis  *ImageAnalysis `json:"image_analysis,omitempty" gorm:"type:jsonb"`
	LookpostSchema *LegacySchema  `json:"lookpost_schema,omitempty" gorm:"type:jsonb"`

	// Brand compliance scoring
	BrandComplianceScore         *float64       `json:"brand_compliance_score,omitempty"`
	BrandComplianceOriginalScore *float64       `json:"brand_compliance_original_score,omitempty"`
	BrandComplianceAdjustments   AdjustmentList `json:"brand_compliance_adjustments,omitempty" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Campaign model
func (Campaign) TableName() string {
	return "campaigns"
}

// EffectiveComplianceScore is the score used for filtering and sorting,
// falling back from the current score to the original score to zero.
func (c *Campaign) EffectiveComplianceScore() float64 {
	if c.BrandComplianceScore != nil {
		return *c.BrandComplianceScore
	}
	if c.BrandComplianceOriginalScore != nil {
		return *c.BrandComplianceOriginalScore
	}
	return 0
}

// HasAdjustments reports whether any brand compliance adjustment was recorded,
// checking the current column and the legacy schema blob.
func (c *Campaign) HasAdjustments() bool {
	if len(c.BrandComplianceAdjustments) > 0 {
		return true
	}
	return c.LookpostSchema != nil && len(c.LookpostSchema.BrandComplianceAdjustments) > 0
}

// InstagramContent holds the Instagram post sub-object of a campaign.
type InstagramContent struct {
	Caption       string   `json:"caption"`
	Hashtags      []string `json:"hashtags"`
	CallToAction  string   `json:"call_to_action"`
	AltText       string   `json:"alt_text"`
	SuggestedTime string   `json:"suggested_time"`
}

func (i InstagramContent) Value() (driver.Value, error) { return jsonbValue(i) }
func (i *InstagramContent) Scan(src interface{}) error  { return jsonbScan(i, src) }

// CampaignInput is the user brief that drove generation.
type CampaignInput struct {
	Brief           string `json:"brief"`
	Occasion        string `json:"occasion"`
	Vibe            string `json:"vibe"`
	Audience        string `json:"audience"`
	BudgetHint      string `json:"budget_hint"`
	ProductImageURL string `json:"product_image_url"`
	ModelImageURL   string `json:"model_image_url"`
}

func (i CampaignInput) Value() (driver.Value, error) { return jsonbValue(i) }
func (i *CampaignInput) Scan(src interface{}) error  { return jsonbScan(i, src) }

// ProductInfo describes the product the look is built around.
type ProductInfo struct {
	Name      string   `json:"name"`
	SKU       string   `json:"sku"`
	Material  string   `json:"material"`
	Fit       string   `json:"fit"`
	Style     string   `json:"style"`
	Colors    []string `json:"colors"`
	SizeNotes string   `json:"size_notes"`
}

func (p ProductInfo) Value() (driver.Value, error) { return jsonbValue(p) }
func (p *ProductInfo) Scan(src interface{}) error  { return jsonbScan(p, src) }

// RoleCore marks the centerpiece look item.
const RoleCore = "core"

// LookItem is one piece of the composed look. The centerpiece carries
// role "core"; everything else is an accessory.
type LookItem struct {
	Role  string `json:"role"`
	Name  string `json:"name"`
	SKU   string `json:"sku"`
	Color string `json:"color"`
}

// Governance records which brand rules were applied to the generated copy.
type Governance struct {
	Tone           string     `json:"tone"`
	ForbiddenTerms []string   `json:"forbidden_terms"`
	RequiredTerms  []string   `json:"required_terms"`
	RiskLevels     RiskLevels `json:"risk_levels"`
}

// RiskLevels holds the safety risk assessment for generated content.
type RiskLevels struct {
	Content     string `json:"content"`
	BrandSafety string `json:"brand_safety"`
}

func (g Governance) Value() (driver.Value, error) { return jsonbValue(g) }
func (g *Governance) Scan(src interface{}) error  { return jsonbScan(g, src) }

// Telemetry holds generation timing and output size metrics.
type Telemetry struct {
	GenDurationsMS GenDurations  `json:"gen_durations_ms"`
	OutputLengths  OutputLengths `json:"output_lengths"`
	TimeSavedMin   int           `json:"time_saved_min"`
}

// GenDurations are per-stage generation durations in milliseconds.
type GenDurations struct {
	LookImage    int `json:"look_image"`
	Descriptions int `json:"descriptions"`
	Instagram    int `json:"instagram"`
}

// OutputLengths are size metrics over the generated copy.
type OutputLengths struct {
	ShortDescriptionChars int `json:"short_description_chars"`
	LongDescriptionWords  int `json:"long_description_words"`
	CaptionChars          int `json:"caption_chars"`
	HashtagCount          int `json:"hashtag_count"`
}

func (t Telemetry) Value() (driver.Value, error) { return jsonbValue(t) }
func (t *Telemetry) Scan(src interface{}) error  { return jsonbScan(t, src) }

// ImageAnalysis holds results of the external image analysis step.
type ImageAnalysis struct {
	Colors []string `json:"colors"`
}

func (a ImageAnalysis) Value() (driver.Value, error) { return jsonbValue(a) }
func (a *ImageAnalysis) Scan(src interface{}) error  { return jsonbScan(a, src) }

// LegacySchema is the pre-normalization lookpost blob older campaigns still
// carry. Read for filtering fallbacks, never written back.
type LegacySchema struct {
	Prompt                     string                 `json:"prompt"`
	Style                      string                 `json:"style"`
	DominantColors             []string               `json:"dominant_colors"`
	BrandComplianceAdjustments []ComplianceAdjustment `json:"brand_compliance_adjustments"`
}

func (s LegacySchema) Value() (driver.Value, error) { return jsonbValue(s) }
func (s *LegacySchema) Scan(src interface{}) error  { return jsonbScan(s, src) }

// ComplianceAdjustment is one rewrite the brand compliance pass applied.
type ComplianceAdjustment struct {
	Field    string `json:"field"`
	Original string `json:"original"`
	Adjusted string `json:"adjusted"`
	Reason   string `json:"reason"`
}

// CreateCampaignRequest represents the request to create a new campaign
type CreateCampaignRequest struct {
	Title            string            `json:"title" binding:"required" example:"Vestido de linho de verão"`
	Prompt           string            `json:"prompt"`
	ShortDescription string            `json:"short_description"`
	LongDescription  string            `json:"long_description"`
	Locale           string            `json:"locale" example:"pt-PT"`
	LookVisualURL    string            `json:"look_visual_url" example:"https://cdn.example.com/looks/1234.jpg"`
	Instagram        *InstagramContent `json:"instagram"`
	Input            *CampaignInput    `json:"input"`
	Product          *ProductInfo      `json:"product"`
	LookItems        []LookItem        `json:"look_items"`
	PaletteHex       []string          `json:"palette_hex"`
	BrandTone        string            `json:"brand_tone"`
}

// UpdateCampaignRequest represents the request to update a campaign
type UpdateCampaignRequest struct {
	Title            string            `json:"title" binding:"required"`
	Prompt           string            `json:"prompt"`
	ShortDescription string            `json:"short_description"`
	LongDescription  string            `json:"long_description"`
	LookVisualURL    string            `json:"look_visual_url"`
	Instagram        *InstagramContent `json:"instagram"`
	Input            *CampaignInput    `json:"input"`
	Product          *ProductInfo      `json:"product"`
	LookItems        []LookItem        `json:"look_items"`
	PaletteHex       []string          `json:"palette_hex"`
	BrandTone        string            `json:"brand_tone"`
}

// ScheduleCampaignRequest carries the target time for a schedule transition.
type ScheduleCampaignRequest struct {
	ScheduledAt time.Time `json:"scheduled_at" binding:"required" example:"2026-09-01T19:00:00Z"`
}

// CampaignResponse represents the response for campaign operations
type CampaignResponse struct {
	ID               string            `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	UserID           string            `json:"user_id"`
	Title            string            `json:"title"`
	Prompt           string            `json:"prompt"`
	ShortDescription string            `json:"short_description"`
	LongDescription  string            `json:"long_description"`
	Locale           string            `json:"locale"`
	Status           string            `json:"status" example:"draft"`
	LookVisualURL    string            `json:"look_visual_url"`
	Instagram        *InstagramContent `json:"instagram,omitempty"`
	Input            *CampaignInput    `json:"input,omitempty"`
	Product          *ProductInfo      `json:"product,omitempty"`
	LookItems        []LookItem        `json:"look_items,omitempty"`
	PaletteHex       []string          `json:"palette_hex,omitempty"`
	SEOKeywords      []string          `json:"seo_keywords,omitempty"`
	BrandTone        string            `json:"brand_tone"`
	ComplianceScore  float64           `json:"compliance_score"`
	HasAdjustments   bool              `json:"has_adjustments"`
	PublishedAt      *time.Time        `json:"published_at,omitempty"`
	ScheduledAt      *time.Time        `json:"scheduled_at,omitempty"`
	CreatedAt        string            `json:"created_at" example:"2026-01-09T10:30:00Z"`
	UpdatedAt        string            `json:"updated_at" example:"2026-01-09T10:30:00Z"`
}

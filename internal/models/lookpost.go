package models

// LookPost schema identification constants. The schema version only moves
// when the export shape changes.
const (
	LookPostSchemaVersion = "1.0"
	SourceApp             = "lookpost-services"
	SourceVersion         = "1.4.0"
)

// LookPost is the canonical, fully populated campaign schema. Every field is
// present and individually valid per its normalizer; the validation engine
// produces one fresh per run and callers decide what to write back.
type LookPost struct {
	SchemaVersion string               `json:"schema_version"`
	Campaign      LookPostCampaign     `json:"campaign"`
	Input         LookPostInput        `json:"input"`
	Product       ProductInfo          `json:"product"`
	Look          LookPostLook         `json:"look"`
	Descriptions  LookPostDescriptions `json:"descriptions"`
	Instagram     InstagramContent     `json:"instagram"`
	Governance    Governance           `json:"governance"`
	Telemetry     Telemetry            `json:"telemetry"`
}

// LookPostCampaign identifies the campaign and the app that produced it.
type LookPostCampaign struct {
	ID            string `json:"id"`
	CreatedAt     string `json:"created_at"`
	Locale        string `json:"locale"`
	SourceApp     string `json:"source_app"`
	SourceVersion string `json:"source_version"`
}

// LookPostInput carries the brief, its generation context, and the validated
// asset URLs. Asset URLs are nil when the stored reference is not a
// resolvable http(s) URL.
type LookPostInput struct {
	Brief   string              `json:"brief"`
	Context LookPostContext     `json:"context"`
	Assets  LookPostInputAssets `json:"assets"`
}

// LookPostContext is the generation brief context.
type LookPostContext struct {
	Occasion   string `json:"occasion"`
	Vibe       string `json:"vibe"`
	Audience   string `json:"audience"`
	BudgetHint string `json:"budget_hint"`
}

// LookPostInputAssets holds the validated input image URLs.
type LookPostInputAssets struct {
	ProductImageURL *string `json:"product_image_url"`
	ModelImageURL   *string `json:"model_image_url"`
}

// LookPostLook is the composed look: image, items and palette.
type LookPostLook struct {
	ImageURL   string     `json:"image_url"`
	Items      []LookItem `json:"items"`
	PaletteHex []string   `json:"palette_hex"`
}

// LookPostDescriptions holds the marketing copy.
type LookPostDescriptions struct {
	Short       string   `json:"short"`
	Long        string   `json:"long"`
	SEOKeywords []string `json:"seo_keywords"`
	BrandTone   string   `json:"brand_tone"`
}

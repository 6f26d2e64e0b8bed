package lookpost

import (
	"fmt"
	"math/rand"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/modamuse/lookpost-services-backend/internal/models"
)

// Telemetry placeholder bounds in milliseconds (minutes for time saved).
// Synthetic values, not measurements: generation runs on the external
// pipeline and older campaigns arrived without timings.
const (
	lookImageDurationMinMS    = 3500
	lookImageDurationMaxMS    = 5000
	descriptionsDurationMinMS = 800
	descriptionsDurationMaxMS = 1200
	instagramDurationMinMS    = 600
	instagramDurationMaxMS    = 900
	timeSavedMinMinutes       = 60
	timeSavedMaxMinutes       = 120
)

// Options configure a validation or schema-build run. The engine reads no
// ambient state: locale and randomness come in here.
type Options struct {
	// LanguageTag is the ambient language tag used when the campaign
	// carries no locale of its own.
	LanguageTag string
	// Rand drives the telemetry placeholders. Nil means time-seeded.
	Rand *rand.Rand
	// Now is the clock for the validation log. Nil means time.Now.
	Now func() time.Time
}

func (o Options) rng() *rand.Rand {
	if o.Rand != nil {
		return o.Rand
	}
	return rand.New(rand.NewSource(time.Now().UnixNano()))
}

func (o Options) now() time.Time {
	if o.Now != nil {
		return o.Now()
	}
	return time.Now()
}

// recorder accumulates the outcome of one validation run. A nil recorder is
// valid and records nothing, which is how the non-correcting schema builder
// shares the normalization path.
type recorder struct {
	errors          []string
	warnings        []string
	correctedFields []string
	corrected       bool
}

func (r *recorder) errorf(format string, args ...interface{}) {
	if r == nil {
		return
	}
	r.errors = append(r.errors, fmt.Sprintf(format, args...))
}

func (r *recorder) warnf(format string, args ...interface{}) {
	if r == nil {
		return
	}
	r.warnings = append(r.warnings, fmt.Sprintf(format, args...))
}

func (r *recorder) correct(field string) {
	if r == nil {
		return
	}
	r.correctedFields = append(r.correctedFields, field)
	r.corrected = true
}

// Validate runs the full normalization pipeline over a campaign, repairing
// what it can and reporting what it cannot. CorrectedData is always
// populated; Valid is false only when one of the hard-required fields
// (id, look image URL, short description, long description, Instagram
// caption) is missing. Malformed input never panics.
func Validate(c *models.Campaign, opts Options) *models.ValidationResult {
	start := time.Now()
	rec := &recorder{}
	data := normalize(c, opts, rec)
	duration := time.Since(start)

	return &models.ValidationResult{
		Valid:         len(rec.errors) == 0,
		Errors:        rec.errors,
		Warnings:      rec.warnings,
		Corrected:     rec.corrected,
		CorrectedData: data,
		ValidationLog: models.ValidationLog{
			Timestamp:       opts.now(),
			CorrectedFields: rec.correctedFields,
			DurationMS:      float64(duration.Microseconds()) / 1000,
		},
	}
}

// normalize builds the canonical schema from a raw campaign. With a nil
// recorder it degrades silently (schema builder); with one it tracks
// errors, warnings and corrections (validation engine).
func normalize(c *models.Campaign, opts Options, rec *recorder) *models.LookPost {
	// Identity. The id comes from the caller; nothing can repair its absence.
	if c.ID == "" {
		rec.errorf("campaign id is missing")
	}

	tag := c.Locale
	if tag == "" {
		tag = opts.LanguageTag
	}
	locale := DetectLocale(tag)

	input := models.CampaignInput{}
	if c.Input != nil {
		input = *c.Input
	}
	product := models.ProductInfo{}
	if c.Product != nil {
		product = *c.Product
	}
	instagram := models.InstagramContent{}
	if c.Instagram != nil {
		instagram = *c.Instagram
	}

	// Input brief.
	brief := input.Brief
	if brief == "" {
		brief = c.Prompt
	}
	if brief == "" {
		subject := c.Title
		if subject == "" {
			subject = FallbackBriefSubject
		}
		brief = "Look featuring " + subject
		rec.correct("input.brief")
	}

	// Asset URLs are optional metadata: invalid ones become null, no error.
	productAsset := coalesce(input.ProductImageURL, c.CenterpieceImageRef)
	modelAsset := coalesce(input.ModelImageURL, c.ModelImageRef)

	// Product.
	if product.Name == "" {
		product.Name = c.Title
		if product.Name == "" {
			product.Name = FallbackProductName
		}
		rec.correct("product.name")
	}
	if product.Style == "" {
		product.Style = DefaultProductStyle
	}
	if product.Colors == nil {
		product.Colors = []string{}
	}

	// Look. The image has no fallback, so an unresolvable URL is a hard error.
	if !IsValidAssetURL(c.LookVisualURL) {
		rec.errorf("look.image_url is missing or not a valid URL")
	}
	items := make([]models.LookItem, len(c.LookItems))
	copy(items, c.LookItems)
	if !hasCoreItem(items) {
		core := models.LookItem{Role: models.RoleCore, Name: product.Name, SKU: product.SKU}
		items = append([]models.LookItem{core}, items...)
		rec.correct("look.items")
	}
	palette := append([]string(nil), c.PaletteHex...)
	if len(palette) == 0 && len(product.Colors) > 0 {
		palette = append([]string(nil), FallbackPalette...)
		rec.correct("look.palette_hex")
	}
	if palette == nil {
		palette = []string{}
	}

	// Descriptions.
	if c.ShortDescription == "" {
		rec.errorf("short description is missing")
	} else if utf8.RuneCountInString(c.ShortDescription) > ShortDescriptionMaxChars {
		rec.warnf("short description exceeds %d characters", ShortDescriptionMaxChars)
	}
	if c.LongDescription == "" {
		rec.errorf("long description is missing")
	} else if wc := CountWords(c.LongDescription); wc < LongDescriptionMinWords || wc >= LongDescriptionMaxWords {
		rec.warnf("long description has %d words, advisory range is %d-%d",
			wc, LongDescriptionMinWords, LongDescriptionMaxWords)
	}

	keywords := append([]string(nil), c.SEOKeywords...)
	if len(keywords) == 0 {
		source := strings.Join([]string{c.ShortDescription, c.LongDescription, instagram.Caption}, " ")
		keywords = GenerateSEOKeywords(source)
		rec.correct("descriptions.seo_keywords")
	}

	tone := CanonicalizeBrandTone(c.BrandTone, locale)
	if tone != c.BrandTone {
		rec.correct("descriptions.brand_tone")
	}

	// Instagram.
	if instagram.Caption == "" {
		rec.errorf("instagram caption is missing")
	}
	if instagram.AltText == "" {
		rec.warnf("instagram alt text is missing")
	}
	hashtags := NormalizeHashtags(instagram.Hashtags)
	// Length-only comparison: same-count content changes go undetected.
	// Kept as-is for compatibility with stored validation logs.
	if len(hashtags) != len(instagram.Hashtags) {
		rec.correct("instagram.hashtags")
	}
	instagram.Hashtags = hashtags

	postTime := NormalizeTime(instagram.SuggestedTime)
	if postTime != instagram.SuggestedTime {
		rec.correct("instagram.suggested_post_time")
	}
	instagram.SuggestedTime = postTime

	if instagram.CallToAction == "" {
		instagram.CallToAction = DefaultCallToAction(locale)
		rec.correct("instagram.call_to_action")
	}

	// Governance.
	var governance models.Governance
	if c.Governance != nil {
		governance = *c.Governance
		if governance.ForbiddenTerms == nil {
			governance.ForbiddenTerms = []string{}
		}
		if governance.RequiredTerms == nil {
			governance.RequiredTerms = []string{}
		}
	} else {
		governance = models.Governance{
			Tone:           tone,
			ForbiddenTerms: []string{},
			RequiredTerms:  []string{},
			RiskLevels:     models.RiskLevels{Content: "low", BrandSafety: "low"},
		}
		rec.correct("governance")
	}

	// Telemetry.
	var telemetry models.Telemetry
	if c.Telemetry != nil && c.Telemetry.GenDurationsMS.LookImage != 0 {
		telemetry = *c.Telemetry
	} else {
		rng := opts.rng()
		telemetry = models.Telemetry{
			GenDurationsMS: models.GenDurations{
				LookImage:    randBetween(rng, lookImageDurationMinMS, lookImageDurationMaxMS),
				Descriptions: randBetween(rng, descriptionsDurationMinMS, descriptionsDurationMaxMS),
				Instagram:    randBetween(rng, instagramDurationMinMS, instagramDurationMaxMS),
			},
			OutputLengths: models.OutputLengths{
				ShortDescriptionChars: utf8.RuneCountInString(c.ShortDescription),
				LongDescriptionWords:  CountWords(c.LongDescription),
				CaptionChars:          utf8.RuneCountInString(instagram.Caption),
				HashtagCount:          len(instagram.Hashtags),
			},
			TimeSavedMin: randBetween(rng, timeSavedMinMinutes, timeSavedMaxMinutes),
		}
		rec.correct("telemetry")
	}

	return &models.LookPost{
		SchemaVersion: models.LookPostSchemaVersion,
		Campaign: models.LookPostCampaign{
			ID:            c.ID,
			CreatedAt:     c.CreatedAt.Format(time.RFC3339),
			Locale:        locale,
			SourceApp:     models.SourceApp,
			SourceVersion: models.SourceVersion,
		},
		Input: models.LookPostInput{
			Brief: brief,
			Context: models.LookPostContext{
				Occasion:   input.Occasion,
				Vibe:       input.Vibe,
				Audience:   input.Audience,
				BudgetHint: input.BudgetHint,
			},
			Assets: models.LookPostInputAssets{
				ProductImageURL: validAssetOrNil(productAsset),
				ModelImageURL:   validAssetOrNil(modelAsset),
			},
		},
		Product: product,
		Look: models.LookPostLook{
			ImageURL:   c.LookVisualURL,
			Items:      items,
			PaletteHex: palette,
		},
		Descriptions: models.LookPostDescriptions{
			Short:       c.ShortDescription,
			Long:        c.LongDescription,
			SEOKeywords: keywords,
			BrandTone:   tone,
		},
		Instagram:  instagram,
		Governance: governance,
		Telemetry:  telemetry,
	}
}

func hasCoreItem(items []models.LookItem) bool {
	for _, item := range items {
		if item.Role == models.RoleCore {
			return true
		}
	}
	return false
}

func validAssetOrNil(s string) *string {
	if !IsValidAssetURL(s) {
		return nil
	}
	return &s
}

func coalesce(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func randBetween(rng *rand.Rand, min, max int) int {
	return min + rng.Intn(max-min+1)
}

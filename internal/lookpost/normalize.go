package lookpost

import (
	"fmt"
	"net/url"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/language"
)

// Supported locales.
const (
	LocalePTPT = "pt-PT"
	LocalePTBR = "pt-BR"
	LocaleENUS = "en-US"
	LocaleESES = "es-ES"
)

// Named fallback values. These are shared between the validation engine and
// the non-correcting schema builder so both produce the same defaults.
const (
	DefaultSuggestedTime = "19:00"
	FallbackProductName  = "Fashion Item"
	DefaultProductStyle  = "Casual"
	FallbackBriefSubject = "fashion piece"

	// Advisory copy-length bounds.
	ShortDescriptionMaxChars = 200
	LongDescriptionMinWords  = 100
	LongDescriptionMaxWords  = 200

	seoKeywordLimit  = 8
	seoMinTokenRunes = 4
)

// FallbackPalette is the grayscale placeholder substituted when a campaign
// has product colors but no extracted palette. Placeholder only, not real
// color extraction.
var FallbackPalette = []string{"#000000", "#FFFFFF", "#808080"}

var hexColorRE = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// IsValidHexColor reports whether s is exactly "#" followed by six hex
// digits. Shorthand forms are rejected; callers substitute a fallback.
func IsValidHexColor(s string) bool {
	return hexColorRE.MatchString(s)
}

// IsValidAssetURL reports whether s parses as an absolute http(s) URL.
// Relative paths and other schemes fail closed.
func IsValidAssetURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}
	return u.Host != ""
}

// DetectLocale maps a language tag onto one of the supported locales.
// pt-BR wins over generic pt, then en, then es; everything else falls back
// to pt-PT.
func DetectLocale(tag string) string {
	t, err := language.Parse(tag)
	if err != nil {
		return LocalePTPT
	}
	base, _ := t.Base()
	region, _ := t.Region()
	switch base.String() {
	case "pt":
		if region.String() == "BR" {
			return LocalePTBR
		}
		return LocalePTPT
	case "en":
		return LocaleENUS
	case "es":
		return LocaleESES
	}
	return LocalePTPT
}

var (
	strictTimeRE = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)
	looseTimeRE  = regexp.MustCompile(`(\d{1,2})(?::(\d{1,2}))?`)
)

// NormalizeTime coerces a suggested post time into HH:mm. A well-formed
// value passes through unchanged; otherwise the first hour[:minute] pattern
// is extracted and zero-padded. Unrecoverable input yields
// DefaultSuggestedTime. Never fails.
func NormalizeTime(s string) string {
	if strictTimeRE.MatchString(s) {
		return s
	}
	m := looseTimeRE.FindStringSubmatch(s)
	if m == nil {
		return DefaultSuggestedTime
	}
	hour, _ := strconv.Atoi(m[1])
	minute := 0
	if m[2] != "" {
		minute, _ = strconv.Atoi(m[2])
	}
	if hour > 23 || minute > 59 {
		return DefaultSuggestedTime
	}
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// NormalizeHashtags strips whitespace inside each tag, prefixes "#" when
// missing, and drops tags that normalize to just "#" or nothing.
func NormalizeHashtags(tags []string) []string {
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.Join(strings.Fields(tag), "")
		if tag != "" && !strings.HasPrefix(tag, "#") {
			tag = "#" + tag
		}
		if utf8.RuneCountInString(tag) <= 1 {
			continue
		}
		out = append(out, tag)
	}
	return out
}

// GenerateSEOKeywords extracts the eight most frequent meaningful tokens
// from text: lowercased, punctuation stripped, tokens of three or fewer
// runes discarded. Ties keep first-encountered order. There is no stop-word
// list beyond the length filter.
func GenerateSEOKeywords(text string) []string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) {
			return r
		}
		return ' '
	}, strings.ToLower(text))

	counts := make(map[string]int)
	order := make([]string, 0)
	for _, tok := range strings.Fields(cleaned) {
		if utf8.RuneCountInString(tok) < seoMinTokenRunes {
			continue
		}
		if _, seen := counts[tok]; !seen {
			order = append(order, tok)
		}
		counts[tok]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	if len(order) > seoKeywordLimit {
		order = order[:seoKeywordLimit]
	}
	return order
}

// brandToneEntry maps a tone keyword onto its locale-specific canonical
// phrase. The table is evaluated in declaration order, first match wins.
type brandToneEntry struct {
	match   string
	phrases map[string]string
}

var brandToneTable = []brandToneEntry{
	{
		match: "elegant",
		phrases: map[string]string{
			LocalePTPT: "Elegante e sofisticado",
			LocalePTBR: "Elegante e sofisticado",
			LocaleENUS: "Elegant and sophisticated",
			LocaleESES: "Elegante y sofisticado",
		},
	},
	{
		match: "modern",
		phrases: map[string]string{
			LocalePTPT: "Moderno e arrojado",
			LocalePTBR: "Moderno e ousado",
			LocaleENUS: "Modern and bold",
			LocaleESES: "Moderno y atrevido",
		},
	},
	{
		match: "casual",
		phrases: map[string]string{
			LocalePTPT: "Casual e descontraído",
			LocalePTBR: "Casual e despojado",
			LocaleENUS: "Casual and relaxed",
			LocaleESES: "Casual y desenfadado",
		},
	},
}

func tonePhrase(entry brandToneEntry, locale string) string {
	if phrase, ok := entry.phrases[locale]; ok {
		return phrase
	}
	return entry.phrases[LocalePTPT]
}

// CanonicalizeBrandTone maps a free-form brand tone onto the canonical
// phrase for the given locale. Absent input defaults to the elegant entry;
// a tone matching no table entry passes through unchanged.
func CanonicalizeBrandTone(tone, locale string) string {
	if strings.TrimSpace(tone) == "" {
		return tonePhrase(brandToneTable[0], locale)
	}
	lower := strings.ToLower(tone)
	for _, entry := range brandToneTable {
		if strings.Contains(lower, entry.match) {
			return tonePhrase(entry, locale)
		}
	}
	return tone
}

// DefaultCallToAction returns the locale-appropriate call to action used
// when the generated post has none.
func DefaultCallToAction(locale string) string {
	switch locale {
	case LocalePTBR:
		return "Descubra mais na nossa loja ✨"
	case LocaleENUS:
		return "Discover more in our store ✨"
	case LocaleESES:
		return "Descubre más en nuestra tienda ✨"
	default:
		return "Descobre mais na nossa loja ✨"
	}
}

// CountWords counts whitespace-separated tokens after trimming.
func CountWords(s string) int {
	return len(strings.Fields(s))
}

package lookpost

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/modamuse/lookpost-services-backend/internal/models"
)

// Build converts a raw campaign into the canonical schema without tracking
// corrections: missing fields fall through to the same defaults the
// validation engine uses, nothing is recorded and nothing errors. Used for
// plain export and preview.
func Build(c *models.Campaign, opts Options) *models.LookPost {
	return normalize(c, opts, nil)
}

// ExportFileName names a schema download for a campaign.
func ExportFileName(id string, t time.Time) string {
	return fmt.Sprintf("campaign-%s-%s.json", id, t.Format("20060102-1504"))
}

// MarshalExport serializes a schema as indented JSON for download.
func MarshalExport(lp *models.LookPost) ([]byte, error) {
	b, err := json.MarshalIndent(lp, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal lookpost schema: %w", err)
	}
	return b, nil
}

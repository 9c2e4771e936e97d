package resource

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"regexp"

	"github.com/summitmls/reso-odata-gateway/internal/odata"
)

// mediaURLPattern matches <URL>…</URL> occurrences in the photo XML
// blob, in document order (spec §4.5 step 5).
var mediaURLPattern = regexp.MustCompile(`<URL>(.*?)</URL>`)

// MediaItem is one entry of a Property's Media array.
type MediaItem struct {
	MediaKey          string `json:"MediaKey"`
	ResourceRecordKey string `json:"ResourceRecordKey"`
	MediaURL          string `json:"MediaURL"`
	Order             int    `json:"Order"`
}

// applyPropertyTransforms encodes ListingKey through the key codec,
// best-effort persists the alias, and reshapes PhotosXML into a Media
// array — the Property-only steps of spec §4.5 step 5.
func (d *Driver) applyPropertyTransforms(ctx context.Context, rows []map[string]interface{}) {
	for _, row := range rows {
		backendKey, _ := row["ListingKey"].(string)
		encodedKey := odata.EncodeKey(backendKey)
		if d.keyAlias != nil {
			d.keyAlias.UpsertKeyAlias(ctx, encodedKey, backendKey)
		}
		row["ListingKey"] = encodedKey

		photosXML, _ := row["PhotosXML"].(string)
		row["Media"] = parseMedia(photosXML, encodedKey)
		delete(row, "PhotosXML")
	}
}

// parseMedia extracts <URL> entries from the photo XML blob. Absent
// or empty XML yields an empty slice, never nil, so the JSON encoding
// is always `[]` rather than `null`.
func parseMedia(photosXML, encodedListingKey string) []MediaItem {
	matches := mediaURLPattern.FindAllStringSubmatch(photosXML, -1)
	items := make([]MediaItem, 0, len(matches))
	for i, m := range matches {
		url := m[1]
		sum := sha256.Sum256([]byte(url))
		mediaKey := hex.EncodeToString(sum[:])[:16]
		items = append(items, MediaItem{
			MediaKey:          mediaKey,
			ResourceRecordKey: encodedListingKey,
			MediaURL:          url,
			Order:             i + 1,
		})
	}
	return items
}

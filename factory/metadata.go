package factory

import (
	"fmt"

	"github.com/tidwall/gjson"
)

// Metadata is a sale's off-chain descriptor: the raw JSON document plus the
// commonly indexed fields pulled out of it.
type Metadata struct {
	Raw         string
	Description string
	Image       string
	Website     string
}

// parseMetadata validates the document and extracts the indexed fields.
// An empty document is allowed; malformed JSON is not.
func parseMetadata(raw string) (Metadata, error) {
	if raw == "" {
		return Metadata{}, nil
	}
	if !gjson.Valid(raw) {
		return Metadata{}, fmt.Errorf("%w: %q", ErrInvalidMetadata, raw)
	}
	return Metadata{
		Raw:         raw,
		Description: gjson.Get(raw, "description").String(),
		Image:       gjson.Get(raw, "image").String(),
		Website:     gjson.Get(raw, "website").String(),
	}, nil
}

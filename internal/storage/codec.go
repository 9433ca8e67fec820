package storage

import (
	"encoding/json"
	"fmt"

	"github.com/fatflowers/wellbeing/internal/models"
)

// EncodeUsageRecord serializes a record for key/value backends.
func EncodeUsageRecord(r *models.UsageRecord) ([]byte, error) {
	if r.SchemaVersion == 0 {
		r.SchemaVersion = models.UsageSchemaVersion
	}
	return json.Marshal(r)
}

// DecodeUsageRecord parses a stored record. Corrupt JSON and unknown schema
// versions both yield ErrMalformed.
func DecodeUsageRecord(data []byte) (*models.UsageRecord, error) {
	var r models.UsageRecord
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if r.SchemaVersion != models.UsageSchemaVersion {
		return nil, fmt.Errorf("%w: schema version %d", ErrMalformed, r.SchemaVersion)
	}
	if r.ComicsGenerated < 0 || r.BreathingExercisesCompleted < 0 {
		return nil, fmt.Errorf("%w: negative counter", ErrMalformed)
	}
	return &r, nil
}

// EncodeGrant serializes a grant for key/value backends.
func EncodeGrant(g *models.FeatherGrant) ([]byte, error) {
	return json.Marshal(g)
}

// DecodeGrant parses a stored grant; grants without id or category are malformed.
func DecodeGrant(data []byte) (*models.FeatherGrant, error) {
	var g models.FeatherGrant
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if g.ID == "" || g.Category == "" {
		return nil, fmt.Errorf("%w: grant missing id or type", ErrMalformed)
	}
	return &g, nil
}

package storage

import (
	"errors"
	"testing"
	"time"

	"github.com/fatflowers/wellbeing/internal/models"
	"github.com/stretchr/testify/require"
)

func TestDecodeUsageRecord_Malformed(t *testing.T) {
	cases := map[string]string{
		"corrupt json":     `{"comicsGenerated":`,
		"unknown version":  `{"schemaVersion":7,"comicsGenerated":1}`,
		"missing version":  `{"comicsGenerated":1}`,
		"negative counter": `{"schemaVersion":1,"comicsGenerated":-2}`,
	}
	for name, body := range cases {
		_, err := DecodeUsageRecord([]byte(body))
		require.True(t, errors.Is(err, ErrMalformed), name)
	}
}

func TestEncodeUsageRecord_StampsVersion(t *testing.T) {
	r := &models.UsageRecord{UserID: "u", ComicsGenerated: 2, LastResetDate: time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC)}
	body, err := EncodeUsageRecord(r)
	require.NoError(t, err)

	got, err := DecodeUsageRecord(body)
	require.NoError(t, err)
	require.Equal(t, 2, got.ComicsGenerated)
	require.Equal(t, models.UsageSchemaVersion, got.SchemaVersion)
}

func TestDecodeGrant_RequiresIDAndType(t *testing.T) {
	_, err := DecodeGrant([]byte(`{"amount":1}`))
	require.ErrorIs(t, err, ErrMalformed)

	_, err = DecodeGrant([]byte(`not json`))
	require.ErrorIs(t, err, ErrMalformed)

	g, err := DecodeGrant([]byte(`{"id":"g1","type":"bonus","amount":4,"timestamp":"2026-01-01T00:00:00Z"}`))
	require.NoError(t, err)
	require.Equal(t, "bonus", g.Category)
	require.Equal(t, int64(4), g.Amount)
}

package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AryanSingh2029/Google-Pay-Finance-Tracker/pkg/models"
)

func TestDatasetRoundtrip(t *testing.T) {
	s := New()

	_, ok := s.Dataset("missing")
	assert.False(t, ok)

	ds := &models.Dataset{Kind: models.SourceWallet, Hash: "abc123"}
	s.PutDataset(ds)

	got, ok := s.Dataset("abc123")
	require.True(t, ok)
	assert.Same(t, ds, got)
}

func TestSummaryRoundtrip(t *testing.T) {
	s := New()

	key := SummaryKey("week-2024-01-08", "abc123")
	assert.Equal(t, "week-2024-01-08-abc123", key)

	_, ok := s.Summary(key)
	assert.False(t, ok)

	s.PutSummary(key, "a quiet week")
	text, ok := s.Summary(key)
	require.True(t, ok)
	assert.Equal(t, "a quiet week", text)

	// Same upload under a different view is a distinct entry.
	_, ok = s.Summary(SummaryKey("month-2024-01", "abc123"))
	assert.False(t, ok)
}

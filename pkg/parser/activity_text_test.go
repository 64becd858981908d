package parser

import (
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AryanSingh2029/Google-Pay-Finance-Tracker/pkg/models"
)

func TestParseActivityText(t *testing.T) {
	content := []byte(`Google Pay Paid ₹500.00 to Alice using Bank Account Jan 5, 2024, 14:30:15
Google Pay Sent ₹1,200.00 using Bank Account Jan 6, 2024, 9:05:00
Google Pay Something without a date
`)

	p := New(log.Default())
	txs := p.ParseActivityText(content)
	require.Len(t, txs, 2)

	// Text exports carry the signed convention: Paid is Sent and negative.
	paid := txs[0]
	assert.Equal(t, models.TypeSent, paid.Type)
	assert.Equal(t, -500.0, paid.Amount)
	assert.Equal(t, "Paid to Alice", paid.Description)
	assert.Equal(t, "2024-01-05", paid.Date.Format("2006-01-02"))
	assert.Equal(t, 14, paid.Hour)

	sent := txs[1]
	assert.Equal(t, models.TypeReceived, sent.Type)
	assert.Equal(t, 1200.0, sent.Amount)
	assert.Equal(t, "Received money", sent.Description)
}

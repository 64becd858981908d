package csv

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AryanSingh2029/Google-Pay-Finance-Tracker/pkg/models"
)

func sample(t *testing.T) []models.Transaction {
	t.Helper()
	ts, err := time.Parse("2006-01-02 15:04:05", "2024-01-08 14:30:15")
	require.NoError(t, err)
	a := models.Transaction{Timestamp: ts, Description: "Paid to Alice", Amount: 1500, Type: models.TypeSent}
	a.Finalize()
	b := models.Transaction{Timestamp: ts.Add(time.Hour), Description: "Refund", Amount: 75.5, Type: models.TypeReceived}
	b.Finalize()
	return []models.Transaction{a, b}
}

func TestCreate(t *testing.T) {
	out := string(Create(sample(t), nil))
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "Date,Time,Description,Amount,Type", lines[0])
	assert.Equal(t, "2024-01-08,02:30:15 PM,Paid to Alice,1500,Sent", lines[1])
	assert.Equal(t, "2024-01-08,03:30:15 PM,Refund,75.5,Received", lines[2])
}

func TestCreateFiltered(t *testing.T) {
	onlySent := func(tx models.Transaction) bool { return tx.Type == models.TypeSent }
	out := string(Create(sample(t), onlySent))
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[1], "Paid to Alice")
}

func TestCreateLedgerUnknownBalance(t *testing.T) {
	date, err := time.Parse("2006-01-02", "2024-01-08")
	require.NoError(t, err)
	entries := []models.LedgerEntry{
		{Date: date, Description: "Opening spend", Debit: 500},
		{Date: date.AddDate(0, 0, 1), Description: "Salary", Credit: 20000, Balance: 30000, BalanceKnown: true},
	}

	out := string(CreateLedger(entries))
	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 3)
	// Unresolved balances render empty, not as 0.00.
	assert.Equal(t, "2024-01-08,Opening spend,500.00,0.00,", lines[1])
	assert.Equal(t, "2024-01-09,Salary,0.00,20000.00,30000.00", lines[2])
}

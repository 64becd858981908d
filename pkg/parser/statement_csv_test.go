package parser

import (
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AryanSingh2029/Google-Pay-Finance-Tracker/pkg/models"
)

func TestParseWalletCSV(t *testing.T) {
	content := []byte(`Date,Time,Description,Amount,Type
2024-01-05,02:30:15 PM,Paid to Alice,1500.00,Sent
2024-01-05,02:30:15 PM,Paid to Alice,1500.00,Sent
2024-01-06,,Refund,abc,received
bad-date,10:00:00 AM,Whatever,10,Sent
2024-01-07,09:15:00 AM,Cashback,25,gift
`)

	p := New(log.Default())
	ds, err := p.ParseStatementCSV(content)
	require.NoError(t, err)
	assert.Equal(t, models.SourceWallet, ds.Kind)

	// Duplicate collapses; bad date and unknown type rows drop.
	require.Len(t, ds.Transactions, 2)

	alice := ds.Transactions[0]
	assert.Equal(t, 1500.0, alice.Amount)
	assert.Equal(t, models.TypeSent, alice.Type)
	assert.Equal(t, 14, alice.Hour)

	// Empty time tolerates down to midnight, malformed amount coerces to 0,
	// and "received" capitalizes into the canonical enum.
	refund := ds.Transactions[1]
	assert.Equal(t, 0.0, refund.Amount)
	assert.Equal(t, models.TypeReceived, refund.Type)
	assert.Equal(t, 0, refund.Hour)
}

func TestParseLedgerCSV(t *testing.T) {
	content := []byte(`Date,Description,Debit,Credit,Balance
2024-01-01,Opening spend,100,,
2024-01-02,Salary,,5000,10000
2024-01-03,Groceries,250.50,,
`)

	p := New(log.Default())
	ds, err := p.ParseStatementCSV(content)
	require.NoError(t, err)
	assert.Equal(t, models.SourceLedger, ds.Kind)
	require.Len(t, ds.Ledger, 3)

	// The very first row has no balance to carry: it stays unresolved.
	assert.False(t, ds.Ledger[0].BalanceKnown)
	assert.Equal(t, 100.0, ds.Ledger[0].Debit)
	assert.Equal(t, 0.0, ds.Ledger[0].Credit)

	assert.True(t, ds.Ledger[1].BalanceKnown)
	assert.Equal(t, 10000.0, ds.Ledger[1].Balance)

	// Forward-filled from the prior row.
	assert.True(t, ds.Ledger[2].BalanceKnown)
	assert.Equal(t, 10000.0, ds.Ledger[2].Balance)
	assert.Equal(t, 250.50, ds.Ledger[2].Debit)
}

func TestParseCSVSchemaRejection(t *testing.T) {
	p := New(log.Default())

	_, err := p.ParseStatementCSV([]byte("Foo,Bar\n1,2\n"))
	assert.ErrorIs(t, err, ErrSchema)

	// Wallet markers without a Date column are structurally broken, which is
	// distinct from per-row invalid dates.
	_, err = p.ParseStatementCSV([]byte("Time,Amount\n10:00,5\n"))
	assert.ErrorIs(t, err, ErrSchema)

	_, err = p.ParseStatementCSV([]byte(""))
	assert.ErrorIs(t, err, ErrSchema)
}

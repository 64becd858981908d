// Package csv renders canonical tables as downloadable CSV.
package csv

import (
	"bytes"
	stdcsv "encoding/csv"
	"strconv"

	"github.com/AryanSingh2029/Google-Pay-Finance-Tracker/pkg/models"
)

// FilterFunc decides which rows make it into the output.
type FilterFunc func(models.Transaction) bool

// Create renders transactions with the canonical column set. A nil filter
// keeps every row.
func Create(rows []models.Transaction, filter FilterFunc) []byte {
	var buf bytes.Buffer
	w := stdcsv.NewWriter(&buf)
	_ = w.Write([]string{"Date", "Time", "Description", "Amount", "Type"})
	for _, tx := range rows {
		if filter != nil && !filter(tx) {
			continue
		}
		_ = w.Write([]string{
			tx.Date.Format("2006-01-02"),
			tx.TimeOfDay(),
			tx.Description,
			strconv.FormatFloat(tx.Amount, 'f', -1, 64),
			string(tx.Type),
		})
	}
	w.Flush()
	return buf.Bytes()
}

// CreateLedger renders running-balance entries. Unresolved balances render
// empty rather than as a fake zero.
func CreateLedger(entries []models.LedgerEntry) []byte {
	var buf bytes.Buffer
	w := stdcsv.NewWriter(&buf)
	_ = w.Write([]string{"Date", "Description", "Debit", "Credit", "Balance"})
	for _, e := range entries {
		balance := ""
		if e.BalanceKnown {
			balance = strconv.FormatFloat(e.Balance, 'f', 2, 64)
		}
		_ = w.Write([]string{
			e.Date.Format("2006-01-02"),
			e.Description,
			strconv.FormatFloat(e.Debit, 'f', 2, 64),
			strconv.FormatFloat(e.Credit, 'f', 2, 64),
			balance,
		})
	}
	w.Flush()
	return buf.Bytes()
}

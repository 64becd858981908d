package parser

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/AryanSingh2029/Google-Pay-Finance-Tracker/pkg/models"
)

// dateLayouts accepted for ledger statement dates.
var dateLayouts = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"2006-01-02 15:04:05",
	"02/01/2006 15:04:05",
}

// ParseStatementCSV loads a tabular upload and detects which of the two known
// schemas it carries, purely from column presence:
//
//	wallet schema: Time + Amount columns, the Sent/Received model
//	ledger schema: Balance + Debit columns, the running-balance model
//
// Anything else is a schema rejection, never a guess.
func (p *Parser) ParseStatementCSV(data []byte) (*models.Dataset, error) {
	reader := csv.NewReader(bytes.NewReader(data))
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: unreadable csv: %v", ErrSchema, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty csv", ErrSchema)
	}

	cols := make(map[string]int, len(records[0]))
	for i, name := range records[0] {
		cols[strings.TrimSpace(name)] = i
	}
	rows := records[1:]

	switch {
	case hasColumns(cols, "Time", "Amount"):
		return p.parseWalletRows(cols, rows)
	case hasColumns(cols, "Balance", "Debit"):
		return p.parseLedgerRows(cols, rows), nil
	default:
		return nil, fmt.Errorf("%w: csv matches neither wallet nor ledger schema", ErrSchema)
	}
}

func hasColumns(cols map[string]int, names ...string) bool {
	for _, n := range names {
		if _, ok := cols[n]; !ok {
			return false
		}
	}
	return true
}

// parseWalletRows feeds wallet-schema rows through the normalizer. Date and
// Time columns must exist structurally; their per-row values may still fail
// and drop individual rows.
func (p *Parser) parseWalletRows(cols map[string]int, rows [][]string) (*models.Dataset, error) {
	if !hasColumns(cols, "Date") {
		return nil, fmt.Errorf("%w: wallet csv without Date column", ErrSchema)
	}

	candidates := make([]models.Raw, 0, len(rows))
	for _, row := range rows {
		candidates = append(candidates, models.Raw{
			Date:        field(row, cols, "Date"),
			Time:        field(row, cols, "Time"),
			Description: field(row, cols, "Description"),
			Amount:      field(row, cols, "Amount"),
			Type:        field(row, cols, "Type"),
		})
	}

	return &models.Dataset{
		Kind:         models.SourceWallet,
		Transactions: p.Normalize(candidates),
	}, nil
}

// parseLedgerRows builds the running-balance model: Debit and Credit coerce
// to zero when missing, Balance is carried forward from the last row that had
// one. A leading run of rows without a balance stays unresolved rather than
// rejecting the upload.
func (p *Parser) parseLedgerRows(cols map[string]int, rows [][]string) *models.Dataset {
	var entries []models.LedgerEntry
	var lastBalance float64
	var balanceKnown bool

	for i, row := range rows {
		date, ok := parseLedgerDate(field(row, cols, "Date"))
		if !ok {
			p.logger.Debug("ledger row without parseable date skipped", "row", i)
			continue
		}

		if v, err := strconv.ParseFloat(strings.TrimSpace(field(row, cols, "Balance")), 64); err == nil {
			lastBalance = v
			balanceKnown = true
		}

		entries = append(entries, models.LedgerEntry{
			Date:         date,
			Description:  field(row, cols, "Description"),
			Debit:        coerceAmount(field(row, cols, "Debit")),
			Credit:       coerceAmount(field(row, cols, "Credit")),
			Balance:      lastBalance,
			BalanceKnown: balanceKnown,
			Weekday:      date.Weekday().String(),
		})
	}

	return &models.Dataset{
		Kind:   models.SourceLedger,
		Ledger: entries,
	}
}

func field(row []string, cols map[string]int, name string) string {
	idx, ok := cols[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return row[idx]
}

func parseLedgerDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if d, err := time.Parse(layout, s); err == nil {
			return d, true
		}
	}
	return time.Time{}, false
}

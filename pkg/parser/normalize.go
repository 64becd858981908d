package parser

import (
	"strconv"
	"strings"
	"time"

	"github.com/AryanSingh2029/Google-Pay-Finance-Tracker/pkg/models"
)

// timeLayouts are the clock formats accepted when combining date + time into
// a timestamp. An empty time tolerates down to midnight; an empty date does
// not tolerate anything.
var timeLayouts = []string{
	"03:04:05 PM",
	"3:04:05 PM",
	"03:04 PM",
	"3:04 PM",
	"15:04:05",
	"15:04",
}

// Normalize coerces raw candidates into the canonical transaction table:
// order-preserving first-wins dedup on the natural key, amount coercion with
// an explicit zero fallback, type normalization, and permissive timestamp
// parsing. Rows that fail to produce a valid timestamp or type are dropped,
// never surfaced as partial records.
func (p *Parser) Normalize(candidates []models.Raw) []models.Transaction {
	seen := make(map[string]struct{}, len(candidates))
	transactions := make([]models.Transaction, 0, len(candidates))

	for i, raw := range candidates {
		key := raw.Key()
		if _, dup := seen[key]; dup {
			p.logger.Debug("duplicate candidate skipped", "row", i)
			continue
		}
		seen[key] = struct{}{}

		ts, ok := combineTimestamp(raw.Date, raw.Time)
		if !ok {
			p.logger.Debug("row without valid timestamp skipped", "row", i, "date", raw.Date, "time", raw.Time)
			continue
		}

		txType, err := models.ParseType(raw.Type)
		if err != nil {
			p.logger.Debug("row with invalid type skipped", "row", i, "error", err)
			continue
		}

		tx := models.Transaction{
			Timestamp:   ts,
			Description: raw.Description,
			Amount:      coerceAmount(raw.Amount),
			Type:        txType,
		}
		tx.Finalize()
		transactions = append(transactions, tx)
	}

	return transactions
}

// combineTimestamp joins a "2006-01-02" date with a clock string. A missing
// clock defaults to midnight; a missing or malformed date invalidates the row.
func combineTimestamp(date, clock string) (time.Time, bool) {
	day, err := time.Parse("2006-01-02", strings.TrimSpace(date))
	if err != nil {
		return time.Time{}, false
	}

	clock = strings.TrimSpace(clock)
	if clock == "" {
		return day, true
	}
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, clock); err == nil {
			return day.Add(time.Duration(t.Hour())*time.Hour +
				time.Duration(t.Minute())*time.Minute +
				time.Duration(t.Second())*time.Second), true
		}
	}
	// A clock that is present but unreadable invalidates the row; only a
	// missing clock defaults to midnight.
	return time.Time{}, false
}

// coerceAmount turns the extracted amount string into a number. Malformed
// amounts become 0 so a single bad row never aborts the load.
func coerceAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(strings.ReplaceAll(s, ",", "")), 64)
	if err != nil {
		return 0
	}
	return v
}

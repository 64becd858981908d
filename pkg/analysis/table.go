// Package analysis holds the time-bucketing and aggregation engine. A Table
// is built once per upload and never mutated; every view is a pure projection
// returning a new Table, so filters compose by chaining.
package analysis

import (
	"sort"
	"strings"
	"time"

	"github.com/AryanSingh2029/Google-Pay-Finance-Tracker/pkg/models"
)

// Table is an immutable, ordered set of canonical transactions.
type Table struct {
	rows []models.Transaction
}

// NewTable wraps a canonical record set. The rows are treated as read-only
// from here on.
func NewTable(rows []models.Transaction) *Table {
	return &Table{rows: rows}
}

// Rows exposes the underlying records. Callers must not modify them.
func (t *Table) Rows() []models.Transaction { return t.rows }

func (t *Table) Len() int { return len(t.rows) }

func (t *Table) where(keep func(models.Transaction) bool) *Table {
	out := make([]models.Transaction, 0, len(t.rows))
	for _, tx := range t.rows {
		if keep(tx) {
			out = append(out, tx)
		}
	}
	return &Table{rows: out}
}

// Day projects the rows whose calendar date equals day exactly.
func (t *Table) Day(day time.Time) *Table {
	y, m, d := day.Date()
	return t.where(func(tx models.Transaction) bool {
		ty, tm, td := tx.Date.Date()
		return ty == y && tm == m && td == d
	})
}

// WeekBounds returns the Monday-to-Sunday window containing the anchor,
// whatever weekday the anchor itself falls on.
func WeekBounds(anchor time.Time) (start, end time.Time) {
	start = models.WeekStart(anchor)
	return start, start.AddDate(0, 0, 6)
}

// Week projects the rows inside the Monday-to-Sunday window containing the
// anchor date, both ends inclusive.
func (t *Table) Week(anchor time.Time) *Table {
	start, end := WeekBounds(anchor)
	return t.where(func(tx models.Transaction) bool {
		return !tx.Date.Before(start) && !tx.Date.After(end)
	})
}

// Month projects the rows whose precomputed month key ("2006-01") matches.
func (t *Table) Month(key string) *Table {
	return t.where(func(tx models.Transaction) bool { return tx.Month == key })
}

// Search projects the rows whose description contains q, case-insensitively.
// An empty query keeps everything; empty descriptions never match.
func (t *Table) Search(q string) *Table {
	if q == "" {
		return t
	}
	q = strings.ToLower(q)
	return t.where(func(tx models.Transaction) bool {
		return tx.Description != "" && strings.Contains(strings.ToLower(tx.Description), q)
	})
}

// AmountBetween projects the rows with min <= amount <= max, both bounds
// inclusive. Fractional amounts inside integer bounds stay in.
func (t *Table) AmountBetween(min, max float64) *Table {
	return t.where(func(tx models.Transaction) bool {
		return tx.Amount >= min && tx.Amount <= max
	})
}

// Sent projects the spending rows.
func (t *Table) Sent() *Table {
	return t.where(func(tx models.Transaction) bool { return tx.Type == models.TypeSent })
}

// Received projects the incoming rows.
func (t *Table) Received() *Table {
	return t.where(func(tx models.Transaction) bool { return tx.Type == models.TypeReceived })
}

// Months lists the distinct month keys present, newest first.
func (t *Table) Months() []string {
	seen := map[string]struct{}{}
	var keys []string
	for _, tx := range t.rows {
		if _, ok := seen[tx.Month]; !ok {
			seen[tx.Month] = struct{}{}
			keys = append(keys, tx.Month)
		}
	}
	sort.Sort(sort.Reverse(sort.StringSlice(keys)))
	return keys
}

// AmountRange returns the smallest and largest amounts in the table, for
// building range filters. Zeroes on an empty table.
func (t *Table) AmountRange() (min, max float64) {
	for i, tx := range t.rows {
		if i == 0 || tx.Amount < min {
			min = tx.Amount
		}
		if i == 0 || tx.Amount > max {
			max = tx.Amount
		}
	}
	return min, max
}

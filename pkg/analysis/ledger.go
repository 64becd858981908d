package analysis

import (
	"github.com/AryanSingh2029/Google-Pay-Finance-Tracker/pkg/models"
)

// Ledger aggregates mirror the wallet buckets for the running-balance model,
// summing debits since that model has no direction tag.

// LedgerDailyDebit sums debits per calendar date.
func LedgerDailyDebit(entries []models.LedgerEntry) []BucketTotal {
	sums := map[string]float64{}
	for _, e := range entries {
		sums[e.Date.Format("2006-01-02")] += e.Debit
	}
	return sortedBuckets(sums)
}

// LedgerWeekdayDebit sums debits per weekday name, Monday first.
func LedgerWeekdayDebit(entries []models.LedgerEntry) []BucketTotal {
	sums := map[string]float64{}
	for _, e := range entries {
		sums[e.Weekday] += e.Debit
	}
	out := make([]BucketTotal, 0, len(sums))
	for _, wd := range weekdayOrder {
		if total, ok := sums[wd.String()]; ok {
			out = append(out, BucketTotal{Key: wd.String(), Total: total})
		}
	}
	return out
}

// LedgerTotals reports summed debits and credits plus the closing balance
// (the last row that carried one).
func LedgerTotals(entries []models.LedgerEntry) (debit, credit, closing float64) {
	for _, e := range entries {
		debit += e.Debit
		credit += e.Credit
		if e.BalanceKnown {
			closing = e.Balance
		}
	}
	return debit, credit, closing
}

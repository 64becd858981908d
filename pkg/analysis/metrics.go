package analysis

import (
	"math"

	"github.com/AryanSingh2029/Google-Pay-Finance-Tracker/pkg/models"
)

// Metrics are the scalar aggregates of a view. All ratios guard the empty
// case and report 0 instead of dividing by zero.
type Metrics struct {
	// TotalSent is the spending magnitude, sign-normalized for display.
	TotalSent float64 `json:"total_sent"`
	// TotalReceived is the sum over Received rows.
	TotalReceived float64 `json:"total_received"`
	// AvgPerSentTxn is TotalSent over the number of Sent rows.
	AvgPerSentTxn float64 `json:"avg_per_sent_txn"`
	// AvgDailySpend is TotalSent over the number of distinct calendar dates
	// that have Sent rows, not over the days in the period.
	AvgDailySpend float64 `json:"avg_daily_spend"`
}

// Metrics computes the scalar aggregates over the table's row subset.
func (t *Table) Metrics() Metrics {
	var sentSum, receivedSum float64
	var sentCount int
	sentDates := map[string]struct{}{}

	for _, tx := range t.rows {
		switch tx.Type {
		case models.TypeSent:
			sentSum += tx.Amount
			sentCount++
			sentDates[tx.Date.Format("2006-01-02")] = struct{}{}
		case models.TypeReceived:
			receivedSum += tx.Amount
		}
	}

	m := Metrics{
		TotalSent:     math.Abs(sentSum),
		TotalReceived: receivedSum,
	}
	if sentCount > 0 {
		m.AvgPerSentTxn = m.TotalSent / float64(sentCount)
	}
	if len(sentDates) > 0 {
		m.AvgDailySpend = m.TotalSent / float64(len(sentDates))
	}
	return m
}

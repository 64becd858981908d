package analysis

import (
	"sort"
	"strconv"
	"time"

	"github.com/AryanSingh2029/Google-Pay-Finance-Tracker/pkg/models"
)

// BucketTotal is one row of a grouped sum.
type BucketTotal struct {
	Key   string  `json:"key"`
	Total float64 `json:"total"`
}

// DirectionTotal is one row of a grouped Sent/Received breakdown.
type DirectionTotal struct {
	Key      string  `json:"key"`
	Sent     float64 `json:"sent"`
	Received float64 `json:"received"`
}

// weekdayOrder pins bucket output to calendar order, Monday first, matching
// the week windows elsewhere.
var weekdayOrder = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday,
	time.Friday, time.Saturday, time.Sunday,
}

func (t *Table) sumBy(key func(models.Transaction) string) map[string]float64 {
	sums := map[string]float64{}
	for _, tx := range t.rows {
		sums[key(tx)] += tx.Amount
	}
	return sums
}

func sortedBuckets(sums map[string]float64) []BucketTotal {
	out := make([]BucketTotal, 0, len(sums))
	for k, v := range sums {
		out = append(out, BucketTotal{Key: k, Total: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// ByHour sums amounts per hour of day, 0 through 23.
func (t *Table) ByHour() []BucketTotal {
	sums := map[int]float64{}
	for _, tx := range t.rows {
		sums[tx.Hour] += tx.Amount
	}
	hours := make([]int, 0, len(sums))
	for h := range sums {
		hours = append(hours, h)
	}
	sort.Ints(hours)
	out := make([]BucketTotal, 0, len(hours))
	for _, h := range hours {
		out = append(out, BucketTotal{Key: strconv.Itoa(h), Total: sums[h]})
	}
	return out
}

// ByWeekday sums amounts per English weekday name, Monday first.
func (t *Table) ByWeekday() []BucketTotal {
	sums := t.sumBy(func(tx models.Transaction) string { return tx.Weekday })
	out := make([]BucketTotal, 0, len(sums))
	for _, wd := range weekdayOrder {
		name := wd.String()
		if total, ok := sums[name]; ok {
			out = append(out, BucketTotal{Key: name, Total: total})
		}
	}
	return out
}

// ByWeek sums amounts per week-start date (the Monday key).
func (t *Table) ByWeek() []BucketTotal {
	return sortedBuckets(t.sumBy(func(tx models.Transaction) string {
		return tx.WeekStart.Format("2006-01-02")
	}))
}

// ByMonth sums amounts per month key.
func (t *Table) ByMonth() []BucketTotal {
	return sortedBuckets(t.sumBy(func(tx models.Transaction) string { return tx.Month }))
}

func (t *Table) directionBy(key func(models.Transaction) string) []DirectionTotal {
	idx := map[string]*DirectionTotal{}
	var keys []string
	for _, tx := range t.rows {
		k := key(tx)
		row, ok := idx[k]
		if !ok {
			row = &DirectionTotal{Key: k}
			idx[k] = row
			keys = append(keys, k)
		}
		switch tx.Type {
		case models.TypeSent:
			row.Sent += tx.Amount
		case models.TypeReceived:
			row.Received += tx.Amount
		}
	}
	sort.Strings(keys)
	out := make([]DirectionTotal, 0, len(keys))
	for _, k := range keys {
		out = append(out, *idx[k])
	}
	return out
}

// SummaryByDate breaks Sent/Received sums down per calendar date.
func (t *Table) SummaryByDate() []DirectionTotal {
	return t.directionBy(func(tx models.Transaction) string { return tx.Date.Format("2006-01-02") })
}

// SummaryByWeek breaks Sent/Received sums down per week-start date.
func (t *Table) SummaryByWeek() []DirectionTotal {
	return t.directionBy(func(tx models.Transaction) string { return tx.WeekStart.Format("2006-01-02") })
}

// SummaryByMonth breaks Sent/Received sums down per month key.
func (t *Table) SummaryByMonth() []DirectionTotal {
	return t.directionBy(func(tx models.Transaction) string { return tx.Month })
}

// TopSpendingHours returns the n hours with the most Sent transactions,
// busiest first. Ties resolve to the earlier hour.
func (t *Table) TopSpendingHours(n int) []int {
	counts := map[int]int{}
	for _, tx := range t.rows {
		if tx.Type == models.TypeSent {
			counts[tx.Hour]++
		}
	}
	hours := make([]int, 0, len(counts))
	for h := range counts {
		hours = append(hours, h)
	}
	sort.Slice(hours, func(i, j int) bool {
		if counts[hours[i]] != counts[hours[j]] {
			return counts[hours[i]] > counts[hours[j]]
		}
		return hours[i] < hours[j]
	})
	if len(hours) > n {
		hours = hours[:n]
	}
	return hours
}

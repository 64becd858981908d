package main

import (
	"fmt"
	"time"

	"github.com/AryanSingh2029/Google-Pay-Finance-Tracker/pkg/analysis"
)

// filters are the view selectors shared by the CLI commands. They compose by
// AND, same as the server's query parameters.
type filters struct {
	day    string
	week   string
	month  string
	search string
	min    float64
	max    float64
	minSet bool
	maxSet bool
}

func (f *filters) apply(table *analysis.Table) (*analysis.Table, error) {
	switch {
	case f.day != "":
		d, err := time.Parse("2006-01-02", f.day)
		if err != nil {
			return nil, fmt.Errorf("invalid --day %q", f.day)
		}
		table = table.Day(d)
	case f.week != "":
		d, err := time.Parse("2006-01-02", f.week)
		if err != nil {
			return nil, fmt.Errorf("invalid --week %q", f.week)
		}
		table = table.Week(d)
	case f.month != "":
		table = table.Month(f.month)
	}

	if f.search != "" {
		table = table.Search(f.search)
	}
	if f.minSet || f.maxSet {
		min, max := table.AmountRange()
		if f.minSet {
			min = f.min
		}
		if f.maxSet {
			max = f.max
		}
		table = table.AmountBetween(min, max)
	}
	return table, nil
}

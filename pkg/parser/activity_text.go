package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/AryanSingh2029/Google-Pay-Finance-Tracker/pkg/models"
)

// Plain-text activity logs are "Google Pay"-delimited entries with structured
// phrases instead of markup. This parser uses the opposite-but-consistent
// sign convention: Paid entries come out as Sent with a negative amount,
// Sent entries as Received with a positive one.
var (
	paidPattern     = regexp.MustCompile(`Paid ₹([\d,.]+) to (.+?) using`)
	sentPattern     = regexp.MustCompile(`Sent ₹([\d,.]+) using`)
	textDatePattern = regexp.MustCompile(`([A-Za-z]+ \d{1,2}, \d{4}, \d{1,2}:\d{2}:\d{2})`)
)

const textDatetimeLayout = "Jan 2, 2006, 15:04:05"

// ParseActivityText extracts transactions from a plain-text activity log.
// Entries without a parseable datetime are dropped outright; entries without
// a recognized phrase keep default fields, matching the source behavior.
func (p *Parser) ParseActivityText(data []byte) []models.Transaction {
	entries := strings.Split(string(data), "Google Pay")

	var transactions []models.Transaction
	for _, entry := range entries {
		if strings.TrimSpace(entry) == "" {
			continue
		}

		var amount float64
		description := "N/A"
		var txType models.Type

		if m := paidPattern.FindStringSubmatch(entry); m != nil {
			amount = -mustParseAmount(m[1])
			description = "Paid to " + strings.TrimSpace(m[2])
			txType = models.TypeSent
		} else if m := sentPattern.FindStringSubmatch(entry); m != nil {
			amount = mustParseAmount(m[1])
			description = "Received money"
			txType = models.TypeReceived
		}

		dateMatch := textDatePattern.FindStringSubmatch(entry)
		if dateMatch == nil {
			continue
		}
		ts, err := time.Parse(textDatetimeLayout, dateMatch[1])
		if err != nil {
			p.logger.Debug("unparseable text entry datetime", "value", dateMatch[1], "error", err)
			continue
		}
		if txType == "" {
			txType = models.TypeReceived
		}

		tx := models.Transaction{
			Timestamp:   ts,
			Description: description,
			Amount:      amount,
			Type:        txType,
		}
		tx.Finalize()
		transactions = append(transactions, tx)
	}

	return transactions
}

func mustParseAmount(s string) float64 {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0
	}
	return v
}

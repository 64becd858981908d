package models

import (
	"fmt"
	"strings"
	"time"
)

// Type tags the direction of a transaction. The tag is derived from textual
// cues in the source export, not from the amount sign, because the raw data
// conflates the two.
type Type string

const (
	TypeSent     Type = "Sent"
	TypeReceived Type = "Received"
)

// ParseType normalizes a raw type label (trim + capitalize) into one of the
// two canonical values. Anything else is rejected.
func ParseType(raw string) (Type, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return "", fmt.Errorf("empty type label")
	}
	s = strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
	switch Type(s) {
	case TypeSent:
		return TypeSent, nil
	case TypeReceived:
		return TypeReceived, nil
	}
	return "", fmt.Errorf("unknown type label %q", raw)
}

// Raw is an untyped transaction candidate as emitted by the extractors, in
// document order. The normalizer turns these into Transactions.
type Raw struct {
	Date        string // "2006-01-02", may be empty on parse failure
	Time        string // "03:04:05 PM" or "15:04", may be empty
	Description string
	Amount      string
	Type        string
}

// Key is the natural deduplication key. First occurrence wins.
func (r Raw) Key() string {
	return r.Date + "|" + r.Time + "|" + r.Amount + "|" + r.Description
}

// Transaction is the canonical record. Derived fields are computed once by
// Finalize and never re-derived per view.
type Transaction struct {
	Date        time.Time `json:"date"`
	Timestamp   time.Time `json:"timestamp"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Type        Type      `json:"type"`

	Hour      int       `json:"hour"`
	Weekday   string    `json:"weekday"`
	WeekStart time.Time `json:"week_start"`
	Month     string    `json:"month"`
}

// Finalize fills the derived calendar fields from Timestamp.
func (t *Transaction) Finalize() {
	t.Date = time.Date(t.Timestamp.Year(), t.Timestamp.Month(), t.Timestamp.Day(), 0, 0, 0, 0, t.Timestamp.Location())
	t.Hour = t.Timestamp.Hour()
	t.Weekday = t.Timestamp.Weekday().String()
	t.WeekStart = WeekStart(t.Date)
	t.Month = t.Date.Format("2006-01")
}

// TimeOfDay renders the clock portion of the timestamp.
func (t Transaction) TimeOfDay() string {
	return t.Timestamp.Format("03:04:05 PM")
}

// WeekStart returns the Monday on or before d.
func WeekStart(d time.Time) time.Time {
	offset := (int(d.Weekday()) + 6) % 7
	return d.AddDate(0, 0, -offset)
}

// LedgerEntry is a row of the running-balance statement model (the "bank"
// CSV schema). Debit and Credit default to zero when missing; Balance is
// forward-filled from the prior row, and BalanceKnown stays false until a
// row carries an explicit balance.
type LedgerEntry struct {
	Date         time.Time `json:"date"`
	Description  string    `json:"description"`
	Debit        float64   `json:"debit"`
	Credit       float64   `json:"credit"`
	Balance      float64   `json:"balance"`
	BalanceKnown bool      `json:"balance_known"`
	Weekday      string    `json:"weekday"`
}

// SourceKind identifies which tabular model an upload resolved to.
type SourceKind string

const (
	SourceWallet SourceKind = "google_pay"
	SourceLedger SourceKind = "bank"
)

// Dataset is the output of ingestion: one immutable canonical table per
// upload, identified by the sha256 of the raw bytes. Exactly one of
// Transactions or Ledger is populated depending on Kind.
type Dataset struct {
	Kind         SourceKind    `json:"kind"`
	Hash         string        `json:"hash"`
	Transactions []Transaction `json:"transactions,omitempty"`
	Ledger       []LedgerEntry `json:"ledger,omitempty"`
}

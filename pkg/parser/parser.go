package parser

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/AryanSingh2029/Google-Pay-Finance-Tracker/pkg/models"
)

// InputKind is the declared shape of an upload, taken from the filename the
// collaborator supplies. Content sniffing is limited to the CSV column checks;
// unknown extensions are rejected before any bytes are inspected.
type InputKind string

const (
	KindArchive InputKind = "archive"
	KindMarkup  InputKind = "markup"
	KindText    InputKind = "text"
	KindTabular InputKind = "tabular"
)

// Parser is the ingestion dispatcher plus the extractors and normalizer
// behind it. It is stateless; one instance serves any number of uploads.
type Parser struct {
	logger *log.Logger
}

func New(logger *log.Logger) *Parser {
	return &Parser{logger: logger}
}

// ProcessBytes classifies an upload and produces its canonical dataset. The
// dataset carries the sha256 of the raw bytes as its identity, so callers can
// memoize repeated analysis of the same upload.
func (p *Parser) ProcessBytes(data []byte, filename string) (*models.Dataset, error) {
	kind, ok := classify(filename)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Ext(filename))
	}
	p.logger.Debug("detected input kind", "kind", kind, "filename", filename)

	var (
		dataset *models.Dataset
		err     error
	)
	switch kind {
	case KindArchive:
		var html []byte
		if html, err = p.extractActivityHTML(data); err == nil {
			dataset = &models.Dataset{
				Kind:         models.SourceWallet,
				Transactions: p.Normalize(p.ParseActivityHTML(html)),
			}
		}
	case KindMarkup:
		dataset = &models.Dataset{
			Kind:         models.SourceWallet,
			Transactions: p.Normalize(p.ParseActivityHTML(data)),
		}
	case KindText:
		// Text exports usually carry the same markup as .html; the phrase
		// based parser covers the ones that do not.
		txs := p.Normalize(p.ParseActivityHTML(data))
		if len(txs) == 0 {
			txs = p.ParseActivityText(data)
		}
		dataset = &models.Dataset{Kind: models.SourceWallet, Transactions: txs}
	case KindTabular:
		dataset, err = p.ParseStatementCSV(data)
	}
	if err != nil {
		return nil, err
	}

	dataset.Hash = ContentHash(data)
	p.logger.Info("processed upload", "filename", filename, "kind", dataset.Kind,
		"rows", len(dataset.Transactions)+len(dataset.Ledger), "hash", dataset.Hash[:12])
	return dataset, nil
}

func classify(filename string) (InputKind, bool) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".zip":
		return KindArchive, true
	case ".html", ".htm":
		return KindMarkup, true
	case ".txt":
		return KindText, true
	case ".csv":
		return KindTabular, true
	default:
		return "", false
	}
}

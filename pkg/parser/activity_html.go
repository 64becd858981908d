package parser

import (
	"bytes"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/AryanSingh2029/Google-Pay-Finance-Tracker/pkg/models"
)

// The Takeout activity page is a flat list of transaction blocks, each a
// div.mdl-grid with "content-cell" sub-fields. The first content cell holds
// the description plus a date/time line; a caption-styled cell holds the
// status ("Completed", "Failed", ...).
const (
	blockSelector  = "div.mdl-grid"
	cellSelector   = "div.content-cell"
	statusSelector = "div.content-cell.mdl-cell.mdl-cell--12-col.mdl-typography--caption"
)

// amountPattern grabs the first signed or unsigned decimal anywhere in the
// description. Deliberately loose: the export has no dedicated amount field,
// so the whole free text is scanned after stripping thousands separators.
var amountPattern = regexp.MustCompile(`[-+]?\d*\.?\d+`)

// datetimeLayouts cover the clock lines seen in activity exports once the
// trailing " GMT±HH:MM" is cut off.
var datetimeLayouts = []string{
	"Jan 2, 2006, 3:04:05 PM",
	"Jan 2, 2006, 3:04 PM",
	"January 2, 2006, 3:04:05 PM",
	"January 2, 2006, 3:04 PM",
	"Jan 2, 2006 3:04:05 PM",
	"2 Jan 2006, 3:04:05 PM",
}

// ParseActivityHTML walks an HTML activity export and returns raw transaction
// candidates in document order, pre-deduplication. An unreadable document
// yields an empty sequence, never an error: format classification is the
// dispatcher's job.
func (p *Parser) ParseActivityHTML(data []byte) []models.Raw {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		p.logger.Debug("unreadable html document", "error", err)
		return nil
	}

	var candidates []models.Raw
	doc.Find(blockSelector).Each(func(i int, block *goquery.Selection) {
		status := block.Find(statusSelector).First()
		if status.Length() == 0 || !strings.Contains(status.Text(), "Completed") {
			return
		}

		cells := block.Find(cellSelector)
		if cells.Length() < 2 {
			return
		}

		datetimeLine, description := splitCellLines(cellLines(cells.First()))

		date, clock := parseActivityDatetime(datetimeLine)
		if date == "" {
			p.logger.Debug("block without parseable datetime", "block", i, "line", datetimeLine)
		}

		candidates = append(candidates, models.Raw{
			Date:        date,
			Time:        clock,
			Description: description,
			Amount:      extractAmount(description),
			Type:        string(inferType(description)),
		})
	})

	return candidates
}

// cellLines collects the text fragments of a cell, one line per text node, so
// that <br>-separated description and date lines come apart cleanly.
func cellLines(sel *goquery.Selection) []string {
	var lines []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			if s := strings.TrimSpace(n.Data); s != "" {
				lines = append(lines, s)
			}
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, node := range sel.Nodes {
		walk(node)
	}
	return lines
}

// splitCellLines separates the date/time line (the one mentioning AM or PM)
// from the description lines, which are space-joined in document order.
func splitCellLines(lines []string) (datetimeLine, description string) {
	var descParts []string
	for _, line := range lines {
		if strings.Contains(line, "AM") || strings.Contains(line, "PM") {
			datetimeLine = line
			continue
		}
		descParts = append(descParts, line)
	}
	return datetimeLine, strings.Join(descParts, " ")
}

// parseActivityDatetime cuts the timezone suffix and parses the remainder.
// Failure yields empty strings; validity is enforced downstream where date is
// a hard requirement.
func parseActivityDatetime(line string) (date, clock string) {
	if line == "" {
		return "", ""
	}
	clean := strings.SplitN(line, " GMT", 2)[0]
	// Takeout uses narrow no-break spaces around the meridiem.
	clean = strings.NewReplacer("\u202f", " ", "\u00a0", " ").Replace(clean)
	clean = strings.TrimSpace(clean)

	for _, layout := range datetimeLayouts {
		if dt, err := time.Parse(layout, clean); err == nil {
			return dt.Format("2006-01-02"), dt.Format("03:04:05 PM")
		}
	}
	return "", ""
}

// extractAmount applies the first-number heuristic over the description with
// commas stripped. "0" when nothing matches.
func extractAmount(description string) string {
	if m := amountPattern.FindString(strings.ReplaceAll(description, ",", "")); m != "" {
		return m
	}
	return "0"
}

// inferType maps description wording to a direction tag. The mapping reads
// inverted ("sent" produces Received) but matches the export's wording for
// incoming transfers; kept verbatim for parity with historical totals.
func inferType(description string) models.Type {
	lower := strings.ToLower(description)
	switch {
	case strings.Contains(lower, "paid"):
		return models.TypeSent
	case strings.Contains(lower, "sent"):
		return models.TypeReceived
	default:
		return models.TypeReceived
	}
}

// Package summary is the narrative collaborator: it hands a filtered
// sub-table to Gemini and returns the prose untouched. The core never
// interprets the text.
package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"google.golang.org/genai"

	"github.com/AryanSingh2029/Google-Pay-Finance-Tracker/pkg/analysis"
)

const DefaultModel = "gemini-2.0-flash"

type Summarizer struct {
	logger *log.Logger
	model  string
}

func New(logger *log.Logger, model string) *Summarizer {
	if model == "" {
		model = DefaultModel
	}
	return &Summarizer{logger: logger, model: model}
}

// Summarize sends the view's rows to the model and returns its narrative.
// Credentials come from the environment (GEMINI_API_KEY / GOOGLE_API_KEY).
func (s *Summarizer) Summarize(ctx context.Context, table *analysis.Table) (string, error) {
	if table.Len() == 0 {
		return "", fmt.Errorf("nothing to summarize: empty view")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		HTTPOptions: genai.HTTPOptions{APIVersion: "v1"},
	})
	if err != nil {
		return "", fmt.Errorf("create genai client: %w", err)
	}

	contents := []*genai.Content{
		{
			Role:  "user",
			Parts: []*genai.Part{{Text: buildPrompt(table)}},
		},
	}

	resp, err := client.Models.GenerateContent(ctx, s.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}

	s.logger.Debug("summary generated", "rows", table.Len(), "chars", len(text))
	return text, nil
}

// buildPrompt renders the sub-table as plain text plus the busiest spending
// hours, and asks for totals, the largest transaction, frequent
// counterparties and trends.
func buildPrompt(table *analysis.Table) string {
	var rows strings.Builder
	for _, tx := range table.Rows() {
		fmt.Fprintf(&rows, "%s  %s  %.2f  %s\n",
			tx.Date.Format("2006-01-02"), tx.Description, tx.Amount, tx.Type)
	}

	var hours []string
	for _, h := range table.TopSpendingHours(2) {
		hours = append(hours, fmt.Sprintf("%d:00", h))
	}

	return fmt.Sprintf(`You are a smart finance assistant.
Analyze the following transactions and summarize:

- Total money sent and received
- Largest transaction
- Most frequent sender/recipient
- Spending trends

Also mention:
- Which hours the user spends money most often. Based on data: %s

Transactions:
%s`, strings.Join(hours, ", "), rows.String())
}

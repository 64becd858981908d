package service

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/AryanSingh2029/Google-Pay-Finance-Tracker/pkg/csv"
	"github.com/AryanSingh2029/Google-Pay-Finance-Tracker/pkg/models"
	"github.com/AryanSingh2029/Google-Pay-Finance-Tracker/pkg/parser"
	"github.com/AryanSingh2029/Google-Pay-Finance-Tracker/pkg/plan"
)

// Processor runs exports through the pipeline in batch and writes the
// normalized tables next to the inputs (or into a chosen output directory).
type Processor struct {
	outputDir string
	logger    *log.Logger
	parser    *parser.Parser
}

func NewProcessor(outputDir string, logger *log.Logger) *Processor {
	return &Processor{
		outputDir: outputDir,
		logger:    logger,
		parser:    parser.New(logger),
	}
}

func (p *Processor) ProcessDirectory(dir string) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("error reading directory: %w", err)
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		switch strings.ToLower(filepath.Ext(entry.Name())) {
		case ".zip", ".html", ".htm", ".txt", ".csv":
		default:
			continue
		}
		if _, err := p.ProcessFile(filepath.Join(dir, entry.Name()), ""); err != nil {
			p.logger.Error("failed to process entry", "file", entry.Name(), "error", err)
		}
	}

	return nil
}

// ProcessFile ingests one export and writes the normalized CSV. nameOverride
// replaces the output basename when non-empty. Returns the output path.
func (p *Processor) ProcessFile(inputPath, nameOverride string) (string, error) {
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}

	dataset, err := p.parser.ProcessBytes(data, filepath.Base(inputPath))
	if err != nil {
		return "", fmt.Errorf("failed to process file: %w", err)
	}

	var output []byte
	if dataset.Kind == models.SourceLedger {
		output = csv.CreateLedger(dataset.Ledger)
	} else {
		output = csv.Create(dataset.Transactions, nil)
	}

	outPath := p.determineOutputPath(inputPath, nameOverride)
	if err := os.WriteFile(outPath, output, 0o644); err != nil {
		return "", fmt.Errorf("error writing output file: %w", err)
	}

	p.logger.Info("processed file", "input", inputPath, "output", outPath,
		"kind", dataset.Kind, "rows", len(dataset.Transactions)+len(dataset.Ledger))
	return outPath, nil
}

// ProcessPlan runs every export listed in a manifest. The manifest's
// output_dir takes precedence over the processor's own.
func (p *Processor) ProcessPlan(pl *plan.Plan) error {
	proc := p
	if pl.OutputDir != "" {
		proc = NewProcessor(pl.OutputDir, p.logger)
	}
	for _, e := range pl.Exports {
		if _, err := proc.ProcessFile(e.File, e.Name); err != nil {
			p.logger.Error("failed to process export", "file", e.File, "error", err)
		}
	}
	return nil
}

func (p *Processor) determineOutputPath(inputPath, nameOverride string) string {
	base := filepath.Base(inputPath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if nameOverride != "" {
		base = nameOverride
	}
	name := base + "-transactions.csv"

	dir := p.outputDir
	if dir == "" {
		dir = filepath.Dir(inputPath)
	}
	return filepath.Join(dir, name)
}

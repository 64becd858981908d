package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/k0kubun/pp/v3"
	"github.com/spf13/cobra"
	"github.com/subosito/gotenv"

	"github.com/AryanSingh2029/Google-Pay-Finance-Tracker/pkg/analysis"
	"github.com/AryanSingh2029/Google-Pay-Finance-Tracker/pkg/csv"
	"github.com/AryanSingh2029/Google-Pay-Finance-Tracker/pkg/models"
	"github.com/AryanSingh2029/Google-Pay-Finance-Tracker/pkg/parser"
	"github.com/AryanSingh2029/Google-Pay-Finance-Tracker/pkg/plan"
	"github.com/AryanSingh2029/Google-Pay-Finance-Tracker/pkg/service"
)

var (
	cliFilters filters
	outputDir  string
	debugDump  bool
)

func newLogger() *log.Logger {
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportCaller:    true,
		ReportTimestamp: true,
		Prefix:          "fintrack-cli",
		Level:           log.WarnLevel,
	})
}

var rootCmd = &cobra.Command{
	Use:   "fintrack",
	Short: "Google Pay / bank statement analysis toolkit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return cmd.Help()
	},
}

var convertCmd = &cobra.Command{
	Use:   "convert [flags] <input_path>",
	Short: "Convert activity exports and statements to normalized CSV",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		markBoundFlags(cmd)

		matches, err := filepath.Glob(args[0])
		if err != nil {
			return err
		}
		if len(matches) == 0 {
			return fmt.Errorf("no files found matching pattern %s", args[0])
		}

		processor := service.NewProcessor(outputDir, logger)
		p := parser.New(logger)

		for _, match := range matches {
			info, err := os.Stat(match)
			if err != nil {
				logger.Warn("failed to stat file", "error", err, "file", match)
				continue
			}
			if info.IsDir() {
				if err := processor.ProcessDirectory(match); err != nil {
					logger.Warn("failed to process directory", "error", err, "dir", match)
				}
				continue
			}
			if err := convertFile(p, match); err != nil {
				logger.Warn("failed to process file", "error", err, "file", match)
			}
		}
		return nil
	},
}

func convertFile(p *parser.Parser, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dataset, err := p.ProcessBytes(data, filepath.Base(path))
	if err != nil {
		return err
	}

	if dataset.Kind == models.SourceLedger {
		fmt.Print(string(csv.CreateLedger(dataset.Ledger)))
		return nil
	}

	view, err := cliFilters.apply(analysis.NewTable(dataset.Transactions))
	if err != nil {
		return err
	}
	fmt.Print(string(csv.Create(view.Rows(), nil)))
	return nil
}

var reportCmd = &cobra.Command{
	Use:   "report [flags] <input_file>",
	Short: "Print aggregates for a view of one export",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()
		markBoundFlags(cmd)

		data, err := os.ReadFile(args[0])
		if err != nil {
			return err
		}
		dataset, err := parser.New(logger).ProcessBytes(data, filepath.Base(args[0]))
		if err != nil {
			return err
		}

		if dataset.Kind == models.SourceLedger {
			debit, credit, closing := analysis.LedgerTotals(dataset.Ledger)
			fmt.Printf("Entries: %d\nTotal debit: %.2f\nTotal credit: %.2f\nClosing balance: %.2f\n",
				len(dataset.Ledger), debit, credit, closing)
			printBuckets("Debit by weekday", analysis.LedgerWeekdayDebit(dataset.Ledger))
			return nil
		}

		view, err := cliFilters.apply(analysis.NewTable(dataset.Transactions))
		if err != nil {
			return err
		}
		if debugDump {
			pp.Println(view.Rows())
		}

		m := view.Metrics()
		fmt.Printf("Transactions: %d\nTotal sent: %.2f\nTotal received: %.2f\nAvg per sent txn: %.2f\nAvg daily spend: %.2f\n",
			view.Len(), m.TotalSent, m.TotalReceived, m.AvgPerSentTxn, m.AvgDailySpend)
		printBuckets("By weekday", view.ByWeekday())
		printBuckets("By hour", view.ByHour())
		printBuckets("By month", view.ByMonth())
		return nil
	},
}

func printBuckets(title string, buckets []analysis.BucketTotal) {
	fmt.Println(title + ":")
	for _, b := range buckets {
		fmt.Printf("  %-12s %10.2f\n", b.Key, b.Total)
	}
}

var planCmd = &cobra.Command{
	Use:   "plan <plan_file>",
	Short: "Process every export listed in a YAML manifest",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		logger := newLogger()

		p, err := plan.Load(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("Plan %s\n", args[0])
		p.Print()

		return service.NewProcessor(outputDir, logger).ProcessPlan(p)
	},
}

// markBoundFlags records whether the range bounds were given at all, since 0
// is a meaningful bound.
func markBoundFlags(cmd *cobra.Command) {
	cliFilters.minSet = cmd.Flags().Changed("min")
	cliFilters.maxSet = cmd.Flags().Changed("max")
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output", "o", "", "Output directory")
	rootCmd.PersistentFlags().StringVar(&cliFilters.day, "day", "", "Day view (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVar(&cliFilters.week, "week", "", "Week view anchor date (YYYY-MM-DD)")
	rootCmd.PersistentFlags().StringVar(&cliFilters.month, "month", "", "Month view (YYYY-MM)")
	rootCmd.PersistentFlags().StringVar(&cliFilters.search, "search", "", "Filter by description (case insensitive)")
	rootCmd.PersistentFlags().Float64Var(&cliFilters.min, "min", 0, "Minimum amount (inclusive)")
	rootCmd.PersistentFlags().Float64Var(&cliFilters.max, "max", 0, "Maximum amount (inclusive)")

	reportCmd.Flags().BoolVar(&debugDump, "debug", false, "Dump the filtered rows")

	rootCmd.AddCommand(convertCmd)
	rootCmd.AddCommand(reportCmd)
	rootCmd.AddCommand(planCmd)
}

func main() {
	_ = gotenv.Load()
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

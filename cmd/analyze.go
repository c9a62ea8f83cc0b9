package cmd

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MamuiPortafoliosCO/kelly-risk-managment/internal/dto"
)

var (
	analyzeFile       string
	analyzeFormat     string
	analyzeMultiplier float64
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Analyze a trading statement and recommend risk fractions",
	Run:   runAnalyze,
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFile, "file", "f", "", "statement export file (required)")
	analyzeCmd.Flags().StringVar(&analyzeFormat, "format", "csv", "statement format: csv or xml")
	analyzeCmd.Flags().Float64Var(&analyzeMultiplier, "kelly-multiplier", 0.5, "fractional Kelly multiplier in [0,1], omit to use the configured default")
	analyzeCmd.MarkFlagRequired("file")
}

func runAnalyze(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appDep, err := NewAppDependency()
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}
	defer appDep.log.Sync()

	content, err := os.ReadFile(analyzeFile)
	if err != nil {
		log.Fatalf("Failed to read statement file: %v", err)
	}

	req := dto.AnalyzeRequest{
		Content: string(content),
		Format:  analyzeFormat,
	}
	if cmd.Flags().Changed("kelly-multiplier") {
		req.KellyMultiplier = &analyzeMultiplier
	}

	report, err := appDep.service.AnalyzeStatement(ctx, req)
	if err != nil {
		log.Fatalf("Analysis failed: %v", err)
	}

	printReport(report)
}

func printReport(report *dto.AnalysisReport) {
	m := report.Metrics
	fmt.Printf("Trades:           %d\n", m.TotalTrades)
	fmt.Printf("Win probability:  %.4f\n", m.WinProbability)
	fmt.Printf("Loss probability: %.4f\n", m.LossProbability)
	fmt.Printf("Avg win:          %.2f\n", m.AvgWin)
	fmt.Printf("Avg loss:         %.2f\n", m.AvgLoss)
	fmt.Printf("Win/loss ratio:   %s\n", formatRatio(m.WinLossRatio))
	fmt.Printf("Profit factor:    %s\n", formatRatio(m.ProfitFactor))
	fmt.Printf("Expectancy:       %.2f\n", m.Expectancy)
	fmt.Printf("Max drawdown:     %.2f\n", m.MaxDrawdown)
	fmt.Printf("Sharpe ratio:     %.4f\n", m.SharpeRatio)

	if report.KellyDefined {
		fmt.Printf("Kelly fraction:   %.4f\n", report.KellyFraction)
	} else {
		fmt.Println("Kelly fraction:   n/a")
	}
	fmt.Printf("Optimal F:        %.4f (TWR %.4f)\n", report.OptimalF, report.TerminalWealthRelative)

	for _, w := range report.Warnings {
		fmt.Printf("Warning: %s\n", w)
	}
}

func formatRatio(v float64) string {
	if math.IsInf(v, 1) {
		return "inf (no losses)"
	}
	return fmt.Sprintf("%.4f", v)
}

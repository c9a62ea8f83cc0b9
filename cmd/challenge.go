package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/MamuiPortafoliosCO/kelly-risk-managment/internal/dto"
	"github.com/MamuiPortafoliosCO/kelly-risk-managment/internal/model"
)

var (
	challengeFile      string
	challengeFormat    string
	accountSize        float64
	profitTarget       float64
	maxDailyLoss       float64
	maxOverallLoss     float64
	minTradingDays     int
	simulationCount    int
	candidateFractions []float64
)

var challengeCmd = &cobra.Command{
	Use:   "challenge",
	Short: "Estimate prop-firm challenge pass rates by Monte Carlo simulation",
	Run:   runChallenge,
}

func init() {
	challengeCmd.Flags().StringVarP(&challengeFile, "file", "f", "", "statement export file (required)")
	challengeCmd.Flags().StringVar(&challengeFormat, "format", "csv", "statement format: csv or xml")
	challengeCmd.Flags().Float64Var(&accountSize, "account-size", 100000, "challenge account size")
	challengeCmd.Flags().Float64Var(&profitTarget, "profit-target", 10, "profit target, percent of account size")
	challengeCmd.Flags().Float64Var(&maxDailyLoss, "max-daily-loss", 5, "maximum daily loss, percent of account size")
	challengeCmd.Flags().Float64Var(&maxOverallLoss, "max-overall-loss", 10, "maximum overall loss, percent of account size")
	challengeCmd.Flags().IntVar(&minTradingDays, "min-days", 5, "minimum required trading days")
	challengeCmd.Flags().IntVar(&simulationCount, "simulations", 0, "simulations per fraction, 0 uses the configured default")
	challengeCmd.Flags().Float64SliceVar(&candidateFractions, "fractions", nil, "candidate risk fractions, empty uses the configured set")
	challengeCmd.MarkFlagRequired("file")
}

func runChallenge(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	appDep, err := NewAppDependency()
	if err != nil {
		log.Fatalf("Failed to create app dependency: %v", err)
	}
	defer appDep.log.Sync()

	content, err := os.ReadFile(challengeFile)
	if err != nil {
		log.Fatalf("Failed to read statement file: %v", err)
	}

	eval, err := appDep.service.EvaluateChallenge(ctx, dto.ChallengeRequest{
		Content: string(content),
		Format:  challengeFormat,
		Params: model.ChallengeParams{
			AccountSize:           accountSize,
			ProfitTargetPercent:   profitTarget,
			MaxDailyLossPercent:   maxDailyLoss,
			MaxOverallLossPercent: maxOverallLoss,
			MinTradingDays:        minTradingDays,
		},
		RiskFractions:   candidateFractions,
		SimulationCount: simulationCount,
	})
	if err != nil {
		log.Fatalf("Challenge evaluation failed: %v", err)
	}

	fmt.Printf("Evaluation %s\n", eval.ID)
	for _, o := range eval.Outcomes {
		fmt.Printf("  risk %.4f  pass rate %.4f  (%d/%d)\n",
			o.RiskFraction, o.Result.PassRate, o.Result.PassedSimulations, o.Result.TotalSimulations)
	}
	fmt.Printf("Recommended fraction: %.4f (pass rate %.4f)\n", eval.RecommendedFraction, eval.PassRate)
}

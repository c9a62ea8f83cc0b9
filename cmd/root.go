package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "risk-optima",
	Short: "Quantitative risk analytics for retail traders",
	Long: `risk-optima analyzes a closed-trade history, derives Kelly and
Optimal F position-sizing fractions, and estimates by Monte Carlo simulation
the probability of passing a prop-firm challenge at a given risk fraction.`,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(challengeCmd)
}
